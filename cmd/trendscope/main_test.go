package main

import (
	"bytes"
	"testing"

	"github.com/spacesedan/trendscope/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "trendscope dev (unknown)\n", out.String())
}

func TestWriteJSONKeepsUnicode(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeJSON(&out, models.TrendPrediction{Trend: models.TrendOscillating, Reason: "中性 <ok>"}, false))

	assert.Equal(t, `{"trend":"oscillating","confidence":0,"trend_score":0,"momentum":0,"reason":"中性 <ok>","keywords":[]}`+"\n", out.String())
}

func TestFetchRequiresKeyword(t *testing.T) {
	rootCmd.SetArgs([]string{"fetch"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	assert.ErrorContains(t, err, "keyword")
}
