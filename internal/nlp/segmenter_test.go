package nlp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadSegmenter(t *testing.T) *Segmenter {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping dictionary load in short mode")
	}
	s, err := GetSegmenter()
	require.NoError(t, err)
	return s
}

func TestSegmentEmpty(t *testing.T) {
	s := &Segmenter{}

	assert.Empty(t, s.Segment("   "))
	assert.Empty(t, s.ExtractKeywords("", 10))
}

func TestSegmentChinese(t *testing.T) {
	s := loadSegmenter(t)

	tokens := s.Segment("股價上漲")

	require.NotEmpty(t, tokens)
	assert.Equal(t, "股價上漲", strings.Join(tokens, ""))
}

func TestExtractKeywordsRespectsTopN(t *testing.T) {
	s := loadSegmenter(t)

	terms := s.ExtractKeywords("半導體 營收 成長 半導體 需求 強勁 半導體 出口", 2)

	assert.LessOrEqual(t, len(terms), 2)
	require.NotEmpty(t, terms)
	for _, term := range terms {
		assert.NotEmpty(t, term.Term)
		assert.Greater(t, term.Weight, 0.0)
	}
}
