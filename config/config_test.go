package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("WATCHLIST", "2330,NVDA")
	t.Setenv("REPORT_STORE", "dynamodb")
	t.Setenv("FETCH_SCHEDULE", "0 * * * *")
	t.Setenv("PROVIDER_MIN_INTERVAL", "250ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"2330", "NVDA"}, cfg.Watchlist)
	assert.Equal(t, "dynamodb", cfg.ReportStore)
	assert.Equal(t, "0 * * * *", cfg.FetchSchedule)
	assert.Equal(t, 250*time.Millisecond, cfg.ProviderInterval)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"FETCH_LIMIT":     "0",
		"FETCH_HOURS":     "-2",
		"SCORING_WORKERS": "-1",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
