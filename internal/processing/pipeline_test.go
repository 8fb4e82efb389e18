package processing

import (
	"context"
	"errors"
	"testing"

	"github.com/spacesedan/trendscope/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupeByTitle(t *testing.T) {
	got := DedupeByTitle([]models.NewsRecord{
		{Title: "a", Summary: "first"},
		{Title: "b"},
		{Title: "a", Summary: "second"},
		{Title: "A"},
	})

	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Summary)
	assert.Equal(t, "A", got[2].Title)
}

func TestPipelineAnalyze(t *testing.T) {
	p, _ := newTestPipeline()
	records := []models.NewsRecord{
		{Title: "Chip gain", Timestamp: models.TimestampFromString("2024-05-01 12:00:00")},
		{Title: "Chip gain", Timestamp: models.TimestampFromString("2024-05-01 12:00:00")},
		{Title: "Another gain", Timestamp: models.TimestampFromString("2024-05-01 12:00:00")},
		{Title: "Big loss", Timestamp: models.TimestampFromString("2024-05-01 11:00:00")},
	}

	report := p.Analyze("chips", records)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "chips", report.Keyword)
	assert.True(t, report.CreatedAt.Equal(testNow))
	assert.Equal(t, 3, report.ArticleCount)
	require.Len(t, report.Sentiment.NewsSentiments, 3)
	assert.Equal(t, models.LabelPositive, report.Sentiment.OverallSentiment)
	assert.Contains(t, report.Trend.Reason, "Based on 3 articles")
}

func TestPipelineAnalyzeEmpty(t *testing.T) {
	p, _ := newTestPipeline()

	report := p.Analyze("chips", nil)

	assert.Zero(t, report.ArticleCount)
	assert.Equal(t, models.TrendUndetermined, report.Trend.Trend)
	assert.Equal(t, "insufficient articles", report.Trend.Reason)
}

func TestPipelineRunStoresReport(t *testing.T) {
	p, _ := newTestPipeline()
	store := &memoryStore{}
	p.WithStore(store)

	report, err := p.Run(context.Background(), "chips", []models.NewsRecord{{Title: "gain"}, {Title: "more gain"}})

	require.NoError(t, err)
	require.Len(t, store.reports, 1)
	assert.Equal(t, report.ID, store.reports[0].ID)
}

func TestPipelineRunStoreFailure(t *testing.T) {
	p, _ := newTestPipeline()
	p.WithStore(&memoryStore{err: errors.New("disk full")})

	report, err := p.Run(context.Background(), "chips", []models.NewsRecord{{Title: "gain"}})

	assert.ErrorContains(t, err, "disk full")
	assert.Equal(t, "chips", report.Keyword)
}
