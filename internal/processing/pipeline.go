package processing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/spacesedan/trendscope/internal/metrics"
	"github.com/spacesedan/trendscope/internal/models"
	"github.com/spacesedan/trendscope/internal/sentiment"
	"github.com/spacesedan/trendscope/internal/trend"
)

// ReportStore persists finished reports.
type ReportStore interface {
	SaveReports(ctx context.Context, reports []models.Report) error
	ListReports(ctx context.Context, keyword string, limit int) ([]models.Report, error)
}

// Pipeline runs sentiment analysis and trend prediction over one batch.
type Pipeline struct {
	analyzer  *sentiment.Analyzer
	predictor *trend.Predictor
	clock     clockwork.Clock
	store     ReportStore
}

func NewPipeline(analyzer *sentiment.Analyzer, predictor *trend.Predictor, clock clockwork.Clock) *Pipeline {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Pipeline{analyzer: analyzer, predictor: predictor, clock: clock}
}

// WithStore makes Run persist every report it builds.
func (p *Pipeline) WithStore(store ReportStore) *Pipeline {
	p.store = store
	return p
}

func (p *Pipeline) Analyzer() *sentiment.Analyzer { return p.analyzer }

func (p *Pipeline) Predictor() *trend.Predictor { return p.predictor }

// Analyze de-duplicates records by title and runs both stages.
func (p *Pipeline) Analyze(keyword string, records []models.NewsRecord) models.Report {
	start := p.clock.Now()
	records = DedupeByTitle(records)

	result := p.analyzer.Analyze(records)
	prediction := p.predictor.Predict(records, &result)

	metrics.AnalysisDuration.Observe(p.clock.Since(start).Seconds())
	metrics.AnalysesTotal.WithLabelValues(string(prediction.Trend)).Inc()
	for _, art := range result.NewsSentiments {
		metrics.ArticlesScoredTotal.WithLabelValues(string(art.Label)).Inc()
	}

	return models.Report{
		ID:           uuid.NewString(),
		Keyword:      keyword,
		CreatedAt:    p.clock.Now().UTC().Truncate(time.Second),
		ArticleCount: len(records),
		Sentiment:    result,
		Trend:        prediction,
	}
}

// Run analyses the batch and saves the report when a store is attached.
func (p *Pipeline) Run(ctx context.Context, keyword string, records []models.NewsRecord) (models.Report, error) {
	report := p.Analyze(keyword, records)

	slog.Info("[Pipeline] Batch analysed",
		slog.String("keyword", keyword),
		slog.Int("articles", report.ArticleCount),
		slog.String("sentiment", string(report.Sentiment.OverallSentiment)),
		slog.String("trend", string(report.Trend.Trend)),
		slog.Float64("confidence", report.Trend.Confidence))

	if p.store == nil {
		return report, nil
	}

	if err := p.store.SaveReports(ctx, []models.Report{report}); err != nil {
		metrics.ReportsStoredTotal.WithLabelValues("error").Inc()
		return report, fmt.Errorf("[Pipeline] failed to store report: %w", err)
	}
	metrics.ReportsStoredTotal.WithLabelValues("success").Inc()
	return report, nil
}

// DedupeByTitle keeps the first record for each exact title.
func DedupeByTitle(records []models.NewsRecord) []models.NewsRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]models.NewsRecord, 0, len(records))
	for _, rec := range records {
		if _, dup := seen[rec.Title]; dup {
			continue
		}
		seen[rec.Title] = struct{}{}
		out = append(out, rec)
	}
	return out
}
