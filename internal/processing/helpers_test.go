package processing

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spacesedan/trendscope/internal/models"
	"github.com/spacesedan/trendscope/internal/providers"
	"github.com/spacesedan/trendscope/internal/sentiment"
	"github.com/spacesedan/trendscope/internal/trend"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type spaceSegmenter struct{}

func (spaceSegmenter) Segment(text string) []string { return strings.Fields(text) }

// wordPolarity scores English text +0.6 when it mentions "gain" and -0.6
// when it mentions "loss".
type wordPolarity struct{}

func (wordPolarity) PolarityScores(text string) models.PolarityScore {
	switch {
	case strings.Contains(text, "gain"):
		return models.PolarityScore{Pos: 0.6, Neu: 0.4, Compound: 0.6}
	case strings.Contains(text, "loss"):
		return models.PolarityScore{Neg: 0.6, Neu: 0.4, Compound: -0.6}
	}
	return models.NeutralPolarity
}

func newTestPipeline() (*Pipeline, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClockAt(testNow)
	analyzer := sentiment.NewAnalyzer(sentiment.DefaultConfig(), spaceSegmenter{}, wordPolarity{}, nil)
	cfg := trend.DefaultConfig()
	cfg.Location = time.UTC
	return NewPipeline(analyzer, trend.NewPredictor(cfg, analyzer, clock), clock), clock
}

type memoryStore struct {
	mu      sync.Mutex
	reports []models.Report
	err     error
}

func (m *memoryStore) SaveReports(_ context.Context, reports []models.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.reports = append(m.reports, reports...)
	return nil
}

func (m *memoryStore) ListReports(_ context.Context, keyword string, limit int) ([]models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Report
	for _, r := range m.reports {
		if keyword == "" || r.Keyword == keyword {
			out = append(out, r)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type stubFetcher struct {
	records map[string][]models.NewsRecord
	err     error
	queries []providers.Query
}

func (f *stubFetcher) Fetch(_ context.Context, _ string, q providers.Query) ([]models.NewsRecord, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	return f.records[q.Keyword], nil
}

type memoryDeduper struct {
	seen map[string]bool
}

func (d *memoryDeduper) IsProcessed(_ context.Context, namespace, key string) bool {
	return d.seen[namespace+"/"+key]
}

func (d *memoryDeduper) MarkProcessed(_ context.Context, namespace, key string) error {
	if d.seen == nil {
		d.seen = map[string]bool{}
	}
	d.seen[namespace+"/"+key] = true
	return nil
}

type published struct {
	topic string
	key   string
	value any
}

type recordingPublisher struct {
	messages []published
	err      error
}

func (p *recordingPublisher) PublishJSON(topic, key string, value any) error {
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, published{topic: topic, key: key, value: value})
	return nil
}
