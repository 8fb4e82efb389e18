package sentiment

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/spacesedan/trendscope/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer(cfg Config) (*Analyzer, *fieldSegmenter, *stubPolarity, *stubKeywords) {
	seg := &fieldSegmenter{}
	pol := &stubPolarity{scores: map[string]models.PolarityScore{
		"Shares soar on strong earnings": {Pos: 0.5, Neu: 0.5, Compound: 0.6},
		"Profit warning hits stock":      {Neg: 0.4, Neu: 0.6, Compound: -0.4},
	}}
	kw := &stubKeywords{terms: []models.WeightedTerm{
		{Term: "earnings", Weight: 0.4},
		{Term: "上漲", Weight: 0.9},
		{Term: "stock", Weight: 0.4},
	}}
	return NewAnalyzer(cfg, seg, pol, kw), seg, pol, kw
}

func TestAnalyzeEmptyBatch(t *testing.T) {
	a, seg, pol, kw := newTestAnalyzer(DefaultConfig())

	got := a.Analyze(nil)

	assert.Equal(t, models.LabelNeutral, got.OverallSentiment)
	assert.Zero(t, got.Confidence)
	assert.Zero(t, got.AvgCompound)
	assert.Empty(t, got.NewsSentiments)
	assert.Empty(t, got.Keywords)
	assert.Zero(t, seg.calls)
	assert.Zero(t, pol.calls)
	assert.Empty(t, kw.corpora)

	out, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"overall_sentiment":"neutral","confidence":0,"avg_compound":0,"news_sentiments":[],"keywords":[]}`, string(out))
}

func TestAnalyzeMixedBatch(t *testing.T) {
	a, seg, pol, kw := newTestAnalyzer(DefaultConfig())
	records := []models.NewsRecord{
		{Title: "Shares soar", Summary: "on strong earnings", Timestamp: models.TimestampFromString("2024-05-01 09:30:00")},
		{Title: "Profit warning", Summary: "hits <b>stock</b>"},
		{Title: "台積電 上漲", Summary: "營收 看好"},
	}

	got := a.Analyze(records)

	require.Len(t, got.NewsSentiments, 3)
	assert.Equal(t, models.LabelPositive, got.NewsSentiments[0].Label)
	assert.Equal(t, "2024-05-01 09:30:00", got.NewsSentiments[0].Date)
	assert.Equal(t, models.LabelNegative, got.NewsSentiments[1].Label)
	assert.Equal(t, models.UnknownDate, got.NewsSentiments[1].Date)

	// 台積電 上漲 營收 看好: two positive hits out of four tokens.
	zh := got.NewsSentiments[2].Sentiment
	assert.InDelta(t, 0.5, zh.Pos, 1e-9)
	assert.InDelta(t, 0.5/0.501, zh.Compound, 1e-9)
	assert.Equal(t, 1, seg.calls)
	assert.Equal(t, 2, pol.calls)

	wantAvg := (0.6 - 0.4 + 0.5/0.501) / 3
	assert.InDelta(t, wantAvg, got.AvgCompound, 1e-9)
	assert.InDelta(t, wantAvg, got.Confidence, 1e-9)
	assert.Equal(t, models.LabelPositive, got.OverallSentiment)

	require.Len(t, kw.corpora, 1)
	assert.Equal(t, "Shares soar on strong earnings Profit warning hits <b>stock</b> 台積電 上漲 營收 看好", kw.corpora[0])
	assert.Equal(t, DefaultKeywordCount, kw.topN)
	assert.Equal(t, []string{"上漲", "earnings", "stock"}, got.Keywords)
}

func TestAnalyzeNegativeConfidenceIsAbsolute(t *testing.T) {
	a, _, _, _ := newTestAnalyzer(DefaultConfig())

	got := a.Analyze([]models.NewsRecord{{Title: "Profit warning", Summary: "hits stock"}})

	assert.Equal(t, models.LabelNegative, got.OverallSentiment)
	assert.InDelta(t, -0.4, got.AvgCompound, 1e-9)
	assert.InDelta(t, 0.4, got.Confidence, 1e-9)
}

func TestAnalyzeTimeValueDate(t *testing.T) {
	a, _, _, _ := newTestAnalyzer(DefaultConfig())
	ts := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)

	got := a.Analyze([]models.NewsRecord{{Title: "x", Timestamp: models.TimestampFromTime(ts)}})

	assert.Equal(t, "2024-03-04 05:06:07", got.NewsSentiments[0].Date)
	assert.Equal(t, models.TimestampFromTime(ts), got.NewsSentiments[0].Published)
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	a, _, _, _ := newTestAnalyzer(DefaultConfig())
	records := []models.NewsRecord{
		{Title: "Shares soar", Summary: "on strong earnings"},
		{Title: "台積電 上漲", Summary: "虧損 擴大"},
	}

	first, err := json.Marshal(a.Analyze(records))
	require.NoError(t, err)
	second, err := json.Marshal(a.Analyze(records))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestAnalyzeWorkersMatchSequential(t *testing.T) {
	records := make([]models.NewsRecord, 0, 40)
	for i := 0; i < 10; i++ {
		records = append(records,
			models.NewsRecord{Title: "Shares soar", Summary: "on strong earnings"},
			models.NewsRecord{Title: "Profit warning", Summary: "hits stock"},
			models.NewsRecord{Title: "台積電 下跌", Summary: "風險 上升"},
			models.NewsRecord{Title: "quiet day"},
		)
	}

	seq, _, _, _ := newTestAnalyzer(DefaultConfig())
	cfg := DefaultConfig()
	cfg.Workers = 8
	par, _, _, _ := newTestAnalyzer(cfg)

	assert.Equal(t, seq.Analyze(records), par.Analyze(records))
}

func TestAnalyzeWithoutKeywordExtractor(t *testing.T) {
	a := NewAnalyzer(DefaultConfig(), &fieldSegmenter{}, &stubPolarity{}, nil)

	got := a.Analyze([]models.NewsRecord{{Title: "quiet day"}})

	assert.Equal(t, []string{}, got.Keywords)
	assert.Equal(t, models.LabelNeutral, got.OverallSentiment)
}
