package trend

import (
	"math"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spacesedan/trendscope/internal/models"
	"github.com/spacesedan/trendscope/internal/sentiment"
)

// Predictor turns scored news into a directional trend call.
type Predictor struct {
	cfg      Config
	analyzer *sentiment.Analyzer
	clock    clockwork.Clock
}

func NewPredictor(cfg Config, analyzer *sentiment.Analyzer, clock clockwork.Clock) *Predictor {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &Predictor{cfg: cfg, analyzer: analyzer, clock: clock}
}

func (p *Predictor) Config() Config {
	return p.cfg
}

// Predict forecasts the trend of records. When result is nil the records
// are analysed first.
func (p *Predictor) Predict(records []models.NewsRecord, result *models.AggregateSentimentResult) models.TrendPrediction {
	if result == nil {
		r := models.AggregateSentimentResult{OverallSentiment: models.LabelNeutral}
		if p.analyzer != nil {
			r = p.analyzer.Analyze(records)
		}
		result = &r
	}

	pb := phrasesFor(p.cfg.Locale)
	if len(result.NewsSentiments) < p.cfg.MinArticles {
		return models.TrendPrediction{
			Trend:    models.TrendUndetermined,
			Reason:   pb.insufficient,
			Keywords: []string{},
		}
	}

	now := p.clock.Now()
	obs := p.observe(result.NewsSentiments, now)
	weightedAvg := p.cfg.weightedAverage(obs, now)
	momentum := p.cfg.momentum(obs)
	score := weightedAvg + momentum*p.cfg.MomentumWeight
	trend := p.cfg.classify(score)

	count := len(records)
	if count == 0 {
		count = len(result.NewsSentiments)
	}

	return models.TrendPrediction{
		Trend:      trend,
		Confidence: p.cfg.confidence(score),
		TrendScore: score,
		Momentum:   momentum,
		Reason:     pb.reason(trend, count, result.OverallSentiment, head(result.Keywords, p.cfg.ReasonKeywords)),
		Keywords:   head(result.Keywords, p.cfg.OutputKeywords),
	}
}

func (c Config) classify(score float64) models.Trend {
	switch {
	case score > c.BullishThreshold:
		return models.TrendBullish
	case score < c.BearishThreshold:
		return models.TrendBearish
	default:
		return models.TrendOscillating
	}
}

func (c Config) confidence(score float64) float64 {
	return math.Min(1, math.Abs(score)*c.ConfidenceScale)
}

func head(s []string, n int) []string {
	n = max(0, min(n, len(s)))
	out := make([]string, n)
	copy(out, s[:n])
	return out
}
