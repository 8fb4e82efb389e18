package models

import "time"

type Trend string

const (
	TrendBullish      Trend = "bullish"
	TrendBearish      Trend = "bearish"
	TrendOscillating  Trend = "oscillating"
	TrendUndetermined Trend = "undetermined"
)

type TrendPrediction struct {
	Trend      Trend    `json:"trend"`
	Confidence float64  `json:"confidence"`
	TrendScore float64  `json:"trend_score"`
	Momentum   float64  `json:"momentum"`
	Reason     string   `json:"reason"`
	Keywords   []string `json:"keywords"`
}

func (p TrendPrediction) MarshalJSON() ([]byte, error) {
	type alias TrendPrediction
	out := alias(p)
	if out.Keywords == nil {
		out.Keywords = []string{}
	}
	return marshalRaw(out)
}

// Report is one full analysis run over a batch of news.
type Report struct {
	ID           string                   `json:"id"`
	Keyword      string                   `json:"keyword"`
	CreatedAt    time.Time                `json:"created_at"`
	ArticleCount int                      `json:"article_count"`
	Sentiment    AggregateSentimentResult `json:"sentiment"`
	Trend        TrendPrediction          `json:"trend"`
}
