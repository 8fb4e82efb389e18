package models

type Label string

const (
	LabelPositive Label = "positive"
	LabelNegative Label = "negative"
	LabelNeutral  Label = "neutral"
)

// PolarityScore is the four-part polarity breakdown of a piece of text.
type PolarityScore struct {
	Pos      float64 `json:"pos"`
	Neg      float64 `json:"neg"`
	Neu      float64 `json:"neu"`
	Compound float64 `json:"compound"`
}

// NeutralPolarity is the score of text with nothing to score.
var NeutralPolarity = PolarityScore{Neu: 1}

// WeightedTerm is a keyword with its importance weight.
type WeightedTerm struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

type ArticleSentiment struct {
	Title     string        `json:"title"`
	Sentiment PolarityScore `json:"sentiment"`
	Label     Label         `json:"label"`
	Date      string        `json:"date"`

	// Published keeps the typed timestamp around for in-process callers.
	Published Timestamp `json:"-"`
}

// PublishedAt prefers the typed timestamp and falls back to the rendered
// date, which is all a decoded result carries.
func (a ArticleSentiment) PublishedAt() Timestamp {
	if !a.Published.IsZero() {
		return a.Published
	}
	if a.Date == "" || a.Date == UnknownDate {
		return Timestamp{}
	}
	return TimestampFromString(a.Date)
}

type AggregateSentimentResult struct {
	OverallSentiment Label              `json:"overall_sentiment"`
	Confidence       float64            `json:"confidence"`
	AvgCompound      float64            `json:"avg_compound"`
	NewsSentiments   []ArticleSentiment `json:"news_sentiments"`
	Keywords         []string           `json:"keywords"`
}

// MarshalJSON keeps empty collections as [] rather than null.
func (r AggregateSentimentResult) MarshalJSON() ([]byte, error) {
	type alias AggregateSentimentResult
	out := alias(r)
	if out.NewsSentiments == nil {
		out.NewsSentiments = []ArticleSentiment{}
	}
	if out.Keywords == nil {
		out.Keywords = []string{}
	}
	return marshalRaw(out)
}
