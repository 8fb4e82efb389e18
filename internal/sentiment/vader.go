package sentiment

import (
	"github.com/jonreiter/govader"
	"github.com/spacesedan/trendscope/internal/models"
)

// VaderScorer is the general-language PolarityService backed by VADER.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VaderScorer) PolarityScores(text string) models.PolarityScore {
	s := v.analyzer.PolarityScores(text)
	return models.PolarityScore{
		Pos:      s.Positive,
		Neg:      s.Negative,
		Neu:      s.Neutral,
		Compound: s.Compound,
	}
}
