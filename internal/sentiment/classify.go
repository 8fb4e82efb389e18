package sentiment

import "github.com/spacesedan/trendscope/internal/models"

// Thresholds split compound scores into labels. Both article and corpus
// labels use the same pair.
type Thresholds struct {
	Positive float64
	Negative float64
}

var DefaultThresholds = Thresholds{Positive: 0.05, Negative: -0.05}

func (t Thresholds) Classify(compound float64) models.Label {
	switch {
	case compound >= t.Positive:
		return models.LabelPositive
	case compound <= t.Negative:
		return models.LabelNegative
	default:
		return models.LabelNeutral
	}
}
