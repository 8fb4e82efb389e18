package trend

import (
	"fmt"
	"strings"
	"time"
)

// UndatedPolicy decides how records without a usable timestamp take part
// in time decay and momentum.
type UndatedPolicy int

const (
	// UndatedAsNow treats undated records as published at the moment of
	// prediction.
	UndatedAsNow UndatedPolicy = iota
	// UndatedExcluded leaves undated records out of the weighted average
	// and the momentum split.
	UndatedExcluded
)

func (p UndatedPolicy) String() string {
	switch p {
	case UndatedExcluded:
		return "exclude"
	default:
		return "now"
	}
}

func ParseUndatedPolicy(s string) (UndatedPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "now":
		return UndatedAsNow, nil
	case "exclude", "excluded":
		return UndatedExcluded, nil
	default:
		return UndatedAsNow, fmt.Errorf("[Trend] unknown undated policy %q", s)
	}
}

type Config struct {
	DecayFactor         float64
	PositiveWeight      float64
	NegativeWeight      float64
	MomentumWeight      float64
	BullishThreshold    float64
	BearishThreshold    float64
	ConfidenceScale     float64
	MinArticles int
	// MinMomentumArticles must be at least 2 so both halves are non-empty.
	MinMomentumArticles int
	ReasonKeywords      int
	OutputKeywords      int
	Undated             UndatedPolicy
	Locale              Locale
	// Location is used for timestamps that carry no zone.
	Location *time.Location
}

func DefaultConfig() Config {
	return Config{
		DecayFactor:         0.9,
		PositiveWeight:      1.5,
		NegativeWeight:      1.0,
		MomentumWeight:      0.5,
		BullishThreshold:    0.1,
		BearishThreshold:    -0.1,
		ConfidenceScale:     2,
		MinArticles:         2,
		MinMomentumArticles: 3,
		ReasonKeywords:      3,
		OutputKeywords:      5,
		Undated:             UndatedAsNow,
		Locale:              LocaleEnglish,
		Location:            time.Local,
	}
}
