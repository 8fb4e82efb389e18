package trend

import (
	"math"
	"time"
)

// TimeWeight decays by factor per hour of age. Future timestamps count as
// zero hours old.
func TimeWeight(published, now time.Time, factor float64) float64 {
	hours := math.Max(0, now.Sub(published).Hours())
	return math.Pow(factor, hours)
}
