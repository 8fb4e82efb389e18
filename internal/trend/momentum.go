package trend

import "sort"

// momentum is the mean compound of the later half of the articles minus
// the mean of the earlier half. The later half takes the odd article.
func (c Config) momentum(obs []observation) float64 {
	if len(obs) < c.MinMomentumArticles {
		return 0
	}

	sorted := make([]observation, len(obs))
	copy(sorted, obs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].at.Before(sorted[j].at)
	})

	mid := len(sorted) / 2
	return meanCompound(sorted[mid:]) - meanCompound(sorted[:mid])
}

func meanCompound(obs []observation) float64 {
	var sum float64
	for _, o := range obs {
		sum += o.compound
	}
	return sum / float64(len(obs))
}
