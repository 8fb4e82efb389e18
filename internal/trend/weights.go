package trend

import (
	"time"

	"github.com/spacesedan/trendscope/internal/models"
)

// observation is one article as the trend math sees it.
type observation struct {
	compound float64
	at       time.Time
}

func (p *Predictor) observe(articles []models.ArticleSentiment, now time.Time) []observation {
	obs := make([]observation, 0, len(articles))
	for _, art := range articles {
		at, dated := art.PublishedAt().Resolve(now, p.cfg.Location)
		if !dated && p.cfg.Undated == UndatedExcluded {
			continue
		}
		obs = append(obs, observation{compound: art.Sentiment.Compound, at: at})
	}
	return obs
}

// polarityWeight favours positive news over negative news.
func (c Config) polarityWeight(compound float64) float64 {
	if compound > 0 {
		return c.PositiveWeight
	}
	return c.NegativeWeight
}

// weightedAverage is the mean of compound × polarity weight × time weight.
func (c Config) weightedAverage(obs []observation, now time.Time) float64 {
	if len(obs) == 0 {
		return 0
	}
	var sum float64
	for _, o := range obs {
		sum += o.compound * c.polarityWeight(o.compound) * TimeWeight(o.at, now, c.DecayFactor)
	}
	return sum / float64(len(obs))
}
