package providers

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spacesedan/trendscope/internal/models"
)

// NewsAPISearcher is the slice of the NewsAPI client this provider uses.
type NewsAPISearcher interface {
	Everything(ctx context.Context, query string, from time.Time, pageSize int) (*models.NewsAPIEverythingResponse, error)
}

type NewsAPIProvider struct {
	client NewsAPISearcher
	clock  clockwork.Clock
}

func NewNewsAPIProvider(client NewsAPISearcher, clock clockwork.Clock) *NewsAPIProvider {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &NewsAPIProvider{client: client, clock: clock}
}

func (n *NewsAPIProvider) Name() string { return "newsapi" }

func (n *NewsAPIProvider) Fetch(ctx context.Context, q Query) ([]models.NewsRecord, error) {
	var from time.Time
	if q.Hours > 0 {
		from = n.clock.Now().Add(-time.Duration(q.Hours) * time.Hour)
	}
	pageSize := q.Limit
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 100
	}

	res, err := n.client.Everything(ctx, q.Keyword, from, pageSize)
	if err != nil {
		return nil, err
	}

	records := make([]models.NewsRecord, 0, len(res.Articles))
	for _, a := range res.Articles {
		// NewsAPI blanks out articles removed at the publisher.
		if a.Title == "" || a.Title == "[Removed]" {
			continue
		}
		records = append(records, a.ToNewsRecord())
	}
	return records, nil
}
