package providers

import (
	"context"
	"errors"
	"strings"

	"github.com/spacesedan/trendscope/internal/models"
)

var (
	ErrUnknownProvider    = errors.New("unknown news source")
	ErrAllProvidersFailed = errors.New("every news source failed")
)

// SourceAll selects every registered provider.
const SourceAll = "all"

// Query mirrors what a crawler is asked for: a keyword, a per-source cap
// and a look-back window in hours.
type Query struct {
	Keyword string
	Limit   int
	Hours   int
}

// Provider retrieves news records for a keyword.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, q Query) ([]models.NewsRecord, error)
}

func matchesKeyword(keyword string, texts ...string) bool {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return true
	}
	for _, t := range texts {
		if strings.Contains(strings.ToLower(t), keyword) {
			return true
		}
	}
	return false
}
