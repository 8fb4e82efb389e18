package providers

import (
	"context"
	"sort"
	"strings"

	"github.com/spacesedan/trendscope/internal/models"
)

var CategoryToSubreddits = map[string][]string{
	"Markets": {
		"stocks",
		"StockMarket",
		"wallstreetbets",
	},
	"Investing": {
		"investing",
		"ValueInvesting",
		"dividends",
	},
	"Economy": {
		"finance",
		"economics",
		"Economy",
	},
	"Asia": {
		"taiwan",
		"China_irl",
	},
}

// DefaultSubreddits flattens CategoryToSubreddits in a stable order.
func DefaultSubreddits() []string {
	categories := make([]string, 0, len(CategoryToSubreddits))
	for c := range CategoryToSubreddits {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var subs []string
	for _, c := range categories {
		subs = append(subs, CategoryToSubreddits[c]...)
	}
	return subs
}

// RedditSearcher is the slice of the Reddit client this provider uses.
type RedditSearcher interface {
	SearchPosts(ctx context.Context, subreddits, query string, limit int) ([]models.RedditPost, error)
}

type RedditProvider struct {
	client     RedditSearcher
	subreddits string
}

func NewRedditProvider(client RedditSearcher, subreddits []string) *RedditProvider {
	if len(subreddits) == 0 {
		subreddits = DefaultSubreddits()
	}
	return &RedditProvider{client: client, subreddits: strings.Join(subreddits, "+")}
}

func (r *RedditProvider) Name() string { return "reddit" }

func (r *RedditProvider) Fetch(ctx context.Context, q Query) ([]models.NewsRecord, error) {
	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	posts, err := r.client.SearchPosts(ctx, r.subreddits, q.Keyword, limit)
	if err != nil {
		return nil, err
	}

	records := make([]models.NewsRecord, 0, len(posts))
	for _, p := range posts {
		if p.PostTitle == "" {
			continue
		}
		records = append(records, p.ToNewsRecord())
	}
	return records, nil
}
