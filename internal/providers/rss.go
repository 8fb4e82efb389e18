package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/spacesedan/trendscope/internal/models"
)

// RSSProvider reads a fixed set of feeds and keeps items that mention the
// keyword.
type RSSProvider struct {
	feeds  []string
	parser *gofeed.Parser
}

func NewRSSProvider(feeds []string) *RSSProvider {
	return &RSSProvider{feeds: feeds, parser: gofeed.NewParser()}
}

func (r *RSSProvider) Name() string { return "rss" }

func (r *RSSProvider) Fetch(ctx context.Context, q Query) ([]models.NewsRecord, error) {
	var records []models.NewsRecord
	var lastErr error
	fetched := 0

	for _, url := range r.feeds {
		feed, err := r.parser.ParseURLWithContext(url, ctx)
		if err != nil {
			lastErr = fmt.Errorf("[RSSProvider] failed to parse %s: %w", url, err)
			continue
		}
		fetched++
		records = append(records, FeedRecords(feed, q.Keyword)...)
	}

	if fetched == 0 && lastErr != nil {
		return nil, lastErr
	}
	return records, nil
}

// FeedRecords converts the feed items that match keyword.
func FeedRecords(feed *gofeed.Feed, keyword string) []models.NewsRecord {
	records := make([]models.NewsRecord, 0, len(feed.Items))
	for _, item := range feed.Items {
		summary := HTMLToText(item.Description)
		if !matchesKeyword(keyword, item.Title, summary) {
			continue
		}

		rec := models.NewsRecord{
			Title:   strings.TrimSpace(item.Title),
			Summary: summary,
			Source:  "rss:" + feed.Title,
			URL:     item.Link,
		}
		switch {
		case item.PublishedParsed != nil:
			rec.Timestamp = models.TimestampFromTime(*item.PublishedParsed)
		case item.UpdatedParsed != nil:
			rec.Timestamp = models.TimestampFromTime(*item.UpdatedParsed)
		default:
			rec.Timestamp = models.TimestampFromString(item.Published)
		}
		records = append(records, rec)
	}
	return records
}

// HTMLToText flattens an HTML fragment to its visible text.
func HTMLToText(s string) string {
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
