package processing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/spacesedan/trendscope/internal/models"
	"github.com/spacesedan/trendscope/internal/providers"
)

const (
	NAMESPACE_NEWS  = "news"
	NAMESPACE_BATCH = "batch"
)

// Fetcher retrieves news for a query from one source or all of them.
type Fetcher interface {
	Fetch(ctx context.Context, source string, q providers.Query) ([]models.NewsRecord, error)
}

// Deduper remembers keys that were already handled, per namespace.
type Deduper interface {
	IsProcessed(ctx context.Context, namespace, key string) bool
	MarkProcessed(ctx context.Context, namespace, key string) error
}

// Publisher writes a JSON message to a topic.
type Publisher interface {
	PublishJSON(topic, key string, value any) error
}

// NewsProducer fetches news for watchlist keywords and publishes every
// unseen record as one batch per keyword.
type NewsProducer struct {
	Fetcher   Fetcher
	Deduper   Deduper
	Publisher Publisher
	Topic     string
	Source    string
	Limit     int
	Hours     int
	Clock     clockwork.Clock
}

// FetchAndPublish returns the number of records published for keyword.
func (p *NewsProducer) FetchAndPublish(ctx context.Context, keyword string) (int, error) {
	source := p.Source
	if source == "" {
		source = providers.SourceAll
	}
	clock := p.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	records, err := p.Fetcher.Fetch(ctx, source, providers.Query{Keyword: keyword, Limit: p.Limit, Hours: p.Hours})
	if err != nil {
		return 0, fmt.Errorf("[NewsProducer] fetch %q: %w", keyword, err)
	}

	fresh := make([]models.NewsRecord, 0, len(records))
	for _, rec := range DedupeByTitle(records) {
		if p.Deduper != nil && p.Deduper.IsProcessed(ctx, NAMESPACE_NEWS, dedupeKey(rec)) {
			slog.Debug("[NewsProducer] Skipping duplicate record", slog.String("title", rec.Title))
			continue
		}
		fresh = append(fresh, rec)
	}
	if len(fresh) == 0 {
		slog.Info("[NewsProducer] No new records", slog.String("keyword", keyword))
		return 0, nil
	}

	batch := models.NewsBatch{
		BatchID:   uuid.NewString(),
		Keyword:   keyword,
		Records:   fresh,
		CreatedAt: clock.Now().UTC(),
	}
	if err := p.Publisher.PublishJSON(p.Topic, keyword, batch); err != nil {
		return 0, fmt.Errorf("[NewsProducer] publish batch %s: %w", batch.BatchID, err)
	}

	if p.Deduper != nil {
		for _, rec := range fresh {
			if err := p.Deduper.MarkProcessed(ctx, NAMESPACE_NEWS, dedupeKey(rec)); err != nil {
				slog.Warn("[NewsProducer] Failed to mark record as processed",
					slog.String("title", rec.Title),
					slog.String("error", err.Error()))
			}
		}
	}

	slog.Info("[NewsProducer] Published batch",
		slog.String("keyword", keyword),
		slog.String("batch_id", batch.BatchID),
		slog.Int("records", len(fresh)))
	return len(fresh), nil
}

// RunWatchlist publishes a batch for each keyword. One failing keyword does
// not stop the others.
func (p *NewsProducer) RunWatchlist(ctx context.Context, keywords []string) error {
	start := time.Now()
	var errs []error
	total := 0
	for _, kw := range keywords {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		n, err := p.FetchAndPublish(ctx, kw)
		if err != nil {
			slog.Warn("[NewsProducer] Keyword failed", slog.String("keyword", kw), slog.String("error", err.Error()))
			errs = append(errs, err)
			continue
		}
		total += n
	}

	slog.Info("[NewsProducer] Watchlist cycle finished",
		slog.Int("keywords", len(keywords)),
		slog.Int("published", total),
		slog.Duration("duration", time.Since(start)))
	return errors.Join(errs...)
}

func dedupeKey(rec models.NewsRecord) string {
	if rec.URL != "" {
		return rec.URL
	}
	return strings.ToLower(strings.TrimSpace(rec.Title))
}
