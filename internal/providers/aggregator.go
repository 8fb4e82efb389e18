package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spacesedan/trendscope/internal/metrics"
	"github.com/spacesedan/trendscope/internal/models"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

type limitedProvider struct {
	Provider
	limiter *rate.Limiter
}

// Aggregator fans a query out to its providers and merges what comes
// back, in registration order.
type Aggregator struct {
	providers []limitedProvider
	clock     clockwork.Clock
	location  *time.Location
}

// NewAggregator allows each provider one request per interval.
func NewAggregator(interval time.Duration, clock clockwork.Clock, providers ...Provider) *Aggregator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}

	a := &Aggregator{clock: clock, location: time.Local}
	for _, p := range providers {
		a.providers = append(a.providers, limitedProvider{
			Provider: p,
			limiter:  rate.NewLimiter(limit, 1),
		})
	}
	return a
}

// Sources lists the registered provider names.
func (a *Aggregator) Sources() []string {
	names := make([]string, len(a.providers))
	for i, p := range a.providers {
		names[i] = p.Name()
	}
	return names
}

func (a *Aggregator) selectProviders(source string) ([]limitedProvider, error) {
	source = strings.ToLower(strings.TrimSpace(source))
	if source == "" || source == SourceAll {
		return a.providers, nil
	}
	for _, p := range a.providers {
		if p.Name() == source {
			return []limitedProvider{p}, nil
		}
	}
	return nil, fmt.Errorf("[Aggregator] %q: %w", source, ErrUnknownProvider)
}

// Fetch queries source ("all" or a provider name). A failing provider is
// logged and skipped; Fetch only errors when every selected provider
// failed.
func (a *Aggregator) Fetch(ctx context.Context, source string, q Query) ([]models.NewsRecord, error) {
	selected, err := a.selectProviders(source)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("[Aggregator] no providers configured: %w", ErrUnknownProvider)
	}

	results := make([][]models.NewsRecord, len(selected))
	errs := make([]error, len(selected))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range selected {
		g.Go(func() error {
			if err := p.limiter.Wait(gctx); err != nil {
				errs[i] = err
				return nil
			}
			recs, err := p.Fetch(gctx, q)
			if err != nil {
				slog.Warn("[Aggregator] Provider fetch failed",
					slog.String("provider", p.Name()),
					slog.String("keyword", q.Keyword),
					slog.String("error", err.Error()))
				metrics.ProviderFetchTotal.WithLabelValues(p.Name(), "error").Inc()
				errs[i] = fmt.Errorf("%s: %w", p.Name(), err)
				return nil
			}
			metrics.ProviderFetchTotal.WithLabelValues(p.Name(), "success").Inc()
			results[i] = a.window(recs, q)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	var merged []models.NewsRecord
	for i := range selected {
		if errs[i] != nil {
			failed++
			continue
		}
		merged = append(merged, results[i]...)
	}
	if failed == len(selected) {
		return nil, fmt.Errorf("[Aggregator] %w: %w", ErrAllProvidersFailed, errors.Join(errs...))
	}

	slog.Info("[Aggregator] Fetched news",
		slog.String("source", source),
		slog.String("keyword", q.Keyword),
		slog.Int("records", len(merged)))
	return merged, nil
}

// window drops records older than q.Hours and caps the rest at q.Limit.
// Undated records are kept.
func (a *Aggregator) window(recs []models.NewsRecord, q Query) []models.NewsRecord {
	var cutoff time.Time
	if q.Hours > 0 {
		cutoff = a.clock.Now().Add(-time.Duration(q.Hours) * time.Hour)
	}

	out := make([]models.NewsRecord, 0, len(recs))
	for _, rec := range recs {
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
		if !cutoff.IsZero() {
			if t, ok := rec.Timestamp.Parse(a.location); ok && t.Before(cutoff) {
				continue
			}
		}
		out = append(out, rec)
	}
	return out
}
