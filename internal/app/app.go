// Package app assembles the engine and its collaborators from
// configuration for the binaries under cmd/.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/spacesedan/trendscope/config"
	"github.com/spacesedan/trendscope/internal/clients"
	"github.com/spacesedan/trendscope/internal/db"
	"github.com/spacesedan/trendscope/internal/nlp"
	"github.com/spacesedan/trendscope/internal/processing"
	"github.com/spacesedan/trendscope/internal/providers"
	"github.com/spacesedan/trendscope/internal/sentiment"
	"github.com/spacesedan/trendscope/internal/trend"
)

// BuildPipeline loads the segmenter dictionaries and wires the analyzer and
// predictor as the profile describes.
func BuildPipeline(cfg *config.Config, profile *config.Profile, clock clockwork.Clock) (*processing.Pipeline, error) {
	sentimentCfg, err := profile.SentimentConfig(cfg.ScoringWorkers)
	if err != nil {
		return nil, err
	}
	trendCfg, err := profile.TrendConfig()
	if err != nil {
		return nil, err
	}

	var seg *nlp.Segmenter
	if len(cfg.DictFiles) > 0 {
		seg, err = nlp.NewSegmenter(cfg.DictFiles...)
	} else {
		seg, err = nlp.GetSegmenter()
	}
	if err != nil {
		return nil, err
	}

	return NewPipeline(sentimentCfg, trendCfg, seg, seg, clock), nil
}

// NewPipeline wires an engine around an already loaded segmenter. VADER
// scores non-Chinese text.
func NewPipeline(sentimentCfg sentiment.Config, trendCfg trend.Config, seg sentiment.Segmenter, kw sentiment.KeywordExtractor, clock clockwork.Clock) *processing.Pipeline {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	analyzer := sentiment.NewAnalyzer(sentimentCfg, seg, sentiment.NewVaderScorer(), kw)
	predictor := trend.NewPredictor(trendCfg, analyzer, clock)
	return processing.NewPipeline(analyzer, predictor, clock)
}

// BuildAggregator registers every provider the configuration has
// credentials or feeds for.
func BuildAggregator(cfg *config.Config, clock clockwork.Clock) *providers.Aggregator {
	var ps []providers.Provider
	if len(cfg.FeedURLs) > 0 {
		ps = append(ps, providers.NewRSSProvider(cfg.FeedURLs))
	}
	if cfg.NewsAPIKey != "" {
		ps = append(ps, providers.NewNewsAPIProvider(clients.GetNewsAPIClient(), clock))
	}
	if cfg.RedditClientID != "" && cfg.RedditClientSecret != "" {
		ps = append(ps, providers.NewRedditProvider(clients.GetRedditClient(), cfg.Subreddits))
	}
	if len(ps) == 0 {
		slog.Warn("[App] No news providers configured")
	}
	return providers.NewAggregator(cfg.ProviderInterval, clock, ps...)
}

// OpenStore opens the configured report store. The returned close func is
// never nil. REPORT_STORE=none yields a nil store.
func OpenStore(cfg *config.Config, clock clockwork.Clock) (processing.ReportStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.ReportStore {
	case "sqlite":
		s, err := db.OpenSQLiteReportStore(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	case "dynamodb":
		return db.NewDynamoReportStore(clients.GetDynamoDBClient(), cfg.DynamoDBTable, clock), noop, nil
	case "none":
		return nil, noop, nil
	default:
		return nil, noop, fmt.Errorf("[App] unknown report store %q", cfg.ReportStore)
	}
}

type pinger interface {
	Ping(ctx context.Context) error
}

// StoreCheck turns a store's Ping into a health check. Stores without one
// are always healthy.
func StoreCheck(store processing.ReportStore) func(ctx context.Context) bool {
	return func(ctx context.Context) bool {
		p, ok := store.(pinger)
		if !ok {
			return true
		}
		if err := p.Ping(ctx); err != nil {
			slog.Warn("[App] Report store ping failed", slog.String("error", err.Error()))
			return false
		}
		return true
	}
}
