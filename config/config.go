package config

import (
	"errors"
	"fmt"
	"time"

	"go-simpler.org/env"
)

type Config struct {
	AppEnv    string `env:"APP_ENV" default:"dev"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	ProfilePath    string   `env:"TRENDSCOPE_PROFILE"`
	ScoringWorkers int      `env:"SCORING_WORKERS" default:"4"`
	DictFiles      []string `env:"GSE_DICT_FILES"`

	HTTPAddr string `env:"HTTP_ADDR" default:":8080"`

	FeedURLs           []string      `env:"RSS_FEED_URLS"`
	NewsAPIKey         string        `env:"NEWS_API_KEY"`
	RedditClientID     string        `env:"REDDIT_CLIENT_ID"`
	RedditClientSecret string        `env:"REDDIT_CLIENT_SECRET"`
	Subreddits         []string      `env:"REDDIT_SUBREDDITS" default:"investing,stocks,wallstreetbets,finance"`
	ProviderInterval   time.Duration `env:"PROVIDER_MIN_INTERVAL" default:"1s"`
	FetchLimit         int           `env:"FETCH_LIMIT" default:"10"`
	FetchHours         int           `env:"FETCH_HOURS" default:"24"`

	Watchlist     []string `env:"WATCHLIST"`
	FetchSchedule string   `env:"FETCH_SCHEDULE" default:"@every 30m"`

	ReportStore   string `env:"REPORT_STORE" default:"sqlite"`
	SQLitePath    string `env:"SQLITE_PATH" default:"trendscope.db"`
	DynamoDBTable string `env:"DYNAMODB_REPORTS_TABLE" default:"TrendReports"`
	AWSRegion     string `env:"AWS_REGION" default:"us-west-2"`
	AWSEndpoint   string `env:"AWS_ENDPOINT"`
}

// Load reads Config from the environment. Call LoadEnv first to pull in
// an env file.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Load(&cfg, &env.Options{SliceSep: ","}); err != nil {
		return nil, fmt.Errorf("[Config] failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.ReportStore {
	case "sqlite", "dynamodb", "none":
	default:
		return fmt.Errorf("[Config] REPORT_STORE must be sqlite, dynamodb or none, got %q", cfg.ReportStore)
	}
	if cfg.FetchLimit <= 0 {
		return errors.New("[Config] FETCH_LIMIT must be positive")
	}
	if cfg.FetchHours <= 0 {
		return errors.New("[Config] FETCH_HOURS must be positive")
	}
	if cfg.ScoringWorkers < 0 {
		return errors.New("[Config] SCORING_WORKERS must not be negative")
	}
	return nil
}
