package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spacesedan/trendscope/internal/sentiment"
	"github.com/spacesedan/trendscope/internal/trend"
	"github.com/spf13/viper"
)

// Profile tunes the scoring engine. It is read from an optional
// trendscope.{yaml,toml,json} file and TRENDSCOPE_* variables.
type Profile struct {
	Sentiment SentimentProfile `mapstructure:"sentiment"`
	Trend     TrendProfile     `mapstructure:"trend"`
}

type SentimentProfile struct {
	PositiveWords     []string `mapstructure:"positive_words"`
	NegativeWords     []string `mapstructure:"negative_words"`
	PositiveThreshold float64  `mapstructure:"positive_threshold"`
	NegativeThreshold float64  `mapstructure:"negative_threshold"`
	Epsilon           float64  `mapstructure:"epsilon"`
	KeywordCount      int      `mapstructure:"keyword_count"`
	Markdown          bool     `mapstructure:"markdown"`
}

type TrendProfile struct {
	DecayFactor         float64 `mapstructure:"decay_factor"`
	PositiveWeight      float64 `mapstructure:"positive_weight"`
	NegativeWeight      float64 `mapstructure:"negative_weight"`
	MomentumWeight      float64 `mapstructure:"momentum_weight"`
	MinMomentumArticles int     `mapstructure:"min_momentum_articles"`
	BullishThreshold    float64 `mapstructure:"bullish_threshold"`
	BearishThreshold    float64 `mapstructure:"bearish_threshold"`
	Undated             string  `mapstructure:"undated"`
	Locale              string  `mapstructure:"locale"`
	Timezone            string  `mapstructure:"timezone"`
}

// LoadProfile reads the profile at path, or searches ./ and ./config for
// trendscope.* when path is empty. A missing search-path file is not an
// error.
func LoadProfile(path string) (*Profile, error) {
	v := viper.New()
	setProfileDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("trendscope")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("TRENDSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("[Profile] error reading profile: %w", err)
		}
	}

	var p Profile
	if err := v.Unmarshal(&p); err != nil {
		return nil, fmt.Errorf("[Profile] error unmarshaling profile: %w", err)
	}
	return &p, nil
}

func setProfileDefaults(v *viper.Viper) {
	sc := sentiment.DefaultConfig()
	v.SetDefault("sentiment.positive_words", sentiment.DefaultPositiveWords)
	v.SetDefault("sentiment.negative_words", sentiment.DefaultNegativeWords)
	v.SetDefault("sentiment.positive_threshold", sc.Thresholds.Positive)
	v.SetDefault("sentiment.negative_threshold", sc.Thresholds.Negative)
	v.SetDefault("sentiment.epsilon", sc.Epsilon)
	v.SetDefault("sentiment.keyword_count", sc.KeywordCount)
	v.SetDefault("sentiment.markdown", false)

	tc := trend.DefaultConfig()
	v.SetDefault("trend.decay_factor", tc.DecayFactor)
	v.SetDefault("trend.positive_weight", tc.PositiveWeight)
	v.SetDefault("trend.negative_weight", tc.NegativeWeight)
	v.SetDefault("trend.momentum_weight", tc.MomentumWeight)
	v.SetDefault("trend.min_momentum_articles", tc.MinMomentumArticles)
	v.SetDefault("trend.bullish_threshold", tc.BullishThreshold)
	v.SetDefault("trend.bearish_threshold", tc.BearishThreshold)
	v.SetDefault("trend.undated", tc.Undated.String())
	v.SetDefault("trend.locale", string(tc.Locale))
	v.SetDefault("trend.timezone", "Local")
}

// SentimentConfig builds the analyzer configuration. Overlapping lexicon
// words are rejected here.
func (p *Profile) SentimentConfig(workers int) (sentiment.Config, error) {
	lex, err := sentiment.NewLexicon(p.Sentiment.PositiveWords, p.Sentiment.NegativeWords)
	if err != nil {
		return sentiment.Config{}, err
	}
	if p.Sentiment.PositiveThreshold < p.Sentiment.NegativeThreshold {
		return sentiment.Config{}, errors.New("[Profile] positive_threshold must not be below negative_threshold")
	}

	return sentiment.Config{
		Lexicon: lex,
		Thresholds: sentiment.Thresholds{
			Positive: p.Sentiment.PositiveThreshold,
			Negative: p.Sentiment.NegativeThreshold,
		},
		Epsilon:      p.Sentiment.Epsilon,
		KeywordCount: p.Sentiment.KeywordCount,
		Markdown:     p.Sentiment.Markdown,
		Workers:      workers,
	}, nil
}

func (p *Profile) TrendConfig() (trend.Config, error) {
	cfg := trend.DefaultConfig()

	undated, err := trend.ParseUndatedPolicy(p.Trend.Undated)
	if err != nil {
		return cfg, err
	}
	locale, err := trend.ParseLocale(p.Trend.Locale)
	if err != nil {
		return cfg, err
	}
	loc, err := time.LoadLocation(p.Trend.Timezone)
	if err != nil {
		return cfg, fmt.Errorf("[Profile] invalid timezone %q: %w", p.Trend.Timezone, err)
	}
	if p.Trend.DecayFactor <= 0 || p.Trend.DecayFactor > 1 {
		return cfg, fmt.Errorf("[Profile] decay_factor must be in (0, 1], got %v", p.Trend.DecayFactor)
	}
	// momentum compares two halves, each needs at least one article
	if p.Trend.MinMomentumArticles < 2 {
		return cfg, fmt.Errorf("[Profile] min_momentum_articles must be at least 2, got %d", p.Trend.MinMomentumArticles)
	}

	cfg.DecayFactor = p.Trend.DecayFactor
	cfg.PositiveWeight = p.Trend.PositiveWeight
	cfg.NegativeWeight = p.Trend.NegativeWeight
	cfg.MomentumWeight = p.Trend.MomentumWeight
	cfg.MinMomentumArticles = p.Trend.MinMomentumArticles
	cfg.BullishThreshold = p.Trend.BullishThreshold
	cfg.BearishThreshold = p.Trend.BearishThreshold
	cfg.Undated = undated
	cfg.Locale = locale
	cfg.Location = loc
	return cfg, nil
}
