package sentiment

import (
	"math"
	"sort"
	"strings"

	"github.com/spacesedan/trendscope/internal/models"
	"golang.org/x/sync/errgroup"
)

const DefaultKeywordCount = 10

type Config struct {
	Lexicon      *Lexicon
	Thresholds   Thresholds
	Epsilon      float64
	KeywordCount int
	// Markdown renders article text from markdown before cleaning.
	Markdown bool
	// Workers bounds concurrent article scoring. Zero or one scores
	// sequentially.
	Workers int
}

func DefaultConfig() Config {
	return Config{
		Lexicon:      DefaultLexicon(),
		Thresholds:   DefaultThresholds,
		Epsilon:      DefaultEpsilon,
		KeywordCount: DefaultKeywordCount,
	}
}

// Analyzer scores batches of news records and aggregates them into a
// corpus verdict.
type Analyzer struct {
	cfg      Config
	pre      Preprocessor
	lexicon  *LexiconScorer
	polarity PolarityService
	keywords KeywordExtractor
}

func NewAnalyzer(cfg Config, segmenter Segmenter, polarity PolarityService, keywords KeywordExtractor) *Analyzer {
	if cfg.KeywordCount <= 0 {
		cfg.KeywordCount = DefaultKeywordCount
	}
	if cfg.Thresholds == (Thresholds{}) {
		cfg.Thresholds = DefaultThresholds
	}
	return &Analyzer{
		cfg:      cfg,
		pre:      Preprocessor{Markdown: cfg.Markdown},
		lexicon:  NewLexiconScorer(cfg.Lexicon, segmenter, cfg.Epsilon),
		polarity: polarity,
		keywords: keywords,
	}
}

func (a *Analyzer) Thresholds() Thresholds {
	return a.cfg.Thresholds
}

// Score routes cleaned text to the pathway its script selects.
func (a *Analyzer) Score(text string) models.PolarityScore {
	switch DetectScript(text) {
	case ScriptChinese:
		return a.lexicon.Score(text)
	case ScriptForeign:
		return a.polarity.PolarityScores(text)
	default:
		return models.NeutralPolarity
	}
}

func (a *Analyzer) ScoreArticle(rec models.NewsRecord) models.ArticleSentiment {
	scores := a.Score(a.pre.Clean(rec.Text()))
	return models.ArticleSentiment{
		Title:     rec.Title,
		Sentiment: scores,
		Label:     a.cfg.Thresholds.Classify(scores.Compound),
		Date:      rec.Timestamp.String(),
		Published: rec.Timestamp,
	}
}

// Analyze scores every record and aggregates the batch. An empty batch
// yields a neutral result without calling any collaborator.
func (a *Analyzer) Analyze(records []models.NewsRecord) models.AggregateSentimentResult {
	if len(records) == 0 {
		return models.AggregateSentimentResult{
			OverallSentiment: models.LabelNeutral,
			NewsSentiments:   []models.ArticleSentiment{},
			Keywords:         []string{},
		}
	}

	articles := a.scoreAll(records)

	var sum float64
	for _, art := range articles {
		sum += art.Sentiment.Compound
	}
	avg := sum / float64(len(articles))

	return models.AggregateSentimentResult{
		OverallSentiment: a.cfg.Thresholds.Classify(avg),
		Confidence:       math.Abs(avg),
		AvgCompound:      avg,
		NewsSentiments:   articles,
		Keywords:         a.Keywords(records),
	}
}

func (a *Analyzer) scoreAll(records []models.NewsRecord) []models.ArticleSentiment {
	articles := make([]models.ArticleSentiment, len(records))
	if a.cfg.Workers <= 1 {
		for i, rec := range records {
			articles[i] = a.ScoreArticle(rec)
		}
		return articles
	}

	var g errgroup.Group
	g.SetLimit(a.cfg.Workers)
	for i, rec := range records {
		g.Go(func() error {
			articles[i] = a.ScoreArticle(rec)
			return nil
		})
	}
	_ = g.Wait()
	return articles
}

// Keywords extracts the most heavily weighted terms of the uncleaned
// corpus, heaviest first.
func (a *Analyzer) Keywords(records []models.NewsRecord) []string {
	if a.keywords == nil || len(records) == 0 {
		return []string{}
	}

	texts := make([]string, len(records))
	for i, rec := range records {
		texts[i] = rec.Text()
	}

	terms := a.keywords.ExtractKeywords(strings.Join(texts, " "), a.cfg.KeywordCount)
	sort.SliceStable(terms, func(i, j int) bool {
		return terms[i].Weight > terms[j].Weight
	})

	out := make([]string, 0, len(terms))
	for _, t := range terms {
		out = append(out, t.Term)
	}
	return out
}
