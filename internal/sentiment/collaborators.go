package sentiment

import "github.com/spacesedan/trendscope/internal/models"

// Segmenter splits CJK text into words.
type Segmenter interface {
	Segment(text string) []string
}

// PolarityService scores text that is not routed to the CJK lexicon.
type PolarityService interface {
	PolarityScores(text string) models.PolarityScore
}

// KeywordExtractor returns up to topN weighted terms for a corpus.
type KeywordExtractor interface {
	ExtractKeywords(corpus string, topN int) []models.WeightedTerm
}
