package sentiment

import (
	"strings"
	"sync"

	"github.com/spacesedan/trendscope/internal/models"
)

// fieldSegmenter splits on spaces, or returns canned tokens when set.
type fieldSegmenter struct {
	mu     sync.Mutex
	tokens map[string][]string
	calls  int
}

func (s *fieldSegmenter) Segment(text string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if toks, ok := s.tokens[text]; ok {
		return toks
	}
	return strings.Fields(text)
}

type stubPolarity struct {
	mu     sync.Mutex
	scores map[string]models.PolarityScore
	calls  int
}

func (p *stubPolarity) PolarityScores(text string) models.PolarityScore {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if s, ok := p.scores[text]; ok {
		return s
	}
	return models.NeutralPolarity
}

type stubKeywords struct {
	terms   []models.WeightedTerm
	corpora []string
	topN    int
}

func (k *stubKeywords) ExtractKeywords(corpus string, topN int) []models.WeightedTerm {
	k.corpora = append(k.corpora, corpus)
	k.topN = topN
	return append([]models.WeightedTerm(nil), k.terms...)
}
