package sentiment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spacesedan/trendscope/internal/models"
)

var ErrLexiconOverlap = errors.New("lexicon word is both positive and negative")

// DefaultEpsilon keeps the compound ratio finite when no lexicon word
// matched.
const DefaultEpsilon = 0.001

var (
	DefaultPositiveWords = []string{
		"上漲", "增長", "提高", "發展", "利好", "看好", "突破", "強勁",
		"優質", "穩健", "回升", "獲利", "盈利", "成功", "領先", "創新",
		"機遇", "繁榮", "積極", "樂觀", "良好", "優勢", "擴張", "改善",
	}
	DefaultNegativeWords = []string{
		"下跌", "降低", "減少", "虧損", "風險", "危機", "擔憂", "問題",
		"下滑", "疲軟", "衰退", "失敗", "困難", "挑戰", "壓力", "負面",
		"違規", "處罰", "調查", "訴訟", "悲觀", "萎縮", "下降", "惡化",
	}
)

// Lexicon is a pair of disjoint positive and negative word sets.
type Lexicon struct {
	positive map[string]struct{}
	negative map[string]struct{}
}

func NewLexicon(positive, negative []string) (*Lexicon, error) {
	l := &Lexicon{
		positive: make(map[string]struct{}, len(positive)),
		negative: make(map[string]struct{}, len(negative)),
	}
	for _, w := range positive {
		if w = strings.TrimSpace(w); w != "" {
			l.positive[w] = struct{}{}
		}
	}
	for _, w := range negative {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if _, dup := l.positive[w]; dup {
			return nil, fmt.Errorf("[Lexicon] %q: %w", w, ErrLexiconOverlap)
		}
		l.negative[w] = struct{}{}
	}
	return l, nil
}

func DefaultLexicon() *Lexicon {
	l, err := NewLexicon(DefaultPositiveWords, DefaultNegativeWords)
	if err != nil {
		panic(err)
	}
	return l
}

func (l *Lexicon) IsPositive(word string) bool {
	_, ok := l.positive[word]
	return ok
}

func (l *Lexicon) IsNegative(word string) bool {
	_, ok := l.negative[word]
	return ok
}

func (l *Lexicon) Size() (positive, negative int) {
	return len(l.positive), len(l.negative)
}

// LexiconScorer scores CJK text by lexicon word frequency.
type LexiconScorer struct {
	lexicon   *Lexicon
	segmenter Segmenter
	epsilon   float64
}

func NewLexiconScorer(lexicon *Lexicon, segmenter Segmenter, epsilon float64) *LexiconScorer {
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	return &LexiconScorer{lexicon: lexicon, segmenter: segmenter, epsilon: epsilon}
}

func (s *LexiconScorer) Score(text string) models.PolarityScore {
	tokens := s.segmenter.Segment(text)
	if len(tokens) == 0 {
		return models.NeutralPolarity
	}

	var posCount, negCount int
	for _, tok := range tokens {
		switch {
		case s.lexicon.IsPositive(tok):
			posCount++
		case s.lexicon.IsNegative(tok):
			negCount++
		}
	}

	n := float64(len(tokens))
	pos := float64(posCount) / n
	neg := float64(negCount) / n
	return models.PolarityScore{
		Pos:      pos,
		Neg:      neg,
		Neu:      1 - pos - neg,
		Compound: (pos - neg) / (pos + neg + s.epsilon),
	}
}
