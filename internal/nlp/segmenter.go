package nlp

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-ego/gse"
	"github.com/go-ego/gse/hmm/idf"
	"github.com/spacesedan/trendscope/internal/models"
)

var (
	segmenterInstance *Segmenter
	segmenterOnce     sync.Once
	segmenterErr      error
)

// Segmenter wraps a gse dictionary segmenter. gse loads its dictionaries
// once and is safe for concurrent Cut calls afterwards.
type Segmenter struct {
	seg gse.Segmenter
	tag *idf.TagExtracter
}

// NewSegmenter loads the given dictionary files, or the embedded default
// dictionary when none are given.
func NewSegmenter(dictFiles ...string) (*Segmenter, error) {
	slog.Info("[Segmenter] Loading dictionaries...", slog.Int("files", len(dictFiles)))

	seg, err := gse.New(dictFiles...)
	if err != nil {
		return nil, fmt.Errorf("[Segmenter] failed to load dictionaries: %w", err)
	}

	tag := &idf.TagExtracter{}
	tag.WithGse(seg)
	if err := tag.LoadIdf(); err != nil {
		return nil, fmt.Errorf("[Segmenter] failed to load idf table: %w", err)
	}

	slog.Info("[Segmenter] Dictionaries loaded")
	return &Segmenter{seg: seg, tag: tag}, nil
}

// GetSegmenter returns the process-wide segmenter built from the default
// dictionary.
func GetSegmenter() (*Segmenter, error) {
	segmenterOnce.Do(func() {
		segmenterInstance, segmenterErr = NewSegmenter()
	})
	return segmenterInstance, segmenterErr
}

// Segment cuts text with HMM enabled so unknown words still split.
func (s *Segmenter) Segment(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return s.seg.Cut(text, true)
}

// ExtractKeywords ranks the corpus terms by TF-IDF.
func (s *Segmenter) ExtractKeywords(corpus string, topN int) []models.WeightedTerm {
	if strings.TrimSpace(corpus) == "" || topN <= 0 {
		return nil
	}

	tags := s.tag.ExtractTags(corpus, topN)
	terms := make([]models.WeightedTerm, 0, len(tags))
	for _, t := range tags {
		terms = append(terms, models.WeightedTerm{Term: t.Text, Weight: t.Weight})
	}
	return terms
}
