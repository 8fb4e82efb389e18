package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spacesedan/trendscope/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var aggNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type stubProvider struct {
	name    string
	records []models.NewsRecord
	err     error
	queries []Query
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Fetch(_ context.Context, q Query) ([]models.NewsRecord, error) {
	s.queries = append(s.queries, q)
	return s.records, s.err
}

func dated(title string, at time.Time) models.NewsRecord {
	return models.NewsRecord{Title: title, Timestamp: models.TimestampFromTime(at)}
}

func TestAggregatorMergesInRegistrationOrder(t *testing.T) {
	a := &stubProvider{name: "a", records: []models.NewsRecord{dated("a1", aggNow)}}
	b := &stubProvider{name: "b", records: []models.NewsRecord{dated("b1", aggNow), dated("b2", aggNow)}}
	agg := NewAggregator(0, clockwork.NewFakeClockAt(aggNow), a, b)

	got, err := agg.Fetch(context.Background(), SourceAll, Query{Keyword: "tsmc", Limit: 10, Hours: 24})
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, "a1", got[0].Title)
	assert.Equal(t, "b2", got[2].Title)
	assert.Equal(t, []string{"a", "b"}, agg.Sources())
	assert.Equal(t, "tsmc", a.queries[0].Keyword)
}

func TestAggregatorSingleSource(t *testing.T) {
	a := &stubProvider{name: "a", records: []models.NewsRecord{{Title: "a1"}}}
	b := &stubProvider{name: "b", records: []models.NewsRecord{{Title: "b1"}}}
	agg := NewAggregator(0, clockwork.NewFakeClockAt(aggNow), a, b)

	got, err := agg.Fetch(context.Background(), "B", Query{})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "b1", got[0].Title)
	assert.Empty(t, a.queries)
}

func TestAggregatorUnknownSource(t *testing.T) {
	agg := NewAggregator(0, nil, &stubProvider{name: "a"})

	_, err := agg.Fetch(context.Background(), "yahoo", Query{})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestAggregatorSkipsFailingProvider(t *testing.T) {
	bad := &stubProvider{name: "bad", err: errors.New("boom")}
	good := &stubProvider{name: "good", records: []models.NewsRecord{{Title: "ok"}}}
	agg := NewAggregator(0, clockwork.NewFakeClockAt(aggNow), bad, good)

	got, err := agg.Fetch(context.Background(), SourceAll, Query{})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestAggregatorAllFailed(t *testing.T) {
	agg := NewAggregator(0, nil,
		&stubProvider{name: "a", err: errors.New("down")},
		&stubProvider{name: "b", err: errors.New("down")},
	)

	_, err := agg.Fetch(context.Background(), SourceAll, Query{})
	assert.ErrorIs(t, err, ErrAllProvidersFailed)
}

func TestAggregatorWindowAndLimit(t *testing.T) {
	p := &stubProvider{name: "p", records: []models.NewsRecord{
		dated("fresh", aggNow.Add(-time.Hour)),
		dated("stale", aggNow.Add(-48*time.Hour)),
		{Title: "undated"},
		dated("fresh2", aggNow.Add(-2*time.Hour)),
		dated("fresh3", aggNow.Add(-3*time.Hour)),
	}}
	agg := NewAggregator(0, clockwork.NewFakeClockAt(aggNow), p)

	got, err := agg.Fetch(context.Background(), "p", Query{Limit: 3, Hours: 24})
	require.NoError(t, err)

	titles := make([]string, len(got))
	for i, r := range got {
		titles[i] = r.Title
	}
	assert.Equal(t, []string{"fresh", "undated", "fresh2"}, titles)
}
