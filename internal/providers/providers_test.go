package providers

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mmcdole/gofeed"
	"github.com/spacesedan/trendscope/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Market Wire</title>
<item><title>TSMC shares rally</title><description><![CDATA[<p>Chip <b>demand</b> surges</p>]]></description>
<link>https://example.com/1</link><pubDate>Wed, 01 May 2024 09:00:00 GMT</pubDate></item>
<item><title>Oil slips</title><description>Crude falls</description><link>https://example.com/2</link></item>
</channel></rss>`

func TestFeedRecords(t *testing.T) {
	feed, err := gofeed.NewParser().ParseString(sampleFeed)
	require.NoError(t, err)

	all := FeedRecords(feed, "")
	require.Len(t, all, 2)
	assert.Equal(t, "Chip demand surges", all[0].Summary)
	assert.Equal(t, "rss:Market Wire", all[0].Source)
	assert.Equal(t, "2024-05-01 09:00:00", all[0].Timestamp.String())
	assert.True(t, all[1].Timestamp.IsZero())

	matched := FeedRecords(feed, "tsmc")
	require.Len(t, matched, 1)
	assert.Equal(t, "TSMC shares rally", matched[0].Title)
}

func TestHTMLToText(t *testing.T) {
	assert.Equal(t, "plain text", HTMLToText("  plain text "))
	assert.Equal(t, "a b", HTMLToText("<div>a</div> <span>b</span>"))
}

func TestDecodeRecords(t *testing.T) {
	t.Run("array with alternate timestamp keys", func(t *testing.T) {
		recs, err := DecodeRecords(strings.NewReader(`[
			{"title":"a","published_time":"2024-05-01 09:00:00"},
			{"title":"b","timestamp":"2024-05-01 10:00:00"},
			{"title":"c","date":"2024-05-01"},
			{"title":"d"}
		]`))
		require.NoError(t, err)
		require.Len(t, recs, 4)
		assert.Equal(t, "2024-05-01 09:00:00", recs[0].Timestamp.String())
		assert.Equal(t, "2024-05-01 10:00:00", recs[1].Timestamp.String())
		assert.Equal(t, "2024-05-01", recs[2].Timestamp.String())
		assert.Equal(t, models.UnknownDate, recs[3].Timestamp.String())
	})

	t.Run("data envelope", func(t *testing.T) {
		recs, err := DecodeRecords(strings.NewReader(`{"status":"success","data":[{"title":"x","summary":"y"}],"count":1}`))
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "y", recs[0].Summary)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := DecodeRecords(strings.NewReader(`not json`))
		assert.Error(t, err)
	})
}

func TestFileProviderFiltersKeyword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"title":"台積電 上漲"},{"title":"鴻海 下跌"}]`), 0o600))

	recs, err := NewFileProvider(path).Fetch(context.Background(), Query{Keyword: "台積電"})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "台積電 上漲", recs[0].Title)
}

type stubNewsAPI struct {
	from time.Time
	size int
	res  *models.NewsAPIEverythingResponse
}

func (s *stubNewsAPI) Everything(_ context.Context, _ string, from time.Time, pageSize int) (*models.NewsAPIEverythingResponse, error) {
	s.from, s.size = from, pageSize
	return s.res, nil
}

func TestNewsAPIProvider(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	stub := &stubNewsAPI{res: &models.NewsAPIEverythingResponse{Articles: []models.NewsAPIArticle{
		{Title: "Rates hold"},
		{Title: "[Removed]"},
	}}}
	p := NewNewsAPIProvider(stub, clockwork.NewFakeClockAt(now))

	recs, err := p.Fetch(context.Background(), Query{Keyword: "fed", Limit: 5, Hours: 6})
	require.NoError(t, err)

	assert.Len(t, recs, 1)
	assert.Equal(t, now.Add(-6*time.Hour), stub.from)
	assert.Equal(t, 5, stub.size)
}

type stubReddit struct {
	subreddits string
	posts      []models.RedditPost
}

func (s *stubReddit) SearchPosts(_ context.Context, subreddits, _ string, _ int) ([]models.RedditPost, error) {
	s.subreddits = subreddits
	return s.posts, nil
}

func TestRedditProvider(t *testing.T) {
	stub := &stubReddit{posts: []models.RedditPost{{PostTitle: "NVDA beats", Subreddit: "stocks"}, {}}}
	p := NewRedditProvider(stub, []string{"stocks", "investing"})

	recs, err := p.Fetch(context.Background(), Query{Keyword: "nvda"})
	require.NoError(t, err)

	assert.Equal(t, "stocks+investing", stub.subreddits)
	require.Len(t, recs, 1)
	assert.Equal(t, "reddit:r/stocks", recs[0].Source)
}

func TestDefaultSubredditsStable(t *testing.T) {
	assert.Equal(t, DefaultSubreddits(), DefaultSubreddits())
	assert.Contains(t, DefaultSubreddits(), "wallstreetbets")
}
