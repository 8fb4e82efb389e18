package clients

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewsAPIEverything(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/everything", r.URL.Path)
		assert.Equal(t, "tsmc", r.URL.Query().Get("q"))
		assert.Equal(t, "5", r.URL.Query().Get("pageSize"))
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","totalResults":1,"articles":[
			{"source":{"id":"r","name":"Reuters"},"title":"TSMC rallies","description":"Chip demand","url":"https://x","publishedAt":"2024-05-01T09:00:00Z"}]}`))
	}))
	defer srv.Close()

	c := &NewsAPIClient{Client: srv.Client(), APIKey: "secret", BaseURL: srv.URL}

	res, err := c.Everything(context.Background(), "tsmc", time.Now().Add(-time.Hour), 5)
	require.NoError(t, err)
	require.Len(t, res.Articles, 1)

	rec := res.Articles[0].ToNewsRecord()
	assert.Equal(t, "TSMC rallies", rec.Title)
	assert.Equal(t, "Chip demand", rec.Summary)
	assert.Equal(t, "newsapi:Reuters", rec.Source)
	assert.Equal(t, "2024-05-01 09:00:00", rec.Timestamp.String())
}

func TestNewsAPIUnauthorizedIsNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := &NewsAPIClient{Client: srv.Client(), APIKey: "bad", BaseURL: srv.URL}

	_, err := c.Everything(context.Background(), "tsmc", time.Time{}, 5)
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestNewsAPIMissingKey(t *testing.T) {
	c := &NewsAPIClient{Client: http.DefaultClient}

	_, err := c.Everything(context.Background(), "tsmc", time.Time{}, 5)
	assert.Error(t, err)
}

func TestRedditSearchPosts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/r/stocks+investing/search", r.URL.Path)
		assert.Equal(t, "nvda", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"data":{"after":"","children":[
			{"data":{"subreddit":"stocks","title":"NVDA beats","selftext":"great quarter","created_utc":1714554000,"id":"abc","permalink":"/r/stocks/comments/abc/"}}]}}`))
	}))
	defer srv.Close()

	rc := &RedditClient{Client: srv.Client(), BaseURL: srv.URL}

	posts, err := rc.SearchPosts(context.Background(), "stocks+investing", "nvda", 25)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "NVDA beats", posts[0].PostTitle)
	assert.Equal(t, "nvda", posts[0].Query)

	rec := posts[0].ToNewsRecord()
	assert.Equal(t, "reddit:r/stocks", rec.Source)
	assert.Equal(t, "https://www.reddit.com/r/stocks/comments/abc/", rec.URL)
	assert.Equal(t, "2024-05-01 09:00:00", rec.Timestamp.String())
}

func TestKeyForNamespace(t *testing.T) {
	assert.Equal(t, VALKEY_NEWS_KEY, keyForNamespace("news"))
	assert.Equal(t, VALKEY_BATCHES_KEY, keyForNamespace("batch"))
	assert.Equal(t, "trendscope:processed_other", keyForNamespace("other"))
}

func TestIsConnectionError(t *testing.T) {
	assert.False(t, isConnectionError(nil))
	assert.True(t, isConnectionError(errors.New("dial tcp: connection refused")))
	assert.True(t, isConnectionError(errors.New("read: i/o timeout")))
	assert.False(t, isConnectionError(errors.New("WRONGTYPE")))
}

func TestNextBackoff(t *testing.T) {
	assert.Equal(t, 2*time.Second, nextBackoff(time.Second))
	assert.Equal(t, MAX_BACKOFF, nextBackoff(20*time.Second))
}
