package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/spacesedan/trendscope/internal/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	REDDIT_AUTH_URL = "https://www.reddit.com/api/v1/access_token"
	REDDIT_API_URL  = "https://oauth.reddit.com"
)

var (
	redditClientInstance *RedditClient
	redditClientOnce     sync.Once
)

type RedditClient struct {
	Config  *clientcredentials.Config
	Client  *http.Client
	BaseURL string
	mu      sync.Mutex
}

func GetRedditClient() *RedditClient {
	redditClientOnce.Do(func() {
		oauthConf := &clientcredentials.Config{
			ClientID:     os.Getenv("REDDIT_CLIENT_ID"),
			ClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
			TokenURL:     REDDIT_AUTH_URL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		}

		redditClientInstance = &RedditClient{
			Config:  oauthConf,
			Client:  oauthConf.Client(context.Background()),
			BaseURL: REDDIT_API_URL,
		}
	})

	return redditClientInstance
}

func (rc *RedditClient) RefreshClient() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.Client = rc.Config.Client(context.Background())
}

func (rc *RedditClient) httpClient() *http.Client {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.Client
}

// SearchPosts searches the "+"-joined subreddits for query, newest first.
// An expired token is refreshed once; rate limiting is retried with
// backoff.
func (rc *RedditClient) SearchPosts(ctx context.Context, subreddits, query string, limit int) ([]models.RedditPost, error) {
	parsedURL, err := url.Parse(fmt.Sprintf("%s/r/%s/search", rc.BaseURL, subreddits))
	if err != nil {
		return nil, fmt.Errorf("[RedditClient] Failed to parse URL: %w", err)
	}
	queryParams := parsedURL.Query()
	queryParams.Set("q", query)
	queryParams.Set("sort", "new")
	queryParams.Set("restrict_sr", "1")
	queryParams.Set("limit", strconv.Itoa(limit))
	parsedURL.RawQuery = queryParams.Encode()

	backoff := INITIAL_BACKOFF
	refreshed := false
	for attempt := 1; attempt <= MAX_RETRIES; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsedURL.String(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", USER_AGENT)

		resp, err := rc.httpClient().Do(req)
		if err != nil {
			return nil, fmt.Errorf("[RedditClient] request failed: %w", err)
		}

		switch resp.StatusCode {
		case http.StatusOK:
			var body models.RedditAPIResponse
			err := json.NewDecoder(resp.Body).Decode(&body)
			resp.Body.Close()
			if err != nil {
				return nil, fmt.Errorf("[RedditClient] failed to decode response: %w", err)
			}
			posts := make([]models.RedditPost, 0, len(body.Data.Children))
			for _, child := range body.Data.Children {
				posts = append(posts, child.Data.ToRedditPost(query))
			}
			return posts, nil
		case http.StatusUnauthorized:
			resp.Body.Close()
			if refreshed {
				return nil, fmt.Errorf("[RedditClient] unauthorized after token refresh")
			}
			slog.Warn("[RedditClient] Token expired - Refreshing and Retrying...")
			rc.RefreshClient()
			refreshed = true
			continue
		case http.StatusTooManyRequests:
			resp.Body.Close()
			slog.Warn("[RedditClient] 429 Too Many Requests - Retrying with backoff",
				slog.Int("attempt", attempt), slog.Duration("backoff", backoff))
		default:
			resp.Body.Close()
			return nil, fmt.Errorf("[RedditClient] unexpected status code: %d", resp.StatusCode)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = nextBackoff(backoff)
	}
	return nil, fmt.Errorf("[RedditClient] Max retries reached request failed")
}
