package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/spacesedan/trendscope/internal/models"
)

const NEWS_API_BASE_URL = "https://newsapi.org"

var (
	newsAPIInstance *NewsAPIClient
	newsAPIOnce     sync.Once
)

type NewsAPIClient struct {
	Client  *http.Client
	APIKey  string
	BaseURL string
}

func GetNewsAPIClient() *NewsAPIClient {
	newsAPIOnce.Do(func() {
		newsAPIInstance = &NewsAPIClient{
			Client:  &http.Client{Timeout: 15 * time.Second},
			APIKey:  os.Getenv("NEWS_API_KEY"),
			BaseURL: NEWS_API_BASE_URL,
		}
	})
	return newsAPIInstance
}

// Everything searches all indexed articles mentioning query published
// after from, newest first.
func (n *NewsAPIClient) Everything(ctx context.Context, query string, from time.Time, pageSize int) (*models.NewsAPIEverythingResponse, error) {
	if n.APIKey == "" {
		slog.Error("[NewsAPIClient] API key is missing")
		return nil, errors.New("[NewsAPIClient] API key is missing")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(pageSize))
	if !from.IsZero() {
		params.Set("from", from.UTC().Format(time.RFC3339))
	}
	endpoint := n.BaseURL + "/v2/everything?" + params.Encode()

	var lastErr error
	backoff := INITIAL_BACKOFF

	for attempt := 1; attempt <= MAX_RETRIES; attempt++ {
		slog.Debug("[NewsAPIClient] Searching articles",
			slog.String("query", query), slog.Int("attempt", attempt))

		response, retry, err := n.doEverything(ctx, endpoint)
		if err == nil {
			slog.Info("[NewsAPIClient] Successfully fetched articles",
				slog.String("query", query), slog.Int("count", len(response.Articles)))
			return response, nil
		}
		if !retry {
			return nil, err
		}

		lastErr = err
		slog.Warn("[NewsAPIClient] Request failed, retrying...",
			slog.String("error", err.Error()),
			slog.Duration("backoff", backoff),
			slog.Int("attempt", attempt))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = nextBackoff(backoff)
	}

	slog.Error("[NewsAPIClient] Failed after max retries")
	return nil, fmt.Errorf("[NewsAPIClient] failed after max retries: %w", lastErr)
}

func (n *NewsAPIClient) doEverything(ctx context.Context, endpoint string) (*models.NewsAPIEverythingResponse, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("X-Api-Key", n.APIKey)
	req.Header.Set("User-Agent", USER_AGENT)

	res, err := n.Client.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		var response models.NewsAPIEverythingResponse
		if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
			slog.Error("[NewsAPIClient] Failed to parse JSON response", slog.String("error", err.Error()))
			return nil, false, err
		}
		return &response, false, nil
	case http.StatusBadRequest:
		return nil, false, errors.New("[NewsAPIClient] Bad request: check query parameters")
	case http.StatusUnauthorized:
		return nil, false, errors.New("[NewsAPIClient] Invalid API Key, check credentials")
	case http.StatusForbidden:
		return nil, false, errors.New("[NewsAPIClient] API key lacks required permissions")
	case http.StatusTooManyRequests:
		_, _ = io.Copy(io.Discard, res.Body)
		return nil, true, errors.New("[NewsAPIClient] Rate limit exceeded")
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		return nil, true, fmt.Errorf("[NewsAPIClient] Server error: %d", res.StatusCode)
	default:
		return nil, false, fmt.Errorf("[NewsAPIClient] Unexpected status code: %d", res.StatusCode)
	}
}
