package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

var (
	// ErrMissingAPIKey means NEWS_API_KEY is absent; operator-fixable.
	ErrMissingAPIKey = errors.New("news api key is not configured")

	// ErrRateLimited maps the upstream 429 so handlers can pass it through.
	ErrRateLimited = errors.New("news api rate limit exceeded")

	// ErrInvalidKey maps the upstream 401.
	ErrInvalidKey = errors.New("news api key rejected")
)

const defaultBaseURL = "https://newsapi.org/v2/everything"

// Client talks to the NewsAPI.org everything endpoint.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a NewsAPI client. Fails fast when apiKey is empty.
func NewClient(apiKey string, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: defaultBaseURL,
	}, nil
}

// WithBaseURL points the client at a different endpoint. Used by tests.
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = base
	return c
}

// Search runs a full-text query, newest articles first.
func (c *Client) Search(ctx context.Context, query, language string, pageSize int) ([]RawArticle, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("apiKey", c.apiKey)
	params.Set("language", language)
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", fmt.Sprintf("%d", pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusUnauthorized:
		return nil, ErrInvalidKey
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("news api error: status %d: %s", resp.StatusCode, body)
	}

	var payload struct {
		Articles []RawArticle `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode news response: %w", err)
	}
	return payload.Articles, nil
}

// RawArticle is the upstream article shape.
type RawArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}
