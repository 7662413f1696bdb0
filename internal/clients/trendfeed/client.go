// Package trendfeed provides a client for the upstream trending-stocks
// feed. The feed ranks tickers by social mention volume and serves pages
// sorted by a requested key; it has no sentiment filter support.
package trendfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/folioworks/folioboard/internal/common"
	"github.com/folioworks/folioboard/internal/models"
)

const (
	DefaultBaseURL   = "https://feed.trendpulse.io"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 10 // requests per second
)

// Client implements the TrendFeedClient interface
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new trend feed client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("trendfeed API error %d at %s: %s", e.StatusCode, e.Endpoint, e.Message)
}

type trendingResponse struct {
	Stocks []models.TrendingStock `json:"stocks"`
}

type chartResponse struct {
	Closes []float64 `json:"closes"`
}

// GetTrending returns one upstream page sorted by the requested key.
func (c *Client) GetTrending(ctx context.Context, query models.TrendingQuery) ([]models.TrendingStock, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(query.Page))
	params.Set("page_size", strconv.Itoa(query.PageSize))
	if query.SortBy != "" {
		params.Set("sort_by", query.SortBy)
	}
	if query.SortOrder != "" {
		params.Set("sort_order", string(query.SortOrder))
	}
	if query.Query != "" {
		params.Set("q", query.Query)
	}

	var resp trendingResponse
	if err := c.get(ctx, "/v1/trending?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Int("page", query.Page).
		Int("page_size", query.PageSize).
		Int("rows", len(resp.Stocks)).
		Msg("Trending page fetched")

	return resp.Stocks, nil
}

// GetChart returns recent closes for a ticker.
func (c *Client) GetChart(ctx context.Context, ticker string) ([]float64, error) {
	if ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}
	var resp chartResponse
	if err := c.get(ctx, "/v1/charts/"+url.PathEscape(ticker), &resp); err != nil {
		return nil, err
	}
	return resp.Closes, nil
}

// get performs a rate-limited GET and decodes the JSON response.
func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   endpoint,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}
	return nil
}
