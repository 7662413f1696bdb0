// Package brokerlink provides a client for the Brokerlink aggregation API,
// the brokerage-data provider behind portfolio sync.
package brokerlink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/folioworks/folioboard/internal/common"
	"github.com/folioworks/folioboard/internal/models"
)

const (
	DefaultBaseURL   = "https://api.brokerlink.io"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Client implements the BrokerageClient interface
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

// NewClient creates a new Brokerlink client
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
	return fmt.Sprintf("brokerlink API error %d at %s: %s", e.StatusCode, e.Endpoint, e.Message)
}

// Wire types for the holdings endpoint.
type holdingsResponse struct {
	Accounts     []wireAccount `json:"accounts"`
	LastSyncedAt time.Time     `json:"last_synced_at"`
}

type wireAccount struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	NumberMasked string         `json:"number_masked"`
	Positions    []wirePosition `json:"positions"`
}

type wirePosition struct {
	ID         string   `json:"id"`
	Symbol     string   `json:"symbol"`
	Kind       string   `json:"kind"`
	Units      float64  `json:"units"`
	AvgCost    float64  `json:"average_purchase_price"`
	LastPrice  *float64 `json:"last_price"`
	OpenPnL    *float64 `json:"open_pnl"`
	Strike     float64  `json:"strike_price,omitempty"`
	Expiration string   `json:"expiration_date,omitempty"`
	Underlying string   `json:"underlying_symbol,omitempty"`
	OptionKind string   `json:"option_type,omitempty"`
}

// GetSnapshot retrieves all accounts and positions for a user's connection.
func (c *Client) GetSnapshot(ctx context.Context, userID string) (*models.ProviderSnapshot, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	endpoint := fmt.Sprintf("/v1/users/%s/holdings", url.PathEscape(userID))
	var resp holdingsResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	accounts := make([]models.Account, 0, len(resp.Accounts))
	for _, wa := range resp.Accounts {
		acct := models.Account{
			ID:           wa.ID,
			Name:         wa.Name,
			NumberMasked: wa.NumberMasked,
			Positions:    make([]models.Position, 0, len(wa.Positions)),
		}
		for _, wp := range wa.Positions {
			acct.Positions = append(acct.Positions, wp.toModel())
		}
		accounts = append(accounts, acct)
	}

	lastSynced := resp.LastSyncedAt
	if lastSynced.IsZero() {
		lastSynced = time.Now().UTC()
	}

	c.logger.Debug().
		Str("user_id", userID).
		Int("accounts", len(accounts)).
		Msg("Brokerlink holdings fetched")

	return &models.ProviderSnapshot{
		Accounts:     accounts,
		LastSyncedAt: lastSynced,
	}, nil
}

func (wp wirePosition) toModel() models.Position {
	pos := models.Position{
		ID:        wp.ID,
		Symbol:    wp.Symbol,
		Kind:      models.InstrumentKind(wp.Kind),
		Units:     wp.Units,
		AvgCost:   wp.AvgCost,
		LastPrice: wp.LastPrice,
		OpenPnL:   wp.OpenPnL,
	}
	if pos.Kind != models.InstrumentOption {
		pos.Kind = models.InstrumentEquity
	} else {
		pos.Strike = wp.Strike
		pos.Underlying = wp.Underlying
		pos.OptionKind = models.OptionKind(wp.OptionKind)
		if exp, err := time.Parse("2006-01-02", wp.Expiration); err == nil {
			pos.Expiration = exp
		}
	}
	return pos
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
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
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
