package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://api.coingecko.com/api/v3"
	defaultHTTPTimeout = 30 * time.Second
)

// Client wraps access to the CoinGecko REST API. It issues single requests
// with a bounded timeout and performs no retries; retry policy, if any,
// belongs to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// Option configures a new Client.
type Option func(*Client)

// WithHTTPClient injects a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithTimeout adjusts the per-request timeout on the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger injects a custom logger (defaults to log.Default()).
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient constructs a CoinGecko API client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

// Markets fetches one page of market data, ordered by market cap descending.
// Records come back in the provider's own order and shape; the client does
// not touch field values beyond JSON decoding.
func (c *Client) Markets(ctx context.Context, params MarketsParams) ([]RawMarketRecord, error) {
	params.normalise()
	if err := params.validate(); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("vs_currency", params.VsCurrency)
	query.Set("page", strconv.Itoa(params.Page))
	query.Set("per_page", strconv.Itoa(params.PerPage))
	query.Set("sparkline", strconv.FormatBool(params.Sparkline))
	query.Set("order", "market_cap_desc")

	body, err := c.get(ctx, "/coins/markets", query)
	if err != nil {
		return nil, err
	}

	var records []RawMarketRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, &TransportError{Op: "markets", Err: fmt.Errorf("decode response: %w", err)}
	}
	return records, nil
}

// Ping checks that the CoinGecko API is reachable and operational.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.get(ctx, "/ping", nil)
	return err
}

// get issues one GET request and returns the response body. Every failure
// mode surfaces as a *TransportError carrying the underlying cause.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	op := strings.TrimLeft(path, "/")
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("coingecko: %s request failed: %v", op, err)
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Printf("coingecko: %s returned status %d", op, resp.StatusCode)
		return nil, &TransportError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("%s", strings.TrimSpace(string(body)))}
	}
	return body, nil
}
