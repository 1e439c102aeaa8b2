// Package eodhd provides a homereturn.QuoteSource on the EODHD forex API.
package eodhd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/etnz/homereturn"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://eodhd.com/api"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second

	// DemoKey only serves a few tickers, EURUSD.FOREX among them.
	DemoKey = "demo"
)

// flexFloat64 handles JSON values that may be either a number or a string.
type flexFloat64 float64

func (f *flexFloat64) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat64(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		num, err := strconv.ParseFloat(s, 64)
		if err != nil {
			// "NA" and friends
			*f = 0
			return nil
		}
		*f = flexFloat64(num)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into float64", string(data))
}

// Client queries EODHD.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	liveClient *http.Client
	logger     zerolog.Logger
	limiter    *rate.Limiter

	cacheDir string
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
func WithLogger(logger zerolog.Logger) ClientOption {
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
		c.liveClient.Timeout = timeout
	}
}

// WithCacheDir caches end of day responses in dir for the day. Real time requests are never cached.
func WithCacheDir(dir string) ClientOption {
	return func(c *Client) {
		c.cacheDir = dir
	}
}

// NewClient creates a new EODHD client. An empty apiKey uses the demo key.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	if apiKey == "" {
		apiKey = DemoKey
	}
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		liveClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cacheDir != "" {
		c.httpClient.Transport = &homereturn.CachingTransport{Dir: c.cacheDir, Logger: c.logger}
	}
	return c
}

// Ticker returns the EODHD forex ticker of a currency pair, like "EURUSD.FOREX".
func Ticker(pair homereturn.Pair) string { return pair.String() + ".FOREX" }

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("EODHD API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, client *http.Client, path string, params url.Values, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_token", c.apiKey)
	params.Set("fmt", "json")

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("url", c.baseURL+path).Msg("EODHD API request")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// eodBar is one day of the /eod answer.
type eodBar struct {
	Date  homereturn.Date `json:"date"`
	Open  flexFloat64     `json:"open"`
	Close flexFloat64     `json:"close"`
}

// Series implements homereturn.QuoteSource.
//
// EODHD forex closes are unreliable, most of the time equal to the open. Instead the open of the
// next day is the closer to the truth, so it is used as the close of the day before.
func (c *Client) Series(ctx context.Context, pair homereturn.Pair, from, to homereturn.Date) ([]homereturn.Quote, error) {
	params := url.Values{}
	params.Set("from", from.Add(1).String())
	params.Set("to", to.Add(1).String())
	params.Set("period", "d")

	var bars []eodBar
	if err := c.get(ctx, c.httpClient, "/eod/"+Ticker(pair), params, &bars); err != nil {
		return nil, err
	}

	quotes := make([]homereturn.Quote, 0, len(bars))
	for _, bar := range bars {
		if bar.Open <= 0 {
			continue
		}
		quotes = append(quotes, homereturn.Quote{
			Date:  bar.Date.Add(-1),
			Close: decimal.NewFromFloat(float64(bar.Open)),
		})
	}
	c.logger.Debug().Str("pair", pair.String()).Stringer("from", from).Stringer("to", to).Int("samples", len(quotes)).Msg("EODHD series")
	return quotes, nil
}

// realTimeResponse is the /real-time answer.
type realTimeResponse struct {
	Code  string      `json:"code"`
	Close flexFloat64 `json:"close"`
}

// Latest implements homereturn.QuoteSource.
func (c *Client) Latest(ctx context.Context, pair homereturn.Pair) (decimal.Decimal, error) {
	var rt realTimeResponse
	if err := c.get(ctx, c.liveClient, "/real-time/"+Ticker(pair), nil, &rt); err != nil {
		return decimal.Zero, err
	}
	if rt.Close <= 0 {
		return decimal.Zero, fmt.Errorf("EODHD %s: no real time price", Ticker(pair))
	}
	return decimal.NewFromFloat(float64(rt.Close)), nil
}

var _ homereturn.QuoteSource = (*Client)(nil)
