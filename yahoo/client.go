// Package yahoo provides a homereturn.QuoteSource on the Yahoo Finance chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/homereturn"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL        = "https://query1.finance.yahoo.com"
	DefaultHistoryTimeout = 15 * time.Second
	DefaultLiveTimeout    = 10 * time.Second
	DefaultRateLimit      = 5 // requests per second

	// Yahoo rejects requests without a browser user agent.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Client queries Yahoo Finance.
type Client struct {
	baseURL string
	history *http.Client
	live    *http.Client
	logger  zerolog.Logger
	limiter *rate.Limiter

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

// WithTimeout sets the HTTP timeout of both historical and live requests.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.history.Timeout = timeout
		c.live.Timeout = timeout
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithCacheDir caches historical responses in dir for the day. Live requests are never cached.
func WithCacheDir(dir string) ClientOption {
	return func(c *Client) {
		c.cacheDir = dir
	}
}

// NewClient creates a new Yahoo Finance client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		history: &http.Client{Timeout: DefaultHistoryTimeout},
		live:    &http.Client{Timeout: DefaultLiveTimeout},
		logger:  zerolog.Nop(),
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cacheDir != "" {
		c.history.Transport = &homereturn.CachingTransport{Dir: c.cacheDir, Logger: c.logger}
	}
	return c
}

// Symbol returns the Yahoo symbol of a currency pair, like "EURUSD=X".
func Symbol(pair homereturn.Pair) string { return pair.String() + "=X" }

// APIError represents a non 200 answer.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("yahoo API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request and decodes the JSON answer into result.
func (c *Client) get(ctx context.Context, client *http.Client, path string, params url.Values, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug().Str("url", c.baseURL+path).Msg("yahoo API request")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &APIError{StatusCode: resp.StatusCode, Message: string(body), Endpoint: path}
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// chartResponse is the subset of the chart payload used for daily series.
// Yahoo reports missing samples as null.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				GMTOffset int64 `json:"gmtoffset"`
			} `json:"meta"`
			Timestamp  []*int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Series implements homereturn.QuoteSource.
func (c *Client) Series(ctx context.Context, pair homereturn.Pair, from, to homereturn.Date) ([]homereturn.Quote, error) {
	params := url.Values{}
	params.Set("period1", strconv.FormatInt(from.Time().Unix(), 10))
	params.Set("period2", strconv.FormatInt(to.Add(1).Time().Unix(), 10))
	params.Set("interval", "1d")

	var chart chartResponse
	if err := c.get(ctx, c.history, "/v8/finance/chart/"+Symbol(pair), params, &chart); err != nil {
		return nil, err
	}
	if e := chart.Chart.Error; e != nil {
		return nil, fmt.Errorf("yahoo chart %s: %s: %s", Symbol(pair), e.Code, e.Description)
	}

	var quotes []homereturn.Quote
	for _, res := range chart.Chart.Result {
		if len(res.Indicators.Quote) == 0 {
			continue
		}
		closes := res.Indicators.Quote[0].Close
		for i, ts := range res.Timestamp {
			if ts == nil || i >= len(closes) || closes[i] == nil {
				continue
			}
			// timestamps are the start of the trading day in the exchange time zone.
			on := homereturn.DateOf(time.Unix(*ts+res.Meta.GMTOffset, 0).UTC())
			quotes = append(quotes, homereturn.Quote{Date: on, Close: decimal.NewFromFloat(*closes[i])})
		}
	}
	c.logger.Debug().Str("pair", pair.String()).Stringer("from", from).Stringer("to", to).Int("samples", len(quotes)).Msg("yahoo series")
	return quotes, nil
}

// Latest implements homereturn.QuoteSource.
//
// It reads the regular market price of the chart endpoint, and falls back to the quote endpoint.
func (c *Client) Latest(ctx context.Context, pair homereturn.Pair) (decimal.Decimal, error) {
	symbol := Symbol(pair)

	var chart any
	err := c.get(ctx, c.live, "/v8/finance/chart/"+symbol, nil, &chart)
	if err == nil {
		var price decimal.Decimal
		price, err = extractPrice(chart, "$.chart.result[0].meta.regularMarketPrice")
		if err == nil {
			return price, nil
		}
	}
	c.logger.Warn().Err(err).Str("pair", pair.String()).Msg("no chart price, trying the quote endpoint")

	params := url.Values{}
	params.Set("symbols", symbol)
	var quote any
	if err := c.get(ctx, c.live, "/v7/finance/quote", params, &quote); err != nil {
		return decimal.Zero, err
	}
	return extractPrice(quote, "$.quoteResponse.result[0].regularMarketPrice")
}

// extractPrice returns the positive number at path in the decoded JSON jobj.
func extractPrice(jobj any, path string) (decimal.Decimal, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error parsing %q: %w", path, err)
	}
	// jsonpath may return a list of one answer instead of the answer.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok || val <= 0 {
		return decimal.Zero, fmt.Errorf("error parsing %q: not a price %v", path, jval)
	}
	return decimal.NewFromFloat(val), nil
}

var _ homereturn.QuoteSource = (*Client)(nil)
