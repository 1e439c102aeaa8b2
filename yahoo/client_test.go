package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/etnz/homereturn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var EURUSD = homereturn.Pair{From: homereturn.EUR, To: homereturn.USD}

// unix returns the timestamp of midnight UTC on d.
func unix(d homereturn.Date) int64 { return d.Time().Unix() }

func TestSeries_SkipsMissingSamples(t *testing.T) {
	d := homereturn.NewDate(2024, time.January, 8)

	var captured *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"chart":{"result":[{"meta":{"gmtoffset":0},
			"timestamp":[%d,%d,null,%d],
			"indicators":{"quote":[{"close":[1.0950,null,1.2,1.0987]}]}}],"error":null}}`,
			unix(d), unix(d.Add(1)), unix(d.Add(3)))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	quotes, err := client.Series(context.Background(), EURUSD, d.Add(-5), d.Add(5))
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/EURUSD=X", captured.URL.Path)
	assert.Equal(t, "1d", captured.URL.Query().Get("interval"))
	assert.Equal(t, fmt.Sprint(unix(d.Add(-5))), captured.URL.Query().Get("period1"))
	assert.Equal(t, fmt.Sprint(unix(d.Add(6))), captured.URL.Query().Get("period2"))
	assert.Contains(t, captured.Header.Get("User-Agent"), "Mozilla")

	require.Len(t, quotes, 2)
	assert.Equal(t, d, quotes[0].Date)
	assert.Equal(t, "1.095", quotes[0].Close.String())
	assert.Equal(t, d.Add(3), quotes[1].Date)
	assert.Equal(t, "1.0987", quotes[1].Close.String())
}

func TestSeries_GMTOffset(t *testing.T) {
	d := homereturn.NewDate(2024, time.July, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// London summer time: the day starts at 23:00 UTC the day before.
		fmt.Fprintf(w, `{"chart":{"result":[{"meta":{"gmtoffset":3600},"timestamp":[%d],
			"indicators":{"quote":[{"close":[1.07]}]}}]}}`, unix(d)-3600)
	}))
	defer srv.Close()

	quotes, err := NewClient(WithBaseURL(srv.URL)).Series(context.Background(), EURUSD, d, d)
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, d, quotes[0].Date)
}

func TestSeries_ChartError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
	}))
	defer srv.Close()

	d := homereturn.NewDate(2024, time.January, 8)
	_, err := NewClient(WithBaseURL(srv.URL)).Series(context.Background(), EURUSD, d, d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delisted")
}

func TestSeries_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	d := homereturn.NewDate(2024, time.January, 8)
	_, err := NewClient(WithBaseURL(srv.URL)).Series(context.Background(), EURUSD, d, d)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "want an APIError, got %v", err)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "/v8/finance/chart/EURUSD=X", apiErr.Endpoint)
}

func TestLatest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[{"meta":{"symbol":"EURUSD=X","regularMarketPrice":1.0842}}],"error":null}}`)
	}))
	defer srv.Close()

	price, err := NewClient(WithBaseURL(srv.URL)).Latest(context.Background(), EURUSD)
	require.NoError(t, err)
	assert.Equal(t, "1.0842", price.String())
}

func TestLatest_QuoteFallback(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/v8/finance/chart/EURUSD=X":
			fmt.Fprint(w, `{"chart":{"result":[{"meta":{"symbol":"EURUSD=X"}}],"error":null}}`)
		case "/v7/finance/quote":
			assert.Equal(t, "EURUSD=X", r.URL.Query().Get("symbols"))
			fmt.Fprint(w, `{"quoteResponse":{"result":[{"symbol":"EURUSD=X","regularMarketPrice":1.0851}]}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	price, err := NewClient(WithBaseURL(srv.URL)).Latest(context.Background(), EURUSD)
	require.NoError(t, err)
	assert.Equal(t, "1.0851", price.String())
	assert.Equal(t, []string{"/v8/finance/chart/EURUSD=X", "/v7/finance/quote"}, paths)
}

func TestLatest_NoPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[]},"quoteResponse":{"result":[]}}`)
	}))
	defer srv.Close()

	_, err := NewClient(WithBaseURL(srv.URL)).Latest(context.Background(), EURUSD)
	assert.Error(t, err)
}

func TestResolverOnYahoo(t *testing.T) {
	d := homereturn.NewDate(2024, time.January, 10)
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		// only one sample, 12 days after the requested date
		fmt.Fprintf(w, `{"chart":{"result":[{"meta":{"gmtoffset":0},"timestamp":[%d],
			"indicators":{"quote":[{"close":[1.1]}]}}]}}`, unix(d.Add(12)))
	}))
	defer srv.Close()

	resolver := homereturn.NewResolver(NewClient(WithBaseURL(srv.URL)))
	rate, err := resolver.HistoricalRate(context.Background(), d, homereturn.EUR, homereturn.USD)
	require.NoError(t, err)
	assert.Equal(t, 12, rate.Distance())
	// the sample is out of the first window, so the resolver widens.
	assert.Equal(t, 2, hits)
}

func TestCacheDir(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.URL.Query().Get("period1") != "" {
			fmt.Fprint(w, `{"chart":{"result":[]}}`)
			return
		}
		fmt.Fprint(w, `{"chart":{"result":[{"meta":{"regularMarketPrice":1.08}}]}}`)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithCacheDir(t.TempDir()))
	d := homereturn.NewDate(2024, time.January, 10)
	for range 2 {
		_, err := client.Series(context.Background(), EURUSD, d, d)
		require.NoError(t, err)
		_, err = client.Latest(context.Background(), EURUSD)
		require.NoError(t, err)
	}
	// one cached series request and two live requests.
	assert.Equal(t, 3, hits)
}
