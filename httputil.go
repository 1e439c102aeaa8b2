package homereturn

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// CachingTransport is an http.RoundTripper that stores successful GET responses on disk.
//
// Keys include the current day, so the cache expires every day. It must only be used for
// historical data: a live quote must never be served from it.
type CachingTransport struct {
	Base   http.RoundTripper // defaults to http.DefaultTransport
	Dir    string            // defaults to os.TempDir()
	Logger zerolog.Logger
}

func (c *CachingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return c.base().RoundTrip(req)
	}
	key := fmt.Sprintf("%s %s %s", Today(), req.Method, req.URL.String())
	key = fmt.Sprintf("homereturn-%x", sha1.Sum([]byte(key)))

	if cached, err := c.get(key, req); err == nil {
		c.Logger.Debug().Str("host", req.URL.Host).Str("path", req.URL.Path).Msg("http cache hit")
		return cached, nil
	}

	resp, err := c.base().RoundTrip(req)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug().Str("method", req.Method).Str("host", req.URL.Host).Str("path", req.URL.Path).Str("status", resp.Status).Msg("http request")
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	if err := c.put(key, resp); err != nil {
		c.Logger.Warn().Err(err).Msg("http cache write failed (ignored)")
	}
	return resp, nil
}

func (c *CachingTransport) base() http.RoundTripper {
	if c.Base == nil {
		return http.DefaultTransport
	}
	return c.Base
}

func (c *CachingTransport) file(key string) string {
	dir := c.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, key)
}

// get retrieves a cached response from disk.
func (c *CachingTransport) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(c.file(key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

// put stores a response on disk. The response body is left readable.
func (c *CachingTransport) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(c.file(key), content, 0o644)
}
