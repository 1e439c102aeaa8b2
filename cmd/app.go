// Package cmd implements the CLI application to compute the return of property payments.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/homereturn"
	"github.com/etnz/homereturn/config"
	"github.com/etnz/homereturn/eodhd"
	"github.com/etnz/homereturn/redisrate"
	"github.com/etnz/homereturn/yahoo"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Commands lists the subcommands, in display order.
var Commands = []subcommands.Command{
	&calcCmd{},
	&reverseCmd{},
	&rateCmd{},
	&addCmd{},
	&currenciesCmd{},
	&initCmd{},
	&topicCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, "")
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "hrc.toml", "Path to the configuration file (TOML)")
var paymentsFile = flag.String("payments", "", "Path to the payments file (JSONL). Defaults to the configured one")
var logLevel = flag.String("log-level", "", "Log level: debug, info, warn or error. Defaults to the configured one")
var rawOutput = flag.Bool("raw", false, "Print raw markdown instead of rendering it for the terminal")

// stdout receives the command output.
var stdout io.Writer = os.Stdout

// newQuoteSource returns the configured quote source.
var newQuoteSource = func(cfg *config.Config, logger zerolog.Logger) homereturn.QuoteSource {
	q := cfg.Quotes
	switch q.Source {
	case config.SourceEODHD:
		opts := []eodhd.ClientOption{eodhd.WithLogger(logger), eodhd.WithTimeout(q.GetTimeout())}
		if q.BaseURL != "" {
			opts = append(opts, eodhd.WithBaseURL(q.BaseURL))
		}
		if q.RateLimit > 0 {
			opts = append(opts, eodhd.WithRateLimit(q.RateLimit))
		}
		if q.CacheDir != "" {
			opts = append(opts, eodhd.WithCacheDir(q.CacheDir))
		}
		return eodhd.NewClient(q.APIKey, opts...)
	default:
		opts := []yahoo.ClientOption{yahoo.WithLogger(logger), yahoo.WithTimeout(q.GetTimeout())}
		if q.BaseURL != "" {
			opts = append(opts, yahoo.WithBaseURL(q.BaseURL))
		}
		if q.RateLimit > 0 {
			opts = append(opts, yahoo.WithRateLimit(q.RateLimit))
		}
		if q.CacheDir != "" {
			opts = append(opts, yahoo.WithCacheDir(q.CacheDir))
		}
		return yahoo.NewClient(opts...)
	}
}

// app holds what every command needs.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger
}

// loadApp loads the configuration and sets up logging.
func loadApp() (*app, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	level := cfg.Logging.Level
	if *logLevel != "" {
		level = *logLevel
	}
	return &app{cfg: cfg, logger: newLogger(level, os.Stderr)}, nil
}

// paymentsPath returns the payments file in use.
func (a *app) paymentsPath() string {
	if *paymentsFile != "" {
		return *paymentsFile
	}
	return a.cfg.Payments
}

// payments decodes the payments file. A missing file has no payments.
func (a *app) payments() ([]homereturn.Payment, error) {
	f, err := os.Open(a.paymentsPath())
	if errors.Is(err, fs.ErrNotExist) {
		a.logger.Warn().Str("file", a.paymentsPath()).Msg("payments file does not exist")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return homereturn.DecodePayments(f)
}

// resolver returns a rate resolver on the configured source and cache. release frees the cache.
func (a *app) resolver(ctx context.Context) (r *homereturn.Resolver, release func()) {
	var cache homereturn.RateCache = new(homereturn.MemoryCache)
	release = func() {}
	if addr := a.cfg.Cache.RedisAddr; addr != "" {
		rc := redisrate.New(addr, a.cfg.Cache.GetTTL())
		if err := rc.Ping(ctx); err != nil {
			a.logger.Warn().Err(err).Str("addr", addr).Msg("redis rate cache unavailable, using memory")
			rc.Close()
		} else {
			cache, release = rc, func() { rc.Close() }
		}
	}
	src := newQuoteSource(a.cfg, a.logger)
	return homereturn.NewResolver(src, homereturn.WithCache(cache), homereturn.WithLogger(a.logger)), release
}

// printMarkdown prints md rendered for the terminal, or raw.
func printMarkdown(md string) {
	if *rawOutput {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	fmt.Fprint(stdout, md)
}

// parseNow returns the evaluation instant of a date flag: the start of that day, today by default.
func parseNow(s string) (time.Time, error) {
	if s == "" {
		return homereturn.Today().Time(), nil
	}
	on, err := homereturn.ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	return on.Time(), nil
}
