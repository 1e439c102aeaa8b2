// Package config loads the hrc configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/homereturn"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"
)

// Config holds all configuration for hrc
type Config struct {
	Payments    string            `toml:"payments"` // payments file, JSONL
	Calculation CalculationConfig `toml:"calculation"`
	Property    PropertyConfig    `toml:"property"`
	Quotes      QuotesConfig      `toml:"quotes"`
	Cache       CacheConfig       `toml:"cache"`
	Logging     LoggingConfig     `toml:"logging"`
}

// CalculationConfig holds the return calculation parameters
type CalculationConfig struct {
	InvestmentCurrency string  `toml:"investment_currency"`
	PropertyCurrency   string  `toml:"property_currency"`
	PaymentCurrency    string  `toml:"payment_currency"` // default currency of new payments
	ReturnRate         float64 `toml:"return_rate"`      // annual, in percent
	LivePolicy         string  `toml:"live_policy"`      // "strict" or "advisory"
}

// PropertyConfig holds the reverse calculation parameters
type PropertyConfig struct {
	InitialHouseAmount float64 `toml:"initial_house_amount"` // property currency
	Appreciation       string  `toml:"appreciation"`         // "full" or "pro-rata"
}

// QuotesConfig holds the quote source configuration
type QuotesConfig struct {
	Source    string `toml:"source"` // "yahoo" or "eodhd"
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
	CacheDir  string `toml:"cache_dir"` // daily HTTP cache of historical quotes, disabled if empty
}

// GetTimeout parses and returns the timeout duration
func (c *QuotesConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// CacheConfig holds the Redis rate cache configuration
type CacheConfig struct {
	RedisAddr string `toml:"redis_addr"` // disabled if empty
	TTL       string `toml:"ttl"`
}

// GetTTL parses and returns the cache entries time to live.
func (c *CacheConfig) GetTTL() time.Duration {
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 30 * 24 * time.Hour
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

const (
	SourceYahoo = "yahoo"
	SourceEODHD = "eodhd"
)

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Payments: "payments.jsonl",
		Calculation: CalculationConfig{
			InvestmentCurrency: "USD",
			PropertyCurrency:   "USD",
			ReturnRate:         8,
			LivePolicy:         homereturn.StrictLiveRate.String(),
		},
		Property: PropertyConfig{
			InitialHouseAmount: 1_000_000,
			Appreciation:       homereturn.FullAppreciation.String(),
		},
		Quotes: QuotesConfig{
			Source:    SourceYahoo,
			RateLimit: 5,
			Timeout:   "15s",
		},
		Cache: CacheConfig{
			TTL: "720h",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Load loads configuration from path with environment overrides. A missing file yields the
// defaults. The result is validated.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// defaults
		case err != nil:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if key := os.Getenv("EODHD_API_KEY"); key != "" {
		config.Quotes.APIKey = key
	}
	if addr := os.Getenv("HOMERETURN_REDIS_ADDR"); addr != "" {
		config.Cache.RedisAddr = addr
	}
	if level := os.Getenv("HOMERETURN_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// Save writes the configuration to path, creating its directory if needed.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks currencies, policies and the quote source.
func (c *Config) Validate() error {
	if _, err := c.Engine(); err != nil {
		return err
	}
	if c.Calculation.PaymentCurrency != "" {
		if _, err := homereturn.ParseCurrency(c.Calculation.PaymentCurrency); err != nil {
			return fmt.Errorf("payment_currency: %w", err)
		}
	}
	if c.Property.InitialHouseAmount < 0 {
		return fmt.Errorf("%w: negative initial_house_amount %v", homereturn.ErrInvalidInput, c.Property.InitialHouseAmount)
	}
	if _, err := homereturn.ParseAppreciationPolicy(c.Property.Appreciation); err != nil {
		return err
	}
	switch c.Quotes.Source {
	case SourceYahoo, SourceEODHD:
	default:
		return fmt.Errorf("%w: unknown quote source %q", homereturn.ErrInvalidInput, c.Quotes.Source)
	}
	return nil
}

// Engine returns the calculation parameters. The evaluation instant is left to the caller.
func (c *Config) Engine() (homereturn.Config, error) {
	inv, err := homereturn.ParseCurrency(c.Calculation.InvestmentCurrency)
	if err != nil {
		return homereturn.Config{}, fmt.Errorf("investment_currency: %w", err)
	}
	prop, err := homereturn.ParseCurrency(c.Calculation.PropertyCurrency)
	if err != nil {
		return homereturn.Config{}, fmt.Errorf("property_currency: %w", err)
	}
	policy, err := homereturn.ParseLivePolicy(c.Calculation.LivePolicy)
	if err != nil {
		return homereturn.Config{}, err
	}
	cfg := homereturn.Config{
		InvestmentCurrency: inv,
		PropertyCurrency:   prop,
		ReturnRate:         homereturn.Percent(c.Calculation.ReturnRate),
		LivePolicy:         policy,
	}
	return cfg, cfg.Validate()
}

// HouseAmount returns the initial house amount in property currency.
func (c *Config) HouseAmount() homereturn.Money {
	// the currency is checked by Validate, so the error is ignored.
	prop, _ := homereturn.ParseCurrency(c.Calculation.PropertyCurrency)
	return homereturn.M(decimal.NewFromFloat(c.Property.InitialHouseAmount), prop)
}
