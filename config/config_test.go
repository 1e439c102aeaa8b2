package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/etnz/homereturn"
)

func TestLoad_Missing(t *testing.T) {
	t.Setenv("EODHD_API_KEY", "")
	t.Setenv("HOMERETURN_REDIS_ADDR", "")
	t.Setenv("HOMERETURN_LOG_LEVEL", "")

	c, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Calculation.ReturnRate != 8 || c.Quotes.Source != SourceYahoo || c.Property.InitialHouseAmount != 1_000_000 {
		t.Errorf("Load() = %+v, want the defaults", c)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("EODHD_API_KEY", "secret")
	t.Setenv("HOMERETURN_REDIS_ADDR", "")
	t.Setenv("HOMERETURN_LOG_LEVEL", "")

	path := filepath.Join(t.TempDir(), "hrc.toml")
	content := `payments = "house.jsonl"

[calculation]
investment_currency = "eur"
property_currency = "INR"
return_rate = 6.5
live_policy = "advisory"

[property]
initial_house_amount = 25000000
appreciation = "pro-rata"

[quotes]
source = "eodhd"
timeout = "bogus"

[cache]
ttl = "48h"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Payments != "house.jsonl" {
		t.Errorf("Payments = %q", c.Payments)
	}
	if c.Quotes.APIKey != "secret" {
		t.Errorf("APIKey = %q, want the env override", c.Quotes.APIKey)
	}
	if got := c.Quotes.GetTimeout(); got != 15*time.Second {
		t.Errorf("GetTimeout() = %v, want the 15s fallback", got)
	}
	if got := c.Cache.GetTTL(); got != 48*time.Hour {
		t.Errorf("GetTTL() = %v, want 48h", got)
	}
	// not set in the file, so the default stays.
	if c.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", c.Logging.Level)
	}

	engine, err := c.Engine()
	if err != nil {
		t.Fatalf("Engine() error = %v", err)
	}
	want := homereturn.Config{
		InvestmentCurrency: homereturn.EUR,
		PropertyCurrency:   homereturn.INR,
		ReturnRate:         6.5,
		LivePolicy:         homereturn.AdvisoryLiveRate,
	}
	if engine != want {
		t.Errorf("Engine() = %+v, want %+v", engine, want)
	}
	if got := c.HouseAmount(); got.Currency() != homereturn.INR || got.AsFloat() != 25_000_000 {
		t.Errorf("HouseAmount() = %v", got)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"currency", "[calculation]\ninvestment_currency = \"JPY\"\n"},
		{"payment currency", "[calculation]\npayment_currency = \"BTC\"\n"},
		{"rate", "[calculation]\nreturn_rate = -100\n"},
		{"policy", "[calculation]\nlive_policy = \"lenient\"\n"},
		{"appreciation", "[property]\nappreciation = \"half\"\n"},
		{"house", "[property]\ninitial_house_amount = -1\n"},
		{"source", "[quotes]\nsource = \"bloomberg\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "hrc.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); !errors.Is(err, homereturn.ErrInvalidInput) {
				t.Errorf("Load() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hrc.toml")
	if err := os.WriteFile(path, []byte("[calculation\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("Load() error = nil, want a parse error")
	}
}

func TestSave(t *testing.T) {
	t.Setenv("EODHD_API_KEY", "")
	t.Setenv("HOMERETURN_REDIS_ADDR", "")
	t.Setenv("HOMERETURN_LOG_LEVEL", "")

	path := filepath.Join(t.TempDir(), "sub", "hrc.toml")
	c := Default()
	c.Calculation.PropertyCurrency = "AED"
	if err := c.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *got != *c {
		t.Errorf("Load(Save()) = %+v, want %+v", got, c)
	}
}
