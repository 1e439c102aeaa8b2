package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/homereturn"
	"github.com/etnz/homereturn/config"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// setup writes a configuration in a temporary directory and points the globals at it.
// It returns the buffer receiving the command output.
func setup(t *testing.T, inv, prop homereturn.Currency, src *homereturn.StaticSource) (*bytes.Buffer, *config.Config) {
	t.Helper()
	t.Setenv("HOMERETURN_REDIS_ADDR", "")
	t.Setenv("HOMERETURN_LOG_LEVEL", "")

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Payments = filepath.Join(dir, "payments.jsonl")
	cfg.Calculation.InvestmentCurrency = string(inv)
	cfg.Calculation.PropertyCurrency = string(prop)
	cfg.Calculation.PaymentCurrency = string(inv)
	cfg.Property.InitialHouseAmount = 1000
	cfg.Logging.Level = "error"
	if err := cfg.Save(filepath.Join(dir, "hrc.toml")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	oldConfig, oldPayments, oldRaw, oldStdout, oldSource := *configFile, *paymentsFile, *rawOutput, stdout, newQuoteSource
	t.Cleanup(func() {
		*configFile, *paymentsFile, *rawOutput, stdout, newQuoteSource = oldConfig, oldPayments, oldRaw, oldStdout, oldSource
	})

	var buf bytes.Buffer
	*configFile = filepath.Join(dir, "hrc.toml")
	*paymentsFile = ""
	*rawOutput = true
	stdout = &buf
	newQuoteSource = func(*config.Config, zerolog.Logger) homereturn.QuoteSource { return src }
	return &buf, cfg
}

func run(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("%s: parsing %v: %v", c.Name(), args, err)
	}
	return c.Execute(context.Background(), f)
}

func writePayments(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestAdd(t *testing.T) {
	_, cfg := setup(t, homereturn.USD, homereturn.EUR, homereturn.NewStaticSource())

	if got := run(t, &addCmd{}, "-d", "2023-01-01", "-amount", "500"); got != subcommands.ExitSuccess {
		t.Fatalf("add = %v, want success", got)
	}
	if got := run(t, &addCmd{}, "-d", "2023-02-01", "-amount", "200", "-currency", "inr"); got != subcommands.ExitSuccess {
		t.Fatalf("add = %v, want success", got)
	}

	f, err := os.Open(cfg.Payments)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	payments, err := homereturn.DecodePayments(f)
	if err != nil {
		t.Fatalf("DecodePayments() error = %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("got %d payments, want 2", len(payments))
	}
	if payments[0].Currency != homereturn.USD || payments[1].Currency != homereturn.INR {
		t.Errorf("currencies = %v, %v, want USD, INR", payments[0].Currency, payments[1].Currency)
	}
}

func TestAdd_Invalid(t *testing.T) {
	setup(t, homereturn.USD, homereturn.EUR, homereturn.NewStaticSource())

	for _, args := range [][]string{
		{},
		{"-amount", "-5"},
		{"-amount", "abc"},
		{"-amount", "5", "-currency", "XYZ"},
		{"-amount", "5", "-d", "not a date"},
	} {
		if got := run(t, &addCmd{}, args...); got != subcommands.ExitUsageError {
			t.Errorf("add %v = %v, want usage error", args, got)
		}
	}
}

func TestCalc_JSON(t *testing.T) {
	src := homereturn.NewStaticSource().
		SetRate(homereturn.Pair{From: homereturn.USD, To: homereturn.EUR}, homereturn.NewDate(2023, 1, 1), 0.9).
		SetLive(homereturn.Pair{From: homereturn.EUR, To: homereturn.USD}, 1.1)
	out, cfg := setup(t, homereturn.USD, homereturn.EUR, src)
	writePayments(t, cfg.Payments, `{"date":"2023-01-01","amount":1000}`+"\n")

	if got := run(t, &calcCmd{}, "-now", "2024-01-01", "-format", "json"); got != subcommands.ExitSuccess {
		t.Fatalf("calc = %v, want success", got)
	}

	var report struct {
		InvestmentCurrency string           `json:"investment_currency"`
		EvaluatedOn        string           `json:"evaluated_on"`
		Results            []map[string]any `json:"results"`
	}
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if report.InvestmentCurrency != "USD" || report.EvaluatedOn != "2024-01-01" || len(report.Results) != 1 {
		t.Errorf("calc output = %s", out)
	}
}

func TestCalc_Markdown(t *testing.T) {
	out, cfg := setup(t, homereturn.EUR, homereturn.EUR, homereturn.NewStaticSource())
	writePayments(t, cfg.Payments, `{"date":"2023-01-01","amount":1000}`+"\n")

	if got := run(t, &calcCmd{}, "-now", "2024-01-01", "-share"); got != subcommands.ExitSuccess {
		t.Fatalf("calc = %v, want success", got)
	}
	for _, want := range []string{"# Return Report", "## Payments", "## Summary", "House Share"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("calc output does not contain %q:\n%s", want, out)
		}
	}
}

func TestCalc_NoPayments(t *testing.T) {
	out, _ := setup(t, homereturn.USD, homereturn.EUR, homereturn.NewStaticSource())

	if got := run(t, &calcCmd{}); got != subcommands.ExitSuccess {
		t.Fatalf("calc = %v, want success", got)
	}
	if !strings.Contains(out.String(), "No payments.") {
		t.Errorf("calc output = %q, want No payments.", out)
	}
}

func TestCalc_LiveRateUnavailable(t *testing.T) {
	src := homereturn.NewStaticSource().
		SetRate(homereturn.Pair{From: homereturn.USD, To: homereturn.EUR}, homereturn.NewDate(2023, 1, 1), 0.9)
	out, cfg := setup(t, homereturn.USD, homereturn.EUR, src)
	writePayments(t, cfg.Payments, `{"date":"2023-01-01","amount":1000}`+"\n")

	if got := run(t, &calcCmd{}, "-now", "2024-01-01"); got != subcommands.ExitFailure {
		t.Errorf("calc = %v, want failure", got)
	}

	out.Reset()
	if got := run(t, &calcCmd{}, "-now", "2024-01-01", "-advisory-live", "-format", "json"); got != subcommands.ExitSuccess {
		t.Fatalf("calc -advisory-live = %v, want success", got)
	}
	if !strings.Contains(out.String(), `"live_rate_substituted": true`) {
		t.Errorf("calc output does not flag the substituted live rate:\n%s", out)
	}
}

func TestCalc_BadFormat(t *testing.T) {
	setup(t, homereturn.USD, homereturn.EUR, homereturn.NewStaticSource())
	if got := run(t, &calcCmd{}, "-format", "xml"); got != subcommands.ExitUsageError {
		t.Errorf("calc -format xml = %v, want usage error", got)
	}
}

func TestReverse(t *testing.T) {
	out, cfg := setup(t, homereturn.EUR, homereturn.EUR, homereturn.NewStaticSource())
	writePayments(t, cfg.Payments, `{"date":"2023-01-01","amount":500}`+"\n")

	if got := run(t, &reverseCmd{}, "-sell", "1200", "-now", "2024-01-01", "-format", "json"); got != subcommands.ExitSuccess {
		t.Fatalf("reverse = %v, want success", got)
	}
	var sc struct {
		ROI       float64 `json:"scenario_roi"`
		Ownership float64 `json:"ownership"`
	}
	if err := json.Unmarshal(out.Bytes(), &sc); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if sc.ROI != 40 || sc.Ownership != 50 {
		t.Errorf("reverse = %s, want a 40%% ROI for a 50%% ownership", out)
	}

	out.Reset()
	if got := run(t, &reverseCmd{}, "-sell", "1200", "-house", "2000", "-pro-rata", "-now", "2024-01-01"); got != subcommands.ExitSuccess {
		t.Fatalf("reverse = %v, want success", got)
	}
	if !strings.Contains(out.String(), "# Reverse Calculation") {
		t.Errorf("reverse output = %s", out)
	}
}

func TestReverse_MissingSell(t *testing.T) {
	setup(t, homereturn.EUR, homereturn.EUR, homereturn.NewStaticSource())
	if got := run(t, &reverseCmd{}); got != subcommands.ExitUsageError {
		t.Errorf("reverse = %v, want usage error", got)
	}
}

func TestRate(t *testing.T) {
	src := homereturn.NewStaticSource().
		SetRate(homereturn.Pair{From: homereturn.USD, To: homereturn.EUR}, homereturn.NewDate(2023, 1, 1), 0.9).
		SetLive(homereturn.Pair{From: homereturn.USD, To: homereturn.EUR}, 0.92)
	out, _ := setup(t, homereturn.USD, homereturn.EUR, src)

	if got := run(t, &rateCmd{}, "-d", "2023-01-02", "usd", "eur"); got != subcommands.ExitSuccess {
		t.Fatalf("rate = %v, want success", got)
	}
	if want := "quoted on 2023-01-01"; !strings.Contains(out.String(), want) {
		t.Errorf("rate output = %q, want it to contain %q", out, want)
	}

	out.Reset()
	if got := run(t, &rateCmd{}, "USD", "EUR"); got != subcommands.ExitSuccess {
		t.Fatalf("rate = %v, want success", got)
	}
	if want := "1 USD = 0.9200 EUR (live)"; !strings.Contains(out.String(), want) {
		t.Errorf("rate output = %q, want it to contain %q", out, want)
	}

	if got := run(t, &rateCmd{}, "USD"); got != subcommands.ExitUsageError {
		t.Errorf("rate USD = %v, want usage error", got)
	}
	if got := run(t, &rateCmd{}, "-d", "2020-01-01", "USD", "EUR"); got != subcommands.ExitFailure {
		t.Errorf("rate with no quotes = %v, want failure", got)
	}
}

func TestCurrencies(t *testing.T) {
	out, _ := setup(t, homereturn.USD, homereturn.EUR, homereturn.NewStaticSource())
	if got := run(t, &currenciesCmd{}); got != subcommands.ExitSuccess {
		t.Fatalf("currencies = %v, want success", got)
	}
	for _, c := range homereturn.Currencies() {
		if !strings.Contains(out.String(), c.String()) {
			t.Errorf("currencies output does not contain %s", c)
		}
	}
}

func TestInit(t *testing.T) {
	setup(t, homereturn.USD, homereturn.EUR, homereturn.NewStaticSource())

	if got := run(t, &initCmd{}); got != subcommands.ExitFailure {
		t.Errorf("init on an existing file = %v, want failure", got)
	}
	if got := run(t, &initCmd{}, "-force"); got != subcommands.ExitSuccess {
		t.Fatalf("init -force = %v, want success", got)
	}
	cfg, err := config.Load(*configFile)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Property.InitialHouseAmount != config.Default().Property.InitialHouseAmount {
		t.Errorf("init did not write the default configuration: %+v", cfg)
	}

	*configFile = filepath.Join(t.TempDir(), "new", "hrc.toml")
	if got := run(t, &initCmd{}); got != subcommands.ExitSuccess {
		t.Errorf("init = %v, want success", got)
	}
	if _, err := os.Stat(*configFile); err != nil {
		t.Errorf("init did not create the file: %v", err)
	}
}

func TestCompletion(t *testing.T) {
	c := Completion()
	for _, cmd := range Commands {
		if _, ok := c.Sub[cmd.Name()]; !ok {
			t.Errorf("no completion for %q", cmd.Name())
		}
	}
	if _, ok := c.Sub["calc"].Flags["format"]; !ok {
		t.Error("no completion for calc -format")
	}
	if _, ok := c.Flags["config"]; !ok {
		t.Error("no completion for -config")
	}
	if got := c.Sub["rate"].Args.Predict(""); len(got) != len(homereturn.Currencies()) {
		t.Errorf("rate arguments = %v, want every currency", got)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger("info", &buf)
	l.Debug().Msg("hidden")
	l.Info().Msg("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("logger output = %q", buf.String())
	}
}

func TestTopic(t *testing.T) {
	out, _ := setup(t, homereturn.USD, homereturn.EUR, homereturn.NewStaticSource())
	if got := run(t, &topicCmd{}); got != subcommands.ExitSuccess {
		t.Fatalf("topic = %v, want success", got)
	}
	if !strings.Contains(out.String(), "# Help Topics") {
		t.Errorf("topic output = %s", out)
	}

	out.Reset()
	if got := run(t, &topicCmd{}, "returns"); got != subcommands.ExitSuccess {
		t.Fatalf("topic returns = %v, want success", got)
	}
	if !strings.Contains(out.String(), "# Returns") {
		t.Errorf("topic output = %s", out)
	}
	if got := run(t, &topicCmd{}, "nope"); got != subcommands.ExitUsageError {
		t.Errorf("topic nope = %v, want usage error", got)
	}
}
