package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/homereturn"
	"github.com/etnz/homereturn/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type reverseCmd struct {
	sell    string
	house   string
	proRata bool
	now     string
	format  string
}

func (*reverseCmd) Name() string     { return "reverse" }
func (*reverseCmd) Synopsis() string { return "compute the return of selling the house for a given price" }
func (*reverseCmd) Usage() string {
	return `hrc reverse -sell <amount> [-house <amount>] [-pro-rata] [-now <date>] [-format markdown|json]

  Given the selling price of the house, computes the share and the return of the payments made so far.
  Amounts are in property currency.
`
}

func (c *reverseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sell, "sell", "", "Selling amount of the house (required)")
	f.StringVar(&c.house, "house", "", "Agreed house amount, defaults to the configured one")
	f.BoolVar(&c.proRata, "pro-rata", false, "Credit the appreciation in proportion to the ownership")
	f.StringVar(&c.now, "now", "", "Evaluation date, today by default")
	f.StringVar(&c.format, "format", "markdown", "Output format: markdown or json")
}

func (c *reverseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.sell == "" {
		fmt.Fprintln(os.Stderr, "Error: -sell is required")
		return subcommands.ExitUsageError
	}
	if c.format != "markdown" && c.format != "json" {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}
	selling, err := decimal.NewFromString(c.sell)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing selling amount: %v\n", err)
		return subcommands.ExitUsageError
	}
	now, err := parseNow(c.now)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}
	house := a.cfg.HouseAmount()
	if c.house != "" {
		v, err := decimal.NewFromString(c.house)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing house amount: %v\n", err)
			return subcommands.ExitUsageError
		}
		house = homereturn.M(v, house.Currency())
	}
	policy, err := homereturn.ParseAppreciationPolicy(a.cfg.Property.Appreciation)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in config: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.proRata {
		policy = homereturn.ProRataAppreciation
	}

	report, err := a.calculate(ctx, now, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing returns: %v\n", err)
		return subcommands.ExitFailure
	}
	var summary homereturn.Summary
	if report != nil {
		summary = report.Summary
	}
	sc := homereturn.Reverse(summary, house, homereturn.M(selling, house.Currency()), policy)
	if sc.Degenerate {
		a.logger.Warn().Str("house", house.String()).Str("invested", sc.Invested.String()).Msg("degenerate scenario")
	}

	if c.format == "json" {
		if err := renderer.WriteJSON(stdout, sc); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing scenario: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.ScenarioMarkdown(sc))
	return subcommands.ExitSuccess
}
