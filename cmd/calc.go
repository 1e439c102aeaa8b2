package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/homereturn"
	"github.com/etnz/homereturn/renderer"
	"github.com/google/subcommands"
)

// calcCmd holds the flags for the 'calc' subcommand.
type calcCmd struct {
	now      string
	format   string
	advisory bool
	share    bool
}

func (*calcCmd) Name() string     { return "calc" }
func (*calcCmd) Synopsis() string { return "compute the return of every payment" }
func (*calcCmd) Usage() string {
	return `hrc calc [-now <date>] [-format markdown|json|csv] [-advisory-live] [-share]

  Computes the future value of every payment at the desired annual return, in property currency,
  and converts it back to the investment currency at the live rate.
`
}

func (c *calcCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.now, "now", "", "Evaluation date, today by default. See ParseDate for supported formats.")
	f.StringVar(&c.format, "format", "markdown", "Output format: markdown, json or csv")
	f.BoolVar(&c.advisory, "advisory-live", false, "Use a 1.0 rate if the live rate is unavailable, instead of failing")
	f.BoolVar(&c.share, "share", false, "Show the share of the house covered by each payment")
}

func (c *calcCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	switch c.format {
	case "markdown", "json", "csv":
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", c.format)
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
	report, err := a.calculate(ctx, now, c.advisory)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing returns: %v\n", err)
		return subcommands.ExitFailure
	}

	switch c.format {
	case "json":
		err = renderer.WriteJSON(stdout, report)
	case "csv":
		err = renderer.WriteCSV(stdout, report)
	default:
		var opts renderer.ReportOptions
		if c.share {
			opts.HouseAmount = a.cfg.HouseAmount()
		}
		printMarkdown(renderer.ReportMarkdown(report, opts))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// calculate decodes the payments and computes their report, nil if there are no payments.
func (a *app) calculate(ctx context.Context, now time.Time, advisory bool) (*homereturn.Report, error) {
	cfg, err := a.cfg.Engine()
	if err != nil {
		return nil, err
	}
	cfg.Now = now
	if advisory {
		cfg.LivePolicy = homereturn.AdvisoryLiveRate
	}

	payments, err := a.payments()
	if err != nil {
		return nil, err
	}

	resolver, release := a.resolver(ctx)
	defer release()
	report, err := homereturn.Calculate(ctx, resolver, payments, cfg)
	if err != nil {
		return nil, err
	}
	if report != nil && report.LiveRateSubstituted {
		a.logger.Warn().Stringer("pair", report.LiveRate.Pair).Msg("live rate unavailable, 1.0 was used")
	}
	return report, nil
}
