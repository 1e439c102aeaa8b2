package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/homereturn"
	"github.com/etnz/homereturn/renderer"
	"github.com/google/subcommands"
)

type rateCmd struct {
	date string
}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "print the exchange rate between two currencies" }
func (*rateCmd) Usage() string {
	return `hrc rate [-d <date>] <from> <to>

  Prints the live rate, or the historical one on a given date.
`
}

func (c *rateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Historical date. The live rate is printed if empty")
}

func (c *rateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected two currencies")
		return subcommands.ExitUsageError
	}
	from, err := homereturn.ParseCurrency(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	to, err := homereturn.ParseCurrency(f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}
	resolver, release := a.resolver(ctx)
	defer release()

	var rate homereturn.Rate
	if c.date == "" {
		rate, err = resolver.LiveRate(ctx, from, to)
	} else {
		on, perr := homereturn.ParseDate(c.date)
		if perr != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", perr)
			return subcommands.ExitUsageError
		}
		rate, err = resolver.HistoricalRate(ctx, on, from, to)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving rate: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RateMarkdown(rate))
	return subcommands.ExitSuccess
}
