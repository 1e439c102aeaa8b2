package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/homereturn"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type addCmd struct {
	date     string
	amount   string
	currency string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a payment" }
func (*addCmd) Usage() string {
	return `hrc add [-d <date>] -amount <amount> [-currency <code>]

  Appends a payment to the payments file.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", homereturn.Today().String(), "Payment date")
	f.StringVar(&c.amount, "amount", "", "Paid amount (required)")
	f.StringVar(&c.currency, "currency", "", "Payment currency, defaults to the configured one")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount == "" {
		fmt.Fprintln(os.Stderr, "Error: -amount is required")
		return subcommands.ExitUsageError
	}
	on, err := homereturn.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	amount, err := decimal.NewFromString(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}
	code := c.currency
	if code == "" {
		code = a.cfg.Calculation.PaymentCurrency
	}
	var cur homereturn.Currency
	if code != "" {
		if cur, err = homereturn.ParseCurrency(code); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	p, err := homereturn.NewPayment(on, amount, cur)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	file, err := os.OpenFile(a.paymentsPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening payments file: %v\n", err)
		return subcommands.ExitFailure
	}
	defer file.Close()
	if err := homereturn.EncodePayment(file, p); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing payment: %v\n", err)
		return subcommands.ExitFailure
	}
	a.logger.Info().Stringer("date", on).Str("amount", amount.String()).Str("currency", string(cur)).Msg("payment recorded")
	fmt.Fprintf(stdout, "Successfully recorded a payment of %s on %s\n", p.Money(homereturn.Currency(a.cfg.Calculation.InvestmentCurrency)), on)
	return subcommands.ExitSuccess
}
