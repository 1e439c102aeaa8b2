package cmd

import (
	"context"
	"flag"

	"github.com/etnz/homereturn/renderer"
	"github.com/google/subcommands"
)

type currenciesCmd struct{}

func (*currenciesCmd) Name() string     { return "currencies" }
func (*currenciesCmd) Synopsis() string { return "list the supported currencies" }
func (*currenciesCmd) Usage() string    { return "hrc currencies\n" }

func (*currenciesCmd) SetFlags(*flag.FlagSet) {}

func (*currenciesCmd) Execute(context.Context, *flag.FlagSet, ...interface{}) subcommands.ExitStatus {
	printMarkdown(renderer.CurrenciesMarkdown())
	return subcommands.ExitSuccess
}
