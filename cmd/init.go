package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/homereturn/config"
	"github.com/google/subcommands"
)

type initCmd struct {
	force bool
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "write a default configuration file" }
func (*initCmd) Usage() string {
	return `hrc init [-force]

  Writes the default configuration to the -config file.
`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "force", false, "Overwrite an existing configuration file")
}

func (c *initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if _, err := os.Stat(*configFile); err == nil && !c.force {
		fmt.Fprintf(os.Stderr, "Error: %s already exists, use -force to overwrite it\n", *configFile)
		return subcommands.ExitFailure
	}
	if err := config.Default().Save(*configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Configuration written to %s\n", *configFile)
	return subcommands.ExitSuccess
}
