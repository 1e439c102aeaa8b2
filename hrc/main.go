// Command hrc computes the return of payments made towards a property, across currencies.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/homereturn/cmd"
	"github.com/google/subcommands"
)

func main() {
	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	cmd.Register(commander)
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")

	// exits when invoked by the shell to complete the command line.
	cmd.Completion().Complete(name)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
