package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/homereturn/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "read a help topic" }
func (*topicCmd) Usage() string {
	return `hrc topic [<name>...]

  Prints the help topics. With no name, lists them. '*' prints them all.
`
}

func (*topicCmd) SetFlags(*flag.FlagSet) {}

func (*topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		printMarkdown(docs.Index())
		return subcommands.ExitSuccess
	}
	for _, name := range f.Args() {
		content, err := docs.Topic(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		printMarkdown(content)
	}
	return subcommands.ExitSuccess
}
