package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/selimh/finledger/renderer"
)

// charityCmd holds the flags for the 'charity' subcommand.
type charityCmd struct {
	file string
}

func (*charityCmd) Name() string     { return "charity" }
func (*charityCmd) Synopsis() string { return "display charity spending analysis" }
func (*charityCmd) Usage() string {
	return `flr charity [-f <transactions.csv>]

  Displays charity spending and its share of total spending, overall and
  month by month.
`
}

func (c *charityCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "transactions.csv", "Transactions CSV file to analyze")
}

func (c *charityCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	set, _, err := loadBatch(cfg, c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.CharityReport(set))
	return subcommands.ExitSuccess
}
