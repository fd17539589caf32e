package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/selimh/finledger/renderer"
)

// lendingCmd holds the flags for the 'lending' subcommand.
type lendingCmd struct {
	file string
}

func (*lendingCmd) Name() string     { return "lending" }
func (*lendingCmd) Synopsis() string { return "display lending activity and outstanding balances" }
func (*lendingCmd) Usage() string {
	return `flr lending [-f <transactions.csv>]

  Displays the lending reconciliation: amounts lent out, repayments
  received, and the resulting outstanding or excess balance, overall and
  month by month.
`
}

func (c *lendingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "transactions.csv", "Transactions CSV file to analyze")
}

func (c *lendingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	printMarkdown(renderer.LendingReport(set))
	return subcommands.ExitSuccess
}
