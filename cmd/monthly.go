package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/selimh/finledger/renderer"
)

// monthlyCmd holds the flags for the 'monthly' subcommand.
type monthlyCmd struct {
	file string
}

func (*monthlyCmd) Name() string     { return "monthly" }
func (*monthlyCmd) Synopsis() string { return "display one report per calendar month" }
func (*monthlyCmd) Usage() string {
	return `flr monthly [-f <transactions.csv>]

  Displays the monthly trend followed by a detailed report for every
  calendar month the data spans.
`
}

func (c *monthlyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "transactions.csv", "Transactions CSV file to analyze")
}

func (c *monthlyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	var b strings.Builder
	b.WriteString(renderer.TrendReport(set))
	for _, key := range set.Months() {
		b.WriteString(renderer.PeriodReport(set.Monthly[key], set.Base))
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
