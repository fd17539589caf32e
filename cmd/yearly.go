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

// yearlyCmd holds the flags for the 'yearly' subcommand.
type yearlyCmd struct {
	file string
}

func (*yearlyCmd) Name() string     { return "yearly" }
func (*yearlyCmd) Synopsis() string { return "display one report per calendar year" }
func (*yearlyCmd) Usage() string {
	return `flr yearly [-f <transactions.csv>]

  Displays a detailed report for every calendar year the data spans.
`
}

func (c *yearlyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "transactions.csv", "Transactions CSV file to analyze")
}

func (c *yearlyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	for _, year := range set.Years() {
		b.WriteString(renderer.PeriodReport(set.Yearly[year], set.Base))
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
