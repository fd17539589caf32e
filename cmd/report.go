package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/selimh/finledger"
	"github.com/selimh/finledger/renderer"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	file string
	top  int
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the all-time financial summary" }
func (*reportCmd) Usage() string {
	return `flr report [-f <transactions.csv>] [-top <n>]

  Displays the all-time summary: income, spending, net balance, simplified
  spending classes, lending position and the conversion summary.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "transactions.csv", "Transactions CSV file to analyze")
	f.IntVar(&c.top, "top", 5, "Number of top spending categories to display")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	set, summary, err := loadBatch(cfg, c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	b.WriteString(renderer.Overview(set, summary))

	if top := set.AllTime.TopSpendingCategories(c.top); len(top) > 0 {
		b.WriteString("## Top Spending Categories\n\n")
		for _, ct := range top {
			fmt.Fprintf(&b, "- %s: %s\n", ct.Category, finledger.FormatAmount(ct.Total, set.Base))
		}
		b.WriteString("\n")
	}

	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
