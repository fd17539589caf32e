package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/selimh/finledger"
)

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	file   string
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the analysis as CSV" }
func (*exportCmd) Usage() string {
	return `flr export [-f <transactions.csv>] [-o <analysis.csv>]

  Runs the full analysis and writes one CSV row per period (all-time,
  years, months). The output file name defaults to the run identifier.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "transactions.csv", "Transactions CSV file to analyze")
	f.StringVar(&c.output, "o", "", "Output file (defaults to financial_analysis_<run-id>.csv)")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	output := c.output
	if output == "" {
		output = fmt.Sprintf("financial_analysis_%s.csv", summary.RunID)
	}
	out, err := os.Create(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", output, err)
		return subcommands.ExitFailure
	}
	defer out.Close()

	if err := finledger.ExportAnalysisCSV(out, set, summary); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", output, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Analysis written to %s\n", output)
	return subcommands.ExitSuccess
}
