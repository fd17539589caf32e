package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/selimh/finledger"
	"github.com/shopspring/decimal"
)

// convertCmd holds the flags for the 'convert' subcommand.
type convertCmd struct {
	amount string
	from   string
	to     string
}

func (*convertCmd) Name() string     { return "convert" }
func (*convertCmd) Synopsis() string { return "convert an amount between currencies" }
func (*convertCmd) Usage() string {
	return `flr convert -a <amount> -from <code> [-to <code>]

  Converts an amount using the same rate tiers as the analysis: cached
  rates, remote lookup, then the static fallback table. The destination
  defaults to the configured base currency.

Usage Examples:
$ flr convert -a 100 -from EUR
$ flr convert -a 250.50 -from USD -to GBP
`
}

func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "a", "", "Amount to convert")
	f.StringVar(&c.from, "from", "", "Source currency code")
	f.StringVar(&c.to, "to", "", "Destination currency code (defaults to the base currency)")
}

func (c *convertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.amount == "" || c.from == "" {
		fmt.Fprintln(os.Stderr, "Error: -a and -from are required")
		return subcommands.ExitUsageError
	}
	amount, err := decimal.NewFromString(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid amount %q: %v\n", c.amount, err)
		return subcommands.ExitUsageError
	}
	from := strings.ToUpper(c.from)
	to := strings.ToUpper(c.to)
	if to == "" {
		to = cfg.BaseCurrency
	}

	rate := NewRateSource(cfg).GetRate(from, to)
	converted := amount.Mul(rate.Value)

	fmt.Printf("%s = %s (rate %s, %s)\n",
		finledger.FormatAmount(amount, from),
		finledger.FormatAmount(converted, to),
		rate.Value, rate.Tier)
	if rate.Tier == finledger.TierUnknown {
		fmt.Fprintf(os.Stderr, "Warning: no rate known for %s/%s, amount left unconverted\n", from, to)
	}
	return subcommands.ExitSuccess
}
