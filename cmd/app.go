// Package cmd implements the CLI application to analyze transaction exports.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/selimh/finledger"
	"github.com/selimh/finledger/erapi"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reportCmd{}, "reports")
	c.Register(&monthlyCmd{}, "reports")
	c.Register(&yearlyCmd{}, "reports")
	c.Register(&lendingCmd{}, "reports")
	c.Register(&charityCmd{}, "reports")
	c.Register(&exportCmd{}, "reports")

	c.Register(&convertCmd{}, "rates")
	c.Register(&ratesCmd{}, "rates")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to a TOML configuration file (built-in defaults when empty)")
var offline = flag.Bool("offline", false, "Never fetch remote rates; use cache and fallback table only")

// LoadConfig resolves the active configuration.
func LoadConfig() (finledger.Config, error) {
	if *configFile == "" {
		return finledger.DefaultConfig(), nil
	}
	return finledger.LoadConfig(*configFile)
}

// NewRateSource builds the rate source the commands share: the remote
// provider from the config unless -offline was given.
func NewRateSource(cfg finledger.Config) *finledger.RateSource {
	var provider finledger.RateProvider
	if !*offline {
		provider = erapi.NewWithURL(cfg.RateAPIURL)
	}
	return finledger.NewRateSource(cfg, provider)
}

// loadBatch runs the whole pipeline on a transactions file: import,
// normalize, reconcile.
func loadBatch(cfg finledger.Config, file string) (*finledger.LedgerSet, *finledger.BatchSummary, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open transactions file %q: %w", file, err)
	}
	defer f.Close()

	rows, err := finledger.ImportTransactions(f)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot import %q: %w", file, err)
	}

	normalizer := finledger.NewNormalizer(cfg, NewRateSource(cfg))
	txs, summary, err := normalizer.NormalizeAll(rows)
	if err != nil {
		return nil, nil, err
	}

	set, err := finledger.NewReconciler(cfg).Reconcile(txs)
	if err != nil {
		return nil, nil, err
	}
	return set, summary, nil
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the renderer cannot run (e.g. no TTY information).
func printMarkdown(md string) {
	out, err := glamour.RenderWithEnvironmentConfig(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
