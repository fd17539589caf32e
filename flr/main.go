package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/selimh/finledger/cmd"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion registers bash/zsh/fish completion; it exits early when invoked
// by the shell completion machinery.
func completion() {
	csv := predict.Files("*.csv")
	withFile := func() *complete.Command {
		return &complete.Command{Flags: map[string]complete.Predictor{"f": csv}}
	}

	root := &complete.Command{
		Sub: map[string]*complete.Command{
			"report":  withFile(),
			"monthly": withFile(),
			"yearly":  withFile(),
			"lending": withFile(),
			"charity": withFile(),
			"export":  withFile(),
			"convert": {},
			"rates":   {},
		},
		Flags: map[string]complete.Predictor{
			"config":  predict.Files("*.toml"),
			"offline": predict.Nothing,
		},
	}
	root.Complete("flr")
}
