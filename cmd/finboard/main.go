package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	commander.Register(&serveCmd{}, "server")
	commander.Register(&watchCmd{}, "server")
	commander.Register(&summaryCmd{}, "reports")
	commander.Register(&seriesCmd{}, "reports")
	commander.Register(&goalsCmd{}, "reports")
	commander.Register(&transactionsCmd{}, "reports")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
