package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/ndewijer/crypto-trade-simulator/internal/cli"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cli.Register(commander)

	flag.Parse()

	// Without a subcommand the simulator starts the interactive menu.
	if flag.NArg() == 0 {
		if err := flag.CommandLine.Parse(append(os.Args[1:], "menu")); err != nil {
			log.Fatalf("Failed to parse arguments: %v", err)
		}
	}

	os.Exit(int(commander.Execute(context.Background())))
}
