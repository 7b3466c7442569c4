package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type menuCmd struct{}

func (*menuCmd) Name() string     { return "menu" }
func (*menuCmd) Synopsis() string { return "start the interactive trading menu (default)" }
func (*menuCmd) Usage() string {
	return `simulator [-config <file>] [-db <path>] menu

  Shows the numbered menu and reads choices from standard input until the
  exit choice or the end of input. This is what runs when no subcommand is given.
`
}

func (*menuCmd) SetFlags(*flag.FlagSet) {}

func (*menuCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, status := openApp(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	defer closeApp(app)

	if err := app.Session(os.Stdin).Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type initCmd struct{}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "create the store and seed the starting balance" }
func (*initCmd) Usage() string {
	return `simulator [-config <file>] [-db <path>] init

  Creates the SQLite store and its tables when missing and seeds the balance
  with the configured starting balance. An existing store is left untouched.
`
}

func (*initCmd) SetFlags(*flag.FlagSet) {}

func (*initCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, status := openApp(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	defer closeApp(app)

	balance, err := app.Ledger.GetBalance(ctx)
	if err != nil {
		return report(err, "", 0)
	}
	app.Presenter.Message("Store ready at %s, balance is %s",
		app.Config.Database.Path, formatBalance(app, balance))
	return subcommands.ExitSuccess
}
