package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

type statusCmd struct{}

func (*statusCmd) Name() string     { return "status" }
func (*statusCmd) Synopsis() string { return "show version, store and market data settings" }
func (*statusCmd) Usage() string {
	return `simulator status

  Prints the simulator version, the store location and schema version, and
  whether quotes are cached. Fails when the store cannot be read.
`
}

func (*statusCmd) SetFlags(*flag.FlagSet) {}

func (*statusCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, status := openApp(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	defer closeApp(app)

	if err := app.System.CheckHealth(ctx); err != nil {
		return report(err, "", 0)
	}
	schema, err := app.System.SchemaVersion(ctx)
	if err != nil {
		return report(err, "", 0)
	}

	cache := "disabled"
	if app.cacheEnabled {
		cache = app.Config.Redis.Addr
	}

	return renderTable(app, []string{"Setting", "Value"}, [][]string{
		{"Version", app.System.CheckVersion()},
		{"Store", app.Config.Database.Path},
		{"Schema", formatInt(schema)},
		{"Market data", app.Config.Market.BaseURL},
		{"Currency", app.Market.Currency()},
		{"Quote cache", cache},
	})
}
