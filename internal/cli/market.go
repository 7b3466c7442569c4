package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ndewijer/crypto-trade-simulator/internal/model"
	"github.com/ndewijer/crypto-trade-simulator/internal/presenter"
	"github.com/ndewijer/crypto-trade-simulator/internal/session"
)

type listCmd struct {
	start int
	limit int
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the top ranked crypto currencies" }
func (*listCmd) Usage() string {
	return `simulator list [-start <rank>] [-limit <n>]

  Prints rank, name, symbol and latest price of the best ranked assets.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.start, "start", 1, "Rank of the first asset to list.")
	f.IntVar(&c.limit, "limit", 0, "Number of assets to list (defaults to LIST_LIMIT).")
}

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, status := openApp(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	defer closeApp(app)

	quotes, err := app.Market.Listing(ctx, c.start, c.limit)
	if err != nil {
		return report(err, "", 0)
	}
	return renderTable(app, presenter.QuoteHeaders, presenter.QuoteRows(quotes))
}

type searchCmd struct{}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "look up the latest quote of one or more symbols" }
func (*searchCmd) Usage() string {
	return `simulator search <symbol>...

  Looks up every symbol concurrently and prints the quotes that were found.
  Unknown symbols are reported on stderr.
`
}

func (*searchCmd) SetFlags(*flag.FlagSet) {}

func (*searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "search requires at least one symbol")
		return subcommands.ExitUsageError
	}

	app, status := openApp(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	defer closeApp(app)

	results, err := app.Market.Quotes(ctx, f.Args())
	if err != nil {
		return report(err, "", 0)
	}

	var found []model.Quote
	var failed error
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintln(os.Stderr, session.ErrorMessage(r.Err, r.Symbol, 0))
			failed = errors.Join(failed, r.Err)
			continue
		}
		found = append(found, r.Quote)
	}

	if len(found) > 0 {
		if status := renderTable(app, presenter.QuoteHeaders, presenter.QuoteRows(found)); status != subcommands.ExitSuccess {
			return status
		}
	}
	if failed != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
