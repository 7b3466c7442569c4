package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/subcommands"

	"github.com/ndewijer/crypto-trade-simulator/internal/apperrors"
	"github.com/ndewijer/crypto-trade-simulator/internal/model"
	"github.com/ndewijer/crypto-trade-simulator/internal/presenter"
)

type buyCmd struct{}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy an amount of a crypto currency at the latest price" }
func (*buyCmd) Usage() string {
	return `simulator buy <symbol> <amount>

  Fetches the latest price of symbol and buys amount of it, debiting the
  cost from the balance.
`
}

func (*buyCmd) SetFlags(*flag.FlagSet) {}

func (*buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return trade(ctx, f, model.TransactionPurchase)
}

type sellCmd struct{}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell an amount of a held crypto currency at the latest price" }
func (*sellCmd) Usage() string {
	return `simulator sell <symbol> <amount>

  Fetches the latest price of symbol and sells amount of it, crediting the
  proceeds to the balance.
`
}

func (*sellCmd) SetFlags(*flag.FlagSet) {}

func (*sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return trade(ctx, f, model.TransactionSell)
}

func trade(ctx context.Context, f *flag.FlagSet, txType model.TransactionType) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "%s requires a symbol and an amount\n", f.Name())
		return subcommands.ExitUsageError
	}
	symbol := f.Arg(0)
	amount, err := strconv.ParseFloat(f.Arg(1), 64)
	if err != nil || !(amount > 0) {
		return report(apperrors.ErrInvalidAmount, symbol, 0)
	}

	app, status := openApp(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	defer closeApp(app)

	quote, err := app.Market.Quote(ctx, symbol)
	if err != nil {
		return report(err, symbol, amount)
	}

	var tx *model.Transaction
	if txType == model.TransactionPurchase {
		tx, err = app.Ledger.Purchase(ctx, quote.Symbol, amount, quote.Price)
	} else {
		tx, err = app.Ledger.Sell(ctx, quote.Symbol, amount, quote.Price)
	}
	if err != nil {
		return report(err, quote.Symbol, amount)
	}

	verb := "Purchased"
	if txType == model.TransactionSell {
		verb = "Sold"
	}
	app.Presenter.Message("%s %s %s for %s", verb,
		presenter.FormatDecimal(tx.Amount), tx.Symbol, formatBalance(app, tx.Value))
	return subcommands.ExitSuccess
}
