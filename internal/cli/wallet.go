package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/ndewijer/crypto-trade-simulator/internal/model"
	"github.com/ndewijer/crypto-trade-simulator/internal/presenter"
)

type walletCmd struct{}

func (*walletCmd) Name() string     { return "wallet" }
func (*walletCmd) Synopsis() string { return "display the balance and current holdings" }
func (*walletCmd) Usage() string {
	return `simulator wallet

  Prints the cash balance followed by every symbol with a positive holding.
`
}

func (*walletCmd) SetFlags(*flag.FlagSet) {}

func (*walletCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, status := openApp(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	defer closeApp(app)

	balance, err := app.Ledger.GetBalance(ctx)
	if err != nil {
		return report(err, "", 0)
	}
	holdings, err := app.Ledger.Holdings(ctx)
	if err != nil {
		return report(err, "", 0)
	}

	app.Presenter.Message("Current balance is %s", formatBalance(app, balance))
	return renderTable(app, presenter.HoldingHeaders, presenter.HoldingRows(holdings))
}

type historyCmd struct {
	symbol string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the transaction log" }
func (*historyCmd) Usage() string {
	return `simulator history [-symbol <symbol>]

  Prints every purchase and sale in the order they were made.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "Only show trades of this symbol.")
}

func (c *historyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, status := openApp(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	defer closeApp(app)

	var transactions []model.Transaction
	var err error
	if c.symbol != "" {
		transactions, err = app.Ledger.GetTransactionsBySymbol(ctx, c.symbol)
	} else {
		transactions, err = app.Ledger.GetTransactions(ctx)
	}
	if err != nil {
		return report(err, c.symbol, 0)
	}
	return renderTable(app, presenter.TransactionHeaders,
		presenter.TransactionRows(transactions, app.Market.Currency()))
}
