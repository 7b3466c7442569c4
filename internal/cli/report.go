package cli

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/google/subcommands"

	"github.com/ndewijer/crypto-trade-simulator/internal/apperrors"
	"github.com/ndewijer/crypto-trade-simulator/internal/presenter"
	"github.com/ndewijer/crypto-trade-simulator/internal/session"
)

// report prints the user-facing message for err on stderr and returns ExitFailure.
// Invalid input is reported as a usage error.
func report(err error, symbol string, amount float64) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, session.ErrorMessage(err, symbol, amount))

	switch {
	case errors.Is(err, apperrors.ErrInvalidAmount), errors.Is(err, apperrors.ErrInvalidSymbol):
		return subcommands.ExitUsageError
	case errors.Is(err, apperrors.ErrStorage), errors.Is(err, apperrors.ErrQuoteUnavailable):
		log.Printf("command failed: %v", err)
	}
	return subcommands.ExitFailure
}

func formatBalance(app *App, amount float64) string {
	return presenter.FormatMoney(amount, app.Market.Currency())
}

func renderTable(app *App, headers []string, rows [][]string) subcommands.ExitStatus {
	if err := app.Presenter.Table(headers, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering table: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
