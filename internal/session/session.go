// Package session implements the interactive trading menu.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/ndewijer/crypto-trade-simulator/internal/apperrors"
	"github.com/ndewijer/crypto-trade-simulator/internal/model"
	"github.com/ndewijer/crypto-trade-simulator/internal/presenter"
)

const menu = `[1] List top crypto currencies
[2] Search crypto by its ticking symbol
[3] Purchase crypto
[4] Sell crypto
[5] Display state of wallet
[6] Display transaction list
[Any key] Exit
`

// Market provides quotes for the session.
type Market interface {
	Currency() string
	TopAssets(ctx context.Context) ([]model.Quote, error)
	Quote(ctx context.Context, symbol string) (model.Quote, error)
}

// Ledger holds the balance and transaction log the session trades against.
type Ledger interface {
	GetBalance(ctx context.Context) (float64, error)
	GetTransactions(ctx context.Context) ([]model.Transaction, error)
	Holdings(ctx context.Context) ([]model.Holding, error)
	Purchase(ctx context.Context, symbol string, amount, price float64) (*model.Transaction, error)
	Sell(ctx context.Context, symbol string, amount, price float64) (*model.Transaction, error)
}

// Session reads menu choices line by line and runs one command at a time.
// A failed command prints a message and returns to the menu; only the exit
// choice or the end of input ends the session.
type Session struct {
	in        *bufio.Scanner
	out       io.Writer
	market    Market
	ledger    Ledger
	presenter presenter.Presenter
}

// New creates a session reading user input from in and writing prompts to out.
func New(in io.Reader, out io.Writer, market Market, ledger Ledger, p presenter.Presenter) *Session {
	return &Session{
		in:        bufio.NewScanner(in),
		out:       out,
		market:    market,
		ledger:    ledger,
		presenter: p,
	}
}

// Run shows the menu until the user exits. It returns nil on a normal exit and
// the context error if ctx is cancelled between commands.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, menu)
		choice, ok := s.prompt("Enter choice ")
		if !ok {
			s.presenter.Message("Goodbye")
			return nil
		}

		switch choice {
		case "1":
			s.list(ctx)
		case "2":
			s.search(ctx)
		case "3":
			s.purchase(ctx)
		case "4":
			s.sell(ctx)
		case "5":
			s.wallet(ctx)
		case "6":
			s.history(ctx)
		default:
			s.presenter.Message("Goodbye")
			return nil
		}
	}
}

func (s *Session) list(ctx context.Context) {
	quotes, err := s.market.TopAssets(ctx)
	if err != nil {
		s.fail(err, "", 0)
		return
	}
	s.table(presenter.QuoteHeaders, presenter.QuoteRows(quotes))
}

func (s *Session) search(ctx context.Context) {
	symbol, ok := s.promptSymbol("Enter ticking symbol ")
	if !ok {
		return
	}
	quote, err := s.market.Quote(ctx, symbol)
	if err != nil {
		s.fail(err, symbol, 0)
		return
	}
	s.table(presenter.QuoteHeaders, presenter.QuoteRows([]model.Quote{quote}))
}

func (s *Session) purchase(ctx context.Context) {
	symbol, ok := s.promptSymbol("Enter crypto symbol to purchase ")
	if !ok {
		return
	}
	quote, err := s.market.Quote(ctx, symbol)
	if err != nil {
		s.fail(err, symbol, 0)
		return
	}

	amount, ok := s.promptAmount(fmt.Sprintf("Enter amount of %s to buy ", quote.Symbol))
	if !ok {
		return
	}

	tx, err := s.ledger.Purchase(ctx, quote.Symbol, amount, quote.Price)
	if err != nil {
		s.fail(err, quote.Symbol, amount)
		return
	}
	s.presenter.Message("Purchased %s %s for %s",
		presenter.FormatDecimal(tx.Amount), tx.Symbol, presenter.FormatMoney(tx.Value, s.market.Currency()))
}

func (s *Session) sell(ctx context.Context) {
	symbol, ok := s.promptSymbol("Enter crypto symbol to sell ")
	if !ok {
		return
	}
	quote, err := s.market.Quote(ctx, symbol)
	if err != nil {
		s.fail(err, symbol, 0)
		return
	}

	amount, ok := s.promptAmount(fmt.Sprintf("Enter amount of %s to sell ", quote.Symbol))
	if !ok {
		return
	}

	tx, err := s.ledger.Sell(ctx, quote.Symbol, amount, quote.Price)
	if err != nil {
		s.fail(err, quote.Symbol, amount)
		return
	}
	s.presenter.Message("Sold %s %s for %s",
		presenter.FormatDecimal(tx.Amount), tx.Symbol, presenter.FormatMoney(tx.Value, s.market.Currency()))
}

func (s *Session) wallet(ctx context.Context) {
	balance, err := s.ledger.GetBalance(ctx)
	if err != nil {
		s.fail(err, "", 0)
		return
	}
	holdings, err := s.ledger.Holdings(ctx)
	if err != nil {
		s.fail(err, "", 0)
		return
	}

	s.presenter.Message("Current balance is %s", presenter.FormatMoney(balance, s.market.Currency()))
	s.table(presenter.HoldingHeaders, presenter.HoldingRows(holdings))
}

func (s *Session) history(ctx context.Context) {
	transactions, err := s.ledger.GetTransactions(ctx)
	if err != nil {
		s.fail(err, "", 0)
		return
	}
	s.table(presenter.TransactionHeaders, presenter.TransactionRows(transactions, s.market.Currency()))
}

func (s *Session) table(headers []string, rows [][]string) {
	if err := s.presenter.Table(headers, rows); err != nil {
		log.Printf("failed to render table: %v", err)
	}
}

// prompt writes label and reads one trimmed line. It reports false at the end of input.
func (s *Session) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Session) promptSymbol(label string) (string, bool) {
	symbol, ok := s.prompt(label)
	if !ok {
		return "", false
	}
	return strings.ToUpper(symbol), true
}

// promptAmount reads a trade quantity. Anything that is not a positive number is
// rejected here with the same message the ledger's amount check produces.
func (s *Session) promptAmount(label string) (float64, bool) {
	line, ok := s.prompt(label)
	if !ok {
		return 0, false
	}
	amount, err := strconv.ParseFloat(line, 64)
	if err != nil || !(amount > 0) {
		s.fail(apperrors.ErrInvalidAmount, "", 0)
		return 0, false
	}
	return amount, true
}

func (s *Session) fail(err error, symbol string, amount float64) {
	if errors.Is(err, apperrors.ErrStorage) || errors.Is(err, apperrors.ErrQuoteUnavailable) || !isExpected(err) {
		log.Printf("command failed: %v", err)
	}
	s.presenter.Message("%s", ErrorMessage(err, symbol, amount))
}

// ErrorMessage maps an error from the market or the ledger to the text shown to the user.
func ErrorMessage(err error, symbol string, amount float64) string {
	switch {
	case errors.Is(err, apperrors.ErrInvalidAmount):
		return "Enter positive amount"
	case errors.Is(err, apperrors.ErrInvalidSymbol):
		return "Enter a ticker symbol"
	case errors.Is(err, apperrors.ErrSymbolNotFound):
		return symbol + " not found"
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		return fmt.Sprintf("Insufficient funds to buy %s %s", presenter.FormatDecimal(amount), symbol)
	case errors.Is(err, apperrors.ErrInsufficientHolding):
		return fmt.Sprintf("Insufficient amount of %s to sell", symbol)
	case errors.Is(err, apperrors.ErrInvalidPrice):
		return fmt.Sprintf("No valid price available for %s", symbol)
	case errors.Is(err, apperrors.ErrQuoteUnavailable):
		return "Market data is unavailable, try again later"
	case errors.Is(err, apperrors.ErrStorage):
		return "Wallet storage error, nothing was changed"
	default:
		return "Unexpected error: " + err.Error()
	}
}

func isExpected(err error) bool {
	for _, target := range []error{
		apperrors.ErrInvalidAmount,
		apperrors.ErrInvalidSymbol,
		apperrors.ErrSymbolNotFound,
		apperrors.ErrInsufficientFunds,
		apperrors.ErrInsufficientHolding,
		apperrors.ErrInvalidPrice,
		apperrors.ErrQuoteUnavailable,
		apperrors.ErrStorage,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
