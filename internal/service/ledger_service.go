package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/crypto-trade-simulator/internal/apperrors"
	"github.com/ndewijer/crypto-trade-simulator/internal/database"
	"github.com/ndewijer/crypto-trade-simulator/internal/model"
	"github.com/ndewijer/crypto-trade-simulator/internal/repository"
	"github.com/ndewijer/crypto-trade-simulator/internal/validation"
)

// DefaultStartingBalance is the cash balance a fresh store is seeded with.
const DefaultStartingBalance = 1000.0

// LedgerService owns the cash balance and the transaction log.
//
// The log is the only durable record of positions: holdings are recomputed by
// replaying every transaction on each call and are never cached. Purchases and
// sales check their preconditions and commit the balance update together with
// the log append inside one database transaction.
type LedgerService struct {
	db              *sql.DB
	balanceRepo     *repository.BalanceRepository
	transactionRepo *repository.TransactionRepository
	startingBalance float64
	now             func() time.Time
}

// LedgerOption configures optional LedgerService settings.
type LedgerOption func(*LedgerService)

// WithStartingBalance sets the balance used to seed an empty store.
func WithStartingBalance(amount float64) LedgerOption {
	return func(s *LedgerService) {
		s.startingBalance = amount
	}
}

// WithClock replaces time.Now as the source of transaction timestamps.
func WithClock(now func() time.Time) LedgerOption {
	return func(s *LedgerService) {
		s.now = now
	}
}

// NewLedgerService creates a new LedgerService with the provided database and repository dependencies.
func NewLedgerService(
	db *sql.DB,
	balanceRepo *repository.BalanceRepository,
	transactionRepo *repository.TransactionRepository,
	opts ...LedgerOption,
) *LedgerService {
	s := &LedgerService{
		db:              db,
		balanceRepo:     balanceRepo,
		transactionRepo: transactionRepo,
		startingBalance: DefaultStartingBalance,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize creates the schema if needed and seeds the balance when no balance row exists.
// It is safe to call on every start: an existing balance and log are left untouched.
func (s *LedgerService) Initialize(ctx context.Context) error {
	if err := database.Migrate(ctx, s.db); err != nil {
		return storageError("failed to migrate store", err)
	}

	return s.withinTx(ctx, func(balanceRepo *repository.BalanceRepository, _ *repository.TransactionRepository) error {
		seeded, err := balanceRepo.Seed(ctx, s.startingBalance)
		if err != nil {
			return storageError("failed to seed balance", err)
		}
		if seeded {
			log.Printf("Seeded balance with %.2f", s.startingBalance)
		}
		return nil
	})
}

// GetBalance returns the current cash balance.
func (s *LedgerService) GetBalance(ctx context.Context) (float64, error) {
	balance, err := s.balanceRepo.Get(ctx)
	if err != nil {
		return 0, storageError("failed to read balance", err)
	}
	return balance, nil
}

// GetTransactions returns the full transaction log in insertion order.
func (s *LedgerService) GetTransactions(ctx context.Context) ([]model.Transaction, error) {
	transactions, err := s.transactionRepo.List(ctx)
	if err != nil {
		return nil, storageError("failed to read transactions", err)
	}
	return transactions, nil
}

// GetTransactionsBySymbol returns the trades of one symbol in insertion order.
func (s *LedgerService) GetTransactionsBySymbol(ctx context.Context, symbol string) ([]model.Transaction, error) {
	symbol, err := validation.NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	transactions, err := s.transactionRepo.ListBySymbol(ctx, symbol)
	if err != nil {
		return nil, storageError("failed to read transactions", err)
	}
	return transactions, nil
}

// ComputeHolding returns the net amount of symbol held: the sum of its purchases
// minus the sum of its sales, replayed from the full log.
func (s *LedgerService) ComputeHolding(ctx context.Context, symbol string) (float64, error) {
	symbol, err := validation.NormalizeSymbol(symbol)
	if err != nil {
		return 0, err
	}
	transactions, err := s.GetTransactions(ctx)
	if err != nil {
		return 0, err
	}
	return holdingOf(transactions, symbol).InexactFloat64(), nil
}

// Holdings returns every symbol with a positive net amount, in order of first trade.
// Symbols that were fully sold are left out.
func (s *LedgerService) Holdings(ctx context.Context) ([]model.Holding, error) {
	transactions, err := s.GetTransactions(ctx)
	if err != nil {
		return nil, err
	}

	symbols, net := replay(transactions)

	holdings := []model.Holding{}
	for _, symbol := range symbols {
		if net[symbol].IsPositive() {
			holdings = append(holdings, model.Holding{
				Symbol: symbol,
				Amount: net[symbol].InexactFloat64(),
			})
		}
	}
	return holdings, nil
}

// Purchase buys amount of symbol at price. The cost (amount * price) is debited from
// the balance and a purchase transaction is appended, atomically.
//
// Returns apperrors.ErrInvalidAmount for a non-positive amount and
// apperrors.ErrInsufficientFunds when the cost exceeds the balance. Nothing is
// written in either case.
func (s *LedgerService) Purchase(ctx context.Context, symbol string, amount, price float64) (*model.Transaction, error) {
	symbol, err := validation.ValidateTrade(symbol, amount, price)
	if err != nil {
		return nil, err
	}

	cost := decimal.NewFromFloat(price).Mul(decimal.NewFromFloat(amount))

	var created *model.Transaction
	err = s.withinTx(ctx, func(balanceRepo *repository.BalanceRepository, transactionRepo *repository.TransactionRepository) error {
		current, err := balanceRepo.Get(ctx)
		if err != nil {
			return storageError("failed to read balance", err)
		}

		balance := decimal.NewFromFloat(current)
		if balance.LessThan(cost) {
			return fmt.Errorf("%w: buying %v %s costs %s, balance is %s",
				apperrors.ErrInsufficientFunds, amount, symbol, cost, balance)
		}

		if err := balanceRepo.Set(ctx, balance.Sub(cost).InexactFloat64()); err != nil {
			return storageError("failed to debit balance", err)
		}

		created, err = s.appendTransaction(ctx, transactionRepo, model.TransactionPurchase, symbol, amount, price, cost)
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Sell sells amount of symbol at price. The proceeds (amount * price) are credited
// to the balance and a sell transaction is appended, atomically.
//
// Returns apperrors.ErrInvalidAmount for a non-positive amount and
// apperrors.ErrInsufficientHolding when amount exceeds the current holding.
// Nothing is written in either case.
func (s *LedgerService) Sell(ctx context.Context, symbol string, amount, price float64) (*model.Transaction, error) {
	symbol, err := validation.ValidateTrade(symbol, amount, price)
	if err != nil {
		return nil, err
	}

	value := decimal.NewFromFloat(price).Mul(decimal.NewFromFloat(amount))

	var created *model.Transaction
	err = s.withinTx(ctx, func(balanceRepo *repository.BalanceRepository, transactionRepo *repository.TransactionRepository) error {
		transactions, err := transactionRepo.List(ctx)
		if err != nil {
			return storageError("failed to read transactions", err)
		}

		available := holdingOf(transactions, symbol)
		if decimal.NewFromFloat(amount).GreaterThan(available) {
			return fmt.Errorf("%w: selling %v %s, holding is %s",
				apperrors.ErrInsufficientHolding, amount, symbol, available)
		}

		current, err := balanceRepo.Get(ctx)
		if err != nil {
			return storageError("failed to read balance", err)
		}

		if err := balanceRepo.Set(ctx, decimal.NewFromFloat(current).Add(value).InexactFloat64()); err != nil {
			return storageError("failed to credit balance", err)
		}

		created, err = s.appendTransaction(ctx, transactionRepo, model.TransactionSell, symbol, amount, price, value)
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *LedgerService) appendTransaction(
	ctx context.Context,
	transactionRepo *repository.TransactionRepository,
	txType model.TransactionType,
	symbol string,
	amount, price float64,
	value decimal.Decimal,
) (*model.Transaction, error) {
	transaction := &model.Transaction{
		Type:   txType,
		Symbol: symbol,
		Amount: amount,
		Price:  price,
		Value:  value.InexactFloat64(),
		// stored with second precision
		Time: s.now().Truncate(time.Second),
	}
	if err := transactionRepo.Insert(ctx, transaction); err != nil {
		return nil, storageError("failed to append transaction", err)
	}
	return transaction, nil
}

// withinTx runs fn with repositories bound to a single database transaction and
// commits only if fn succeeds.
func (s *LedgerService) withinTx(
	ctx context.Context,
	fn func(*repository.BalanceRepository, *repository.TransactionRepository) error,
) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageError("failed to begin transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after a successful commit

	if err := fn(s.balanceRepo.WithTx(tx), s.transactionRepo.WithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return storageError("failed to commit transaction", err)
	}
	return nil
}

// replay nets purchases against sales per symbol.
// It returns the symbols in order of first appearance together with their net amounts.
func replay(transactions []model.Transaction) ([]string, map[string]decimal.Decimal) {
	symbols := []string{}
	net := make(map[string]decimal.Decimal)

	for _, t := range transactions {
		current, seen := net[t.Symbol]
		if !seen {
			symbols = append(symbols, t.Symbol)
		}
		amount := decimal.NewFromFloat(t.Amount)
		switch t.Type {
		case model.TransactionPurchase:
			current = current.Add(amount)
		case model.TransactionSell:
			current = current.Sub(amount)
		}
		net[t.Symbol] = current
	}

	return symbols, net
}

func holdingOf(transactions []model.Transaction, symbol string) decimal.Decimal {
	_, net := replay(transactions)
	return net[symbol]
}

func storageError(msg string, err error) error {
	return fmt.Errorf("%w: %s: %w", apperrors.ErrStorage, msg, err)
}
