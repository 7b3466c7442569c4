package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/crypto-trade-simulator/internal/model"
)

// TransactionBuilder provides a fluent interface for writing log entries directly
// to the store, bypassing the balance checks of the ledger.
//
// Example usage:
//
//	// Purchase of 1 BTC at 100 with defaults
//	tx := testutil.NewTransaction().Build(t, db)
//
//	// Customized sale
//	tx := testutil.NewTransaction().
//	    WithSymbol("ETH").
//	    Sell().
//	    WithAmount(2).
//	    WithPrice(50).
//	    Build(t, db)
type TransactionBuilder struct {
	Type   model.TransactionType
	Symbol string
	Amount float64
	Price  float64
	Time   time.Time
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
func NewTransaction() *TransactionBuilder {
	return &TransactionBuilder{
		Type:   model.TransactionPurchase,
		Symbol: "BTC",
		Amount: 1,
		Price:  100,
		Time:   time.Date(2024, 1, 15, 10, 30, 0, 0, time.Local),
	}
}

// WithSymbol sets the traded symbol.
func (b *TransactionBuilder) WithSymbol(symbol string) *TransactionBuilder {
	b.Symbol = symbol
	return b
}

// WithAmount sets the traded quantity.
func (b *TransactionBuilder) WithAmount(amount float64) *TransactionBuilder {
	b.Amount = amount
	return b
}

// WithPrice sets the unit price.
func (b *TransactionBuilder) WithPrice(price float64) *TransactionBuilder {
	b.Price = price
	return b
}

// WithTime sets the trade time.
func (b *TransactionBuilder) WithTime(ts time.Time) *TransactionBuilder {
	b.Time = ts
	return b
}

// Purchase marks the transaction as a purchase.
func (b *TransactionBuilder) Purchase() *TransactionBuilder {
	b.Type = model.TransactionPurchase
	return b
}

// Sell marks the transaction as a sale.
func (b *TransactionBuilder) Sell() *TransactionBuilder {
	b.Type = model.TransactionSell
	return b
}

// Build inserts the transaction into the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	value := b.Amount * b.Price
	query := `
		INSERT INTO transactions (type, symbol, amount, price, value, time)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := db.Exec(query, string(b.Type), b.Symbol, b.Amount, b.Price, value, b.Time.Format(model.TimeLayout))
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to read transaction id: %v", err)
	}

	return model.Transaction{
		ID:     id,
		Type:   b.Type,
		Symbol: b.Symbol,
		Amount: b.Amount,
		Price:  b.Price,
		Value:  value,
		Time:   b.Time,
	}
}

// Convenience functions

// CreatePurchase logs a purchase of amount symbol at price.
//
// Example usage:
//
//	testutil.CreatePurchase(t, db, "BTC", 2, 100)
func CreatePurchase(t *testing.T, db *sql.DB, symbol string, amount, price float64) model.Transaction {
	t.Helper()
	return NewTransaction().WithSymbol(symbol).WithAmount(amount).WithPrice(price).Build(t, db)
}

// CreateSale logs a sale of amount symbol at price.
func CreateSale(t *testing.T, db *sql.DB, symbol string, amount, price float64) model.Transaction {
	t.Helper()
	return NewTransaction().Sell().WithSymbol(symbol).WithAmount(amount).WithPrice(price).Build(t, db)
}

// NewQuote returns a quote in USD with a fixed update time.
func NewQuote(symbol, name string, rank int, price float64) model.Quote {
	return model.Quote{
		Symbol:      symbol,
		Name:        name,
		Rank:        rank,
		Price:       price,
		Currency:    "USD",
		LastUpdated: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	}
}
