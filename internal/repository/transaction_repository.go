package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/crypto-trade-simulator/internal/model"
)

// TransactionRepository provides data access methods for the append-only transactions table.
type TransactionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// WithTx returns a new TransactionRepository scoped to the provided transaction.
func (r *TransactionRepository) WithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *TransactionRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// List retrieves every transaction in insertion order.
// Returns an empty slice if the log is empty.
func (r *TransactionRepository) List(ctx context.Context) ([]model.Transaction, error) {
	query := `
		SELECT id, type, symbol, amount, price, value, time
		FROM transactions
		ORDER BY id ASC
	`
	return r.query(ctx, query)
}

// ListBySymbol retrieves the transactions of a single symbol in insertion order.
func (r *TransactionRepository) ListBySymbol(ctx context.Context, symbol string) ([]model.Transaction, error) {
	query := `
		SELECT id, type, symbol, amount, price, value, time
		FROM transactions
		WHERE symbol = ?
		ORDER BY id ASC
	`
	return r.query(ctx, query, symbol)
}

func (r *TransactionRepository) query(ctx context.Context, query string, args ...any) ([]model.Transaction, error) {
	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}

	for rows.Next() {
		var timeStr, typeStr string
		var t model.Transaction

		err := rows.Scan(
			&t.ID,
			&typeStr,
			&t.Symbol,
			&t.Amount,
			&t.Price,
			&t.Value,
			&timeStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transactions table results: %w", err)
		}

		t.Type = model.TransactionType(typeStr)
		if !t.Type.Valid() {
			return nil, fmt.Errorf("transaction %d has unknown type %q", t.ID, typeStr)
		}

		t.Time, err = ParseTime(timeStr)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", t.ID, err)
		}

		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions table: %w", err)
	}

	return transactions, nil
}

// Insert appends t to the log and sets t.ID to the generated row id.
func (r *TransactionRepository) Insert(ctx context.Context, t *model.Transaction) error {
	query := `
		INSERT INTO transactions (type, symbol, amount, price, value, time)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := r.getQuerier().ExecContext(ctx, query,
		string(t.Type),
		t.Symbol,
		t.Amount,
		t.Price,
		t.Value,
		t.Time.Format(model.TimeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read transaction id: %w", err)
	}
	t.ID = id

	return nil
}
