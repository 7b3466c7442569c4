package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/crypto-trade-simulator/internal/apperrors"
)

// BalanceRepository provides data access methods for the single-row balance table.
type BalanceRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewBalanceRepository creates a new BalanceRepository with the provided database connection.
func NewBalanceRepository(db *sql.DB) *BalanceRepository {
	return &BalanceRepository{db: db}
}

// WithTx returns a new BalanceRepository scoped to the provided transaction.
func (r *BalanceRepository) WithTx(tx *sql.Tx) *BalanceRepository {
	return &BalanceRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *BalanceRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// Get returns the current cash balance.
// Returns apperrors.ErrBalanceNotInitialized if the balance row does not exist.
func (r *BalanceRepository) Get(ctx context.Context) (float64, error) {
	var amount float64
	err := r.getQuerier().QueryRowContext(ctx, `SELECT amount FROM balance ORDER BY id LIMIT 1`).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, apperrors.ErrBalanceNotInitialized
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query balance table: %w", err)
	}
	return amount, nil
}

// Set overwrites the balance with amount.
// Returns apperrors.ErrBalanceNotInitialized if there is no row to update.
func (r *BalanceRepository) Set(ctx context.Context, amount float64) error {
	query := `
		UPDATE balance
		SET amount = ?
		WHERE id = (SELECT id FROM balance ORDER BY id LIMIT 1)
	`
	result, err := r.getQuerier().ExecContext(ctx, query, amount)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrBalanceNotInitialized
	}
	return nil
}

// Seed inserts the balance row with the initial amount if the table is empty.
// It reports whether a row was inserted; an existing balance is never touched.
func (r *BalanceRepository) Seed(ctx context.Context, initial float64) (bool, error) {
	query := `
		INSERT INTO balance (id, amount)
		SELECT 1, ?
		WHERE NOT EXISTS (SELECT 1 FROM balance)
	`
	result, err := r.getQuerier().ExecContext(ctx, query, initial)
	if err != nil {
		return false, fmt.Errorf("failed to seed balance: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return rows > 0, nil
}
