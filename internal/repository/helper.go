package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ndewijer/crypto-trade-simulator/internal/model"
)

// querier is the subset of *sql.DB and *sql.Tx used by the repositories.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ParseTime parses a transaction time in model.TimeLayout (local time) or RFC3339 format.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.ParseInLocation(model.TimeLayout, str, time.Local)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse time: %w", err)
		}
	}
	return returnTime, nil
}
