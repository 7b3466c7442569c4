package testutil

import (
	"database/sql"
	"math"
	"testing"
	"time"

	"github.com/ndewijer/crypto-trade-simulator/internal/repository"
	"github.com/ndewijer/crypto-trade-simulator/internal/service"
)

// FixedTime is the clock reading returned by FixedClock.
var FixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)

// FixedClock returns FixedTime. Use it with service.WithClock for deterministic timestamps.
func FixedClock() time.Time {
	return FixedTime
}

// NewTestLedgerService creates a LedgerService over db with a fixed clock.
// The store is not initialized; call Initialize or seed the balance first.
func NewTestLedgerService(t *testing.T, db *sql.DB, opts ...service.LedgerOption) *service.LedgerService {
	t.Helper()

	opts = append([]service.LedgerOption{service.WithClock(FixedClock)}, opts...)

	return service.NewLedgerService(
		db,
		repository.NewBalanceRepository(db),
		repository.NewTransactionRepository(db),
		opts...,
	)
}

// NewTestMarketService creates a MarketService in USD backed by client.
func NewTestMarketService(t *testing.T, client *MockQuoteClient) *service.MarketService {
	t.Helper()
	return service.NewMarketService(client, "USD", 3)
}

// AssertFloat fails the test when got and want differ by more than 1e-9.
func AssertFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}
