package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/ndewijer/crypto-trade-simulator/internal/database"
	"github.com/ndewijer/crypto-trade-simulator/internal/repository"
)

// SetupTestDB creates an in-memory SQLite database with the simulator schema applied.
// No balance row is seeded. The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	return db
}

// SetupSeededDB creates a test database whose balance is seeded with amount.
func SetupSeededDB(t *testing.T, amount float64) *sql.DB {
	t.Helper()

	db := SetupTestDB(t)
	SeedBalance(t, db, amount)
	return db
}

// SeedBalance inserts the balance row. It fails the test if a balance already exists.
func SeedBalance(t *testing.T, db *sql.DB, amount float64) {
	t.Helper()

	seeded, err := repository.NewBalanceRepository(db).Seed(context.Background(), amount)
	if err != nil {
		t.Fatalf("Failed to seed balance: %v", err)
	}
	if !seeded {
		t.Fatalf("Balance was already seeded")
	}
}

// GetBalance reads the stored balance directly, bypassing the services.
func GetBalance(t *testing.T, db *sql.DB) float64 {
	t.Helper()

	var amount float64
	if err := db.QueryRow(`SELECT amount FROM balance WHERE id = 1`).Scan(&amount); err != nil {
		t.Fatalf("Failed to read balance: %v", err)
	}
	return amount
}

// CountTransactions returns the number of rows in the transaction log.
func CountTransactions(t *testing.T, db *sql.DB) int {
	t.Helper()

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM transactions`).Scan(&count); err != nil {
		t.Fatalf("Failed to count transactions: %v", err)
	}
	return count
}
