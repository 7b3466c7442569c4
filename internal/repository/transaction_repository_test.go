package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/ndewijer/crypto-trade-simulator/internal/model"
	"github.com/ndewijer/crypto-trade-simulator/internal/repository"
	"github.com/ndewijer/crypto-trade-simulator/internal/testutil"
)

// TestTransactionRepository_Insert tests appending to the log.
//
// WHY: The log is the only record of holdings. What is written must read back
// identically, in insertion order.
func TestTransactionRepository_Insert(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)

	ts := time.Date(2024, 5, 2, 8, 15, 30, 0, time.Local)
	in := []*model.Transaction{
		{Type: model.TransactionPurchase, Symbol: "BTC", Amount: 0.5, Price: 60000, Value: 30000, Time: ts},
		{Type: model.TransactionSell, Symbol: "BTC", Amount: 0.25, Price: 62000, Value: 15500, Time: ts.Add(time.Minute)},
	}
	for _, tx := range in {
		if err := repo.Insert(ctx, tx); err != nil {
			t.Fatalf("Insert() returned unexpected error: %v", err)
		}
		if tx.ID == 0 {
			t.Error("Expected Insert() to set the ID")
		}
	}
	if in[1].ID <= in[0].ID {
		t.Errorf("Expected increasing IDs, got %d then %d", in[0].ID, in[1].ID)
	}

	out, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() returned unexpected error: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("Expected %d transactions, got %d", len(in), len(out))
	}
	for i := range in {
		got, want := out[i], *in[i]
		if got.ID != want.ID || got.Type != want.Type || got.Symbol != want.Symbol ||
			got.Amount != want.Amount || got.Price != want.Price || got.Value != want.Value {
			t.Errorf("out[%d] = %+v, want %+v", i, got, want)
		}
		if !got.Time.Equal(want.Time) {
			t.Errorf("out[%d].Time = %v, want %v", i, got.Time, want.Time)
		}
	}
}

func TestTransactionRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("empty log returns empty slice", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)

		out, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("List() returned unexpected error: %v", err)
		}
		if out == nil || len(out) != 0 {
			t.Errorf("Expected empty non-nil slice, got %#v", out)
		}
	})

	t.Run("filters by symbol", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)

		testutil.CreatePurchase(t, db, "BTC", 1, 100)
		testutil.CreatePurchase(t, db, "ETH", 2, 10)
		testutil.CreateSale(t, db, "ETH", 1, 12)

		out, err := repo.ListBySymbol(ctx, "ETH")
		if err != nil {
			t.Fatalf("ListBySymbol() returned unexpected error: %v", err)
		}
		if len(out) != 2 {
			t.Fatalf("Expected 2 ETH transactions, got %d", len(out))
		}
		if out[0].Type != model.TransactionPurchase || out[1].Type != model.TransactionSell {
			t.Errorf("Unexpected order %s, %s", out[0].Type, out[1].Type)
		}
	})

	t.Run("unknown type is an error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)

		_, err := db.Exec(`INSERT INTO transactions (type, symbol, amount, price, value, time)
			VALUES ('gift', 'BTC', 1, 1, 1, '2024-01-01 00:00:00')`)
		if err != nil {
			t.Fatalf("Failed to insert row: %v", err)
		}

		if _, err := repo.List(ctx); err == nil {
			t.Error("Expected error for unknown transaction type")
		}
	})
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"stored layout", "2024-01-15 10:30:00", time.Date(2024, 1, 15, 10, 30, 0, 0, time.Local), false},
		{"rfc3339", "2024-01-15T10:30:00Z", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), false},
		{"garbage", "yesterday", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repository.ParseTime(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTime() returned unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
