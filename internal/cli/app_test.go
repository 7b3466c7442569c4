package cli

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"

	"github.com/ndewijer/crypto-trade-simulator/internal/apperrors"
	"github.com/ndewijer/crypto-trade-simulator/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Defaults()
	cfg.Database.Path = filepath.Join(t.TempDir(), "data", "simulator.db")
	cfg.Output.Plain = true
	return &cfg
}

// TestNewApp tests wiring of the store, ledger and presenter.
//
// WHY: Every subcommand starts from NewApp; a fresh path must come up seeded and
// a reopened store must keep its balance.
func TestNewApp(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Ledger.StartingBalance = 500

	var out bytes.Buffer
	app, err := NewApp(ctx, cfg, &out)
	if err != nil {
		t.Fatalf("NewApp() returned unexpected error: %v", err)
	}

	if _, err := app.Ledger.Purchase(ctx, "BTC", 1, 100); err != nil {
		t.Fatalf("Purchase() returned unexpected error: %v", err)
	}
	if err := app.Close(); err != nil {
		t.Fatalf("Close() returned unexpected error: %v", err)
	}

	app, err = NewApp(ctx, cfg, &out)
	if err != nil {
		t.Fatalf("NewApp() returned unexpected error on reopen: %v", err)
	}
	defer app.Close()

	if err := app.Session(strings.NewReader("5\n")).Run(ctx); err != nil {
		t.Fatalf("Run() returned unexpected error: %v", err)
	}
	for _, want := range []string{"Current balance is $400.00", "| BTC | 1 |", "Goodbye"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out.String())
		}
	}
}

func TestNewApp_LogFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.LogFile = filepath.Join(t.TempDir(), "simulator.log")

	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	app, err := NewApp(context.Background(), cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("NewApp() returned unexpected error: %v", err)
	}
	log.Printf("hello from test")
	if err := app.Close(); err != nil {
		t.Fatalf("Close() returned unexpected error: %v", err)
	}
	log.SetOutput(os.Stderr)

	data, err := os.ReadFile(cfg.Output.LogFile)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "Seeded balance with 1000.00") {
		t.Errorf("Expected seeding to be logged, got %q", data)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Errorf("Expected log output in file, got %q", data)
	}
}

func TestNewApp_BadLogFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.LogFile = filepath.Join(t.TempDir(), "missing", "simulator.log")

	if _, err := NewApp(context.Background(), cfg, &bytes.Buffer{}); err == nil {
		t.Error("Expected error for unwritable log file")
	}
}

func TestReport(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want subcommands.ExitStatus
	}{
		{"invalid amount is a usage error", apperrors.ErrInvalidAmount, subcommands.ExitUsageError},
		{"invalid symbol is a usage error", apperrors.ErrInvalidSymbol, subcommands.ExitUsageError},
		{"insufficient funds fails", apperrors.ErrInsufficientFunds, subcommands.ExitFailure},
		{"storage fails", apperrors.ErrStorage, subcommands.ExitFailure},
		{"unknown error fails", errors.New("boom"), subcommands.ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := report(tt.err, "BTC", 1); got != tt.want {
				t.Errorf("report() = %v, want %v", got, tt.want)
			}
		})
	}
}
