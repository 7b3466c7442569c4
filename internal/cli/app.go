// Package cli implements the simulator's command line.
package cli

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/subcommands"
	"github.com/mattn/go-isatty"

	"github.com/ndewijer/crypto-trade-simulator/internal/cache"
	"github.com/ndewijer/crypto-trade-simulator/internal/coinmarketcap"
	"github.com/ndewijer/crypto-trade-simulator/internal/config"
	"github.com/ndewijer/crypto-trade-simulator/internal/database"
	"github.com/ndewijer/crypto-trade-simulator/internal/presenter"
	"github.com/ndewijer/crypto-trade-simulator/internal/repository"
	"github.com/ndewijer/crypto-trade-simulator/internal/service"
	"github.com/ndewijer/crypto-trade-simulator/internal/session"
)

// Register adds the simulator subcommands to c.
func Register(c *subcommands.Commander) {
	c.Register(&menuCmd{}, "")
	c.Register(&initCmd{}, "")
	c.Register(&statusCmd{}, "")

	c.Register(&listCmd{}, "market")
	c.Register(&searchCmd{}, "market")

	c.Register(&buyCmd{}, "trading")
	c.Register(&sellCmd{}, "trading")
	c.Register(&walletCmd{}, "trading")
	c.Register(&historyCmd{}, "trading")
}

// A CLI invocation is short lived, so the global flags live in package variables.
var (
	configFile = flag.String("config", "", "Path to an optional TOML configuration file")
	dbPath     = flag.String("db", "", "Path to the SQLite store (overrides DB_PATH)")
)

// App holds the services shared by all subcommands.
type App struct {
	Config    *config.Config
	DB        *sql.DB
	Ledger    *service.LedgerService
	Market    *service.MarketService
	System    *service.SystemService
	Presenter presenter.Presenter

	cacheEnabled bool

	out     io.Writer
	closers []func() error
}

// NewApp opens the store, initializes the ledger and connects the market data client.
// Output goes to out; tables are styled only when out is a terminal and plain output
// is not requested.
func NewApp(ctx context.Context, cfg *config.Config, out io.Writer) (*App, error) {
	app := &App{Config: cfg, out: out}

	if cfg.Output.LogFile != "" {
		f, err := os.OpenFile(cfg.Output.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		log.SetOutput(f)
		app.closers = append(app.closers, f.Close)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.DB = db
	app.closers = append(app.closers, db.Close)

	balanceRepo := repository.NewBalanceRepository(db)
	app.Ledger = service.NewLedgerService(
		db,
		balanceRepo,
		repository.NewTransactionRepository(db),
		service.WithStartingBalance(cfg.Ledger.StartingBalance),
	)
	app.System = service.NewSystemService(db, balanceRepo)
	if err := app.Ledger.Initialize(ctx); err != nil {
		app.Close()
		return nil, err
	}

	var client coinmarketcap.Client = coinmarketcap.NewAPIClient(
		cfg.Market.BaseURL,
		cfg.Market.APIKey,
		cfg.Market.Timeout.Duration,
	)
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(ctx, cache.ClientConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Printf("Quote cache disabled: %v", err)
		} else {
			client = cache.NewQuoteCache(rdb, client, cfg.Redis.QuoteTTL.Duration)
			app.closers = append(app.closers, rdb.Close)
			app.cacheEnabled = true
		}
	}
	app.Market = service.NewMarketService(client, cfg.Market.Currency, cfg.Market.ListLimit)

	p, err := presenter.NewMarkdownPresenter(out, !cfg.Output.Plain && isTerminal(out))
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Presenter = p

	return app, nil
}

// Session returns an interactive menu session reading from in.
func (a *App) Session(in io.Reader) *session.Session {
	return session.New(in, a.out, a.Market, a.Ledger, a.Presenter)
}

// Close releases the store, the cache connection and the log file, in reverse order of opening.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// openApp loads the configuration and builds the App for a subcommand.
// On failure it reports the error on stderr and returns the exit status to use.
func openApp(ctx context.Context) (*App, subcommands.ExitStatus) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	app, err := NewApp(ctx, cfg, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening simulator: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	return app, subcommands.ExitSuccess
}

func closeApp(app *App) {
	if err := app.Close(); err != nil {
		log.Printf("Failed to close simulator: %v", err)
	}
}
