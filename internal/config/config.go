package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Market   MarketConfig   `toml:"market"`
	Ledger   LedgerConfig   `toml:"ledger"`
	Redis    RedisConfig    `toml:"redis"`
	Output   OutputConfig   `toml:"output"`
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// MarketConfig holds the CoinMarketCap API configuration
type MarketConfig struct {
	APIKey    string   `toml:"api_key"`
	BaseURL   string   `toml:"base_url"`
	Currency  string   `toml:"currency"`
	Timeout   Duration `toml:"timeout"`
	ListLimit int      `toml:"list_limit"`
}

// LedgerConfig holds the simulated account settings
type LedgerConfig struct {
	StartingBalance float64 `toml:"starting_balance"`
}

// RedisConfig holds the quote cache configuration.
// The cache is disabled when Addr is empty.
type RedisConfig struct {
	Addr     string   `toml:"addr"`
	Password string   `toml:"password"`
	DB       int      `toml:"db"`
	QuoteTTL Duration `toml:"quote_ttl"`
}

// OutputConfig holds terminal output configuration
type OutputConfig struct {
	Plain   bool   `toml:"plain"`
	LogFile string `toml:"log_file"`
}

// Duration wraps time.Duration so TOML files can use strings like "10s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns the configuration used when neither a file nor the environment sets a value.
func Defaults() Config {
	return Config{
		Database: DatabaseConfig{
			Path: "./data/simulator.db",
		},
		Market: MarketConfig{
			BaseURL:   "https://pro-api.coinmarketcap.com",
			Currency:  "USD",
			Timeout:   Duration{10 * time.Second},
			ListLimit: 10,
		},
		Ledger: LedgerConfig{
			StartingBalance: 1000.0,
		},
		Redis: RedisConfig{
			QuoteTTL: Duration{60 * time.Second},
		},
	}
}

// Validate checks the configuration for values the application cannot run with.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Database.Path) == "" {
		errs = append(errs, "database: path must not be empty")
	}
	if c.Market.Currency == "" {
		errs = append(errs, "market: currency must not be empty")
	}
	if c.Market.ListLimit <= 0 {
		errs = append(errs, "market: list_limit must be positive")
	}
	if c.Market.Timeout.Duration < 0 {
		errs = append(errs, "market: timeout must not be negative")
	}
	if !(c.Ledger.StartingBalance >= 0) {
		errs = append(errs, "ledger: starting_balance must not be negative")
	}
	if c.Redis.Addr != "" && c.Redis.QuoteTTL.Duration <= 0 {
		errs = append(errs, "redis: quote_ttl must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
