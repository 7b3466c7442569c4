package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads configuration from an optional TOML file, the .env file and environment
// variables, in increasing order of precedence, and validates the result.
// An empty path skips the TOML file.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnvOverrides overwrites config fields whose environment variable is set.
func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Database.Path, "DB_PATH")

	setStr(&cfg.Market.APIKey, "CMC_API_KEY")
	setStr(&cfg.Market.BaseURL, "CMC_BASE_URL")
	setStr(&cfg.Market.Currency, "CMC_CURRENCY")
	setDuration(&cfg.Market.Timeout, "CMC_TIMEOUT")
	setInt(&cfg.Market.ListLimit, "LIST_LIMIT")

	setFloat64(&cfg.Ledger.StartingBalance, "STARTING_BALANCE")

	setStr(&cfg.Redis.Addr, "REDIS_ADDR")
	setStr(&cfg.Redis.Password, "REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "REDIS_DB")
	setDuration(&cfg.Redis.QuoteTTL, "QUOTE_CACHE_TTL")

	setBool(&cfg.Output.Plain, "PLAIN_OUTPUT")
	setStr(&cfg.Output.LogFile, "LOG_FILE")

	cfg.Market.Currency = strings.ToUpper(cfg.Market.Currency)
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}
