/*
Package config loads runtime configuration from the environment.

A .env file is read when present (godotenv), then real environment
variables override it. Recognized keys:

  PAYTRACK_PORT            HTTP port for the serve command (default 8080)
  PAYTRACK_DB              SQLite database path (default paytrack.db)
  PAYTRACK_USER            User ID scoping the database rows (default "local")
  PAYTRACK_FULL_DAY_RATE   Full-day pay, decimal string (default 150)
  PAYTRACK_HALF_DAY_RATE   Half-day pay, decimal string (default 75)

The engine itself never reads the environment; parsed values are handed to
it as a RateConfig.
*/
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/glasspay/paytrack/engine"
)

type Config struct {
	Port   int
	DBPath string
	UserID string
	Rates  engine.RateConfig
}

// Load reads .env (if present) and the environment. Unset or unparseable
// values fall back to their defaults; configuration problems should never
// stop a local tool from starting.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:   8080,
		DBPath: "paytrack.db",
		UserID: "local",
		Rates:  engine.DefaultRateConfig(),
	}

	if v := os.Getenv("PAYTRACK_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.Port = port
		}
	}
	if v := os.Getenv("PAYTRACK_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PAYTRACK_USER"); v != "" {
		cfg.UserID = v
	}
	if v := os.Getenv("PAYTRACK_FULL_DAY_RATE"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && !d.IsNegative() {
			cfg.Rates.FullDayRate = d
		}
	}
	if v := os.Getenv("PAYTRACK_HALF_DAY_RATE"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && !d.IsNegative() {
			cfg.Rates.HalfDayRate = d
		}
	}
	return cfg
}
