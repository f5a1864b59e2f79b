package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glasspay/paytrack/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "paytrack.db", cfg.DBPath)
	assert.Equal(t, "local", cfg.UserID)
	assert.Equal(t, "150", cfg.Rates.FullDayRate.String())
	assert.Equal(t, "75", cfg.Rates.HalfDayRate.String())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PAYTRACK_PORT", "9090")
	t.Setenv("PAYTRACK_DB", "/tmp/pay.db")
	t.Setenv("PAYTRACK_USER", "alice")
	t.Setenv("PAYTRACK_FULL_DAY_RATE", "200")
	t.Setenv("PAYTRACK_HALF_DAY_RATE", "100.50")

	cfg := config.Load()

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/tmp/pay.db", cfg.DBPath)
	assert.Equal(t, "alice", cfg.UserID)
	assert.Equal(t, "200", cfg.Rates.FullDayRate.String())
	assert.Equal(t, "100.5", cfg.Rates.HalfDayRate.String())
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("PAYTRACK_PORT", "not-a-port")
	t.Setenv("PAYTRACK_FULL_DAY_RATE", "-10")

	cfg := config.Load()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "150", cfg.Rates.FullDayRate.String())
}
