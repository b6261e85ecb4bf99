package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 300*time.Second, cfg.SessionTimeout)
	assert.Equal(t, 2500*time.Millisecond, cfg.LoanDelay)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.Equal(t, 40, cfg.RateLimitBurst)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("BANKIST_SERVER_PORT", "0")
	t.Setenv("BANKIST_SESSION_TIMEOUT", "90s")
	t.Setenv("BANKIST_LOAN_DELAY", "0s")
	t.Setenv("BANKIST_LOG_LEVEL", "debug")
	t.Setenv("BANKIST_RATE_LIMIT_RPS", "2.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0", cfg.ServerPort)
	assert.Equal(t, 90*time.Second, cfg.SessionTimeout)
	assert.Zero(t, cfg.LoanDelay)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.InDelta(t, 2.5, cfg.RateLimitRPS, 0.0001)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("BANKIST_LOG_FORMAT", "xml")
	t.Setenv("BANKIST_RATE_LIMIT_BURST", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BANKIST_LOG_FORMAT")
	assert.Contains(t, err.Error(), "BANKIST_RATE_LIMIT_BURST")
}

func TestToEnvKey(t *testing.T) {
	assert.Equal(t, "SERVER_PORT", toEnvKey("ServerPort"))
	assert.Equal(t, "RATE_LIMIT_RPS", toEnvKey("RateLimitRPS"))
	assert.Equal(t, "LOAN_DELAY", toEnvKey("LoanDelay"))
}
