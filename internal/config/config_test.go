package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.FallbackModel)
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.ExtractModel)
	assert.InDelta(t, 2.0, cfg.Anthropic.RatePerSec, 1e-9)
	assert.Equal(t, 3, cfg.Anthropic.MaxRetries)
	assert.Equal(t, int64(10), cfg.Rules.PetCountMax)
	assert.InDelta(t, 1000.0, cfg.Rules.FeeCeiling, 1e-9)
	assert.Equal(t, 30, cfg.Scrape.TimeoutSecs)
	assert.NotEmpty(t, cfg.Scrape.UserAgent)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PETPOLICY_STORE_DRIVER", "sqlite")
	t.Setenv("PETPOLICY_LOG_LEVEL", "debug")
	t.Setenv("PETPOLICY_RULES_PET_COUNT_MAX", "5")
	t.Setenv("PETPOLICY_RULES_FEE_CEILING", "500")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, int64(5), cfg.Rules.PetCountMax)
	assert.InDelta(t, 500.0, cfg.Rules.FeeCeiling, 1e-9)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))

	err := InitLogger(LogConfig{Level: "not-a-level"})
	require.Error(t, err)
}
