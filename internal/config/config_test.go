package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.toml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "supportchat", cfg.App.Name)
	assert.Equal(t, 60, cfg.RateLimit.WindowSeconds)
	assert.Equal(t, 30, cfg.RateLimit.MaxRequests)
	assert.Equal(t, 1000, cfg.LLM.MaxOutputTokens)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 0.001)
	assert.Equal(t, 50, cfg.Chat.HistoryLimit)
	assert.Equal(t, 3, cfg.Chat.FallbackMaxWords)
	assert.False(t, cfg.IsProduction())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.toml")
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "8081")
	t.Setenv("LLM_API_KEY", "env-key")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 8081, cfg.App.Port)
	assert.Equal(t, "env-key", cfg.LLM.APIKey)
	assert.Equal(t, 10, cfg.RateLimit.MaxRequests)
	assert.Equal(t, "0.0.0.0:8081", cfg.HTTPAddr())
}

func TestEnvOverrideBadIntFallsBack(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.toml")
	t.Setenv("PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.App.Port)
}

func TestMySQLDSN(t *testing.T) {
	cfg := defaultConfig()
	cfg.MySQL.User = "chat"
	cfg.MySQL.Password = "pw"
	cfg.MySQL.Host = "db"
	cfg.MySQL.Port = 3307
	cfg.MySQL.DB = "chatdb"
	cfg.MySQL.Params = "parseTime=true"

	assert.Equal(t, "chat:pw@tcp(db:3307)/chatdb?parseTime=true", cfg.MySQLDSN())
}
