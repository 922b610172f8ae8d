package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CoinSentinel/internal/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ProviderSynthetic, cfg.DataSource.Provider)
	assert.Equal(t, "@every 30s", cfg.Schedule.RefreshCron)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.False(t, cfg.TelegramEnabled())

	h, err := cfg.Horizon()
	require.NoError(t, err)
	assert.Equal(t, model.Horizon7d, h)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
telegram:
  bot_token: "file-token"
  chat_id: "42"
data_source:
  provider: CoinGecko
  default_coin: ethereum
  default_horizon: 30d
storage:
  driver: file
cache:
  redis_addr: localhost:6379
  ttl: 5m
seed: 7
`)
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "env-token", cfg.Telegram.BotToken)
	assert.Equal(t, "42", cfg.Telegram.ChatID)
	assert.True(t, cfg.TelegramEnabled())
	assert.Equal(t, ProviderCoinGecko, cfg.DataSource.Provider)
	assert.Equal(t, "ethereum", cfg.DataSource.DefaultCoin)
	assert.Equal(t, DriverFile, cfg.Storage.Driver)
	assert.Equal(t, 3, cfg.Cache.RedisDB)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, uint64(7), cfg.Seed)
}

func TestLoad_BadInput(t *testing.T) {
	_, err := Load(writeConfig(t, "telegram: [unclosed"))
	assert.Error(t, err)

	t.Setenv("SEED", "minus-one")
	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"half telegram", func(c *Config) { c.Telegram.BotToken = "x" }},
		{"provider", func(c *Config) { c.DataSource.Provider = "binance" }},
		{"horizon", func(c *Config) { c.DataSource.DefaultHorizon = "2w" }},
		{"driver", func(c *Config) { c.Storage.Driver = "postgres" }},
		{"ttl", func(c *Config) { c.Cache.TTL = -time.Second }},
		{"log level", func(c *Config) { c.Log.Level = "verbose" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
