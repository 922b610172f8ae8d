package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"CoinSentinel/internal/model"
)

// DefaultPath is used when CONFIG_PATH is unset.
const DefaultPath = "configs/config.yaml"

// Data source providers.
const (
	ProviderSynthetic = "synthetic"
	ProviderCoinGecko = "coingecko"
)

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
	DriverMemory = "memory"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		Provider       string `yaml:"provider"`
		BaseURL        string `yaml:"base_url"`
		APIKey         string `yaml:"api_key"`
		DefaultCoin    string `yaml:"default_coin"`
		DefaultHorizon string `yaml:"default_horizon"`
	} `yaml:"data_source"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Storage struct {
		Driver     string `yaml:"driver"`
		SQLitePath string `yaml:"sqlite_path"`
		StateDir   string `yaml:"state_dir"`
		JournalDir string `yaml:"journal_dir"`
	} `yaml:"storage"`
	Cache struct {
		RedisAddr     string        `yaml:"redis_addr"`
		RedisPassword string        `yaml:"redis_password"`
		RedisDB       int           `yaml:"redis_db"`
		TTL           time.Duration `yaml:"ttl"`
	} `yaml:"cache"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
	// Seed fixes the random source; 0 seeds from entropy.
	Seed uint64 `yaml:"seed"`
}

// Path returns the config file path from CONFIG_PATH or the default.
func Path() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return DefaultPath
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides and fills defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "read config")
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(err, "parse config")
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	envStr := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	envStr("TELEGRAM_BOT_TOKEN", &c.Telegram.BotToken)
	envStr("TELEGRAM_CHAT_ID", &c.Telegram.ChatID)
	envStr("DATA_PROVIDER", &c.DataSource.Provider)
	envStr("COINGECKO_BASE_URL", &c.DataSource.BaseURL)
	envStr("COINGECKO_API_KEY", &c.DataSource.APIKey)
	envStr("REFRESH_CRON", &c.Schedule.RefreshCron)
	envStr("STORAGE_DRIVER", &c.Storage.Driver)
	envStr("SQLITE_PATH", &c.Storage.SQLitePath)
	envStr("STATE_DIR", &c.Storage.StateDir)
	envStr("JOURNAL_DIR", &c.Storage.JournalDir)
	envStr("REDIS_ADDR", &c.Cache.RedisAddr)
	envStr("REDIS_PASSWORD", &c.Cache.RedisPassword)
	envStr("LOG_LEVEL", &c.Log.Level)
	envStr("HTTPS_PROXY", &c.Proxy)

	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "REDIS_DB")
		}
		c.Cache.RedisDB = n
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrap(err, "CACHE_TTL")
		}
		c.Cache.TTL = d
	}
	if v := os.Getenv("SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.Wrap(err, "SEED")
		}
		c.Seed = n
	}
	return nil
}

func (c *Config) applyDefaults() {
	c.DataSource.Provider = strings.ToLower(c.DataSource.Provider)
	c.Storage.Driver = strings.ToLower(c.Storage.Driver)

	if c.DataSource.Provider == "" {
		c.DataSource.Provider = ProviderSynthetic
	}
	if c.DataSource.BaseURL == "" {
		c.DataSource.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if c.DataSource.DefaultCoin == "" {
		c.DataSource.DefaultCoin = "bitcoin"
	}
	if c.DataSource.DefaultHorizon == "" {
		c.DataSource.DefaultHorizon = "7d"
	}
	if c.Schedule.RefreshCron == "" {
		c.Schedule.RefreshCron = "@every 30s"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverSQLite
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = "data/coin_sentinel.db"
	}
	if c.Storage.StateDir == "" {
		c.Storage.StateDir = "data/state"
	}
	if c.Storage.JournalDir == "" {
		c.Storage.JournalDir = "data/journal"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 30 * time.Minute
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Horizon parses the configured default horizon.
func (c *Config) Horizon() (model.Horizon, error) {
	return model.ParseHorizon(c.DataSource.DefaultHorizon)
}

// TelegramEnabled reports whether bot credentials are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return errors.New("telegram.bot_token and telegram.chat_id must be set together")
	}
	switch c.DataSource.Provider {
	case ProviderSynthetic, ProviderCoinGecko:
	default:
		return errors.Errorf("data_source.provider %q is not one of synthetic, coingecko", c.DataSource.Provider)
	}
	if _, err := c.Horizon(); err != nil {
		return errors.Wrap(err, "data_source.default_horizon")
	}
	switch c.Storage.Driver {
	case DriverSQLite, DriverFile, DriverMemory:
	default:
		return errors.Errorf("storage.driver %q is not one of sqlite, file, memory", c.Storage.Driver)
	}
	if c.Cache.TTL < 0 {
		return errors.New("cache.ttl must not be negative")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}
