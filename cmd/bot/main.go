package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"CoinSentinel/internal/alert"
	"CoinSentinel/internal/cache"
	"CoinSentinel/internal/collector"
	"CoinSentinel/internal/config"
	"CoinSentinel/internal/dashboard"
	"CoinSentinel/internal/journal"
	"CoinSentinel/internal/notifier"
	"CoinSentinel/internal/portfolio"
	"CoinSentinel/internal/scheduler"
	"CoinSentinel/internal/store"
	"CoinSentinel/internal/synth"
)

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func openStore(cfg *config.Config, logger *zap.Logger) (store.StateStore, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		logger.Warn("storage driver is memory, state will not survive a restart")
		return store.NewMemoryStore(), nil
	case config.DriverFile:
		return store.NewFileStore(cfg.Storage.StateDir)
	default:
		return store.NewSQLiteStore(cfg.Storage.SQLitePath, logger.Named("store"))
	}
}

func main() {
	cfg, err := config.Load(config.Path())
	if err != nil {
		panic(err)
	}
	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := cfg.Validate(); err != nil {
		logger.Fatal("config validation", zap.Error(err))
	}
	logger.Info("CoinSentinel starting...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rng := synth.DefaultRand()
	if cfg.Seed != 0 {
		rng = synth.NewRand(cfg.Seed)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	switch cfg.DataSource.Provider {
	case config.ProviderCoinGecko:
		fetcher = collector.NewCoinGeckoFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy, rng, logger)
	default:
		fetcher = collector.NewSyntheticFetcher(rng)
	}
	logger.Info("data source", zap.String("provider", fetcher.Name()))

	// Snapshot cache: Redis when configured, memory otherwise
	var snapshotCache cache.Cache = cache.NewMemoryCache()
	if cfg.Cache.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err != nil {
			logger.Warn("redis unavailable, using memory cache", zap.Error(err))
		} else {
			snapshotCache = rc
		}
	}
	defer snapshotCache.Close()

	col := collector.NewCollector(fetcher, snapshotCache, logger)
	col.SnapshotTTL = cfg.Cache.TTL

	st, err := openStore(cfg, logger)
	if err != nil {
		logger.Fatal("open state store", zap.Error(err))
	}
	defer st.Close()

	pm, err := portfolio.NewManager(st, logger)
	if err != nil {
		logger.Fatal("load portfolio", zap.Error(err))
	}

	events, err := journal.Open(cfg.Storage.JournalDir)
	if err != nil {
		logger.Fatal("open alert journal", zap.Error(err))
	}
	defer events.Close()

	// Init notifier
	var (
		n  notifier.Notifier
		tn *notifier.TelegramNotifier
	)
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, logger)
		n = tn
	} else {
		logger.Warn("telegram not configured, alerts go to the log")
		n = notifier.NewLogNotifier(logger)
	}

	session := dashboard.NewSession(col, pm, alert.NewDispatcher(n, events, logger.Named("alert")), rng, logger)

	sched := scheduler.NewScheduler(ctx, session, pm, events, logger)
	sched.DefaultCoin = cfg.DataSource.DefaultCoin
	sched.DefaultHorizon, _ = cfg.Horizon()
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron); err != nil {
		logger.Fatal("register cron tasks", zap.Error(err))
	}

	sched.RunRefreshNow()
	if _, err := session.Select(ctx, sched.DefaultCoin, sched.DefaultHorizon); err != nil {
		logger.Warn("initial selection failed", zap.String("coin", sched.DefaultCoin), zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		logger.Info("telegram polling started")
	}

	logger.Info("CoinSentinel is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutdown signal received, stopping...")
	cancel()
}
