package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"CoinSentinel/internal/cache"
	"CoinSentinel/internal/model"
)

const (
	snapshotKey = "market:snapshot"

	// DefaultSnapshotTTL bounds how stale a fallback snapshot may be.
	DefaultSnapshotTTL = 30 * time.Minute
	// DefaultHistoryTTL keeps a chart stable between refreshes.
	DefaultHistoryTTL = 5 * time.Minute
)

// Snapshot is one market refresh result.
type Snapshot struct {
	Coins     []model.Coin `json:"coins"`
	FetchedAt time.Time    `json:"fetched_at"`
	Source    string       `json:"source"`
	// Degraded is set when the source failed and Coins is the last good
	// snapshot (or empty when there is none).
	Degraded bool `json:"-"`
}

// Collector wraps a Fetcher with caching and degraded fallback.
type Collector struct {
	Fetcher     Fetcher
	Cache       cache.Cache
	SnapshotTTL time.Duration
	HistoryTTL  time.Duration
	Logger      *zap.Logger
	Now         func() time.Time
}

// NewCollector creates a new Collector. A nil cache falls back to memory.
func NewCollector(fetcher Fetcher, c cache.Cache, logger *zap.Logger) *Collector {
	if c == nil {
		c = cache.NewMemoryCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{
		Fetcher:     fetcher,
		Cache:       c,
		SnapshotTTL: DefaultSnapshotTTL,
		HistoryTTL:  DefaultHistoryTTL,
		Logger:      logger.Named("collector"),
		Now:         time.Now,
	}
}

// Snapshot fetches the market. Fetch failures never propagate: the last
// cached snapshot is returned with Degraded set.
func (c *Collector) Snapshot(ctx context.Context) Snapshot {
	coins, err := c.Fetcher.FetchMarket(ctx)
	if err == nil {
		snap := Snapshot{Coins: coins, FetchedAt: c.Now(), Source: c.Fetcher.Name()}
		if cerr := c.Cache.Set(ctx, snapshotKey, snap, c.SnapshotTTL); cerr != nil {
			c.Logger.Warn("cache snapshot failed", zap.Error(cerr))
		}
		return snap
	}

	c.Logger.Warn("market fetch failed, serving last snapshot",
		zap.String("source", c.Fetcher.Name()), zap.Error(err))

	var last Snapshot
	found, cerr := c.Cache.Get(ctx, snapshotKey, &last)
	if cerr != nil {
		c.Logger.Warn("read cached snapshot failed", zap.Error(cerr))
	}
	if !found || cerr != nil {
		return Snapshot{Coins: []model.Coin{}, FetchedAt: c.Now(), Source: c.Fetcher.Name(), Degraded: true}
	}
	last.Degraded = true
	return last
}

func historyKey(coinID string, horizon model.Horizon) string {
	return fmt.Sprintf("history:%s:%d", coinID, horizon.Days())
}

// History returns the candle series for a coin, served from the cache
// within HistoryTTL.
func (c *Collector) History(ctx context.Context, coinID string, horizon model.Horizon) (model.CandleSeries, error) {
	if !horizon.Valid() {
		return model.CandleSeries{}, errors.Errorf("unsupported horizon %d", horizon)
	}
	key := historyKey(coinID, horizon)

	var cached model.CandleSeries
	if ok, err := c.Cache.Get(ctx, key, &cached); err != nil {
		c.Logger.Warn("read cached history failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		return cached, nil
	}

	series, err := c.Fetcher.FetchHistory(ctx, coinID, horizon)
	if err != nil {
		return model.CandleSeries{CoinID: coinID, HorizonDays: horizon.Days()}, errors.Wrapf(err, "fetch history %s", coinID)
	}
	if err := c.Cache.Set(ctx, key, series, c.HistoryTTL); err != nil {
		c.Logger.Warn("cache history failed", zap.String("key", key), zap.Error(err))
	}
	return series, nil
}

// News returns the news feed for a coin.
func (c *Collector) News(ctx context.Context, coinID string) ([]model.NewsItem, error) {
	items, err := c.Fetcher.FetchNews(ctx, coinID)
	if err != nil {
		return []model.NewsItem{}, errors.Wrapf(err, "fetch news %s", coinID)
	}
	return items, nil
}

// Search filters coins whose name or symbol contains query, ignoring case.
// An empty query returns all coins.
func Search(coins []model.Coin, query string) []model.Coin {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return coins
	}
	var out []model.Coin
	for _, c := range coins {
		if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Symbol), q) {
			out = append(out, c)
		}
	}
	return out
}
