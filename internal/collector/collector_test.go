package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"CoinSentinel/internal/cache"
	"CoinSentinel/internal/model"
	"CoinSentinel/internal/synth"
)

func TestSyntheticFetcher_FetchMarket(t *testing.T) {
	f := NewSyntheticFetcher(synth.NewRand(1))
	coins, err := f.FetchMarket(context.Background())
	require.NoError(t, err)
	require.Len(t, coins, len(listings))

	for i := 1; i < len(coins); i++ {
		assert.GreaterOrEqual(t, coins[i-1].MarketCap, coins[i].MarketCap)
	}

	btc, ok := model.FindCoin(coins, "bitcoin")
	require.True(t, ok)
	assert.InDelta(t, 63852.41, btc.CurrentPrice, 63852.41*priceJitter)
	assert.InDelta(t, 1.25, btc.PriceChangePct24h, changeJitter)
	assert.Equal(t, "bitcoin", coins[0].ID)

	// reference data is not mutated
	assert.Equal(t, 63852.41, listings[0].CurrentPrice)
}

func TestSyntheticFetcher_FetchHistory(t *testing.T) {
	f := NewSyntheticFetcher(synth.NewRand(1))
	series, err := f.FetchHistory(context.Background(), "ethereum", model.Horizon7d)
	require.NoError(t, err)
	assert.Len(t, series.Candles, 7*24)
	assert.Equal(t, "ethereum", series.CoinID)
}

func TestSyntheticFetcher_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewSyntheticFetcher(synth.NewRand(1)).FetchMarket(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateNews(t *testing.T) {
	items := GenerateNews("solana", synth.NewRand(3))
	require.Len(t, items, len(coinStories)+len(generalStories))

	specific := 0
	for _, n := range items {
		assert.Contains(t, newsSources, n.Source)
		assert.Contains(t, newsTimes, n.Time)
		assert.NotEmpty(t, n.Tags)
		if strings.Contains(n.Title, "Solana") {
			specific++
			assert.Equal(t, []string{"solana"}, n.RelatedCoins)
			assert.NotContains(t, n.Description, "%s")
		}
		seen := map[string]bool{}
		for _, c := range n.RelatedCoins {
			assert.False(t, seen[c], "duplicate related coin %s", c)
			seen[c] = true
		}
	}
	assert.Equal(t, 3, specific)

	// templates are not mutated between calls
	assert.Equal(t, []string{"bitcoin", "ethereum"}, generalStories[0].RelatedCoins)
}

func TestGenerateNews_RecentStoryTimes(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		for _, n := range GenerateNews("bitcoin", synth.NewRand(seed)) {
			if strings.HasPrefix(n.Title, "Bitcoin Price Analysis") {
				assert.Contains(t, newsTimes[:3], n.Time)
			}
		}
	}
}

type stubFetcher struct {
	coins   []model.Coin
	fail    atomic.Bool
	history atomic.Int32
}

func (s *stubFetcher) Name() string { return "stub" }

func (s *stubFetcher) FetchMarket(context.Context) ([]model.Coin, error) {
	if s.fail.Load() {
		return nil, errors.New("source down")
	}
	return s.coins, nil
}

func (s *stubFetcher) FetchHistory(_ context.Context, coinID string, h model.Horizon) (model.CandleSeries, error) {
	s.history.Add(1)
	if s.fail.Load() {
		return model.CandleSeries{}, errors.New("source down")
	}
	return model.CandleSeries{CoinID: coinID, HorizonDays: h.Days(), Candles: []model.Candle{{Timestamp: 1, Open: 1, High: 2, Low: 0.5, Close: 1.5}}}, nil
}

func (s *stubFetcher) FetchNews(context.Context, string) ([]model.NewsItem, error) {
	if s.fail.Load() {
		return nil, errors.New("source down")
	}
	return []model.NewsItem{{Title: "x"}}, nil
}

func TestCollector_DegradedSnapshot(t *testing.T) {
	f := &stubFetcher{coins: []model.Coin{{ID: "bitcoin", CurrentPrice: 63852.41}}}
	c := NewCollector(f, cache.NewMemoryCache(), zap.NewNop())
	ctx := context.Background()

	f.fail.Store(true)
	snap := c.Snapshot(ctx)
	assert.True(t, snap.Degraded)
	assert.NotNil(t, snap.Coins)
	assert.Empty(t, snap.Coins)

	f.fail.Store(false)
	snap = c.Snapshot(ctx)
	assert.False(t, snap.Degraded)
	assert.Equal(t, "stub", snap.Source)
	require.Len(t, snap.Coins, 1)

	f.fail.Store(true)
	snap = c.Snapshot(ctx)
	assert.True(t, snap.Degraded)
	require.Len(t, snap.Coins, 1)
	assert.Equal(t, 63852.41, snap.Coins[0].CurrentPrice)
}

func TestCollector_HistoryCached(t *testing.T) {
	f := &stubFetcher{}
	c := NewCollector(f, nil, nil)
	ctx := context.Background()

	a, err := c.History(ctx, "bitcoin", model.Horizon24h)
	require.NoError(t, err)
	b, err := c.History(ctx, "bitcoin", model.Horizon24h)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, int32(1), f.history.Load())

	_, err = c.History(ctx, "bitcoin", model.Horizon(3))
	assert.Error(t, err)

	f.fail.Store(true)
	series, err := c.History(ctx, "ethereum", model.Horizon7d)
	assert.Error(t, err)
	assert.Empty(t, series.Candles)

	items, err := c.News(ctx, "ethereum")
	assert.Error(t, err)
	assert.Empty(t, items)
}

func TestSearch(t *testing.T) {
	coins := []model.Coin{
		{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin"},
		{ID: "bitcoin-cash", Symbol: "bch", Name: "Bitcoin Cash"},
		{ID: "ethereum", Symbol: "eth", Name: "Ethereum"},
	}
	assert.Len(t, Search(coins, "BIT"), 2)
	assert.Len(t, Search(coins, "eth"), 1)
	assert.Len(t, Search(coins, ""), 3)
	assert.Empty(t, Search(coins, "doge"))
}

func TestCoinGeckoFetcher(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "demo-key", r.Header.Get("x-cg-demo-api-key"))
		switch r.URL.Path {
		case "/coins/markets":
			assert.Equal(t, "usd", r.URL.Query().Get("vs_currency"))
			if attempts.Add(1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			fmt.Fprint(w, `[
				{"id":"ethereum","symbol":"eth","name":"Ethereum","current_price":3078.92,"market_cap":369890123456,"total_volume":15678901234,"price_change_percentage_24h":0.83,"image":"e.png"},
				{"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":63852.41,"market_cap":1254678901234,"total_volume":32456789012,"price_change_percentage_24h":1.25,"image":"b.png"}
			]`)
		case "/coins/bitcoin/ohlc":
			assert.Equal(t, "7", r.URL.Query().Get("days"))
			fmt.Fprint(w, `[[1700003600000,2,3,1,2.5],[1700000000000,1,2,0.5,1.5]]`)
		case "/coins/unknown/ohlc":
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error":"coin not found"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	f := NewCoinGeckoFetcher(srv.URL, "demo-key", "", synth.NewRand(1), zap.NewNop())
	f.Retry = RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
	ctx := context.Background()

	coins, err := f.FetchMarket(ctx)
	require.NoError(t, err)
	require.Len(t, coins, 2)
	assert.Equal(t, "bitcoin", coins[0].ID)
	assert.Equal(t, 32456789012.0, coins[0].TotalVolume24h)
	assert.Equal(t, int32(2), attempts.Load())

	series, err := f.FetchHistory(ctx, "bitcoin", model.Horizon7d)
	require.NoError(t, err)
	require.Len(t, series.Candles, 2)
	assert.Equal(t, int64(1700000000000), series.Candles[0].Timestamp)
	assert.Equal(t, 2.5, series.Candles[1].Close)

	_, err = f.FetchHistory(ctx, "unknown", model.Horizon7d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")

	news, err := f.FetchNews(ctx, "bitcoin")
	require.NoError(t, err)
	assert.NotEmpty(t, news)
}

func TestCoinGeckoFetcher_ProviderBarSpacing(t *testing.T) {
	const fourHours = int64(4 * time.Hour / time.Millisecond)
	start := int64(1700000000000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "30", r.URL.Query().Get("days"))
		rows := make([][5]float64, 0, 180)
		for i := int64(0); i < 180; i++ {
			rows = append(rows, [5]float64{float64(start + i*fourHours), 1, 2, 0.5, 1.5})
		}
		assert.NoError(t, json.NewEncoder(w).Encode(rows))
	}))
	defer srv.Close()

	f := NewCoinGeckoFetcher(srv.URL, "", "", synth.NewRand(1), zap.NewNop())
	series, err := f.FetchHistory(context.Background(), "bitcoin", model.Horizon30d)
	require.NoError(t, err)

	// 4h bars over 30 days, passed through rather than padded to 720 hourly candles
	require.Len(t, series.Candles, 180)
	assert.Equal(t, 30, series.HorizonDays)
	assert.Equal(t, fourHours, series.Candles[1].Timestamp-series.Candles[0].Timestamp)
}
