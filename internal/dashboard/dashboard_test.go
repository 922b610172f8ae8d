package dashboard

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CoinSentinel/internal/alert"
	"CoinSentinel/internal/collector"
	"CoinSentinel/internal/model"
	"CoinSentinel/internal/portfolio"
	"CoinSentinel/internal/store"
	"CoinSentinel/internal/synth"
)

// gatedFetcher serves a fixed market and blocks history calls for coins
// that have a gate until it is closed. marketGate holds back the next
// market fetch only, with the prices as they were when it was called.
type gatedFetcher struct {
	*collector.SyntheticFetcher

	mu            sync.Mutex
	coins         []model.Coin
	gates         map[string]chan struct{}
	started       chan string
	marketGate    chan struct{}
	marketStarted chan struct{}
	down          bool
}

func (f *gatedFetcher) FetchMarket(context.Context) ([]model.Coin, error) {
	f.mu.Lock()
	if f.down {
		f.mu.Unlock()
		return nil, errors.New("market down")
	}
	coins := append([]model.Coin(nil), f.coins...)
	gate := f.marketGate
	f.marketGate = nil
	f.mu.Unlock()

	if gate != nil {
		f.marketStarted <- struct{}{}
		<-gate
	}
	return coins, nil
}

func (f *gatedFetcher) FetchHistory(ctx context.Context, coinID string, h model.Horizon) (model.CandleSeries, error) {
	f.mu.Lock()
	gate := f.gates[coinID]
	f.mu.Unlock()
	if f.started != nil {
		f.started <- coinID
	}
	if gate != nil {
		<-gate
	}
	return f.SyntheticFetcher.FetchHistory(ctx, coinID, h)
}

func (f *gatedFetcher) setPrice(coinID string, price float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.coins {
		if f.coins[i].ID == coinID {
			f.coins[i].CurrentPrice = price
		}
	}
}

type recordingNotifier struct {
	mu    sync.Mutex
	texts []string
}

func (r *recordingNotifier) Notify(_ context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, text)
	return nil
}

func newSession(t *testing.T, f *gatedFetcher) (*Session, *portfolio.Manager, *recordingNotifier) {
	t.Helper()
	pm, err := portfolio.NewManager(store.NewMemoryStore(), nil)
	require.NoError(t, err)
	n := &recordingNotifier{}
	s := NewSession(collector.NewCollector(f, nil, nil), pm, alert.NewDispatcher(n, nil, nil), synth.NewRand(1), nil)
	return s, pm, n
}

func newFetcher() *gatedFetcher {
	return &gatedFetcher{
		SyntheticFetcher: collector.NewSyntheticFetcher(synth.NewRand(9)),
		coins: []model.Coin{
			{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin", CurrentPrice: 63852.41, TotalVolume24h: 32456789012, PriceChangePct24h: 1.25},
			{ID: "ethereum", Symbol: "eth", Name: "Ethereum", CurrentPrice: 3078.92, TotalVolume24h: 15678901234, PriceChangePct24h: 0.83},
		},
		gates: map[string]chan struct{}{},
	}
}

func TestRefresh_PortfolioAndAlerts(t *testing.T) {
	f := newFetcher()
	s, pm, n := newSession(t, f)
	ctx := context.Background()

	require.NoError(t, s.Refresh(ctx))
	coins := s.View().Snapshot.Coins
	_, err := pm.AddHolding(model.Holding{CoinID: "bitcoin", Amount: 1, PurchasePrice: 50000}, coins)
	require.NoError(t, err)
	_, err = pm.AddAlert(model.PriceAlert{CoinID: "bitcoin", Condition: model.ConditionAbove, TargetPrice: 100000}, coins)
	require.NoError(t, err)

	require.NoError(t, s.Refresh(ctx))
	v := s.View()
	assert.InDelta(t, 63852.41, v.Portfolio.PortfolioValue, 1e-9)
	assert.InDelta(t, 13852.41, v.Portfolio.TotalProfit, 1e-9)
	assert.InDelta(t, 45.0, v.Diversification.DiversificationScore, 1e-9)
	assert.Empty(t, n.texts)

	f.setPrice("bitcoin", 105000)
	require.NoError(t, s.Refresh(ctx))
	require.Len(t, n.texts, 1)
	assert.Contains(t, n.texts[0], "Bitcoin is now above $100,000")
	assert.True(t, s.View().Alerts[0].Triggered)

	f.setPrice("bitcoin", 110000)
	require.NoError(t, s.Refresh(ctx))
	assert.Len(t, n.texts, 1)
}

func TestRefresh_DegradedSkipsAlerts(t *testing.T) {
	f := newFetcher()
	s, pm, n := newSession(t, f)
	ctx := context.Background()

	require.NoError(t, s.Refresh(ctx))
	_, err := pm.AddAlert(model.PriceAlert{CoinID: "bitcoin", Condition: model.ConditionBelow, TargetPrice: 70000}, nil)
	require.NoError(t, err)

	f.mu.Lock()
	f.down = true
	f.mu.Unlock()
	require.NoError(t, s.Refresh(ctx))

	v := s.View()
	assert.True(t, v.Snapshot.Degraded)
	assert.Len(t, v.Snapshot.Coins, 2)
	assert.Empty(t, n.texts)
	assert.False(t, v.Alerts[0].Triggered)
}

func TestRefresh_StaleSnapshotDiscarded(t *testing.T) {
	f := newFetcher()
	s, pm, n := newSession(t, f)
	ctx := context.Background()
	require.NoError(t, s.Refresh(ctx))
	_, err := pm.AddAlert(model.PriceAlert{CoinID: "bitcoin", Condition: model.ConditionBelow, TargetPrice: 150}, nil)
	require.NoError(t, err)

	f.setPrice("bitcoin", 100)
	f.mu.Lock()
	gate := make(chan struct{})
	f.marketGate = gate
	f.marketStarted = make(chan struct{}, 1)
	f.mu.Unlock()

	slow := make(chan error, 1)
	go func() { slow <- s.Refresh(ctx) }()
	<-f.marketStarted

	f.setPrice("bitcoin", 200)
	require.NoError(t, s.Refresh(ctx))
	btc, ok := model.FindCoin(s.View().Snapshot.Coins, "bitcoin")
	require.True(t, ok)
	assert.Equal(t, 200.0, btc.CurrentPrice)

	close(gate)
	require.NoError(t, <-slow)

	v := s.View()
	btc, ok = model.FindCoin(v.Snapshot.Coins, "bitcoin")
	require.True(t, ok)
	assert.Equal(t, 200.0, btc.CurrentPrice)
	// the older prices never reach the alerts either
	assert.False(t, v.Alerts[0].Triggered)
	assert.Empty(t, n.texts)
}

// flakyStore fails writes while fail is set.
type flakyStore struct {
	*store.MemoryStore
	fail atomic.Bool
}

func (f *flakyStore) Save(key string, value []byte) error {
	if f.fail.Load() {
		return errors.New("disk full")
	}
	return f.MemoryStore.Save(key, value)
}

func TestRefresh_AlertSaveFailureStillUpdatesView(t *testing.T) {
	f := newFetcher()
	st := &flakyStore{MemoryStore: store.NewMemoryStore()}
	pm, err := portfolio.NewManager(st, nil)
	require.NoError(t, err)
	n := &recordingNotifier{}
	s := NewSession(collector.NewCollector(f, nil, nil), pm, alert.NewDispatcher(n, nil, nil), synth.NewRand(1), nil)
	ctx := context.Background()

	require.NoError(t, s.Refresh(ctx))
	_, err = pm.AddAlert(model.PriceAlert{CoinID: "bitcoin", Condition: model.ConditionAbove, TargetPrice: 100000}, nil)
	require.NoError(t, err)
	before := s.View().RefreshedAt

	f.setPrice("bitcoin", 105000)
	st.fail.Store(true)
	err = s.Refresh(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "evaluate alerts")

	v := s.View()
	btc, ok := model.FindCoin(v.Snapshot.Coins, "bitcoin")
	require.True(t, ok)
	assert.Equal(t, 105000.0, btc.CurrentPrice)
	assert.False(t, v.RefreshedAt.Before(before))
	assert.False(t, v.Alerts[0].Triggered)
	assert.Empty(t, n.texts)

	// fires once the store recovers
	st.fail.Store(false)
	require.NoError(t, s.Refresh(ctx))
	assert.True(t, s.View().Alerts[0].Triggered)
	assert.Len(t, n.texts, 1)
}

func TestSelect(t *testing.T) {
	s, _, _ := newSession(t, newFetcher())
	ctx := context.Background()
	require.NoError(t, s.Refresh(ctx))

	d, err := s.Select(ctx, "bitcoin", model.Horizon24h)
	require.NoError(t, err)
	assert.Len(t, d.Series.Candles, 24)
	assert.Len(t, d.Volume, 24)
	assert.NotEmpty(t, d.News)
	assert.Len(t, d.Signal.Indicators, 4)
	assert.Equal(t, 100, d.Sentiment.Positive+d.Sentiment.Neutral+d.Sentiment.Negative)
	assert.LessOrEqual(t, d.Stats.Low, d.Stats.High)

	v := s.View()
	assert.Equal(t, Selection{CoinID: "bitcoin", Horizon: model.Horizon24h}, v.Selection)
	require.NotNil(t, v.Detail)
	assert.Equal(t, "bitcoin", v.Detail.Coin.ID)

	_, err = s.Select(ctx, "doge", model.Horizon24h)
	assert.ErrorIs(t, err, ErrUnknownCoin)
	_, err = s.Select(ctx, "bitcoin", model.Horizon(2))
	assert.Error(t, err)
	assert.Equal(t, "bitcoin", s.View().Selection.CoinID)
}

func TestSelect_StaleResponseDiscarded(t *testing.T) {
	f := newFetcher()
	gate := make(chan struct{})
	f.gates["bitcoin"] = gate
	f.started = make(chan string, 4)
	s, _, _ := newSession(t, f)
	ctx := context.Background()
	require.NoError(t, s.Refresh(ctx))

	type result struct {
		d   model.CoinDetail
		err error
	}
	slow := make(chan result, 1)
	go func() {
		d, err := s.Select(ctx, "bitcoin", model.Horizon7d)
		slow <- result{d, err}
	}()
	require.Equal(t, "bitcoin", <-f.started)

	_, err := s.Select(ctx, "ethereum", model.Horizon7d)
	require.NoError(t, err)
	require.Equal(t, "ethereum", <-f.started)

	close(gate)
	r := <-slow
	assert.ErrorIs(t, r.err, ErrSuperseded)
	assert.Equal(t, "bitcoin", r.d.Coin.ID)

	v := s.View()
	assert.Equal(t, "ethereum", v.Selection.CoinID)
	assert.Equal(t, "ethereum", v.Detail.Coin.ID)
}
