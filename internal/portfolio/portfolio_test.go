package portfolio

import (
	"fmt"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CoinSentinel/internal/model"
	"CoinSentinel/internal/store"
)

var testCoins = []model.Coin{
	{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin", CurrentPrice: 63852.41},
	{ID: "ethereum", Symbol: "eth", Name: "Ethereum", CurrentPrice: 3078.92},
}

func newTestManager(t *testing.T, s store.StateStore) *Manager {
	t.Helper()
	m, err := NewManager(s, nil)
	require.NoError(t, err)
	n := 0
	m.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	m.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return m
}

// failingStore refuses every write.
type failingStore struct{ *store.MemoryStore }

func (failingStore) Save(string, []byte) error { return errors.New("disk full") }

func TestSummarize(t *testing.T) {
	holdings := []model.Holding{{ID: "h1", CoinID: "bitcoin", Amount: 1, PurchasePrice: 50000}}
	s := Summarize(holdings, testCoins)

	assert.InDelta(t, 63852.41, s.PortfolioValue, 1e-9)
	assert.InDelta(t, 50000.0, s.InitialInvestment, 1e-9)
	assert.InDelta(t, 13852.41, s.TotalProfit, 1e-9)
	assert.InDelta(t, 27.70482, s.ProfitPercentage, 1e-5)
	require.Len(t, s.Positions, 1)
	assert.InDelta(t, 27.70482, s.Positions[0].ProfitPct, 1e-5)
}

func TestSummarize_EdgeCases(t *testing.T) {
	tests := []struct {
		name      string
		holdings  []model.Holding
		value     float64
		profitPct float64
		positions int
	}{
		{"empty", nil, 0, 0, 0},
		{"unknown coin skipped", []model.Holding{{CoinID: "doge", Amount: 5, PurchasePrice: 1}}, 0, 0, 0},
		{"free coins", []model.Holding{{CoinID: "ethereum", Amount: 2, PurchasePrice: 0}}, 6157.84, 0, 1},
		{
			"many small positions",
			[]model.Holding{
				{CoinID: "ethereum", Amount: 0.1, PurchasePrice: 3000},
				{CoinID: "ethereum", Amount: 0.2, PurchasePrice: 3000},
			},
			923.676, 2.630666, 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.holdings, testCoins)
			assert.InDelta(t, tt.value, s.PortfolioValue, 1e-9)
			assert.InDelta(t, tt.profitPct, s.ProfitPercentage, 1e-5)
			assert.Len(t, s.Positions, tt.positions)
			assert.NotNil(t, s.Positions)
		})
	}
}

func TestManager_Holdings(t *testing.T) {
	s := store.NewMemoryStore()
	m := newTestManager(t, s)

	h, err := m.AddHolding(model.Holding{CoinID: " Bitcoin ", Amount: 1, PurchasePrice: 50000}, testCoins)
	require.NoError(t, err)
	assert.Equal(t, "id-1", h.ID)
	assert.Equal(t, "bitcoin", h.CoinID)
	assert.Equal(t, "btc", h.Symbol)
	assert.False(t, h.PurchaseDate.IsZero())

	// persisted and reloadable
	reloaded := newTestManager(t, s)
	require.Len(t, reloaded.Holdings(), 1)
	assert.Equal(t, h, reloaded.Holdings()[0])

	require.NoError(t, m.DeleteHolding("id-1"))
	assert.Empty(t, m.Holdings())
	assert.ErrorIs(t, m.DeleteHolding("id-1"), ErrNotFound)

	stored, err := store.LoadHoldings(s)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestManager_HoldingValidation(t *testing.T) {
	m := newTestManager(t, store.NewMemoryStore())
	tests := []struct {
		name string
		h    model.Holding
		err  error
	}{
		{"zero amount", model.Holding{CoinID: "bitcoin", Amount: 0}, ErrInvalidAmount},
		{"negative price", model.Holding{CoinID: "bitcoin", Amount: 1, PurchasePrice: -1}, ErrInvalidPrice},
		{"unknown coin", model.Holding{CoinID: "doge", Amount: 1}, ErrUnknownCoin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.AddHolding(tt.h, testCoins)
			assert.ErrorIs(t, err, tt.err)
		})
	}
	assert.Empty(t, m.Holdings())

	// no snapshot: coin is not checked
	_, err := m.AddHolding(model.Holding{CoinID: "doge", Amount: 1}, nil)
	assert.NoError(t, err)
}

func TestManager_SaveFailureKeepsState(t *testing.T) {
	m := newTestManager(t, failingStore{store.NewMemoryStore()})
	_, err := m.AddHolding(model.Holding{CoinID: "bitcoin", Amount: 1}, testCoins)
	require.Error(t, err)
	assert.Empty(t, m.Holdings())

	_, err = m.AddAlert(model.PriceAlert{CoinID: "bitcoin", Condition: model.ConditionAbove, TargetPrice: 1}, testCoins)
	require.Error(t, err)
	assert.Empty(t, m.Alerts())
}

func TestManager_AlertLifecycle(t *testing.T) {
	s := store.NewMemoryStore()
	m := newTestManager(t, s)

	_, err := m.AddAlert(model.PriceAlert{CoinID: "bitcoin", Condition: "sideways", TargetPrice: 1}, testCoins)
	assert.ErrorIs(t, err, ErrInvalidCondition)
	_, err = m.AddAlert(model.PriceAlert{CoinID: "bitcoin", Condition: model.ConditionAbove}, testCoins)
	assert.ErrorIs(t, err, ErrInvalidTarget)

	a, err := m.AddAlert(model.PriceAlert{CoinID: "bitcoin", Condition: model.ConditionAbove, TargetPrice: 100000, Triggered: true}, testCoins)
	require.NoError(t, err)
	assert.False(t, a.Triggered)

	price := func(p float64) []model.Coin {
		return []model.Coin{{ID: "bitcoin", Name: "Bitcoin", CurrentPrice: p}}
	}

	events, err := m.EvaluateAlerts(price(90000))
	require.NoError(t, err)
	assert.Empty(t, events)

	events, err = m.EvaluateAlerts(price(105000))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, a.ID, events[0].AlertID)
	assert.Equal(t, 105000.0, events[0].Price)

	// latched: no refire on the way down or back up
	for _, p := range []float64{95000, 110000} {
		events, err = m.EvaluateAlerts(price(p))
		require.NoError(t, err)
		assert.Empty(t, events)
	}

	stored, err := store.LoadAlerts(s)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.True(t, stored[0].Triggered)
	require.NotNil(t, stored[0].TriggeredAt)

	rearmed, err := m.ResetAlert(a.ID)
	require.NoError(t, err)
	assert.False(t, rearmed.Triggered)
	assert.Nil(t, rearmed.TriggeredAt)

	events, err = m.EvaluateAlerts(price(110000))
	require.NoError(t, err)
	assert.Len(t, events, 1)

	_, err = m.ResetAlert("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, m.DeleteAlert(a.ID))
	assert.ErrorIs(t, m.DeleteAlert(a.ID), ErrNotFound)
	assert.Empty(t, m.Alerts())
}
