package portfolio

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"CoinSentinel/internal/alert"
	"CoinSentinel/internal/model"
	"CoinSentinel/internal/store"
)

// Validation errors.
var (
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidPrice     = errors.New("purchase price must not be negative")
	ErrInvalidTarget    = errors.New("target price must be positive")
	ErrInvalidCondition = errors.New("condition must be above or below")
	ErrUnknownCoin      = errors.New("unknown coin")
	ErrNotFound         = errors.New("not found")
)

// Manager owns the user's holdings and price alerts. Every mutation writes
// the whole affected list back to the store; the in-memory copy only
// changes once the write succeeds.
type Manager struct {
	mu       sync.Mutex
	store    store.StateStore
	holdings []model.Holding
	alerts   []model.PriceAlert
	logger   *zap.Logger

	now   func() time.Time
	newID func() string
}

// NewManager creates a Manager, loading existing state from s.
func NewManager(s store.StateStore, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	holdings, err := store.LoadHoldings(s)
	if err != nil {
		return nil, err
	}
	alerts, err := store.LoadAlerts(s)
	if err != nil {
		return nil, err
	}
	logger = logger.Named("portfolio")
	logger.Info("portfolio loaded", zap.Int("holdings", len(holdings)), zap.Int("alerts", len(alerts)))

	return &Manager{
		store:    s,
		holdings: holdings,
		alerts:   alerts,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}, nil
}

// resolveCoin checks coinID against the snapshot. A nil snapshot skips the
// check so holdings can be entered while the market is unavailable.
func resolveCoin(coinID string, coins []model.Coin) (model.Coin, error) {
	if coins == nil {
		return model.Coin{ID: coinID}, nil
	}
	c, ok := model.FindCoin(coins, coinID)
	if !ok {
		return model.Coin{}, errors.Wrap(ErrUnknownCoin, coinID)
	}
	return c, nil
}

// Holdings returns a copy of the holding list.
func (m *Manager) Holdings() []model.Holding {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Holding(nil), m.holdings...)
}

// AddHolding validates h, assigns it an ID and persists it.
func (m *Manager) AddHolding(h model.Holding, coins []model.Coin) (model.Holding, error) {
	h.CoinID = strings.TrimSpace(strings.ToLower(h.CoinID))
	if h.Amount <= 0 {
		return model.Holding{}, ErrInvalidAmount
	}
	if h.PurchasePrice < 0 {
		return model.Holding{}, ErrInvalidPrice
	}
	coin, err := resolveCoin(h.CoinID, coins)
	if err != nil {
		return model.Holding{}, err
	}
	if h.Symbol == "" {
		h.Symbol = coin.Symbol
	}
	if h.PurchaseDate.IsZero() {
		h.PurchaseDate = m.now()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	h.ID = m.newID()
	next := append(append([]model.Holding(nil), m.holdings...), h)
	if err := store.SaveHoldings(m.store, next); err != nil {
		return model.Holding{}, err
	}
	m.holdings = next
	m.logger.Info("holding added", zap.String("id", h.ID), zap.String("coin", h.CoinID), zap.Float64("amount", h.Amount))
	return h, nil
}

// DeleteHolding removes the holding with the given id.
func (m *Manager) DeleteHolding(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := make([]model.Holding, 0, len(m.holdings))
	for _, h := range m.holdings {
		if h.ID != id {
			next = append(next, h)
		}
	}
	if len(next) == len(m.holdings) {
		return errors.Wrapf(ErrNotFound, "holding %s", id)
	}
	if err := store.SaveHoldings(m.store, next); err != nil {
		return err
	}
	m.holdings = next
	m.logger.Info("holding removed", zap.String("id", id))
	return nil
}

// Alerts returns a copy of the alert list.
func (m *Manager) Alerts() []model.PriceAlert {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.PriceAlert(nil), m.alerts...)
}

// AddAlert validates a, arms it and persists it.
func (m *Manager) AddAlert(a model.PriceAlert, coins []model.Coin) (model.PriceAlert, error) {
	a.CoinID = strings.TrimSpace(strings.ToLower(a.CoinID))
	if !a.Condition.Valid() {
		return model.PriceAlert{}, ErrInvalidCondition
	}
	if a.TargetPrice <= 0 {
		return model.PriceAlert{}, ErrInvalidTarget
	}
	coin, err := resolveCoin(a.CoinID, coins)
	if err != nil {
		return model.PriceAlert{}, err
	}
	if a.Symbol == "" {
		a.Symbol = coin.Symbol
	}
	a = alert.Reset(a)
	a.CreatedAt = m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	a.ID = m.newID()
	next := append(append([]model.PriceAlert(nil), m.alerts...), a)
	if err := store.SaveAlerts(m.store, next); err != nil {
		return model.PriceAlert{}, err
	}
	m.alerts = next
	m.logger.Info("alert added",
		zap.String("id", a.ID),
		zap.String("coin", a.CoinID),
		zap.String("condition", string(a.Condition)),
		zap.Float64("target", a.TargetPrice))
	return a, nil
}

// DeleteAlert removes the alert with the given id.
func (m *Manager) DeleteAlert(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := make([]model.PriceAlert, 0, len(m.alerts))
	for _, a := range m.alerts {
		if a.ID != id {
			next = append(next, a)
		}
	}
	if len(next) == len(m.alerts) {
		return errors.Wrapf(ErrNotFound, "alert %s", id)
	}
	if err := store.SaveAlerts(m.store, next); err != nil {
		return err
	}
	m.alerts = next
	m.logger.Info("alert removed", zap.String("id", id))
	return nil
}

// ResetAlert re-arms a triggered alert.
func (m *Manager) ResetAlert(id string) (model.PriceAlert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := append([]model.PriceAlert(nil), m.alerts...)
	idx := -1
	for i, a := range next {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.PriceAlert{}, errors.Wrapf(ErrNotFound, "alert %s", id)
	}
	next[idx] = alert.Reset(next[idx])
	if err := store.SaveAlerts(m.store, next); err != nil {
		return model.PriceAlert{}, err
	}
	m.alerts = next
	m.logger.Info("alert re-armed", zap.String("id", id))
	return next[idx], nil
}

// EvaluateAlerts applies a market snapshot to every alert and returns the
// newly fired events. The list is only written back when something fired.
func (m *Manager) EvaluateAlerts(coins []model.Coin) ([]model.AlertEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, events := alert.EvaluateAll(m.alerts, coins, m.now())
	if len(events) == 0 {
		return nil, nil
	}
	if err := store.SaveAlerts(m.store, next); err != nil {
		return nil, err
	}
	m.alerts = next
	return events, nil
}
