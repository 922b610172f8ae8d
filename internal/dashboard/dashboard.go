package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"CoinSentinel/internal/alert"
	"CoinSentinel/internal/calculator"
	"CoinSentinel/internal/collector"
	"CoinSentinel/internal/diversification"
	"CoinSentinel/internal/insight"
	"CoinSentinel/internal/model"
	"CoinSentinel/internal/portfolio"
	"CoinSentinel/internal/synth"
)

var (
	// ErrSuperseded is returned by Select when a newer selection started
	// before this one finished. The result was not applied to the view.
	ErrSuperseded = errors.New("selection superseded")
	// ErrUnknownCoin is returned by Select for a coin missing from the
	// current snapshot.
	ErrUnknownCoin = errors.New("coin not in market snapshot")
)

// Selection identifies the coin and horizon on display.
type Selection struct {
	CoinID  string
	Horizon model.Horizon
}

// View is a copy of the dashboard state.
type View struct {
	Snapshot        collector.Snapshot
	Selection       Selection
	Detail          *model.CoinDetail
	Portfolio       model.PortfolioSummary
	Diversification model.DiversificationResult
	Alerts          []model.PriceAlert
	RefreshedAt     time.Time
}

// Session owns the display state. Refresh and Select may be called
// concurrently.
type Session struct {
	Collector  *collector.Collector
	Portfolio  *portfolio.Manager
	Dispatcher *alert.Dispatcher
	Scorer     *diversification.Scorer
	Rand       synth.Rand
	Logger     *zap.Logger
	Now        func() time.Time

	mu         sync.RWMutex
	generation uint64 // bumped by Select
	refreshGen uint64 // bumped by Refresh
	view       View
}

// NewSession creates a Session. dispatcher may be nil.
func NewSession(c *collector.Collector, pm *portfolio.Manager, dispatcher *alert.Dispatcher, r synth.Rand, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if r == nil {
		r = synth.DefaultRand()
	}
	return &Session{
		Collector:  c,
		Portfolio:  pm,
		Dispatcher: dispatcher,
		Scorer:     diversification.NewScorer(),
		Rand:       r,
		Logger:     logger.Named("dashboard"),
		Now:        time.Now,
	}
}

// Refresh pulls a new market snapshot, evaluates alerts against it and
// recomputes the portfolio panels. Alerts are not evaluated against a
// degraded snapshot since its prices are stale. The view is updated even
// when alert evaluation or delivery fails; that error is returned after.
// A refresh that finishes after a later one started leaves the view alone.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.refreshGen++
	gen := s.refreshGen
	s.mu.Unlock()

	snap := s.Collector.Snapshot(ctx)
	if s.refreshStale(gen) {
		s.Logger.Debug("discarding stale refresh", zap.Uint64("generation", gen))
		return nil
	}

	var alertErr error
	if !snap.Degraded {
		events, err := s.Portfolio.EvaluateAlerts(snap.Coins)
		if err != nil {
			alertErr = errors.Wrap(err, "evaluate alerts")
		}
		if len(events) > 0 && s.Dispatcher != nil {
			if err := s.Dispatcher.Dispatch(ctx, events); err != nil && alertErr == nil {
				alertErr = err
			}
		}
	}

	holdings := s.Portfolio.Holdings()
	summary := portfolio.Summarize(holdings, snap.Coins)
	div := s.Scorer.Score(holdings, snap.Coins)

	s.mu.Lock()
	if gen != s.refreshGen {
		s.mu.Unlock()
		s.Logger.Debug("discarding stale refresh", zap.Uint64("generation", gen))
		return alertErr
	}
	s.view.Snapshot = snap
	s.view.Portfolio = summary
	s.view.Diversification = div
	s.view.Alerts = s.Portfolio.Alerts()
	s.view.RefreshedAt = s.Now()
	s.mu.Unlock()

	s.Logger.Debug("refreshed",
		zap.Int("coins", len(snap.Coins)),
		zap.Bool("degraded", snap.Degraded),
		zap.Float64("portfolio_value", summary.PortfolioValue))
	return alertErr
}

func (s *Session) refreshStale(gen uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return gen != s.refreshGen
}

// Select loads the detail for coinID over horizon. Candles and news are
// fetched concurrently. If another Select starts meanwhile, the result is
// still returned but with ErrSuperseded, and the view keeps the newer one.
func (s *Session) Select(ctx context.Context, coinID string, horizon model.Horizon) (model.CoinDetail, error) {
	if !horizon.Valid() {
		return model.CoinDetail{}, errors.Errorf("unsupported horizon %d", horizon)
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	coins := s.view.Snapshot.Coins
	s.mu.Unlock()

	coin, ok := model.FindCoin(coins, coinID)
	if !ok {
		if len(coins) > 0 {
			return model.CoinDetail{}, errors.Wrap(ErrUnknownCoin, coinID)
		}
		coin = model.Coin{ID: coinID}
	}

	var (
		series model.CandleSeries
		news   []model.NewsItem
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		series, err = s.Collector.History(gctx, coinID, horizon)
		return err
	})
	g.Go(func() error {
		items, err := s.Collector.News(gctx, coinID)
		if err != nil {
			s.Logger.Warn("news unavailable", zap.String("coin", coinID), zap.Error(err))
			items = []model.NewsItem{}
		}
		news = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.CoinDetail{}, err
	}

	detail := s.buildDetail(coin, horizon, series, news)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.Logger.Debug("discarding stale selection", zap.String("coin", coinID), zap.Uint64("generation", gen))
		return detail, ErrSuperseded
	}
	s.view.Selection = Selection{CoinID: coinID, Horizon: horizon}
	s.view.Detail = &detail
	return detail, nil
}

func (s *Session) buildDetail(coin model.Coin, horizon model.Horizon, series model.CandleSeries, news []model.NewsItem) model.CoinDetail {
	points, metrics := calculator.AnalyzeVolume(coin.TotalVolume24h, series, s.Rand)
	rsi, err := calculator.CandleRSI(series.Candles, calculator.DefaultRSIPeriod)
	if err != nil {
		s.Logger.Warn("rsi failed", zap.String("coin", coin.ID), zap.Error(err))
	}
	return model.CoinDetail{
		Coin:      coin,
		Horizon:   horizon,
		Series:    series,
		Stats:     calculator.Stats(series),
		Volume:    points,
		Metrics:   metrics,
		RSI:       rsi,
		News:      news,
		Sentiment: insight.SimulateSentiment(coin.ID, s.Rand),
		Signal:    insight.TradingSignals(coin, s.Rand),
	}
}

// View returns a copy of the current state.
func (s *Session) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := s.view
	v.Snapshot.Coins = append([]model.Coin(nil), s.view.Snapshot.Coins...)
	v.Alerts = append([]model.PriceAlert(nil), s.view.Alerts...)
	if s.view.Detail != nil {
		d := *s.view.Detail
		v.Detail = &d
	}
	return v
}
