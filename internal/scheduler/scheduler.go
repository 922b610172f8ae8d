package scheduler

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"CoinSentinel/internal/collector"
	"CoinSentinel/internal/dashboard"
	"CoinSentinel/internal/model"
	"CoinSentinel/internal/notifier"
	"CoinSentinel/internal/portfolio"
)

const (
	// DefaultRefreshSpec matches the dashboard's 30 second refresh.
	DefaultRefreshSpec = "@every 30s"

	marketListLimit = 10
	newsLimit       = 5
	recentAlerts    = 5
)

// EventLog lists recently fired alerts.
type EventLog interface {
	Recent(n int) ([]model.AlertEventRecord, error)
}

// Scheduler drives periodic refreshes and answers bot commands.
type Scheduler struct {
	Cron      *cron.Cron
	Session   *dashboard.Session
	Portfolio *portfolio.Manager
	Events    EventLog
	Logger    *zap.Logger
	Ctx       context.Context

	// DefaultCoin and DefaultHorizon apply when /coin omits them.
	DefaultCoin    string
	DefaultHorizon model.Horizon
}

// NewScheduler creates a new Scheduler. events may be nil.
func NewScheduler(ctx context.Context, session *dashboard.Session, pm *portfolio.Manager, events EventLog, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("scheduler")
	cl := cronLogger{logger.Sugar()}
	return &Scheduler{
		// a tick that lands while the previous refresh is still fetching is dropped
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		Session:        session,
		Portfolio:      pm,
		Events:         events,
		Logger:         logger,
		Ctx:            ctx,
		DefaultCoin:    "bitcoin",
		DefaultHorizon: model.Horizon7d,
	}
}

// cronLogger routes cron's own logging through zap.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}

// RegisterAll registers the market refresh task.
func (s *Scheduler) RegisterAll(refreshSpec string) error {
	if refreshSpec == "" {
		refreshSpec = DefaultRefreshSpec
	}
	if _, err := s.Cron.AddFunc(refreshSpec, s.refreshTask); err != nil {
		return errors.Wrapf(err, "register refresh task %q", refreshSpec)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info("scheduler started")
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Logger.Info("scheduler stopped")
}

// RunRefreshNow executes a refresh immediately (startup).
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	if err := s.Session.Refresh(s.Ctx); err != nil {
		s.Logger.Error("refresh failed", zap.Error(err))
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	// "/market@MyBot" in group chats
	name, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")
	args := fields[1:]

	switch name {
	case "/market", "/start":
		v := s.Session.View()
		return notifier.FormatMarket(v.Snapshot.Coins, v.Snapshot.Degraded, marketListLimit)
	case "/search":
		v := s.Session.View()
		return notifier.FormatMarket(collector.Search(v.Snapshot.Coins, strings.Join(args, " ")), v.Snapshot.Degraded, marketListLimit)
	case "/coin":
		return s.coinCommand(ctx, args)
	case "/portfolio":
		v := s.Session.View()
		return notifier.FormatPortfolio(portfolio.Summarize(s.Portfolio.Holdings(), v.Snapshot.Coins))
	case "/add":
		return s.addCommand(args)
	case "/remove":
		if len(args) != 1 {
			return "Usage: /remove &lt;id&gt;"
		}
		if err := s.Portfolio.DeleteHolding(args[0]); err != nil {
			return replyError(err)
		}
		return "✅ Holding removed."
	case "/diversification":
		v := s.Session.View()
		return notifier.FormatDiversification(s.Session.Scorer.Score(s.Portfolio.Holdings(), v.Snapshot.Coins))
	case "/alerts":
		return notifier.FormatAlerts(s.Portfolio.Alerts(), s.recentEvents())
	case "/alert":
		return s.alertCommand(args)
	case "/unalert":
		if len(args) != 1 {
			return "Usage: /unalert &lt;id&gt;"
		}
		if err := s.Portfolio.DeleteAlert(args[0]); err != nil {
			return replyError(err)
		}
		return "✅ Alert removed."
	case "/rearm":
		if len(args) != 1 {
			return "Usage: /rearm &lt;id&gt;"
		}
		a, err := s.Portfolio.ResetAlert(args[0])
		if err != nil {
			return replyError(err)
		}
		return fmt.Sprintf("✅ Alert re-armed: %s %s $%s", strings.ToUpper(a.Symbol), a.Condition, notifier.GroupThousands(a.TargetPrice, 3))
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) coinCommand(ctx context.Context, args []string) string {
	coinID, horizon := s.DefaultCoin, s.DefaultHorizon
	if len(args) > 0 {
		coinID = strings.ToLower(args[0])
	}
	if len(args) > 1 {
		h, err := model.ParseHorizon(args[1])
		if err != nil {
			return replyError(err)
		}
		horizon = h
	}

	detail, err := s.Session.Select(ctx, coinID, horizon)
	if err != nil && !errors.Is(err, dashboard.ErrSuperseded) {
		return replyError(err)
	}
	return notifier.FormatCoinReport(detail) + "\n\n" + notifier.FormatNews(detail.News, newsLimit)
}

func (s *Scheduler) addCommand(args []string) string {
	if len(args) != 3 {
		return "Usage: /add &lt;coin&gt; &lt;amount&gt; &lt;price&gt;"
	}
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return "❌ Invalid amount."
	}
	price, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return "❌ Invalid price."
	}
	h, err := s.Portfolio.AddHolding(model.Holding{CoinID: args[0], Amount: amount, PurchasePrice: price}, s.knownCoins())
	if err != nil {
		return replyError(err)
	}
	return fmt.Sprintf("✅ Added %s %s @ %s\nID: <code>%s</code>",
		notifier.GroupThousands(h.Amount, 8), strings.ToUpper(h.Symbol), notifier.FormatPrice(h.PurchasePrice), h.ID)
}

func (s *Scheduler) alertCommand(args []string) string {
	if len(args) != 3 {
		return "Usage: /alert &lt;coin&gt; above|below &lt;price&gt;"
	}
	target, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return "❌ Invalid price."
	}
	a, err := s.Portfolio.AddAlert(model.PriceAlert{
		CoinID:      args[0],
		Condition:   model.AlertCondition(strings.ToLower(args[1])),
		TargetPrice: target,
	}, s.knownCoins())
	if err != nil {
		return replyError(err)
	}
	return fmt.Sprintf("✅ Alert set: %s %s $%s\nID: <code>%s</code>",
		strings.ToUpper(a.Symbol), a.Condition, notifier.GroupThousands(a.TargetPrice, 3), a.ID)
}

// knownCoins returns the snapshot to validate against, or nil when the
// market has not loaded yet.
func (s *Scheduler) knownCoins() []model.Coin {
	coins := s.Session.View().Snapshot.Coins
	if len(coins) == 0 {
		return nil
	}
	return coins
}

func (s *Scheduler) recentEvents() []model.AlertEventRecord {
	if s.Events == nil {
		return nil
	}
	recent, err := s.Events.Recent(recentAlerts)
	if err != nil {
		s.Logger.Warn("read alert journal failed", zap.Error(err))
		return nil
	}
	return recent
}

func replyError(err error) string {
	return "❌ " + html.EscapeString(err.Error())
}
