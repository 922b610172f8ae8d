package alert

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"CoinSentinel/internal/model"
	"CoinSentinel/internal/notifier"
)

// Journal records fired alert events.
type Journal interface {
	Append(ev model.AlertEvent) (uint64, error)
}

// Dispatcher delivers fired alert events. Both the journal and the notifier
// are optional.
type Dispatcher struct {
	Notifier notifier.Notifier
	Journal  Journal
	Logger   *zap.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(n notifier.Notifier, j Journal, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{Notifier: n, Journal: j, Logger: logger}
}

// Dispatch journals and sends every event. A failure for one event does not
// stop the others; the first error is returned.
func (d *Dispatcher) Dispatch(ctx context.Context, events []model.AlertEvent) error {
	var firstErr error
	for _, ev := range events {
		if err := d.dispatch(ctx, ev); err != nil {
			d.Logger.Warn("alert dispatch failed", zap.String("alert_id", ev.AlertID), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (d *Dispatcher) dispatch(ctx context.Context, ev model.AlertEvent) error {
	if d.Journal != nil {
		idx, err := d.Journal.Append(ev)
		if err != nil {
			return errors.Wrap(err, "journal alert event")
		}
		d.Logger.Debug("alert journaled", zap.Uint64("index", idx), zap.String("alert_id", ev.AlertID))
	}

	d.Logger.Info("price alert triggered",
		zap.String("coin", ev.CoinID),
		zap.String("condition", string(ev.Condition)),
		zap.Float64("target", ev.TargetPrice),
		zap.Float64("price", ev.Price),
	)

	if d.Notifier == nil {
		return nil
	}
	if err := d.Notifier.Notify(ctx, notifier.FormatAlertTriggered(ev)); err != nil {
		return errors.Wrap(err, "notify alert")
	}
	return nil
}
