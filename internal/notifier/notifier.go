package notifier

import (
	"context"

	"go.uber.org/zap"
)

// Notifier delivers a text message to the user.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// LogNotifier writes messages to the log. Used when Telegram is not configured.
type LogNotifier struct {
	Logger *zap.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{Logger: logger}
}

// Notify logs the message and never fails.
func (l *LogNotifier) Notify(_ context.Context, text string) error {
	l.Logger.Info("notification", zap.String("text", StripHTML(text)))
	return nil
}
