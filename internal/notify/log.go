package notify

import (
	"context"
	"log/slog"

	"github.com/pkordes/stay-planner/internal/domain"
)

// Log writes each alert as a structured log record.
type Log struct {
	logger *slog.Logger
}

// NewLog constructs a notifier that logs to logger.
func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Notify(ctx context.Context, a domain.Alert) error {
	l.logger.LogAttrs(ctx, slog.LevelWarn, "schengen allowance alert",
		slog.String("user_id", a.UserID.String()),
		slog.String("email", a.Email),
		slog.Int("threshold", a.Threshold),
		slog.String("date", domain.FormatDate(a.Date)),
		slog.Int("used_days", a.Status.UsedDays),
		slog.Int("remaining_days", a.Status.RemainingDays),
		slog.String("message", Message(a)),
	)
	return nil
}
