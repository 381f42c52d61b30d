package tracking

import (
	"context"
	"log/slog"

	"github.com/helixml/brokerseed/domain/progress"
)

// LoggingReporter implements Reporter by logging status changes.
type LoggingReporter struct {
	logger *slog.Logger
}

// NewLoggingReporter creates a new LoggingReporter.
func NewLoggingReporter(logger *slog.Logger) *LoggingReporter {
	return &LoggingReporter{
		logger: logger,
	}
}

// OnChange logs the step status change. Progress updates go to debug.
func (r *LoggingReporter) OnChange(ctx context.Context, status progress.Status) error {
	attrs := []any{
		slog.String("step", status.Step().String()),
		slog.String("state", string(status.State())),
		slog.Float64("completion_percent", status.CompletionPercent()),
	}
	if status.Message() != "" {
		attrs = append(attrs, slog.String("message", status.Message()))
	}

	switch status.State() {
	case progress.ReportingStateFailed:
		r.logger.ErrorContext(ctx, "step progress", append(attrs, slog.String("error", status.Error()))...)
	case progress.ReportingStateStarted, progress.ReportingStateInProgress:
		r.logger.DebugContext(ctx, "step progress", attrs...)
	default:
		r.logger.InfoContext(ctx, "step progress", attrs...)
	}
	return nil
}
