// Package tracking reports the live progress of seeding steps.
package tracking

import (
	"context"
	"log/slog"
	"sync"

	"github.com/helixml/brokerseed/domain/progress"
)

// Reporter receives step status changes.
type Reporter interface {
	OnChange(ctx context.Context, status progress.Status) error
}

// Tracker provides progress tracking with automatic notification to subscribers.
// It wraps Status and propagates state changes to registered reporters.
type Tracker struct {
	status      progress.Status
	subscribers []Reporter
	logger      *slog.Logger
	mu          sync.RWMutex
}

// NewTracker creates a new progress tracker for step.
func NewTracker(step progress.StepName, logger *slog.Logger) *Tracker {
	return &Tracker{
		status:      progress.NewStatus(step),
		subscribers: make([]Reporter, 0),
		logger:      logger,
	}
}

// Status returns a copy of the current Status.
func (t *Tracker) Status() progress.Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

// Subscribe adds a reporter to receive status change notifications.
func (t *Tracker) Subscribe(reporter Reporter) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subscribers = append(t.subscribers, reporter)
}

// SetTotal sets the total count for progress tracking.
func (t *Tracker) SetTotal(ctx context.Context, total int) {
	t.update(ctx, func(s progress.Status) progress.Status { return s.SetTotal(total) })
}

// SetCurrent updates the current progress count and optionally a message.
func (t *Tracker) SetCurrent(ctx context.Context, current int, message string) {
	t.update(ctx, func(s progress.Status) progress.Status { return s.SetCurrent(current, message) })
}

// Skip marks the step as skipped with a reason.
func (t *Tracker) Skip(ctx context.Context, reason string) {
	t.update(ctx, func(s progress.Status) progress.Status { return s.Skip(reason) })
}

// Fail marks the step as failed with an error message.
func (t *Tracker) Fail(ctx context.Context, errMsg string) {
	t.update(ctx, func(s progress.Status) progress.Status { return s.Fail(errMsg) })
}

// Complete marks the step as completed.
func (t *Tracker) Complete(ctx context.Context) {
	t.update(ctx, progress.Status.Complete)
}

func (t *Tracker) update(ctx context.Context, fn func(progress.Status) progress.Status) {
	t.mu.Lock()
	t.status = fn(t.status)
	status := t.status
	subscribers := make([]Reporter, len(t.subscribers))
	copy(subscribers, t.subscribers)
	t.mu.Unlock()

	for _, subscriber := range subscribers {
		if err := subscriber.OnChange(ctx, status); err != nil {
			t.logger.Error("failed to notify subscriber",
				slog.String("error", err.Error()),
				slog.String("step", status.Step().String()),
			)
		}
	}
}
