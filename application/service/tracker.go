package service

import (
	"log/slog"

	"github.com/helixml/brokerseed/application/handler"
	"github.com/helixml/brokerseed/domain/progress"
	"github.com/helixml/brokerseed/infrastructure/tracking"
)

// TrackerFactory creates step trackers that publish to a fixed set of
// reporters.
type TrackerFactory struct {
	reporters []tracking.Reporter
	logger    *slog.Logger
}

// NewTrackerFactory creates a TrackerFactory.
func NewTrackerFactory(logger *slog.Logger, reporters ...tracking.Reporter) TrackerFactory {
	return TrackerFactory{reporters: reporters, logger: logger}
}

// ForStep returns a tracker for step.
func (f TrackerFactory) ForStep(step progress.StepName) handler.Tracker {
	tracker := tracking.NewTracker(step, f.logger)
	for _, reporter := range f.reporters {
		tracker.Subscribe(reporter)
	}
	return tracker
}
