package tracking_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/helixml/brokerseed/domain/progress"
	"github.com/helixml/brokerseed/infrastructure/tracking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReporter struct{}

func (failingReporter) OnChange(context.Context, progress.Status) error {
	return errors.New("sink unavailable")
}

func TestTracker_NotifiesEverySubscriber(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	first, second := &fakeReporter{}, &fakeReporter{}
	tracker := tracking.NewTracker(progress.StepClaims, logger)
	tracker.Subscribe(failingReporter{})
	tracker.Subscribe(first)
	tracker.Subscribe(second)

	tracker.SetTotal(ctx, 4)
	tracker.SetCurrent(ctx, 2, "batch 1")
	tracker.Complete(ctx)

	require.Equal(t, 3, first.count())
	assert.Equal(t, 3, second.count())
	assert.Equal(t, progress.ReportingStateCompleted, first.last().State())
	assert.Equal(t, 4, tracker.Status().Current())
	assert.Contains(t, buf.String(), "failed to notify subscriber")
}

func TestLoggingReporter_Levels(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	reporter := tracking.NewLoggingReporter(logger)

	status := progress.NewStatus(progress.StepPayments).SetTotal(10)
	require.NoError(t, reporter.OnChange(ctx, status.SetCurrent(3, "batch 1")))
	assert.Empty(t, buf.String())

	require.NoError(t, reporter.OnChange(ctx, status.Fail("disk full")))
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "step=financials.payments")
	assert.Contains(t, buf.String(), `error="disk full"`)
}
