package handler

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/helixml/brokerseed/domain/progress"
	"github.com/helixml/brokerseed/domain/sampling"
	"github.com/helixml/brokerseed/domain/sequence"
	"github.com/helixml/brokerseed/internal/config"
	"github.com/helixml/brokerseed/internal/database"
	"github.com/helixml/brokerseed/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeTracker struct {
	total    int
	messages []string
}

func (f *fakeTracker) SetTotal(_ context.Context, total int) { f.total = total }
func (f *fakeTracker) SetCurrent(_ context.Context, _ int, message string) {
	f.messages = append(f.messages, message)
}
func (f *fakeTracker) Skip(_ context.Context, _ string) {}
func (f *fakeTracker) Fail(_ context.Context, _ string) {}
func (f *fakeTracker) Complete(_ context.Context)       {}

type fakeTrackerFactory struct{}

func (fakeTrackerFactory) ForStep(_ progress.StepName) Tracker { return &fakeTracker{} }

type noopHandler struct{}

func (noopHandler) Execute(_ context.Context, _ progress.Step) (int, error) { return 0, nil }

func newRuntime(t *testing.T, cfg config.SeedConfig) *Runtime {
	t.Helper()
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	return NewRuntime(
		testdb.New(t),
		cfg,
		sampling.NewSource(7),
		sequence.NewCounter(),
		func() time.Time { return now },
		fakeTrackerFactory{},
		slog.New(slog.DiscardHandler),
	)
}

func TestRegistry_OrderAndLayers(t *testing.T) {
	r := NewRegistry()
	r.Register(progress.StepReference, noopHandler{})
	r.Register(progress.StepClients, noopHandler{})
	r.Register(progress.StepClientAddresses, noopHandler{})
	r.Register(progress.StepAgents, noopHandler{})
	r.Register(progress.StepClients, noopHandler{})

	assert.Equal(t, []progress.StepName{
		progress.StepReference, progress.StepClients, progress.StepClientAddresses, progress.StepAgents,
	}, r.Steps())

	layers := r.Layers()
	require.Len(t, layers, 3)
	assert.Equal(t, "reference", layers[0].Name)
	assert.Equal(t, "clients", layers[1].Name)
	assert.Equal(t, []progress.StepName{progress.StepClients, progress.StepClientAddresses}, layers[1].Steps)
	assert.Equal(t, "agents", layers[2].Name)
}

func TestRegistry_MissingHandler(t *testing.T) {
	r := NewRegistry()

	assert.False(t, r.HasHandler(progress.StepClaims))
	_, err := r.Handler(progress.StepClaims)
	assert.ErrorIs(t, err, ErrNoHandler)
}

func TestChildBatches_FlushesAtParentBoundaries(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime(t, config.NewSeedConfig().WithChildBatchSize(5))
	tracker := &fakeTracker{}

	var sizes []int
	inserted, err := ChildBatches(ctx, rt, tracker, progress.NewStep(progress.StepClientAddresses),
		[]int64{1, 2, 3, 4, 5},
		func(id int64) int64 { return id },
		func(id int64) ([]int64, error) { return []int64{id, id, id}, nil },
		func(_ *gorm.DB, rows []int64) (int, error) {
			sizes = append(sizes, len(rows))
			return len(rows), nil
		},
	)
	require.NoError(t, err)

	assert.Equal(t, 15, inserted)
	assert.Equal(t, []int{6, 6, 3}, sizes)
	assert.Equal(t, 5, tracker.total)
	assert.Len(t, tracker.messages, 3)

	marker, err := rt.Steps.Get(ctx, progress.StepClientAddresses)
	require.NoError(t, err)
	assert.Equal(t, int64(15), marker.Rows())
	assert.Equal(t, int64(5), marker.Cursor())
	assert.True(t, marker.IsComplete())
}

func TestChildBatches_FailureKeepsCommittedCursor(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime(t, config.NewSeedConfig().WithChildBatchSize(5))
	boom := errors.New("boom")

	calls := 0
	inserted, err := ChildBatches(ctx, rt, &fakeTracker{}, progress.NewStep(progress.StepClientContacts),
		[]int64{10, 20, 30, 40},
		func(id int64) int64 { return id },
		func(id int64) ([]int64, error) { return []int64{id, id, id}, nil },
		func(_ *gorm.DB, rows []int64) (int, error) {
			calls++
			if calls == 2 {
				return 0, boom
			}
			return len(rows), nil
		},
	)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 6, inserted)

	marker, err := rt.Steps.Get(ctx, progress.StepClientContacts)
	require.NoError(t, err)
	assert.Equal(t, int64(6), marker.Rows())
	assert.Equal(t, int64(20), marker.Cursor())
	assert.False(t, marker.IsComplete())
}

func TestChildBatches_NoParentsCompletesStep(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime(t, config.NewSeedConfig())

	inserted, err := ChildBatches(ctx, rt, &fakeTracker{}, progress.NewStep(progress.StepPayments),
		nil,
		func(id int64) int64 { return id },
		func(int64) ([]int64, error) { return nil, nil },
		func(*gorm.DB, []int64) (int, error) {
			t.Fatal("insert called without rows")
			return 0, nil
		},
	)
	require.NoError(t, err)
	assert.Zero(t, inserted)

	marker, err := rt.Steps.Get(ctx, progress.StepPayments)
	require.NoError(t, err)
	assert.True(t, marker.IsComplete())
}

func TestRootBatches_AdvancesMarkerPerBatch(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime(t, config.NewSeedConfig().WithBatchSize(3))

	var batches []database.Batch
	inserted, err := RootBatches(ctx, rt, &fakeTracker{}, progress.NewStep(progress.StepClients), 7,
		func(_ *gorm.DB, b database.Batch) (int, error) {
			batches = append(batches, b)
			return b.Size, nil
		},
	)
	require.NoError(t, err)

	assert.Equal(t, 7, inserted)
	require.Len(t, batches, 3)
	assert.Equal(t, 1, batches[2].Size)
	assert.True(t, batches[2].Last)

	marker, err := rt.Steps.Get(ctx, progress.StepClients)
	require.NoError(t, err)
	assert.Equal(t, int64(7), marker.Rows())
	assert.True(t, marker.IsComplete())
}

func TestRootBatches_NothingMissing(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime(t, config.NewSeedConfig())

	inserted, err := RootBatches(ctx, rt, &fakeTracker{}, progress.NewStep(progress.StepClients), 0,
		func(*gorm.DB, database.Batch) (int, error) {
			t.Fatal("fn called for an empty batch")
			return 0, nil
		},
	)
	require.NoError(t, err)
	assert.Zero(t, inserted)

	marker, err := rt.Steps.Get(ctx, progress.StepClients)
	require.NoError(t, err)
	assert.True(t, marker.IsComplete())
}

func TestRuntime_CheckpointStoresSequences(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime(t, config.NewSeedConfig())

	rt.Counter.PolicyNumber(rt.Now())
	rt.Counter.PolicyNumber(rt.Now())
	require.NoError(t, Skip(ctx, rt, progress.NewStep(progress.StepPolicies)))

	saved, err := rt.Sequences.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sequence.Start+2, saved[sequence.Policy])

	assert.Nil(t, rt.PickUser(nil))
	id := rt.PickUser([]int64{9})
	require.NotNil(t, id)
	assert.Equal(t, int64(9), *id)
}
