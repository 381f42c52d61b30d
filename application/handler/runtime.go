package handler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/helixml/brokerseed/domain/broker"
	"github.com/helixml/brokerseed/domain/progress"
	"github.com/helixml/brokerseed/domain/sampling"
	"github.com/helixml/brokerseed/domain/sequence"
	"github.com/helixml/brokerseed/infrastructure/persistence"
	"github.com/helixml/brokerseed/internal/config"
	"github.com/helixml/brokerseed/internal/database"
	"github.com/helixml/brokerseed/internal/fake"
	"gorm.io/gorm"
)

// Runtime is the state shared by every handler of one run.
type Runtime struct {
	DB        database.Database
	Steps     persistence.StepStore
	Sequences persistence.SequenceStore
	Reference persistence.ReferenceStore
	Counter   *sequence.Counter
	Source    sampling.Source
	Faker     *fake.Faker
	Config    config.SeedConfig
	Clock     func() time.Time
	Trackers  TrackerFactory
	Logger    *slog.Logger

	mu   sync.Mutex
	dict *broker.Dictionary
}

// NewRuntime creates a Runtime over db. A nil clock means time.Now.
func NewRuntime(
	db database.Database,
	cfg config.SeedConfig,
	src sampling.Source,
	counter *sequence.Counter,
	clock func() time.Time,
	trackers TrackerFactory,
	logger *slog.Logger,
) *Runtime {
	if clock == nil {
		clock = time.Now
	}
	return &Runtime{
		DB:        db,
		Steps:     persistence.NewStepStore(db),
		Sequences: persistence.NewSequenceStore(db),
		Reference: persistence.NewReferenceStore(db),
		Counter:   counter,
		Source:    src,
		Faker:     fake.New(src),
		Config:    cfg,
		Clock:     clock,
		Trackers:  trackers,
		Logger:    logger,
	}
}

// Now returns the current time in UTC.
func (r *Runtime) Now() time.Time {
	return r.Clock().UTC()
}

// Today returns the current UTC date.
func (r *Runtime) Today() time.Time {
	return sampling.Day(r.Now())
}

// Dictionary returns the reference rows, loading them on first use. It must
// not be called before the reference step has run.
func (r *Runtime) Dictionary(ctx context.Context) (broker.Dictionary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dict != nil {
		return *r.dict, nil
	}
	dict, err := r.Reference.Dictionary(ctx)
	if err != nil {
		return broker.Dictionary{}, fmt.Errorf("load reference data: %w", err)
	}
	r.dict = &dict
	return dict, nil
}

// Checkpoint writes marker and the current sequence values through tx.
func (r *Runtime) Checkpoint(tx *gorm.DB, marker progress.Step) error {
	if err := r.Sequences.Save(tx, r.Counter.Snapshot()); err != nil {
		return err
	}
	return r.Steps.Save(tx, marker)
}

// UserIDs returns the id of every user, for attributing audit rows.
func (r *Runtime) UserIDs(ctx context.Context) ([]int64, error) {
	users, err := persistence.NewUserStore(r.DB).Find(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids, nil
}

// PickUser returns a random id from ids, or nil when there are none.
func (r *Runtime) PickUser(ids []int64) *int64 {
	id, err := sampling.PickOne(r.Source, ids)
	if err != nil {
		return nil
	}
	return &id
}
