// Package service runs seeding: it orders the step handlers into layers,
// skips what earlier runs completed and records every run.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/helixml/brokerseed/application/handler"
	"github.com/helixml/brokerseed/domain/broker"
	"github.com/helixml/brokerseed/domain/progress"
	"github.com/helixml/brokerseed/domain/sampling"
	"github.com/helixml/brokerseed/domain/sequence"
	"github.com/helixml/brokerseed/infrastructure/persistence"
	"github.com/helixml/brokerseed/infrastructure/tracking"
	"github.com/helixml/brokerseed/internal/config"
	"github.com/helixml/brokerseed/internal/database"
	"github.com/helixml/brokerseed/internal/log"
)

// StepResult reports what one step did during a run.
type StepResult struct {
	Step     progress.StepName
	Inserted int
	Skipped  bool
	Duration time.Duration
}

// Summary reports a finished run.
type Summary struct {
	RunID   string
	Seed    uint64
	Reset   bool
	Steps   []StepResult
	Elapsed time.Duration
	Stats   broker.Stats
}

// Inserted returns the rows inserted across all steps.
func (s Summary) Inserted() int {
	n := 0
	for _, r := range s.Steps {
		n += r.Inserted
	}
	return n
}

// Step returns the result of step, if it ran or was skipped.
func (s Summary) Step(step progress.StepName) (StepResult, bool) {
	for _, r := range s.Steps {
		if r.Step == step {
			return r, true
		}
	}
	return StepResult{}, false
}

// Seeder runs the seeding layers against one database.
type Seeder struct {
	db        database.Database
	cfg       config.SeedConfig
	clock     func() time.Time
	logger    *slog.Logger
	steps     persistence.StepStore
	sequences persistence.SequenceStore
	runs      persistence.RunStore
	stats     persistence.StatsStore
}

// NewSeeder creates a Seeder. A nil clock means time.Now.
func NewSeeder(db database.Database, cfg config.SeedConfig, clock func() time.Time, logger *slog.Logger) *Seeder {
	if clock == nil {
		clock = time.Now
	}
	return &Seeder{
		db:        db,
		cfg:       cfg,
		clock:     clock,
		logger:    logger,
		steps:     persistence.NewStepStore(db),
		sequences: persistence.NewSequenceStore(db),
		runs:      persistence.NewRunStore(db),
		stats:     persistence.NewStatsStore(db),
	}
}

// Run seeds every layer in order. With reset set, every table is emptied
// first. Steps completed by earlier runs are skipped, so running again
// against a fully seeded database inserts nothing. The first failing step
// aborts the run; batches it already committed stay.
func (s *Seeder) Run(ctx context.Context, reset bool) (Summary, error) {
	if err := s.cfg.Validate(); err != nil {
		return Summary{}, err
	}
	began := time.Now()

	id := uuid.NewString()
	ctx = log.WithRunID(ctx, id)
	logger := s.logger.With(slog.String("run_id", id))

	seed := s.cfg.RandomSeed()
	if seed == 0 {
		seed = uint64(s.clock().UnixNano())
	}
	summary := Summary{RunID: id, Seed: seed, Reset: reset}

	if reset {
		if err := persistence.Reset(ctx, s.db); err != nil {
			return summary, fmt.Errorf("reset: %w", err)
		}
		logger.Info("database reset")
	}

	// The run record is written even when ctx is cancelled.
	recordCtx := context.WithoutCancel(ctx)
	run := progress.NewRun(id, s.clock(), reset, seed)
	if err := s.runs.Save(recordCtx, run); err != nil {
		return summary, err
	}
	logger.Info("seeding started",
		slog.Uint64("seed", seed),
		slog.Bool("reset", reset),
		slog.Int("clients", s.cfg.Clients()),
		slog.Int("agents", s.cfg.Agents()),
		slog.Int("policies", s.cfg.Policies()),
		slog.Int("claims", s.cfg.Claims()),
	)

	err := s.layers(ctx, logger, seed, &summary)
	summary.Elapsed = time.Since(began)

	if err != nil {
		run = run.Fail(s.clock(), err.Error())
		if saveErr := s.runs.Save(recordCtx, run); saveErr != nil {
			logger.Error("failed to record run failure", slog.String("error", saveErr.Error()))
		}
		logger.Error("seeding failed", slog.String("error", err.Error()), slog.Duration("elapsed", summary.Elapsed))
		return summary, err
	}

	run = run.Complete(s.clock())
	if err := s.runs.Save(recordCtx, run); err != nil {
		return summary, err
	}
	stats, err := s.stats.Snapshot(ctx)
	if err != nil {
		return summary, err
	}
	summary.Stats = stats

	logger.Info("seeding complete",
		slog.Int("inserted", summary.Inserted()),
		slog.Duration("elapsed", summary.Elapsed),
	)
	return summary, nil
}

func (s *Seeder) layers(ctx context.Context, logger *slog.Logger, seed uint64, summary *Summary) error {
	markers, err := s.steps.All(ctx)
	if err != nil {
		return err
	}
	counter := sequence.NewCounter()
	snapshot, err := s.sequences.Load(ctx)
	if err != nil {
		return err
	}
	counter.Restore(snapshot)

	// Batch progress is logged at most once a second per step.
	reporter := tracking.NewCooldown(tracking.NewLoggingReporter(logger), time.Second)
	defer func() { _ = reporter.Close() }()

	rt := handler.NewRuntime(s.db, s.cfg, sampling.NewSource(seed), counter, s.clock, NewTrackerFactory(logger, reporter), logger)
	registry := NewRegistry(rt)

	for _, layer := range registry.Layers() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: %w", layer.Name, err)
		}
		layerCtx := log.WithLayer(ctx, layer.Name)
		layerLogger := logger.With(slog.String("layer", layer.Name))
		rt.Logger = layerLogger

		if complete(markers, layer.Steps) {
			layerLogger.Info("layer already seeded, skipping")
			for _, step := range layer.Steps {
				summary.Steps = append(summary.Steps, StepResult{Step: step, Skipped: true})
			}
			continue
		}

		layerLogger.Info("seeding layer")
		for _, step := range layer.Steps {
			result, err := s.step(layerCtx, rt, registry, step, markers[step])
			if err != nil {
				return err
			}
			summary.Steps = append(summary.Steps, result)
		}
	}
	return nil
}

func (s *Seeder) step(ctx context.Context, rt *handler.Runtime, registry *handler.Registry, step progress.StepName, marker progress.Step) (StepResult, error) {
	if err := ctx.Err(); err != nil {
		return StepResult{}, fmt.Errorf("%s: %w", step, err)
	}
	tracker := rt.Trackers.ForStep(step)
	if marker.IsComplete() {
		tracker.Skip(ctx, "step already complete")
		return StepResult{Step: step, Skipped: true}, nil
	}
	if marker.Name() == "" {
		marker = progress.NewStep(step)
	}

	h, err := registry.Handler(step)
	if err != nil {
		return StepResult{}, err
	}

	began := time.Now()
	inserted, err := execute(ctx, h, marker)
	if err != nil {
		tracker.Fail(ctx, err.Error())
		return StepResult{}, fmt.Errorf("%s: %w", step, err)
	}
	tracker.Complete(ctx)

	result := StepResult{Step: step, Inserted: inserted, Duration: time.Since(began)}
	rt.Logger.Info("step seeded",
		slog.String("step", step.String()),
		slog.Int("inserted", inserted),
		slog.Duration("duration", result.Duration),
	)
	return result, nil
}

func execute(ctx context.Context, h handler.Handler, marker progress.Step) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return h.Execute(ctx, marker)
}

func complete(markers map[progress.StepName]progress.Step, steps []progress.StepName) bool {
	for _, step := range steps {
		if !markers[step].IsComplete() {
			return false
		}
	}
	return true
}

// Stats returns a row-count snapshot of the seeded tables.
func (s *Seeder) Stats(ctx context.Context) (broker.Stats, error) {
	return s.stats.Snapshot(ctx)
}

// Runs returns the most recent runs, newest first.
func (s *Seeder) Runs(ctx context.Context, limit int) ([]progress.Run, error) {
	return s.runs.Latest(ctx, limit)
}
