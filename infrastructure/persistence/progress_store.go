package persistence

import (
	"context"
	"fmt"

	"github.com/helixml/brokerseed/domain/progress"
	"github.com/helixml/brokerseed/domain/query"
	"github.com/helixml/brokerseed/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StepStore persists per-step progress markers.
type StepStore struct {
	database.Repository[progress.Step, SeedStepModel]
}

// NewStepStore creates a new StepStore.
func NewStepStore(db database.Database) StepStore {
	return StepStore{
		Repository: database.NewRepository[progress.Step, SeedStepModel](db, StepMapper{}, "seed steps"),
	}
}

// Get returns the marker for name, or an empty one if none is stored.
func (s StepStore) Get(ctx context.Context, name progress.StepName) (progress.Step, error) {
	steps, err := s.Find(ctx, query.WithName(name.String()))
	if err != nil {
		return progress.Step{}, err
	}
	if len(steps) == 0 {
		return progress.NewStep(name), nil
	}
	return steps[0], nil
}

// All returns every stored marker by name.
func (s StepStore) All(ctx context.Context) (map[progress.StepName]progress.Step, error) {
	steps, err := s.Find(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[progress.StepName]progress.Step, len(steps))
	for _, st := range steps {
		out[st.Name()] = st
	}
	return out, nil
}

// Save upserts the marker through tx.
func (s StepStore) Save(tx *gorm.DB, step progress.Step) error {
	model := s.Mapper().ToModel(step)
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"rows_inserted", "last_parent_id", "completed_at"}),
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("save seed step %s: %w", step.Name(), err)
	}
	return nil
}

// SequenceStore persists document-number counters.
type SequenceStore struct {
	db database.Database
}

// NewSequenceStore creates a new SequenceStore.
func NewSequenceStore(db database.Database) SequenceStore {
	return SequenceStore{db: db}
}

// Load returns every stored counter.
func (s SequenceStore) Load(ctx context.Context) (map[string]int64, error) {
	var rows []SeedSequenceModel
	if err := s.db.Session(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find seed sequences: %w", err)
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Name] = r.Value
	}
	return out, nil
}

// Save upserts the counters through tx.
func (s SequenceStore) Save(tx *gorm.DB, values map[string]int64) error {
	if len(values) == 0 {
		return nil
	}
	rows := make([]SeedSequenceModel, 0, len(values))
	for name, v := range values {
		rows = append(rows, SeedSequenceModel{Name: name, Value: v})
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("save seed sequences: %w", err)
	}
	return nil
}

// RunStore persists the run log.
type RunStore struct {
	database.Repository[progress.Run, SeedRunModel]
}

// NewRunStore creates a new RunStore.
func NewRunStore(db database.Database) RunStore {
	return RunStore{
		Repository: database.NewRepository[progress.Run, SeedRunModel](db, RunMapper{}, "seed runs"),
	}
}

// Save creates or updates a run.
func (s RunStore) Save(ctx context.Context, run progress.Run) error {
	model := s.Mapper().ToModel(run)
	if err := s.DB(ctx).Save(&model).Error; err != nil {
		return fmt.Errorf("save seed run: %w", err)
	}
	return nil
}

// Latest returns the most recent runs, newest first.
func (s RunStore) Latest(ctx context.Context, limit int) ([]progress.Run, error) {
	return s.Find(ctx, query.WithOrderDesc("started_at"), query.WithLimit(limit))
}
