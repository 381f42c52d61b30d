// Package reference seeds the fixed lookup tables.
package reference

import (
	"context"
	"log/slog"

	"github.com/helixml/brokerseed/application/handler"
	"github.com/helixml/brokerseed/domain/progress"
	"github.com/helixml/brokerseed/internal/database"
	"gorm.io/gorm"
)

// Seed handles the reference step. Rows are matched on name, so the step
// inserts only what is missing and runs in a single transaction.
type Seed struct {
	rt *handler.Runtime
}

// NewSeed creates a new Seed handler.
func NewSeed(rt *handler.Runtime) *Seed {
	return &Seed{rt: rt}
}

// Execute inserts the reference rows.
func (h *Seed) Execute(ctx context.Context, marker progress.Step) (int, error) {
	tracker := h.rt.Trackers.ForStep(progress.StepReference)
	tracker.SetTotal(ctx, 1)

	inserted, err := database.WithTransactionResult(ctx, h.rt.DB, func(tx *gorm.DB) (int, error) {
		n, err := h.rt.Reference.Seed(tx)
		if err != nil {
			return 0, err
		}
		return n, h.rt.Checkpoint(tx, marker.Advance(n, 0).Complete(h.rt.Now()))
	})
	if err != nil {
		return 0, err
	}

	h.rt.Logger.Debug("reference data ready", slog.Int("inserted", inserted))
	tracker.SetCurrent(ctx, 1, "reference rows written")
	return inserted, nil
}
