package handler

import (
	"context"
	"fmt"

	"github.com/helixml/brokerseed/domain/progress"
	"github.com/helixml/brokerseed/internal/database"
	"gorm.io/gorm"
)

// RootBatches inserts missing rows of a root step in batches of the
// configured size. fn inserts the rows of one batch through tx and returns
// how many it wrote. The marker is advanced and saved in every batch and
// completed in the last one, so a step with nothing missing still records
// its completion.
func RootBatches(
	ctx context.Context,
	rt *Runtime,
	tracker Tracker,
	marker progress.Step,
	missing int,
	fn func(tx *gorm.DB, b database.Batch) (int, error),
) (int, error) {
	tracker.SetTotal(ctx, missing)
	inserted := 0
	err := database.RunBatches(ctx, rt.DB, missing, rt.Config.BatchSize(), func(tx *gorm.DB, b database.Batch) error {
		n := 0
		if b.Size > 0 {
			var err error
			if n, err = fn(tx, b); err != nil {
				return err
			}
		}
		next := marker.Advance(n, 0)
		if b.Last {
			next = next.Complete(rt.Now())
		}
		if err := rt.Checkpoint(tx, next); err != nil {
			return err
		}
		marker = next
		inserted += n
		tracker.SetCurrent(ctx, b.Offset+b.Size, fmt.Sprintf("batch %d", b.Index+1))
		return nil
	})
	return inserted, err
}

// ChildBatches generates children for parents, which must be ordered by id
// and contain only parents without children. Rows are buffered until the
// configured child batch size is reached and then written, together with
// the marker whose cursor is the last parent covered, in one transaction.
// A batch never splits the children of one parent.
func ChildBatches[P, C any](
	ctx context.Context,
	rt *Runtime,
	tracker Tracker,
	marker progress.Step,
	parents []P,
	parentID func(P) int64,
	gen func(P) ([]C, error),
	insert func(tx *gorm.DB, rows []C) (int, error),
) (int, error) {
	tracker.SetTotal(ctx, len(parents))
	size := rt.Config.ChildBatchSize()
	inserted, batch := 0, 0
	var buf []C

	flush := func(done int, cursor int64, last bool) error {
		batch++
		return database.WithTransaction(ctx, rt.DB, func(tx *gorm.DB) error {
			n := 0
			if len(buf) > 0 {
				var err error
				if n, err = insert(tx, buf); err != nil {
					return fmt.Errorf("batch %d: %w", batch, err)
				}
			}
			next := marker.Advance(n, cursor)
			if last {
				next = next.Complete(rt.Now())
			}
			if err := rt.Checkpoint(tx, next); err != nil {
				return err
			}
			marker = next
			inserted += n
			tracker.SetCurrent(ctx, done, fmt.Sprintf("batch %d", batch))
			return nil
		})
	}

	for i, p := range parents {
		rows, err := gen(p)
		if err != nil {
			return inserted, err
		}
		buf = append(buf, rows...)
		if len(buf) >= size && i < len(parents)-1 {
			if err := flush(i+1, parentID(p), false); err != nil {
				return inserted, err
			}
			buf = buf[:0]
		}
	}

	cursor := marker.Cursor()
	if len(parents) > 0 {
		cursor = parentID(parents[len(parents)-1])
	}
	if err := flush(len(parents), cursor, true); err != nil {
		return inserted, err
	}
	return inserted, nil
}

// Skip marks a step complete without inserting anything.
func Skip(ctx context.Context, rt *Runtime, marker progress.Step) error {
	return database.WithTransaction(ctx, rt.DB, func(tx *gorm.DB) error {
		return rt.Checkpoint(tx, marker.Complete(rt.Now()))
	})
}
