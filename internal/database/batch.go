package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrInvalidBatchSize indicates a non-positive batch size.
var ErrInvalidBatchSize = errors.New("batch size must be positive")

// Batch describes one chunk of a batched write.
type Batch struct {
	Index  int
	Offset int
	Size   int
	Total  int
	Last   bool
}

// Batches returns the number of chunks RunBatches will execute for total items.
func Batches(total, size int) int {
	if total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// RunBatches splits total items into chunks of size and runs fn for each
// chunk in its own transaction. Earlier chunks stay committed when a later
// one fails. The context is checked before every chunk. A zero total still
// runs one empty, final chunk so callers can record completion. Callers
// insert rows and save their checkpoint through the chunk's tx.
func RunBatches(ctx context.Context, db Database, total, size int, fn func(tx *gorm.DB, b Batch) error) error {
	if size <= 0 {
		return ErrInvalidBatchSize
	}
	if total < 0 {
		total = 0
	}

	count := Batches(total, size)
	for i := range count {
		if err := ctx.Err(); err != nil {
			return err
		}
		offset := i * size
		b := Batch{
			Index:  i,
			Offset: offset,
			Size:   min(size, total-offset),
			Total:  total,
			Last:   i == count-1,
		}
		if err := WithTransaction(ctx, db, func(tx *gorm.DB) error {
			return fn(tx, b)
		}); err != nil {
			return fmt.Errorf("batch %d/%d: %w", i+1, count, err)
		}
	}
	return nil
}
