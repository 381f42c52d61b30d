package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// WithTransaction runs fn in one transaction, committing when fn returns nil
// and rolling back otherwise. fn must issue every statement through tx:
// SQLite holds a single connection.
func WithTransaction(ctx context.Context, db Database, fn func(tx *gorm.DB) error) error {
	_, err := WithTransactionResult(ctx, db, func(tx *gorm.DB) (struct{}, error) {
		return struct{}{}, fn(tx)
	})
	return err
}

// WithTransactionResult runs fn in one transaction and returns its result.
// A cancelled context fails before the transaction begins, so a batch loop
// stops at the next boundary. A panic in fn rolls back and is re-raised.
func WithTransactionResult[T any](ctx context.Context, db Database, fn func(tx *gorm.DB) (T, error)) (result T, err error) {
	if err := ctx.Err(); err != nil {
		return result, err
	}

	tx := db.Session(ctx).Begin()
	if tx.Error != nil {
		return result, fmt.Errorf("begin transaction: %w", tx.Error)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback().Error; rbErr != nil && err != nil {
			err = errors.Join(err, fmt.Errorf("rollback transaction: %w", rbErr))
		}
	}()

	if result, err = fn(tx); err != nil {
		return result, err
	}
	commitErr := tx.Commit().Error
	committed = true
	if commitErr != nil {
		return result, fmt.Errorf("commit transaction: %w", commitErr)
	}
	return result, nil
}
