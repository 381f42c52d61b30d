package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestWithTransaction(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	err := WithTransaction(ctx, db, func(tx *gorm.DB) error {
		return tx.Exec("INSERT INTO items (name) VALUES (?)", "kept").Error
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = WithTransaction(ctx, db, func(tx *gorm.DB) error {
		if err := tx.Exec("INSERT INTO items (name) VALUES (?)", "dropped").Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(1), countItems(t, db))
}

func TestWithTransactionResult(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	got, err := WithTransactionResult(ctx, db, func(tx *gorm.DB) (int, error) {
		var v int
		err := tx.Raw("SELECT 42").Scan(&v).Error
		return v, err
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	boom := errors.New("boom")
	_, err = WithTransactionResult(ctx, db, func(tx *gorm.DB) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestWithTransaction_CancelledContextSkipsWork(t *testing.T) {
	db := openMemory(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := WithTransaction(ctx, db, func(*gorm.DB) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestWithTransaction_PanicRollsBack(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = WithTransaction(ctx, db, func(tx *gorm.DB) error {
			require.NoError(t, tx.Exec("INSERT INTO items (name) VALUES (?)", "lost").Error)
			panic("handler bug")
		})
	})
	assert.Equal(t, int64(0), countItems(t, db))

	require.NoError(t, WithTransaction(ctx, db, func(tx *gorm.DB) error {
		return tx.Exec("INSERT INTO items (name) VALUES (?)", "after").Error
	}))
	assert.Equal(t, int64(1), countItems(t, db))
}
