// Package testdb provides a shared test database helper for fast,
// realistic testing against an in-memory SQLite database.
package testdb

import (
	"context"
	"log/slog"
	"testing"

	"github.com/helixml/brokerseed/infrastructure/persistence"
	"github.com/helixml/brokerseed/internal/database"
	"gorm.io/gorm"
)

// New creates an in-memory SQLite database with all migrations applied.
// The database is automatically closed when the test finishes.
func New(t *testing.T) database.Database {
	t.Helper()
	ctx := context.Background()
	db, err := database.NewDatabaseWithLogger(ctx, "sqlite:///:memory:", slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("testdb.New: open database: %v", err)
	}
	if err := persistence.AutoMigrate(db); err != nil {
		_ = db.Close()
		t.Fatalf("testdb.New: auto migrate: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// WithReference creates a migrated database holding the reference tables.
func WithReference(t *testing.T) database.Database {
	t.Helper()
	db := New(t)
	store := persistence.NewReferenceStore(db)
	err := database.WithTransaction(context.Background(), db, func(tx *gorm.DB) error {
		_, err := store.Seed(tx)
		return err
	})
	if err != nil {
		t.Fatalf("testdb.WithReference: %v", err)
	}
	return db
}
