package persistence

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/helixml/brokerseed/internal/database"
	"github.com/jackc/pgx/v5"
	"gorm.io/gorm"
)

// Reset empties every managed table in one transaction and restarts the
// identity counters, so the next run numbers rows from 1 again.
func Reset(ctx context.Context, db database.Database) error {
	tables, err := TableNames(db)
	if err != nil {
		return err
	}
	return database.WithTransaction(ctx, db, func(tx *gorm.DB) error {
		if db.IsPostgres() {
			return truncatePostgres(tx, tables)
		}
		return deleteSQLite(tx, tables)
	})
}

func truncatePostgres(tx *gorm.DB, tables []string) error {
	quoted := make([]string, len(tables))
	for i, t := range tables {
		quoted[i] = pgx.Identifier{t}.Sanitize()
	}
	stmt := fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", strings.Join(quoted, ", "))
	if err := tx.Exec(stmt).Error; err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	return nil
}

func deleteSQLite(tx *gorm.DB, tables []string) error {
	children := slices.Clone(tables)
	slices.Reverse(children)
	for _, t := range children {
		if err := tx.Exec(fmt.Sprintf("DELETE FROM %q", t)).Error; err != nil {
			return fmt.Errorf("delete %s: %w", t, err)
		}
	}

	var hasSequence int64
	err := tx.Raw(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'sqlite_sequence'`).
		Scan(&hasSequence).Error
	if err != nil {
		return fmt.Errorf("inspect sqlite_sequence: %w", err)
	}
	if hasSequence == 0 {
		return nil
	}
	if err := tx.Exec(`DELETE FROM sqlite_sequence WHERE name IN ?`, tables).Error; err != nil {
		return fmt.Errorf("reset sqlite_sequence: %w", err)
	}
	return nil
}
