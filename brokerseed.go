// Package brokerseed fills an insurance brokerage database with realistic,
// internally consistent demo data.
//
// Seeding runs in dependency order: reference data, clients, the agent
// hierarchy, policies, claims and finally premium payments. Each step
// records its progress, so an interrupted run resumes where it stopped and
// a repeated run inserts nothing.
//
// Basic usage:
//
//	client, err := brokerseed.New(
//	    brokerseed.WithSQLite("broker.db"),
//	    brokerseed.WithSeedConfig(config.NewSeedConfig().WithClients(500)),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	summary, err := client.Seed(ctx, false)
package brokerseed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/helixml/brokerseed/application/service"
	"github.com/helixml/brokerseed/domain/broker"
	"github.com/helixml/brokerseed/domain/progress"
	"github.com/helixml/brokerseed/infrastructure/persistence"
	"github.com/helixml/brokerseed/internal/config"
	"github.com/helixml/brokerseed/internal/database"
)

// Client is the main entry point for the brokerseed library. It owns one
// database connection with the schema migrated.
type Client struct {
	db     database.Database
	seeder *service.Seeder
	logger *slog.Logger
	closed atomic.Bool
	mu     sync.Mutex
}

// New opens the configured database, migrates the schema and returns a
// Client ready to seed.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	dbURL, err := buildDatabaseURL(cfg)
	if err != nil {
		return nil, err
	}
	if err := cfg.seed.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx := context.Background()
	db, err := database.NewDatabaseWithLogger(ctx, dbURL, logger)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.ConfigurePool(cfg.maxOpenConns, config.DefaultMaxIdleConns, config.DefaultConnLifetime); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("configure pool: %w", err), errClose)
	}

	if err := persistence.AutoMigrate(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), errClose)
	}
	if err := persistence.ValidateSchema(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("validate schema: %w", err), errClose)
	}

	return &Client{
		db:     db,
		seeder: service.NewSeeder(db, cfg.seed, cfg.clock, logger),
		logger: logger,
	}, nil
}

// Seed runs every seeding step. With reset set, all seeded tables are
// emptied first.
func (c *Client) Seed(ctx context.Context, reset bool) (service.Summary, error) {
	if c.closed.Load() {
		return service.Summary{}, ErrClientClosed
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seeder.Run(ctx, reset)
}

// Stats returns the row counts of the seeded tables.
func (c *Client) Stats(ctx context.Context) (broker.Stats, error) {
	if c.closed.Load() {
		return broker.Stats{}, ErrClientClosed
	}
	return c.seeder.Stats(ctx)
}

// Runs returns the most recent seeding runs, newest first.
func (c *Client) Runs(ctx context.Context, limit int) ([]progress.Run, error) {
	if c.closed.Load() {
		return nil, ErrClientClosed
	}
	return c.seeder.Runs(ctx, limit)
}

// Close releases the database connection.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	c.logger.Info("brokerseed client closed")
	return nil
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

func buildDatabaseURL(cfg *clientConfig) (string, error) {
	switch cfg.database {
	case databaseSQLite:
		return "sqlite:///" + cfg.dbPath, nil
	case databasePostgres:
		return cfg.dbDSN, nil
	default:
		return "", ErrNoDatabase
	}
}
