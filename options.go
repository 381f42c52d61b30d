package brokerseed

import (
	"log/slog"
	"strings"
	"time"

	"github.com/helixml/brokerseed/internal/config"
)

// databaseType identifies the database.
type databaseType int

const (
	databaseUnset databaseType = iota
	databaseSQLite
	databasePostgres
)

// clientConfig holds configuration for Client construction.
type clientConfig struct {
	database     databaseType
	dbPath       string
	dbDSN        string
	maxOpenConns int
	seed         config.SeedConfig
	logger       *slog.Logger
	clock        func() time.Time
}

func newClientConfig() *clientConfig {
	return &clientConfig{
		maxOpenConns: config.DefaultMaxOpenConns,
		seed:         config.NewSeedConfig(),
		clock:        time.Now,
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithSQLite configures a SQLite database file. ":memory:" opens a private
// in-memory database.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.database = databaseSQLite
		c.dbPath = path
	}
}

// WithPostgres configures PostgreSQL.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.database = databasePostgres
		c.dbDSN = dsn
	}
}

// WithDatabaseURL picks SQLite or PostgreSQL from a database URL.
func WithDatabaseURL(url string) Option {
	return func(c *clientConfig) {
		if path, ok := strings.CutPrefix(url, "sqlite:///"); ok {
			WithSQLite(path)(c)
			return
		}
		WithPostgres(url)(c)
	}
}

// WithMaxOpenConns sets the PostgreSQL connection pool size.
func WithMaxOpenConns(n int) Option {
	return func(c *clientConfig) {
		if n > 0 {
			c.maxOpenConns = n
		}
	}
}

// WithSeedConfig sets the volumes and tuning of seeding runs.
func WithSeedConfig(s config.SeedConfig) Option {
	return func(c *clientConfig) {
		c.seed = s
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithClock sets the time source every generated date is relative to.
func WithClock(clock func() time.Time) Option {
	return func(c *clientConfig) {
		if clock != nil {
			c.clock = clock
		}
	}
}
