// Package config provides application configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultLogLevel       = "INFO"
	DefaultDBFile         = "brokerseed.db"
	DefaultMaxOpenConns   = 10
	DefaultMaxIdleConns   = 5
	DefaultConnLifetime   = 30 * time.Minute
	DefaultClients        = 2000
	DefaultAgents         = 100
	DefaultPolicies       = 5000
	DefaultClaims         = 800
	DefaultRegions        = 5
	DefaultBatchSize      = 500
	DefaultChildBatchSize = 1000
	DefaultPasswordCost   = 10
	DefaultPassword       = "Password123!"
)

// ErrInvalidSeedConfig indicates seed volumes that cannot be generated.
var ErrInvalidSeedConfig = errors.New("invalid seed config")

// Default client-type weights used when picking the client of a policy.
var defaultClientWeights = map[string]float64{
	"B2C":       1.0,
	"B2B":       1.5,
	"VIP":       3.0,
	"Corporate": 4.0,
}

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// SeedConfig holds the target volumes and tuning of a seeding run.
type SeedConfig struct {
	clients        int
	agents         int
	policies       int
	claims         int
	regions        int
	batchSize      int
	childBatchSize int
	randomSeed     uint64
	passwordCost   int
	password       string
	clientWeights  map[string]float64
}

// NewSeedConfig creates a SeedConfig with the default demo volumes.
func NewSeedConfig() SeedConfig {
	return SeedConfig{
		clients:        DefaultClients,
		agents:         DefaultAgents,
		policies:       DefaultPolicies,
		claims:         DefaultClaims,
		regions:        DefaultRegions,
		batchSize:      DefaultBatchSize,
		childBatchSize: DefaultChildBatchSize,
		passwordCost:   DefaultPasswordCost,
		password:       DefaultPassword,
		clientWeights:  copyWeights(defaultClientWeights),
	}
}

// Clients returns the target number of clients.
func (s SeedConfig) Clients() int { return s.clients }

// Agents returns the target number of agents in the hierarchy.
func (s SeedConfig) Agents() int { return s.agents }

// Policies returns the target number of policies.
func (s SeedConfig) Policies() int { return s.policies }

// Claims returns the target number of claims.
func (s SeedConfig) Claims() int { return s.claims }

// Regions returns the number of regional managers under the root agent.
func (s SeedConfig) Regions() int { return s.regions }

// BatchSize returns the batch size for root entity inserts.
func (s SeedConfig) BatchSize() int { return s.batchSize }

// ChildBatchSize returns the batch size for dependent row inserts.
func (s SeedConfig) ChildBatchSize() int { return s.childBatchSize }

// RandomSeed returns the pseudorandom seed. Zero means time-derived.
func (s SeedConfig) RandomSeed() uint64 { return s.randomSeed }

// PasswordCost returns the bcrypt cost for seeded user passwords.
func (s SeedConfig) PasswordCost() int { return s.passwordCost }

// Password returns the demo password given to every seeded user.
func (s SeedConfig) Password() string { return s.password }

// ClientWeights returns the client-type weights keyed by type name.
func (s SeedConfig) ClientWeights() map[string]float64 {
	return copyWeights(s.clientWeights)
}

// WithClients returns a new config with the specified client count.
func (s SeedConfig) WithClients(n int) SeedConfig {
	s.clients = n
	return s
}

// WithAgents returns a new config with the specified agent count.
func (s SeedConfig) WithAgents(n int) SeedConfig {
	s.agents = n
	return s
}

// WithPolicies returns a new config with the specified policy count.
func (s SeedConfig) WithPolicies(n int) SeedConfig {
	s.policies = n
	return s
}

// WithClaims returns a new config with the specified claim count.
func (s SeedConfig) WithClaims(n int) SeedConfig {
	s.claims = n
	return s
}

// WithRegions returns a new config with the specified regional manager count.
func (s SeedConfig) WithRegions(n int) SeedConfig {
	s.regions = n
	return s
}

// WithBatchSize returns a new config with the specified root batch size.
func (s SeedConfig) WithBatchSize(n int) SeedConfig {
	if n > 0 {
		s.batchSize = n
	}
	return s
}

// WithChildBatchSize returns a new config with the specified child batch size.
func (s SeedConfig) WithChildBatchSize(n int) SeedConfig {
	if n > 0 {
		s.childBatchSize = n
	}
	return s
}

// WithRandomSeed returns a new config with the specified random seed.
func (s SeedConfig) WithRandomSeed(seed uint64) SeedConfig {
	s.randomSeed = seed
	return s
}

// WithPasswordCost returns a new config with the specified bcrypt cost.
func (s SeedConfig) WithPasswordCost(cost int) SeedConfig {
	if cost > 0 {
		s.passwordCost = cost
	}
	return s
}

// WithPassword returns a new config with the specified demo password.
func (s SeedConfig) WithPassword(password string) SeedConfig {
	if password != "" {
		s.password = password
	}
	return s
}

// WithClientWeight returns a new config with the weight of one client type replaced.
func (s SeedConfig) WithClientWeight(clientType string, weight float64) SeedConfig {
	s.clientWeights = copyWeights(s.clientWeights)
	s.clientWeights[clientType] = weight
	return s
}

// Validate reports volumes that cannot produce a consistent dataset.
func (s SeedConfig) Validate() error {
	switch {
	case s.clients < 0, s.agents < 0, s.policies < 0, s.claims < 0:
		return fmt.Errorf("%w: counts must not be negative", ErrInvalidSeedConfig)
	case s.regions < 1:
		return fmt.Errorf("%w: at least one region is required", ErrInvalidSeedConfig)
	case s.policies > 0 && s.clients == 0:
		return fmt.Errorf("%w: policies require clients", ErrInvalidSeedConfig)
	case s.policies > 0 && s.agents == 0:
		return fmt.Errorf("%w: policies require agents", ErrInvalidSeedConfig)
	}
	for name, w := range s.clientWeights {
		if w <= 0 {
			return fmt.Errorf("%w: client weight %s must be positive", ErrInvalidSeedConfig, name)
		}
	}
	return nil
}

func copyWeights(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// AppConfig holds the main application configuration.
type AppConfig struct {
	dataDir      string
	dbURL        string
	maxOpenConns int
	logLevel     string
	logFormat    LogFormat
	profilePath  string
	seed         SeedConfig
}

// DefaultDataDir returns the default data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".brokerseed"
	}
	return filepath.Join(home, ".brokerseed")
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	dataDir := DefaultDataDir()
	return AppConfig{
		dataDir:      dataDir,
		dbURL:        "sqlite:///" + filepath.Join(dataDir, DefaultDBFile),
		maxOpenConns: DefaultMaxOpenConns,
		logLevel:     DefaultLogLevel,
		logFormat:    LogFormatPretty,
		seed:         NewSeedConfig(),
	}
}

// DataDir returns the data directory path.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// MaxOpenConns returns the connection pool size for PostgreSQL.
func (c AppConfig) MaxOpenConns() int { return c.maxOpenConns }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// ProfilePath returns the YAML seed profile path, if any.
func (c AppConfig) ProfilePath() string { return c.profilePath }

// Seed returns the seeding configuration.
func (c AppConfig) Seed() SeedConfig { return c.seed }

// IsSQLite reports whether the database URL points at a SQLite file.
func (c AppConfig) IsSQLite() bool {
	return strings.HasPrefix(c.dbURL, "sqlite:")
}

// SQLitePath returns the filesystem path of a SQLite database URL.
func (c AppConfig) SQLitePath() string {
	return strings.TrimPrefix(c.dbURL, "sqlite:///")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (c AppConfig) EnsureDataDir() error {
	return os.MkdirAll(c.dataDir, 0o755)
}

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithDataDir sets the data directory.
func WithDataDir(dir string) AppConfigOption {
	return func(c *AppConfig) {
		c.dataDir = dir
		// Follow the data dir while the DB URL is still the default one
		if c.dbURL == "" || strings.HasSuffix(c.dbURL, DefaultDBFile) {
			c.dbURL = "sqlite:///" + filepath.Join(dir, DefaultDBFile)
		}
	}
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithMaxOpenConns sets the connection pool size.
func WithMaxOpenConns(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.maxOpenConns = n
		}
	}
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithProfilePath sets the YAML seed profile path.
func WithProfilePath(path string) AppConfigOption {
	return func(c *AppConfig) { c.profilePath = path }
}

// WithSeedConfig sets the seeding configuration.
func WithSeedConfig(s SeedConfig) AppConfigOption {
	return func(c *AppConfig) { c.seed = s }
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	c := NewAppConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
// The database URL is masked for PostgreSQL.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("data_dir", c.dataDir),
		slog.String("db_url", c.maskedDBURL()),
		slog.String("log_level", c.logLevel),
		slog.String("profile", c.profilePath),
		slog.Int("clients", c.seed.clients),
		slog.Int("agents", c.seed.agents),
		slog.Int("policies", c.seed.policies),
		slog.Int("claims", c.seed.claims),
		slog.Int("batch_size", c.seed.batchSize),
		slog.Int("child_batch_size", c.seed.childBatchSize),
		slog.Uint64("random_seed", c.seed.randomSeed),
	}
}

func (c AppConfig) maskedDBURL() string {
	if c.dbURL == "" {
		return "(default)"
	}
	if c.IsSQLite() {
		return c.dbURL
	}
	return "postgres://***@***"
}
