package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
// Nested structs use underscore delimiter (e.g., SEED_CLIENTS).
type EnvConfig struct {
	// DataDir is the data directory path.
	// Env: DATA_DIR
	// Default: ~/.brokerseed
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL is the database connection URL.
	// Env: DB_URL
	// Default: sqlite:///{data_dir}/brokerseed.db
	DBURL string `envconfig:"DB_URL"`

	// DBMaxOpenConns is the PostgreSQL connection pool size.
	// Env: DB_MAX_OPEN_CONNS (default: 10)
	DBMaxOpenConns int `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// Seed configures the volumes of a seeding run.
	Seed SeedEnv `envconfig:"SEED"`
}

// SeedEnv holds environment configuration for seeding.
type SeedEnv struct {
	// Clients is the target number of clients.
	// Env: SEED_CLIENTS (default: 2000)
	Clients int `envconfig:"CLIENTS" default:"2000"`

	// Agents is the target number of agents.
	// Env: SEED_AGENTS (default: 100)
	Agents int `envconfig:"AGENTS" default:"100"`

	// Policies is the target number of policies.
	// Env: SEED_POLICIES (default: 5000)
	Policies int `envconfig:"POLICIES" default:"5000"`

	// Claims is the target number of claims.
	// Env: SEED_CLAIMS (default: 800)
	Claims int `envconfig:"CLAIMS" default:"800"`

	// Regions is the number of regional managers.
	// Env: SEED_REGIONS (default: 5)
	Regions int `envconfig:"REGIONS" default:"5"`

	// BatchSize is the number of root rows per insert batch.
	// Env: SEED_BATCH_SIZE (default: 500)
	BatchSize int `envconfig:"BATCH_SIZE" default:"500"`

	// ChildBatchSize is the number of dependent rows per insert batch.
	// Env: SEED_CHILD_BATCH_SIZE (default: 1000)
	ChildBatchSize int `envconfig:"CHILD_BATCH_SIZE" default:"1000"`

	// RandomSeed fixes the pseudorandom sequence. Zero derives it from the clock.
	// Env: SEED_RANDOM_SEED (default: 0)
	RandomSeed uint64 `envconfig:"RANDOM_SEED" default:"0"`

	// PasswordCost is the bcrypt cost for seeded users.
	// Env: SEED_PASSWORD_COST (default: 10)
	PasswordCost int `envconfig:"PASSWORD_COST" default:"10"`

	// Password is the demo password of seeded users.
	// Env: SEED_PASSWORD (default: Password123!)
	Password string `envconfig:"PASSWORD" default:"Password123!"`

	// Profile is the path of a YAML seed profile.
	// Env: SEED_PROFILE
	Profile string `envconfig:"PROFILE"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// LoadFromEnvWithPrefix loads configuration with a custom prefix.
// For example, prefix "BROKER" would require BROKER_DB_URL instead of DB_URL.
func LoadFromEnvWithPrefix(prefix string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()

	if e.DataDir != "" {
		cfg = cfg.Apply(WithDataDir(e.DataDir))
	}
	if e.DBURL != "" {
		cfg = cfg.Apply(WithDBURL(e.DBURL))
	}
	if e.LogLevel != "" {
		cfg = cfg.Apply(WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		cfg = cfg.Apply(WithLogFormat(parseLogFormat(e.LogFormat)))
	}
	if e.Seed.Profile != "" {
		cfg = cfg.Apply(WithProfilePath(e.Seed.Profile))
	}

	return cfg.Apply(
		WithMaxOpenConns(e.DBMaxOpenConns),
		WithSeedConfig(e.Seed.ToSeedConfig()),
	)
}

// ToSeedConfig converts SeedEnv to SeedConfig.
func (s SeedEnv) ToSeedConfig() SeedConfig {
	return NewSeedConfig().
		WithClients(s.Clients).
		WithAgents(s.Agents).
		WithPolicies(s.Policies).
		WithClaims(s.Claims).
		WithRegions(s.Regions).
		WithBatchSize(s.BatchSize).
		WithChildBatchSize(s.ChildBatchSize).
		WithRandomSeed(s.RandomSeed).
		WithPasswordCost(s.PasswordCost).
		WithPassword(s.Password)
}

// parseLogFormat parses a log format string.
func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
