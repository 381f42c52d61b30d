package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file.
// If path is empty, it loads from ".env" in the current directory.
// If the file does not exist, it silently returns nil (not an error).
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	return godotenv.Load(path)
}

// LoadConfig loads configuration from a .env file (optional), environment
// variables and, when one is named, a YAML seed profile.
// Later sources override earlier ones.
func LoadConfig(envPath string) (AppConfig, error) {
	if err := LoadDotEnv(envPath); err != nil {
		return AppConfig{}, err
	}

	envCfg, err := LoadFromEnv()
	if err != nil {
		return AppConfig{}, err
	}

	return WithProfile(envCfg.ToAppConfig(), envCfg.Seed.Profile)
}

// WithProfile overlays the YAML profile at path onto cfg.
// An empty path returns cfg unchanged.
func WithProfile(cfg AppConfig, path string) (AppConfig, error) {
	if path == "" {
		return cfg, nil
	}
	profile, err := LoadProfile(path)
	if err != nil {
		return AppConfig{}, err
	}
	return cfg.Apply(
		WithProfilePath(path),
		WithSeedConfig(profile.Apply(cfg.Seed())),
	), nil
}
