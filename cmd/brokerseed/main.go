// Package main is the entry point for the brokerseed CLI.
package main

import (
	"fmt"
	"os"

	"github.com/helixml/brokerseed/internal/config"
	"github.com/spf13/cobra"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brokerseed",
		Short: "Insurance brokerage demo data seeder",
		Long: `brokerseed fills an insurance brokerage database with realistic demo data:
clients, a four-level agent hierarchy, policies, claims and premium payments.
Interrupted runs resume where they stopped; repeated runs insert nothing.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(seedCmd())
	cmd.AddCommand(statsCmd())
	cmd.AddCommand(migrateCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from the .env file, environment variables
// and the seed profile, if one is named.
func loadConfig(envFile, profile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	if profile != "" {
		cfg, err = config.WithProfile(cfg, profile)
		if err != nil {
			return config.AppConfig{}, err
		}
	}
	return cfg, nil
}
