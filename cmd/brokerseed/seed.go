package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/helixml/brokerseed/internal/config"
	"github.com/spf13/cobra"
)

// seedFlags are the command line overrides of the seed configuration.
type seedFlags struct {
	envFile  string
	profile  string
	reset    bool
	clients  int
	agents   int
	policies int
	claims   int
	seed     uint64
}

func seedCmd() *cobra.Command {
	var f seedFlags

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the database",
		Long: `Seed the database layer by layer.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Seed profile (SEED_PROFILE or --profile)
  5. Command line flags

Environment variables:
  DATA_DIR                 Data directory (default: ~/.brokerseed)
  DB_URL                   Database URL (default: sqlite:///{data_dir}/brokerseed.db)
  DB_MAX_OPEN_CONNS        PostgreSQL pool size (default: 10)
  LOG_LEVEL                Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT               Log format: pretty, json (default: pretty)

  SEED_CLIENTS             Clients (default: 2000)
  SEED_AGENTS              Agents (default: 100)
  SEED_POLICIES            Policies (default: 5000)
  SEED_CLAIMS              Claims (default: 800)
  SEED_REGIONS             Regional managers (default: 5)
  SEED_BATCH_SIZE          Root rows per transaction (default: 500)
  SEED_CHILD_BATCH_SIZE    Dependent rows per transaction (default: 1000)
  SEED_RANDOM_SEED         Fixed random seed, 0 for clock-derived (default: 0)
  SEED_PASSWORD_COST       bcrypt cost of user passwords (default: 10)
  SEED_PASSWORD            Demo password of every user (default: Password123!)
  SEED_PROFILE             YAML seed profile`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&f.profile, "profile", "", "Path to a YAML seed profile")
	cmd.Flags().BoolVar(&f.reset, "reset", false, "Empty every seeded table before seeding")
	cmd.Flags().IntVar(&f.clients, "clients", 0, "Number of clients")
	cmd.Flags().IntVar(&f.agents, "agents", 0, "Number of agents")
	cmd.Flags().IntVar(&f.policies, "policies", 0, "Number of policies")
	cmd.Flags().IntVar(&f.claims, "claims", 0, "Number of claims")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "Random seed for a reproducible run")

	return cmd
}

func runSeed(cmd *cobra.Command, f seedFlags) error {
	cfg, err := loadConfig(f.envFile, f.profile)
	if err != nil {
		return err
	}
	cfg = applySeedOverrides(cmd, cfg, f)

	client, logger, err := openClient(cfg)
	if err != nil {
		return err
	}
	defer closeClient(client, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := client.Seed(ctx, f.reset)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run %s (seed %d) inserted %d rows in %s\n",
		summary.RunID, summary.Seed, summary.Inserted(), summary.Elapsed.Round(time.Millisecond))
	for _, r := range summary.Steps {
		if r.Skipped {
			fmt.Fprintf(out, "  %-28s skipped\n", r.Step)
			continue
		}
		fmt.Fprintf(out, "  %-28s %8d\n", r.Step, r.Inserted)
	}
	printStats(out, summary.Stats)
	return nil
}

// applySeedOverrides applies the flags the user set on top of cfg.
func applySeedOverrides(cmd *cobra.Command, cfg config.AppConfig, f seedFlags) config.AppConfig {
	seed := cfg.Seed()
	flags := cmd.Flags()

	if flags.Changed("clients") {
		seed = seed.WithClients(f.clients)
	}
	if flags.Changed("agents") {
		seed = seed.WithAgents(f.agents)
	}
	if flags.Changed("policies") {
		seed = seed.WithPolicies(f.policies)
	}
	if flags.Changed("claims") {
		seed = seed.WithClaims(f.claims)
	}
	if flags.Changed("seed") {
		seed = seed.WithRandomSeed(f.seed)
	}
	return cfg.Apply(config.WithSeedConfig(seed))
}
