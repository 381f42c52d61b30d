package main

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/helixml/brokerseed/domain/broker"
	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	var (
		envFile string
		runs    int
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print row counts of the seeded tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(envFile, "")
			if err != nil {
				return err
			}
			client, logger, err := openClient(cfg)
			if err != nil {
				return err
			}
			defer closeClient(client, logger)

			ctx := context.Background()
			stats, err := client.Stats(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printStats(out, stats)

			if runs <= 0 {
				return nil
			}
			latest, err := client.Runs(ctx, runs)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "runs:")
			for _, r := range latest {
				fmt.Fprintf(out, "  %s  %-9s  %s  seed %d  %s\n",
					r.ID(), r.State(), r.StartedAt().Format("2006-01-02 15:04:05"), r.Seed(), r.Error())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().IntVar(&runs, "runs", 5, "Number of recent runs to list")

	return cmd
}

func printStats(w io.Writer, s broker.Stats) {
	fmt.Fprintf(w, "clients:        %d\n", s.Clients())
	for _, name := range slices.Sorted(maps.Keys(s.ClientsByType)) {
		fmt.Fprintf(w, "  %-12s  %d\n", name, s.ClientsByType[name])
	}
	fmt.Fprintf(w, "addresses:      %d\n", s.Addresses)
	fmt.Fprintf(w, "contacts:       %d\n", s.Contacts)
	fmt.Fprintf(w, "agents:         %d\n", s.Agents)
	fmt.Fprintf(w, "users:          %d\n", s.Users)
	fmt.Fprintf(w, "policies:       %d (%d active)\n", s.Policies, s.ActivePolicies)
	fmt.Fprintf(w, "invoices:       %d\n", s.Invoices)
	fmt.Fprintf(w, "commissions:    %d\n", s.Commissions)
	fmt.Fprintf(w, "claims:         %d\n", s.Claims)
	fmt.Fprintf(w, "claim payments: %d\n", s.ClaimPayments)
	fmt.Fprintf(w, "payments:       %d\n", s.Payments)
}
