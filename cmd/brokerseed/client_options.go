package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/helixml/brokerseed"
	"github.com/helixml/brokerseed/internal/config"
	"github.com/helixml/brokerseed/internal/log"
)

// openClient prepares the data directory and logger and opens a client
// over the configured database.
func openClient(cfg config.AppConfig) (*brokerseed.Client, *slog.Logger, error) {
	if cfg.IsSQLite() {
		if err := cfg.EnsureDataDir(); err != nil {
			return nil, nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	logger := log.Configure(cfg).Slog()
	attrs := append([]slog.Attr{slog.String("version", version)}, cfg.LogAttrs()...)
	logger.LogAttrs(context.Background(), slog.LevelInfo, "starting brokerseed", attrs...)

	client, err := brokerseed.New(
		brokerseed.WithDatabaseURL(cfg.DBURL()),
		brokerseed.WithMaxOpenConns(cfg.MaxOpenConns()),
		brokerseed.WithSeedConfig(cfg.Seed()),
		brokerseed.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create brokerseed client: %w", err)
	}
	return client, logger, nil
}

func closeClient(client *brokerseed.Client, logger *slog.Logger) {
	if err := client.Close(); err != nil {
		logger.Error("failed to close brokerseed client", slog.Any("error", err))
	}
}
