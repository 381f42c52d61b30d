package brokerseed_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/helixml/brokerseed"
	"github.com/helixml/brokerseed/domain/progress"
	"github.com/helixml/brokerseed/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func smallSeed() config.SeedConfig {
	return config.NewSeedConfig().
		WithClients(20).
		WithAgents(36).
		WithPolicies(30).
		WithClaims(10).
		WithRandomSeed(1).
		WithPasswordCost(bcrypt.MinCost)
}

func TestNew_RequiresDatabase(t *testing.T) {
	_, err := brokerseed.New()
	assert.ErrorIs(t, err, brokerseed.ErrNoDatabase)
}

func TestNew_RejectsInvalidSeedConfig(t *testing.T) {
	_, err := brokerseed.New(
		brokerseed.WithSQLite(filepath.Join(t.TempDir(), "test.db")),
		brokerseed.WithSeedConfig(config.NewSeedConfig().WithPolicies(10).WithClients(0)),
	)
	assert.ErrorIs(t, err, config.ErrInvalidSeedConfig)
}

func TestNew_WithSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	client, err := brokerseed.New(brokerseed.WithSQLite(dbPath))
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, client.Close())
	}()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)

	stats, err := client.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Clients())
}

func TestClient_Close_Idempotent(t *testing.T) {
	client, err := brokerseed.New(brokerseed.WithSQLite(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)

	assert.NoError(t, client.Close())
	assert.ErrorIs(t, client.Close(), brokerseed.ErrClientClosed)

	_, err = client.Seed(context.Background(), false)
	assert.ErrorIs(t, err, brokerseed.ErrClientClosed)
}

func TestClient_Seed(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	client, err := brokerseed.New(
		brokerseed.WithDatabaseURL("sqlite:///"+filepath.Join(t.TempDir(), "test.db")),
		brokerseed.WithSeedConfig(smallSeed()),
		brokerseed.WithClock(func() time.Time { return now }),
	)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	summary, err := client.Seed(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, int64(20), summary.Stats.Clients())
	assert.Equal(t, int64(36), summary.Stats.Agents)
	assert.Equal(t, int64(30), summary.Stats.Policies)
	assert.Equal(t, int64(10), summary.Stats.Claims)

	again, err := client.Seed(ctx, false)
	require.NoError(t, err)
	assert.Zero(t, again.Inserted())

	runs, err := client.Runs(ctx, 5)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	ids := make([]string, len(runs))
	for i, r := range runs {
		ids[i] = r.ID()
		assert.Equal(t, progress.RunCompleted, r.State())
	}
	assert.ElementsMatch(t, []string{summary.RunID, again.RunID}, ids)
}
