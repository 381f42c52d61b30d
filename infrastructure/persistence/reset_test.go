package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReset_EmptiesTablesAndRestartsIDs(t *testing.T) {
	db := newReferenceDB(t)
	ctx := context.Background()

	client := func() *ClientModel {
		return &ClientModel{
			ClientTypeID:     1,
			TaxID:            "526-025-02-74",
			RegistrationDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			IsActive:         true,
			RiskScore:        decimal.NewFromInt(40),
		}
	}
	for range 3 {
		require.NoError(t, db.Session(ctx).Create(client()).Error)
	}

	require.NoError(t, Reset(ctx, db))

	var clients, types int64
	require.NoError(t, db.Session(ctx).Model(&ClientModel{}).Count(&clients).Error)
	require.NoError(t, db.Session(ctx).Model(&ClientTypeModel{}).Count(&types).Error)
	assert.Zero(t, clients)
	assert.Zero(t, types)

	fresh := client()
	require.NoError(t, db.Session(ctx).Create(fresh).Error)
	assert.Equal(t, int64(1), fresh.ID)
}
