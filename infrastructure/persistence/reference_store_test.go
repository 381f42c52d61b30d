package persistence

import (
	"context"
	"testing"

	"github.com/helixml/brokerseed/domain/broker"
	"github.com/helixml/brokerseed/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestReferenceStore_SeedIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	store := NewReferenceStore(db)

	seed := func() int {
		n, err := database.WithTransactionResult(ctx, db, func(tx *gorm.DB) (int, error) {
			return store.Seed(tx)
		})
		require.NoError(t, err)
		return n
	}

	first := seed()
	assert.Positive(t, first)
	assert.Zero(t, seed())

	var types int64
	require.NoError(t, db.Session(ctx).Model(&PolicyTypeModel{}).Count(&types).Error)
	assert.Equal(t, int64(len(broker.PolicyTypeDefs())), types)
}

func TestReferenceStore_CategoryTree(t *testing.T) {
	db := newReferenceDB(t)
	ctx := context.Background()

	var leaf PolicyCategoryModel
	require.NoError(t, db.Session(ctx).Where("name = ?", "Liability (OC)").First(&leaf).Error)
	assert.Equal(t, 3, leaf.Level)
	assert.Equal(t, "Insurance/Auto/Liability (OC)", leaf.Path)
	require.NotNil(t, leaf.ParentID)

	var parent PolicyCategoryModel
	require.NoError(t, db.Session(ctx).First(&parent, *leaf.ParentID).Error)
	assert.Equal(t, broker.CategoryAuto, parent.Name)

	var root PolicyCategoryModel
	require.NoError(t, db.Session(ctx).Where("parent_id IS NULL").First(&root).Error)
	assert.Equal(t, broker.CategoryRoot, root.Name)
	assert.Equal(t, 1, root.Level)
}

func TestReferenceStore_Dictionary(t *testing.T) {
	db := newReferenceDB(t)

	d, err := NewReferenceStore(db).Dictionary(context.Background())
	require.NoError(t, err)

	assert.Len(t, d.ClientTypes, 4)
	assert.Len(t, d.PolicyStatuses, 6)
	assert.Len(t, d.ClaimStatuses, 7)
	assert.Len(t, d.PaymentMethods, 5)
	assert.Len(t, d.PaymentStatuses, 4)
	assert.Len(t, d.CommissionStatuses, 3)
	assert.Len(t, d.RiskLevels, 5)
	assert.Len(t, d.Roles, 5)

	vip, err := d.ClientType(broker.ClientTypeVIP)
	require.NoError(t, err)
	assert.Equal(t, "15", vip.DiscountRate.String())

	active, err := d.PolicyStatus(broker.PolicyActive)
	require.NoError(t, err)
	assert.True(t, active.Flag)

	paid, err := d.ClaimStatus(broker.ClaimPaid)
	require.NoError(t, err)
	assert.True(t, paid.Flag)

	var life int
	for _, pt := range d.ActivePolicyTypes() {
		if pt.Category == broker.CategoryLife {
			life++
		}
	}
	assert.Equal(t, 3, life)
}
