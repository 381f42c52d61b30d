package persistence

import (
	"context"
	"fmt"
	"path"

	"github.com/helixml/brokerseed/domain/broker"
	"github.com/helixml/brokerseed/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReferenceStore writes and reads the fixed lookup tables.
type ReferenceStore struct {
	db database.Database
}

// NewReferenceStore creates a new ReferenceStore.
func NewReferenceStore(db database.Database) ReferenceStore {
	return ReferenceStore{db: db}
}

// Seed inserts every reference row that is not already present, matching on
// name, and returns the number of rows inserted.
func (s ReferenceStore) Seed(tx *gorm.DB) (int, error) {
	var inserted int64
	insert := func(label string, rows any) error {
		res := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).Create(rows)
		if res.Error != nil {
			return fmt.Errorf("insert %s: %w", label, res.Error)
		}
		inserted += res.RowsAffected
		return nil
	}

	clientTypes := make([]ClientTypeModel, 0, len(broker.ClientTypeDefs()))
	for _, d := range broker.ClientTypeDefs() {
		clientTypes = append(clientTypes, ClientTypeModel{Name: d.Name, Description: d.Description, DiscountRate: d.DiscountRate})
	}
	if err := insert("client types", &clientTypes); err != nil {
		return 0, err
	}

	categories, n, err := seedCategories(tx)
	if err != nil {
		return 0, err
	}
	inserted += n

	policyTypes := make([]PolicyTypeModel, 0, len(broker.PolicyTypeDefs()))
	for _, d := range broker.PolicyTypeDefs() {
		cat, ok := categories[d.Category]
		if !ok {
			return 0, fmt.Errorf("%w: policy category %q", broker.ErrMissingReference, d.Category)
		}
		policyTypes = append(policyTypes, PolicyTypeModel{
			CategoryID:  cat.ID,
			Name:        d.Name,
			BasePremium: d.BasePremium,
			Description: d.Description,
			IsActive:    true,
		})
	}
	if err := insert("policy types", &policyTypes); err != nil {
		return 0, err
	}

	policyStatuses := make([]PolicyStatusModel, 0, len(broker.PolicyStatusDefs()))
	for _, d := range broker.PolicyStatusDefs() {
		policyStatuses = append(policyStatuses, PolicyStatusModel{Name: d.Name, Description: d.Description, IsActivePolicy: d.Flag})
	}
	if err := insert("policy statuses", &policyStatuses); err != nil {
		return 0, err
	}

	claimStatuses := make([]ClaimStatusModel, 0, len(broker.ClaimStatusDefs()))
	for _, d := range broker.ClaimStatusDefs() {
		claimStatuses = append(claimStatuses, ClaimStatusModel{Name: d.Name, Description: d.Description, IsFinal: d.Flag})
	}
	if err := insert("claim statuses", &claimStatuses); err != nil {
		return 0, err
	}

	riskLevels := make([]RiskLevelModel, 0, len(broker.RiskLevelDefs()))
	for _, d := range broker.RiskLevelDefs() {
		riskLevels = append(riskLevels, RiskLevelModel{Name: d.Name, PremiumMultiplier: d.Multiplier})
	}
	if err := insert("risk levels", &riskLevels); err != nil {
		return 0, err
	}

	methods := lookupRows[PaymentMethodModel](broker.PaymentMethodNames(), func(c LookupColumns) PaymentMethodModel { return PaymentMethodModel{c} })
	if err := insert("payment methods", &methods); err != nil {
		return 0, err
	}
	paymentStatuses := lookupRows[PaymentStatusModel](broker.PaymentStatusNames(), func(c LookupColumns) PaymentStatusModel { return PaymentStatusModel{c} })
	if err := insert("payment statuses", &paymentStatuses); err != nil {
		return 0, err
	}
	commissionStatuses := lookupRows[CommissionStatusModel](broker.CommissionStatusNames(), func(c LookupColumns) CommissionStatusModel { return CommissionStatusModel{c} })
	if err := insert("commission statuses", &commissionStatuses); err != nil {
		return 0, err
	}
	roles := lookupRows[RoleModel](broker.RoleNames(), func(c LookupColumns) RoleModel { return RoleModel{c} })
	if err := insert("roles", &roles); err != nil {
		return 0, err
	}

	return int(inserted), nil
}

func lookupRows[E any](names []string, wrap func(LookupColumns) E) []E {
	rows := make([]E, len(names))
	for i, n := range names {
		rows[i] = wrap(LookupColumns{Name: n})
	}
	return rows
}

// seedCategories inserts the category tree one node at a time so every child
// can point at its parent's generated id.
func seedCategories(tx *gorm.DB) (map[string]PolicyCategoryModel, int64, error) {
	byName := make(map[string]PolicyCategoryModel)
	var inserted int64
	for _, d := range broker.CategoryDefs() {
		row := PolicyCategoryModel{Name: d.Name, Level: 1, Path: d.Name}
		if d.Parent != "" {
			parent, ok := byName[d.Parent]
			if !ok {
				return nil, 0, fmt.Errorf("%w: policy category %q", broker.ErrMissingReference, d.Parent)
			}
			row.ParentID = &parent.ID
			row.Level = parent.Level + 1
			row.Path = path.Join(parent.Path, d.Name)
		}
		res := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).Create(&row)
		if res.Error != nil {
			return nil, 0, fmt.Errorf("insert policy category %s: %w", d.Name, res.Error)
		}
		inserted += res.RowsAffected

		var stored PolicyCategoryModel
		if err := tx.Where("name = ?", d.Name).First(&stored).Error; err != nil {
			return nil, 0, fmt.Errorf("find policy category %s: %w", d.Name, err)
		}
		byName[d.Name] = stored
	}
	return byName, inserted, nil
}

// Dictionary loads every reference table.
func (s ReferenceStore) Dictionary(ctx context.Context) (broker.Dictionary, error) {
	db := s.db.Session(ctx)
	var d broker.Dictionary

	var clientTypes []ClientTypeModel
	if err := db.Order("id").Find(&clientTypes).Error; err != nil {
		return d, fmt.Errorf("find client types: %w", err)
	}
	for _, m := range clientTypes {
		d.ClientTypes = append(d.ClientTypes, broker.ClientType{ID: m.ID, Name: m.Name, DiscountRate: m.DiscountRate})
	}

	var categories []PolicyCategoryModel
	if err := db.Order("id").Find(&categories).Error; err != nil {
		return d, fmt.Errorf("find policy categories: %w", err)
	}
	categoryNames := make(map[int64]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	var policyTypes []PolicyTypeModel
	if err := db.Order("id").Find(&policyTypes).Error; err != nil {
		return d, fmt.Errorf("find policy types: %w", err)
	}
	for _, m := range policyTypes {
		d.PolicyTypes = append(d.PolicyTypes, broker.PolicyType{
			ID:          m.ID,
			Name:        m.Name,
			CategoryID:  m.CategoryID,
			Category:    categoryNames[m.CategoryID],
			BasePremium: m.BasePremium,
			Active:      m.IsActive,
		})
	}

	var policyStatuses []PolicyStatusModel
	if err := db.Order("id").Find(&policyStatuses).Error; err != nil {
		return d, fmt.Errorf("find policy statuses: %w", err)
	}
	for _, m := range policyStatuses {
		d.PolicyStatuses = append(d.PolicyStatuses, broker.Status{ID: m.ID, Name: m.Name, Flag: m.IsActivePolicy})
	}

	var claimStatuses []ClaimStatusModel
	if err := db.Order("id").Find(&claimStatuses).Error; err != nil {
		return d, fmt.Errorf("find claim statuses: %w", err)
	}
	for _, m := range claimStatuses {
		d.ClaimStatuses = append(d.ClaimStatuses, broker.Status{ID: m.ID, Name: m.Name, Flag: m.IsFinal})
	}

	var riskLevels []RiskLevelModel
	if err := db.Order("id").Find(&riskLevels).Error; err != nil {
		return d, fmt.Errorf("find risk levels: %w", err)
	}
	for _, m := range riskLevels {
		d.RiskLevels = append(d.RiskLevels, broker.Lookup{ID: m.ID, Name: m.Name})
	}

	var err error
	if d.PaymentMethods, err = findLookups[PaymentMethodModel](db, "payment methods", func(m PaymentMethodModel) LookupColumns { return m.LookupColumns }); err != nil {
		return d, err
	}
	if d.PaymentStatuses, err = findLookups[PaymentStatusModel](db, "payment statuses", func(m PaymentStatusModel) LookupColumns { return m.LookupColumns }); err != nil {
		return d, err
	}
	if d.CommissionStatuses, err = findLookups[CommissionStatusModel](db, "commission statuses", func(m CommissionStatusModel) LookupColumns { return m.LookupColumns }); err != nil {
		return d, err
	}
	if d.Roles, err = findLookups[RoleModel](db, "roles", func(m RoleModel) LookupColumns { return m.LookupColumns }); err != nil {
		return d, err
	}
	return d, nil
}

func findLookups[E any](db *gorm.DB, label string, cols func(E) LookupColumns) ([]broker.Lookup, error) {
	var rows []E
	if err := db.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find %s: %w", label, err)
	}
	out := make([]broker.Lookup, len(rows))
	for i, r := range rows {
		c := cols(r)
		out[i] = broker.Lookup{ID: c.ID, Name: c.Name}
	}
	return out, nil
}
