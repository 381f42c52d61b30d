// Package persistence provides database storage implementations.
package persistence

import (
	"fmt"
	"strings"

	"github.com/helixml/brokerseed/internal/database"
	"gorm.io/gorm"
)

// AutoMigrate runs GORM auto migration for all models.
func AutoMigrate(db database.Database) error {
	if err := db.GORM().AutoMigrate(allModels()...); err != nil {
		return err
	}
	return postMigrate(db)
}

// partialIndexes enforce the one-current-address and one-primary-contact
// rules. GORM's index tags cannot express a bare boolean predicate on both
// dialects, so they are created here.
var partialIndexes = []struct {
	name, table, column, predicate string
}{
	{"ux_client_addresses_current", "client_addresses", "client_id", "is_current"},
	{"ux_client_contacts_primary", "client_contacts", "client_id", "is_primary"},
}

// foreignKeys are created on PostgreSQL only; SQLite does not enforce
// foreign keys unless asked to per connection.
var foreignKeys = []struct {
	table, name, definition string
}{
	{"policy_categories", "fk_policy_categories_parent", "FOREIGN KEY (parent_id) REFERENCES policy_categories(id)"},
	{"policy_types", "fk_policy_types_category", "FOREIGN KEY (category_id) REFERENCES policy_categories(id)"},
	{"clients", "fk_clients_client_type", "FOREIGN KEY (client_type_id) REFERENCES client_types(id)"},
	{"client_addresses", "fk_client_addresses_client", "FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE"},
	{"client_contacts", "fk_client_contacts_client", "FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE"},
	{"agents", "fk_agents_manager", "FOREIGN KEY (manager_id) REFERENCES agents(id)"},
	{"agent_performance", "fk_agent_performance_agent", "FOREIGN KEY (agent_id) REFERENCES agents(id) ON DELETE CASCADE"},
	{"users", "fk_users_agent", "FOREIGN KEY (agent_id) REFERENCES agents(id)"},
	{"user_roles", "fk_user_roles_user", "FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE"},
	{"user_roles", "fk_user_roles_role", "FOREIGN KEY (role_id) REFERENCES roles(id)"},
	{"policies", "fk_policies_client", "FOREIGN KEY (client_id) REFERENCES clients(id)"},
	{"policies", "fk_policies_policy_type", "FOREIGN KEY (policy_type_id) REFERENCES policy_types(id)"},
	{"policies", "fk_policies_agent", "FOREIGN KEY (agent_id) REFERENCES agents(id)"},
	{"policies", "fk_policies_status", "FOREIGN KEY (status_id) REFERENCES policy_statuses(id)"},
	{"policy_status_history", "fk_policy_status_history_policy", "FOREIGN KEY (policy_id) REFERENCES policies(id) ON DELETE CASCADE"},
	{"policy_status_history", "fk_policy_status_history_user", "FOREIGN KEY (changed_by_user_id) REFERENCES users(id)"},
	{"policy_beneficiaries", "fk_policy_beneficiaries_policy", "FOREIGN KEY (policy_id) REFERENCES policies(id) ON DELETE CASCADE"},
	{"invoices", "fk_invoices_policy", "FOREIGN KEY (policy_id) REFERENCES policies(id) ON DELETE CASCADE"},
	{"commissions", "fk_commissions_policy", "FOREIGN KEY (policy_id) REFERENCES policies(id) ON DELETE CASCADE"},
	{"commissions", "fk_commissions_agent", "FOREIGN KEY (agent_id) REFERENCES agents(id)"},
	{"commissions", "fk_commissions_status", "FOREIGN KEY (commission_status_id) REFERENCES commission_statuses(id)"},
	{"risk_assessments", "fk_risk_assessments_policy", "FOREIGN KEY (policy_id) REFERENCES policies(id) ON DELETE CASCADE"},
	{"risk_assessments", "fk_risk_assessments_level", "FOREIGN KEY (risk_level_id) REFERENCES risk_levels(id)"},
	{"claims", "fk_claims_policy", "FOREIGN KEY (policy_id) REFERENCES policies(id)"},
	{"claims", "fk_claims_status", "FOREIGN KEY (status_id) REFERENCES claim_statuses(id)"},
	{"claim_status_history", "fk_claim_status_history_claim", "FOREIGN KEY (claim_id) REFERENCES claims(id) ON DELETE CASCADE"},
	{"claim_payments", "fk_claim_payments_claim", "FOREIGN KEY (claim_id) REFERENCES claims(id) ON DELETE CASCADE"},
	{"claim_payments", "fk_claim_payments_method", "FOREIGN KEY (payment_method_id) REFERENCES payment_methods(id)"},
	{"payments", "fk_payments_policy", "FOREIGN KEY (policy_id) REFERENCES policies(id) ON DELETE CASCADE"},
	{"payments", "fk_payments_method", "FOREIGN KEY (payment_method_id) REFERENCES payment_methods(id)"},
	{"payments", "fk_payments_status", "FOREIGN KEY (payment_status_id) REFERENCES payment_statuses(id)"},
}

// postMigrate creates the partial unique indexes on every dialect and the
// foreign keys on PostgreSQL. Idempotent: safe to run on every startup.
func postMigrate(db database.Database) error {
	gdb := db.GORM()

	for _, idx := range partialIndexes {
		if err := gdb.Exec(fmt.Sprintf(
			`CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s (%s) WHERE %s`,
			idx.name, idx.table, idx.column, idx.predicate,
		)).Error; err != nil {
			return fmt.Errorf("create index %s: %w", idx.name, err)
		}
	}

	if !db.IsPostgres() {
		return nil
	}

	for _, c := range foreignKeys {
		if err := gdb.Exec(fmt.Sprintf(
			`ALTER TABLE %s DROP CONSTRAINT IF EXISTS %s`, c.table, c.name,
		)).Error; err != nil {
			return fmt.Errorf("drop constraint %s.%s: %w", c.table, c.name, err)
		}
		if err := gdb.Exec(fmt.Sprintf(
			`ALTER TABLE %s ADD CONSTRAINT %s %s`, c.table, c.name, c.definition,
		)).Error; err != nil {
			return fmt.Errorf("create constraint %s.%s: %w", c.table, c.name, err)
		}
	}
	return nil
}

// allModels returns every GORM model that AutoMigrate manages, parents
// before children.
func allModels() []interface{} {
	return []interface{}{
		&ClientTypeModel{},
		&PolicyCategoryModel{},
		&PolicyTypeModel{},
		&PolicyStatusModel{},
		&ClaimStatusModel{},
		&PaymentMethodModel{},
		&PaymentStatusModel{},
		&CommissionStatusModel{},
		&RiskLevelModel{},
		&RoleModel{},
		&ClientModel{},
		&ClientAddressModel{},
		&ClientContactModel{},
		&AgentModel{},
		&AgentPerformanceModel{},
		&UserModel{},
		&UserRoleModel{},
		&PolicyModel{},
		&PolicyStatusHistoryModel{},
		&PolicyBeneficiaryModel{},
		&InvoiceModel{},
		&CommissionModel{},
		&RiskAssessmentModel{},
		&ClaimModel{},
		&ClaimStatusHistoryModel{},
		&ClaimPaymentModel{},
		&PaymentModel{},
		&SeedStepModel{},
		&SeedSequenceModel{},
		&SeedRunModel{},
	}
}

// TableNames returns the managed tables, parents before children.
func TableNames(db database.Database) ([]string, error) {
	gdb := db.GORM()
	names := make([]string, 0, len(allModels()))
	for _, model := range allModels() {
		stmt := &gorm.Statement{DB: gdb}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parse model schema: %w", err)
		}
		names = append(names, stmt.Table)
	}
	return names, nil
}

// ValidateSchema verifies every GORM model field has a corresponding column
// in the database. Returns an error listing any missing columns.
func ValidateSchema(db database.Database) error {
	gdb := db.GORM()
	migrator := gdb.Migrator()

	var missing []string
	for _, model := range allModels() {
		stmt := &gorm.Statement{DB: gdb}
		if err := stmt.Parse(model); err != nil {
			return fmt.Errorf("parse model schema: %w", err)
		}

		columnTypes, err := migrator.ColumnTypes(model)
		if err != nil {
			return fmt.Errorf("get column types for %s: %w", stmt.Table, err)
		}

		actual := make(map[string]bool, len(columnTypes))
		for _, ct := range columnTypes {
			actual[ct.Name()] = true
		}

		for _, field := range stmt.Schema.Fields {
			if field.DBName == "" || field.DBName == "-" {
				continue
			}
			if !actual[field.DBName] {
				missing = append(missing, stmt.Table+"."+field.DBName)
			}
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("schema validation failed, missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
