package persistence

import (
	"github.com/helixml/brokerseed/domain/broker"
	"github.com/helixml/brokerseed/domain/query"
	"github.com/helixml/brokerseed/internal/database"
)

// PolicyStore persists policies.
type PolicyStore struct {
	database.Repository[broker.Policy, PolicyModel]
}

// NewPolicyStore creates a new PolicyStore.
func NewPolicyStore(db database.Database) PolicyStore {
	return PolicyStore{
		Repository: database.NewRepository[broker.Policy, PolicyModel](db, PolicyMapper{}, "policies"),
	}
}

// WithActiveStatus keeps policies whose status is an in-force status.
func WithActiveStatus() query.Option {
	return query.WithWhere("status_id IN (SELECT id FROM policy_statuses WHERE is_active_policy = ?)", true)
}

// PolicyHistoryStore persists policy status transitions.
type PolicyHistoryStore struct {
	database.Repository[broker.PolicyStatusChange, PolicyStatusHistoryModel]
}

// NewPolicyHistoryStore creates a new PolicyHistoryStore.
func NewPolicyHistoryStore(db database.Database) PolicyHistoryStore {
	return PolicyHistoryStore{
		Repository: database.NewRepository[broker.PolicyStatusChange, PolicyStatusHistoryModel](db, PolicyHistoryMapper{}, "policy status history"),
	}
}

// BeneficiaryStore persists policy beneficiaries.
type BeneficiaryStore struct {
	database.Repository[broker.Beneficiary, PolicyBeneficiaryModel]
}

// NewBeneficiaryStore creates a new BeneficiaryStore.
func NewBeneficiaryStore(db database.Database) BeneficiaryStore {
	return BeneficiaryStore{
		Repository: database.NewRepository[broker.Beneficiary, PolicyBeneficiaryModel](db, BeneficiaryMapper{}, "policy beneficiaries"),
	}
}

// InvoiceStore persists invoices.
type InvoiceStore struct {
	database.Repository[broker.Invoice, InvoiceModel]
}

// NewInvoiceStore creates a new InvoiceStore.
func NewInvoiceStore(db database.Database) InvoiceStore {
	return InvoiceStore{
		Repository: database.NewRepository[broker.Invoice, InvoiceModel](db, InvoiceMapper{}, "invoices"),
	}
}

// CommissionStore persists agent commissions.
type CommissionStore struct {
	database.Repository[broker.Commission, CommissionModel]
}

// NewCommissionStore creates a new CommissionStore.
func NewCommissionStore(db database.Database) CommissionStore {
	return CommissionStore{
		Repository: database.NewRepository[broker.Commission, CommissionModel](db, CommissionMapper{}, "commissions"),
	}
}

// RiskAssessmentStore persists risk assessments.
type RiskAssessmentStore struct {
	database.Repository[broker.RiskAssessment, RiskAssessmentModel]
}

// NewRiskAssessmentStore creates a new RiskAssessmentStore.
func NewRiskAssessmentStore(db database.Database) RiskAssessmentStore {
	return RiskAssessmentStore{
		Repository: database.NewRepository[broker.RiskAssessment, RiskAssessmentModel](db, RiskAssessmentMapper{}, "risk assessments"),
	}
}
