// Package progress records how far a seeding run has got: per-step
// completion markers and the run log.
package progress

import (
	"strings"
	"time"
)

// StepName identifies one seeding step. Child steps are named
// "{layer}.{child}".
type StepName string

// StepName values, in execution order.
const (
	StepReference             StepName = "reference"
	StepClients               StepName = "clients"
	StepClientAddresses       StepName = "clients.addresses"
	StepClientContacts        StepName = "clients.contacts"
	StepAgents                StepName = "agents"
	StepAgentPerformance      StepName = "agents.performance"
	StepAgentUsers            StepName = "agents.users"
	StepPolicies              StepName = "policies"
	StepPolicyStatusHistory   StepName = "policies.status_history"
	StepPolicyBeneficiaries   StepName = "policies.beneficiaries"
	StepPolicyInvoices        StepName = "policies.invoices"
	StepPolicyCommissions     StepName = "policies.commissions"
	StepPolicyRiskAssessments StepName = "policies.risk_assessments"
	StepClaims                StepName = "claims"
	StepClaimStatusHistory    StepName = "claims.status_history"
	StepClaimPayments         StepName = "claims.payments"
	StepPayments              StepName = "financials.payments"
)

// String returns the step name.
func (n StepName) String() string {
	return string(n)
}

// Layer returns the layer the step belongs to.
func (n StepName) Layer() string {
	layer, _, _ := strings.Cut(string(n), ".")
	return layer
}

// IsChild reports whether the step generates rows for existing parents.
func (n StepName) IsChild() bool {
	return strings.Contains(string(n), ".")
}

// Step is the persisted progress marker of one step. Cursor is the highest
// parent id a child step has processed.
type Step struct {
	name        StepName
	rows        int64
	cursor      int64
	completedAt *time.Time
}

// NewStep creates an empty marker.
func NewStep(name StepName) Step {
	return Step{name: name}
}

// ReconstructStep recreates a marker from persistence.
func ReconstructStep(name StepName, rows, cursor int64, completedAt *time.Time) Step {
	return Step{name: name, rows: rows, cursor: cursor, completedAt: completedAt}
}

// Name returns the step name.
func (s Step) Name() StepName { return s.name }

// Rows returns the rows inserted so far.
func (s Step) Rows() int64 { return s.rows }

// Cursor returns the last processed parent id.
func (s Step) Cursor() int64 { return s.cursor }

// CompletedAt returns when the step finished, or nil.
func (s Step) CompletedAt() *time.Time { return s.completedAt }

// IsComplete reports whether the step finished.
func (s Step) IsComplete() bool { return s.completedAt != nil }

// Advance adds inserted rows and moves the cursor forward.
func (s Step) Advance(rows int, cursor int64) Step {
	s.rows += int64(rows)
	if cursor > s.cursor {
		s.cursor = cursor
	}
	return s
}

// Complete marks the step finished at t.
func (s Step) Complete(t time.Time) Step {
	t = t.UTC()
	s.completedAt = &t
	return s
}
