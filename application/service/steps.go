package service

import (
	"github.com/helixml/brokerseed/application/handler"
	"github.com/helixml/brokerseed/application/handler/agents"
	"github.com/helixml/brokerseed/application/handler/claims"
	"github.com/helixml/brokerseed/application/handler/clients"
	"github.com/helixml/brokerseed/application/handler/financials"
	"github.com/helixml/brokerseed/application/handler/policies"
	"github.com/helixml/brokerseed/application/handler/reference"
	"github.com/helixml/brokerseed/domain/progress"
)

// NewRegistry registers every seeding step in execution order. Layers run
// in the order their first step was registered.
func NewRegistry(rt *handler.Runtime) *handler.Registry {
	r := handler.NewRegistry()

	r.Register(progress.StepReference, reference.NewSeed(rt))

	r.Register(progress.StepClients, clients.NewClients(rt))
	r.Register(progress.StepClientAddresses, clients.NewAddresses(rt))
	r.Register(progress.StepClientContacts, clients.NewContacts(rt))

	r.Register(progress.StepAgents, agents.NewTree(rt))
	r.Register(progress.StepAgentPerformance, agents.NewPerformance(rt))
	r.Register(progress.StepAgentUsers, agents.NewUsers(rt))

	r.Register(progress.StepPolicies, policies.NewPolicies(rt))
	r.Register(progress.StepPolicyStatusHistory, policies.NewStatusHistory(rt))
	r.Register(progress.StepPolicyBeneficiaries, policies.NewBeneficiaries(rt))
	r.Register(progress.StepPolicyInvoices, policies.NewInvoices(rt))
	r.Register(progress.StepPolicyCommissions, policies.NewCommissions(rt))
	r.Register(progress.StepPolicyRiskAssessments, policies.NewRiskAssessments(rt))

	r.Register(progress.StepClaims, claims.NewClaims(rt))
	r.Register(progress.StepClaimStatusHistory, claims.NewStatusHistory(rt))
	r.Register(progress.StepClaimPayments, claims.NewPayments(rt))

	r.Register(progress.StepPayments, financials.NewPayments(rt))

	return r
}
