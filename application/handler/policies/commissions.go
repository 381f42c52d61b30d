package policies

import (
	"context"
	"fmt"

	"github.com/helixml/brokerseed/application/handler"
	"github.com/helixml/brokerseed/domain/broker"
	"github.com/helixml/brokerseed/domain/money"
	"github.com/helixml/brokerseed/domain/progress"
	"github.com/helixml/brokerseed/domain/sampling"
	"github.com/helixml/brokerseed/infrastructure/persistence"
	"gorm.io/gorm"
)

// Commissions handles the policies.commissions step.
type Commissions struct {
	rt          *handler.Runtime
	policies    persistence.PolicyStore
	agents      persistence.AgentStore
	commissions persistence.CommissionStore
}

// NewCommissions creates a new Commissions handler.
func NewCommissions(rt *handler.Runtime) *Commissions {
	return &Commissions{
		rt:          rt,
		policies:    persistence.NewPolicyStore(rt.DB),
		agents:      persistence.NewAgentStore(rt.DB),
		commissions: persistence.NewCommissionStore(rt.DB),
	}
}

// Execute pays the selling agent of every policy without a commission at
// the agent's rate.
func (h *Commissions) Execute(ctx context.Context, marker progress.Step) (int, error) {
	tracker := h.rt.Trackers.ForStep(progress.StepPolicyCommissions)

	dict, err := h.rt.Dictionary(ctx)
	if err != nil {
		return 0, err
	}
	statuses, err := broker.Lookups(dict.CommissionStatus, broker.CommissionPaid, broker.CommissionPending)
	if err != nil {
		return 0, err
	}
	agents, err := h.agents.Find(ctx)
	if err != nil {
		return 0, err
	}
	byID := make(map[int64]broker.Agent, len(agents))
	for _, a := range agents {
		byID[a.ID] = a
	}
	parents, err := withoutChildren(ctx, h.policies, marker, "commissions")
	if err != nil {
		return 0, err
	}

	return handler.ChildBatches(ctx, h.rt, tracker, marker, parents, policyID,
		func(p broker.Policy) ([]broker.Commission, error) {
			agent, ok := byID[p.AgentID]
			if !ok {
				return nil, fmt.Errorf("policy %s: agent %d not found", p.Number, p.AgentID)
			}
			return []broker.Commission{h.generate(p, agent, statuses)}, nil
		},
		func(tx *gorm.DB, rows []broker.Commission) (int, error) {
			created, err := h.commissions.CreateAll(tx, rows)
			return len(created), err
		},
	)
}

// generate pays 70% of commissions 30 to 90 days after the policy starts.
// A payment date still in the future leaves the commission pending.
func (h *Commissions) generate(p broker.Policy, agent broker.Agent, statuses map[string]broker.Lookup) broker.Commission {
	c := broker.Commission{
		PolicyID: p.ID,
		AgentID:  agent.ID,
		Rate:     agent.CommissionRate,
		Amount:   money.Percent(p.Premium, agent.CommissionRate),
		StatusID: statuses[broker.CommissionPending].ID,
	}
	if !sampling.Chance(h.rt.Source, 0.7) {
		return c
	}
	paid := p.StartDate.AddDate(0, 0, sampling.IntBetween(h.rt.Source, 30, 90))
	if paid.After(h.rt.Today()) {
		return c
	}
	c.PaymentDate = &paid
	c.StatusID = statuses[broker.CommissionPaid].ID
	return c
}

