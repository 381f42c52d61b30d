// Package policies seeds policies and the records that hang off them:
// status history, beneficiaries, invoices, commissions and risk assessments.
package policies

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/helixml/brokerseed/application/handler"
	"github.com/helixml/brokerseed/domain/broker"
	"github.com/helixml/brokerseed/domain/money"
	"github.com/helixml/brokerseed/domain/progress"
	"github.com/helixml/brokerseed/domain/query"
	"github.com/helixml/brokerseed/domain/sampling"
	"github.com/helixml/brokerseed/infrastructure/persistence"
	"github.com/helixml/brokerseed/internal/database"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Agent pool categories.
const (
	poolLeaf    = "leaf"
	poolManager = "manager"
)

var agentWeights = map[string]float64{poolLeaf: 0.8, poolManager: 0.2}

var statusChoice = sampling.MustChoice(
	sampling.Option[string]{Value: broker.PolicyActive, Weight: 0.7},
	sampling.Option[string]{Value: broker.PolicyExpired, Weight: 0.2},
	sampling.Option[string]{Value: broker.PolicyCancelled, Weight: 0.1},
)

// Policies handles the policies step.
type Policies struct {
	rt       *handler.Runtime
	policies persistence.PolicyStore
	clients  persistence.ClientStore
	agents   persistence.AgentStore
}

// NewPolicies creates a new Policies handler.
func NewPolicies(rt *handler.Runtime) *Policies {
	return &Policies{
		rt:       rt,
		policies: persistence.NewPolicyStore(rt.DB),
		clients:  persistence.NewClientStore(rt.DB),
		agents:   persistence.NewAgentStore(rt.DB),
	}
}

// pools holds everything a policy is drawn from.
type pools struct {
	clients  *sampling.Weighted[broker.Client]
	agents   *sampling.Weighted[broker.Agent]
	types    []broker.PolicyType
	statuses map[string]broker.Status
	discount map[int64]decimal.Decimal
}

// Execute tops policies up to the configured total.
func (h *Policies) Execute(ctx context.Context, marker progress.Step) (int, error) {
	tracker := h.rt.Trackers.ForStep(progress.StepPolicies)

	existing, err := h.policies.Count(ctx)
	if err != nil {
		return 0, err
	}
	missing := max(h.rt.Config.Policies()-int(existing), 0)

	var p pools
	if missing > 0 {
		if p, err = h.pools(ctx); err != nil {
			return 0, err
		}
	}

	return handler.RootBatches(ctx, h.rt, tracker, marker, missing, func(tx *gorm.DB, b database.Batch) (int, error) {
		rows := make([]broker.Policy, 0, b.Size)
		for range b.Size {
			policy, err := h.generate(p)
			if err != nil {
				return 0, err
			}
			rows = append(rows, policy)
		}
		created, err := h.policies.CreateAll(tx, rows)
		return len(created), err
	})
}

func (h *Policies) pools(ctx context.Context) (pools, error) {
	dict, err := h.rt.Dictionary(ctx)
	if err != nil {
		return pools{}, err
	}
	statuses, err := broker.Statuses(dict.PolicyStatus, broker.PolicyActive, broker.PolicyExpired, broker.PolicyCancelled)
	if err != nil {
		return pools{}, err
	}
	types := dict.ActivePolicyTypes()
	if len(types) == 0 {
		return pools{}, fmt.Errorf("policy types: %w", sampling.ErrEmptyPool)
	}

	clientPool, err := sampling.NewWeighted[broker.Client](h.rt.Config.ClientWeights())
	if err != nil {
		return pools{}, err
	}
	discount := make(map[int64]decimal.Decimal, len(dict.ClientTypes))
	for _, ct := range dict.ClientTypes {
		discount[ct.ID] = ct.DiscountRate
	}
	clients, err := h.clients.Find(ctx, query.WithActive(true), query.WithOrderAsc("id"))
	if err != nil {
		return pools{}, err
	}
	unweighted := map[string]int{}
	for _, c := range clients {
		ct, err := dict.ClientTypeByID(c.TypeID)
		if err != nil {
			return pools{}, err
		}
		if err := clientPool.Add(ct.Name, c); err != nil {
			unweighted[ct.Name]++
		}
	}
	for _, name := range slices.Sorted(maps.Keys(unweighted)) {
		h.rt.Logger.Warn("client type has no sampling weight, its clients get no policies",
			slog.String("client_type", name),
			slog.Int("clients", unweighted[name]),
		)
	}
	if clientPool.Len() == 0 {
		return pools{}, fmt.Errorf("active clients: %w", sampling.ErrEmptyPool)
	}

	agentPool, err := h.agentPool(ctx)
	if err != nil {
		return pools{}, err
	}

	return pools{
		clients:  clientPool,
		agents:   agentPool,
		types:    types,
		statuses: statuses,
		discount: discount,
	}, nil
}

// agentPool splits the active agents that have a manager into leaves and
// managers, a manager being an agent with at least one subordinate.
func (h *Policies) agentPool(ctx context.Context) (*sampling.Weighted[broker.Agent], error) {
	all, err := h.agents.Find(ctx, query.WithOrderAsc("id"))
	if err != nil {
		return nil, err
	}
	hasReports := make(map[int64]bool, len(all))
	for _, a := range all {
		if a.ManagerID != nil {
			hasReports[*a.ManagerID] = true
		}
	}

	pool, err := sampling.NewWeighted[broker.Agent](agentWeights)
	if err != nil {
		return nil, err
	}
	for _, a := range all {
		if !a.Active || a.IsRoot() {
			continue
		}
		category := poolLeaf
		if hasReports[a.ID] {
			category = poolManager
		}
		if err := pool.Add(category, a); err != nil {
			return nil, err
		}
	}
	if pool.Len() == 0 {
		return nil, fmt.Errorf("selling agents: %w", sampling.ErrEmptyPool)
	}
	return pool, nil
}

func (h *Policies) generate(p pools) (broker.Policy, error) {
	src := h.rt.Source

	client, err := p.clients.Pick(src)
	if err != nil {
		return broker.Policy{}, err
	}
	agent, err := p.agents.Pick(src)
	if err != nil {
		return broker.Policy{}, err
	}
	policyType, err := sampling.PickOne(src, p.types)
	if err != nil {
		return broker.Policy{}, err
	}
	frequency, err := sampling.PickOne(src, broker.SoldFrequencies)
	if err != nil {
		return broker.Policy{}, err
	}
	status := p.statuses[statusChoice.Pick(src)]

	start := h.startDate(status.Name)
	premium := Premium(policyType.BasePremium, sampling.FloatBetween(src, 0.8, 1.3), p.discount[client.TypeID])
	return broker.Policy{
		Number:           h.rt.Counter.PolicyNumber(start),
		ClientID:         client.ID,
		TypeID:           policyType.ID,
		AgentID:          agent.ID,
		StatusID:         status.ID,
		StartDate:        start,
		EndDate:          start.AddDate(1, 0, 0),
		Premium:          premium,
		SumInsured:       premium.Mul(decimal.NewFromInt(int64(sampling.IntBetween(src, 20, 100)))),
		PaymentFrequency: frequency,
		CreatedAt:        start,
		UpdatedAt:        start,
	}, nil
}

// startDate places active policies within the last year so they are still
// in force, expired ones 5 to 1 years back and cancelled ones within the
// last 3 years.
func (h *Policies) startDate(status string) time.Time {
	today := h.rt.Today()
	switch status {
	case broker.PolicyExpired:
		return sampling.DayBetween(h.rt.Source, today.AddDate(-5, 0, 0), today.AddDate(-1, 0, 0))
	case broker.PolicyCancelled:
		return sampling.DayBetween(h.rt.Source, today.AddDate(-3, 0, 0), today)
	default:
		return sampling.DayBetween(h.rt.Source, today.AddDate(0, 0, -364), today)
	}
}

// Premium returns base × factor reduced by discount percent, rounded to cents.
func Premium(base decimal.Decimal, factor float64, discount decimal.Decimal) decimal.Decimal {
	keep := decimal.NewFromInt(1).Sub(discount.Div(decimal.NewFromInt(100)))
	return money.Round(base.Mul(decimal.NewFromFloat(factor)).Mul(keep))
}

// withoutChildren selects policies after the marker's cursor that have no
// row in table, in id order.
func withoutChildren(ctx context.Context, store persistence.PolicyStore, marker progress.Step, table string) ([]broker.Policy, error) {
	return store.Find(ctx,
		query.WithOperator("id", query.OpGreaterThan, marker.Cursor()),
		query.WithoutChildren(table, "policy_id"),
		query.WithOrderAsc("id"),
	)
}

func policyID(p broker.Policy) int64 { return p.ID }
