// Package financials seeds the premium payments of every policy.
package financials

import (
	"context"

	"github.com/helixml/brokerseed/application/handler"
	"github.com/helixml/brokerseed/domain/broker"
	"github.com/helixml/brokerseed/domain/money"
	"github.com/helixml/brokerseed/domain/progress"
	"github.com/helixml/brokerseed/domain/query"
	"github.com/helixml/brokerseed/domain/sampling"
	"github.com/helixml/brokerseed/infrastructure/persistence"
	"gorm.io/gorm"
)

// Payments handles the financials.payments step.
type Payments struct {
	rt       *handler.Runtime
	policies persistence.PolicyStore
	payments persistence.PaymentStore
}

// NewPayments creates a new Payments handler.
func NewPayments(rt *handler.Runtime) *Payments {
	return &Payments{
		rt:       rt,
		policies: persistence.NewPolicyStore(rt.DB),
		payments: persistence.NewPaymentStore(rt.DB),
	}
}

// terms are the reference rows a payment schedule needs.
type terms struct {
	methods  []broker.Lookup
	statuses map[string]broker.Lookup
}

// Execute writes the instalments of every policy without payments.
func (h *Payments) Execute(ctx context.Context, marker progress.Step) (int, error) {
	tracker := h.rt.Trackers.ForStep(progress.StepPayments)

	dict, err := h.rt.Dictionary(ctx)
	if err != nil {
		return 0, err
	}
	statuses, err := broker.Lookups(dict.PaymentStatus, broker.PaymentCompleted, broker.PaymentPending, broker.PaymentFailed)
	if err != nil {
		return 0, err
	}
	t := terms{methods: dict.PaymentMethods, statuses: statuses}

	parents, err := h.policies.Find(ctx,
		query.WithOperator("id", query.OpGreaterThan, marker.Cursor()),
		query.WithoutChildren("payments", "policy_id"),
		query.WithOrderAsc("id"),
	)
	if err != nil {
		return 0, err
	}

	return handler.ChildBatches(ctx, h.rt, tracker, marker, parents,
		func(p broker.Policy) int64 { return p.ID },
		func(p broker.Policy) ([]broker.Payment, error) {
			status, err := dict.PolicyStatusByID(p.StatusID)
			if err != nil {
				return nil, err
			}
			return h.generate(p, status.Flag, t)
		},
		func(tx *gorm.DB, rows []broker.Payment) (int, error) {
			created, err := h.payments.CreateAll(tx, rows)
			return len(created), err
		},
	)
}

// generate splits the premium over the policy's instalments and pays those
// already due. In-force policies have paid every one; for the others a
// leading 80 to 95 percent of the instalments completed and the rest are
// pending or failed.
func (h *Payments) generate(p broker.Policy, inForce bool, t terms) ([]broker.Payment, error) {
	src := h.rt.Source

	count := p.PaymentFrequency.Installments(p.StartDate, p.EndDate)
	amounts, err := money.Split(p.Premium, count)
	if err != nil {
		return nil, err
	}
	completed := count
	if !inForce {
		completed = int(float64(count) * sampling.FloatBetween(src, 0.8, 0.95))
	}

	dates := p.PaymentFrequency.Schedule(p.StartDate, p.EndDate, h.rt.Today())
	rows := make([]broker.Payment, 0, len(dates))
	for i, date := range dates {
		method, err := sampling.PickOne(src, t.methods)
		if err != nil {
			return nil, err
		}
		status := t.statuses[broker.PaymentCompleted]
		if i >= completed {
			status = t.statuses[broker.PaymentPending]
			if sampling.Chance(src, 0.5) {
				status = t.statuses[broker.PaymentFailed]
			}
		}
		rows = append(rows, broker.Payment{
			PolicyID:      p.ID,
			Amount:        amounts[i],
			PaymentDate:   date,
			MethodID:      method.ID,
			StatusID:      status.ID,
			TransactionID: h.rt.Counter.TransactionID(date),
		})
	}
	return rows, nil
}
