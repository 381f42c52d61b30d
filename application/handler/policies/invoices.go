package policies

import (
	"context"

	"github.com/helixml/brokerseed/application/handler"
	"github.com/helixml/brokerseed/domain/broker"
	"github.com/helixml/brokerseed/domain/money"
	"github.com/helixml/brokerseed/domain/progress"
	"github.com/helixml/brokerseed/domain/sampling"
	"github.com/helixml/brokerseed/infrastructure/persistence"
	"gorm.io/gorm"
)

// PaymentTermDays is the time between an invoice's issue and due dates.
const PaymentTermDays = 14

// Invoices handles the policies.invoices step.
type Invoices struct {
	rt       *handler.Runtime
	policies persistence.PolicyStore
	invoices persistence.InvoiceStore
}

// NewInvoices creates a new Invoices handler.
func NewInvoices(rt *handler.Runtime) *Invoices {
	return &Invoices{
		rt:       rt,
		policies: persistence.NewPolicyStore(rt.DB),
		invoices: persistence.NewInvoiceStore(rt.DB),
	}
}

// Execute bills the premium of every policy without an invoice.
func (h *Invoices) Execute(ctx context.Context, marker progress.Step) (int, error) {
	tracker := h.rt.Trackers.ForStep(progress.StepPolicyInvoices)

	parents, err := withoutChildren(ctx, h.policies, marker, "invoices")
	if err != nil {
		return 0, err
	}

	return handler.ChildBatches(ctx, h.rt, tracker, marker, parents, policyID,
		func(p broker.Policy) ([]broker.Invoice, error) {
			vat := money.VAT(p.Premium)
			return []broker.Invoice{{
				Number:    h.rt.Counter.InvoiceNumber(p.StartDate),
				PolicyID:  p.ID,
				IssueDate: p.StartDate,
				DueDate:   p.StartDate.AddDate(0, 0, PaymentTermDays),
				Net:       p.Premium,
				VAT:       vat,
				Gross:     p.Premium.Add(vat),
				Paid:      sampling.Chance(h.rt.Source, 0.85),
			}}, nil
		},
		func(tx *gorm.DB, rows []broker.Invoice) (int, error) {
			created, err := h.invoices.CreateAll(tx, rows)
			return len(created), err
		},
	)
}
