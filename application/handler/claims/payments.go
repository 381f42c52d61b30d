package claims

import (
	"context"
	"fmt"
	"time"

	"github.com/helixml/brokerseed/application/handler"
	"github.com/helixml/brokerseed/domain/broker"
	"github.com/helixml/brokerseed/domain/money"
	"github.com/helixml/brokerseed/domain/progress"
	"github.com/helixml/brokerseed/domain/query"
	"github.com/helixml/brokerseed/domain/sampling"
	"github.com/helixml/brokerseed/infrastructure/persistence"
	"gorm.io/gorm"
)

// Payments handles the claims.payments step.
type Payments struct {
	rt       *handler.Runtime
	claims   persistence.ClaimStore
	payments persistence.ClaimPaymentStore
}

// NewPayments creates a new Payments handler.
func NewPayments(rt *handler.Runtime) *Payments {
	return &Payments{
		rt:       rt,
		claims:   persistence.NewClaimStore(rt.DB),
		payments: persistence.NewClaimPaymentStore(rt.DB),
	}
}

// Execute pays out every paid claim without payments by bank transfer,
// mostly in one sum and otherwise in two or three instalments.
func (h *Payments) Execute(ctx context.Context, marker progress.Step) (int, error) {
	tracker := h.rt.Trackers.ForStep(progress.StepClaimPayments)

	dict, err := h.rt.Dictionary(ctx)
	if err != nil {
		return 0, err
	}
	paid, err := dict.ClaimStatus(broker.ClaimPaid)
	if err != nil {
		return 0, err
	}
	method, err := dict.PaymentMethod(broker.MethodBankTransfer)
	if err != nil {
		return 0, err
	}
	parents, err := withoutChildren(ctx, h.claims, marker, "claim_payments", query.WithCondition("status_id", paid.ID))
	if err != nil {
		return 0, err
	}

	return handler.ChildBatches(ctx, h.rt, tracker, marker, parents, claimID,
		func(c broker.Claim) ([]broker.ClaimPayment, error) { return h.generate(c, method.ID) },
		func(tx *gorm.DB, rows []broker.ClaimPayment) (int, error) {
			created, err := h.payments.CreateAll(tx, rows)
			return len(created), err
		},
	)
}

func (h *Payments) generate(c broker.Claim, methodID int64) ([]broker.ClaimPayment, error) {
	if !c.ApprovedAmount.Valid {
		return nil, fmt.Errorf("claim %s is paid without an approved amount", c.Number)
	}
	src := h.rt.Source
	today := h.rt.Today()
	day := func(lo, hi int) time.Time {
		d := c.ReportedDate.AddDate(0, 0, sampling.IntBetween(src, lo, hi))
		if d.After(today) {
			return today
		}
		return d
	}

	if sampling.Chance(src, 0.7) {
		date := day(10, 30)
		return []broker.ClaimPayment{{
			ClaimID:         c.ID,
			Amount:          c.ApprovedAmount.Decimal,
			PaymentDate:     date,
			MethodID:        methodID,
			ReferenceNumber: h.rt.Counter.TransactionID(date),
		}}, nil
	}

	parts, err := money.Split(c.ApprovedAmount.Decimal, sampling.IntBetween(src, 2, 3))
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, len(parts))
	for i := range parts {
		dates[i] = day(10+15*i, 20+15*i)
	}
	reference := h.rt.Counter.TransactionID(dates[0])

	rows := make([]broker.ClaimPayment, 0, len(parts))
	for i, amount := range parts {
		rows = append(rows, broker.ClaimPayment{
			ClaimID:         c.ID,
			Amount:          amount,
			PaymentDate:     dates[i],
			MethodID:        methodID,
			ReferenceNumber: fmt.Sprintf("%s/%d", reference, i+1),
		})
	}
	return rows, nil
}
