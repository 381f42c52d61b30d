package policies

import (
	"context"
	"time"

	"github.com/helixml/brokerseed/application/handler"
	"github.com/helixml/brokerseed/domain/broker"
	"github.com/helixml/brokerseed/domain/progress"
	"github.com/helixml/brokerseed/domain/sampling"
	"github.com/helixml/brokerseed/infrastructure/persistence"
	"gorm.io/gorm"
)

// Audit trail reasons.
const (
	ReasonCreated   = "Polisa utworzona"
	ReasonExpired   = "Polisa wygasła"
	ReasonCancelled = "Rezygnacja klienta"
)

var amendmentReasons = []string{"Zmiana warunków", "Wniosek klienta", "Aktualizacja danych"}

// StatusHistory handles the policies.status_history step.
type StatusHistory struct {
	rt       *handler.Runtime
	policies persistence.PolicyStore
	history  persistence.PolicyHistoryStore
}

// NewStatusHistory creates a new StatusHistory handler.
func NewStatusHistory(rt *handler.Runtime) *StatusHistory {
	return &StatusHistory{
		rt:       rt,
		policies: persistence.NewPolicyStore(rt.DB),
		history:  persistence.NewPolicyHistoryStore(rt.DB),
	}
}

// Execute writes the audit trail of every policy without one.
func (h *StatusHistory) Execute(ctx context.Context, marker progress.Step) (int, error) {
	tracker := h.rt.Trackers.ForStep(progress.StepPolicyStatusHistory)

	dict, err := h.rt.Dictionary(ctx)
	if err != nil {
		return 0, err
	}
	active, err := dict.PolicyStatus(broker.PolicyActive)
	if err != nil {
		return 0, err
	}
	users, err := h.rt.UserIDs(ctx)
	if err != nil {
		return 0, err
	}
	parents, err := withoutChildren(ctx, h.policies, marker, "policy_status_history")
	if err != nil {
		return 0, err
	}

	return handler.ChildBatches(ctx, h.rt, tracker, marker, parents, policyID,
		func(p broker.Policy) ([]broker.PolicyStatusChange, error) {
			status, err := dict.PolicyStatusByID(p.StatusID)
			if err != nil {
				return nil, err
			}
			return h.generate(p, status, active, users), nil
		},
		func(tx *gorm.DB, rows []broker.PolicyStatusChange) (int, error) {
			created, err := h.history.CreateAll(tx, rows)
			return len(created), err
		},
	)
}

// generate opens every trail with the policy becoming active at its start.
// Expired policies then expire at their end date, other inactive ones move
// to their status before the end date, and some active ones get an
// amendment that keeps them active.
func (h *StatusHistory) generate(p broker.Policy, status, active broker.Status, users []int64) []broker.PolicyStatusChange {
	src := h.rt.Source
	now := h.rt.Now()

	rows := []broker.PolicyStatusChange{{
		PolicyID:    p.ID,
		NewStatusID: active.ID,
		ChangedAt:   p.StartDate,
		ChangedBy:   h.rt.PickUser(users),
		Reason:      ReasonCreated,
	}}
	change := func(at time.Time, next int64, reason string) {
		from := active.ID
		rows = append(rows, broker.PolicyStatusChange{
			PolicyID:    p.ID,
			OldStatusID: &from,
			NewStatusID: next,
			ChangedAt:   at,
			ChangedBy:   h.rt.PickUser(users),
			Reason:      reason,
		})
	}

	switch {
	case status.ID == active.ID:
		if sampling.Chance(src, 0.3) {
			reason, _ := sampling.PickOne(src, amendmentReasons)
			change(between(src, p.StartDate, now), active.ID, reason)
		}
	case status.Name == broker.PolicyExpired:
		change(p.EndDate, status.ID, ReasonExpired)
	default:
		until := p.EndDate
		if now.Before(until) {
			until = now
		}
		change(between(src, p.StartDate, until), status.ID, ReasonCancelled)
	}
	return rows
}

// between returns an instant strictly after from and no later than to,
// when there is room for one.
func between(src sampling.Source, from, to time.Time) time.Time {
	return sampling.DateBetween(src, from.Add(time.Second), to)
}
