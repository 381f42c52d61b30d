package claims

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

// Audit trail notes.
const (
	NoteReported    = "Szkoda zgłoszona przez klienta"
	NoteUnderReview = "Rozpoczęto weryfikację szkody"
	NoteApproved    = "Szkoda zatwierdzona"
	NoteRejected    = "Szkoda odrzucona - brak podstaw do wypłaty"
	NotePaid        = "Odszkodowanie wypłacone"
)

// StatusHistory handles the claims.status_history step.
type StatusHistory struct {
	rt      *handler.Runtime
	claims  persistence.ClaimStore
	history persistence.ClaimHistoryStore
}

// NewStatusHistory creates a new StatusHistory handler.
func NewStatusHistory(rt *handler.Runtime) *StatusHistory {
	return &StatusHistory{
		rt:      rt,
		claims:  persistence.NewClaimStore(rt.DB),
		history: persistence.NewClaimHistoryStore(rt.DB),
	}
}

// Execute writes the audit trail of every claim without one.
func (h *StatusHistory) Execute(ctx context.Context, marker progress.Step) (int, error) {
	tracker := h.rt.Trackers.ForStep(progress.StepClaimStatusHistory)

	dict, err := h.rt.Dictionary(ctx)
	if err != nil {
		return 0, err
	}
	statuses, err := broker.Statuses(dict.ClaimStatus,
		broker.ClaimReported, broker.ClaimUnderReview, broker.ClaimApproved, broker.ClaimRejected, broker.ClaimPaid)
	if err != nil {
		return 0, err
	}
	users, err := h.rt.UserIDs(ctx)
	if err != nil {
		return 0, err
	}
	parents, err := withoutChildren(ctx, h.claims, marker, "claim_status_history")
	if err != nil {
		return 0, err
	}

	return handler.ChildBatches(ctx, h.rt, tracker, marker, parents, claimID,
		func(c broker.Claim) ([]broker.ClaimStatusChange, error) {
			status, err := dict.ClaimStatusByID(c.StatusID)
			if err != nil {
				return nil, err
			}
			return h.generate(c, status.Name, statuses, users), nil
		},
		func(tx *gorm.DB, rows []broker.ClaimStatusChange) (int, error) {
			created, err := h.history.CreateAll(tx, rows)
			return len(created), err
		},
	)
}

// transition is one hop of the claim workflow.
type transition struct {
	to       string
	min, max int
	note     string
}

// workflow returns the hops that take a claim from reported to status,
// with the day range each hop takes after the previous one.
func workflow(status string) []transition {
	review := transition{broker.ClaimUnderReview, 1, 3, NoteUnderReview}
	switch status {
	case broker.ClaimRejected:
		return []transition{review, {broker.ClaimRejected, 5, 15, NoteRejected}}
	case broker.ClaimApproved:
		return []transition{review, {broker.ClaimApproved, 5, 15, NoteApproved}}
	case broker.ClaimPaid:
		return []transition{review, {broker.ClaimApproved, 5, 15, NoteApproved}, {broker.ClaimPaid, 3, 7, NotePaid}}
	default:
		return nil
	}
}

// generate walks the workflow from the reported date. Every timestamp is
// clamped to now and then pushed at least a second past the previous one.
func (h *StatusHistory) generate(c broker.Claim, status string, statuses map[string]broker.Status, users []int64) []broker.ClaimStatusChange {
	src := h.rt.Source
	now := h.rt.Now()

	at := c.ReportedDate
	rows := []broker.ClaimStatusChange{{
		ClaimID:     c.ID,
		NewStatusID: statuses[broker.ClaimReported].ID,
		ChangedAt:   at,
		ChangedBy:   h.rt.PickUser(users),
		Notes:       NoteReported,
	}}
	prev := statuses[broker.ClaimReported].ID
	for _, t := range workflow(status) {
		next := at.AddDate(0, 0, sampling.IntBetween(src, t.min, t.max))
		if next.After(now) {
			next = now
		}
		if !next.After(at) {
			next = at.Add(time.Second)
		}
		at = next

		from := prev
		rows = append(rows, broker.ClaimStatusChange{
			ClaimID:     c.ID,
			OldStatusID: &from,
			NewStatusID: statuses[t.to].ID,
			ChangedAt:   at,
			ChangedBy:   h.rt.PickUser(users),
			Notes:       t.note,
		})
		prev = statuses[t.to].ID
	}
	return rows
}
