// Package claims seeds claims against established policies, their status
// history and the payouts of paid claims.
package claims

import (
	"context"
	"log/slog"

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

// EligibleAfterMonths is how long a policy must have run before it can
// carry a claim.
const EligibleAfterMonths = 6

var statusChoice = sampling.MustChoice(
	sampling.Option[string]{Value: broker.ClaimPaid, Weight: 0.5},
	sampling.Option[string]{Value: broker.ClaimApproved, Weight: 0.25},
	sampling.Option[string]{Value: broker.ClaimReported, Weight: 0.15},
	sampling.Option[string]{Value: broker.ClaimRejected, Weight: 0.1},
)

var descriptions = []string{
	"Kolizja drogowa na skrzyżowaniu, uszkodzony przód pojazdu.",
	"Zalanie mieszkania przez sąsiada z góry.",
	"Kradzież roweru z piwnicy budynku.",
	"Uszkodzenie szyby czołowej przez kamień.",
	"Pożar w kuchni, zniszczone wyposażenie.",
	"Pobyt w szpitalu po złamaniu nogi.",
	"Leczenie stomatologiczne po urazie.",
	"Szkoda parkingowa, zarysowany bok pojazdu.",
	"Uszkodzenie dachu podczas wichury.",
	"Przepięcie w sieci, zniszczony sprzęt RTV.",
}

// Claims handles the claims step.
type Claims struct {
	rt       *handler.Runtime
	claims   persistence.ClaimStore
	policies persistence.PolicyStore
}

// NewClaims creates a new Claims handler.
func NewClaims(rt *handler.Runtime) *Claims {
	return &Claims{
		rt:       rt,
		claims:   persistence.NewClaimStore(rt.DB),
		policies: persistence.NewPolicyStore(rt.DB),
	}
}

// Execute tops claims up to the configured total. Only policies that
// started more than six months ago are eligible; with none the step
// completes without claims.
func (h *Claims) Execute(ctx context.Context, marker progress.Step) (int, error) {
	tracker := h.rt.Trackers.ForStep(progress.StepClaims)

	existing, err := h.claims.Count(ctx)
	if err != nil {
		return 0, err
	}
	missing := max(h.rt.Config.Claims()-int(existing), 0)

	var (
		eligible []broker.Policy
		statuses map[string]broker.Status
	)
	if missing > 0 {
		dict, err := h.rt.Dictionary(ctx)
		if err != nil {
			return 0, err
		}
		statuses, err = broker.Statuses(dict.ClaimStatus,
			broker.ClaimPaid, broker.ClaimApproved, broker.ClaimReported, broker.ClaimRejected)
		if err != nil {
			return 0, err
		}
		cutoff := h.rt.Today().AddDate(0, -EligibleAfterMonths, 0)
		eligible, err = h.policies.Find(ctx,
			query.WithOperator("start_date", query.OpLessThan, cutoff),
			query.WithOrderAsc("id"),
		)
		if err != nil {
			return 0, err
		}
		if len(eligible) == 0 {
			h.rt.Logger.Warn("no policies old enough for claims", slog.Time("cutoff", cutoff))
			missing = 0
		}
	}

	return handler.RootBatches(ctx, h.rt, tracker, marker, missing, func(tx *gorm.DB, b database.Batch) (int, error) {
		rows := make([]broker.Claim, 0, b.Size)
		for range b.Size {
			policy, err := sampling.PickOne(h.rt.Source, eligible)
			if err != nil {
				return 0, err
			}
			rows = append(rows, h.generate(policy, statuses[statusChoice.Pick(h.rt.Source)]))
		}
		created, err := h.claims.CreateAll(tx, rows)
		return len(created), err
	})
}

func (h *Claims) generate(p broker.Policy, status broker.Status) broker.Claim {
	src := h.rt.Source
	today := h.rt.Today()

	incident := sampling.DayBetween(src, p.StartDate, today)
	reported := sampling.DayBetween(src, incident, today)
	claimed := money.FromFloat(sampling.FloatBetween(src, 500, 50000))

	c := broker.Claim{
		Number:        h.rt.Counter.ClaimNumber(reported),
		PolicyID:      p.ID,
		StatusID:      status.ID,
		IncidentDate:  incident,
		ReportedDate:  reported,
		ClaimedAmount: claimed,
		Description:   h.rt.Faker.Sentence(descriptions),
		CreatedAt:     reported,
	}
	if status.Name == broker.ClaimApproved || status.Name == broker.ClaimPaid {
		factor := decimal.NewFromFloat(sampling.FloatBetween(src, 0.7, 1.0))
		c.ApprovedAmount = decimal.NewNullDecimal(money.Round(claimed.Mul(factor)))
	}
	return c
}

// withoutChildren selects claims after the marker's cursor that have no row
// in table, in id order.
func withoutChildren(ctx context.Context, store persistence.ClaimStore, marker progress.Step, table string, options ...query.Option) ([]broker.Claim, error) {
	options = append(options,
		query.WithOperator("id", query.OpGreaterThan, marker.Cursor()),
		query.WithoutChildren(table, "claim_id"),
		query.WithOrderAsc("id"),
	)
	return store.Find(ctx, options...)
}

func claimID(c broker.Claim) int64 { return c.ID }
