package policies

import (
	"context"

	"github.com/helixml/brokerseed/application/handler"
	"github.com/helixml/brokerseed/domain/broker"
	"github.com/helixml/brokerseed/domain/money"
	"github.com/helixml/brokerseed/domain/progress"
	"github.com/helixml/brokerseed/domain/sampling"
	"github.com/helixml/brokerseed/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var relationships = []string{"spouse", "child", "parent", "sibling"}

// whole is the total share split among a policy's beneficiaries.
var whole = decimal.NewFromInt(100)

// Beneficiaries handles the policies.beneficiaries step.
type Beneficiaries struct {
	rt            *handler.Runtime
	policies      persistence.PolicyStore
	beneficiaries persistence.BeneficiaryStore
}

// NewBeneficiaries creates a new Beneficiaries handler.
func NewBeneficiaries(rt *handler.Runtime) *Beneficiaries {
	return &Beneficiaries{
		rt:            rt,
		policies:      persistence.NewPolicyStore(rt.DB),
		beneficiaries: persistence.NewBeneficiaryStore(rt.DB),
	}
}

// Execute names beneficiaries on a share of the life policies. Policies of
// other categories never get any; the step cursor keeps them from being
// revisited.
func (h *Beneficiaries) Execute(ctx context.Context, marker progress.Step) (int, error) {
	tracker := h.rt.Trackers.ForStep(progress.StepPolicyBeneficiaries)

	dict, err := h.rt.Dictionary(ctx)
	if err != nil {
		return 0, err
	}
	parents, err := withoutChildren(ctx, h.policies, marker, "policy_beneficiaries")
	if err != nil {
		return 0, err
	}

	return handler.ChildBatches(ctx, h.rt, tracker, marker, parents, policyID,
		func(p broker.Policy) ([]broker.Beneficiary, error) {
			pt, err := dict.PolicyTypeByID(p.TypeID)
			if err != nil {
				return nil, err
			}
			if pt.Category != broker.CategoryLife || !sampling.Chance(h.rt.Source, 0.6) {
				return nil, nil
			}
			return h.generate(p)
		},
		func(tx *gorm.DB, rows []broker.Beneficiary) (int, error) {
			created, err := h.beneficiaries.CreateAll(tx, rows)
			return len(created), err
		},
	)
}

func (h *Beneficiaries) generate(p broker.Policy) ([]broker.Beneficiary, error) {
	src := h.rt.Source

	n := sampling.IntBetween(src, 1, 3)
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = sampling.FloatBetween(src, 1, 3)
	}
	shares, err := money.Allocate(whole, weights)
	if err != nil {
		return nil, err
	}

	rows := make([]broker.Beneficiary, 0, n)
	for _, share := range shares {
		person := h.rt.Faker.Person()
		relationship, err := sampling.PickOne(src, relationships)
		if err != nil {
			return nil, err
		}
		rows = append(rows, broker.Beneficiary{
			PolicyID:     p.ID,
			FirstName:    person.FirstName,
			LastName:     person.LastName,
			Relationship: relationship,
			Share:        share,
		})
	}
	return rows, nil
}
