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

var assessmentNotes = []string{
	"Standardowa ocena ryzyka bez zastrzeżeń.",
	"Klient z pozytywną historią szkodową.",
	"Wymagana dodatkowa dokumentacja przy odnowieniu.",
	"Podwyższone ryzyko ze względu na lokalizację.",
	"Ocena na podstawie ankiety medycznej.",
	"Zalecana inspekcja przedmiotu ubezpieczenia.",
}

// RiskAssessments handles the policies.risk_assessments step.
type RiskAssessments struct {
	rt          *handler.Runtime
	policies    persistence.PolicyStore
	assessments persistence.RiskAssessmentStore
}

// NewRiskAssessments creates a new RiskAssessments handler.
func NewRiskAssessments(rt *handler.Runtime) *RiskAssessments {
	return &RiskAssessments{
		rt:          rt,
		policies:    persistence.NewPolicyStore(rt.DB),
		assessments: persistence.NewRiskAssessmentStore(rt.DB),
	}
}

// Execute scores every policy without an assessment, in the week before it
// started.
func (h *RiskAssessments) Execute(ctx context.Context, marker progress.Step) (int, error) {
	tracker := h.rt.Trackers.ForStep(progress.StepPolicyRiskAssessments)

	dict, err := h.rt.Dictionary(ctx)
	if err != nil {
		return 0, err
	}
	users, err := h.rt.UserIDs(ctx)
	if err != nil {
		return 0, err
	}
	parents, err := withoutChildren(ctx, h.policies, marker, "risk_assessments")
	if err != nil {
		return 0, err
	}

	src := h.rt.Source
	return handler.ChildBatches(ctx, h.rt, tracker, marker, parents, policyID,
		func(p broker.Policy) ([]broker.RiskAssessment, error) {
			level, err := sampling.PickOne(src, dict.RiskLevels)
			if err != nil {
				return nil, err
			}
			return []broker.RiskAssessment{{
				PolicyID:    p.ID,
				RiskLevelID: level.ID,
				Date:        p.StartDate.AddDate(0, 0, -sampling.IntBetween(src, 1, 7)),
				AssessedBy:  h.rt.PickUser(users),
				Score:       money.FromFloat(sampling.FloatBetween(src, 0, 100)),
				Notes:       h.rt.Faker.Sentence(assessmentNotes),
			}}, nil
		},
		func(tx *gorm.DB, rows []broker.RiskAssessment) (int, error) {
			created, err := h.assessments.CreateAll(tx, rows)
			return len(created), err
		},
	)
}
