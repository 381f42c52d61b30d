package agents

import (
	"context"
	"time"

	"github.com/helixml/brokerseed/application/handler"
	"github.com/helixml/brokerseed/domain/broker"
	"github.com/helixml/brokerseed/domain/hierarchy"
	"github.com/helixml/brokerseed/domain/money"
	"github.com/helixml/brokerseed/domain/progress"
	"github.com/helixml/brokerseed/domain/sampling"
	"github.com/helixml/brokerseed/infrastructure/persistence"
	"gorm.io/gorm"
)

// PerformanceMonths is how many past months get a performance row.
const PerformanceMonths = 24

// Performance handles the agents.performance step.
type Performance struct {
	rt          *handler.Runtime
	agents      persistence.AgentStore
	performance persistence.PerformanceStore
}

// NewPerformance creates a new Performance handler.
func NewPerformance(rt *handler.Runtime) *Performance {
	return &Performance{
		rt:          rt,
		agents:      persistence.NewAgentStore(rt.DB),
		performance: persistence.NewPerformanceStore(rt.DB),
	}
}

// Execute writes monthly figures for every agent without any.
func (h *Performance) Execute(ctx context.Context, marker progress.Step) (int, error) {
	tracker := h.rt.Trackers.ForStep(progress.StepAgentPerformance)

	parents, err := withoutChildren(ctx, h.agents, marker, "agent_performance")
	if err != nil {
		return 0, err
	}

	return handler.ChildBatches(ctx, h.rt, tracker, marker, parents, agentID,
		func(a broker.Agent) ([]broker.AgentPerformance, error) { return h.generate(a), nil },
		func(tx *gorm.DB, rows []broker.AgentPerformance) (int, error) {
			created, err := h.performance.CreateAll(tx, rows)
			return len(created), err
		},
	)
}

func (h *Performance) generate(a broker.Agent) []broker.AgentPerformance {
	src := h.rt.Source
	today := h.rt.Today()
	month := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	rows := make([]broker.AgentPerformance, 0, PerformanceMonths)
	for i := PerformanceMonths; i >= 1; i-- {
		at := month.AddDate(0, -i, 0)
		sold := policiesSold(hierarchy.Level(a.Level), src)
		premium := money.FromFloat(float64(sold) * sampling.FloatBetween(src, 800, 3000))
		rows = append(rows, broker.AgentPerformance{
			AgentID:           a.ID,
			Year:              at.Year(),
			Month:             int(at.Month()),
			PoliciesSold:      sold,
			TotalPremium:      premium,
			TotalCommission:   money.Percent(premium, a.CommissionRate),
			SatisfactionScore: money.FromFloat(sampling.FloatBetween(src, 3.5, 5.0)),
		})
	}
	return rows
}

func policiesSold(level hierarchy.Level, src sampling.Source) int {
	switch level {
	case hierarchy.LevelRoot:
		return 0
	case hierarchy.LevelRegional, hierarchy.LevelTeamLead:
		return sampling.IntBetween(src, 1, 5)
	default:
		return sampling.IntBetween(src, 3, 15)
	}
}
