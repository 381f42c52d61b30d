// Package agents seeds the sales hierarchy, its monthly performance and the
// agents' login accounts.
package agents

import (
	"context"
	"log/slog"

	"github.com/helixml/brokerseed/application/handler"
	"github.com/helixml/brokerseed/domain/broker"
	"github.com/helixml/brokerseed/domain/hierarchy"
	"github.com/helixml/brokerseed/domain/progress"
	"github.com/helixml/brokerseed/domain/query"
	"github.com/helixml/brokerseed/domain/sampling"
	"github.com/helixml/brokerseed/infrastructure/persistence"
	"github.com/helixml/brokerseed/internal/database"
	"github.com/helixml/brokerseed/internal/fake"
	"gorm.io/gorm"
)

// MailDomain is the company domain of every agent mailbox.
const MailDomain = "brokersystem.pl"

// The root of every tree.
const (
	RootFirstName = "Jan"
	RootLastName  = "Kowalski"
)

// Tree handles the agents step. The whole tree is written in one
// transaction, level by level, so each level can reference the generated
// ids of the one above.
type Tree struct {
	rt     *handler.Runtime
	agents persistence.AgentStore
}

// NewTree creates a new Tree handler.
func NewTree(rt *handler.Runtime) *Tree {
	return &Tree{rt: rt, agents: persistence.NewAgentStore(rt.DB)}
}

// Execute plans and inserts the agent tree.
func (h *Tree) Execute(ctx context.Context, marker progress.Step) (int, error) {
	tracker := h.rt.Trackers.ForStep(progress.StepAgents)

	existing, err := h.agents.Count(ctx)
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		h.rt.Logger.Warn("agents already present, keeping the existing tree", slog.Int64("agents", existing))
		tracker.Skip(ctx, "agents already present")
		return 0, handler.Skip(ctx, h.rt, marker)
	}

	plan, err := hierarchy.NewPlan(h.rt.Config.Agents(), h.rt.Config.Regions(), h.rt.Source)
	if err != nil {
		return 0, err
	}
	tracker.SetTotal(ctx, plan.Size())
	emails := fake.NewEmails(MailDomain)

	return database.WithTransactionResult(ctx, h.rt.DB, func(tx *gorm.DB) (int, error) {
		var managers []broker.Agent
		total := 0
		for level := hierarchy.LevelRoot; level <= hierarchy.LevelAgent; level++ {
			parents := plan.Parents(level)
			rows := make([]broker.Agent, 0, len(parents))
			for _, parent := range parents {
				var managerID *int64
				if parent >= 0 {
					id := managers[parent].ID
					managerID = &id
				}
				rows = append(rows, h.generate(level, managerID, emails))
			}
			created, err := h.agents.CreateAll(tx, rows)
			if err != nil {
				return 0, err
			}
			managers = created
			total += len(created)
			tracker.SetCurrent(ctx, total, level.String())
		}
		return total, h.rt.Checkpoint(tx, marker.Advance(total, 0).Complete(h.rt.Now()))
	})
}

func (h *Tree) generate(level hierarchy.Level, managerID *int64, emails *fake.Emails) broker.Agent {
	src, f := h.rt.Source, h.rt.Faker
	today := h.rt.Today()

	first, last, active := RootFirstName, RootLastName, true
	if level != hierarchy.LevelRoot {
		p := f.Person()
		first, last = p.FirstName, p.LastName
		active = sampling.Chance(src, 0.95)
	}
	return broker.Agent{
		FirstName:      first,
		LastName:       last,
		Email:          emails.Next(first, last),
		Phone:          f.Phone(600, 799),
		ManagerID:      managerID,
		HireDate:       sampling.DayBetween(src, today.AddDate(-10, 0, 0), today.AddDate(0, -1, 0)),
		CommissionRate: hierarchy.Rate(level, src),
		Active:         active,
		Level:          int(level),
	}
}

// withoutChildren selects agents after the marker's cursor that have no row
// in table, in id order.
func withoutChildren(ctx context.Context, store persistence.AgentStore, marker progress.Step, table string) ([]broker.Agent, error) {
	return store.Find(ctx,
		query.WithOperator("id", query.OpGreaterThan, marker.Cursor()),
		query.WithoutChildren(table, "agent_id"),
		query.WithOrderAsc("id"),
	)
}

func agentID(a broker.Agent) int64 { return a.ID }
