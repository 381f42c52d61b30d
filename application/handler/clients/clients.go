// Package clients seeds policyholders with their addresses and contacts.
package clients

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
	"gorm.io/gorm"
)

// Target is the number of clients wanted for one client type.
type Target struct {
	Type  string
	Count int
}

// Split divides total clients into 75% B2C, 15% B2B and 7.5% VIP, each
// rounded down, with Corporate taking the rest.
func Split(total int) []Target {
	b2c := total * 75 / 100
	b2b := total * 15 / 100
	vip := total * 75 / 1000
	return []Target{
		{Type: broker.ClientTypeB2C, Count: b2c},
		{Type: broker.ClientTypeB2B, Count: b2b},
		{Type: broker.ClientTypeVIP, Count: vip},
		{Type: broker.ClientTypeCorporate, Count: total - b2c - b2b - vip},
	}
}

// Clients handles the clients step. It tops every client type up to its
// share of the configured total.
type Clients struct {
	rt      *handler.Runtime
	clients persistence.ClientStore
}

// NewClients creates a new Clients handler.
func NewClients(rt *handler.Runtime) *Clients {
	return &Clients{rt: rt, clients: persistence.NewClientStore(rt.DB)}
}

// Execute inserts the missing clients.
func (h *Clients) Execute(ctx context.Context, marker progress.Step) (int, error) {
	tracker := h.rt.Trackers.ForStep(progress.StepClients)

	dict, err := h.rt.Dictionary(ctx)
	if err != nil {
		return 0, err
	}
	existing, err := h.clients.CountByType(ctx)
	if err != nil {
		return 0, err
	}

	var plan []broker.ClientType
	for _, t := range Split(h.rt.Config.Clients()) {
		ct, err := dict.ClientType(t.Type)
		if err != nil {
			return 0, err
		}
		missing := t.Count - int(existing[ct.ID])
		for range max(missing, 0) {
			plan = append(plan, ct)
		}
	}
	if len(plan) < h.rt.Config.Clients() {
		h.rt.Logger.Debug("topping up clients", slog.Int("missing", len(plan)))
	}

	return handler.RootBatches(ctx, h.rt, tracker, marker, len(plan), func(tx *gorm.DB, b database.Batch) (int, error) {
		rows := make([]broker.Client, 0, b.Size)
		for _, ct := range plan[b.Offset : b.Offset+b.Size] {
			rows = append(rows, h.generate(ct))
		}
		created, err := h.clients.CreateAll(tx, rows)
		return len(created), err
	})
}

func (h *Clients) generate(ct broker.ClientType) broker.Client {
	src, f := h.rt.Source, h.rt.Faker
	today := h.rt.Today()

	c := broker.Client{TypeID: ct.ID}
	if broker.IsPersonType(ct.Name) {
		p := f.Person()
		dob := sampling.DayBetween(src, today.AddDate(-70, 0, 0), today.AddDate(-18, 0, 0))
		c.FirstName = &p.FirstName
		c.LastName = &p.LastName
		c.DateOfBirth = &dob
		c.TaxID = f.PESEL(dob, p.Female)
		c.RegistrationDate = sampling.DayBetween(src, dob.AddDate(18, 0, 0), today)
		c.Active = sampling.Chance(src, 0.95)
		c.RiskScore = money.FromFloat(sampling.FloatBetween(src, 10, 90))
	} else {
		name := f.CompanyName()
		c.CompanyName = &name
		c.TaxID = f.NIP()
		c.RegistrationDate = sampling.DayBetween(src, today.AddDate(-10, 0, 0), today)
		c.Active = sampling.Chance(src, 0.97)
		c.RiskScore = money.FromFloat(sampling.FloatBetween(src, 15, 85))
	}
	c.CreatedAt = c.RegistrationDate
	c.UpdatedAt = c.RegistrationDate
	return c
}

// withoutChildren selects clients after the marker's cursor that have no
// row in table, in id order.
func withoutChildren(ctx context.Context, store persistence.ClientStore, marker progress.Step, table string) ([]broker.Client, error) {
	return store.Find(ctx,
		query.WithOperator("id", query.OpGreaterThan, marker.Cursor()),
		query.WithoutChildren(table, "client_id"),
		query.WithOrderAsc("id"),
	)
}

func clientID(c broker.Client) int64 { return c.ID }
