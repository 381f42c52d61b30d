package clients

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

// Contacts handles the clients.contacts step.
type Contacts struct {
	rt       *handler.Runtime
	clients  persistence.ClientStore
	contacts persistence.ContactStore
}

// NewContacts creates a new Contacts handler.
func NewContacts(rt *handler.Runtime) *Contacts {
	return &Contacts{
		rt:       rt,
		clients:  persistence.NewClientStore(rt.DB),
		contacts: persistence.NewContactStore(rt.DB),
	}
}

// Execute gives every client without contacts a primary email, usually a
// mobile and sometimes a further phone.
func (h *Contacts) Execute(ctx context.Context, marker progress.Step) (int, error) {
	tracker := h.rt.Trackers.ForStep(progress.StepClientContacts)

	parents, err := withoutChildren(ctx, h.clients, marker, "client_contacts")
	if err != nil {
		return 0, err
	}

	return handler.ChildBatches(ctx, h.rt, tracker, marker, parents, clientID,
		func(c broker.Client) ([]broker.ClientContact, error) { return h.generate(c), nil },
		func(tx *gorm.DB, rows []broker.ClientContact) (int, error) {
			created, err := h.contacts.CreateAll(tx, rows)
			return len(created), err
		},
	)
}

func (h *Contacts) generate(c broker.Client) []broker.ClientContact {
	src, f := h.rt.Source, h.rt.Faker
	now := h.rt.Now()

	verified := func() *time.Time {
		if !sampling.Chance(src, 0.8) {
			return nil
		}
		at := sampling.DateBetween(src, c.RegistrationDate, now)
		return &at
	}

	email := f.Email("biuro", c.DisplayName())
	if c.FirstName != nil && c.LastName != nil {
		email = f.Email(*c.FirstName, *c.LastName)
	}

	rows := []broker.ClientContact{{
		ClientID:   c.ID,
		Type:       broker.ContactEmail,
		Value:      email,
		Primary:    true,
		VerifiedAt: verified(),
	}}
	if sampling.Chance(src, 0.9) {
		rows = append(rows, broker.ClientContact{
			ClientID:   c.ID,
			Type:       broker.ContactMobile,
			Value:      f.Mobile(),
			VerifiedAt: verified(),
		})
	}
	if sampling.Chance(src, 0.2) {
		extra := broker.ClientContact{ClientID: c.ID, Type: broker.ContactMobile, Value: f.Mobile()}
		if sampling.Chance(src, 0.5) {
			extra.Type = broker.ContactLandline
			extra.Value = f.Phone(12, 99)
		}
		extra.VerifiedAt = verified()
		rows = append(rows, extra)
	}
	return rows
}
