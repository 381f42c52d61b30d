package clients

import (
	"context"

	"github.com/helixml/brokerseed/application/handler"
	"github.com/helixml/brokerseed/domain/broker"
	"github.com/helixml/brokerseed/domain/progress"
	"github.com/helixml/brokerseed/domain/sampling"
	"github.com/helixml/brokerseed/infrastructure/persistence"
	"github.com/helixml/brokerseed/internal/fake"
	"gorm.io/gorm"
)

var addressCounts = sampling.MustChoice(
	sampling.Option[int]{Value: 1, Weight: 0.6},
	sampling.Option[int]{Value: 2, Weight: 0.3},
	sampling.Option[int]{Value: 3, Weight: 0.1},
)

var addressTypes = []string{broker.AddressHome, broker.AddressWork, broker.AddressBilling}

// Addresses handles the clients.addresses step.
type Addresses struct {
	rt        *handler.Runtime
	clients   persistence.ClientStore
	addresses persistence.AddressStore
}

// NewAddresses creates a new Addresses handler.
func NewAddresses(rt *handler.Runtime) *Addresses {
	return &Addresses{
		rt:        rt,
		clients:   persistence.NewClientStore(rt.DB),
		addresses: persistence.NewAddressStore(rt.DB),
	}
}

// Execute gives every client without addresses one current address and up
// to two historical ones.
func (h *Addresses) Execute(ctx context.Context, marker progress.Step) (int, error) {
	tracker := h.rt.Trackers.ForStep(progress.StepClientAddresses)

	parents, err := withoutChildren(ctx, h.clients, marker, "client_addresses")
	if err != nil {
		return 0, err
	}

	return handler.ChildBatches(ctx, h.rt, tracker, marker, parents, clientID,
		func(c broker.Client) ([]broker.ClientAddress, error) { return h.generate(c) },
		func(tx *gorm.DB, rows []broker.ClientAddress) (int, error) {
			created, err := h.addresses.CreateAll(tx, rows)
			return len(created), err
		},
	)
}

func (h *Addresses) generate(c broker.Client) ([]broker.ClientAddress, error) {
	src, f := h.rt.Source, h.rt.Faker
	today := h.rt.Today()

	n := addressCounts.Pick(src)
	rows := make([]broker.ClientAddress, 0, n)
	for i := range n {
		kind, err := sampling.PickOne(src, addressTypes)
		if err != nil {
			return nil, err
		}
		a := broker.ClientAddress{
			ClientID:   c.ID,
			Type:       kind,
			Street:     f.Street(),
			City:       f.City(),
			PostalCode: f.PostalCode(),
			Country:    fake.Country,
		}
		if i == 0 {
			a.ValidFrom = c.RegistrationDate
			a.Current = true
		} else {
			a.ValidFrom = sampling.DayBetween(src, today.AddDate(-5, 0, 0), today.AddDate(-2, 0, 0))
			to := a.ValidFrom.AddDate(0, 0, sampling.IntBetween(src, 30, 360))
			a.ValidTo = &to
		}
		rows = append(rows, a)
	}
	return rows, nil
}
