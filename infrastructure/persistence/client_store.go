package persistence

import (
	"context"
	"fmt"

	"github.com/helixml/brokerseed/domain/broker"
	"github.com/helixml/brokerseed/internal/database"
)

// ClientStore persists clients.
type ClientStore struct {
	database.Repository[broker.Client, ClientModel]
}

// NewClientStore creates a new ClientStore.
func NewClientStore(db database.Database) ClientStore {
	return ClientStore{
		Repository: database.NewRepository[broker.Client, ClientModel](db, ClientMapper{}, "clients"),
	}
}

// CountByType returns the number of clients per client_type_id.
func (s ClientStore) CountByType(ctx context.Context) (map[int64]int64, error) {
	var rows []struct {
		ClientTypeID int64
		N            int64
	}
	err := s.DB(ctx).Model(&ClientModel{}).
		Select("client_type_id, count(*) AS n").
		Group("client_type_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count clients by type: %w", err)
	}
	out := make(map[int64]int64, len(rows))
	for _, r := range rows {
		out[r.ClientTypeID] = r.N
	}
	return out, nil
}

// AddressStore persists client addresses.
type AddressStore struct {
	database.Repository[broker.ClientAddress, ClientAddressModel]
}

// NewAddressStore creates a new AddressStore.
func NewAddressStore(db database.Database) AddressStore {
	return AddressStore{
		Repository: database.NewRepository[broker.ClientAddress, ClientAddressModel](db, AddressMapper{}, "client addresses"),
	}
}

// ContactStore persists client contacts.
type ContactStore struct {
	database.Repository[broker.ClientContact, ClientContactModel]
}

// NewContactStore creates a new ContactStore.
func NewContactStore(db database.Database) ContactStore {
	return ContactStore{
		Repository: database.NewRepository[broker.ClientContact, ClientContactModel](db, ContactMapper{}, "client contacts"),
	}
}
