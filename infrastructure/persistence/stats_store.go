package persistence

import (
	"context"
	"fmt"

	"github.com/helixml/brokerseed/domain/broker"
	"github.com/helixml/brokerseed/internal/database"
	"golang.org/x/sync/errgroup"
)

// statsConcurrency bounds the count queries in flight.
const statsConcurrency = 4

// StatsStore computes row-count snapshots.
type StatsStore struct {
	db database.Database
}

// NewStatsStore creates a new StatsStore.
func NewStatsStore(db database.Database) StatsStore {
	return StatsStore{db: db}
}

// Snapshot counts the seeded tables concurrently.
func (s StatsStore) Snapshot(ctx context.Context) (broker.Stats, error) {
	var stats broker.Stats
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(statsConcurrency)

	count := func(dst *int64, model any, where ...any) {
		g.Go(func() error {
			db := s.db.Session(gctx).Model(model)
			if len(where) > 0 {
				db = db.Where(where[0], where[1:]...)
			}
			if err := db.Count(dst).Error; err != nil {
				return fmt.Errorf("count %T: %w", model, err)
			}
			return nil
		})
	}

	count(&stats.Addresses, &ClientAddressModel{})
	count(&stats.Contacts, &ClientContactModel{})
	count(&stats.Agents, &AgentModel{})
	count(&stats.Users, &UserModel{})
	count(&stats.Policies, &PolicyModel{})
	count(&stats.ActivePolicies, &PolicyModel{},
		"status_id IN (SELECT id FROM policy_statuses WHERE is_active_policy = ?)", true)
	count(&stats.Claims, &ClaimModel{})
	count(&stats.Payments, &PaymentModel{})
	count(&stats.ClaimPayments, &ClaimPaymentModel{})
	count(&stats.Invoices, &InvoiceModel{})
	count(&stats.Commissions, &CommissionModel{})

	var byType []struct {
		Name string
		N    int64
	}
	g.Go(func() error {
		err := s.db.Session(gctx).Model(&ClientModel{}).
			Select("client_types.name AS name, count(*) AS n").
			Joins("JOIN client_types ON client_types.id = clients.client_type_id").
			Group("client_types.name").
			Scan(&byType).Error
		if err != nil {
			return fmt.Errorf("count clients by type: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return broker.Stats{}, err
	}

	stats.ClientsByType = make(map[string]int64, len(byType))
	for _, t := range byType {
		stats.ClientsByType[t.Name] = t.N
	}
	return stats, nil
}
