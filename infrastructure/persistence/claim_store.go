package persistence

import (
	"github.com/helixml/brokerseed/domain/broker"
	"github.com/helixml/brokerseed/internal/database"
)

// ClaimStore persists claims.
type ClaimStore struct {
	database.Repository[broker.Claim, ClaimModel]
}

// NewClaimStore creates a new ClaimStore.
func NewClaimStore(db database.Database) ClaimStore {
	return ClaimStore{
		Repository: database.NewRepository[broker.Claim, ClaimModel](db, ClaimMapper{}, "claims"),
	}
}

// ClaimHistoryStore persists claim status transitions.
type ClaimHistoryStore struct {
	database.Repository[broker.ClaimStatusChange, ClaimStatusHistoryModel]
}

// NewClaimHistoryStore creates a new ClaimHistoryStore.
func NewClaimHistoryStore(db database.Database) ClaimHistoryStore {
	return ClaimHistoryStore{
		Repository: database.NewRepository[broker.ClaimStatusChange, ClaimStatusHistoryModel](db, ClaimHistoryMapper{}, "claim status history"),
	}
}

// ClaimPaymentStore persists claim payouts.
type ClaimPaymentStore struct {
	database.Repository[broker.ClaimPayment, ClaimPaymentModel]
}

// NewClaimPaymentStore creates a new ClaimPaymentStore.
func NewClaimPaymentStore(db database.Database) ClaimPaymentStore {
	return ClaimPaymentStore{
		Repository: database.NewRepository[broker.ClaimPayment, ClaimPaymentModel](db, ClaimPaymentMapper{}, "claim payments"),
	}
}

// PaymentStore persists premium payments.
type PaymentStore struct {
	database.Repository[broker.Payment, PaymentModel]
}

// NewPaymentStore creates a new PaymentStore.
func NewPaymentStore(db database.Database) PaymentStore {
	return PaymentStore{
		Repository: database.NewRepository[broker.Payment, PaymentModel](db, PaymentMapper{}, "payments"),
	}
}
