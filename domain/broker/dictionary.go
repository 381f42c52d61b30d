package broker

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrMissingReference indicates a required reference row is absent.
var ErrMissingReference = errors.New("missing reference data")

// Lookup is a persisted name-only reference row.
type Lookup struct {
	ID   int64
	Name string
}

// ClientType is a persisted client_types row.
type ClientType struct {
	ID           int64
	Name         string
	DiscountRate decimal.Decimal
}

// PolicyType is a persisted policy_types row with its category name.
type PolicyType struct {
	ID          int64
	Name        string
	CategoryID  int64
	Category    string
	BasePremium decimal.Decimal
	Active      bool
}

// Status is a persisted policy or claim status. Flag is is_active_policy or is_final.
type Status struct {
	ID   int64
	Name string
	Flag bool
}

// Dictionary holds every reference row a seeding run resolves names against.
type Dictionary struct {
	ClientTypes        []ClientType
	PolicyTypes        []PolicyType
	PolicyStatuses     []Status
	ClaimStatuses      []Status
	PaymentMethods     []Lookup
	PaymentStatuses    []Lookup
	CommissionStatuses []Lookup
	RiskLevels         []Lookup
	Roles              []Lookup
}

func find[T any](items []T, kind, name string, nameOf func(T) string) (T, error) {
	for _, it := range items {
		if nameOf(it) == name {
			return it, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: %s %q", ErrMissingReference, kind, name)
}

func findID[T any](items []T, kind string, id int64, idOf func(T) int64) (T, error) {
	for _, it := range items {
		if idOf(it) == id {
			return it, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: %s id %d", ErrMissingReference, kind, id)
}

func lookupName(l Lookup) string { return l.Name }
func statusName(s Status) string { return s.Name }

// ClientType resolves a client type by name.
func (d Dictionary) ClientType(name string) (ClientType, error) {
	return find(d.ClientTypes, "client type", name, func(c ClientType) string { return c.Name })
}

// ClientTypeByID resolves a client type by id.
func (d Dictionary) ClientTypeByID(id int64) (ClientType, error) {
	return findID(d.ClientTypes, "client type", id, func(c ClientType) int64 { return c.ID })
}

// PolicyTypeByID resolves a policy type by id.
func (d Dictionary) PolicyTypeByID(id int64) (PolicyType, error) {
	return findID(d.PolicyTypes, "policy type", id, func(p PolicyType) int64 { return p.ID })
}

// ActivePolicyTypes returns the policy types that can be sold.
func (d Dictionary) ActivePolicyTypes() []PolicyType {
	out := make([]PolicyType, 0, len(d.PolicyTypes))
	for _, pt := range d.PolicyTypes {
		if pt.Active {
			out = append(out, pt)
		}
	}
	return out
}

// PolicyStatus resolves a policy status by name.
func (d Dictionary) PolicyStatus(name string) (Status, error) {
	return find(d.PolicyStatuses, "policy status", name, statusName)
}

// PolicyStatusByID resolves a policy status by id.
func (d Dictionary) PolicyStatusByID(id int64) (Status, error) {
	return findID(d.PolicyStatuses, "policy status", id, func(s Status) int64 { return s.ID })
}

// ClaimStatus resolves a claim status by name.
func (d Dictionary) ClaimStatus(name string) (Status, error) {
	return find(d.ClaimStatuses, "claim status", name, statusName)
}

// ClaimStatusByID resolves a claim status by id.
func (d Dictionary) ClaimStatusByID(id int64) (Status, error) {
	return findID(d.ClaimStatuses, "claim status", id, func(s Status) int64 { return s.ID })
}

// PaymentMethod resolves a payment method by name.
func (d Dictionary) PaymentMethod(name string) (Lookup, error) {
	return find(d.PaymentMethods, "payment method", name, lookupName)
}

// PaymentStatus resolves a payment status by name.
func (d Dictionary) PaymentStatus(name string) (Lookup, error) {
	return find(d.PaymentStatuses, "payment status", name, lookupName)
}

// CommissionStatus resolves a commission status by name.
func (d Dictionary) CommissionStatus(name string) (Lookup, error) {
	return find(d.CommissionStatuses, "commission status", name, lookupName)
}

// Role resolves a role by name.
func (d Dictionary) Role(name string) (Lookup, error) {
	return find(d.Roles, "role", name, lookupName)
}

// Statuses resolves several statuses with one lookup function, failing on the first absent name.
func Statuses(lookup func(string) (Status, error), names ...string) (map[string]Status, error) {
	out := make(map[string]Status, len(names))
	for _, n := range names {
		s, err := lookup(n)
		if err != nil {
			return nil, err
		}
		out[n] = s
	}
	return out, nil
}

// Lookups resolves several name-only rows with one lookup function.
func Lookups(lookup func(string) (Lookup, error), names ...string) (map[string]Lookup, error) {
	out := make(map[string]Lookup, len(names))
	for _, n := range names {
		l, err := lookup(n)
		if err != nil {
			return nil, err
		}
		out[n] = l
	}
	return out, nil
}
