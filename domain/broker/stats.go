package broker

// Stats is a row-count snapshot of the seeded tables.
type Stats struct {
	ClientsByType  map[string]int64
	Addresses      int64
	Contacts       int64
	Agents         int64
	Users          int64
	Policies       int64
	ActivePolicies int64
	Claims         int64
	Payments       int64
	ClaimPayments  int64
	Invoices       int64
	Commissions    int64
}

// Clients returns the total number of clients across types.
func (s Stats) Clients() int64 {
	var n int64
	for _, c := range s.ClientsByType {
		n += c
	}
	return n
}
