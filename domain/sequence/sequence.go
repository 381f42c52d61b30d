// Package sequence issues human-readable document numbers from per-run counters.
package sequence

import (
	"fmt"
	"maps"
	"sync"
	"sync/atomic"
	"time"
)

// Counter names.
const (
	Policy      = "policy"
	Claim       = "claim"
	Invoice     = "invoice"
	Transaction = "transaction"
)

// Start is the value every counter begins from; the first number issued is Start+1.
const Start int64 = 100000

// Counter hands out increasing numbers per name. It is safe for concurrent use.
type Counter struct {
	mu     sync.Mutex
	values map[string]*atomic.Int64
}

// NewCounter creates a Counter with every name at Start.
func NewCounter() *Counter {
	return &Counter{values: make(map[string]*atomic.Int64)}
}

func (c *Counter) slot(name string) *atomic.Int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[name]
	if !ok {
		v = &atomic.Int64{}
		v.Store(Start)
		c.values[name] = v
	}
	return v
}

// Next returns the next number for name.
func (c *Counter) Next(name string) int64 {
	return c.slot(name).Add(1)
}

// Current returns the last number issued for name, or Start.
func (c *Counter) Current(name string) int64 {
	return c.slot(name).Load()
}

// Restore sets counters from a snapshot. Values below Start are raised to it.
func (c *Counter) Restore(snapshot map[string]int64) {
	for name, value := range snapshot {
		c.slot(name).Store(max(value, Start))
	}
}

// Snapshot returns the current value of every counter that has been touched.
func (c *Counter) Snapshot() map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int64, len(c.values))
	for name, v := range c.values {
		out[name] = v.Load()
	}
	return out
}

// Equal reports whether two snapshots hold the same values.
func Equal(a, b map[string]int64) bool {
	return maps.Equal(a, b)
}

// PolicyNumber returns POL/{year}/{n}.
func (c *Counter) PolicyNumber(at time.Time) string {
	return fmt.Sprintf("POL/%d/%d", at.Year(), c.Next(Policy))
}

// ClaimNumber returns CLM/{year}/{n}.
func (c *Counter) ClaimNumber(at time.Time) string {
	return fmt.Sprintf("CLM/%d/%d", at.Year(), c.Next(Claim))
}

// InvoiceNumber returns INV/{year}/{n}.
func (c *Counter) InvoiceNumber(at time.Time) string {
	return fmt.Sprintf("INV/%d/%d", at.Year(), c.Next(Invoice))
}

// TransactionID returns TRX/{yyyyMM}/{n}.
func (c *Counter) TransactionID(at time.Time) string {
	return fmt.Sprintf("TRX/%s/%d", at.Format("200601"), c.Next(Transaction))
}
