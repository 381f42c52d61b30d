package sequence

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounter_Formats(t *testing.T) {
	c := NewCounter()
	at := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "POL/2025/100001", c.PolicyNumber(at))
	assert.Equal(t, "POL/2025/100002", c.PolicyNumber(at))
	assert.Equal(t, "CLM/2025/100001", c.ClaimNumber(at))
	assert.Equal(t, "INV/2025/100001", c.InvoiceNumber(at))
	assert.Equal(t, "TRX/202503/100001", c.TransactionID(at))
}

func TestCounter_SnapshotRestore(t *testing.T) {
	c := NewCounter()
	c.Next(Policy)
	c.Next(Policy)
	c.Next(Claim)

	snap := c.Snapshot()
	assert.Equal(t, map[string]int64{Policy: 100002, Claim: 100001}, snap)

	restored := NewCounter()
	restored.Restore(snap)
	assert.True(t, Equal(snap, restored.Snapshot()))
	assert.Equal(t, int64(100003), restored.Next(Policy))

	restored.Restore(map[string]int64{Invoice: 5})
	assert.Equal(t, Start, restored.Current(Invoice))
}

func TestCounter_Concurrent(t *testing.T) {
	c := NewCounter()
	seen := sync.Map{}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 500 {
				n := c.Next(Transaction)
				_, dup := seen.LoadOrStore(n, true)
				assert.False(t, dup, "number %d issued twice", n)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, Start+4000, c.Current(Transaction))
}
