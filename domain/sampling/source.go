// Package sampling provides weighted random selection over a pluggable source.
package sampling

import (
	"math/rand/v2"
	"time"
)

// Source is the pseudorandom stream every generator draws from.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// NewSource returns a PCG source seeded from seed. A zero seed derives one
// from the wall clock.
func NewSource(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Chance reports true with probability p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// IntBetween returns a uniform integer in [lo, hi].
func IntBetween(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.IntN(hi-lo+1)
}

// FloatBetween returns a uniform float in [lo, hi).
func FloatBetween(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// PickOne returns a uniformly chosen element of items.
func PickOne[T any](src Source, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, ErrEmptyPool
	}
	return items[src.IntN(len(items))], nil
}

// DateBetween returns a uniform instant in [from, to], truncated to the second.
func DateBetween(src Source, from, to time.Time) time.Time {
	if !to.After(from) {
		return from
	}
	span := int64(to.Sub(from) / time.Second)
	return from.Add(time.Duration(int64(src.Float64()*float64(span+1))) * time.Second).Truncate(time.Second)
}

// DayBetween returns a uniform calendar day in [from, to].
func DayBetween(src Source, from, to time.Time) time.Time {
	from, to = Day(from), Day(to)
	if !to.After(from) {
		return from
	}
	days := int(to.Sub(from).Hours() / 24)
	return from.AddDate(0, 0, src.IntN(days+1))
}

// Day truncates t to midnight in its location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
