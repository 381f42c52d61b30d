package sampling

import (
	"errors"
	"fmt"
	"sort"
)

// ErrEmptyPool indicates a selection was requested from no candidates.
var ErrEmptyPool = errors.New("empty sampling pool")

// ErrUnknownCategory indicates a member was added to a category without a weight.
var ErrUnknownCategory = errors.New("category has no weight")

// ErrInvalidWeight indicates a category or option weight that is not positive.
var ErrInvalidWeight = errors.New("weight must be positive")

// Weighted selects a category with probability proportional to its weight,
// then a member of that category uniformly. Empty categories never win.
type Weighted[T any] struct {
	names   []string
	weights []float64
	members [][]T
}

// NewWeighted creates a sampler over the given category weights.
// Categories are ordered by name so draws are reproducible.
func NewWeighted[T any](weights map[string]float64) (*Weighted[T], error) {
	names := make([]string, 0, len(weights))
	for name, w := range weights {
		if w <= 0 {
			return nil, fmt.Errorf("%w: %s=%v", ErrInvalidWeight, name, w)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	s := &Weighted[T]{
		names:   names,
		weights: make([]float64, len(names)),
		members: make([][]T, len(names)),
	}
	for i, name := range names {
		s.weights[i] = weights[name]
	}
	return s, nil
}

// Add places a member in category. A category without a weight is
// rejected with ErrUnknownCategory and the member is not added.
func (s *Weighted[T]) Add(category string, member T) error {
	i := sort.SearchStrings(s.names, category)
	if i == len(s.names) || s.names[i] != category {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	s.members[i] = append(s.members[i], member)
	return nil
}

// Len returns the number of members across all categories.
func (s *Weighted[T]) Len() int {
	n := 0
	for _, m := range s.members {
		n += len(m)
	}
	return n
}

// Size returns the number of members in category.
func (s *Weighted[T]) Size(category string) int {
	i := sort.SearchStrings(s.names, category)
	if i < len(s.names) && s.names[i] == category {
		return len(s.members[i])
	}
	return 0
}

// Pick draws one member.
func (s *Weighted[T]) Pick(src Source) (T, error) {
	var zero T
	total := 0.0
	for i, m := range s.members {
		if len(m) > 0 {
			total += s.weights[i]
		}
	}
	if total == 0 {
		return zero, ErrEmptyPool
	}

	r := src.Float64() * total
	last := -1
	for i, m := range s.members {
		if len(m) == 0 {
			continue
		}
		last = i
		if r < s.weights[i] {
			return m[src.IntN(len(m))], nil
		}
		r -= s.weights[i]
	}
	m := s.members[last]
	return m[src.IntN(len(m))], nil
}

// Option is a value with a selection weight.
type Option[T any] struct {
	Value  T
	Weight float64
}

// Choice selects among discrete values with probability proportional to weight.
type Choice[T any] struct {
	options []Option[T]
	total   float64
}

// NewChoice creates a Choice. Options keep their given order.
func NewChoice[T any](options ...Option[T]) (Choice[T], error) {
	if len(options) == 0 {
		return Choice[T]{}, ErrEmptyPool
	}
	total := 0.0
	for _, o := range options {
		if o.Weight <= 0 {
			return Choice[T]{}, fmt.Errorf("%w: %v=%v", ErrInvalidWeight, o.Value, o.Weight)
		}
		total += o.Weight
	}
	return Choice[T]{options: options, total: total}, nil
}

// MustChoice is NewChoice for static tables; it panics on invalid weights.
func MustChoice[T any](options ...Option[T]) Choice[T] {
	c, err := NewChoice(options...)
	if err != nil {
		panic(err)
	}
	return c
}

// Pick draws one value.
func (c Choice[T]) Pick(src Source) T {
	r := src.Float64() * c.total
	for _, o := range c.options {
		if r < o.Weight {
			return o.Value
		}
		r -= o.Weight
	}
	return c.options[len(c.options)-1].Value
}
