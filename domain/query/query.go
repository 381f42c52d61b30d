// Package query describes store lookups independently of the storage engine.
package query

import (
	"fmt"
	"strings"
)

// Operator is the comparison applied by a Condition.
type Operator int

// Operator values.
const (
	OpEqual Operator = iota
	OpNotEqual
	OpLessThan
	OpGreaterThan
	OpIn
	OpIsNull
	OpIsNotNull
	OpRaw
)

// String returns the SQL representation of the operator.
func (o Operator) String() string {
	switch o {
	case OpNotEqual:
		return "<>"
	case OpLessThan:
		return "<"
	case OpGreaterThan:
		return ">"
	case OpIn:
		return "IN"
	case OpIsNull:
		return "IS NULL"
	case OpIsNotNull:
		return "IS NOT NULL"
	default:
		return "="
	}
}

// Option applies a modification to a Query.
type Option func(Query) Query

// Query holds conditions, ordering, and pagination for store lookups.
type Query struct {
	conditions []Condition
	orders     []Order
	limit      int
	offset     int
}

// Build creates a Query from a set of options.
func Build(options ...Option) Query {
	q := Query{}
	for _, opt := range options {
		q = opt(q)
	}
	return q
}

// Conditions returns the query conditions.
func (q Query) Conditions() []Condition {
	result := make([]Condition, len(q.conditions))
	copy(result, q.conditions)
	return result
}

// Orders returns the query ordering specifications.
func (q Query) Orders() []Order {
	result := make([]Order, len(q.orders))
	copy(result, q.orders)
	return result
}

// LimitValue returns the limit (0 means no limit).
func (q Query) LimitValue() int {
	return q.limit
}

// OffsetValue returns the offset.
func (q Query) OffsetValue() int {
	return q.offset
}

// Condition represents a single query condition.
type Condition struct {
	field string
	op    Operator
	value any
	args  []any
}

// Field returns the condition field name, or the clause for OpRaw.
func (c Condition) Field() string { return c.field }

// Operator returns the comparison operator.
func (c Condition) Operator() Operator { return c.op }

// Value returns the condition value.
func (c Condition) Value() any { return c.value }

// Args returns the bind arguments of a raw clause.
func (c Condition) Args() []any { return c.args }

// Clause renders the condition as a SQL WHERE fragment with ? placeholders.
func (c Condition) Clause() string {
	switch c.op {
	case OpRaw:
		return c.field
	case OpIsNull, OpIsNotNull:
		return fmt.Sprintf("%s %s", c.field, c.op)
	case OpIn:
		return fmt.Sprintf("%s IN ?", c.field)
	default:
		return fmt.Sprintf("%s %s ?", c.field, c.op)
	}
}

// Bindings returns the arguments that fill the placeholders of Clause.
func (c Condition) Bindings() []any {
	switch c.op {
	case OpRaw:
		return c.args
	case OpIsNull, OpIsNotNull:
		return nil
	default:
		return []any{c.value}
	}
}

// String returns a readable representation.
func (c Condition) String() string {
	clause := c.Clause()
	for _, b := range c.Bindings() {
		clause = strings.Replace(clause, "?", fmt.Sprint(b), 1)
	}
	return clause
}

// Order represents a sort specification.
type Order struct {
	field     string
	ascending bool
}

// Field returns the order field name.
func (o Order) Field() string { return o.field }

// Ascending returns true for ASC, false for DESC.
func (o Order) Ascending() bool { return o.ascending }

// WithCondition adds a field = value equality condition.
func WithCondition(field string, value any) Option {
	return WithOperator(field, OpEqual, value)
}

// WithConditionIn adds a field IN (values) condition.
func WithConditionIn(field string, values any) Option {
	return WithOperator(field, OpIn, values)
}

// WithOperator adds a condition comparing field to value with op.
func WithOperator(field string, op Operator, value any) Option {
	return func(q Query) Query {
		q.conditions = append(q.conditions, Condition{field: field, op: op, value: value})
		return q
	}
}

// WithNull filters rows whose field is NULL.
func WithNull(field string) Option {
	return WithOperator(field, OpIsNull, nil)
}

// WithNotNull filters rows whose field is not NULL.
func WithNotNull(field string) Option {
	return WithOperator(field, OpIsNotNull, nil)
}

// WithWhere adds a raw WHERE clause with bind arguments.
func WithWhere(clause string, args ...any) Option {
	return func(q Query) Query {
		q.conditions = append(q.conditions, Condition{field: clause, op: OpRaw, args: args})
		return q
	}
}

// WithoutChildren keeps rows whose id is not referenced by column of table.
func WithoutChildren(table, column string) Option {
	return WithWhere(fmt.Sprintf("id NOT IN (SELECT %s FROM %s WHERE %s IS NOT NULL)", column, table, column))
}

// WithID filters by the "id" column.
func WithID(id int64) Option {
	return WithCondition("id", id)
}

// WithIDIn filters by the "id" column using IN.
func WithIDIn(ids []int64) Option {
	return WithConditionIn("id", ids)
}

// WithActive filters by the "is_active" column.
func WithActive(active bool) Option {
	return WithCondition("is_active", active)
}

// WithName filters by the "name" column.
func WithName(name string) Option {
	return WithCondition("name", name)
}

// WithLimit sets the maximum number of results.
func WithLimit(n int) Option {
	return func(q Query) Query {
		q.limit = n
		return q
	}
}

// WithOffset sets the result offset.
func WithOffset(n int) Option {
	return func(q Query) Query {
		q.offset = n
		return q
	}
}

// WithOrderAsc adds ascending ordering on a field.
func WithOrderAsc(field string) Option {
	return func(q Query) Query {
		q.orders = append(q.orders, Order{field: field, ascending: true})
		return q
	}
}

// WithOrderDesc adds descending ordering on a field.
func WithOrderDesc(field string) Option {
	return func(q Query) Query {
		q.orders = append(q.orders, Order{field: field, ascending: false})
		return q
	}
}
