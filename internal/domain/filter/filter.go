// Package filter models the structured predicate evaluated by the vector
// index during nearest-neighbor search. All conditions must hold
// simultaneously: conjunction is the only composition the search contract
// needs.
package filter

import "fmt"

// Expression is an AND of conditions. The zero value is the unrestricted
// query.
type Expression struct {
	conditions []Condition
}

// NewExpression creates a conjunction of conditions.
func NewExpression(conditions ...Condition) Expression {
	return Expression{conditions: conditions}
}

// Conditions returns the clauses of the conjunction.
func (e Expression) Conditions() []Condition { return e.conditions }

// IsEmpty reports whether the expression restricts nothing.
func (e Expression) IsEmpty() bool { return len(e.conditions) == 0 }

// Condition is a single clause: an integer equality or a numeric range
// over one metadata field. Values are natively typed; drivers must never
// compare string-encoded numbers.
type Condition struct {
	key       string
	equals    *int64
	rangeExpr *Range
}

// NewEquals creates an integer equality condition.
func NewEquals(key string, value int64) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	return Condition{key: key, equals: &value}, nil
}

// NewRange creates a numeric range condition.
func NewRange(key string, r Range) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if r.gte == nil && r.lte == nil {
		return Condition{}, fmt.Errorf("at least one range boundary is required for key %q", key)
	}
	return Condition{key: key, rangeExpr: &r}, nil
}

// Key returns the metadata field name.
func (c Condition) Key() string { return c.key }

// Equals returns the equality value, nil for range conditions.
func (c Condition) Equals() *int64 { return c.equals }

// Range returns the range expression, nil for equality conditions.
func (c Condition) Range() *Range { return c.rangeExpr }

// IsEquals reports whether this is an equality condition.
func (c Condition) IsEquals() bool { return c.equals != nil }

// IsRange reports whether this is a range condition.
func (c Condition) IsRange() bool { return c.rangeExpr != nil }

// Range is an inclusive numeric interval with optional bounds.
type Range struct {
	gte *float64
	lte *float64
}

// GTE creates a range bounded below (inclusive).
func GTE(v float64) Range { return Range{gte: &v} }

// LTE creates a range bounded above (inclusive).
func LTE(v float64) Range { return Range{lte: &v} }

// Between creates a range bounded on both sides (inclusive).
func Between(gte, lte float64) Range { return Range{gte: &gte, lte: &lte} }

// Min returns the inclusive lower bound, nil if unbounded.
func (r Range) Min() *float64 { return r.gte }

// Max returns the inclusive upper bound, nil if unbounded.
func (r Range) Max() *float64 { return r.lte }
