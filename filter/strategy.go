// Package filter resolves column filters into SQL predicates.
//
// A filter targets either a core field, a column of the applications table,
// or a custom column whose values live in job_column_values. Both targets
// implement Strategy, which has one method per Operator, so a new operator
// does not compile until both strategy tables handle it.
//
// Malformed operands never fail a query: the filter resolves to no predicate
// and is dropped, unless the Resolver is strict.
package filter

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/friendsofgo/errors"
)

var (
	// ErrInvalidValue is returned by a Strategy for an operand of the wrong shape.
	ErrInvalidValue = errors.New("invalid filter value")

	// ErrUnknownOperator is returned by Apply for an operator outside Operators.
	ErrUnknownOperator = errors.New("unknown filter operator")
)

// Strategy builds the predicate of each operator for one filter target.
type Strategy interface {
	Contains(v Value) (sq.Sqlizer, error)
	NotContains(v Value) (sq.Sqlizer, error)
	Equals(v Value) (sq.Sqlizer, error)
	NotEquals(v Value) (sq.Sqlizer, error)
	StartsWith(v Value) (sq.Sqlizer, error)
	EndsWith(v Value) (sq.Sqlizer, error)
	IsEmpty() (sq.Sqlizer, error)
	IsNotEmpty() (sq.Sqlizer, error)
	GreaterThan(v Value) (sq.Sqlizer, error)
	LessThan(v Value) (sq.Sqlizer, error)
	GreaterThanOrEqual(v Value) (sq.Sqlizer, error)
	LessThanOrEqual(v Value) (sq.Sqlizer, error)
	Between(v Value) (sq.Sqlizer, error)
	IsTrue() (sq.Sqlizer, error)
	IsFalse() (sq.Sqlizer, error)
	IsAnyOf(v Value) (sq.Sqlizer, error)
	IsNoneOf(v Value) (sq.Sqlizer, error)
}

// Apply dispatches op to its Strategy method.
func Apply(s Strategy, op Operator, v Value) (sq.Sqlizer, error) {
	switch op {
	case Contains:
		return s.Contains(v)
	case NotContains:
		return s.NotContains(v)
	case Equals:
		return s.Equals(v)
	case NotEquals:
		return s.NotEquals(v)
	case StartsWith:
		return s.StartsWith(v)
	case EndsWith:
		return s.EndsWith(v)
	case IsEmpty:
		return s.IsEmpty()
	case IsNotEmpty:
		return s.IsNotEmpty()
	case GreaterThan:
		return s.GreaterThan(v)
	case LessThan:
		return s.LessThan(v)
	case GreaterThanOrEqual:
		return s.GreaterThanOrEqual(v)
	case LessThanOrEqual:
		return s.LessThanOrEqual(v)
	case Between:
		return s.Between(v)
	case IsTrue:
		return s.IsTrue()
	case IsFalse:
		return s.IsFalse()
	case IsAnyOf:
		return s.IsAnyOf(v)
	case IsNoneOf:
		return s.IsNoneOf(v)
	default:
		return nil, ErrUnknownOperator
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes the ILIKE wildcards of s.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func containsPattern(s string) string   { return "%" + EscapeLike(s) + "%" }
func startsWithPattern(s string) string { return EscapeLike(s) + "%" }
func endsWithPattern(s string) string   { return "%" + EscapeLike(s) }
