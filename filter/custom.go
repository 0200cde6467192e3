package filter

import (
	"fmt"
	"strconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

const (
	// ColumnValuesTable holds one row per application and custom column.
	ColumnValuesTable = "job_column_values AS jcv"

	valueColumn   = "jcv.value"
	optionColumn  = "jcv.option_id"
	numericValue  = "(CASE WHEN jcv.value ~ '^-{0,1}[0-9]+([.][0-9]+){0,1}$' THEN CAST(jcv.value AS NUMERIC) END)"
	correlateJob  = "jcv.job_id = ja.id"
	columnIDField = "jcv.column_id"
)

// CustomStrategy filters a custom column through a subquery over
// job_column_values correlated on the application:
//
//	EXISTS (SELECT 1 FROM job_column_values AS jcv
//	        WHERE jcv.job_id = ja.id AND jcv.column_id = ? AND <condition>)
//
// Negated operators use NOT EXISTS over the positive condition, so they also
// match applications without a value for the column.
type CustomStrategy struct {
	ColumnID string
	Type     ColumnType
}

var _ Strategy = CustomStrategy{}

func (s CustomStrategy) subquery(conds []sq.Sqlizer) (string, []any, error) {
	q := sq.Select("1").
		From(ColumnValuesTable).
		Where(correlateJob).
		Where(sq.Eq{columnIDField: s.ColumnID})
	for _, cond := range conds {
		q = q.Where(cond)
	}
	return q.ToSql()
}

func (s CustomStrategy) exists(conds ...sq.Sqlizer) (sq.Sqlizer, error) {
	sub, args, err := s.subquery(conds)
	if err != nil {
		return nil, err
	}
	return sq.Expr(fmt.Sprintf("EXISTS (%s)", sub), args...), nil
}

func (s CustomStrategy) notExists(conds ...sq.Sqlizer) (sq.Sqlizer, error) {
	sub, args, err := s.subquery(conds)
	if err != nil {
		return nil, err
	}
	return sq.Expr(fmt.Sprintf("NOT EXISTS (%s)", sub), args...), nil
}

// operand returns the compared expression and operand of a range operator.
// Number columns compare numerically and need a numeric operand. Stored
// values that are not decimals compare as NULL, so they never match.
func (s CustomStrategy) operand(v Value) (string, any, bool) {
	if !v.IsStringOrNumber() {
		return "", nil, false
	}
	if s.Type != TypeNumber {
		return valueColumn, v.Text(), true
	}
	if v.IsNumber() {
		return numericValue, v.Arg(), true
	}
	n, err := strconv.ParseFloat(v.Str(), 64)
	if err != nil {
		return "", nil, false
	}
	return numericValue, Number(n).Arg(), true
}

// nonEmptyCondition matches a stored value that is not empty for the column type.
func (s CustomStrategy) nonEmptyCondition() []sq.Sqlizer {
	switch {
	case s.Type.IsSelect():
		return []sq.Sqlizer{sq.NotEq{optionColumn: nil}}
	case s.Type.IsNullOnly():
		return []sq.Sqlizer{sq.NotEq{valueColumn: nil}}
	default:
		return []sq.Sqlizer{sq.NotEq{valueColumn: nil}, sq.NotEq{valueColumn: ""}}
	}
}

// Contains matches the stored text case-insensitively.
func (s CustomStrategy) Contains(v Value) (sq.Sqlizer, error) {
	if !v.IsString() {
		return nil, ErrInvalidValue
	}
	return s.exists(sq.ILike{valueColumn: containsPattern(v.Str())})
}

// NotContains also matches applications without a value.
func (s CustomStrategy) NotContains(v Value) (sq.Sqlizer, error) {
	if !v.IsString() {
		return nil, ErrInvalidValue
	}
	return s.notExists(sq.ILike{valueColumn: containsPattern(v.Str())})
}

// Equals compares the stored text; booleans match checkbox values "true" and "false".
func (s CustomStrategy) Equals(v Value) (sq.Sqlizer, error) {
	if !v.IsPrimitive() {
		return nil, ErrInvalidValue
	}
	return s.exists(sq.Eq{valueColumn: v.Text()})
}

// NotEquals also matches applications without a value.
func (s CustomStrategy) NotEquals(v Value) (sq.Sqlizer, error) {
	if !v.IsPrimitive() {
		return nil, ErrInvalidValue
	}
	return s.notExists(sq.Eq{valueColumn: v.Text()})
}

func (s CustomStrategy) StartsWith(v Value) (sq.Sqlizer, error) {
	if !v.IsString() {
		return nil, ErrInvalidValue
	}
	return s.exists(sq.ILike{valueColumn: startsWithPattern(v.Str())})
}

func (s CustomStrategy) EndsWith(v Value) (sq.Sqlizer, error) {
	if !v.IsString() {
		return nil, ErrInvalidValue
	}
	return s.exists(sq.ILike{valueColumn: endsWithPattern(v.Str())})
}

// IsEmpty matches applications without a non-empty value for the column.
func (s CustomStrategy) IsEmpty() (sq.Sqlizer, error) {
	return s.notExists(s.nonEmptyCondition()...)
}

func (s CustomStrategy) IsNotEmpty() (sq.Sqlizer, error) {
	return s.exists(s.nonEmptyCondition()...)
}

// GreaterThan compares numerically on number columns and as text otherwise.
func (s CustomStrategy) GreaterThan(v Value) (sq.Sqlizer, error) {
	expr, arg, ok := s.operand(v)
	if !ok {
		return nil, ErrInvalidValue
	}
	return s.exists(sq.Gt{expr: arg})
}

func (s CustomStrategy) LessThan(v Value) (sq.Sqlizer, error) {
	expr, arg, ok := s.operand(v)
	if !ok {
		return nil, ErrInvalidValue
	}
	return s.exists(sq.Lt{expr: arg})
}

func (s CustomStrategy) GreaterThanOrEqual(v Value) (sq.Sqlizer, error) {
	expr, arg, ok := s.operand(v)
	if !ok {
		return nil, ErrInvalidValue
	}
	return s.exists(sq.GtOrEq{expr: arg})
}

func (s CustomStrategy) LessThanOrEqual(v Value) (sq.Sqlizer, error) {
	expr, arg, ok := s.operand(v)
	if !ok {
		return nil, ErrInvalidValue
	}
	return s.exists(sq.LtOrEq{expr: arg})
}

// Between includes both bounds.
func (s CustomStrategy) Between(v Value) (sq.Sqlizer, error) {
	lower, upper, ok := v.Pair()
	if !ok {
		return nil, ErrInvalidValue
	}
	lowerExpr, lowerArg, ok := s.operand(lower)
	if !ok {
		return nil, ErrInvalidValue
	}
	upperExpr, upperArg, ok := s.operand(upper)
	if !ok {
		return nil, ErrInvalidValue
	}
	return s.exists(sq.GtOrEq{lowerExpr: lowerArg}, sq.LtOrEq{upperExpr: upperArg})
}

func (s CustomStrategy) IsTrue() (sq.Sqlizer, error) {
	return s.exists(sq.Eq{valueColumn: "true"})
}

func (s CustomStrategy) IsFalse() (sq.Sqlizer, error) {
	return s.exists(sq.Eq{valueColumn: "false"})
}

// IsAnyOf matches selected option ids.
func (s CustomStrategy) IsAnyOf(v Value) (sq.Sqlizer, error) {
	options, ok := optionIDs(v)
	if !ok {
		return nil, ErrInvalidValue
	}
	return s.exists(sq.Eq{optionColumn: options})
}

// IsNoneOf also matches applications without a selected option.
func (s CustomStrategy) IsNoneOf(v Value) (sq.Sqlizer, error) {
	options, ok := optionIDs(v)
	if !ok {
		return nil, ErrInvalidValue
	}
	return s.notExists(sq.Eq{optionColumn: options})
}

func optionIDs(v Value) ([]string, bool) {
	items, ok := nonEmptyStrings(v)
	if !ok {
		return nil, false
	}
	for _, item := range items {
		if _, err := uuid.Parse(item); err != nil {
			return nil, false
		}
	}
	return items, true
}
