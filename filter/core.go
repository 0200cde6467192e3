package filter

import (
	sq "github.com/Masterminds/squirrel"
)

// CoreStrategy filters a column of the applications table directly.
type CoreStrategy struct {
	// Column is the qualified column: "ja.company_name".
	Column string
	Type   ColumnType
}

var _ Strategy = CoreStrategy{}

// nullOnly reports whether the column can only be empty by being NULL.
// Core checkbox columns are booleans and cannot hold the empty string.
func (s CoreStrategy) nullOnly() bool {
	return s.Type.IsNullOnly() || s.Type == TypeCheckbox
}

func (s CoreStrategy) orNull(pred sq.Sqlizer) sq.Sqlizer {
	return sq.Or{pred, sq.Eq{s.Column: nil}}
}

// Contains matches case-insensitively.
func (s CoreStrategy) Contains(v Value) (sq.Sqlizer, error) {
	if !v.IsString() {
		return nil, ErrInvalidValue
	}
	return sq.ILike{s.Column: containsPattern(v.Str())}, nil
}

// NotContains also matches NULL columns.
func (s CoreStrategy) NotContains(v Value) (sq.Sqlizer, error) {
	if !v.IsString() {
		return nil, ErrInvalidValue
	}
	return s.orNull(sq.NotILike{s.Column: containsPattern(v.Str())}), nil
}

func (s CoreStrategy) Equals(v Value) (sq.Sqlizer, error) {
	if !v.IsPrimitive() {
		return nil, ErrInvalidValue
	}
	return sq.Eq{s.Column: v.Arg()}, nil
}

// NotEquals also matches NULL columns.
func (s CoreStrategy) NotEquals(v Value) (sq.Sqlizer, error) {
	if !v.IsPrimitive() {
		return nil, ErrInvalidValue
	}
	return s.orNull(sq.NotEq{s.Column: v.Arg()}), nil
}

func (s CoreStrategy) StartsWith(v Value) (sq.Sqlizer, error) {
	if !v.IsString() {
		return nil, ErrInvalidValue
	}
	return sq.ILike{s.Column: startsWithPattern(v.Str())}, nil
}

func (s CoreStrategy) EndsWith(v Value) (sq.Sqlizer, error) {
	if !v.IsString() {
		return nil, ErrInvalidValue
	}
	return sq.ILike{s.Column: endsWithPattern(v.Str())}, nil
}

// IsEmpty matches NULL, and the empty string on text-like columns.
func (s CoreStrategy) IsEmpty() (sq.Sqlizer, error) {
	if s.nullOnly() {
		return sq.Eq{s.Column: nil}, nil
	}
	return sq.Or{sq.Eq{s.Column: nil}, sq.Eq{s.Column: ""}}, nil
}

// IsNotEmpty is the complement of IsEmpty.
func (s CoreStrategy) IsNotEmpty() (sq.Sqlizer, error) {
	if s.nullOnly() {
		return sq.NotEq{s.Column: nil}, nil
	}
	return sq.And{sq.NotEq{s.Column: nil}, sq.NotEq{s.Column: ""}}, nil
}

func (s CoreStrategy) GreaterThan(v Value) (sq.Sqlizer, error) {
	if !v.IsStringOrNumber() {
		return nil, ErrInvalidValue
	}
	return sq.Gt{s.Column: v.Arg()}, nil
}

func (s CoreStrategy) LessThan(v Value) (sq.Sqlizer, error) {
	if !v.IsStringOrNumber() {
		return nil, ErrInvalidValue
	}
	return sq.Lt{s.Column: v.Arg()}, nil
}

func (s CoreStrategy) GreaterThanOrEqual(v Value) (sq.Sqlizer, error) {
	if !v.IsStringOrNumber() {
		return nil, ErrInvalidValue
	}
	return sq.GtOrEq{s.Column: v.Arg()}, nil
}

func (s CoreStrategy) LessThanOrEqual(v Value) (sq.Sqlizer, error) {
	if !v.IsStringOrNumber() {
		return nil, ErrInvalidValue
	}
	return sq.LtOrEq{s.Column: v.Arg()}, nil
}

// Between includes both bounds.
func (s CoreStrategy) Between(v Value) (sq.Sqlizer, error) {
	lower, upper, ok := v.Pair()
	if !ok {
		return nil, ErrInvalidValue
	}
	return sq.And{sq.GtOrEq{s.Column: lower.Arg()}, sq.LtOrEq{s.Column: upper.Arg()}}, nil
}

func (s CoreStrategy) IsTrue() (sq.Sqlizer, error) {
	return sq.Eq{s.Column: true}, nil
}

func (s CoreStrategy) IsFalse() (sq.Sqlizer, error) {
	return sq.Eq{s.Column: false}, nil
}

func (s CoreStrategy) IsAnyOf(v Value) (sq.Sqlizer, error) {
	items, ok := nonEmptyStrings(v)
	if !ok {
		return nil, ErrInvalidValue
	}
	return sq.Eq{s.Column: items}, nil
}

// IsNoneOf also matches NULL columns.
func (s CoreStrategy) IsNoneOf(v Value) (sq.Sqlizer, error) {
	items, ok := nonEmptyStrings(v)
	if !ok {
		return nil, ErrInvalidValue
	}
	return s.orNull(sq.NotEq{s.Column: items}), nil
}

func nonEmptyStrings(v Value) ([]string, bool) {
	if !v.IsStringList() || len(v.Items()) == 0 {
		return nil, false
	}
	return v.StringItems(), true
}
