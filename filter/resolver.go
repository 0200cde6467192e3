package filter

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/friendsofgo/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ColumnFilter is one filter of a listing request.
type ColumnFilter struct {
	// ColumnID is a core field name or the UUID of a custom column.
	ColumnID string   `json:"column_id" validate:"required"`
	Operator Operator `json:"operator" validate:"required"`
	Value    Value    `json:"value"`
	// ColumnType is the caller's hint for custom columns.
	ColumnType ColumnType `json:"column_type,omitempty"`
}

// CoreField is a filterable column of the applications table.
type CoreField struct {
	Column string
	Type   ColumnType
}

// InvalidFilterError is returned by a strict Resolver for a filter that
// resolves to no predicate.
type InvalidFilterError struct {
	ColumnID string
	Operator Operator
	Err      error
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid filter on column %q with operator %q: %v", e.ColumnID, e.Operator, e.Err)
}

func (e *InvalidFilterError) Unwrap() error { return e.Err }

// ErrUnknownColumn is the cause of a dropped filter whose column is neither a
// core field nor a custom column id.
var ErrUnknownColumn = errors.New("unknown column")

// Option configures a Resolver.
type Option func(*Resolver)

// WithStrict makes Resolve fail with *InvalidFilterError instead of dropping
// filters that resolve to no predicate.
func WithStrict(strict bool) Option {
	return func(r *Resolver) {
		r.strict = strict
	}
}

// WithLogger sets the logger that reports dropped filters.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Resolver routes filters to the core or custom strategy and collects their predicates.
type Resolver struct {
	core   map[string]CoreField
	strict bool
	logger *zap.Logger
}

// NewResolver creates a Resolver for the given core fields, keyed by filter name.
func NewResolver(core map[string]CoreField, opts ...Option) *Resolver {
	r := &Resolver{
		core:   core,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Strict reports whether the Resolver fails on malformed filters.
func (r *Resolver) Strict() bool { return r.strict }

// StrategyFor returns the strategy targeted by f.
//
// Core fields use their declared type and fall back to the hint when they
// have none. Custom columns must have a UUID id and use the hint.
func (r *Resolver) StrategyFor(f ColumnFilter) (Strategy, bool) {
	if field, ok := r.core[f.ColumnID]; ok {
		columnType := field.Type
		if columnType == "" {
			columnType = f.ColumnType
		}
		return CoreStrategy{Column: field.Column, Type: columnType}, true
	}

	id, err := uuid.Parse(f.ColumnID)
	if err != nil {
		return nil, false
	}

	return CustomStrategy{ColumnID: id.String(), Type: f.ColumnType}, true
}

// ResolveOne returns the predicate of f, or an *InvalidFilterError.
func (r *Resolver) ResolveOne(f ColumnFilter) (sq.Sqlizer, error) {
	strategy, ok := r.StrategyFor(f)
	if !ok {
		return nil, &InvalidFilterError{ColumnID: f.ColumnID, Operator: f.Operator, Err: ErrUnknownColumn}
	}

	pred, err := Apply(strategy, f.Operator, f.Value)
	if err != nil {
		return nil, &InvalidFilterError{ColumnID: f.ColumnID, Operator: f.Operator, Err: err}
	}

	return pred, nil
}

// Resolve returns the predicates of filters, to be combined with AND.
// Filters that resolve to no predicate are dropped, or fail a strict Resolver.
func (r *Resolver) Resolve(filters []ColumnFilter) ([]sq.Sqlizer, error) {
	preds := make([]sq.Sqlizer, 0, len(filters))

	for _, f := range filters {
		pred, err := r.ResolveOne(f)
		if err != nil {
			if r.strict {
				return nil, err
			}

			r.logger.Debug("dropping filter",
				zap.String("column_id", f.ColumnID),
				zap.String("operator", string(f.Operator)),
				zap.Error(err),
			)
			continue
		}

		preds = append(preds, pred)
	}

	return preds, nil
}
