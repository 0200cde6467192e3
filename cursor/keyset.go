package cursor

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/nrfta/jobtrack"
)

// Unsatisfiable matches no row. It is the keyset predicate of a cursor that
// sits on the last possible position of the sort order.
var Unsatisfiable = sq.Expr("1 = 0")

// WhereAfter builds the predicate selecting rows strictly after pos in the
// order described by orderBy. It returns nil when pos is nil.
//
// For sort columns c1..cn the predicate is the disjunction, over each i, of
// "c1..c(i-1) equal the cursor and ci is after the cursor". Equality on a
// NULL cursor value uses IS NULL. NULL placement follows OrderBy.NullsAreFirst:
//
//   - NULL cursor value, NULLs last: nothing follows on ci, the term is dropped
//   - NULL cursor value, NULLs first: every non-null follows, "ci IS NOT NULL"
//   - value v, NULLs last: "ci > v OR ci IS NULL" (< for descending)
//   - value v, NULLs first: "ci > v" (< for descending)
//
// When every term is dropped the result is Unsatisfiable.
func WhereAfter(pos *paging.CursorPosition, orderBy []paging.OrderBy) (sq.Sqlizer, error) {
	if pos == nil {
		return nil, nil
	}

	if len(orderBy) == 0 {
		return nil, fmt.Errorf("%w: no sort columns to resume on", paging.ErrInvalidCursor)
	}

	values := make([]any, len(orderBy))
	for i, o := range orderBy {
		value, ok := pos.Values[o.CursorKey()]
		if !ok {
			return nil, fmt.Errorf("%w: missing key %q", paging.ErrInvalidCursor, o.CursorKey())
		}
		values[i] = value
	}

	disjuncts := sq.Or{}
	for i, o := range orderBy {
		after := afterColumn(o, values[i])
		if after == nil {
			continue
		}

		if i == 0 {
			disjuncts = append(disjuncts, after)
			continue
		}

		term := make(sq.And, 0, i+1)
		for j := 0; j < i; j++ {
			term = append(term, sq.Eq{orderBy[j].Column: values[j]})
		}
		term = append(term, after)

		disjuncts = append(disjuncts, term)
	}

	switch len(disjuncts) {
	case 0:
		return Unsatisfiable, nil
	case 1:
		return disjuncts[0], nil
	default:
		return disjuncts, nil
	}
}

// afterColumn returns the predicate for "column is after value", or nil
// when no value can follow.
func afterColumn(o paging.OrderBy, value any) sq.Sqlizer {
	if value == nil {
		if o.NullsAreLast() {
			return nil
		}
		return sq.NotEq{o.Column: nil}
	}

	var cmp sq.Sqlizer = sq.Gt{o.Column: value}
	if o.Desc {
		cmp = sq.Lt{o.Column: value}
	}

	if o.NullsAreLast() {
		return sq.Or{cmp, sq.Eq{o.Column: nil}}
	}

	return cmp
}

// OrderByClauses renders orderBy as ORDER BY terms.
// NULL placement is emitted only when set explicitly.
//
// Example:
//
//	OrderByClauses([]paging.OrderBy{{Column: "ja.salary_min", Desc: true, Nulls: paging.NullsLast}})
//	// Returns: ["ja.salary_min DESC NULLS LAST"]
func OrderByClauses(orderBy []paging.OrderBy) []string {
	clauses := make([]string, 0, len(orderBy))

	for _, o := range orderBy {
		clause := o.Column + " ASC"
		if o.Desc {
			clause = o.Column + " DESC"
		}

		switch o.Nulls {
		case paging.NullsFirst:
			clause += " NULLS FIRST"
		case paging.NullsLast:
			clause += " NULLS LAST"
		}

		clauses = append(clauses, clause)
	}

	return clauses
}
