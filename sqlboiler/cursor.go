package sqlboiler

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/friendsofgo/errors"

	"github.com/nrfta/jobtrack"
	"github.com/nrfta/jobtrack/cursor"
)

// CursorToQueryMods converts FetchParams into SQLBoiler query mods for cursor-based pagination.
// This is the strategy-specific query builder for keyset pagination.
//
// The conversion follows these rules:
//   - Where → one raw WHERE mod per predicate
//   - Cursor → the NULL-aware keyset predicate of cursor.WhereAfter
//   - Limit → qm.Limit(n)
//   - OrderBy → qm.OrderBy("col1 DESC NULLS LAST, col2 ASC")
//
// Example:
//
//	fetcher := sqlboiler.NewFetcher(
//	    queryFunc,
//	    countFunc,
//	    sqlboiler.CursorToQueryMods, // ← Use cursor strategy
//	)
func CursorToQueryMods(params paging.FetchParams) ([]qm.QueryMod, error) {
	mods, err := WhereToQueryMods(params.Where)
	if err != nil {
		return nil, err
	}

	after, err := cursor.WhereAfter(params.Cursor, params.OrderBy)
	if err != nil {
		return nil, err
	}
	if after != nil {
		mod, err := predicateMod(after)
		if err != nil {
			return nil, err
		}
		mods = append(mods, mod)
	}

	if params.Limit > 0 {
		mods = append(mods, qm.Limit(params.Limit))
	}

	if len(params.OrderBy) > 0 {
		mods = append(mods, qm.OrderBy(buildOrderByClause(params.OrderBy)))
	}

	return mods, nil
}

// WhereToQueryMods renders squirrel predicates as SQLBoiler WHERE mods.
// Predicates must use "?" placeholders; SQLBoiler numbers them per dialect.
func WhereToQueryMods(where []sq.Sqlizer) ([]qm.QueryMod, error) {
	mods := make([]qm.QueryMod, 0, len(where)+3)

	for _, pred := range where {
		if pred == nil {
			continue
		}
		mod, err := predicateMod(pred)
		if err != nil {
			return nil, err
		}
		mods = append(mods, mod)
	}

	return mods, nil
}

func predicateMod(pred sq.Sqlizer) (qm.QueryMod, error) {
	clause, args, err := pred.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "render where predicate")
	}

	return rawWhereClause(clause, args), nil
}

// rawWhereClause creates a custom query mod that injects a WHERE clause directly.
// The clause is added to the query's WHERE buffer together with its arguments,
// so OR groups and nested subqueries survive without re-parsing.
func rawWhereClause(clause string, args []any) qm.QueryMod {
	return qm.QueryModFunc(func(q *queries.Query) {
		queries.AppendWhere(q, clause, args...)
	})
}

// buildOrderByClause constructs an ORDER BY clause from OrderBy directives.
// Assumes len(orderBy) > 0 (caller must verify).
//
// Example:
//
//	[]OrderBy{
//	    {Column: "created_at", Desc: true},
//	    {Column: "id", Desc: false},
//	}
//	→ "created_at DESC, id ASC"
func buildOrderByClause(orderBy []paging.OrderBy) string {
	return strings.Join(cursor.OrderByClauses(orderBy), ", ")
}
