// Package sqlboiler runs jobtrack pages through SQLBoiler query mods.
//
// A page request reaches the database in two steps. CursorToQueryMods or
// OffsetToQueryMods turns the paginator's FetchParams into WHERE, ORDER BY,
// LIMIT and OFFSET mods; the caller's query function appends them to its own
// base mods (select list, joins, tenant scope) and binds the rows.
//
//	fetcher := sqlboiler.NewFetcher(
//	    func(ctx context.Context, mods ...qm.QueryMod) ([]*Row, error) {
//	        var rows []*Row
//	        q := models.NewQuery(append(baseMods, mods...)...)
//	        return rows, q.Bind(ctx, db, &rows)
//	    },
//	    countApplications,
//	    sqlboiler.OffsetToQueryMods,
//	)
//
// Joined queries must alias every selected column to its boil tag. SQLBoiler
// rewrites a bare "ja.id" of a joined select to `"ja"."id" as "ja.id"`, and
// Bind drops columns it cannot map.
package sqlboiler

import (
	"context"

	"github.com/aarondl/sqlboiler/v4/queries/qm"

	"github.com/nrfta/jobtrack"
)

// QueryFunc loads the rows of one page. mods carry the page's filters,
// ordering and window.
type QueryFunc[T any] func(ctx context.Context, mods ...qm.QueryMod) ([]T, error)

// CountFunc counts the rows matching mods, which carry only the filters.
type CountFunc func(ctx context.Context, mods ...qm.QueryMod) (int64, error)

// QueryModsFunc renders FetchParams as query mods.
type QueryModsFunc func(paging.FetchParams) ([]qm.QueryMod, error)

// Fetcher is a paging.Fetcher over SQLBoiler query functions.
type Fetcher[T any] struct {
	query  QueryFunc[T]
	count  CountFunc
	render QueryModsFunc
}

// NewFetcher returns a fetcher loading pages with query and totals with
// count. render decides how a page window becomes query mods.
func NewFetcher[T any](query QueryFunc[T], count CountFunc, render QueryModsFunc) paging.Fetcher[T] {
	return &Fetcher[T]{query: query, count: count, render: render}
}

func (f *Fetcher[T]) Fetch(ctx context.Context, params paging.FetchParams) ([]T, error) {
	mods, err := f.render(params)
	if err != nil {
		return nil, err
	}
	return f.query(ctx, mods...)
}

// Count ignores the window of params.
func (f *Fetcher[T]) Count(ctx context.Context, params paging.FetchParams) (int64, error) {
	mods, err := WhereToQueryMods(params.Where)
	if err != nil {
		return 0, err
	}
	return f.count(ctx, mods...)
}
