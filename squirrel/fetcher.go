// Package squirrel adapts Masterminds/squirrel select builders to the
// paging.Fetcher interface.
//
// The caller supplies the base query (tables, joins, selected columns and
// scoping predicates) and a scan function; the fetcher adds the page
// predicates, the keyset predicate, ordering, limit and offset, and renders
// the query with PostgreSQL placeholders.
//
// Example usage:
//
//	base := sq.Select("ja.id", "ja.created_at").From("job_applications AS ja")
//	fetcher := squirrel.NewFetcher(db, base, scanApplication)
//	page, err := cursor.New(fetcher, schema).Paginate(ctx, args, orderBy)
package squirrel

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/friendsofgo/errors"

	"github.com/nrfta/jobtrack"
	"github.com/nrfta/jobtrack/cursor"
)

// Queryer is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ScanFunc reads the current row of rows into a T.
type ScanFunc[T any] func(rows *sql.Rows) (T, error)

// Fetcher implements paging.Fetcher over a squirrel select builder.
type Fetcher[T any] struct {
	db   Queryer
	base sq.SelectBuilder
	scan ScanFunc[T]
}

// NewFetcher creates a Fetcher for the given base query.
func NewFetcher[T any](db Queryer, base sq.SelectBuilder, scan ScanFunc[T]) *Fetcher[T] {
	return &Fetcher[T]{
		db:   db,
		base: base.PlaceholderFormat(sq.Dollar),
		scan: scan,
	}
}

// FetchQuery returns the page query for params.
func (f *Fetcher[T]) FetchQuery(params paging.FetchParams) (sq.SelectBuilder, error) {
	query := applyWhere(f.base, params.Where)

	after, err := cursor.WhereAfter(params.Cursor, params.OrderBy)
	if err != nil {
		return query, err
	}
	if after != nil {
		query = query.Where(after)
	}

	if len(params.OrderBy) > 0 {
		query = query.OrderBy(cursor.OrderByClauses(params.OrderBy)...)
	}
	if params.Limit > 0 {
		query = query.Limit(uint64(params.Limit))
	}
	if params.Offset > 0 {
		query = query.Offset(uint64(params.Offset))
	}

	return query, nil
}

// CountQuery returns the count query for params. It keeps the joins and
// predicates of the base query and replaces the selected columns.
func (f *Fetcher[T]) CountQuery(params paging.FetchParams) sq.SelectBuilder {
	return applyWhere(f.base.RemoveColumns().Column("COUNT(*)"), params.Where)
}

// Fetch implements paging.Fetcher.
func (f *Fetcher[T]) Fetch(ctx context.Context, params paging.FetchParams) ([]T, error) {
	query, err := f.FetchQuery(params)
	if err != nil {
		return nil, err
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build page query")
	}

	rows, err := f.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query page")
	}
	defer rows.Close()

	items := make([]T, 0, max(params.Limit, 0))
	for rows.Next() {
		item, err := f.scan(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan row")
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate rows")
	}

	return items, nil
}

// Count implements paging.Fetcher. A count query that yields no row fails
// with paging.ErrCountUnavailable.
func (f *Fetcher[T]) Count(ctx context.Context, params paging.FetchParams) (int64, error) {
	stmt, args, err := f.CountQuery(params).ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "build count query")
	}

	var total int64
	err = f.db.QueryRowContext(ctx, stmt, args...).Scan(&total)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, paging.ErrCountUnavailable
	}
	if err != nil {
		return 0, errors.Wrap(err, "query count")
	}

	return total, nil
}

func applyWhere(query sq.SelectBuilder, where []sq.Sqlizer) sq.SelectBuilder {
	for _, pred := range where {
		if pred != nil {
			query = query.Where(pred)
		}
	}
	return query
}
