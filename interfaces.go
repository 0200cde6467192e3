package paging

import (
	"context"

	sq "github.com/Masterminds/squirrel"
)

// Fetcher abstracts query execution for any query layer.
// Paginators describe the page they need through FetchParams and the Fetcher
// turns that description into SQL for its own builder (squirrel, SQLBoiler, ...).
//
// Type parameter T is the row type produced by the query (e.g., jobs.ApplicationRow).
//
// Example implementation:
//
//	type squirrelFetcher struct {
//	    db   *sql.DB
//	    base sq.SelectBuilder
//	    scan func(*sql.Rows) (*Row, error)
//	}
type Fetcher[T any] interface {
	// Fetch retrieves rows matching the params.
	// It must apply Where, the keyset predicate for Cursor, OrderBy, Limit and Offset.
	Fetch(ctx context.Context, params FetchParams) ([]T, error)

	// Count returns the number of rows matching params.Where, ignoring
	// ordering, limit, offset and cursor.
	Count(ctx context.Context, params FetchParams) (int64, error)
}

// FetchParams contains everything a Fetcher needs to produce one page.
type FetchParams struct {
	// Limit is the maximum number of rows to fetch. Cursor paginators ask
	// for one row more than the page size to detect a following page.
	Limit int

	// Offset is the number of rows to skip (offset pagination only).
	Offset int

	// Cursor is the decoded position of the last row of the previous page.
	Cursor *CursorPosition

	// Where holds the resolved predicates, combined with AND.
	Where []sq.Sqlizer

	// OrderBy is the composite sort key, most significant first.
	OrderBy []OrderBy
}

// Nulls controls where NULL values are placed for an ORDER BY column.
type Nulls int

const (
	// NullsDefault leaves NULL placement to the database. PostgreSQL treats
	// NULL as larger than any value: last when ascending, first when descending.
	NullsDefault Nulls = iota
	NullsFirst
	NullsLast
)

// OrderBy is one column of a composite sort key.
type OrderBy struct {
	// Column is the SQL expression to sort on, usually qualified: "ja.created_at".
	Column string

	// Key is the name the column's value carries in result rows and cursors:
	// "created_at". Defaults to Column when empty.
	Key string

	// Desc indicates descending order. False means ascending.
	Desc bool

	// Nulls overrides the default NULL placement.
	Nulls Nulls
}

// CursorKey returns the cursor key for the column.
func (o OrderBy) CursorKey() string {
	if o.Key == "" {
		return o.Column
	}
	return o.Key
}

// NullsAreFirst reports the effective NULL placement of the column.
func (o OrderBy) NullsAreFirst() bool {
	switch o.Nulls {
	case NullsFirst:
		return true
	case NullsLast:
		return false
	default:
		return o.Desc
	}
}

// NullsAreLast reports whether NULL values sort after every other value,
// i.e. nothing but another NULL can follow a NULL on this column.
func (o OrderBy) NullsAreLast() bool {
	return !o.NullsAreFirst()
}

// CursorPosition holds the sort key values of the last row of a page.
//
// Example for sorting by (created_at DESC, id DESC):
//
//	CursorPosition{
//	    Values: map[string]any{
//	        "created_at": "2024-01-01T00:00:00Z",
//	        "id":         "7f9c...",
//	    },
//	}
type CursorPosition struct {
	// Values maps cursor keys to their values at the cursor position.
	Values map[string]any
}

// CursorEncoder converts rows into opaque cursor strings and back.
//
// Type parameter T is the row type (e.g., *jobs.ApplicationRow).
type CursorEncoder[T any] interface {
	// Encode creates a cursor from the values of the active sort keys of item.
	Encode(item T, orderBy []OrderBy) (string, error)

	// Decode parses a cursor produced by Encode for the same orderBy.
	// A malformed cursor is an error wrapping ErrInvalidCursor.
	Decode(cursor string, orderBy []OrderBy) (*CursorPosition, error)
}
