package cursor

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/friendsofgo/errors"

	"github.com/nrfta/jobtrack"
)

// ErrNoOrderBy is returned when a page is requested without sort columns.
var ErrNoOrderBy = errors.New("cursor pagination requires at least one sort column")

// Paginator is the paginator for cursor-based pagination.
//
// Unlike offset pagination, cursor pagination:
//   - Does not require a total count
//   - Uses the cursor position instead of an offset
//   - Costs the same regardless of page depth
//   - Requires the last sort column to be unique
type Paginator[T any] struct {
	fetcher paging.Fetcher[T]
	encoder paging.CursorEncoder[T]
	config  *paging.PageConfig
}

// New creates a new cursor paginator.
//
// Example usage:
//
//	paginator := cursor.New(fetcher, schema, paging.WithMaxSize(100))
//	page, err := paginator.Paginate(ctx, args, orderBy, where...)
func New[T any](
	fetcher paging.Fetcher[T],
	encoder paging.CursorEncoder[T],
	opts ...paging.PaginateOption,
) *Paginator[T] {
	return &Paginator[T]{
		fetcher: fetcher,
		encoder: encoder,
		config:  paging.ApplyPaginateOptions(opts...),
	}
}

// Paginate fetches the page after args.Cursor.
//
// The paginator automatically handles:
//   - N+1 pattern: fetches take+1 rows to detect a following page
//   - Trimming the extra row from the returned data
//   - Encoding the cursor of the last returned row when a next page exists
//
// A cursor that does not decode for orderBy fails with paging.ErrInvalidCursor.
func (p *Paginator[T]) Paginate(
	ctx context.Context,
	args *paging.PageArgs,
	orderBy []paging.OrderBy,
	where ...sq.Sqlizer,
) (*paging.CursorPage[T], error) {
	if len(orderBy) == 0 {
		return nil, ErrNoOrderBy
	}

	take, err := p.config.Take(args.GetTake())
	if err != nil {
		return nil, err
	}

	var position *paging.CursorPosition
	if cursor := args.GetCursor(); cursor != nil {
		position, err = p.encoder.Decode(*cursor, orderBy)
		if err != nil {
			return nil, err
		}
	}

	items, err := p.fetcher.Fetch(ctx, BuildFetchParams(take, position, orderBy, where))
	if err != nil {
		return nil, err
	}

	return BuildPage(items, take, orderBy, p.encoder)
}

// BuildFetchParams creates FetchParams with the N+1 limit for HasNextPage detection.
func BuildFetchParams(
	take int,
	position *paging.CursorPosition,
	orderBy []paging.OrderBy,
	where []sq.Sqlizer,
) paging.FetchParams {
	return paging.FetchParams{
		Limit:   take + 1,
		Cursor:  position,
		Where:   where,
		OrderBy: orderBy,
	}
}

// BuildPage trims items fetched with the N+1 pattern to take and fills in the
// pagination metadata.
func BuildPage[T any](
	items []T,
	take int,
	orderBy []paging.OrderBy,
	encoder paging.CursorEncoder[T],
) (*paging.CursorPage[T], error) {
	hasNextPage := len(items) > take

	data := items
	if hasNextPage {
		data = items[:take]
	}
	if data == nil {
		data = make([]T, 0)
	}

	page := &paging.CursorPage[T]{
		Data: data,
		Pagination: paging.PageCursor{
			HasNextPage: hasNextPage,
		},
	}

	if hasNextPage && len(data) > 0 {
		cursor, err := encoder.Encode(data[len(data)-1], orderBy)
		if err != nil {
			return nil, errors.Wrap(err, "encode next cursor")
		}
		page.Pagination.Cursor = &cursor
	}

	return page, nil
}
