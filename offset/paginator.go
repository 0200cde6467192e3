// Package offset provides offset-based pagination functionality.
//
// This package implements traditional skip/take pagination for simple and
// administrative listings. The total row count and the page rows are queried
// concurrently and the page metadata is derived from skip, take and total.
//
// Example usage:
//
//	paginator := offset.New(fetcher)
//	page, err := paginator.Paginate(ctx, paging.OffsetArgs{Skip: 40, Take: &take}, orderBy)
package offset

import (
	"context"
	"math"

	sq "github.com/Masterminds/squirrel"
	"golang.org/x/sync/errgroup"

	"github.com/nrfta/jobtrack"
)

// GenerateMeta derives offset page metadata. Pages are 1-indexed; Prev and
// Next are the skip values of the neighbouring pages.
//
//	GenerateMeta(10, 90, 100)
//	// {Total: 100, LastPage: 10, CurrentPage: 10, PerPage: 10, Prev: 90, Next: nil}
func GenerateMeta(take, skip, total int) paging.OffsetMeta {
	meta := paging.OffsetMeta{
		Total:       total,
		PerPage:     take,
		CurrentPage: 1,
	}

	if take <= 0 {
		return meta
	}

	meta.LastPage = int(math.Ceil(float64(total) / float64(take)))
	if skip > 0 {
		meta.CurrentPage = int(math.Round(float64(skip)/float64(take))) + 1
	}

	if meta.CurrentPage > 1 {
		prev := (meta.CurrentPage - 1) * take
		meta.Prev = &prev
	}
	if meta.CurrentPage < meta.LastPage {
		next := meta.CurrentPage * take
		meta.Next = &next
	}

	return meta
}

// Paginator is the paginator for offset-based pagination.
type Paginator[T any] struct {
	fetcher paging.Fetcher[T]
	config  *paging.PageConfig
}

// New creates a new offset paginator.
//
// The paginator automatically handles:
//   - Default page size of 20 rows
//   - Rejecting page sizes outside the configured limits
//   - Issuing the count and page queries concurrently
func New[T any](fetcher paging.Fetcher[T], opts ...paging.PaginateOption) *Paginator[T] {
	return &Paginator[T]{
		fetcher: fetcher,
		config:  paging.ApplyPaginateOptions(opts...),
	}
}

// Paginate fetches one page of rows together with the total row count.
// Both queries share where; the first error cancels the other query.
func (p *Paginator[T]) Paginate(
	ctx context.Context,
	args paging.OffsetArgs,
	orderBy []paging.OrderBy,
	where ...sq.Sqlizer,
) (*paging.OffsetPage[T], error) {
	if args.Skip < 0 {
		return nil, paging.ErrInvalidSkip
	}

	take, err := p.config.Take(args.Take)
	if err != nil {
		return nil, err
	}

	params := paging.FetchParams{
		Limit:   take,
		Offset:  args.Skip,
		Where:   where,
		OrderBy: orderBy,
	}

	var (
		items []T
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = p.fetcher.Fetch(gctx, params)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = p.fetcher.Count(gctx, params)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if items == nil {
		items = make([]T, 0)
	}

	return &paging.OffsetPage[T]{
		Data: items,
		Meta: GenerateMeta(take, args.Skip, int(total)),
	}, nil
}
