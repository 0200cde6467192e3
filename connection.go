package paging

import "fmt"

// MapCursorPage converts the rows of a page into response types, keeping the
// pagination metadata untouched.
//
// Type parameters:
//   - From: Source type (e.g., jobs.ApplicationRow)
//   - To: Target type (e.g., jobs.ApplicationResponse)
//
// Example usage:
//
//	resp, err := paging.MapCursorPage(rows, func(r *jobs.ApplicationRow) (*jobs.ApplicationResponse, error) {
//	    return r.ToResponse(), nil
//	})
func MapCursorPage[From any, To any](
	page *CursorPage[From],
	transform func(From) (To, error),
) (*CursorPage[To], error) {
	if page == nil {
		return nil, nil
	}

	data, err := mapItems(page.Data, transform)
	if err != nil {
		return nil, err
	}

	return &CursorPage[To]{Data: data, Pagination: page.Pagination}, nil
}

// MapOffsetPage is MapCursorPage for offset pages.
func MapOffsetPage[From any, To any](
	page *OffsetPage[From],
	transform func(From) (To, error),
) (*OffsetPage[To], error) {
	if page == nil {
		return nil, nil
	}

	data, err := mapItems(page.Data, transform)
	if err != nil {
		return nil, err
	}

	return &OffsetPage[To]{Data: data, Meta: page.Meta}, nil
}

func mapItems[From any, To any](items []From, transform func(From) (To, error)) ([]To, error) {
	out := make([]To, 0, len(items))

	for i, item := range items {
		transformed, err := transform(item)
		if err != nil {
			return nil, fmt.Errorf("transform item at index %d: %w", i, err)
		}
		out = append(out, transformed)
	}

	return out, nil
}
