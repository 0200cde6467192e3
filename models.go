package paging

// CursorPage is one page of cursor pagination.
//
// JSON shape:
//
//	{"data": [...], "pagination": {"hasNextPage": true, "cursor": "eyJ..."}}
type CursorPage[T any] struct {
	Data       []T        `json:"data"`
	Pagination PageCursor `json:"pagination"`
}

// PageCursor is the pagination metadata of a CursorPage.
type PageCursor struct {
	// HasNextPage is true when at least one row follows the page.
	HasNextPage bool `json:"hasNextPage"`

	// Cursor resumes pagination after the last row of the page.
	// It is nil when HasNextPage is false.
	Cursor *string `json:"cursor"`
}

// OffsetPage is one page of offset pagination.
type OffsetPage[T any] struct {
	Data []T        `json:"data"`
	Meta OffsetMeta `json:"meta"`
}

// OffsetMeta is the page metadata of offset pagination. Pages are 1-indexed;
// Prev and Next are skip values for the neighbouring pages.
type OffsetMeta struct {
	Total       int  `json:"total"`
	LastPage    int  `json:"lastPage"`
	CurrentPage int  `json:"currentPage"`
	PerPage     int  `json:"perPage"`
	Prev        *int `json:"prev"`
	Next        *int `json:"next"`
}
