package paging

import "github.com/friendsofgo/errors"

var (
	// ErrInvalidCursor is returned when a cursor cannot be decoded or does not
	// match the active sort keys. Pagination never restarts silently.
	ErrInvalidCursor = errors.New("invalid cursor")

	// ErrInvalidTake is returned for a page size that is not a positive integer.
	ErrInvalidTake = errors.New("take must be a positive integer")

	// ErrInvalidSkip is returned for a negative offset.
	ErrInvalidSkip = errors.New("skip must not be negative")

	// ErrCountUnavailable is returned when the count query of offset
	// pagination yields no row.
	ErrCountUnavailable = errors.New("failed to retrieve total count from database")
)
