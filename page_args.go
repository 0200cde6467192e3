package paging

import "fmt"

const (
	// DefaultPageSize is the number of rows per page when take is not specified.
	DefaultPageSize = 20

	// DefaultMaxPageSize is the largest page size accepted by default.
	// This protects against resource exhaustion from unreasonably large page requests.
	DefaultMaxPageSize = 100
)

// PageConfig holds pagination configuration options.
// Use NewPageConfig() to create a config with sensible defaults,
// then customize using the With* methods.
//
// Example:
//
//	config := paging.NewPageConfig().WithMaxSize(50)
//	take, err := config.Take(args.Take)
type PageConfig struct {
	// DefaultSize is the page size used when take is not specified.
	DefaultSize int

	// MaxSize is the maximum allowed page size. Larger requests are rejected.
	MaxSize int
}

// NewPageConfig creates a PageConfig with sensible defaults:
// - DefaultSize: 20
// - MaxSize: 100
func NewPageConfig() *PageConfig {
	return &PageConfig{
		DefaultSize: DefaultPageSize,
		MaxSize:     DefaultMaxPageSize,
	}
}

// WithDefaultSize sets the default page size and returns the config for chaining.
func (c *PageConfig) WithDefaultSize(size int) *PageConfig {
	if size > 0 {
		c.DefaultSize = size
	}
	return c
}

// WithMaxSize sets the maximum page size and returns the config for chaining.
func (c *PageConfig) WithMaxSize(size int) *PageConfig {
	if size > 0 {
		c.MaxSize = size
	}
	return c
}

// Take resolves the requested page size:
// - nil returns DefaultSize
// - zero or negative returns ErrInvalidTake
// - above MaxSize returns a *PageSizeError
func (c *PageConfig) Take(requested *int) (int, error) {
	if c == nil {
		c = NewPageConfig()
	}

	defaultSize := c.DefaultSize
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}

	maxSize := c.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxPageSize
	}

	if requested == nil {
		return min(defaultSize, maxSize), nil
	}

	if *requested <= 0 {
		return 0, ErrInvalidTake
	}

	if *requested > maxSize {
		return 0, &PageSizeError{
			Requested: *requested,
			Maximum:   maxSize,
		}
	}

	return *requested, nil
}

// PageArgs represents cursor pagination request parameters.
type PageArgs struct {
	Take   *int    `json:"take,omitempty"`
	Cursor *string `json:"cursor,omitempty"`
}

// GetTake returns the requested page size.
func (pa *PageArgs) GetTake() *int {
	if pa == nil {
		return nil
	}
	return pa.Take
}

// GetCursor returns the cursor to resume after, or nil for the first page.
// An empty string is treated as no cursor.
func (pa *PageArgs) GetCursor() *string {
	if pa == nil || pa.Cursor == nil || *pa.Cursor == "" {
		return nil
	}
	return pa.Cursor
}

// OffsetArgs represents offset pagination request parameters.
type OffsetArgs struct {
	Skip int  `json:"skip,omitempty"`
	Take *int `json:"take,omitempty"`
}

// PageSizeError is returned when the requested page size exceeds the maximum allowed.
type PageSizeError struct {
	Requested int
	Maximum   int
}

func (e *PageSizeError) Error() string {
	return fmt.Sprintf("requested page size %d exceeds maximum allowed page size of %d",
		e.Requested, e.Maximum)
}

// PaginateOption configures page size limits for a paginator.
//
// Example:
//
//	paginator := cursor.New(fetcher, encoder,
//	    paging.WithMaxSize(100),
//	    paging.WithDefaultSize(25),
//	)
type PaginateOption func(*paginateConfig)

// paginateConfig holds page size configuration for a paginator.
type paginateConfig struct {
	maxSize     int
	defaultSize int
}

// WithMaxSize sets the maximum page size.
func WithMaxSize(size int) PaginateOption {
	return func(c *paginateConfig) {
		if size > 0 {
			c.maxSize = size
		}
	}
}

// WithDefaultSize sets the page size used when take is not specified.
func WithDefaultSize(size int) PaginateOption {
	return func(c *paginateConfig) {
		if size > 0 {
			c.defaultSize = size
		}
	}
}

// WithPageConfig copies the sizes of an existing PageConfig.
func WithPageConfig(pc *PageConfig) PaginateOption {
	return func(c *paginateConfig) {
		if pc == nil {
			return
		}
		if pc.MaxSize > 0 {
			c.maxSize = pc.MaxSize
		}
		if pc.DefaultSize > 0 {
			c.defaultSize = pc.DefaultSize
		}
	}
}

// ApplyPaginateOptions applies functional options and returns a PageConfig.
// This is an internal helper used by all paginators.
func ApplyPaginateOptions(opts ...PaginateOption) *PageConfig {
	cfg := &paginateConfig{
		maxSize:     DefaultMaxPageSize,
		defaultSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &PageConfig{
		MaxSize:     cfg.maxSize,
		DefaultSize: cfg.defaultSize,
	}
}
