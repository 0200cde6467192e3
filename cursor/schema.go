package cursor

import (
	"fmt"

	"github.com/nrfta/jobtrack"
)

// Direction represents the sort direction for a field.
type Direction bool

const (
	ASC  Direction = false
	DESC Direction = true
)

// Sort is a caller's choice of sortable field and direction.
type Sort struct {
	Field string
	Desc  bool
}

// FieldOption configures a schema field.
type FieldOption func(*fieldOptions)

type fieldOptions struct {
	nulls paging.Nulls
}

// WithNulls sets an explicit NULL placement for the field.
func WithNulls(nulls paging.Nulls) FieldOption {
	return func(o *fieldOptions) {
		o.nulls = nulls
	}
}

// fieldSpec defines a single sortable field in a schema.
type fieldSpec[T any] struct {
	name      string        // Name callers sort by: "company_name"
	column    string        // SQL expression: "ja.company_name"
	cursorKey string        // Result and cursor key: "company_name"
	extractor func(T) any   // Extract value from item
	nulls     paging.Nulls  // NULL placement override
	isFixed   bool          // Fixed vs user-sortable
	direction Direction     // For fixed fields
	position  int           // Declaration order
}

func (f *fieldSpec[T]) orderBy(desc bool) paging.OrderBy {
	return paging.OrderBy{
		Column: f.column,
		Key:    f.cursorKey,
		Desc:   desc,
		Nulls:  f.nulls,
	}
}

// Schema defines the sortable and fixed fields for cursor pagination.
// It is the single source of truth for ORDER BY construction and cursor
// encoding, so the two can never disagree.
//
// Fixed fields declared before every sortable field are prepended to ORDER
// BY; fixed fields declared after them are appended.
//
// Example:
//
//	var applicationSchema = cursor.NewSchema[*ApplicationRow]().
//	    Field("company_name", "ja.company_name", "company_name", func(r *ApplicationRow) any { return r.CompanyName }).
//	    Field("created_at", "ja.created_at", "created_at", func(r *ApplicationRow) any { return r.CreatedAt }).
//	    FixedField("ja.id", cursor.ASC, "id", func(r *ApplicationRow) any { return r.ID })
type Schema[T any] struct {
	sortableFields map[string]*fieldSpec[T] // Map of field name to field spec
	keys           map[string]*fieldSpec[T] // Map of cursor key to field spec
	fixedFields    []*fieldSpec[T]          // Fixed fields in declaration order
	nextPosition   int                      // Track declaration order
	firstSortable  int
	lastSortable   int
}

// NewSchema creates a new Schema for cursor pagination.
func NewSchema[T any]() *Schema[T] {
	return &Schema[T]{
		sortableFields: make(map[string]*fieldSpec[T]),
		keys:           make(map[string]*fieldSpec[T]),
		fixedFields:    make([]*fieldSpec[T], 0),
		firstSortable:  -1,
		lastSortable:   -1,
	}
}

// Field adds a user-sortable field to the schema.
//
// Parameters:
//   - name: Name used by callers to select the field
//   - column: SQL expression sorted on (can be qualified: "ja.created_at")
//   - cursorKey: Key the value carries in rows and cursors
//   - extractor: Function to extract the value from an item
func (s *Schema[T]) Field(name, column, cursorKey string, extractor func(T) any, opts ...FieldOption) *Schema[T] {
	spec := s.newField(column, cursorKey, extractor, opts)
	spec.name = name

	if s.firstSortable == -1 {
		s.firstSortable = spec.position
	}
	s.lastSortable = spec.position

	s.sortableFields[name] = spec
	return s
}

// FixedField adds a fixed field to the schema.
// Fixed fields are always included in ORDER BY and cursors but cannot be
// chosen by callers.
//
// Example:
//
//	schema.FixedField("ja.id", cursor.ASC, "id", func(r *Row) any { return r.ID })
func (s *Schema[T]) FixedField(column string, direction Direction, cursorKey string, extractor func(T) any, opts ...FieldOption) *Schema[T] {
	spec := s.newField(column, cursorKey, extractor, opts)
	spec.isFixed = true
	spec.direction = direction

	s.fixedFields = append(s.fixedFields, spec)
	return s
}

func (s *Schema[T]) newField(column, cursorKey string, extractor func(T) any, opts []FieldOption) *fieldSpec[T] {
	var o fieldOptions
	for _, opt := range opts {
		opt(&o)
	}

	spec := &fieldSpec[T]{
		column:    column,
		cursorKey: cursorKey,
		extractor: extractor,
		nulls:     o.nulls,
		position:  s.nextPosition,
	}
	s.nextPosition++
	s.keys[cursorKey] = spec

	return spec
}

// BuildOrderBy constructs the complete ORDER BY including fixed fields.
// It returns an error for a sort field not registered in the schema.
//
// Example:
//
//	schema.FixedField("tenant_id", ASC, ...)  // Declared first
//	schema.Field("name", ...)                  // User-sortable
//	schema.FixedField("id", DESC, ...)         // Declared last
//
//	BuildOrderBy(Sort{Field: "name", Desc: true})
//	// Returns: [tenant_id ASC, name DESC, id DESC]
func (s *Schema[T]) BuildOrderBy(sorts ...Sort) ([]paging.OrderBy, error) {
	result := make([]paging.OrderBy, 0, len(sorts)+len(s.fixedFields))

	for _, spec := range s.fixedFields {
		if s.firstSortable == -1 || spec.position < s.firstSortable {
			result = append(result, spec.orderBy(bool(spec.direction)))
		}
	}

	for _, sort := range sorts {
		spec, ok := s.sortableFields[sort.Field]
		if !ok {
			return nil, fmt.Errorf("invalid sort field: %s (not registered in schema)", sort.Field)
		}
		result = append(result, spec.orderBy(sort.Desc))
	}

	for _, spec := range s.fixedFields {
		if s.firstSortable != -1 && spec.position > s.lastSortable {
			result = append(result, spec.orderBy(bool(spec.direction)))
		}
	}

	return result, nil
}

// Extract returns the values of item for the cursor keys of orderBy.
func (s *Schema[T]) Extract(item T, orderBy []paging.OrderBy) (map[string]any, error) {
	values := make(map[string]any, len(orderBy))

	for _, o := range orderBy {
		key := o.CursorKey()
		spec, ok := s.keys[key]
		if !ok {
			return nil, fmt.Errorf("cursor key %q is not registered in schema", key)
		}
		values[key] = spec.extractor(item)
	}

	return values, nil
}

// Encode implements paging.CursorEncoder.Encode.
func (s *Schema[T]) Encode(item T, orderBy []paging.OrderBy) (string, error) {
	values, err := s.Extract(item, orderBy)
	if err != nil {
		return "", err
	}

	return Encode(values)
}

// Decode implements paging.CursorEncoder.Decode.
func (s *Schema[T]) Decode(cursor string, orderBy []paging.OrderBy) (*paging.CursorPosition, error) {
	return Decode(cursor, orderBy)
}
