// Package cursor provides cursor-based (keyset) pagination.
//
// Cursor pagination uses the values of the sort columns of the last row of a
// page to resume after it, so every page costs the same regardless of depth
// and concurrent inserts never shift rows between pages.
//
// Cursor Format:
//
//	Cursors are base64-encoded JSON objects keyed by the result key of each
//	ORDER BY column:
//	{"created_at":"2024-01-01T00:00:00Z","id":"abc-123"}
//	→ eyJjcmVhdGVkX2F0IjoiMjAyNC0wMS0wMVQwMDowMDowMFoiLCJpZCI6ImFiYy0xMjMifQ==
//
// A cursor whose keys differ from the active sort keys is rejected with
// paging.ErrInvalidCursor; pagination never restarts silently.
//
// Requirements:
//   - The last ORDER BY column must be unique (typically the primary key)
//   - NULL placement follows PostgreSQL defaults unless set explicitly
package cursor

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/nrfta/jobtrack"
)

// Encode serialises cursor values into an opaque cursor string.
// Keys are emitted in sorted order, so equal values always produce equal cursors.
func Encode(values map[string]any) (string, error) {
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("encode cursor: %w", err)
	}

	return base64.StdEncoding.EncodeToString(data), nil
}

// Decode parses a cursor string and checks that its keys are exactly the
// cursor keys of orderBy.
//
// JSON numbers are normalised to int64 when integral and float64 otherwise.
// Nested objects and arrays are rejected.
func Decode(raw string, orderBy []paging.OrderBy) (*paging.CursorPosition, error) {
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: not base64", paging.ErrInvalidCursor)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var values map[string]any
	if err := dec.Decode(&values); err != nil {
		return nil, fmt.Errorf("%w: not JSON", paging.ErrInvalidCursor)
	}
	if values == nil || dec.More() {
		return nil, fmt.Errorf("%w: not a JSON object", paging.ErrInvalidCursor)
	}

	for key, value := range values {
		normalized, ok := normalizeValue(value)
		if !ok {
			return nil, fmt.Errorf("%w: unsupported value for key %q", paging.ErrInvalidCursor, key)
		}
		values[key] = normalized
	}

	if err := checkKeys(values, orderBy); err != nil {
		return nil, err
	}

	return &paging.CursorPosition{Values: values}, nil
}

func checkKeys(values map[string]any, orderBy []paging.OrderBy) error {
	expected := make(map[string]struct{}, len(orderBy))
	for _, o := range orderBy {
		key := o.CursorKey()
		expected[key] = struct{}{}

		if _, ok := values[key]; !ok {
			return fmt.Errorf("%w: missing key %q", paging.ErrInvalidCursor, key)
		}
	}

	for key := range values {
		if _, ok := expected[key]; !ok {
			return fmt.Errorf("%w: unexpected key %q", paging.ErrInvalidCursor, key)
		}
	}

	return nil
}

func normalizeValue(value any) (any, bool) {
	switch v := value.(type) {
	case nil, string, bool:
		return v, true
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, true
		}
		f, err := v.Float64()
		if err != nil {
			return nil, false
		}
		return f, true
	default:
		return nil, false
	}
}

// CompositeCursorEncoder encodes the sort key values of a row into a cursor.
// It implements paging.CursorEncoder for rows whose values are produced by an
// extractor function.
//
// Type parameter T is the row type (e.g., *jobs.ApplicationRow).
type CompositeCursorEncoder[T any] struct {
	// extractor returns the row's values keyed by result key.
	// It must contain every key used in ORDER BY.
	//
	// Example for sorting by (created_at DESC, id DESC):
	//   func(r *Row) map[string]any {
	//       return map[string]any{
	//           "created_at": r.CreatedAt,
	//           "id":         r.ID,
	//       }
	//   }
	extractor func(T) map[string]any
}

// NewCompositeCursorEncoder creates a cursor encoder from an extractor function.
//
// Example:
//
//	encoder := cursor.NewCompositeCursorEncoder(func(r *Row) map[string]any {
//	    return map[string]any{
//	        "created_at": r.CreatedAt,
//	        "id":         r.ID,
//	    }
//	})
func NewCompositeCursorEncoder[T any](extractor func(T) map[string]any) *CompositeCursorEncoder[T] {
	return &CompositeCursorEncoder[T]{
		extractor: extractor,
	}
}

// Encode implements paging.CursorEncoder.Encode.
// It fails when the extractor does not provide a value for an ORDER BY key.
func (e *CompositeCursorEncoder[T]) Encode(item T, orderBy []paging.OrderBy) (string, error) {
	row := e.extractor(item)
	values := make(map[string]any, len(orderBy))

	for _, o := range orderBy {
		key := o.CursorKey()
		value, ok := row[key]
		if !ok {
			return "", fmt.Errorf("cursor column %q was not present in the row", key)
		}
		values[key] = value
	}

	return Encode(values)
}

// Decode implements paging.CursorEncoder.Decode.
func (e *CompositeCursorEncoder[T]) Decode(cursor string, orderBy []paging.OrderBy) (*paging.CursorPosition, error) {
	return Decode(cursor, orderBy)
}
