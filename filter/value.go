package filter

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/friendsofgo/errors"
)

// Kind is the shape of a filter Value.
type Kind int

const (
	KindAbsent Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	// KindInvalid marks a value that decoded from an unsupported JSON shape.
	// Every operator that needs a value rejects it.
	KindInvalid
)

// Value is the operand of a filter: a string, a number, a boolean, a list of
// scalars, or absent.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	list []Value
}

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a numeric Value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// List returns a list Value.
func List(items ...Value) Value { return Value{kind: KindList, list: items} }

// Strings returns a list Value of strings.
func Strings(items ...string) Value {
	list := make([]Value, len(items))
	for i, s := range items {
		list[i] = String(s)
	}
	return List(list...)
}

// Absent returns the Value of a filter without operand.
func Absent() Value { return Value{} }

// Kind reports the shape of v.
func (v Value) Kind() Kind { return v.kind }

func (v Value) IsAbsent() bool  { return v.kind == KindAbsent }
func (v Value) IsString() bool  { return v.kind == KindString }
func (v Value) IsNumber() bool  { return v.kind == KindNumber }
func (v Value) IsBoolean() bool { return v.kind == KindBool }

// IsStringList reports whether v is a list whose elements are all strings.
// An empty list is a string list.
func (v Value) IsStringList() bool {
	if v.kind != KindList {
		return false
	}
	for _, item := range v.list {
		if !item.IsString() {
			return false
		}
	}
	return true
}

func (v Value) IsStringOrNumber() bool  { return v.IsString() || v.IsNumber() }
func (v Value) IsStringOrBoolean() bool { return v.IsString() || v.IsBoolean() }
func (v Value) IsPrimitive() bool       { return v.IsString() || v.IsNumber() || v.IsBoolean() }

// Pair returns the bounds of a two element list of strings or numbers.
func (v Value) Pair() (lower, upper Value, ok bool) {
	if v.kind != KindList || len(v.list) != 2 {
		return Value{}, Value{}, false
	}
	if !v.list[0].IsStringOrNumber() || !v.list[1].IsStringOrNumber() {
		return Value{}, Value{}, false
	}
	return v.list[0], v.list[1], true
}

// Str returns the string of a string Value.
func (v Value) Str() string { return v.str }

// Num returns the number of a numeric Value.
func (v Value) Num() float64 { return v.num }

// Items returns the elements of a list Value.
func (v Value) Items() []Value { return v.list }

// StringItems returns the elements of a string list.
func (v Value) StringItems() []string {
	out := make([]string, 0, len(v.list))
	for _, item := range v.list {
		out = append(out, item.str)
	}
	return out
}

// Arg returns v as a SQL argument. Integral numbers become int64.
func (v Value) Arg() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		if i := int64(v.num); float64(i) == v.num {
			return i
		}
		return v.num
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// Text returns the stored text form of a primitive: numbers in decimal
// notation and booleans as "true" or "false".
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// UnmarshalJSON decodes a string, number, boolean or list of those. JSON null
// decodes to an absent Value; any other shape decodes to an invalid Value.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return errors.Wrap(err, "decode filter value")
	}

	*v = fromJSON(raw, true)
	return nil
}

func fromJSON(raw any, top bool) Value {
	switch x := raw.(type) {
	case nil:
		if top {
			return Absent()
		}
	case string:
		return String(x)
	case bool:
		return Bool(x)
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return Number(f)
		}
	case []any:
		if top {
			items := make([]Value, len(x))
			for i, item := range x {
				items[i] = fromJSON(item, false)
				if items[i].kind == KindInvalid {
					return Value{kind: KindInvalid}
				}
			}
			return List(items...)
		}
	}
	return Value{kind: KindInvalid}
}

// MarshalJSON encodes v in the shape it was decoded from.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindList:
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}
