package filter

// Operator is a filter comparison.
type Operator string

const (
	Contains           Operator = "contains"
	NotContains        Operator = "not_contains"
	Equals             Operator = "equals"
	NotEquals          Operator = "not_equals"
	StartsWith         Operator = "starts_with"
	EndsWith           Operator = "ends_with"
	IsEmpty            Operator = "is_empty"
	IsNotEmpty         Operator = "is_not_empty"
	GreaterThan        Operator = "gt"
	LessThan           Operator = "lt"
	GreaterThanOrEqual Operator = "gte"
	LessThanOrEqual    Operator = "lte"
	Between            Operator = "between"
	IsTrue             Operator = "is_true"
	IsFalse            Operator = "is_false"
	IsAnyOf            Operator = "is_any_of"
	IsNoneOf           Operator = "is_none_of"
)

// Operators lists every operator.
var Operators = []Operator{
	Contains, NotContains, Equals, NotEquals, StartsWith, EndsWith,
	IsEmpty, IsNotEmpty,
	GreaterThan, LessThan, GreaterThanOrEqual, LessThanOrEqual, Between,
	IsTrue, IsFalse,
	IsAnyOf, IsNoneOf,
}

// Valid reports whether o is a known operator.
func (o Operator) Valid() bool {
	for _, known := range Operators {
		if o == known {
			return true
		}
	}
	return false
}

// ColumnType is the declared type of a column. It decides what "empty" means
// and how custom column values compare.
type ColumnType string

const (
	TypeText        ColumnType = "text"
	TypeNumber      ColumnType = "number"
	TypeDate        ColumnType = "date"
	TypeURL         ColumnType = "url"
	TypeCheckbox    ColumnType = "checkbox"
	TypeSelect      ColumnType = "select"
	TypeMultiSelect ColumnType = "multi_select"
)

// IsNullOnly reports whether only NULL counts as empty for the type.
// Text-like types also treat the empty string as empty.
func (t ColumnType) IsNullOnly() bool {
	switch t {
	case TypeSelect, TypeMultiSelect, TypeDate, TypeNumber:
		return true
	default:
		return false
	}
}

// IsSelect reports whether values of the type are option references.
func (t ColumnType) IsSelect() bool {
	return t == TypeSelect || t == TypeMultiSelect
}

// Valid reports whether t is a known column type. The empty type is valid.
func (t ColumnType) Valid() bool {
	switch t {
	case "", TypeText, TypeNumber, TypeDate, TypeURL, TypeCheckbox, TypeSelect, TypeMultiSelect:
		return true
	default:
		return false
	}
}
