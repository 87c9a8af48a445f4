package domain

// ValueType defines the type of a value flowing through a synthesized program
type ValueType string

const (
	// TypeString represents textual values
	TypeString ValueType = "string"

	// TypeInt represents integer values
	TypeInt ValueType = "int"

	// TypeFloat represents floating point values
	TypeFloat ValueType = "float"

	// TypeBool represents boolean values
	TypeBool ValueType = "bool"

	// TypeAny matches every value type
	TypeAny ValueType = "any"
)

// IsValid checks if the ValueType is valid
func (vt ValueType) IsValid() bool {
	switch vt {
	case TypeString, TypeInt, TypeFloat, TypeBool, TypeAny:
		return true
	default:
		return false
	}
}

// String returns string representation of ValueType
func (vt ValueType) String() string {
	return string(vt)
}

// AssignableTo reports whether a value of this type can fill a slot
// expecting the target type: exact match, or a target of TypeAny.
func (vt ValueType) AssignableTo(target ValueType) bool {
	return vt == target || target == TypeAny
}

// ParseValueType parses a textual type annotation into a ValueType.
func ParseValueType(s string) (ValueType, bool) {
	vt := ValueType(s)
	if vt.IsValid() {
		return vt, true
	}
	return "", false
}

// InferType infers the ValueType from a Go value
func InferType(v interface{}) ValueType {
	switch v.(type) {
	case string:
		return TypeString
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return TypeInt
	case float32, float64:
		return TypeFloat
	case bool:
		return TypeBool
	default:
		return TypeAny
	}
}
