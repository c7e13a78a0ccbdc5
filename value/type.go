package value

type Type int

const (
	NilType Type = iota
	BoolType
	IntType
	FloatType
	StringType
	ArrayType
	ObjectType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		NilType:    "Nil",
		BoolType:   "Boolean",
		IntType:    "Integer",
		FloatType:  "Float",
		StringType: "String",
		ArrayType:  "Array",
		ObjectType: "Object",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// IsScalar reports whether values of type t carry no children.
func (t Type) IsScalar() bool {
	switch t {
	case ArrayType, ObjectType:
		return false
	default:
		return true
	}
}
