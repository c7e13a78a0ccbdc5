package value

import (
	"math"
	"strconv"
)

type Value struct {
	Type Type

	Bool   bool
	Int    int64
	Float  float64
	String string

	// Fields holds object keys. For objects it is parallel to Values.
	Fields []string
	Values []*Value
}

func Nil() *Value {
	return &Value{Type: NilType}
}

func FromBool(v bool) *Value {
	return &Value{Type: BoolType, Bool: v}
}

func FromInt(v int64) *Value {
	return &Value{Type: IntType, Int: v}
}

func FromFloat(v float64) *Value {
	return &Value{Type: FloatType, Float: v}
}

func FromString(v string) *Value {
	return &Value{Type: StringType, String: v}
}

// FromSlice builds an array holding vs. The slice is not copied.
func FromSlice(vs []*Value) *Value {
	if vs == nil {
		vs = []*Value{}
	}
	return &Value{Type: ArrayType, Values: vs}
}

type KeyVal struct {
	Key string
	Val *Value
}

// FromKeyVals builds an object from kvs in order. A repeated key keeps the
// position of its first occurrence and the value of its last.
func FromKeyVals(kvs []KeyVal) *Value {
	res := &Value{
		Type:   ObjectType,
		Fields: make([]string, 0, len(kvs)),
		Values: make([]*Value, 0, len(kvs)),
	}
	pos := make(map[string]int, len(kvs))
	for _, kv := range kvs {
		if i, ok := pos[kv.Key]; ok {
			res.Values[i] = kv.Val
			continue
		}
		pos[kv.Key] = len(res.Fields)
		res.Fields = append(res.Fields, kv.Key)
		res.Values = append(res.Values, kv.Val)
	}
	return res
}

func (v *Value) index(key string) int {
	for i, f := range v.Fields {
		if f == key {
			return i
		}
	}
	return -1
}

// fieldIndex maps each key of the object v to its position.
func (v *Value) fieldIndex() map[string]int {
	res := make(map[string]int, len(v.Fields))
	for i, f := range v.Fields {
		res[f] = i
	}
	return res
}

// Get returns the value stored under key, or nil if v is not an object or
// has no such key.
func (v *Value) Get(key string) *Value {
	if v.Type != ObjectType {
		return nil
	}
	if i := v.index(key); i >= 0 {
		return v.Values[i]
	}
	return nil
}

// KeyVals returns the entries of the object v in order.
func (v *Value) KeyVals() []KeyVal {
	if v.Type != ObjectType {
		return nil
	}
	res := make([]KeyVal, len(v.Fields))
	for i, f := range v.Fields {
		res[i] = KeyVal{Key: f, Val: v.Values[i]}
	}
	return res
}

// Len returns the number of elements of an array or entries of an object.
func (v *Value) Len() int {
	switch v.Type {
	case ArrayType, ObjectType:
		return len(v.Values)
	}
	return 0
}

func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	res := &Value{
		Type:   v.Type,
		Bool:   v.Bool,
		Int:    v.Int,
		Float:  v.Float,
		String: v.String,
	}
	if v.Fields != nil {
		res.Fields = make([]string, len(v.Fields))
		copy(res.Fields, v.Fields)
	}
	if v.Values != nil {
		res.Values = make([]*Value, len(v.Values))
		for i, vv := range v.Values {
			res.Values[i] = vv.Clone()
		}
	}
	return res
}

// Equal reports whether a and b are structurally identical, object key order
// included. Floats compare by bit pattern so NaN equals itself.
func Equal(a, b *Value) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NilType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case IntType:
		return a.Int == b.Int
	case FloatType:
		return math.Float64bits(a.Float) == math.Float64bits(b.Float)
	case StringType:
		return a.String == b.String
	case ObjectType:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i] != b.Fields[i] {
				return false
			}
		}
	}
	if len(a.Values) != len(b.Values) {
		return false
	}
	for i := range a.Values {
		if !Equal(a.Values[i], b.Values[i]) {
			return false
		}
	}
	return true
}

func (v *Value) Equal(o *Value) bool {
	return Equal(v, o)
}

// Text returns the plain textual form of a scalar: "~" for nil, decimal
// numbers, and strings verbatim. ok is false for arrays and objects.
func (v *Value) Text() (s string, ok bool) {
	switch v.Type {
	case NilType:
		return "~", true
	case BoolType:
		return strconv.FormatBool(v.Bool), true
	case IntType:
		return strconv.FormatInt(v.Int, 10), true
	case FloatType:
		return FormatFloat(v.Float), true
	case StringType:
		return v.String, true
	}
	return "", false
}

// FormatFloat formats f with the shortest representation that reads back to
// the same float64.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
