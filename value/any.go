package value

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
)

var ErrUnsupported = errors.New("unsupported go value")

// ToAny converts v to plain Go values: nil, bool, int64, float64, string,
// []any and map[string]any. Object key order is lost.
func ToAny(v *Value) any {
	switch v.Type {
	case BoolType:
		return v.Bool
	case IntType:
		return v.Int
	case FloatType:
		return v.Float
	case StringType:
		return v.String
	case ArrayType:
		res := make([]any, len(v.Values))
		for i, elt := range v.Values {
			res[i] = ToAny(elt)
		}
		return res
	case ObjectType:
		res := make(map[string]any, len(v.Fields))
		for i, f := range v.Fields {
			res[f] = ToAny(v.Values[i])
		}
		return res
	}
	return nil
}

// FromAny converts a tree of plain Go values into a Value. Map keys are
// sorted since Go maps carry no order.
func FromAny(x any) (*Value, error) {
	switch t := x.(type) {
	case nil:
		return Nil(), nil
	case *Value:
		return t.Clone(), nil
	case bool:
		return FromBool(t), nil
	case int:
		return FromInt(int64(t)), nil
	case int8:
		return FromInt(int64(t)), nil
	case int16:
		return FromInt(int64(t)), nil
	case int32:
		return FromInt(int64(t)), nil
	case int64:
		return FromInt(t), nil
	case uint:
		return fromUint(uint64(t))
	case uint8:
		return FromInt(int64(t)), nil
	case uint16:
		return FromInt(int64(t)), nil
	case uint32:
		return FromInt(int64(t)), nil
	case uint64:
		return fromUint(t)
	case float32:
		return FromFloat(float64(t)), nil
	case float64:
		return FromFloat(t), nil
	case string:
		return FromString(t), nil
	case []*Value:
		res := make([]*Value, len(t))
		for i, elt := range t {
			res[i] = elt.Clone()
		}
		return FromSlice(res), nil
	case []any:
		res := make([]*Value, len(t))
		for i, elt := range t {
			v, err := FromAny(elt)
			if err != nil {
				return nil, err
			}
			res[i] = v
		}
		return FromSlice(res), nil
	case map[string]any:
		kvs := make([]KeyVal, 0, len(t))
		for _, k := range slices.Sorted(maps.Keys(t)) {
			v, err := FromAny(t[k])
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, KeyVal{Key: k, Val: v})
		}
		return FromKeyVals(kvs), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupported, x)
}

func fromUint(u uint64) (*Value, error) {
	if u > math.MaxInt64 {
		return nil, fmt.Errorf("%w: %d overflows int64", ErrUnsupported, u)
	}
	return FromInt(int64(u)), nil
}
