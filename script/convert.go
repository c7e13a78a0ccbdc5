package script

import (
	"fmt"
	"math"
	"slices"

	"github.com/signadot/rmarshal/value"

	lua "github.com/yuin/gopher-lua"
)

const (
	nullClass   = "NullClass"
	arrayClass  = "Array"
	objectClass = "Object"

	// tables nested deeper than this are assumed to be cyclic
	maxDepth = 1000
)

func (e *Env) className(t *lua.LTable) string {
	if s, ok := e.L.GetField(t, "_classname").(lua.LString); ok {
		return string(s)
	}
	return ""
}

func (e *Env) toValue(lv lua.LValue, depth int) (*value.Value, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d", ErrConversion, maxDepth)
	}
	switch x := lv.(type) {
	case *lua.LNilType:
		return value.Nil(), nil
	case lua.LBool:
		return value.FromBool(bool(x)), nil
	case lua.LNumber:
		return plainNumber(x).value(), nil
	case lua.LString:
		return value.FromString(string(x)), nil
	case *lua.LTable:
		return e.tableValue(x, depth)
	case *lua.LUserData:
		if n, ok := boxedNumber(x); ok {
			return n.value(), nil
		}
	}
	return nil, fmt.Errorf("%w: unsupported type %s", ErrConversion, lv.Type())
}

func (e *Env) tableValue(t *lua.LTable, depth int) (*value.Value, error) {
	switch cls := e.className(t); cls {
	case nullClass:
		return value.Nil(), nil
	case arrayClass:
		return e.sequenceValue(t, depth)
	case objectClass:
		return e.objectValue(t, depth)
	case "":
	default:
		return nil, fmt.Errorf("%w: instance of %s", ErrConversion, cls)
	}
	if isSequence(t) {
		return e.sequenceValue(t, depth)
	}
	return e.plainTableValue(t, depth)
}

// isSequence reports whether the keys of t are exactly 1..n.
func isSequence(t *lua.LTable) bool {
	n := t.Len()
	count := 0
	seq := true
	t.ForEach(func(k, _ lua.LValue) {
		count++
		num, ok := k.(lua.LNumber)
		if !ok {
			seq = false
			return
		}
		f := float64(num)
		if f != math.Trunc(f) || f < 1 || f > float64(n) {
			seq = false
		}
	})
	return seq && count == n
}

func (e *Env) sequenceValue(t *lua.LTable, depth int) (*value.Value, error) {
	n := t.Len()
	res := make([]*value.Value, n)
	for i := 1; i <= n; i++ {
		v, err := e.toValue(t.RawGetInt(i), depth+1)
		if err != nil {
			return nil, err
		}
		res[i-1] = v
	}
	return value.FromSlice(res), nil
}

func (e *Env) objectValue(t *lua.LTable, depth int) (*value.Value, error) {
	keys, ok := t.RawGetString("_keys").(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: Object without key list", ErrConversion)
	}
	vals, ok := t.RawGetString("_values").(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: Object without value table", ErrConversion)
	}
	n := keys.Len()
	kvs := make([]value.KeyVal, 0, n)
	for i := 1; i <= n; i++ {
		k, ok := keys.RawGetInt(i).(lua.LString)
		if !ok {
			return nil, fmt.Errorf("%w: Object key %d is not a string", ErrConversion, i)
		}
		v, err := e.toValue(vals.RawGet(k), depth+1)
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, value.KeyVal{Key: string(k), Val: v})
	}
	return value.FromKeyVals(kvs), nil
}

// plainTableValue converts a table that is neither tagged nor a sequence.
// Lua does not order such tables, so keys are sorted.
func (e *Env) plainTableValue(t *lua.LTable, depth int) (*value.Value, error) {
	var (
		keys   []string
		badKey lua.LValue
	)
	t.ForEach(func(k, _ lua.LValue) {
		s, ok := k.(lua.LString)
		if !ok {
			badKey = k
			return
		}
		keys = append(keys, string(s))
	})
	if badKey != nil {
		return nil, fmt.Errorf("%w: table key %s of type %s", ErrConversion, badKey.String(), badKey.Type())
	}
	slices.Sort(keys)
	kvs := make([]value.KeyVal, 0, len(keys))
	for _, k := range keys {
		v, err := e.toValue(t.RawGetString(k), depth+1)
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, value.KeyVal{Key: k, Val: v})
	}
	return value.FromKeyVals(kvs), nil
}
