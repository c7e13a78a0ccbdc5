package script

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/rmarshal/value"

	lua "github.com/yuin/gopher-lua"
)

// number holds what a plain Lua number cannot: the kind of an integral
// float, or the exact value of an integer beyond 2^53. Such numbers live in
// the Lua state as userdata with the Number metatable; every other number
// is a plain lua.LNumber.
type number struct {
	float bool
	i     int64
	f     float64
}

const (
	numberClass = "Number"

	// integers up to this magnitude are exact as float64
	maxExact = 1 << 53
)

func intNumber(i int64) number {
	return number{i: i}
}

func floatNumber(f float64) number {
	return number{float: true, f: f}
}

// plainNumber reads a lua.LNumber: integral values within int64 range are
// integers.
func plainNumber(x lua.LNumber) number {
	f := float64(x)
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return intNumber(int64(f))
	}
	return floatNumber(f)
}

func (n number) toFloat() float64 {
	if n.float {
		return n.f
	}
	return float64(n.i)
}

func (n number) value() *value.Value {
	if n.float {
		return value.FromFloat(n.f)
	}
	return value.FromInt(n.i)
}

// String formats n like tostring does in Lua 5.3: floats always show a
// fraction or an exponent.
func (n number) String() string {
	if !n.float {
		return strconv.FormatInt(n.i, 10)
	}
	switch {
	case math.IsNaN(n.f):
		return "nan"
	case math.IsInf(n.f, 1):
		return "inf"
	case math.IsInf(n.f, -1):
		return "-inf"
	}
	s := value.FormatFloat(n.f)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// boxed reports whether n needs a Number userdata to survive in Lua.
func (n number) boxed() bool {
	if n.float {
		return n.f == math.Trunc(n.f) && !math.IsInf(n.f, 0)
	}
	return n.i > maxExact || n.i < -maxExact
}

func newNumber(L *lua.LState, n number) lua.LValue {
	if !n.boxed() {
		return lua.LNumber(n.toFloat())
	}
	ud := L.NewUserData()
	ud.Value = n
	ud.Metatable = L.GetTypeMetatable(numberClass)
	return ud
}

func boxedNumber(lv lua.LValue) (number, bool) {
	ud, ok := lv.(*lua.LUserData)
	if !ok {
		return number{}, false
	}
	n, ok := ud.Value.(number)
	return n, ok
}

// numeric reads a plain or boxed number.
func numeric(lv lua.LValue) (number, bool) {
	if x, ok := lv.(lua.LNumber); ok {
		return plainNumber(x), true
	}
	return boxedNumber(lv)
}

// coerce is numeric plus the string conversion Lua applies to arithmetic
// operands.
func coerce(lv lua.LValue) (number, bool) {
	if s, ok := lv.(lua.LString); ok {
		n, err := parseLiteral(strings.TrimSpace(string(s)))
		return n, err == nil
	}
	return numeric(lv)
}

// parseLiteral reads a Lua numeric literal the way Lua 5.3 does: decimal
// integers that overflow and anything with a fraction or exponent are
// floats, hexadecimal integers wrap around.
func parseLiteral(s string) (number, error) {
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		u, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return number{}, err
		}
		return intNumber(int64(u)), nil
	}
	if !strings.ContainsAny(s, ".eEnN") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return intNumber(i), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return number{}, err
	}
	return floatNumber(f), nil
}

func arith(op string, a, b number) (number, error) {
	ints := !a.float && !b.float
	switch op {
	case "+":
		if ints {
			return intNumber(a.i + b.i), nil
		}
		return floatNumber(a.toFloat() + b.toFloat()), nil
	case "-":
		if ints {
			return intNumber(a.i - b.i), nil
		}
		return floatNumber(a.toFloat() - b.toFloat()), nil
	case "*":
		if ints {
			return intNumber(a.i * b.i), nil
		}
		return floatNumber(a.toFloat() * b.toFloat()), nil
	case "/":
		return floatNumber(a.toFloat() / b.toFloat()), nil
	case "%":
		if ints {
			if b.i == 0 {
				return number{}, fmt.Errorf("attempt to perform 'n%%%%0'")
			}
			m := a.i % b.i
			if m != 0 && (m^b.i) < 0 {
				m += b.i
			}
			return intNumber(m), nil
		}
		x, y := a.toFloat(), b.toFloat()
		m := math.Mod(x, y)
		if m != 0 && (m < 0) != (y < 0) {
			m += y
		}
		return floatNumber(m), nil
	case "^":
		return floatNumber(math.Pow(a.toFloat(), b.toFloat())), nil
	}
	return number{}, fmt.Errorf("unknown operator %s", op)
}

// compare returns -1, 0 or 1, and false when either side is NaN.
func compare(a, b number) (int, bool) {
	if !a.float && !b.float {
		switch {
		case a.i < b.i:
			return -1, true
		case a.i > b.i:
			return 1, true
		}
		return 0, true
	}
	x, y := a.toFloat(), b.toFloat()
	switch {
	case x < y:
		return -1, true
	case x > y:
		return 1, true
	case x == y:
		return 0, true
	}
	return 0, false
}

func typeName(lv lua.LValue) string {
	if _, ok := boxedNumber(lv); ok {
		return "number"
	}
	return lv.Type().String()
}

func numberArith(op string) lua.LGFunction {
	return func(L *lua.LState) int {
		a, okA := coerce(L.Get(1))
		b, okB := coerce(L.Get(2))
		if !okA || !okB {
			bad := L.Get(1)
			if okA {
				bad = L.Get(2)
			}
			L.RaiseError("attempt to perform arithmetic on a %s value", typeName(bad))
		}
		n, err := arith(op, a, b)
		if err != nil {
			L.RaiseError("%s", err.Error())
		}
		L.Push(newNumber(L, n))
		return 1
	}
}

func numberUnm(L *lua.LState) int {
	n, _ := numeric(L.Get(1))
	if n.float {
		n.f = -n.f
	} else {
		n.i = -n.i
	}
	L.Push(newNumber(L, n))
	return 1
}

func numberToString(L *lua.LState) int {
	n, _ := numeric(L.Get(1))
	L.Push(lua.LString(n.String()))
	return 1
}

func numberConcat(L *lua.LState) int {
	sb := &strings.Builder{}
	for i := 1; i <= 2; i++ {
		lv := L.Get(i)
		if n, ok := boxedNumber(lv); ok {
			sb.WriteString(n.String())
			continue
		}
		if !lua.LVCanConvToString(lv) {
			L.RaiseError("attempt to concatenate a %s value", typeName(lv))
		}
		sb.WriteString(lua.LVAsString(lv))
	}
	L.Push(lua.LString(sb.String()))
	return 1
}

// relation evaluates a comparison operator, numerically when either side
// is boxed.
func relation(L *lua.LState, op string, a, b lua.LValue) bool {
	_, boxA := boxedNumber(a)
	_, boxB := boxedNumber(b)
	if !boxA && !boxB {
		switch op {
		case "==":
			return L.Equal(a, b)
		case "~=":
			return !L.Equal(a, b)
		case "<":
			return L.LessThan(a, b)
		case ">":
			return L.LessThan(b, a)
		case "<=":
			return lessEqual(L, a, b)
		case ">=":
			return lessEqual(L, b, a)
		}
	}
	x, okA := numeric(a)
	y, okB := numeric(b)
	if !okA || !okB {
		switch op {
		case "==":
			return false
		case "~=":
			return true
		}
		L.RaiseError("attempt to compare %s with %s", typeName(a), typeName(b))
	}
	c, ok := compare(x, y)
	switch op {
	case "==":
		return ok && c == 0
	case "~=":
		return !ok || c != 0
	case "<":
		return ok && c < 0
	case ">":
		return ok && c > 0
	case "<=":
		return ok && c <= 0
	case ">=":
		return ok && c >= 0
	}
	return false
}

// lessEqual is Lua 5.1 "<=" for unboxed operands.
func lessEqual(L *lua.LState, a, b lua.LValue) bool {
	if x, ok := a.(lua.LNumber); ok {
		if y, ok := b.(lua.LNumber); ok {
			return x <= y
		}
	}
	if x, ok := a.(lua.LString); ok {
		if y, ok := b.(lua.LString); ok {
			return x <= y
		}
	}
	le := L.GetMetaField(a, "__le")
	if fn, ok := le.(*lua.LFunction); ok && le == L.GetMetaField(b, "__le") {
		L.Push(fn)
		L.Push(a)
		L.Push(b)
		L.Call(2, 1)
		res := lua.LVAsBool(L.Get(-1))
		L.Pop(1)
		return res
	}
	return !L.LessThan(b, a)
}

// relationFuncs back the comparison operators of loaded chunks.
var relationFuncs = map[string]string{
	"==": "_num_eq",
	"~=": "_num_ne",
	"<":  "_num_lt",
	">":  "_num_gt",
	"<=": "_num_le",
	">=": "_num_ge",
}

// plain replaces a boxed number by the closest plain one.
func plain(lv lua.LValue) lua.LValue {
	if n, ok := boxedNumber(lv); ok {
		return lua.LNumber(n.toFloat())
	}
	return lv
}

// unboxing wraps a library function so that it sees plain numbers.
func unboxing(fn lua.LValue) lua.LGFunction {
	return func(L *lua.LState) int {
		n := L.GetTop()
		L.Push(fn)
		for i := 1; i <= n; i++ {
			L.Push(plain(L.Get(i)))
		}
		L.Call(n, lua.MultRet)
		return L.GetTop() - n
	}
}

// openNumbers installs the Number metatable, the helpers loaded chunks
// call, and number aware versions of type, tonumber and math.type.
func openNumbers(L *lua.LState) {
	mt := L.NewTypeMetatable(numberClass)
	for event, op := range map[string]string{
		"__add": "+", "__sub": "-", "__mul": "*",
		"__div": "/", "__mod": "%", "__pow": "^",
	} {
		mt.RawSetString(event, L.NewFunction(numberArith(op)))
	}
	L.SetFuncs(mt, map[string]lua.LGFunction{
		"__unm":      numberUnm,
		"__tostring": numberToString,
		"__concat":   numberConcat,
		"__eq": func(L *lua.LState) int {
			L.Push(lua.LBool(relation(L, "==", L.Get(1), L.Get(2))))
			return 1
		},
		"__lt": func(L *lua.LState) int {
			L.Push(lua.LBool(relation(L, "<", L.Get(1), L.Get(2))))
			return 1
		},
		"__le": func(L *lua.LState) int {
			L.Push(lua.LBool(relation(L, "<=", L.Get(1), L.Get(2))))
			return 1
		},
	})

	for op, name := range relationFuncs {
		L.Register(name, func(L *lua.LState) int {
			L.Push(lua.LBool(relation(L, op, L.Get(1), L.Get(2))))
			return 1
		})
	}
	L.Register("_num_literal", func(L *lua.LState) int {
		n, err := parseLiteral(L.CheckString(1))
		if err != nil {
			L.RaiseError("malformed number %s", L.CheckString(1))
		}
		L.Push(newNumber(L, n))
		return 1
	})
	L.Register("_num_plain", func(L *lua.LState) int {
		n := L.GetTop()
		for i := 1; i <= n; i++ {
			L.Push(plain(L.Get(i)))
		}
		return n
	})

	for _, lib := range []string{lua.MathLibName, lua.StringLibName} {
		tbl, ok := L.GetGlobal(lib).(*lua.LTable)
		if !ok {
			continue
		}
		var names []string
		tbl.ForEach(func(k, v lua.LValue) {
			if _, ok := v.(*lua.LFunction); ok {
				names = append(names, lua.LVAsString(k))
			}
		})
		for _, name := range names {
			tbl.RawSetString(name, L.NewFunction(unboxing(tbl.RawGetString(name))))
		}
	}

	baseType := L.GetGlobal("type")
	L.Register("type", func(L *lua.LState) int {
		if _, ok := boxedNumber(L.CheckAny(1)); ok {
			L.Push(lua.LString("number"))
			return 1
		}
		return unboxing(baseType)(L)
	})
	baseToNumber := L.GetGlobal("tonumber")
	L.Register("tonumber", func(L *lua.LState) int {
		if _, ok := boxedNumber(L.Get(1)); ok {
			L.Push(L.Get(1))
			return 1
		}
		return unboxing(baseToNumber)(L)
	})
	if tbl, ok := L.GetGlobal(lua.MathLibName).(*lua.LTable); ok {
		tbl.RawSetString("type", L.NewFunction(func(L *lua.LState) int {
			n, ok := numeric(L.Get(1))
			switch {
			case !ok:
				L.Push(lua.LNil)
			case n.float:
				L.Push(lua.LString("float"))
			default:
				L.Push(lua.LString("integer"))
			}
			return 1
		}))
	}
}
