package script

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/signadot/rmarshal/debug"
	"github.com/signadot/rmarshal/value"

	lua "github.com/yuin/gopher-lua"
)

//go:embed prelude.lua
var prelude string

// Env is one isolated Lua state with the prelude loaded. It must not be
// reused across pipeline steps; Close it when done.
type Env struct {
	L   *lua.LState
	ctx *lua.LTable
}

func New() (*Env, error) {
	L := lua.NewState()
	openNumbers(L)
	env := &Env{L: L}
	if err := env.ExecNamed("prelude", prelude); err != nil {
		L.Close()
		return nil, err
	}
	ctx, ok := L.GetGlobal("ctx").(*lua.LTable)
	if !ok {
		L.Close()
		return nil, fmt.Errorf("%w: prelude did not define ctx", ErrScript)
	}
	env.ctx = ctx
	return env, nil
}

func (e *Env) Close() {
	e.L.Close()
}

// Exec loads and runs src.
func (e *Env) Exec(src string) error {
	return e.ExecNamed("script", src)
}

// ExecNamed loads and runs src, using name in error messages.
func (e *Env) ExecNamed(name, src string) error {
	if debug.Script() {
		debug.Logf("exec %s:\n%s\n", name, src)
	}
	fn, err := e.load(src, name)
	if err != nil {
		return fmt.Errorf("%w: loading %s: %w", ErrScript, name, err)
	}
	e.L.Push(fn)
	if err := e.L.PCall(0, lua.MultRet, nil); err != nil {
		return fmt.Errorf("%w: running %s: %w", ErrScript, name, err)
	}
	e.L.SetTop(0)
	return nil
}

// Inject appends each value, in order, to ctx.inputs.
func (e *Env) Inject(vs ...*value.Value) error {
	inputs, ok := e.ctx.RawGetString("inputs").(*lua.LTable)
	if !ok {
		return fmt.Errorf("%w: ctx.inputs is not a table", ErrScript)
	}
	for i, v := range vs {
		lv, err := e.luaValue(v)
		if err != nil {
			return fmt.Errorf("%w: input %d: %w", ErrScript, i+1, err)
		}
		inputs.Append(lv)
	}
	return nil
}

// luaValue builds the native structure for v: NULL, a scalar, or a table
// with the Array or Object metatable.
func (e *Env) luaValue(v *value.Value) (lua.LValue, error) {
	switch v.Type {
	case value.NilType:
		return e.L.GetGlobal("NULL"), nil
	case value.BoolType:
		return lua.LBool(v.Bool), nil
	case value.IntType:
		return newNumber(e.L, intNumber(v.Int)), nil
	case value.FloatType:
		return newNumber(e.L, floatNumber(v.Float)), nil
	case value.StringType:
		return lua.LString(v.String), nil
	case value.ArrayType:
		t := e.L.CreateTable(len(v.Values), 0)
		for _, elt := range v.Values {
			lv, err := e.luaValue(elt)
			if err != nil {
				return nil, err
			}
			t.Append(lv)
		}
		e.L.SetMetatable(t, e.L.GetGlobal(arrayClass))
		return t, nil
	}
	kvs := v.KeyVals()
	keys := e.L.CreateTable(len(kvs), 0)
	vals := e.L.CreateTable(0, len(kvs))
	for _, kv := range kvs {
		if kv.Key == "" {
			return nil, errors.New("wrong key format: empty key")
		}
		lv, err := e.luaValue(kv.Val)
		if err != nil {
			return nil, err
		}
		if vals.RawGetString(kv.Key) == lua.LNil {
			keys.Append(lua.LString(kv.Key))
		}
		vals.RawSetString(kv.Key, lv)
	}
	t := e.L.CreateTable(0, 2)
	t.RawSetString("_keys", keys)
	t.RawSetString("_values", vals)
	e.L.SetMetatable(t, e.L.GetGlobal(objectClass))
	return t, nil
}

func (e *Env) outputs() (*lua.LTable, error) {
	outs, ok := e.ctx.RawGetString("outputs").(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: ctx.outputs is not a table", ErrConversion)
	}
	return outs, nil
}

// Outputs converts every value passed to ctx:set_output, in order.
func (e *Env) Outputs() ([]*value.Value, error) {
	outs, err := e.outputs()
	if err != nil {
		return nil, err
	}
	n := outs.Len()
	res := make([]*value.Value, 0, n)
	for i := 1; i <= n; i++ {
		v, err := e.toValue(outs.RawGetInt(i), 0)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		res = append(res, v)
	}
	return res, nil
}

// RenderedText concatenates the pieces of the first output, which must be a
// sequence of booleans, numbers, strings and NULLs.
func (e *Env) RenderedText() (string, error) {
	outs, err := e.outputs()
	if err != nil {
		return "", err
	}
	buf, ok := outs.RawGetInt(1).(*lua.LTable)
	if !ok {
		return "", fmt.Errorf("%w: expected a table of rendered pieces", ErrNoOutput)
	}
	sb := &strings.Builder{}
	n := buf.Len()
	for i := 1; i <= n; i++ {
		switch piece := buf.RawGetInt(i).(type) {
		case lua.LBool:
			if piece {
				sb.WriteString("true")
			} else {
				sb.WriteString("false")
			}
		case lua.LNumber:
			sb.WriteString(plainNumber(piece).String())
		case *lua.LUserData:
			n, ok := boxedNumber(piece)
			if !ok {
				return "", fmt.Errorf("%w: rendered piece %d has type %s", ErrConversion, i, piece.Type())
			}
			sb.WriteString(n.String())
		case lua.LString:
			sb.WriteString(string(piece))
		case *lua.LTable:
			if e.className(piece) != nullClass {
				return "", fmt.Errorf("%w: rendered piece %d is a nested structure", ErrConversion, i)
			}
			sb.WriteString("null")
		default:
			return "", fmt.Errorf("%w: rendered piece %d has type %s", ErrConversion, i, piece.Type())
		}
	}
	return sb.String(), nil
}

// Run executes src in a fresh Env with inputs injected and returns its
// outputs.
func Run(name, src string, inputs []*value.Value) ([]*value.Value, error) {
	env, err := New()
	if err != nil {
		return nil, err
	}
	defer env.Close()
	if err := env.Inject(inputs...); err != nil {
		return nil, err
	}
	if err := env.ExecNamed(name, src); err != nil {
		return nil, err
	}
	return env.Outputs()
}

// Render executes compiled template source in a fresh Env with inputs
// injected and returns the rendered text.
func Render(name, src string, inputs []*value.Value) (string, error) {
	env, err := New()
	if err != nil {
		return "", err
	}
	defer env.Close()
	if err := env.Inject(inputs...); err != nil {
		return "", err
	}
	if err := env.ExecNamed(name, src); err != nil {
		return "", err
	}
	return env.RenderedText()
}

// Eval evaluates a single Lua expression in a fresh Env.
func Eval(expr string) (*value.Value, error) {
	outs, err := Run("expression", "ctx:set_output("+expr+"\n)\n", nil)
	if err != nil {
		return nil, err
	}
	if len(outs) == 0 {
		return nil, ErrNoOutput
	}
	return outs[0], nil
}
