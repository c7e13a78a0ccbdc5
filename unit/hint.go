package unit

import (
	"fmt"
	"strings"
)

// Hint says how the content of an inline document is interpreted.
type Hint int

const (
	AnyHint Hint = iota
	NilHint
	BoolHint
	IntHint
	FloatHint
	StringHint
	JSONHint
	LuaHint
	ExprHint
)

var hintNames = map[string]Hint{
	"_":       AnyHint,
	"any":     AnyHint,
	"N":       NilHint,
	"nil":     NilHint,
	"B":       BoolHint,
	"boolean": BoolHint,
	"I":       IntHint,
	"integer": IntHint,
	"F":       FloatHint,
	"float":   FloatHint,
	"S":       StringHint,
	"string":  StringHint,
	"J":       JSONHint,
	"json":    JSONHint,
	"L":       LuaHint,
	"lua":     LuaHint,
	"E":       ExprHint,
	"expr":    ExprHint,
}

// ParseHint accepts a one letter hint or a long name in any case.
func ParseHint(s string) (Hint, error) {
	if len(s) > 1 {
		s = strings.ToLower(s)
	}
	h, ok := hintNames[s]
	if !ok {
		return 0, fmt.Errorf("%w: unknown document hint %q", ErrParameter, s)
	}
	return h, nil
}

func (h Hint) String() string {
	switch h {
	case AnyHint:
		return "any"
	case NilHint:
		return "nil"
	case BoolHint:
		return "boolean"
	case IntHint:
		return "integer"
	case FloatHint:
		return "float"
	case StringHint:
		return "string"
	case JSONHint:
		return "json"
	case LuaHint:
		return "lua"
	case ExprHint:
		return "expr"
	}
	return fmt.Sprintf("<hint %d>", int(h))
}
