package pipeline

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/signadot/rmarshal/codec"
	"github.com/signadot/rmarshal/script"
	"github.com/signadot/rmarshal/unit"
	"github.com/signadot/rmarshal/value"
)

// decodeDocument interprets an inline document. prior holds the values
// decoded so far, which expression documents can refer to.
func decodeDocument(doc *unit.Document, prior []*value.Value) (*value.Value, error) {
	s := doc.Content
	switch doc.Hint {
	case unit.AnyHint:
		return codec.Infer(s)
	case unit.NilHint:
		if s == "~" {
			return value.Nil(), nil
		}
	case unit.BoolHint:
		switch strings.ToLower(s) {
		case "true", "on":
			return value.FromBool(true), nil
		case "false", "off":
			return value.FromBool(false), nil
		}
	case unit.IntHint:
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return value.FromInt(i), nil
		}
	case unit.FloatHint:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return value.FromFloat(f), nil
		}
	case unit.StringHint:
		return value.FromString(s), nil
	case unit.JSONHint:
		return codec.DecodeJSON([]byte(s))
	case unit.LuaHint:
		v, err := script.Eval(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScript, err)
		}
		return v, nil
	case unit.ExprHint:
		return evalExpr(s, prior)
	}
	return nil, fmt.Errorf("%q is not a valid %s document", s, doc.Hint)
}

func exprOpts(inputs []any) []expr.Option {
	return []expr.Option{
		expr.Env(map[string]any{"inputs": inputs}),
		expr.Function("input", func(params ...any) (any, error) {
			i := params[0].(int)
			if i < 1 || i > len(inputs) {
				return nil, fmt.Errorf("input %d out of range 1..%d", i, len(inputs))
			}
			return inputs[i-1], nil
		},
			new(func(int) any)),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}

// evalExpr runs an expression with the prior values available as inputs.
func evalExpr(src string, prior []*value.Value) (*value.Value, error) {
	inputs := make([]any, len(prior))
	for i, v := range prior {
		inputs[i] = value.ToAny(v)
	}
	env := map[string]any{"inputs": inputs}
	prg, err := expr.Compile(src, exprOpts(inputs)...)
	if err != nil {
		return nil, err
	}
	res, err := expr.Run(prg, env)
	if err != nil {
		return nil, err
	}
	return value.FromAny(res)
}
