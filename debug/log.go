package debug

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/signadot/rmarshal/value"
)

// Logf writes a diagnostic line to stderr. *value.Value and []*value.Value
// arguments are rendered as JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case *value.Value:
			args[i] = valueString(x)
		case []*value.Value:
			vs := make([]any, len(x))
			for j, v := range x {
				vs[j] = value.ToAny(v)
			}
			args[i] = jsonString(vs)
		case map[string]any, []any:
			args[i] = jsonString(a)
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}

func valueString(v *value.Value) string {
	if v == nil {
		return "<nil>"
	}
	if s, ok := v.Text(); ok && v.Type != value.StringType {
		return s
	}
	return jsonString(value.ToAny(v))
}

func jsonString(a any) string {
	d, err := json.Marshal(a)
	if err != nil {
		return fmt.Sprintf("%v", a)
	}
	return string(d)
}
