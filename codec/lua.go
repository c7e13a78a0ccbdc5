package codec

import (
	"fmt"

	"github.com/signadot/rmarshal/script"
	"github.com/signadot/rmarshal/value"
)

// DecodeLua evaluates data as a Lua expression.
func DecodeLua(data []byte) (*value.Value, error) {
	v, err := script.Eval(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w: lua: %w", ErrDecode, err)
	}
	return v, nil
}

func EncodeLua(v *value.Value) []byte {
	return []byte(script.Source(v))
}
