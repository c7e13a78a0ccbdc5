package codec

import (
	"errors"
	"fmt"

	"github.com/signadot/rmarshal/format"
	"github.com/signadot/rmarshal/value"
)

var (
	ErrDecode = errors.New("decode error")
	ErrEncode = errors.New("encode error")
)

// Options are the per file encoding flags.
type Options struct {
	// Pretty indents JSON output.
	Pretty bool
	// Dots terminates each YAML document with "...".
	Dots bool
	// Fix moves scalar fields ahead of tables before TOML encoding.
	Fix bool
}

func Decode(f format.Format, data []byte) (*value.Value, error) {
	switch f {
	case format.PlainFormat:
		return DecodePlain(data)
	case format.JSONFormat:
		return DecodeJSON(data)
	case format.LuaFormat:
		return DecodeLua(data)
	case format.TOMLFormat:
		return DecodeTOML(data)
	case format.YAMLFormat:
		return DecodeYAML(data)
	}
	return nil, fmt.Errorf("%w: %w %d", ErrDecode, format.ErrBadFormat, f)
}

func Encode(f format.Format, v *value.Value, opts Options) ([]byte, error) {
	switch f {
	case format.PlainFormat:
		return EncodePlain(v)
	case format.JSONFormat:
		return EncodeJSON(v, opts.Pretty)
	case format.LuaFormat:
		return EncodeLua(v), nil
	case format.TOMLFormat:
		if opts.Fix {
			v = value.ReorderTables(v)
		}
		return EncodeTOML(v)
	case format.YAMLFormat:
		return EncodeYAML(v, opts.Dots)
	}
	return nil, fmt.Errorf("%w: %w %d", ErrEncode, format.ErrBadFormat, f)
}
