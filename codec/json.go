package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/rmarshal/value"
)

// DecodeJSON decodes exactly one JSON document. Numbers written without a
// fraction or exponent are integers when they fit in 64 bits.
func DecodeJSON(data []byte) (*value.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSON(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: json: %w", ErrDecode, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: json: trailing data at offset %d", ErrDecode, dec.InputOffset())
	}
	return v, nil
}

func decodeJSON(dec *json.Decoder) (*value.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	switch t := tok.(type) {
	case nil:
		return value.Nil(), nil
	case bool:
		return value.FromBool(t), nil
	case string:
		return value.FromString(t), nil
	case json.Number:
		return jsonNumber(t)
	case json.Delim:
		switch t {
		case '[':
			vs := []*value.Value{}
			for dec.More() {
				v, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				vs = append(vs, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return value.FromSlice(vs), nil
		case '{':
			kvs := []value.KeyVal{}
			for dec.More() {
				ktok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := ktok.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected %v in object", ktok)
				}
				v, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				kvs = append(kvs, value.KeyVal{Key: key, Val: v})
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return value.FromKeyVals(kvs), nil
		}
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func jsonNumber(n json.Number) (*value.Value, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return value.FromInt(i), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return value.FromFloat(f), nil
}

// EncodeJSON writes v compactly, or indented by two spaces when pretty is
// set. HTML characters are not escaped.
func EncodeJSON(v *value.Value, pretty bool) ([]byte, error) {
	w := &jsonWriter{pretty: pretty}
	if err := w.value(v, 0); err != nil {
		return nil, err
	}
	return w.buf.Bytes(), nil
}

type jsonWriter struct {
	buf    bytes.Buffer
	pretty bool
}

func (w *jsonWriter) newline(depth int) {
	if !w.pretty {
		return
	}
	w.buf.WriteByte('\n')
	for range depth {
		w.buf.WriteString("  ")
	}
}

func (w *jsonWriter) value(v *value.Value, depth int) error {
	switch v.Type {
	case value.NilType:
		w.buf.WriteString("null")
	case value.BoolType:
		w.buf.WriteString(strconv.FormatBool(v.Bool))
	case value.IntType:
		w.buf.WriteString(strconv.FormatInt(v.Int, 10))
	case value.FloatType:
		if math.IsNaN(v.Float) || math.IsInf(v.Float, 0) {
			return fmt.Errorf("%w: json cannot hold %v", ErrEncode, v.Float)
		}
		w.buf.WriteString(floatText(v.Float))
	case value.StringType:
		return w.string(v.String)
	case value.ArrayType:
		if len(v.Values) == 0 {
			w.buf.WriteString("[]")
			return nil
		}
		w.buf.WriteByte('[')
		for i, elt := range v.Values {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			w.newline(depth + 1)
			if err := w.value(elt, depth+1); err != nil {
				return err
			}
		}
		w.newline(depth)
		w.buf.WriteByte(']')
	case value.ObjectType:
		if len(v.Fields) == 0 {
			w.buf.WriteString("{}")
			return nil
		}
		w.buf.WriteByte('{')
		for i, key := range v.Fields {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			w.newline(depth + 1)
			if err := w.string(key); err != nil {
				return err
			}
			w.buf.WriteByte(':')
			if w.pretty {
				w.buf.WriteByte(' ')
			}
			if err := w.value(v.Values[i], depth+1); err != nil {
				return err
			}
		}
		w.newline(depth)
		w.buf.WriteByte('}')
	}
	return nil
}

func (w *jsonWriter) string(s string) error {
	enc := json.NewEncoder(&w.buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	// Encode terminates with a newline
	w.buf.Truncate(w.buf.Len() - 1)
	return nil
}

// floatText formats f so that it reads back as a float.
func floatText(f float64) string {
	s := value.FormatFloat(f)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
