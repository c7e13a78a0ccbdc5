package codec

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/signadot/rmarshal/value"
)

// DecodeTOML decodes a TOML document. Tables come back in the order their
// keys were first defined; datetimes become strings.
func DecodeTOML(data []byte) (*value.Value, error) {
	var m map[string]any
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, fmt.Errorf("%w: toml: %w", ErrDecode, err)
	}
	ord := &tomlOrder{pos: map[string]int{}}
	for i, key := range md.Keys() {
		k := strings.Join(key, "\x00")
		if _, ok := ord.pos[k]; !ok {
			ord.pos[k] = i
		}
	}
	return ord.value(m, nil)
}

// tomlOrder maps each key path, with array indices omitted, to the position
// of its first definition.
type tomlOrder struct {
	pos map[string]int
}

func (o *tomlOrder) keys(m map[string]any, path []string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	prefix := strings.Join(path, "\x00")
	if len(path) > 0 {
		prefix += "\x00"
	}
	slices.SortFunc(keys, func(a, b string) int {
		pa, oka := o.pos[prefix+a]
		pb, okb := o.pos[prefix+b]
		switch {
		case oka && okb:
			return pa - pb
		case oka:
			return -1
		case okb:
			return 1
		}
		return strings.Compare(a, b)
	})
	return keys
}

func (o *tomlOrder) value(x any, path []string) (*value.Value, error) {
	switch t := x.(type) {
	case map[string]any:
		keys := o.keys(t, path)
		kvs := make([]value.KeyVal, 0, len(keys))
		for _, k := range keys {
			v, err := o.value(t[k], append(slices.Clip(path), k))
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, value.KeyVal{Key: k, Val: v})
		}
		return value.FromKeyVals(kvs), nil
	case []map[string]any:
		vs := make([]*value.Value, len(t))
		for i, elt := range t {
			v, err := o.value(elt, path)
			if err != nil {
				return nil, err
			}
			vs[i] = v
		}
		return value.FromSlice(vs), nil
	case []any:
		vs := make([]*value.Value, len(t))
		for i, elt := range t {
			v, err := o.value(elt, path)
			if err != nil {
				return nil, err
			}
			vs[i] = v
		}
		return value.FromSlice(vs), nil
	case time.Time:
		return value.FromString(tomlTime(t)), nil
	}
	v, err := value.FromAny(x)
	if err != nil {
		return nil, fmt.Errorf("%w: toml: %w", ErrDecode, err)
	}
	return v, nil
}

// tomlTime formats t the way it was written: local dates, times and
// datetimes carry no offset.
func tomlTime(t time.Time) string {
	switch t.Location().String() {
	case "date-local":
		return t.Format("2006-01-02")
	case "time-local":
		return t.Format("15:04:05.999999999")
	case "datetime-local":
		return t.Format("2006-01-02T15:04:05.999999999")
	}
	return t.Format(time.RFC3339Nano)
}

var bareKeyRE = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// EncodeTOML writes an object as a TOML document: plain keys first, then
// tables and arrays of tables. Tables that precede a plain key are written
// inline; Options.Fix moves plain keys first so they become sections.
func EncodeTOML(v *value.Value) ([]byte, error) {
	if v.Type != value.ObjectType {
		return nil, fmt.Errorf("%w: toml document must be an object, not %s", ErrEncode, v.Type)
	}
	w := &tomlWriter{}
	if err := w.table(v, nil, ""); err != nil {
		return nil, err
	}
	return []byte(w.sb.String()), nil
}

type tomlWriter struct {
	sb strings.Builder
}

// isTable reports whether v is written as a [table] or [[array]] section.
func isTable(v *value.Value) bool {
	switch v.Type {
	case value.ObjectType:
		return true
	case value.ArrayType:
		if len(v.Values) == 0 {
			return false
		}
		for _, elt := range v.Values {
			if elt.Type != value.ObjectType {
				return false
			}
		}
		return true
	}
	return false
}

func (w *tomlWriter) header(path []string, array bool) {
	if w.sb.Len() > 0 {
		w.sb.WriteByte('\n')
	}
	lb, rb := "[", "]"
	if array {
		lb, rb = "[[", "]]"
	}
	w.sb.WriteString(lb)
	w.sb.WriteString(tomlPath(path))
	w.sb.WriteString(rb)
	w.sb.WriteByte('\n')
}

// table writes the body of v. header is "" for the root, "[" for a table
// header that is only needed when there are inline keys or no keys at all,
// and "[[" for an array element, which always gets its header.
//
// Every entry up to the last plain value is written inline, tables included,
// so a table followed by a plain value keeps its place; the remaining tables
// become sections.
func (w *tomlWriter) table(v *value.Value, path []string, header string) error {
	lastPlain := -1
	for i := range v.Fields {
		if !isTable(v.Values[i]) {
			lastPlain = i
		}
	}
	switch header {
	case "[[":
		w.header(path, true)
	case "[":
		if lastPlain >= 0 || len(v.Fields) == 0 {
			w.header(path, false)
		}
	}
	for i, key := range v.Fields[:lastPlain+1] {
		w.sb.WriteString(tomlKey(key))
		w.sb.WriteString(" = ")
		if err := w.inline(v.Values[i], append(slices.Clip(path), key)); err != nil {
			return err
		}
		w.sb.WriteByte('\n')
	}
	for i, key := range v.Fields[lastPlain+1:] {
		elt := v.Values[lastPlain+1+i]
		sub := append(slices.Clip(path), key)
		if elt.Type == value.ObjectType {
			if err := w.table(elt, sub, "["); err != nil {
				return err
			}
			continue
		}
		for _, item := range elt.Values {
			if err := w.table(item, sub, "[["); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *tomlWriter) inline(v *value.Value, path []string) error {
	switch v.Type {
	case value.NilType:
		return fmt.Errorf("%w: toml cannot hold null at %s", ErrEncode, tomlPath(path))
	case value.BoolType:
		w.sb.WriteString(strconv.FormatBool(v.Bool))
	case value.IntType:
		w.sb.WriteString(strconv.FormatInt(v.Int, 10))
	case value.FloatType:
		w.sb.WriteString(tomlFloat(v.Float))
	case value.StringType:
		w.sb.WriteString(tomlString(v.String))
	case value.ArrayType:
		w.sb.WriteByte('[')
		for i, elt := range v.Values {
			if i > 0 {
				w.sb.WriteString(", ")
			}
			if err := w.inline(elt, path); err != nil {
				return err
			}
		}
		w.sb.WriteByte(']')
	case value.ObjectType:
		if len(v.Fields) == 0 {
			w.sb.WriteString("{}")
			return nil
		}
		w.sb.WriteString("{ ")
		for i, key := range v.Fields {
			if i > 0 {
				w.sb.WriteString(", ")
			}
			w.sb.WriteString(tomlKey(key))
			w.sb.WriteString(" = ")
			if err := w.inline(v.Values[i], append(slices.Clip(path), key)); err != nil {
				return err
			}
		}
		w.sb.WriteString(" }")
	}
	return nil
}

func tomlPath(path []string) string {
	if len(path) == 0 {
		return "root"
	}
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = tomlKey(p)
	}
	return strings.Join(parts, ".")
}

func tomlKey(k string) string {
	if bareKeyRE.MatchString(k) {
		return k
	}
	return tomlString(k)
}

func tomlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return floatText(f)
}

func tomlString(s string) string {
	sb := &strings.Builder{}
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\t':
			sb.WriteString(`\t`)
		case '\n':
			sb.WriteString(`\n`)
		case '\f':
			sb.WriteString(`\f`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(sb, `\u%04X`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
