package codec

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/signadot/rmarshal/value"
)

// DecodeYAML decodes the first document of data. Anchors, aliases and
// merge keys are resolved; mapping keys must be strings.
func DecodeYAML(data []byte) (*value.Value, error) {
	var x any
	if err := yaml.UnmarshalWithOptions(data, &x, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: yaml: %w", ErrDecode, err)
	}
	v, err := fromYAML(x)
	if err != nil {
		return nil, fmt.Errorf("%w: yaml: %w", ErrDecode, err)
	}
	return v, nil
}

func fromYAML(x any) (*value.Value, error) {
	switch t := x.(type) {
	case yaml.MapSlice:
		kvs := make([]value.KeyVal, 0, len(t))
		for _, item := range t {
			key, ok := item.Key.(string)
			if !ok {
				return nil, fmt.Errorf("mapping key %v is a %T, not a string", item.Key, item.Key)
			}
			v, err := fromYAML(item.Value)
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, value.KeyVal{Key: key, Val: v})
		}
		return value.FromKeyVals(kvs), nil
	case []any:
		vs := make([]*value.Value, len(t))
		for i, elt := range t {
			v, err := fromYAML(elt)
			if err != nil {
				return nil, err
			}
			vs[i] = v
		}
		return value.FromSlice(vs), nil
	case map[string]any:
		// only without UseOrderedMap
		return value.FromAny(t)
	case time.Time:
		return value.FromString(t.Format(time.RFC3339Nano)), nil
	case uint64:
		if t > math.MaxInt64 {
			return value.FromFloat(float64(t)), nil
		}
		return value.FromInt(int64(t)), nil
	}
	return value.FromAny(x)
}

// EncodeYAML writes v as one YAML document starting with "---". With dots
// the document is closed by "...".
func EncodeYAML(v *value.Value, dots bool) ([]byte, error) {
	d, err := yaml.MarshalWithOptions(toYAML(v), yaml.Indent(2))
	if err != nil {
		return nil, fmt.Errorf("%w: yaml: %w", ErrEncode, err)
	}
	sb := &strings.Builder{}
	sb.WriteString("---\n")
	sb.Write(d)
	if len(d) > 0 && d[len(d)-1] != '\n' {
		sb.WriteByte('\n')
	}
	if dots {
		sb.WriteString("...\n")
	}
	return []byte(sb.String()), nil
}

func toYAML(v *value.Value) any {
	switch v.Type {
	case value.ArrayType:
		res := make([]any, len(v.Values))
		for i, elt := range v.Values {
			res[i] = toYAML(elt)
		}
		return res
	case value.ObjectType:
		res := make(yaml.MapSlice, len(v.Fields))
		for i, key := range v.Fields {
			res[i] = yaml.MapItem{Key: key, Value: toYAML(v.Values[i])}
		}
		return res
	}
	return value.ToAny(v)
}

// SplitYAMLStream cuts a YAML stream into its documents. A line starting
// with "---" opens a new document and a line "..." closes the current one;
// both markers stay with their document. Documents are trimmed and blank
// ones are dropped.
func SplitYAMLStream(content string) []string {
	var (
		docs []string
		buf  strings.Builder
	)
	flush := func() {
		if doc := strings.TrimSpace(buf.String()); doc != "" {
			docs = append(docs, doc)
		}
		buf.Reset()
	}
	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.HasPrefix(line, "---"):
			flush()
			buf.WriteString(line)
			buf.WriteByte('\n')
		case line == "...":
			buf.WriteString(line)
			buf.WriteByte('\n')
			flush()
		default:
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}
	flush()
	return docs
}
