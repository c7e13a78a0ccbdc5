package script

import (
	"math"
	"strconv"
	"strings"

	"github.com/signadot/rmarshal/value"
)

// values nested deeper than this are built one container per statement
const maxNestedSource = 16

// Source returns a Lua expression that evaluates, in an Env, to the native
// structure equivalent to v: NULL, a literal, an Array:new call or an
// Object:new call with ordered {key, value} pairs. Deeply nested values
// become a function call that assembles the containers bottom up, since
// one nested expression would exhaust the compiler's registers.
func Source(v *value.Value) string {
	sb := &strings.Builder{}
	if nesting(v) <= maxNestedSource {
		writeSource(sb, v)
		return sb.String()
	}
	sb.WriteString("(function()\nlocal s = {}\n")
	writeSlot(sb, v, 1)
	sb.WriteString("return s[1]\nend)()")
	return sb.String()
}

func nesting(v *value.Value) int {
	d := 0
	for _, elt := range v.Values {
		d = max(d, nesting(elt))
	}
	if v.Type.IsScalar() {
		return d
	}
	return d + 1
}

// writeSlot writes statements leaving container v in s[slot]. Child i of
// v is built in s[slot+1+i], using the slots above it as scratch.
func writeSlot(sb *strings.Builder, v *value.Value, slot int) {
	for i, elt := range v.Values {
		if !elt.Type.IsScalar() {
			writeSlot(sb, elt, slot+1+i)
		}
	}
	child := func(i int) {
		if elt := v.Values[i]; elt.Type.IsScalar() {
			writeSource(sb, elt)
			return
		}
		sb.WriteString("s[" + strconv.Itoa(slot+1+i) + "]")
	}
	sb.WriteString("s[" + strconv.Itoa(slot) + "] = ")
	if v.Type == value.ArrayType {
		sb.WriteString("Array:new({")
		for i := range v.Values {
			if i > 0 {
				sb.WriteString(", ")
			}
			child(i)
		}
	} else {
		sb.WriteString("Object:new({")
		for i, key := range v.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("{" + Quote(key) + ", ")
			child(i)
			sb.WriteString("}")
		}
	}
	sb.WriteString("})\n")
}

func writeSource(sb *strings.Builder, v *value.Value) {
	switch v.Type {
	case value.NilType:
		sb.WriteString("NULL")
	case value.BoolType:
		sb.WriteString(strconv.FormatBool(v.Bool))
	case value.IntType:
		if v.Int == math.MinInt64 {
			// the literal 9223372036854775808 would read as a float
			sb.WriteString("(-9223372036854775807 - 1)")
			return
		}
		sb.WriteString(strconv.FormatInt(v.Int, 10))
	case value.FloatType:
		sb.WriteString(floatSource(v.Float))
	case value.StringType:
		sb.WriteString(Quote(v.String))
	case value.ArrayType:
		sb.WriteString("Array:new({")
		for i, elt := range v.Values {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeSource(sb, elt)
		}
		sb.WriteString("})")
	case value.ObjectType:
		sb.WriteString("Object:new({")
		for i, key := range v.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("{")
			sb.WriteString(Quote(key))
			sb.WriteString(", ")
			writeSource(sb, v.Values[i])
			sb.WriteString("}")
		}
		sb.WriteString("})")
	}
}

func floatSource(f float64) string {
	switch {
	case math.IsNaN(f):
		return "(0/0)"
	case math.IsInf(f, 1):
		return "math.huge"
	case math.IsInf(f, -1):
		return "(-math.huge)"
	}
	s := value.FormatFloat(f)
	if !strings.ContainsAny(s, ".eEn") {
		// keep floats recognisable to a reader
		s += ".0"
	}
	return s
}

// Quote returns s as a double-quoted Lua string literal. Control bytes are
// written as decimal escapes; other bytes, UTF-8 included, pass through.
func Quote(s string) string {
	sb := &strings.Builder{}
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if c < 0x20 || c == 0x7f {
				// three digits so a following digit is not absorbed
				sb.WriteString(`\`)
				d := strconv.Itoa(int(c))
				sb.WriteString(strings.Repeat("0", 3-len(d)))
				sb.WriteString(d)
				continue
			}
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
