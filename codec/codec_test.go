package codec

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/rmarshal/format"
	"github.com/signadot/rmarshal/libdiff"
	"github.com/signadot/rmarshal/value"
)

func obj(kvs ...any) *value.Value {
	res := make([]value.KeyVal, 0, len(kvs)/2)
	for i := 0; i < len(kvs); i += 2 {
		res = append(res, value.KeyVal{Key: kvs[i].(string), Val: kvs[i+1].(*value.Value)})
	}
	return value.FromKeyVals(res)
}

func arr(vs ...*value.Value) *value.Value {
	return value.FromSlice(vs)
}

var (
	str = value.FromString
	num = value.FromInt
)

// sample is representable by every structured format.
func sample() *value.Value {
	return obj(
		"zeta", str("last letter"),
		"alpha", num(1),
		"pi", value.FromFloat(3.25),
		"ok", value.FromBool(true),
		"quote", str("say \"hi\"\n\tbye <&>"),
		"list", arr(num(3), num(2), num(1)),
		"nested", obj(
			"b", num(2),
			"a", arr(str("x"), str("y")),
		),
		"items", arr(
			obj("name", str("one"), "n", num(1)),
			obj("name", str("two"), "n", num(2)),
		),
	)
}

func TestRoundTrip(t *testing.T) {
	for _, f := range []format.Format{format.JSONFormat, format.LuaFormat, format.TOMLFormat, format.YAMLFormat} {
		for _, opts := range []Options{{}, {Pretty: true}} {
			t.Run(f.String(), func(t *testing.T) {
				in := sample()
				d, err := Encode(f, in, opts)
				if err != nil {
					t.Fatal(err)
				}
				out, err := Decode(f, d)
				if err != nil {
					t.Fatalf("%v\n%s", err, d)
				}
				if diff := cmp.Diff(in, out); diff != "" {
					t.Errorf("round trip (-want +got):\n%s\n%s", diff, d)
				}
			})
		}
	}
}

func TestRoundTripWithNull(t *testing.T) {
	in := obj("b", value.Nil(), "a", arr(value.Nil(), num(-7), value.FromFloat(0.5)), "e", obj())
	for _, f := range []format.Format{format.JSONFormat, format.LuaFormat, format.YAMLFormat} {
		t.Run(f.String(), func(t *testing.T) {
			d, err := Encode(f, in, Options{})
			if err != nil {
				t.Fatal(err)
			}
			out, err := Decode(f, d)
			if err != nil {
				t.Fatalf("%v\n%s", err, d)
			}
			if diff := cmp.Diff(in, out); diff != "" {
				t.Errorf("round trip (-want +got):\n%s\n%s", diff, d)
			}
		})
	}
}

func TestEncodeJSON(t *testing.T) {
	in := obj("a", num(1), "b", arr(value.Nil(), value.FromFloat(2)), "c", obj(), "d", arr(), "e", str("<x>"))
	tests := []struct {
		pretty bool
		want   string
	}{
		{false, `{"a":1,"b":[null,2.0],"c":{},"d":[],"e":"<x>"}`},
		{true, `{
  "a": 1,
  "b": [
    null,
    2.0
  ],
  "c": {},
  "d": [],
  "e": "<x>"
}`},
	}
	for _, tc := range tests {
		d, err := EncodeJSON(in, tc.pretty)
		if err != nil {
			t.Fatal(err)
		}
		if diff := libdiff.Text(tc.want, string(d)); diff != "" {
			t.Errorf("pretty=%t:\n%s", tc.pretty, diff)
		}
	}
	if _, err := EncodeJSON(value.FromFloat(math.NaN()), false); !errors.Is(err, ErrEncode) {
		t.Errorf("nan: got %v", err)
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		in   string
		want *value.Value
	}{
		{`{"b": 1, "a": 2, "b": 3}`, obj("b", num(3), "a", num(2))},
		{`[1, 1.0, 1e2, -0, 9223372036854775808]`, arr(num(1), value.FromFloat(1), value.FromFloat(100), num(0), value.FromFloat(9223372036854775808))},
		{` "x" `, str("x")},
		{`null`, value.Nil()},
	}
	for _, tc := range tests {
		got, err := DecodeJSON([]byte(tc.in))
		if err != nil {
			t.Fatalf("%s: %v", tc.in, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("%s (-want +got):\n%s", tc.in, diff)
		}
	}
	for _, bad := range []string{``, `{"a": }`, `[1] [2]`, `{"a": 1`} {
		if _, err := DecodeJSON([]byte(bad)); !errors.Is(err, ErrDecode) {
			t.Errorf("%q: got %v", bad, err)
		}
	}
}

func TestPlain(t *testing.T) {
	tests := []struct {
		in   string
		want *value.Value
	}{
		{"~", value.Nil()},
		{"ON\n", value.FromBool(true)},
		{"Off", value.FromBool(false)},
		{"-12", num(-12)},
		{"+.5", value.FromFloat(0.5)},
		{"3.", value.FromFloat(3)},
		{"1e3", str("1e3")},
		{"two\nlines\n\n", str("two\nlines\n")},
		{"", str("")},
	}
	for _, tc := range tests {
		got, err := DecodePlain([]byte(tc.in))
		if err != nil {
			t.Fatalf("%q: %v", tc.in, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("%q (-want +got):\n%s", tc.in, diff)
		}
	}
	if _, err := DecodePlain([]byte("99999999999999999999\n")); !errors.Is(err, ErrDecode) {
		t.Errorf("integer overflow: got %v", err)
	}
	for _, tc := range []struct {
		in   *value.Value
		want string
	}{
		{value.Nil(), "~"},
		{value.FromBool(false), "false"},
		{num(42), "42"},
		{value.FromFloat(0.25), "0.25"},
		{str("text\n"), "text\n"},
	} {
		d, err := EncodePlain(tc.in)
		if err != nil {
			t.Fatal(err)
		}
		if string(d) != tc.want {
			t.Errorf("got %q want %q", d, tc.want)
		}
	}
	if _, err := EncodePlain(arr()); !errors.Is(err, ErrEncode) {
		t.Errorf("array: got %v", err)
	}
}

func TestEncodeYAML(t *testing.T) {
	d, err := EncodeYAML(obj("a", num(1)), true)
	if err != nil {
		t.Fatal(err)
	}
	if diff := libdiff.Text("---\na: 1\n...\n", string(d)); diff != "" {
		t.Error(diff)
	}
}

func TestDecodeYAML(t *testing.T) {
	in := `base: &base
  name: x
  port: 80
copy: *base
list:
  - 1
  - two
`
	got, err := DecodeYAML([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	base := obj("name", str("x"), "port", num(80))
	want := obj("base", base, "copy", base, "list", arr(num(1), str("two")))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if _, err := DecodeYAML([]byte("a: [1, 2\n")); !errors.Is(err, ErrDecode) {
		t.Errorf("unclosed flow sequence: got %v", err)
	}
}

func TestSplitYAMLStream(t *testing.T) {
	in := "a: 1\n---\nb: 2\n...\n\n--- c\n---\n   \n"
	want := []string{"a: 1", "---\nb: 2\n...", "--- c", "---"}
	if diff := cmp.Diff(want, SplitYAMLStream(in)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if docs := SplitYAMLStream("\n \n"); len(docs) != 0 {
		t.Errorf("blank stream: got %q", docs)
	}
}

func TestEncodeTOML(t *testing.T) {
	in := obj(
		"title", str("x"),
		"server", obj("host", str("h"), "ports", arr(num(1), num(2))),
		"deep", obj("inner", obj("k", value.FromBool(true))),
		"items", arr(obj("n", num(1)), obj("n", num(2), "tags", obj())),
	)
	want := `title = "x"

[server]
host = "h"
ports = [1, 2]

[deep.inner]
k = true

[[items]]
n = 1

[[items]]
n = 2

[items.tags]
`
	d, err := EncodeTOML(in)
	if err != nil {
		t.Fatal(err)
	}
	if diff := libdiff.Text(want, string(d)); diff != "" {
		t.Error(diff)
	}
}

func TestEncodeTOMLLateScalar(t *testing.T) {
	late := obj(
		"table", obj("a", num(1), "sub", obj("b", num(2))),
		"rows", arr(obj("r", num(1)), obj("r", num(2))),
		"late", num(2),
		"after", obj("c", num(3)),
	)
	tests := []struct {
		name string
		fix  bool
		want string
	}{
		{
			name: "inline",
			want: `table = { a = 1, sub = { b = 2 } }
rows = [{ r = 1 }, { r = 2 }]
late = 2

[after]
c = 3
`,
		},
		{
			name: "fix",
			fix:  true,
			want: `late = 2

[[rows]]
r = 1

[[rows]]
r = 2

[table]
a = 1

[table.sub]
b = 2

[after]
c = 3
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Encode(format.TOMLFormat, late, Options{Fix: tt.fix})
			if err != nil {
				t.Fatal(err)
			}
			if diff := libdiff.Text(tt.want, string(d)); diff != "" {
				t.Error(diff)
			}
			back, err := DecodeTOML(d)
			if err != nil {
				t.Fatal(err)
			}
			want := late
			if tt.fix {
				want = value.ReorderTables(late)
			}
			if diff := cmp.Diff(want, back); diff != "" {
				t.Errorf("decoded (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeTOMLErrors(t *testing.T) {
	if _, err := EncodeTOML(obj("n", value.Nil())); !errors.Is(err, ErrEncode) {
		t.Errorf("null: got %v", err)
	}
	if _, err := EncodeTOML(arr()); !errors.Is(err, ErrEncode) {
		t.Errorf("array root: got %v", err)
	}
}

func TestDecodeTOMLOrder(t *testing.T) {
	in := `zz = 1
aa = "two"
date = 2024-01-02

[tbl]
y = 1
x = 2

[[arr]]
b = 1
a = 2
`
	got, err := DecodeTOML([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	want := obj(
		"zz", num(1),
		"aa", str("two"),
		"date", str("2024-01-02"),
		"tbl", obj("y", num(1), "x", num(2)),
		"arr", arr(obj("b", num(1), "a", num(2))),
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestLua(t *testing.T) {
	in := obj("k", arr(str("a\"b"), value.Nil()))
	d := EncodeLua(in)
	if want := `Object:new({{"k", Array:new({"a\"b", NULL})}})`; string(d) != want {
		t.Errorf("got %s want %s", d, want)
	}
	if _, err := DecodeLua([]byte("{")); !errors.Is(err, ErrDecode) {
		t.Errorf("bad lua: got %v", err)
	}
}
