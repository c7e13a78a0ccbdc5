package template

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/rmarshal/libdiff"
	"github.com/signadot/rmarshal/script"
	"github.com/signadot/rmarshal/value"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []Token
	}{
		{
			in: "a <%= x %>\nb",
			want: []Token{
				{Type: TText, Line: 1, Text: "a "},
				{Type: TExpression, Line: 1, Text: "x"},
				{Type: TNewLine, Line: 1},
				{Type: TText, Line: 2, Text: "b"},
			},
		},
		{
			in: "<%- for i = 1, 2 do -%>\n\n",
			want: []Token{
				{Type: TStatement, Line: 1, Text: "for i = 1, 2 do", TrimBefore: true, TrimAfter: true},
				{Type: TNewLine, Line: 1},
				{Type: TNewLine, Line: 2},
			},
		},
		{
			in: "<% if x\nthen %>y",
			want: []Token{
				{Type: TStatement, Line: 1, Text: "if x\nthen"},
				{Type: TText, Line: 2, Text: "y"},
			},
		},
		{
			in: "<%>%>",
			want: []Token{
				{Type: TStatement, Line: 1, Text: ">"},
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Tokenize([]byte(tc.in))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("tokens (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnterminated(t *testing.T) {
	_, err := Compile([]byte("ok\nok <%= x\n"))
	if !errors.Is(err, ErrUnterminated) {
		t.Fatalf("got %v", err)
	}
	if want := "unterminated tag at line 2"; err.Error() != want {
		t.Errorf("got %q want %q", err.Error(), want)
	}
}

func TestCompile(t *testing.T) {
	got, err := Compile([]byte("a\n<%= x %>]]"))
	if err != nil {
		t.Fatal(err)
	}
	want := `local _sb = {}
table.insert(_sb, "a")
table.insert(_sb, "\n")
table.insert(_sb, x)
table.insert(_sb, "]]")
ctx:set_output(_sb)
`
	if d := libdiff.Text(want, got); d != "" {
		t.Errorf("compiled source:\n%s", d)
	}
}

func TestRender(t *testing.T) {
	people := value.FromSlice([]*value.Value{
		value.FromKeyVals([]value.KeyVal{{Key: "name", Val: value.FromString("ann")}, {Key: "age", Val: value.FromInt(31)}}),
		value.FromKeyVals([]value.KeyVal{{Key: "name", Val: value.FromString("bob")}, {Key: "age", Val: value.FromFloat(2.5)}}),
	})
	tests := []struct {
		name   string
		tmpl   string
		inputs []*value.Value
		want   string
	}{
		{
			name: "trim",
			tmpl: "<%- if true then -%>\nkept\n<%- end -%>",
			want: "kept\n",
		},
		{
			name:   "loop",
			tmpl:   "people:\n  <%- for _, p in ipairs(ctx:get_input(1)) do -%>  \n- <%= p:get(\"name\") %> (<%= p:get(\"age\") %>)\n<%- end -%>\ndone\n",
			inputs: []*value.Value{people},
			want:   "people:\n- ann (31)\n- bob (2.5)\ndone\n",
		},
		{
			name: "untrimmed statement keeps its line",
			tmpl: "a\n<% local x = 1 %>\nb",
			want: "a\n\nb",
		},
		{
			name: "trim before only",
			tmpl: "x  <%- local y = 2 %>\n",
			want: "x  \n",
		},
		{
			name: "text with brackets and quotes",
			tmpl: `say "]]" and [==[ <%= 'ok' %>`,
			want: `say "]]" and [==[ ok`,
		},
		{
			name: "carriage returns",
			tmpl: "a\r\n<%= 'b' %>\r\n\rc",
			want: "a\r\nb\r\n\rc",
		},
		{
			name: "null and booleans",
			tmpl: "<%= NULL %> <%= 1 < 2 %>",
			want: "null true",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src, err := Compile([]byte(tc.tmpl))
			if err != nil {
				t.Fatal(err)
			}
			got, err := script.Render(tc.name, src, tc.inputs)
			if err != nil {
				t.Fatalf("%v\n%s", err, src)
			}
			if d := libdiff.Text(tc.want, got); d != "" {
				t.Errorf("rendered:\n%s", d)
			}
		})
	}
}
