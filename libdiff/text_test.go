package libdiff

import "testing"

func TestText(t *testing.T) {
	tests := []struct {
		from, to, want string
	}{
		{"a\nb\n", "a\nb\n", ""},
		{"a\nb\nc\n", "a\nx\nc\n", " a\n-b\n+x\n c\n"},
		{"a", "b", "-a\\ no newline\n+b\\ no newline\n"},
	}
	for _, tc := range tests {
		if got := Text(tc.from, tc.to); got != tc.want {
			t.Errorf("Text(%q, %q): got %q want %q", tc.from, tc.to, got, tc.want)
		}
	}
}
