package value

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromKeyValsDuplicates(t *testing.T) {
	got := FromKeyVals([]KeyVal{
		{Key: "a", Val: FromInt(1)},
		{Key: "b", Val: FromInt(2)},
		{Key: "a", Val: FromInt(3)},
	})
	if diff := cmp.Diff([]string{"a", "b"}, got.Fields); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if got.Get("a").Int != 3 {
		t.Errorf("expected last value to win, got %d", got.Get("a").Int)
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b *Value
		want bool
	}{
		{"nil", Nil(), Nil(), true},
		{"int vs float", FromInt(1), FromFloat(1), false},
		{"nan", FromFloat(math.NaN()), FromFloat(math.NaN()), true},
		{"key order", obj("a", Nil(), "b", Nil()), obj("b", Nil(), "a", Nil()), false},
		{"arrays", ints(1, 2), ints(1, 2), true},
		{"array length", ints(1, 2), ints(1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		in   *Value
		want string
		ok   bool
	}{
		{Nil(), "~", true},
		{FromBool(false), "false", true},
		{FromInt(-12), "-12", true},
		{FromFloat(1.5), "1.5", true},
		{FromFloat(3), "3", true},
		{FromString("hi there"), "hi there", true},
		{ints(1), "", false},
	}
	for _, tt := range tests {
		got, ok := tt.in.Text()
		if got != tt.want || ok != tt.ok {
			t.Errorf("Text(%s) = %q, %v; want %q, %v", tt.in.Type, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAnyRoundTrip(t *testing.T) {
	in := obj("b", ints(1, 2), "a", obj("s", FromString("x"), "f", FromFloat(0.5), "n", Nil()))
	got, err := FromAny(ToAny(in))
	if err != nil {
		t.Fatal(err)
	}
	// maps come back sorted
	want := obj("a", obj("f", FromFloat(0.5), "n", Nil(), "s", FromString("x")), "b", ints(1, 2))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFromAnyUnsupported(t *testing.T) {
	_, err := FromAny(struct{}{})
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
	_, err = FromAny(uint64(math.MaxUint64))
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported for overflow, got %v", err)
	}
}

func TestLargeObjects(t *testing.T) {
	const n = 100000
	left := make([]KeyVal, n)
	right := make([]KeyVal, n)
	for i := range n {
		left[i] = KeyVal{Key: "k" + strconv.Itoa(i), Val: FromInt(int64(i))}
		right[i] = KeyVal{Key: "k" + strconv.Itoa(i+n/2), Val: FromInt(-1)}
	}
	l, r := FromKeyVals(left), FromKeyVals(right)
	got := Merge(l, r, -1)
	if got.Len() != n+n/2 {
		t.Fatalf("got %d keys, want %d", got.Len(), n+n/2)
	}
	if got.Fields[0] != "k0" || got.Values[0].Int != 0 {
		t.Errorf("first entry: got %s=%d", got.Fields[0], got.Values[0].Int)
	}
	if v := got.Get("k" + strconv.Itoa(n/2)); v.Int != -1 {
		t.Errorf("overlapping key: got %d, want -1", v.Int)
	}
	if got.Fields[n] != "k"+strconv.Itoa(n) {
		t.Errorf("first right-only key: got %s", got.Fields[n])
	}
}
