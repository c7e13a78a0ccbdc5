package value

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func obj(kvs ...any) *Value {
	res := make([]KeyVal, 0, len(kvs)/2)
	for i := 0; i < len(kvs); i += 2 {
		res = append(res, KeyVal{Key: kvs[i].(string), Val: kvs[i+1].(*Value)})
	}
	return FromKeyVals(res)
}

func arr(vs ...*Value) *Value {
	return FromSlice(vs)
}

func ints(is ...int64) *Value {
	res := make([]*Value, len(is))
	for i, n := range is {
		res[i] = FromInt(n)
	}
	return FromSlice(res)
}

func TestMerge(t *testing.T) {
	first := obj("msg", FromString("hi"), "values", obj("a", FromInt(1), "b", FromInt(2)))
	second := obj("level", FromInt(1))
	third := obj("msg", FromString("hello"), "values", obj("b", FromInt(3), "c", FromInt(4)))

	tests := []struct {
		name  string
		depth int
		in    []*Value
		want  *Value
	}{
		{
			name:  "unbounded objects",
			depth: -1,
			in:    []*Value{first, second, third},
			want: obj(
				"msg", FromString("hello"),
				"values", obj("a", FromInt(1), "b", FromInt(3), "c", FromInt(4)),
				"level", FromInt(1)),
		},
		{
			name:  "depth 1 overwrites nested objects",
			depth: 1,
			in:    []*Value{first, second, third},
			want: obj(
				"msg", FromString("hello"),
				"values", obj("b", FromInt(3), "c", FromInt(4)),
				"level", FromInt(1)),
		},
		{
			name:  "depth 0",
			depth: 0,
			in:    []*Value{first, third},
			want:  third,
		},
		{
			name:  "array longer left",
			depth: -1,
			in:    []*Value{ints(1, 2, 3), ints(9, 9)},
			want:  ints(9, 9, 3),
		},
		{
			name:  "array longer right",
			depth: -1,
			in:    []*Value{ints(1), ints(1, 2, 3)},
			want:  ints(1, 2, 3),
		},
		{
			name:  "nested arrays depth 1",
			depth: 1,
			in:    []*Value{arr(ints(1, 2), FromInt(5)), arr(ints(7))},
			want:  arr(ints(7), FromInt(5)),
		},
		{
			name:  "nested arrays depth 2",
			depth: 2,
			in:    []*Value{arr(ints(1, 2), FromInt(5)), arr(ints(7))},
			want:  arr(ints(7, 2), FromInt(5)),
		},
		{
			name:  "array over object",
			depth: -1,
			in:    []*Value{obj("a", FromInt(1)), ints(1)},
			want:  ints(1),
		},
		{
			name:  "scalar over object",
			depth: -1,
			in:    []*Value{obj("a", FromInt(1)), Nil()},
			want:  Nil(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in[0]
			for _, right := range tt.in[1:] {
				got = Merge(got, right, tt.depth)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMergeDepthZeroClones(t *testing.T) {
	right := obj("a", ints(1, 2))
	got := Merge(obj("b", FromInt(1)), right, 0)
	if !Equal(got, right) {
		t.Fatalf("expected clone of right, got %+v", got)
	}
	got.Values[0].Values[0].Int = 42
	if right.Values[0].Values[0].Int != 1 {
		t.Errorf("merge result shares storage with its input")
	}
}

func TestMergeDoesNotModifyInputs(t *testing.T) {
	left := obj("a", obj("x", FromInt(1)), "l", FromBool(true))
	right := obj("a", obj("y", FromInt(2)), "r", FromBool(false))
	leftCopy, rightCopy := left.Clone(), right.Clone()
	_ = Merge(left, right, -1)
	if !Equal(left, leftCopy) || !Equal(right, rightCopy) {
		t.Errorf("Merge modified its inputs")
	}
}
