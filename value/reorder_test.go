package value

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReorderTables(t *testing.T) {
	in := obj(
		"server", obj("port", FromInt(80), "tls", obj("on", FromBool(true)), "host", FromString("h")),
		"tags", arr(FromString("a")),
		"name", FromString("n"),
		"owners", arr(obj("sub", obj("x", FromInt(1)), "id", FromInt(1))),
		"version", FromInt(2),
	)
	want := obj(
		"name", FromString("n"),
		"version", FromInt(2),
		"tags", arr(FromString("a")),
		"owners", arr(obj("id", FromInt(1), "sub", obj("x", FromInt(1)))),
		"server", obj("port", FromInt(80), "host", FromString("h"), "tls", obj("on", FromBool(true))),
	)
	got := ReorderTables(in)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReorderTables() mismatch (-want +got):\n%s", diff)
	}
}

func TestReorderTablesScalar(t *testing.T) {
	for _, v := range []*Value{Nil(), FromInt(3), FromString("x")} {
		if got := ReorderTables(v); !Equal(got, v) {
			t.Errorf("ReorderTables(%v) = %v", v.Type, got.Type)
		}
	}
}
