package zorder

import (
	"errors"
	"testing"

	"github.com/printlab/fieldkit/field"
)

func ids(ss ...string) []field.ID {
	out := make([]field.ID, len(ss))
	for i, s := range ss {
		out[i] = field.ID(s)
	}
	return out
}

func eq(a, b []field.ID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplyMoveFront(t *testing.T) {
	out, changed, err := Apply(ids("a", "b", "c"), "b", MoveFront)
	if err != nil || !changed {
		t.Fatalf("changed=%v err=%v", changed, err)
	}
	if !eq(out, ids("a", "c", "b")) {
		t.Fatalf("got %v", out)
	}
}

func TestApplyMoveBack(t *testing.T) {
	out, changed, err := Apply(ids("a", "b", "c"), "b", MoveBack)
	if err != nil || !changed {
		t.Fatalf("changed=%v err=%v", changed, err)
	}
	if !eq(out, ids("b", "a", "c")) {
		t.Fatalf("got %v", out)
	}
}

func TestApplyMoveToFrontAndBack(t *testing.T) {
	out, changed, err := Apply(ids("a", "b", "c", "d"), "b", MoveToFront)
	if err != nil || !changed {
		t.Fatalf("changed=%v err=%v", changed, err)
	}
	if !eq(out, ids("a", "c", "d", "b")) {
		t.Fatalf("to front: got %v", out)
	}

	out, changed, err = Apply(out, "b", MoveToBack)
	if err != nil || !changed {
		t.Fatalf("changed=%v err=%v", changed, err)
	}
	if !eq(out, ids("b", "a", "c", "d")) {
		t.Fatalf("to back: got %v", out)
	}
}

func TestApplyBoundaryNoOps(t *testing.T) {
	cases := []struct {
		id   field.ID
		mode Mode
	}{
		{"c", MoveFront},
		{"c", MoveToFront},
		{"a", MoveBack},
		{"a", MoveToBack},
	}
	for _, c := range cases {
		out, changed, err := Apply(ids("a", "b", "c"), c.id, c.mode)
		if err != nil {
			t.Fatalf("%v on %s: %v", c.mode, c.id, err)
		}
		if changed || !eq(out, ids("a", "b", "c")) {
			t.Fatalf("%v on %s: expected no-op, got %v", c.mode, c.id, out)
		}
	}
}

func TestApplySingleElement(t *testing.T) {
	for _, m := range []Mode{MoveFront, MoveBack, MoveToFront, MoveToBack} {
		out, changed, err := Apply(ids("only"), "only", m)
		if err != nil || changed || !eq(out, ids("only")) {
			t.Fatalf("%v: changed=%v err=%v out=%v", m, changed, err, out)
		}
	}
}

func TestApplyUnknownField(t *testing.T) {
	_, _, err := Apply(ids("a"), "ghost", MoveFront)
	if !errors.Is(err, field.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := ids("a", "b", "c")
	if _, _, err := Apply(in, "a", MoveToFront); err != nil {
		t.Fatal(err)
	}
	if !eq(in, ids("a", "b", "c")) {
		t.Fatalf("input mutated: %v", in)
	}
}

func TestStacks(t *testing.T) {
	s := NewStacks()
	if z := s.Push(1, field.SubPageLeft, "a"); z != 0 {
		t.Fatalf("first push zIndex = %d", z)
	}
	if z := s.Push(1, field.SubPageLeft, "b"); z != 1 {
		t.Fatalf("second push zIndex = %d", z)
	}
	s.Push(1, field.SubPageRight, "r")

	if got := s.Get(1, field.SubPageLeft); !eq(got, ids("a", "b")) {
		t.Fatalf("left stack: %v", got)
	}
	if got := s.Get(1, field.SubPageRight); !eq(got, ids("r")) {
		t.Fatalf("right stack: %v", got)
	}

	s.Remove(1, field.SubPageLeft, "a")
	if got := s.Get(1, field.SubPageLeft); !eq(got, ids("b")) {
		t.Fatalf("after remove: %v", got)
	}

	// Get returns a copy.
	got := s.Get(1, field.SubPageLeft)
	got[0] = "x"
	if s.Get(1, field.SubPageLeft)[0] != "b" {
		t.Fatal("Get leaked internal slice")
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{MoveFront, MoveBack, MoveToFront, MoveToBack} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Fatalf("round trip %v: got %v err %v", m, got, err)
		}
	}
	if _, err := ParseMode("sideways"); !errors.Is(err, field.ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument, got %v", err)
	}
}
