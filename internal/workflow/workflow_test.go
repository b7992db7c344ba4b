package workflow

import (
	"reflect"
	"sort"
	"testing"
)

func TestAddIsIdempotent(t *testing.T) {
	e := NewEditor(nil)
	if !e.Add(RequestPayment) {
		t.Fatal("first add should succeed")
	}
	if e.Add(RequestPayment) {
		t.Error("duplicate add should report false")
	}
	count := 0
	for _, b := range e.Blocks() {
		if b == RequestPayment {
			count++
		}
	}
	if count != 1 {
		t.Errorf("block appears %d times, want exactly once", count)
	}
}

func TestRemovePreservesRelativeOrder(t *testing.T) {
	e := NewEditor(DefaultSequence())
	before := e.Blocks()

	if !e.Remove(2) {
		t.Fatal("remove failed")
	}
	after := e.Blocks()

	if len(after) != len(before)-1 {
		t.Fatalf("length %d, want %d", len(after), len(before)-1)
	}
	want := append(append([]string{}, before[:2]...), before[3:]...)
	if !reflect.DeepEqual(after, want) {
		t.Errorf("after remove = %v, want %v", after, want)
	}
}

func TestRemoveOutOfRange(t *testing.T) {
	e := NewEditor(DefaultSequence())
	if e.Remove(-1) || e.Remove(len(DefaultSequence())) {
		t.Error("out-of-range remove should report false")
	}
	if len(e.Blocks()) != len(DefaultSequence()) {
		t.Error("out-of-range remove changed the sequence")
	}
}

func TestMoveSemantics(t *testing.T) {
	cases := []struct {
		name     string
		from, to int
	}{
		{"forward", 1, 4},
		{"backward", 5, 0},
		{"adjacent", 2, 3},
		{"same index", 3, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEditor(DefaultSequence())
			before := e.Blocks()

			if !e.Move(tc.from, tc.to) {
				t.Fatal("move failed")
			}
			after := e.Blocks()

			if after[tc.to] != before[tc.from] {
				t.Errorf("element from %d not at %d: got %v", tc.from, tc.to, after)
			}
			a, b := append([]string{}, before...), append([]string{}, after...)
			sort.Strings(a)
			sort.Strings(b)
			if !reflect.DeepEqual(a, b) {
				t.Errorf("multiset changed: before %v, after %v", before, after)
			}
		})
	}
}

func TestMoveOutOfRange(t *testing.T) {
	e := NewEditor(DefaultSequence())
	if e.Move(-1, 2) || e.Move(2, 99) {
		t.Error("out-of-range move should report false")
	}
}

func TestResetRestoresDefault(t *testing.T) {
	e := NewEditor([]string{OrderDelivered})
	e.Reset()
	if !reflect.DeepEqual(e.Blocks(), DefaultSequence()) {
		t.Errorf("reset = %v, want default sequence", e.Blocks())
	}
}

func TestUnknownIDLoadsVerbatim(t *testing.T) {
	e := NewEditor([]string{"future_block", OrderCreated})
	if got := e.Blocks()[0]; got != "future_block" {
		t.Errorf("unknown id = %q, want future_block", got)
	}
	if Lookup("future_block").Label != "future_block" {
		t.Error("unknown id should render with raw id as label")
	}
}

func TestEditorCopiesInput(t *testing.T) {
	src := []string{OrderCreated, OrderAccepted}
	e := NewEditor(src)
	src[0] = "mutated"
	if e.Blocks()[0] != OrderCreated {
		t.Error("editor aliases its input slice")
	}
}
