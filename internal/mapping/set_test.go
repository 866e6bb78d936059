package mapping

import (
	"reflect"
	"testing"
)

func TestControlSetOperations(t *testing.T) {
	a := NewControlSet("CC6.1", "CC6.2", "CC6.1")
	b := NewControlSet("CC6.2", "CC7.1")

	if len(a) != 2 {
		t.Errorf("duplicates should collapse, len = %d", len(a))
	}
	if !a.Has("CC6.1") || a.Has("CC7.1") {
		t.Error("membership checks failed")
	}

	if got := a.Intersect(b); !got.Equal(NewControlSet("CC6.2")) {
		t.Errorf("Intersect = %v, want {CC6.2}", got.Sorted())
	}
	if got := a.Diff(b); !got.Equal(NewControlSet("CC6.1")) {
		t.Errorf("Diff = %v, want {CC6.1}", got.Sorted())
	}

	a.Union(b)
	if !a.Equal(NewControlSet("CC6.1", "CC6.2", "CC7.1")) {
		t.Errorf("Union = %v", a.Sorted())
	}
}

func TestControlSetSorted(t *testing.T) {
	s := NewControlSet("CC7.1", "CC6.1", "A.8.24")
	want := []string{"A.8.24", "CC6.1", "CC7.1"}
	if got := s.Sorted(); !reflect.DeepEqual(got, want) {
		t.Errorf("Sorted() = %v, want %v", got, want)
	}
}

func TestControlSetEqual(t *testing.T) {
	tests := []struct {
		name  string
		a, b  ControlSet
		equal bool
	}{
		{"same", NewControlSet("x", "y"), NewControlSet("y", "x"), true},
		{"different size", NewControlSet("x"), NewControlSet("x", "y"), false},
		{"disjoint", NewControlSet("x"), NewControlSet("y"), false},
		{"both empty", NewControlSet(), NewControlSet(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.equal {
				t.Errorf("Equal = %v, want %v", got, tt.equal)
			}
		})
	}
}
