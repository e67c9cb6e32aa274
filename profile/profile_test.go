package profile

import (
	"slices"
	"testing"
)

func TestNew(t *testing.T) {
	p := New(WithMode("cpu"), WithPath("/tmp/p"), WithQuiet(true), nil)

	want := Profiler{Mode: "cpu", Path: "/tmp/p", Quiet: true}
	if p != want {
		t.Errorf("New() = %+v, want %+v", p, want)
	}
}

func TestStart_Disabled(t *testing.T) {
	for _, mode := range []string{"", "unknown"} {
		s := New(WithMode(mode)).Start()
		if _, ok := s.(ignore); !ok {
			t.Errorf("Start() with mode %q = %T, want no-op", mode, s)
		}

		s.Stop()
	}
}

func TestModes_Sorted(t *testing.T) {
	if modes := Modes(); !slices.IsSorted(modes) {
		t.Errorf("Modes() = %q, want sorted", modes)
	}
}
