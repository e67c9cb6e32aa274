//go:build !pprof

package profile

import "testing"

func TestStart_NotCompiled(t *testing.T) {
	if len(Modes()) != 0 {
		t.Errorf("Modes() = %q, want none without the %s tag", Modes(), Tag)
	}

	if _, ok := New(WithMode("cpu")).Start().(ignore); !ok {
		t.Error("Start() profiled without the pprof tag")
	}
}
