package cmd

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
)

func TestParams_Decl(t *testing.T) {
	out, err := run(t, nil, "params", "-o", "json", "func add(a, b)", "noop()")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var reports []Report
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("Unmarshal(%q) error = %v", out, err)
	}

	if len(reports) != 2 {
		t.Fatalf("len(reports) = %d, want 2", len(reports))
	}

	if !slices.Equal(reports[0].Params, []string{"a", "b"}) || reports[0].Count != 2 {
		t.Errorf("reports[0] = %+v", reports[0])
	}

	if len(reports[1].Params) != 0 || reports[1].Count != 0 {
		t.Errorf("reports[1] = %+v", reports[1])
	}
}

func TestParams_Script(t *testing.T) {
	path := writeScript(t, "add(a, b) = a + b\ngreet(name) = name\n")

	out, err := run(t, nil, "-s", path, "params", "-o", "yaml")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var reports []Report
	if err := yaml.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("Unmarshal(%q) error = %v", out, err)
	}

	want := []Report{
		{Name: "add", Decl: "add(a, b)", Params: []string{"a", "b"}, Count: 2},
		{Name: "greet", Decl: "greet(name)", Params: []string{"name"}, Count: 1},
	}

	if len(reports) != len(want) {
		t.Fatalf("reports = %+v, want %+v", reports, want)
	}

	for i := range want {
		got := reports[i]
		if got.Name != want[i].Name || got.Decl != want[i].Decl ||
			!slices.Equal(got.Params, want[i].Params) || got.Count != want[i].Count {
			t.Errorf("reports[%d] = %+v, want %+v", i, got, want[i])
		}
	}
}

func TestParams_Text(t *testing.T) {
	out, err := run(t, nil, "params", "func greet(name /* who */, punct)")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, want := range []string{"name, punct", "2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}
}

func TestParams_NoInput(t *testing.T) {
	if _, err := run(t, nil, "params"); !errors.Is(err, ErrNoInput) {
		t.Errorf("Run() error = %v, want %v", err, ErrNoInput)
	}
}
