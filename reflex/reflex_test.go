package reflex

import (
	"errors"
	"slices"
	"sync"
	"testing"
)

func TestReflex_Params(t *testing.T) {
	ctx := &store{}

	tests := []struct {
		name      string
		reflex    Reflex
		wantList  []string
		wantCount int
	}{
		{"extracted", New(add, nil), []string{"a", "b"}, 2},
		{"explicit", New(add, ctx, WithParams("x", "y")), []string{"x", "y"}, 2},
		{"explicit empty", New(add, nil, WithParams()), []string{}, 0},
		{"explicit longer", New(add, nil, WithParams("a", "b", "c")), []string{"a", "b", "c"}, 3},
		{"source text", New(add, nil, WithSource("func(p /* first */, q)")), []string{"p", "q"}, 2},
		{"receiver excluded", New((*store).Put, ctx, WithSource("func(key, value)")), []string{"key", "value"}, 2},
		{"variadic", New(join, nil), []string{"sep", "parts"}, 2},
		{"not a function", New(42, nil), []string{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.reflex.Params()

			if got := p.List(); !slices.Equal(got, tt.wantList) {
				t.Errorf("List() = %q, want %q", got, tt.wantList)
			}

			if got := p.Count(); got != tt.wantCount {
				t.Errorf("Count() = %d, want %d", got, tt.wantCount)
			}
		})
	}
}

func TestReflex_ListIsCopy(t *testing.T) {
	r := New(add, nil, WithParams("a", "b"))

	list := r.Params().List()
	list[0] = "changed"

	if got := r.Params().List(); got[0] != "a" {
		t.Errorf("List() = %q after caller modified a previous result", got)
	}
}

func TestReflex_WithParamsCopies(t *testing.T) {
	names := []string{"a", "b"}
	r := New(add, nil, WithParams(names...))

	names[0] = "changed"

	if got := r.Params().List(); got[0] != "a" {
		t.Errorf("List() = %q after caller modified the option input", got)
	}
}

func TestReflex_Bind(t *testing.T) {
	base := New(add, nil)

	one := base.Params().Bind(Values{"a": 1})
	two := one.Params().Bind(Values{"b": 2})
	alt := one.Params().Bind(Values{"b": 20})

	tests := []struct {
		name   string
		reflex Reflex
		layers int
		want   any
	}{
		{"unbound", base, 0, 0},
		{"one layer", one, 1, 1},
		{"two layers", two, 2, 3},
		{"sibling", alt, 2, 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(tt.reflex.Layers()); got != tt.layers {
				t.Errorf("len(Layers()) = %d, want %d", got, tt.layers)
			}

			got, err := tt.reflex.Fn()
			if err != nil {
				t.Fatalf("Fn() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("Fn() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReflex_BindSameMap(t *testing.T) {
	v := Values{"a": 1}

	r := New(add, nil).Params().Bind(v).Params().Bind(v)

	if got := len(r.Layers()); got != 1 {
		t.Errorf("len(Layers()) = %d, want 1", got)
	}
}

func TestReflex_BindKeepsOptions(t *testing.T) {
	calls := 0

	r := New(add, nil,
		WithParams("x", "y"),
		WithUnresolved(func(any, string, []Values) (any, error) {
			calls++

			return 5, nil
		}),
	).Params().Bind(Values{"x": 1})

	got, err := r.Fn()
	if err != nil {
		t.Fatalf("Fn() error = %v", err)
	}

	if got != 6 || calls != 1 {
		t.Errorf("Fn() = %v with %d fallback calls, want 6 with 1", got, calls)
	}

	if l := r.Params().List(); !slices.Equal(l, []string{"x", "y"}) {
		t.Errorf("List() = %q, want [x y]", l)
	}
}

func TestReflex_ContextParams(t *testing.T) {
	ctx := &acc{base: 100}

	tests := []struct {
		name string
		fn   any
	}{
		{"top level", sum},
		{"literal", func(s *acc, a, b int) int { return s.base + a + b }},
		{"method expression", (*acc).Sum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(tt.fn, ctx, WithBindings(Values{"a": 1, "b": 2}))

			if l := r.Params().List(); !slices.Equal(l, []string{"a", "b"}) {
				t.Errorf("List() = %q, want [a b]", l)
			}

			if n := r.Params().Count(); n != 2 {
				t.Errorf("Count() = %d, want 2", n)
			}

			got, err := r.Fn()
			if err != nil {
				t.Fatalf("Fn() error = %v", err)
			}

			if got != 103 {
				t.Errorf("Fn() = %v, want 103", got)
			}
		})
	}
}

func TestReflex_WithBindings(t *testing.T) {
	r := New(add, nil, WithBindings(Values{"a": 1, "b": 1}, Values{"b": 2}))

	if got, _ := r.Fn(); got != 3 {
		t.Errorf("Fn() = %v, want 3", got)
	}
}

func TestReflex_Check(t *testing.T) {
	var nilFunc func()

	tests := []struct {
		name     string
		value    any
		isFunc   bool
		callable bool
	}{
		{"function", add, true, true},
		{"closure", func() {}, true, true},
		{"nil function", nilFunc, true, false},
		{"nil", nil, false, false},
		{"number", 42, false, false},
		{"declaration text", "func add(a, b)", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(tt.value, nil)

			if got := r.IsFunc(); got != tt.isFunc {
				t.Errorf("IsFunc() = %v, want %v", got, tt.isFunc)
			}

			err := r.Check()
			if tt.callable && err != nil {
				t.Errorf("Check() error = %v, want nil", err)
			}

			if !tt.callable && !errors.Is(err, ErrNotCallable) {
				t.Errorf("Check() error = %v, want ErrNotCallable", err)
			}

			if !errors.Is(CheckFunc(tt.value), err) {
				t.Errorf("CheckFunc() disagrees with Check()")
			}
		})
	}
}

func TestCheckFunc_Message(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"number", 42, "not a function: int 42"},
		{"text", "f", "not a function: string f"},
		{"nil", nil, "not a function: nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckFunc(tt.value)
			if err == nil {
				t.Fatalf("CheckFunc(%v) = nil, want error", tt.value)
			}

			if got := err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReflex_Identity(t *testing.T) {
	s := &store{}
	r := New(s, s)

	if r.Identity() != s || r.Context() != s {
		t.Errorf("Identity(), Context() = %v, %v, want %v", r.Identity(), r.Context(), s)
	}
}

func TestReflex_Bound(t *testing.T) {
	layer := Values{"a": 1, "b": 1}
	thunk := New(add, nil).Params().Bind(layer).Bound()

	layer["a"] = 40

	if got, _ := thunk(); got != 41 {
		t.Errorf("thunk() = %v, want 41", got)
	}
}

func TestReflex_Concurrent(t *testing.T) {
	base := New(add, nil).Params().Bind(Values{"a": 1})

	var wg sync.WaitGroup

	for i := range 16 {
		wg.Go(func() {
			r := base.Params().Bind(Values{"b": i})

			got, err := r.Fn()
			if err != nil || got != 1+i {
				t.Errorf("Fn() = %v, %v, want %d", got, err, 1+i)
			}
		})
	}

	wg.Wait()

	if got := len(base.Layers()); got != 1 {
		t.Errorf("base has %d layers after concurrent binds, want 1", got)
	}
}
