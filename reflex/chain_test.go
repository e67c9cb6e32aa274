package reflex

import (
	"slices"
	"testing"
)

func TestChain_Empty(t *testing.T) {
	var c *Chain

	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}

	if c.Last() != nil {
		t.Errorf("Last() = %v, want nil", c.Last())
	}

	if got := c.Layers(); len(got) != 0 {
		t.Errorf("Layers() = %v, want empty", got)
	}
}

func TestChain_AppendOrder(t *testing.T) {
	a, b, c := Values{"k": 1}, Values{"k": 2}, Values{"k": 3}

	chain := (*Chain)(nil).Append(a).Append(b).Append(c)

	if chain.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", chain.Len())
	}

	var got []any
	for layer := range chain.All() {
		got = append(got, layer["k"])
	}

	if want := []any{1, 2, 3}; !slices.Equal(got, want) {
		t.Errorf("All() order = %v, want %v", got, want)
	}

	if chain.Last()["k"] != 3 {
		t.Errorf("Last() = %v, want newest layer", chain.Last())
	}
}

func TestChain_AppendDoesNotAlias(t *testing.T) {
	root := (*Chain)(nil).Append(Values{"a": 1})

	left := root.Append(Values{"b": 2})
	right := root.Append(Values{"c": 3})

	if root.Len() != 1 {
		t.Errorf("root.Len() = %d, want 1", root.Len())
	}

	if left.Len() != 2 || right.Len() != 2 {
		t.Errorf("branch lengths = %d, %d, want 2, 2", left.Len(), right.Len())
	}

	if _, ok := left.Last()["c"]; ok {
		t.Error("left branch sees right branch layer")
	}

	if _, ok := right.Last()["b"]; ok {
		t.Error("right branch sees left branch layer")
	}
}

func TestChain_AppendSameMap(t *testing.T) {
	v := Values{"a": 1}

	once := (*Chain)(nil).Append(v)
	twice := once.Append(v)

	if twice != once {
		t.Error("appending the head map again created a new chain")
	}

	// An equal but distinct map is a new layer.
	if other := once.Append(Values{"a": 1}); other.Len() != 2 {
		t.Errorf("Len() = %d, want 2", other.Len())
	}

	// Only the head is compared.
	if again := once.Append(Values{}).Append(v); again.Len() != 3 {
		t.Errorf("Len() = %d, want 3", again.Len())
	}
}
