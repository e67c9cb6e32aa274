package reflex

import (
	"iter"
	"reflect"
)

// Chain is an immutable, ordered sequence of [Values] layers. Appending
// returns a new Chain that shares its predecessors; an existing Chain never
// changes. The nil *Chain is the empty chain.
type Chain struct {
	prev  *Chain
	layer Values
	size  int
}

// Append returns a chain with v as its newest layer. When v is the very map
// already at the head of c, c itself is returned.
func (c *Chain) Append(v Values) *Chain {
	if c != nil && sameValues(c.layer, v) {
		return c
	}

	return &Chain{prev: c, layer: v, size: c.Len() + 1}
}

// Len returns the number of layers in c.
func (c *Chain) Len() int {
	if c == nil {
		return 0
	}

	return c.size
}

// Last returns the newest layer, or nil when c is empty.
func (c *Chain) Last() Values {
	if c == nil {
		return nil
	}

	return c.layer
}

// Layers returns the layers of c, oldest first.
func (c *Chain) Layers() []Values {
	layers := make([]Values, c.Len())

	for node, i := c, c.Len()-1; node != nil; node, i = node.prev, i-1 {
		layers[i] = node.layer
	}

	return layers
}

// All returns an iterator over the layers of c, oldest first.
func (c *Chain) All() iter.Seq[Values] {
	return func(yield func(Values) bool) {
		for _, layer := range c.Layers() {
			if !yield(layer) {
				return
			}
		}
	}
}

// sameValues reports whether a and b are the same map, not merely equal.
func sameValues(a, b Values) bool {
	return reflect.ValueOf(a).UnsafePointer() == reflect.ValueOf(b).UnsafePointer()
}
