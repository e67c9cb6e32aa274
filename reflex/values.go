package reflex

import "maps"

// Values maps parameter names to the values bound to them. A Values is one
// layer of a binding [Chain].
type Values map[string]any

// Merge flattens base and layers into a new Values. Layers are applied left
// to right, so a later layer overrides an earlier one on the same key. Nil
// layers contribute nothing. No argument is modified and the result is never
// nil.
func Merge(base Values, layers ...Values) Values {
	size := len(base)
	for _, layer := range layers {
		size += len(layer)
	}

	merged := make(Values, size)
	maps.Copy(merged, base)

	for _, layer := range layers {
		maps.Copy(merged, layer)
	}

	return merged
}
