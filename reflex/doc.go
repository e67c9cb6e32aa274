// Package reflex binds arguments to functions by parameter name.
//
// A [Reflex] wraps a callable together with an optional receiver and a
// chain of [Values] layers. [Params.Bind] returns a new Reflex with one
// more layer; the original is never changed, so partially bound values can
// be kept and extended independently. [Reflex.Fn] merges the layers (later
// layers win), looks up each parameter by name and calls the function.
//
//	add := reflex.New(func(a, b int) int { return a + b }, nil)
//
//	sum, err := add.Params().Bind(reflex.Values{"a": 1}).
//		Params().Bind(reflex.Values{"b": 2}).
//		Fn()
//
// Parameter names come from, in order of preference, [WithParams], the
// declaration text given to [WithSource], or the Go source file of the
// function (see [Declaration]). [ParseParams] extracts names from
// declaration text.
package reflex
