package reflex

import "github.com/ardnew/reflex/log"

// Option configures a [Reflex] created by [New].
type Option func(Binding) Binding

// WithParams fixes the parameter names, bypassing extraction. Calling it
// with no names declares an empty list, which still counts as explicit.
func WithParams(names ...string) Option {
	return func(b Binding) Binding {
		b.Params = append([]string{}, names...)

		return b
	}
}

// WithUnresolved sets the fallback for parameters that no layer binds.
func WithUnresolved(fn Unresolved) Option {
	return func(b Binding) Binding {
		b.OnUnresolved = fn

		return b
	}
}

// WithSource sets the declaration text parameter names are read from, for
// callables whose Go source is unavailable or does not name them.
func WithSource(decl string) Option {
	return func(b Binding) Binding {
		b.Source = decl

		return b
	}
}

// WithLogger traces extraction and resolution to l.
func WithLogger(l log.Logger) Option {
	return func(b Binding) Binding {
		b.Logger = l

		return b
	}
}

// WithBindings starts the binding chain with layers, oldest first.
func WithBindings(layers ...Values) Option {
	return func(b Binding) Binding {
		for _, layer := range layers {
			b.Chain = b.Chain.Append(layer)
		}

		return b
	}
}
