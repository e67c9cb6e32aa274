package script

import (
	"maps"
	"slices"

	"github.com/ardnew/reflex/log"
)

// Option configures parsing and evaluation.
type Option func(*options)

type options struct {
	logger   log.Logger
	environ  []string
	builtins map[string]any
}

func makeOptions(opts ...Option) options {
	var o options

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// cacheable reports whether a script parsed under o may be shared with
// other callers parsing the same source.
func (o options) cacheable() bool {
	return o.environ == nil && len(o.builtins) == 0
}

// WithLogger traces parsing and evaluation to l.
func WithLogger(l log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithEnviron replaces the process environment seen through env with the
// given "KEY=VALUE" entries.
func WithEnviron(environ ...string) Option {
	return func(o *options) {
		o.environ = append(slices.Clip(o.environ), environ...)
		if o.environ == nil {
			o.environ = []string{}
		}
	}
}

// WithBuiltins adds top-level names to the expression environment.
// Parameter names shadow them.
func WithBuiltins(builtins map[string]any) Option {
	return func(o *options) {
		if o.builtins == nil {
			o.builtins = make(map[string]any, len(builtins))
		}

		maps.Copy(o.builtins, builtins)
	}
}
