package reflex

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
)

// Reflex pairs a callable with a receiver context and an immutable chain of
// named bindings. Every method that changes anything returns a new Reflex;
// a Reflex is safe to copy and to share between goroutines.
type Reflex struct {
	value   any
	binding Binding
}

// New wraps fn. context, when non-nil, is passed as the first argument of
// every call. fn need not be a function; [Reflex.Check] and [Reflex.Fn]
// report that case.
func New(fn any, context any, opts ...Option) Reflex {
	b := Binding{Context: context}

	for _, opt := range opts {
		if opt != nil {
			b = opt(b)
		}
	}

	return Reflex{value: fn, binding: b}
}

// Identity returns the wrapped value.
func (r Reflex) Identity() any { return r.value }

// Context returns the receiver context given to [New].
func (r Reflex) Context() any { return r.binding.Context }

// IsFunc reports whether the wrapped value is of function kind.
func (r Reflex) IsFunc() bool {
	return reflect.ValueOf(r.value).Kind() == reflect.Func
}

// Check returns [ErrNotCallable] unless the wrapped value is a non-nil
// function.
func (r Reflex) Check() error { return CheckFunc(r.value) }

// CheckFunc returns [ErrNotCallable] unless v is a non-nil function. The
// error message names the type and value of v.
func CheckFunc(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return ErrNotCallable.
			Wrap(errors.New(describe(v))).
			With(slog.String("type", fmt.Sprintf("%T", v)))
	}

	return nil
}

// describe names v by type and value, such as "int 42" or "nil".
func describe(v any) string {
	if v == nil {
		return "nil"
	}

	return fmt.Sprintf("%T %v", v, v)
}

// Params returns the parameter view of r.
func (r Reflex) Params() Params { return Params{r} }

// Layers returns the binding layers of r, oldest first.
func (r Reflex) Layers() []Values { return r.binding.Chain.Layers() }

// Bound returns a Thunk for a deferred call of the wrapped value.
func (r Reflex) Bound() Thunk { return Resolve(r.value, r.binding) }

// Fn calls the wrapped value with arguments resolved by name from the
// binding layers.
//
// Each argument is converted to its parameter type: nil and unbound
// parameters receive the zero value, assignable values pass unchanged,
// numbers convert when the value survives the round trip, and other
// convertible values are converted. Anything else fails with
// [ErrArgumentType]. Resolved values beyond the declared parameters fill a
// variadic tail, where a lone slice of the tail type is passed as the whole
// tail and a lone nil, bound or unbound, leaves the tail empty. They are
// dropped otherwise.
//
// A trailing error result is returned as the error. Of the remaining
// results, none yields nil, one yields that value and several yield []any.
func (r Reflex) Fn() (any, error) { return r.Bound()() }

// Params describes the parameters of a [Reflex].
type Params struct{ r Reflex }

// Count returns the number of names given to [WithParams] if any, otherwise
// the number of inputs the function declares, excluding the receiver
// context. It is 0 for values that are not functions.
func (p Params) Count() int {
	if p.r.binding.Params != nil {
		return len(p.r.binding.Params)
	}

	if !p.r.IsFunc() {
		return 0
	}

	num := reflect.TypeOf(p.r.value).NumIn()
	if p.r.binding.Context != nil && num > 0 {
		num--
	}

	return num
}

// List returns the parameter names, from [WithParams], [WithSource] or the
// Go source of the function, in that order of preference. The slice is the
// caller's to keep.
func (p Params) List() []string {
	return append([]string{}, paramNames(p.r.value, p.r.binding)...)
}

// Bind returns a copy of the Reflex with v as the newest binding layer. The
// chain is left as is when v is the map already at its head.
func (p Params) Bind(v Values) Reflex {
	r := p.r
	r.binding.Chain = r.binding.Chain.Append(v)

	return r
}
