package reflex

import (
	"fmt"
	"log/slog"
	"math"
	"reflect"

	"github.com/ardnew/reflex/log"
)

// Thunk runs a bound call. Every invocation resolves its arguments again.
type Thunk func() (any, error)

// Unresolved supplies a value for the parameter name of fn when no layer
// provides one. layers holds the binding layers, oldest first; the maps are
// the caller's own and must not be modified.
type Unresolved func(fn any, name string, layers []Values) (any, error)

// Binding holds everything [Resolve] needs besides the callable itself.
type Binding struct {
	// Context, when non-nil, is passed as the first argument of the call,
	// the way a method expression such as (*T).Method takes its receiver.
	Context any
	// Params, when non-nil, replaces the parameter names extracted from the
	// callable.
	Params []string
	// Chain holds the named-value layers; later layers win.
	Chain *Chain
	// OnUnresolved is consulted once per parameter absent from every layer.
	OnUnresolved Unresolved
	// Source is declaration text parsed for names when Params is nil.
	Source string
	// Logger receives trace records of each resolution.
	Logger log.Logger
}

// Resolve returns a Thunk that calls fn with arguments drawn by name from
// the layers of b. Nothing is computed until the Thunk runs, and nothing is
// kept between runs: names are extracted, layers merged and each parameter
// resolved on every invocation.
//
// A parameter found in no layer is passed to b.OnUnresolved when set, or
// receives the zero value of its type. Values are converted to the
// parameter types of fn; see [Reflex.Fn] for the rules.
func Resolve(fn any, b Binding) Thunk {
	return func() (any, error) {
		return invoke(fn, b)
	}
}

func invoke(fn any, b Binding) (any, error) {
	if err := CheckFunc(fn); err != nil {
		return nil, err
	}

	names := paramNames(fn, b)
	layers := b.Chain.Layers()
	merged := Merge(Values{}, layers...)

	args := make([]any, len(names))

	for i, name := range names {
		if value, ok := merged[name]; ok {
			args[i] = value

			continue
		}

		if b.OnUnresolved == nil {
			b.Logger.Trace("parameter unresolved", slog.String("name", name))

			continue
		}

		value, err := b.OnUnresolved(fn, name, layers)
		if err != nil {
			return nil, ErrUnresolved.Wrap(err).With(slog.String("name", name))
		}

		args[i] = value
	}

	b.Logger.Trace(
		"resolve",
		slog.Any("params", names),
		slog.Int("layers", len(layers)),
	)

	return call(reflect.ValueOf(fn), b.Context, args)
}

// call invokes fn with args converted to its parameter types.
func call(fn reflect.Value, context any, args []any) (any, error) {
	typ := fn.Type()
	num := typ.NumIn()

	if context != nil && num > 0 {
		args = append([]any{context}, args...)
	}

	fixed := num
	if typ.IsVariadic() {
		fixed--
	}

	in := make([]reflect.Value, 0, max(num, len(args)))

	for i := range fixed {
		var arg any
		if i < len(args) {
			arg = args[i]
		}

		v, err := convert(arg, typ.In(i))
		if err != nil {
			return nil, err.With(slog.Int("index", i))
		}

		in = append(in, v)
	}

	if !typ.IsVariadic() {
		return results(typ, fn.Call(in))
	}

	var tail []any
	if fixed < len(args) {
		tail = args[fixed:]
	}

	slice := typ.In(fixed)

	if len(tail) == 1 {
		switch {
		case tail[0] == nil:
			return results(typ, fn.Call(in))

		case reflect.TypeOf(tail[0]).AssignableTo(slice):
			return results(typ, fn.CallSlice(append(in, reflect.ValueOf(tail[0]))))
		}
	}

	for i, arg := range tail {
		v, err := convert(arg, slice.Elem())
		if err != nil {
			return nil, err.With(slog.Int("index", fixed+i))
		}

		in = append(in, v)
	}

	return results(typ, fn.Call(in))
}

var errorType = reflect.TypeFor[error]()

// results maps the outputs of a call onto a single value and an error.
func results(typ reflect.Type, out []reflect.Value) (any, error) {
	var err error

	if n := len(out); n > 0 && typ.Out(n-1) == errorType {
		if e := out[n-1].Interface(); e != nil {
			err = e.(error)
		}

		out = out[:n-1]
	}

	switch len(out) {
	case 0:
		return nil, err

	case 1:
		return out[0].Interface(), err
	}

	values := make([]any, len(out))
	for i, v := range out {
		values[i] = v.Interface()
	}

	return values, err
}

// convert returns arg as a value of type typ. nil becomes the zero value.
// Numeric values convert only when no information is lost, and numbers
// never become strings.
func convert(arg any, typ reflect.Type) (reflect.Value, *Error) {
	if arg == nil {
		return reflect.Zero(typ), nil
	}

	v := reflect.ValueOf(arg)

	if v.Type().AssignableTo(typ) {
		return v, nil
	}

	mismatch := ErrArgumentType.With(
		slog.String("have", v.Type().String()),
		slog.String("want", typ.String()),
	)

	switch {
	case isNumber(v.Kind()) && isNumber(typ.Kind()):
		c := v.Convert(typ)
		if back := c.Convert(v.Type()); !back.Equal(v) && !(isNaN(v) && isNaN(back)) {
			return reflect.Value{}, mismatch.With(
				slog.String("value", fmt.Sprint(arg)),
			)
		}

		return c, nil

	case isNumber(v.Kind()) && typ.Kind() == reflect.String:
		return reflect.Value{}, mismatch

	case v.CanConvert(typ):
		return v.Convert(typ), nil
	}

	return reflect.Value{}, mismatch
}

func isNaN(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return math.IsNaN(v.Float())
	}

	return false
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64:
		return true
	}

	return false
}
