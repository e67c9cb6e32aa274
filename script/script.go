package script

import (
	"context"
	"io"
	"iter"
	"log/slog"
	"maps"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"

	"github.com/ardnew/reflex/reflex"
)

// Script is an ordered set of function definitions. A Script is immutable
// and safe for concurrent use.
type Script struct {
	funcs []*Func
	index map[string]*Func
}

// Func is one compiled definition.
type Func struct {
	// Name is the identifier before the parameter list.
	Name string
	// Decl is the declaration head, "name(params)", comments included.
	Decl string
	// Body is the expression after "=".
	Body string
	// Line is the 1-based line of the definition in its source.
	Line int
	// Value is a Go function taking one any per parameter and returning
	// (any, error).
	Value any

	params  []string
	program *vm.Program
	opts    options
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Parse compiles the definitions in src, one per line:
//
//	# comment
//	add(a, b) = a + b
//	greet(name /* who */, punct) = "Hello, " + name + punct
//
// Blank lines and lines starting with '#' are skipped. The head of a
// definition ends at the first ')' outside a block comment, and its
// parameter names are read from the head by [reflex.ParseParams]. The body
// is an expr-lang expression over the parameters and the builtins.
func Parse(ctx context.Context, src string, opts ...Option) (*Script, error) {
	return parse(ctx, src, makeOptions(opts...))
}

func parse(ctx context.Context, src string, o options) (*Script, error) {
	s := &Script{index: make(map[string]*Func)}
	env := makeEnv(o)

	line := 0

	for text := range strings.Lines(src) {
		line++

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text = strings.TrimSpace(text)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fn, err := parseFunc(text, line, env, o)
		if err != nil {
			return nil, err
		}

		if prev, ok := s.index[fn.Name]; ok {
			return nil, ErrDuplicate.With(
				slog.String("name", fn.Name),
				slog.Int("line", line),
				slog.Int("previous", prev.Line),
			)
		}

		s.funcs = append(s.funcs, fn)
		s.index[fn.Name] = fn

		o.logger.TraceContext(
			ctx,
			"compiled definition",
			slog.String("name", fn.Name),
			slog.Any("params", fn.params),
			slog.Int("line", line),
		)
	}

	return s, nil
}

func parseFunc(text string, line int, env map[string]any, o options) (*Func, error) {
	syntax := func(issue string) error {
		return ErrSyntax.With(slog.Int("line", line), slog.String("issue", issue))
	}

	end := headEnd(text)
	if end < 0 {
		return nil, syntax("missing ')'")
	}

	head := text[:end+1]
	open := strings.IndexByte(head, '(')

	if open < 0 {
		return nil, syntax("missing '('")
	}

	name := strings.TrimSpace(head[:open])
	if !identPattern.MatchString(name) {
		return nil, syntax("invalid name " + strconv.Quote(name))
	}

	rest := strings.TrimSpace(text[end+1:])

	body, ok := strings.CutPrefix(rest, "=")
	if !ok {
		return nil, syntax("missing '='")
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, syntax("empty body")
	}

	params := reflex.ParseParams(head)

	// Parameters are left out of the compile environment so their types
	// stay open until Call supplies values; a parameter shadows a builtin.
	scope := maps.Clone(env)
	for _, p := range params {
		delete(scope, p)
	}

	program, err := expr.Compile(body, expr.Env(scope), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, ErrCompile.Wrap(err).With(
			slog.String("name", name),
			slog.Int("line", line),
		)
	}

	fn := &Func{
		Name:    name,
		Decl:    head,
		Body:    body,
		Line:    line,
		params:  params,
		program: program,
		opts:    o,
	}
	fn.Value = fn.makeValue()

	return fn, nil
}

// headEnd returns the index of the first ')' of text that is not inside a
// block comment, or -1.
func headEnd(text string) int {
	for i := 0; i < len(text); i++ {
		switch {
		case strings.HasPrefix(text[i:], "/*"):
			n := strings.Index(text[i+2:], "*/")
			if n < 0 {
				return -1
			}

			i += n + 3

		case text[i] == ')':
			return i
		}
	}

	return -1
}

var (
	anyType   = reflect.TypeFor[any]()
	errorType = reflect.TypeFor[error]()
)

// makeValue builds the Go function that evaluates f.
func (f *Func) makeValue() any {
	in := make([]reflect.Type, len(f.params))
	for i := range in {
		in[i] = anyType
	}

	typ := reflect.FuncOf(in, []reflect.Type{anyType, errorType}, false)

	return reflect.MakeFunc(typ, func(args []reflect.Value) []reflect.Value {
		values := make([]any, len(args))
		for i, arg := range args {
			values[i] = arg.Interface()
		}

		result, err := f.Call(values...)

		out := reflect.New(anyType).Elem()
		if result != nil {
			out.Set(reflect.ValueOf(result))
		}

		fail := reflect.Zero(errorType)
		if err != nil {
			fail = reflect.ValueOf(err)
		}

		return []reflect.Value{out, fail}
	}).Interface()
}

// Params returns the parameter names of f.
func (f *Func) Params() []string {
	return append([]string{}, f.params...)
}

// Call evaluates f with args bound to its parameters by position. Missing
// arguments are nil; extra arguments are ignored.
func (f *Func) Call(args ...any) (any, error) {
	env := makeEnv(f.opts)

	for i, p := range f.params {
		if i < len(args) {
			env[p] = args[i]
		} else {
			env[p] = nil
		}
	}

	result, err := vm.Run(f.program, env)
	if err != nil {
		return nil, ErrEvaluate.Wrap(err).With(slog.String("name", f.Name))
	}

	f.opts.logger.Trace(
		"evaluated definition",
		slog.String("name", f.Name),
		slog.Any("result", result),
	)

	return result, nil
}

// Reflex wraps f for binding by name. Parameter names come from the
// declaration head of f.
func (f *Func) Reflex(opts ...reflex.Option) reflex.Reflex {
	return reflex.New(f.Value, nil, append([]reflex.Option{
		reflex.WithSource(f.Decl),
		reflex.WithLogger(f.opts.logger),
	}, opts...)...)
}

// Lookup returns the definition called name.
func (s *Script) Lookup(name string) (*Func, error) {
	if fn, ok := s.index[name]; ok {
		return fn, nil
	}

	return nil, ErrNotFound.With(slog.String("name", name))
}

// Len returns the number of definitions in s.
func (s *Script) Len() int { return len(s.funcs) }

// All returns an iterator over the definitions of s in source order.
func (s *Script) All() iter.Seq[*Func] {
	return func(yield func(*Func) bool) {
		for _, fn := range s.funcs {
			if !yield(fn) {
				return
			}
		}
	}
}

// Names returns the definition names in source order.
func (s *Script) Names() []string {
	names := make([]string, len(s.funcs))
	for i, fn := range s.funcs {
		names[i] = fn.Name
	}

	return names
}

// cache holds one entry per distinct source parsed with default options.
var cache sync.Map

type cacheEntry struct {
	once   sync.Once
	script *Script
	err    error
}

// ParseReader reads a script from r and parses it as [Parse] does. Scripts
// parsed without [WithEnviron] or [WithBuiltins] are cached by content, so
// reading the same source again returns the same *Script, which keeps the
// logger of the call that parsed it.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Script, error) {
	o := makeOptions(opts...)

	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).With(slog.String("source", "reader"))
	}

	o.logger.TraceContext(ctx, "read input", slog.Int("source_bytes", len(data)))

	if !o.cacheable() {
		o.logger.TraceContext(ctx, "cache bypass")

		return parse(ctx, string(data), o)
	}

	key := strconv.FormatUint(xxh3.Hash(data), 36)
	value, hit := cache.LoadOrStore(key, new(cacheEntry))
	entry := value.(*cacheEntry)

	o.logger.TraceContext(
		ctx,
		"cache lookup",
		slog.String("source_hash", key),
		slog.Bool("cache_hit", hit),
	)

	entry.once.Do(func() {
		entry.script, entry.err = parse(ctx, string(data), o)
	})

	if entry.err != nil {
		// A failed or cancelled parse is not kept.
		cache.CompareAndDelete(key, entry)
	}

	return entry.script, entry.err
}

// ClearCache removes every cached script.
func ClearCache() {
	cache.Clear()
}
