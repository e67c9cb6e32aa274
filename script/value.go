package script

import (
	"log/slog"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/reflex/reflex"
)

// Value evaluates the expression src against the builtins.
func Value(src string, opts ...Option) (any, error) {
	o := makeOptions(opts...)
	env := makeEnv(o)

	program, err := expr.Compile(src, expr.Env(env))
	if err != nil {
		return nil, ErrCompile.Wrap(err).With(slog.String("source", src))
	}

	result, err := vm.Run(program, env)
	if err != nil {
		return nil, ErrEvaluate.Wrap(err).With(slog.String("source", src))
	}

	return result, nil
}

// Bindings parses a list of assignments such as `a=1, b="x,y", c=[1,2]`
// into one binding layer. Each value is an expression evaluated by
// [Value]. Commas inside quotes or brackets do not separate assignments.
func Bindings(src string, opts ...Option) (reflex.Values, error) {
	values := reflex.Values{}

	for _, part := range splitList(src) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, text, ok := strings.Cut(part, "=")
		name = strings.TrimSpace(name)

		if !ok || !identPattern.MatchString(name) {
			return nil, ErrSyntax.With(
				slog.String("assignment", part),
				slog.String("issue", "want name=expression"),
			)
		}

		value, err := Value(strings.TrimSpace(text), opts...)
		if err != nil {
			return nil, err
		}

		values[name] = value
	}

	return values, nil
}

// Unresolved compiles src into a fallback for parameters that no binding
// layer supplies. The expression sees the builtins, the parameter name as
// name, and every bound value merged as bound.
func Unresolved(src string, opts ...Option) (reflex.Unresolved, error) {
	o := makeOptions(opts...)

	scope := makeEnv(o)
	scope["name"] = ""
	scope["bound"] = map[string]any{}

	program, err := expr.Compile(src, expr.Env(scope))
	if err != nil {
		return nil, ErrCompile.Wrap(err).With(slog.String("source", src))
	}

	return func(_ any, name string, layers []reflex.Values) (any, error) {
		env := makeEnv(o)
		env["name"] = name
		env["bound"] = map[string]any(reflex.Merge(nil, layers...))

		result, err := vm.Run(program, env)
		if err != nil {
			return nil, ErrEvaluate.Wrap(err).With(
				slog.String("source", src),
				slog.String("name", name),
			)
		}

		return result, nil
	}, nil
}

// splitList splits src at commas outside quotes and brackets.
func splitList(src string) []string {
	var (
		parts []string
		depth int
		quote rune
		start int
		skip  bool
	)

	for i, r := range src {
		switch {
		case skip:
			skip = false

		case quote != 0:
			switch r {
			case '\\':
				skip = true
			case quote:
				quote = 0
			}

		case r == '"' || r == '\'' || r == '`':
			quote = r

		case r == '(' || r == '[' || r == '{':
			depth++

		case r == ')' || r == ']' || r == '}':
			depth--

		case r == ',' && depth == 0:
			parts = append(parts, src[start:i])
			start = i + 1
		}
	}

	return append(parts, src[start:])
}
