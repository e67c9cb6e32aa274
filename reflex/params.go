package reflex

import (
	"reflect"
	"regexp"
	"strings"
)

var (
	commentPattern = regexp.MustCompile(`(?m)((//.*$)|(/\*[\s\S]*?\*/))`)
	namePattern    = regexp.MustCompile(`[^\s,]+`)
)

// ParseParams returns the parameter names declared in decl, the text of a
// function declaration such as "func add(a, b)" or "add(a, b /* int */)".
//
// Comments are removed first. The names are the runs of characters other
// than whitespace and commas found strictly between the first '(' and the
// first ')'. ParseParams never fails: text without such a pair, or with an
// empty pair, yields an empty non-nil slice.
//
// Defaults, destructuring and rest syntax are not understood; "b = 2" is
// three names and "...rest" is one.
func ParseParams(decl string) []string {
	text := commentPattern.ReplaceAllString(decl, "")

	open := strings.IndexByte(text, '(')
	end := strings.IndexByte(text, ')')

	if open < 0 || end < open {
		return []string{}
	}

	names := namePattern.FindAllString(text[open+1:end], -1)
	if names == nil {
		return []string{}
	}

	return names
}

// paramNames resolves the parameter list used for fn under b: an explicit
// list wins, then declaration text, then the Go source of fn.
//
// With a context, an extracted list naming every input of fn also names the
// parameter the context fills, as in func(s *T, a, b int); that first name
// is dropped. A method expression renders without its receiver, so its list
// is one short and kept whole.
func paramNames(fn any, b Binding) []string {
	if b.Params != nil {
		return b.Params
	}

	var names []string

	if b.Source != "" {
		names = ParseParams(b.Source)
	} else if decl, ok := Declaration(fn); ok {
		names = ParseParams(decl)
	} else {
		return []string{}
	}

	if b.Context != nil && len(names) > 0 {
		if typ := reflect.TypeOf(fn); typ != nil && typ.Kind() == reflect.Func &&
			typ.NumIn() == len(names) {
			return names[1:]
		}
	}

	return names
}
