package script

// Builtins available to every expression. The base environment is built
// once per process and cloned on each use, so callers may modify the map
// they receive.

import (
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/ardnew/mung"
)

var (
	builtinOnce sync.Once
	builtinEnv  map[string]any
)

func makeBuiltins() map[string]any {
	builtinOnce.Do(func() {
		builtinEnv = map[string]any{
			"mung": map[string]any{
				"prefix":   mungPrefix,
				"prefixif": mungPrefixIf,
			},
		}
	})

	return maps.Clone(builtinEnv)
}

// BuiltinNames returns the names every expression can refer to, sorted.
// Members of builtin namespaces are qualified, as in "mung.prefix".
func BuiltinNames() []string {
	names := []string{"env"}

	for name, v := range makeBuiltins() {
		members, ok := v.(map[string]any)
		if !ok {
			names = append(names, name)

			continue
		}

		for member := range members {
			names = append(names, name+"."+member)
		}
	}

	slices.Sort(names)

	return names
}

// makeEnv returns the expression environment for o: builtins, then the
// extras from [WithBuiltins], then env, the process environment.
func makeEnv(o options) map[string]any {
	env := makeBuiltins()
	maps.Copy(env, o.builtins)
	env["env"] = processEnv(o.environ)

	return env
}

// processEnv converts "KEY=VALUE" entries to a map. A nil list reads the
// environment of the process.
func processEnv(environ []string) map[string]string {
	if environ == nil {
		environ = os.Environ()
	}

	env := make(map[string]string, len(environ))

	for _, kv := range environ {
		if key, value, ok := strings.Cut(kv, "="); ok && key != "" {
			env[key] = value
		}
	}

	return env
}

// mungPrefix prepends prefix to the path list key, removing duplicates.
func mungPrefix(key string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(key),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	).String()
}

// mungPrefixIf is mungPrefix keeping only the items accepted by predicate.
func mungPrefixIf(
	key string,
	predicate func(string) bool,
	prefix ...string,
) string {
	return mung.Make(
		mung.WithSubjectItems(key),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(predicate),
	).String()
}
