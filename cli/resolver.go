package cli

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolveYAML is a [kong.ConfigurationLoader] for YAML configuration files.
//
// Nested maps flatten into flag names joined by '-', and '_' in keys is read
// as '-', so these documents are equivalent:
//
//	log:
//	  level: debug
//	  time_layout: Kitchen
//
//	log-level: debug
//	log-time-layout: Kitchen
//
// Command-line flags override configuration values. An empty document
// resolves nothing.
func resolveYAML(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return config{}, nil
		}

		return nil, ErrReadConfig.Wrap(err)
	}

	c := config{}
	c.flatten("", doc)

	return c, nil
}

// config implements [kong.Resolver] over flattened flag names.
type config map[string]any

func (c config) flatten(prefix string, m map[string]any) {
	for key, value := range m {
		name := strings.ReplaceAll(key, "_", "-")
		if prefix != "" {
			name = prefix + "-" + name
		}

		if sub, ok := value.(map[string]any); ok {
			c.flatten(name, sub)

			continue
		}

		c[name] = flagValue(value)
	}
}

// flagValue converts numbers to strings, which kong parses per flag type.
func flagValue(v any) any {
	switch v := v.(type) {
	case int64:
		return strconv.FormatInt(v, 10)

	case uint64:
		return strconv.FormatUint(v, 10)

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)

	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = flagValue(e)
		}

		return out
	}

	return v
}

// Validate implements [kong.Resolver].
func (c config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	return nil, nil
}
