package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/reflex/log"
	"github.com/ardnew/reflex/profile"
)

// Init writes a configuration file holding the current flag values.
type Init struct {
	Force bool `help:"Overwrite an existing configuration file." short:"f"`
}

// ignoredFlags are flag name prefixes never written to the configuration.
var ignoredFlags = []string{"help", "version", "source", profile.Tag}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) error {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ErrWriteConfig.With(slog.String("issue", "no command context"))
	}

	path := ktx.Model.Vars()[ConfigIdentifier]
	if path == "" {
		return ErrWriteConfig.With(slog.String("issue", "no configuration path"))
	}

	if _, err := os.Stat(path); err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", path), slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	data, err := yaml.Marshal(configValues(ktx))
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return ErrWriteConfig.With(slog.String("file", path)).Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file", slog.String("path", path))

	return nil
}

// configValues returns the set application flags of ktx, in declaration
// order.
func configValues(ktx *kong.Context) yaml.MapSlice {
	var values yaml.MapSlice

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(ignoredFlags, func(p string) bool {
			return strings.HasPrefix(flag.Name, p)
		}) {
			continue
		}

		if v := configValue(ktx.FlagValue(flag)); v != nil {
			values = append(values, yaml.MapItem{Key: flag.Name, Value: v})
		}
	}

	return values
}

// configValue converts a flag value to its YAML form, or nil if unset.
func configValue(v any) any {
	switch v := v.(type) {
	case nil:
		return nil

	case bool, int, int64, uint, uint64, float64:
		return v

	case string:
		if v == "" {
			return nil
		}

		return v

	case []string:
		if len(v) == 0 {
			return nil
		}

		return v

	case fmt.Stringer:
		return configValue(v.String())
	}

	return configValue(fmt.Sprint(v))
}
