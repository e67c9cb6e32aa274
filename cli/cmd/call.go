package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/reflex/log"
	"github.com/ardnew/reflex/reflex"
	"github.com/ardnew/reflex/script"
)

// Call invokes a script definition with arguments bound by name.
type Call struct {
	Format     Format   `default:"text" enum:"text,json,yaml" help:"Output format (${enum})." short:"o"`
	Bind       []string `help:"Binding layer 'name=expr,...'; later layers win." sep:"none" short:"b"`
	Params     []string `help:"Parameter names to use instead of the declaration." sep:","`
	Unresolved string   `help:"Expression supplying unbound parameters; sees name and bound." short:"u"`

	Name string `arg:"" help:"Definition to call."`
}

// Run executes the call command.
func (c *Call) Run(ctx context.Context) error {
	logger := log.With(
		slog.String("command", "call"),
		slog.String("name", c.Name),
	)

	s, err := loadScript(ctx, logger)
	if err != nil {
		return err
	}

	fn, err := s.Lookup(c.Name)
	if err != nil {
		return err
	}

	r, err := c.facade(fn, logger)
	if err != nil {
		return err
	}

	result, err := r.Fn()
	if err != nil {
		return reflex.WrapError(err).With(slog.String("name", c.Name))
	}

	logger.DebugContext(
		ctx,
		"called definition",
		slog.Int("layers", len(r.Layers())),
		slog.Any("params", r.Params().List()),
	)

	return c.Format.write(stdout(ctx), result)
}

// facade builds the bound Reflex for fn from the command flags.
func (c *Call) facade(fn *script.Func, logger log.Logger) (reflex.Reflex, error) {
	opts := []reflex.Option{reflex.WithLogger(logger)}

	if len(c.Params) > 0 {
		opts = append(opts, reflex.WithParams(c.Params...))
	}

	if c.Unresolved != "" {
		fallback, err := script.Unresolved(c.Unresolved)
		if err != nil {
			return reflex.Reflex{}, err
		}

		opts = append(opts, reflex.WithUnresolved(fallback))
	}

	r := fn.Reflex(opts...)

	for _, bind := range c.Bind {
		layer, err := script.Bindings(bind)
		if err != nil {
			return reflex.Reflex{}, ErrBinding.Wrap(err).With(slog.String("bind", bind))
		}

		r = r.Params().Bind(layer)
	}

	return r, nil
}
