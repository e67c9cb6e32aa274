package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/reflex/log"
	"github.com/ardnew/reflex/reflex"
)

// Params prints the parameter names of declarations, or of every script
// definition when no declaration is given.
type Params struct {
	Format Format `default:"text" enum:"text,json,yaml" help:"Output format (${enum})." short:"o"`

	Decl []string `arg:"" help:"Declaration text, such as 'func add(a, b)'." optional:""`
}

// Run executes the params command.
func (p *Params) Run(ctx context.Context) error {
	logger := log.With(slog.String("command", "params"))

	reports, err := p.reports(ctx, logger)
	if err != nil {
		return err
	}

	logger.DebugContext(ctx, "extracted parameters", slog.Int("count", len(reports)))

	return p.Format.write(stdout(ctx), reports)
}

func (p *Params) reports(ctx context.Context, logger log.Logger) ([]Report, error) {
	if len(p.Decl) > 0 {
		reports := make([]Report, len(p.Decl))

		for i, decl := range p.Decl {
			names := reflex.ParseParams(decl)
			reports[i] = Report{Decl: decl, Params: names, Count: len(names)}
		}

		return reports, nil
	}

	if sourcesFrom(ctx).IsZero() {
		return nil, ErrNoInput
	}

	s, err := loadScript(ctx, logger)
	if err != nil {
		return nil, err
	}

	reports := make([]Report, 0, s.Len())

	for fn := range s.All() {
		r := fn.Reflex()

		reports = append(reports, Report{
			Name:   fn.Name,
			Decl:   fn.Decl,
			Params: r.Params().List(),
			Count:  r.Params().Count(),
		})
	}

	return reports, nil
}
