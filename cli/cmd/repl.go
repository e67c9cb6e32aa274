package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/reflex/cli/cmd/repl"
	"github.com/ardnew/reflex/log"
)

// Repl starts an interactive session over the script definitions.
type Repl struct{}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	logger := log.With(slog.String("command", "repl"))

	s, err := loadScript(ctx, logger)
	if err != nil {
		return err
	}

	var cacheDir string
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	return repl.Run(ctx, s, cacheDir, logger)
}
