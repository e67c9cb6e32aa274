package cmd

import "github.com/ardnew/reflex/reflex"

// Predefined errors.
var (
	ErrNoSource    = reflex.NewError("no script source (use --source)")
	ErrReadSource  = reflex.NewError("read script source")
	ErrNoInput     = reflex.NewError("no declaration or script given")
	ErrBinding     = reflex.NewError("invalid binding")
	ErrJSONMarshal = reflex.NewError("marshal JSON")
	ErrYAMLMarshal = reflex.NewError("marshal YAML")
	ErrWriteConfig = reflex.NewError("write configuration file")
	ErrFileExists  = reflex.NewError("file exists (use --force to overwrite)")
)
