package repl

import "github.com/ardnew/reflex/reflex"

// Predefined errors.
var (
	ErrNoScript       = reflex.NewError("no script loaded")
	ErrNoFunction     = reflex.NewError("no definition selected (use 'use NAME')")
	ErrUnknownCommand = reflex.NewError("unknown command (try 'help')")
	ErrUsage          = reflex.NewError("usage")
	ErrNoLayer        = reflex.NewError("no binding layer to remove")
	ErrOutOfBounds    = reflex.NewError("index out of range")

	// ErrQuit is returned by [Session.Exec] for the quit command.
	ErrQuit = reflex.NewError("quit")
)
