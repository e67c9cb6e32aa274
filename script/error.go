package script

import "github.com/ardnew/reflex/reflex"

// Predefined errors.
var (
	ErrSyntax    = reflex.NewError("syntax error")
	ErrCompile   = reflex.NewError("expression compilation failed")
	ErrEvaluate  = reflex.NewError("expression evaluation failed")
	ErrDuplicate = reflex.NewError("duplicate definition")
	ErrNotFound  = reflex.NewError("definition not found")
	ErrReadInput = reflex.NewError("failed to read input")
)
