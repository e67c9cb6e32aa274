// Package script defines functions whose parameter names exist only as
// text. Each definition pairs a declaration head with an expr-lang body:
//
//	area(width, height) = width * height
//
// A compiled [Func] carries a Go function value with one input per
// parameter, and [Func.Reflex] wraps it so that arguments are bound by the
// names in the head.
//
// Expressions may use env, the process environment, and the PATH-list
// helpers mung.prefix and mung.prefixif.
package script
