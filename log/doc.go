// Package log provides the leveled, structured logger used throughout
// reflex. It is a thin layer over [log/slog].
//
// A [Logger] is created with [Make] and configured with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"))
//
// Options may be layered on an existing logger with [Logger.Wrap]; the
// receiver is never modified. Attributes shared by every record are added
// with [Logger.With].
//
// The zero value of [Logger] discards everything. Library packages accept a
// Logger through an option and trace through it unconditionally, so callers
// that never provide one pay only for a nil check.
//
// # Levels
//
// [LevelTrace] sits below [LevelDebug] and is used for per-call tracing:
// parameter extraction, layer merging, and argument resolution.
//
// # Package-level logging
//
// The functions [Info], [Debug], [ErrorContext], etc. write through a process
// default logger that writes to [os.Stderr]. [Config] replaces it with a
// wrapped copy.
//
// # Pretty output
//
// With [WithPretty] enabled, the text and JSON formats are colorized with
// lipgloss styles. Colors are dropped automatically when the output is not a
// terminal.
package log
