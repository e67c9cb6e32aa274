// Package cli contains the command line interface for reflex.
//
// # Usage
//
//	reflex params 'func add(a, b)'
//	reflex -s defs.rx call add --bind 'a=1,b=2'
//	reflex -s defs.rx repl
//
// Scripts hold one definition per line, such as:
//
//	add(a, b) = a + b
//
// # Configuration
//
// Flag defaults are read, lowest precedence first, from config.json and
// config.yaml in the configuration directory, then from the command line.
// Nested YAML maps flatten into flag names joined by '-', and '_' may stand
// for '-':
//
//	log:
//	  level: debug
//	  pretty: false
//
// The init command writes the current log and profiling flags to
// config.yaml.
//
// # Logging Options
//
//   - --log-level: minimum log level (trace, debug, info, warn, error)
//   - --log-format: log output format (text, json)
//   - --log-time-layout: timestamp layout (RFC3339, Kitchen, ...)
//   - --log-caller: include caller information
//   - --log-pretty: colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o reflex .
//
//   - --pprof-mode: profile kind (allocs, block, clock, cpu, goroutine, heap,
//     mem, mutex, thread, trace)
//   - --pprof-dir: profile output directory, under the cache directory by
//     default
package cli
