package repl

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/ardnew/reflex/log"
	"github.com/ardnew/reflex/reflex"
	"github.com/ardnew/reflex/script"
)

// commands lists the session commands with their help text, in help order.
var commands = []struct{ name, args, help string }{
	{"use", "NAME", "select a definition and clear its bindings"},
	{"bind", "k=v,...", "add a binding layer; later layers win"},
	{"pop", "", "remove the newest binding layer"},
	{"reset", "", "remove every binding layer"},
	{"params", "", "show the parameters of the selection"},
	{"layers", "", "show the binding layers, oldest first"},
	{"call", "", "call the selection with its bindings"},
	{"list", "", "list the definitions"},
	{"help", "", "show this help"},
	{"quit", "", "leave the session"},
}

// commandNames returns the names of every command.
func commandNames() []string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.name
	}

	return names
}

// Session holds the state of an interactive session: the selected
// definition and a stack of facades, one per bind. Each bind pushes a new
// facade derived from the top one, so pop restores the previous facade
// exactly as it was.
type Session struct {
	script *script.Script
	logger log.Logger

	fn    *script.Func
	stack []reflex.Reflex
}

// NewSession returns a Session over the definitions of s.
func NewSession(s *script.Script, logger log.Logger) *Session {
	return &Session{script: s, logger: logger}
}

// Current returns the facade on top of the stack.
func (s *Session) Current() (reflex.Reflex, bool) {
	if len(s.stack) == 0 {
		return reflex.Reflex{}, false
	}

	return s.stack[len(s.stack)-1], true
}

// Selected returns the name of the selected definition, or "".
func (s *Session) Selected() string {
	if s.fn == nil {
		return ""
	}

	return s.fn.Name
}

// Definitions returns the definition names of the script.
func (s *Session) Definitions() []string {
	if s.script == nil {
		return nil
	}

	return s.script.Names()
}

// Params returns the parameter names of the selection.
func (s *Session) Params() []string {
	r, ok := s.Current()
	if !ok {
		return nil
	}

	return r.Params().List()
}

// Exec runs one command line and returns its output. The quit command
// returns [ErrQuit].
func (s *Session) Exec(line string) (string, error) {
	name, args, _ := strings.Cut(strings.TrimSpace(line), " ")
	args = strings.TrimSpace(args)

	s.logger.Trace("repl command", slog.String("command", name), slog.String("args", args))

	switch name {
	case "":
		return "", nil

	case "use", "u":
		return s.use(args)

	case "bind", "b":
		return s.bind(args)

	case "pop":
		return s.pop()

	case "reset":
		return s.reset()

	case "params", "p":
		return s.params()

	case "layers":
		return s.layers()

	case "call", "c":
		return s.call()

	case "list", "l":
		return s.list()

	case "help", "h", "?":
		return helpText(), nil

	case "quit", "q", "exit":
		return "", ErrQuit
	}

	return "", ErrUnknownCommand.With(slog.String("command", name))
}

func (s *Session) use(name string) (string, error) {
	if s.script == nil {
		return "", ErrNoScript
	}

	if name == "" {
		return "", ErrUsage.Wrap(errors.New("use NAME"))
	}

	fn, err := s.script.Lookup(name)
	if err != nil {
		return "", err
	}

	s.fn = fn
	s.stack = []reflex.Reflex{fn.Reflex(reflex.WithLogger(s.logger))}

	return fn.Decl + " = " + fn.Body, nil
}

func (s *Session) bind(args string) (string, error) {
	r, ok := s.Current()
	if !ok {
		return "", ErrNoFunction
	}

	if args == "" {
		return "", ErrUsage.Wrap(errors.New("bind name=expr,..."))
	}

	layer, err := script.Bindings(args)
	if err != nil {
		return "", err
	}

	s.stack = append(s.stack, r.Params().Bind(layer))

	return s.depth(), nil
}

func (s *Session) pop() (string, error) {
	if len(s.stack) < 2 {
		return "", ErrNoLayer
	}

	s.stack = s.stack[:len(s.stack)-1]

	return s.depth(), nil
}

func (s *Session) reset() (string, error) {
	if len(s.stack) == 0 {
		return "", ErrNoFunction
	}

	s.stack = s.stack[:1]

	return s.depth(), nil
}

func (s *Session) params() (string, error) {
	r, ok := s.Current()
	if !ok {
		return "", ErrNoFunction
	}

	return fmt.Sprintf("%s (%d)", strings.Join(r.Params().List(), ", "), r.Params().Count()), nil
}

func (s *Session) layers() (string, error) {
	r, ok := s.Current()
	if !ok {
		return "", ErrNoFunction
	}

	var sb strings.Builder

	for i, layer := range r.Layers() {
		if i > 0 {
			sb.WriteByte('\n')
		}

		fmt.Fprintf(&sb, "%d: %s", i+1, formatLayer(layer))
	}

	if sb.Len() == 0 {
		return "no layers", nil
	}

	return sb.String(), nil
}

func (s *Session) call() (string, error) {
	r, ok := s.Current()
	if !ok {
		return "", ErrNoFunction
	}

	result, err := r.Fn()
	if err != nil {
		return "", err
	}

	return formatValue(result), nil
}

func (s *Session) list() (string, error) {
	if s.script == nil {
		return "", ErrNoScript
	}

	var sb strings.Builder

	for fn := range s.script.All() {
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}

		sb.WriteString(fn.Decl)
	}

	return sb.String(), nil
}

// depth describes the number of binding layers of the selection.
func (s *Session) depth() string {
	n := len(s.stack) - 1
	if n == 1 {
		return "1 layer"
	}

	return fmt.Sprintf("%d layers", n)
}

func helpText() string {
	var sb strings.Builder

	sb.WriteString("Commands:\n")

	for _, c := range commands {
		fmt.Fprintf(&sb, "  %-16s %s\n", strings.TrimSpace(c.name+" "+c.args), c.help)
	}

	sb.WriteString("\nTab completes commands, definitions and parameter names.\n")
	sb.WriteString("Up and Down browse the history. Ctrl+D leaves the session.")

	return sb.String()
}

// formatValue renders a result on one line.
func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"

	case string:
		return fmt.Sprintf("%q", v)
	}

	return fmt.Sprint(v)
}

// formatLayer renders a binding layer with its names sorted.
func formatLayer(layer reflex.Values) string {
	parts := make([]string, 0, len(layer))

	for _, name := range slices.Sorted(maps.Keys(layer)) {
		parts = append(parts, name+"="+formatValue(layer[name]))
	}

	return strings.Join(parts, ", ")
}
