package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles of one pretty handler. Styles are bound to a
// renderer for the handler's own writer so that a non-terminal writer gets
// plain text.
type palette struct {
	key, str, num, yes, no, dur, time, null lipgloss.Style
	level                                   map[slog.Level]lipgloss.Style
}

func makePalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		key:  fg("8"),
		str:  fg("6"),
		num:  fg("3"),
		yes:  fg("2"),
		no:   fg("1"),
		dur:  fg("5"),
		time: fg("4"),
		null: fg("8"),
		level: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): fg("4"),
			slog.LevelDebug:        fg("4"),
			slog.LevelInfo:         fg("2").Bold(true),
			slog.LevelWarn:         fg("3").Bold(true),
			slog.LevelError:        fg("1").Bold(true),
		},
	}
}

func (p palette) levelStyle(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.level[slog.LevelError]
	case l >= slog.LevelWarn:
		return p.level[slog.LevelWarn]
	case l >= slog.LevelInfo:
		return p.level[slog.LevelInfo]
	case l >= slog.LevelDebug:
		return p.level[slog.LevelDebug]
	default:
		return p.level[slog.Level(LevelTrace)]
	}
}

// prettyHandler writes colorized records either as key=value pairs on one
// line or as an indented JSON-like object.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	pal    palette
	attrs  []slog.Attr
	groups []string
	json   bool
}

func newPrettyHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	json bool,
) *prettyHandler {
	return &prettyHandler{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
		pal:  makePalette(w),
		json: json,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], h.qualify(attrs)...)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(h.groups[:len(h.groups):len(h.groups)], name)

	return &c
}

// qualify prefixes attribute keys with the open groups.
func (h *prettyHandler) qualify(attrs []slog.Attr) []slog.Attr {
	if len(h.groups) == 0 {
		return attrs
	}

	prefix := strings.Join(h.groups, ".") + "."
	out := make([]slog.Attr, len(attrs))

	for i, a := range attrs {
		out[i] = slog.Attr{Key: prefix + a.Key, Value: a.Value}
	}

	return out
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]slog.Attr, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() {
		fields = append(fields, slog.Time(slog.TimeKey, r.Time))
	}

	fields = append(fields, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource && r.PC != 0 {
		if src := r.Source(); src != nil {
			fields = append(fields,
				slog.String(slog.SourceKey, src.File+":"+strconv.Itoa(src.Line)))
		}
	}

	fields = append(fields, slog.String(slog.MessageKey, r.Message))
	fields = append(fields, h.attrs...)

	var own []slog.Attr

	r.Attrs(func(a slog.Attr) bool {
		own = append(own, a)

		return true
	})

	fields = append(fields, h.qualify(own)...)

	buf := new(bytes.Buffer)

	if h.json {
		buf.WriteString("{\n")
	}

	n := 0

	for _, a := range fields {
		if h.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
			// slog.Level must reach the value writer intact for coloring.
			if a.Key != slog.LevelKey {
				a = h.opts.ReplaceAttr(nil, a)
			}
		}

		if a.Key == "" {
			continue
		}

		h.writeField(buf, n, a)
		n++
	}

	if h.json {
		buf.WriteString("\n}")
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) writeField(buf *bytes.Buffer, n int, a slog.Attr) {
	if h.json {
		if n > 0 {
			buf.WriteString(",\n")
		}

		buf.WriteString("  ")
		buf.WriteString(h.pal.key.Render(a.Key))
		buf.WriteString(": ")
	} else {
		if n > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.pal.key.Render(a.Key))
		buf.WriteByte('=')
	}

	h.writeValue(buf, a.Value.Resolve())
}

func (h *prettyHandler) writeValue(buf *bytes.Buffer, v slog.Value) {
	p := h.pal

	switch v.Kind() {
	case slog.KindString:
		buf.WriteString(p.str.Render(v.String()))

	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		buf.WriteString(p.num.Render(v.String()))

	case slog.KindBool:
		if v.Bool() {
			buf.WriteString(p.yes.Render("true"))
		} else {
			buf.WriteString(p.no.Render("false"))
		}

	case slog.KindDuration:
		buf.WriteString(p.dur.Render(v.Duration().String()))

	case slog.KindTime:
		buf.WriteString(p.time.Render(v.Time().Format(DefaultTimeLayout)))

	case slog.KindGroup:
		parts := make([]string, 0, len(v.Group()))

		for _, a := range v.Group() {
			var inner bytes.Buffer

			h.writeValue(&inner, a.Value.Resolve())
			parts = append(parts, p.key.Render(a.Key)+"="+inner.String())
		}

		buf.WriteString("{" + strings.Join(parts, " ") + "}")

	default:
		switch x := v.Any().(type) {
		case slog.Level:
			buf.WriteString(p.levelStyle(x).Render(strings.ToUpper(Level(x).String())))
		case nil:
			buf.WriteString(p.null.Render("null"))
		default:
			buf.WriteString(p.str.Render(fmt.Sprint(x)))
		}
	}
}
