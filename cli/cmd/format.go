package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"
)

// Format selects how command results are written.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatEnum is the kong enum of supported formats.
const FormatEnum = "text,json,yaml"

// write encodes v to w in format f. Text output is styled when w is a
// terminal.
func (f Format) write(w io.Writer, v any) error {
	switch f {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		_, err = fmt.Fprintln(w, string(data))

		return err

	case FormatYAML:
		data, err := yaml.MarshalWithOptions(v, yaml.Indent(2))
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

		_, err = w.Write(data)

		return err
	}

	_, err := fmt.Fprint(w, renderText(lipgloss.NewRenderer(w), v))

	return err
}

// renderText formats v for people.
func renderText(r *lipgloss.Renderer, v any) string {
	key := r.NewStyle().Bold(true)
	value := r.NewStyle().Foreground(lipgloss.Color("2"))

	var sb strings.Builder

	switch v := v.(type) {
	case []Report:
		for i, rep := range v {
			if i > 0 {
				sb.WriteByte('\n')
			}

			sb.WriteString(renderText(r, rep))
		}

	case Report:
		if v.Name != "" {
			sb.WriteString(key.Render(v.Name))
			sb.WriteByte('\n')
		}

		if v.Decl != "" {
			fmt.Fprintf(&sb, "  %s %s\n", key.Render("decl: "), v.Decl)
		}

		fmt.Fprintf(&sb, "  %s %s\n", key.Render("params:"), value.Render(strings.Join(v.Params, ", ")))
		fmt.Fprintf(&sb, "  %s %s\n", key.Render("count: "), value.Render(fmt.Sprint(v.Count)))

	default:
		sb.WriteString(value.Render(FormatValue(v)))
		sb.WriteByte('\n')
	}

	return sb.String()
}

// FormatValue renders a result value on one line: strings are quoted,
// nil is "nil" and everything else uses its default format.
func FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"

	case string:
		return fmt.Sprintf("%q", v)

	case error:
		return v.Error()
	}

	return fmt.Sprint(v)
}

// Report describes the parameters of one declaration or definition.
type Report struct {
	Name   string   `json:"name,omitempty" yaml:"name,omitempty"`
	Decl   string   `json:"decl"           yaml:"decl"`
	Params []string `json:"params"         yaml:"params"`
	Count  int      `json:"count"          yaml:"count"`
}
