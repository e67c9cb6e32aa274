package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/reflex/script"
)

// isWordBoundary returns true if the rune separates completion words.
// Dots are kept inside words since builtin names are qualified (mung.prefix).
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', ',', '=':
		return true
	}

	return false
}

// wordBounds returns the word at the cursor position and its byte
// boundaries within input. The word is empty when the cursor sits on a
// boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// candidates returns the completions valid for a word starting at
// wordStart: commands for the first word, definition names after use,
// parameter names after bind, and builtins for a binding expression.
func candidates(s *Session, input string, wordStart int) []string {
	head := strings.Fields(input[:wordStart])
	if len(head) == 0 {
		return commandNames()
	}

	switch head[0] {
	case "use", "u":
		if len(head) == 1 {
			return s.Definitions()
		}

	case "bind", "b":
		prev, _ := utf8.DecodeLastRuneInString(input[:wordStart])
		if prev == '=' {
			return script.BuiltinNames()
		}

		return s.Params()
	}

	return nil
}

// complete returns the fuzzy matches for the word at cursor, ranked
// best-first, with the word boundaries. An empty word has no matches.
func complete(s *Session, input string, cursor int) (matches fuzzy.Matches, start, end int) {
	word, start, end := wordBounds(input, cursor)
	if word == "" {
		return nil, start, end
	}

	list := candidates(s, input, start)
	if len(list) == 0 {
		return nil, start, end
	}

	return fuzzy.Find(word, list), start, end
}

// renderCandidateBar builds the single-line completion bar, ellipsized to
// fit width. The selected candidate (when tabbing) uses the selected style.
func renderCandidateBar(matches fuzzy.Matches, selected int, tabbing bool, width int) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabbing && i == selected)

		w := lipgloss.Width(rendered)
		if i > 0 {
			w += sepWidth
		}

		if i > 0 && used+w+ellipsisWidth > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += w
	}

	return b.String()
}

// renderCandidate renders a candidate with its matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, i := range match.MatchedIndexes {
		matched[i] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}
