package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/reflex/log"
	"github.com/ardnew/reflex/script"
)

const prompt = "➜ "

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	selectionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

// model is the Bubble Tea model for the REPL.
type model struct {
	ctx        context.Context
	input      textinput.Model
	session    *Session
	logger     log.Logger
	history    *History
	historyIdx int
	matches    fuzzy.Matches // ranked completions of the current word
	wordStart  int           // byte offset of current word start
	wordEnd    int           // byte offset of current word end
	suggIdx    int           // selected candidate index
	tabActive  bool          // whether user is tab-cycling
	preTab     string        // input text before tab-cycling began
	width      int
	quitting   bool
}

// Run starts an interactive session over the definitions of s. The command
// history persists in cacheDir.
func Run(
	ctx context.Context,
	s *script.Script,
	cacheDir string,
	logger log.Logger,
) error {
	if s == nil {
		return ErrNoScript
	}

	logger.TraceContext(
		ctx,
		"repl start",
		slog.String("cache_dir", cacheDir),
		slog.Int("definitions", s.Len()),
	)

	history := NewHistory(cacheDir)
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	m := newModel(ctx, NewSession(s, logger), history, logger)

	_, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	session *Session,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctx:        ctx,
		input:      ti,
		session:    session,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(prompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.historyIdx < m.history.Len():
		b.WriteString(hintStyle.Render(fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))

	case strings.TrimSpace(m.input.Value()) == "":
		b.WriteString(m.hint())
	}

	b.WriteString("\n")

	return b.String()
}

// hint describes the selection, or how to make one.
func (m model) hint() string {
	name := m.session.Selected()
	if name == "" {
		return hintStyle.Render("Type 'use NAME' to select a definition, or 'help'")
	}

	params := strings.Join(m.session.Params(), ", ")

	return selectionStyle.Render(name+"("+params+")") +
		hintStyle.Render(" "+m.session.depth())
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(
		m.ctx,
		"repl keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		m.refresh()

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabActive && len(m.matches) > 0 {
			m.tabActive = false
			m.refresh()

			return m, nil
		}

		return m.executeInput()

	case tea.KeyTab:
		return m.cycle(1)

	case tea.KeyShiftTab:
		return m.cycle(-1)

	case tea.KeyUp:
		return m.browse(-1)

	case tea.KeyDown:
		return m.browse(1)

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTab)
			m.input.CursorEnd()
			m.refresh()
		}

		return m, nil

	case tea.KeyRunes, tea.KeySpace:
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}
	default:
		m.tabActive = false
	}

	var cmd tea.Cmd

	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refresh()

	return m, cmd
}

// cycle moves the tab selection by step and completes the current word
// with the selected candidate. A single candidate is completed outright.
func (m model) cycle(step int) (model, tea.Cmd) {
	n := len(m.matches)
	if n == 0 {
		return m, nil
	}

	if n == 1 {
		m.replaceWord(m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m, nil
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + step + n) % n
	} else {
		m.tabActive = true
		m.preTab = m.input.Value()
		m.suggIdx = 0

		if step < 0 {
			m.suggIdx = n - 1
		}
	}

	m.replaceWord(m.matches[m.suggIdx].Str)

	return m, nil
}

// browse moves through the history by step, where -1 is older. Moving past
// the newest entry clears the input.
func (m model) browse(step int) (model, tea.Cmd) {
	idx := m.historyIdx + step
	if idx < 0 || idx > m.history.Len() {
		return m, nil
	}

	m.historyIdx = idx
	m.tabActive = false

	line, err := m.history.Entry(idx)
	if err != nil {
		line = ""
	}

	m.input.SetValue(line)
	m.input.CursorEnd()
	m.matches = nil

	return m, nil
}

// replaceWord replaces the current word in the input with replacement.
func (m *model) replaceWord(replacement string) {
	input := m.input.Value()

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(m.wordStart + len(replacement))
	m.wordEnd = m.wordStart + len(replacement)
}

// refresh recomputes the completions of the word at the cursor.
func (m *model) refresh() {
	m.matches, m.wordStart, m.wordEnd = complete(
		m.session, m.input.Value(), m.input.Position(),
	)

	if !m.tabActive {
		m.suggIdx = -1
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Add(input); err != nil {
		m.logger.WarnContext(m.ctx, "could not save history", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	echo := tea.Println(promptStyle.Render(prompt) + inputStyle.Render(input))

	out, err := m.session.Exec(input)

	switch {
	case errors.Is(err, ErrQuit):
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case err != nil:
		m.logger.TraceContext(m.ctx, "repl error", slog.Any("error", err))

		return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))

	case out == "":
		return m, echo
	}

	return m, tea.Sequence(echo, tea.Println(resultStyle.Render(out)))
}
