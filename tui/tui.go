package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/doorshuffle/cli"
	"github.com/nathoo/doorshuffle/generator"
	"github.com/nathoo/doorshuffle/inspect"
	"github.com/nathoo/doorshuffle/monitor"
	"github.com/nathoo/doorshuffle/spoiler"
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed queries
	isSystem bool // true for meta-command output
}

// Model is the Bubble Tea model for the shuffle viewer. It runs the
// generator first, then turns into a query console over the result.
type Model struct {
	opts     generator.Options
	events   chan tea.Msg
	ctx      context.Context
	cancel   context.CancelFunc
	session  *inspect.Session
	progress []string // every monitor line of the run
	genErr   error

	spinner  spinner.Model
	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine

	width      int
	height     int
	ready      bool
	generating bool
	quitting   bool
	lastCmd    string
	spoilerDir string
}

// progressMsg is one monitor line from the running generator.
type progressMsg string

// generatedMsg ends generation.
type generatedMsg struct {
	result *generator.Result
	err    error
}

// queryOutputMsg carries query or meta-command output into the Update loop.
type queryOutputMsg struct {
	input    string
	lines    []string
	isSystem bool
}

// New creates a model that will generate with opts once started.
func New(opts generator.Options) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styleSpinner))

	ctx, cancel := context.WithCancel(context.Background())
	home, _ := os.UserHomeDir()
	return Model{
		opts:       opts,
		events:     make(chan tea.Msg, 64),
		ctx:        ctx,
		cancel:     cancel,
		spinner:    sp,
		input:      ti,
		history:    NewHistory(100),
		generating: true,
		spoilerDir: filepath.Join(home, ".doorshuffle", "spoilers"),
	}
}

// Run starts the Bubble Tea program and returns the finished generator result,
// or nil if the user quit before generation ended.
func Run(opts generator.Options) (*generator.Result, error) {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m := final.(Model)
	if m.genErr != nil {
		return nil, m.genErr
	}
	if m.session == nil {
		return nil, nil
	}
	return m.session.Result, nil
}

// Init starts generation and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.generate(), waitForEvent(m.events))
}

// generate runs the generator, forwarding every monitor line as a
// progressMsg. The result is sent on the same channel so it always arrives
// after the last progress line.
func (m Model) generate() tea.Cmd {
	ctx, opts, events := m.ctx, m.opts, m.events
	send := func(msg tea.Msg) {
		select {
		case events <- msg:
		case <-ctx.Done():
		}
	}
	inner := opts.Monitor
	opts.Monitor = monitor.Func(func(msg string) {
		if inner != nil {
			inner.Log(msg)
		}
		send(progressMsg(msg))
	})
	return func() tea.Msg {
		res, err := generator.Run(ctx, opts)
		send(generatedMsg{result: res, err: err})
		close(events)
		return nil
	}
}

// waitForEvent reads the next generator event.
func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

// Update handles messages (key presses, window resize, generator events).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case progressMsg:
		m.progress = append(m.progress, string(msg))
		m.rawLines = append(m.rawLines, rawLine{text: string(msg), kind: kindProgress})
		m.refreshViewport()
		return m, waitForEvent(m.events)

	case generatedMsg:
		return m.finishGeneration(msg)

	case spinner.TickMsg:
		if !m.generating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			m.quitting = true
			return m, tea.Quit

		case "enter":
			if m.generating {
				return m, nil
			}
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case queryOutputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// finishGeneration switches from the progress log to the query console.
func (m Model) finishGeneration(msg generatedMsg) (tea.Model, tea.Cmd) {
	m.generating = false
	if msg.err != nil {
		m.genErr = msg.err
		m = m.appendOutput(queryOutputMsg{
			lines:    []string{fmt.Sprintf("Generation failed: %v", msg.err), "Press ctrl+c to exit."},
			isSystem: true,
		})
		return m, nil
	}

	m.session = inspect.New(m.opts.World, msg.result)
	m.rawLines = nil
	lines := cli.ReportLines(m.session, m.opts.Settings)
	lines = append(lines, "", "Type help for queries, /help for commands.")
	m = m.appendOutput(queryOutputMsg{lines: lines})
	return m, nil
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m = m.appendOutput(queryOutputMsg{
				input: input, lines: []string{"Nothing to repeat."}, isSystem: true,
			})
			return m, nil
		}
		input = m.lastCmd
	} else {
		m.lastCmd = input
	}

	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(queryOutputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if m.session == nil {
		m = m.appendOutput(queryOutputMsg{input: input, lines: []string{"No shuffle to query."}, isSystem: true})
		return m, nil
	}
	result := m.session.Step(input)
	m = m.appendOutput(queryOutputMsg{input: input, lines: result.Output})
	return m, nil
}

// appendOutput adds lines to the log and refreshes the viewport.
func (m Model) appendOutput(msg queryOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	for _, line := range msg.lines {
		rl := rawLine{text: line, isSystem: msg.isSystem}
		if !msg.isSystem {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}

	// Blank line separator between queries.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, styleQueryInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len(word)

		if i == 0 {
			result.WriteString(word)
			lineLen = wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	bottom := m.input.View()
	if m.generating {
		bottom = m.spinner.View() + " " + styleProgress.Render(m.lastProgress())
	}
	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + bottom
}

func (m Model) lastProgress() string {
	if len(m.progress) == 0 {
		return "Generating..."
	}
	return m.progress[len(m.progress)-1]
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/save":
		return m.cmdSave(arg), false

	case "/report":
		if m.session == nil {
			return []string{"No shuffle to report."}, false
		}
		return cli.ReportLines(m.session, m.opts.Settings), false

	case "/log":
		if len(m.progress) == 0 {
			return []string{"No progress was logged."}, false
		}
		return append([]string(nil), m.progress...), false

	case "/help":
		return m.cmdHelp(), false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) cmdSave(name string) []string {
	if m.session == nil {
		return []string{"Save failed: no shuffle to save."}
	}
	if name == "" {
		name = fmt.Sprintf("seed-%d", m.session.Result.Seed)
	}

	if err := os.MkdirAll(m.spoilerDir, 0o755); err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	path := filepath.Join(m.spoilerDir, name+".json")
	if err := spoiler.Save(path, cli.SpoilerLog(m.session, m.opts.Settings)); err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	return []string{fmt.Sprintf("Spoiler saved to %s.", name)}
}

func (m *Model) cmdHelp() []string {
	lines := []string{
		"System:",
		"  /save [name]  — Write the spoiler log (default: seed-<seed>)",
		"  /report       — Show the summary again",
		"  /log          — Show the generator's progress lines",
		"  /quit         — Exit",
		"  /help         — Show this help",
		"",
	}
	if m.session != nil {
		lines = append(lines, m.session.Step("help").Output...)
	}
	return append(lines,
		"  again (g)           repeat the last query",
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for query history",
	)
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
