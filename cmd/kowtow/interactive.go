package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/kowtow/internal/console"
)

const maxEntries = 200

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	commandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type entry struct {
	err     error
	command string
	output  string
}

type interactiveModel struct {
	session *console.Session
	input   textinput.Model
	name    string
	entries []entry
	history []string
	histIdx int
	height  int
}

func newInteractiveModel(sess *console.Session, name string) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "get PATH, set PATH VALUE, diff, help"
	ti.Prompt = "> "
	ti.Width = 60
	ti.Focus()
	if name == "" {
		name = "(empty object)"
	}
	return &interactiveModel{
		session: sess,
		input:   ti,
		name:    name,
		height:  24,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line == "" {
				return m, nil
			}
			if line == "quit" || line == "exit" {
				return m, tea.Quit
			}
			out, err := m.session.Exec(line)
			m.entries = append(m.entries, entry{command: line, output: out, err: err})
			if len(m.entries) > maxEntries {
				m.entries = m.entries[len(m.entries)-maxEntries:]
			}
			m.history = append(m.history, line)
			m.histIdx = len(m.history)
			return m, nil

		case "up":
			if m.histIdx > 0 {
				m.histIdx--
				m.input.SetValue(m.history[m.histIdx])
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if m.histIdx < len(m.history)-1 {
				m.histIdx++
				m.input.SetValue(m.history[m.histIdx])
				m.input.CursorEnd()
			} else {
				m.histIdx = len(m.history)
				m.input.SetValue("")
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.input.Width = msg.Width - 4
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("kowtow"))
	b.WriteString(" ")
	b.WriteString(m.name)
	b.WriteString(" ")
	b.WriteString(helpStyle.Render(fmt.Sprintf("(%d shadows)", m.session.Space().Len())))
	b.WriteString("\n\n")

	var lines []string
	for _, e := range m.entries {
		lines = append(lines, commandStyle.Render("> "+e.command))
		switch {
		case e.err != nil:
			lines = append(lines, errorStyle.Render(fmt.Sprintf("Error: %v", e.err)))
		case e.output != "":
			for _, l := range strings.Split(e.output, "\n") {
				lines = append(lines, resultStyle.Render(l))
			}
		}
	}
	if room := m.height - 6; room > 0 && len(lines) > room {
		lines = lines[len(lines)-room:]
	}
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter run • ↑/↓ history • help commands • esc quit"))

	return b.String()
}

func runInteractive(sess *console.Session, name string) error {
	p := tea.NewProgram(newInteractiveModel(sess, name), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
