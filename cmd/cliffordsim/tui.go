package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	cliffordtableaus "github.com/LeoUschi232/ADQC-CliffordTableaus"
)

const historyLines = 16

// Lipgloss styles for the TUI session.
var (
	tuiTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64"))

	tuiFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Padding(0, 1)

	tuiOutcomeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#73daca"))

	tuiErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f7768e"))

	tuiHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))
)

// tuiModel drives the full-screen interactive session. Until the qreg
// line arrives only register initialization is accepted; afterwards every
// line goes through the same gate-line path as batch execution.
type tuiModel struct {
	sim     cliffordtableaus.Simulator
	input   textinput.Model
	history []string
	result  []byte
	status  string
	done    bool
}

func newTUIModel(sim cliffordtableaus.Simulator) tuiModel {
	ti := textinput.New()
	ti.Placeholder = "qreg q[n];"
	ti.Focus()
	ti.CharLimit = 80
	ti.Width = 40
	return tuiModel{
		sim:   sim,
		input: ti,
	}
}

func (m tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.done = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m tuiModel) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if line == "" {
		return m, nil
	}

	if m.result == nil {
		n, err := cliffordtableaus.ParseQReg(line)
		if err != nil {
			m.status = "expected qreg q[n];"
			return m, nil
		}
		if err := m.sim.InitializeTableau(n); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.result = cliffordtableaus.NewMeasurementString(n)
		m.history = append(m.history, line)
		m.input.Placeholder = "h q[0];"
		m.status = ""
		return m, nil
	}

	switch line {
	case "exit", "quit":
		m.done = true
		return m, tea.Quit
	case "finish", "measure all":
		if err := cliffordtableaus.MeasureRemaining(m.sim, m.result); err != nil {
			m.status = err.Error()
			m.done = true
			return m, tea.Quit
		}
		m.history = append(m.history, line)
		m.done = true
		return m, tea.Quit
	}

	if err := cliffordtableaus.ApplyGateLine(line, m.sim, m.result); err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.history = append(m.history, line)
	m.status = ""
	return m, nil
}

func (m tuiModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(tuiTitleStyle.Render("cliffordsim"))
	b.WriteString("\n\n")

	history := m.history
	if len(history) > historyLines {
		history = history[len(history)-historyLines:]
	}
	transcript := strings.Join(history, "\n")
	if transcript == "" {
		transcript = tuiHintStyle.Render("initialize the register: qreg q[n];")
	}
	b.WriteString(tuiFrameStyle.Render(transcript))
	b.WriteString("\n\n")

	if m.result != nil {
		b.WriteString(fmt.Sprintf("measurements: %s\n\n", tuiOutcomeStyle.Render(string(m.result))))
	}
	if m.status != "" {
		b.WriteString(tuiErrorStyle.Render(m.status))
		b.WriteString("\n\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(tuiHintStyle.Render("enter: apply · finish: measure all · esc: quit"))
	b.WriteString("\n")
	return b.String()
}
