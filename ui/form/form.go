// Package form provides the terminal registration form.
package form

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"registration-backend/client"
	"registration-backend/entity"
)

// Field identifies which element is focused.
type Field int

const (
	FieldFullName Field = iota
	FieldEmail
	FieldContactNumber
	FieldYear
	FieldBranch
	FieldSubmit
)

const fieldCount = 6

const (
	confirmedTitle  = "You have successfully registered!"
	confirmedBody   = "Thank you for registering. See you at the event!"
	failedPrefix    = "Registration failed: "
	unreachableText = "An error occurred. Please try again."
)

// submitResultMsg carries the outcome of an asynchronous submission.
type submitResultMsg struct {
	err error
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA")).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Bold(true)
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171"))
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#34D399"))
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)

// Model holds the terminal form state. Field values live in the shared
// client.Form; the model only owns focus, widgets and the last error.
type Model struct {
	form       *client.Form
	inputs     []textinput.Model
	yearIdx    int // -1 until a year is picked
	branchIdx  int // -1 until a branch is picked
	focused    Field
	submitting bool
	errMsg     string
	width      int
}

func New(f *client.Form) Model {
	placeholders := []string{"Enter your full name", "your.email@example.com", "+91 98765 43210"}
	inputs := make([]textinput.Model, len(placeholders))
	for i, p := range placeholders {
		ti := textinput.New()
		ti.Placeholder = p
		ti.Prompt = ""
		ti.Width = 40
		inputs[i] = ti
	}
	inputs[FieldFullName].Focus()

	return Model{
		form:      f,
		inputs:    inputs,
		yearIdx:   -1,
		branchIdx: -1,
		focused:   FieldFullName,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case submitResultMsg:
		m.submitting = false
		m.errMsg = failureText(msg.err)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if m.form.View() == client.Confirmed {
			switch msg.String() {
			case "q", "esc", "enter":
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m, tea.Quit

		case "tab", "down":
			return m.cycleField(false), nil

		case "shift+tab", "up":
			return m.cycleField(true), nil

		case "left", "right":
			if m.focused == FieldYear || m.focused == FieldBranch {
				return m.cycleOption(msg.String() == "left"), nil
			}

		case "enter":
			if m.focused == FieldSubmit {
				return m.submit()
			}
			return m.cycleField(false), nil
		}
	}

	if m.focused <= FieldContactNumber {
		var cmd tea.Cmd
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
		_ = m.form.Set(client.Fields[m.focused], m.inputs[m.focused].Value())
		return m, cmd
	}

	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.submitting = true
	m.errMsg = ""

	f := m.form
	return m, func() tea.Msg {
		return submitResultMsg{err: f.Submit(context.Background())}
	}
}

func failureText(err error) string {
	if err == nil {
		return ""
	}

	var se *client.SubmitError
	switch {
	case errors.As(err, &se):
		if se.Detail != "" {
			return failedPrefix + se.Detail
		}
		return failedPrefix + se.Message
	case errors.Is(err, client.ErrInFlight), errors.Is(err, client.ErrAlreadyConfirmed):
		return ""
	default:
		return unreachableText
	}
}

// cycleField moves focus to the next/previous field.
func (m Model) cycleField(reverse bool) Model {
	if reverse {
		m.focused = (m.focused + fieldCount - 1) % fieldCount
	} else {
		m.focused = (m.focused + 1) % fieldCount
	}

	for i := range m.inputs {
		if Field(i) == m.focused {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}

	return m
}

func (m Model) cycleOption(reverse bool) Model {
	step := 1
	if reverse {
		step = -1
	}

	switch m.focused {
	case FieldYear:
		m.yearIdx = wrap(m.yearIdx, step, len(entity.Years))
		_ = m.form.Set(client.FieldCurrentYear, string(entity.Years[m.yearIdx]))
	case FieldBranch:
		m.branchIdx = wrap(m.branchIdx, step, len(entity.Branches))
		_ = m.form.Set(client.FieldBranch, string(entity.Branches[m.branchIdx]))
	}

	return m
}

// wrap steps through [0, n). From the unselected -1 state, right picks the
// first option and left the last.
func wrap(idx, step, n int) int {
	if idx < 0 {
		if step < 0 {
			return n - 1
		}
		return 0
	}
	return (idx + step + n) % n
}

// View renders the form, or the confirmation once registered.
func (m Model) View() string {
	var b strings.Builder

	if m.form.View() == client.Confirmed {
		b.WriteString(successStyle.Render(confirmedTitle))
		b.WriteString("\n\n")
		b.WriteString(confirmedBody)
		b.WriteString("\n\n")
		b.WriteString(subtleStyle.Render("press q to exit"))
		return boxStyle.Render(b.String())
	}

	b.WriteString(titleStyle.Render("Event Registration"))
	b.WriteString("\n")

	labels := []string{"Full Name *", "Email Address *", "Contact Number *"}
	for i, l := range labels {
		b.WriteString(m.label(Field(i), l))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n\n")
	}

	b.WriteString(m.label(FieldYear, "Current Year *"))
	b.WriteString("\n")
	b.WriteString(m.option(FieldYear, m.form.Get(client.FieldCurrentYear), "Select year"))
	b.WriteString("\n\n")

	b.WriteString(m.label(FieldBranch, "Branch *"))
	b.WriteString("\n")
	b.WriteString(m.option(FieldBranch, m.form.Get(client.FieldBranch), "Select branch"))
	b.WriteString("\n\n")

	button := "[ Register for the Event ]"
	if m.submitting {
		button = "[ Registering... ]"
	}
	if m.focused == FieldSubmit {
		button = focusedStyle.Render(button)
	}
	b.WriteString(button)

	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(subtleStyle.Render("tab/shift+tab move • ←/→ choose • enter submit • esc quit"))

	box := boxStyle
	if m.width > 0 && m.width < 60 {
		box = box.Padding(0, 1)
	}
	return box.Render(b.String())
}

func (m Model) label(f Field, text string) string {
	if m.focused == f {
		return focusedStyle.Render("› " + text)
	}
	return labelStyle.Render("  " + text)
}

func (m Model) option(f Field, value, placeholder string) string {
	if value == "" {
		value = subtleStyle.Render(placeholder)
	}
	if m.focused == f {
		return "‹ " + value + " ›"
	}
	return "  " + value
}
