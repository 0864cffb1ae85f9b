package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/pluqqy/pluqqy-code/pkg/workflow"
)

// option is one button of a dialog.
type option struct {
	key         string
	label       string
	choice      workflow.Choice
	destructive bool
}

// ConfirmationModel renders the visible workflow prompt and turns key
// presses into answers.
type ConfirmationModel struct {
	prompt  workflow.Prompt
	active  bool
	input   textinput.Model
	width   int
	options []option
}

// NewConfirmation creates an idle dialog.
func NewConfirmation() *ConfirmationModel {
	ti := textinput.New()
	ti.Placeholder = "path/to/file"
	ti.CharLimit = 0
	ti.Width = 50
	return &ConfirmationModel{input: ti}
}

// Sync shows prompt, or hides the dialog when ok is false. Showing the same
// request again keeps whatever the user already typed.
func (m *ConfirmationModel) Sync(prompt workflow.Prompt, ok bool) {
	if !ok {
		m.active = false
		m.input.Blur()
		return
	}
	if m.active && m.prompt.Seq() == prompt.Seq() {
		return
	}

	m.active = true
	m.prompt = prompt
	m.options = optionsFor(prompt.Kind)

	if prompt.Kind == workflow.KindSaveAs {
		m.input.SetValue(prompt.Path)
		m.input.CursorEnd()
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// Active returns whether a prompt is shown.
func (m *ConfirmationModel) Active() bool {
	return m.active
}

// SetWidth sets the width available for the dialog.
func (m *ConfirmationModel) SetWidth(width int) {
	m.width = width
}

// Input returns the current text of the path field.
func (m *ConfirmationModel) Input() string {
	return m.input.Value()
}

func optionsFor(kind workflow.Kind) []option {
	switch kind {
	case workflow.KindUnsavedChanges:
		return []option{
			{key: "s", label: "Save", choice: workflow.ChoiceSave},
			{key: "d", label: "Don't save", choice: workflow.ChoiceDiscard, destructive: true},
			{key: "esc", label: "Cancel", choice: workflow.ChoiceCancel},
		}
	case workflow.KindDeleteConfirm:
		return []option{
			{key: "y", label: "Delete", choice: workflow.ChoiceConfirm, destructive: true},
			{key: "n", label: "Cancel", choice: workflow.ChoiceCancel},
		}
	case workflow.KindQuitConfirm:
		return []option{
			{key: "y", label: "Quit", choice: workflow.ChoiceConfirm, destructive: true},
			{key: "n", label: "Cancel", choice: workflow.ChoiceCancel},
		}
	case workflow.KindSaveAs:
		return []option{
			{key: "enter", label: "Save", choice: workflow.ChoiceConfirm},
			{key: "esc", label: "Cancel", choice: workflow.ChoiceCancel},
		}
	}
	return nil
}

// Update handles a key press. It returns the answer once the user decided.
func (m *ConfirmationModel) Update(msg tea.KeyMsg) (workflow.Answer, bool, tea.Cmd) {
	if !m.active {
		return workflow.Answer{}, false, nil
	}

	if m.prompt.Kind == workflow.KindSaveAs {
		switch msg.String() {
		case "enter":
			return workflow.Answer{Choice: workflow.ChoiceConfirm, Path: m.input.Value()}, true, nil
		case "esc":
			return workflow.Cancel(), true, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return workflow.Answer{}, false, cmd
	}

	switch msg.String() {
	case "esc", "c":
		return workflow.Cancel(), true, nil
	case "enter":
		// Enter picks the first safe option.
		for _, o := range m.options {
			if !o.destructive {
				return workflow.Answer{Choice: o.choice}, true, nil
			}
		}
	}

	pressed := strings.ToLower(msg.String())
	for _, o := range m.options {
		if o.key == pressed {
			return workflow.Answer{Choice: o.choice}, true, nil
		}
	}
	return workflow.Answer{}, false, nil
}

// View renders the dialog.
func (m *ConfirmationModel) View() string {
	if !m.active {
		return ""
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorActive)).
		Padding(1, 2)

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorWarning))

	warningStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning))

	width := 60
	if m.width > 0 && m.width-4 < width {
		width = m.width - 4
	}
	contentWidth := width - 6
	if contentWidth < 10 {
		contentWidth = 10
	}
	center := lipgloss.NewStyle().Width(contentWidth).Align(lipgloss.Center)

	var b strings.Builder
	if m.prompt.Title != "" {
		b.WriteString(center.Render(headerStyle.Render(wordwrap.String(m.prompt.Title, contentWidth))))
		b.WriteString("\n\n")
	}
	if m.prompt.Message != "" {
		b.WriteString(center.Render(wordwrap.String(m.prompt.Message, contentWidth)))
		b.WriteString("\n")
	}
	if m.prompt.Warning != "" {
		b.WriteString("\n")
		b.WriteString(center.Render(warningStyle.Render(wordwrap.String(m.prompt.Warning, contentWidth))))
		b.WriteString("\n")
	}
	if m.prompt.Kind == workflow.KindSaveAs {
		m.input.Width = contentWidth - 4
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center.Render(m.renderOptions()))

	return borderStyle.Width(width).Render(b.String())
}

func (m *ConfirmationModel) renderOptions() string {
	dangerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDanger)).Bold(true)
	safeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Bold(true)

	parts := make([]string, 0, len(m.options))
	for _, o := range m.options {
		style := safeStyle
		if o.destructive {
			style = dangerStyle
		}
		parts = append(parts, fmt.Sprintf("%s %s", style.Render("["+o.key+"]"), o.label))
	}
	return strings.Join(parts, "   ")
}
