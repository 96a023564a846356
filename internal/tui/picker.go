// Package tui provides the interactive picker the fix command uses to
// choose which dangling references to remove.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dotcommander/mplint/internal/validate"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

// pickerModel holds the state for the reference picker.
type pickerModel struct {
	errors    []validate.ValidationError
	selected  []bool
	cursor    int
	confirmed bool
	quitting  bool
}

func newPickerModel(errors []validate.ValidationError) pickerModel {
	selected := make([]bool, len(errors))
	for i := range selected {
		selected[i] = true // default to removing everything that is dangling
	}
	return pickerModel{errors: errors, selected: selected}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.errors)-1 {
			m.cursor++
		}
	case " ", "x":
		m.selected[m.cursor] = !m.selected[m.cursor]
	case "a":
		all := true
		for _, s := range m.selected {
			if !s {
				all = false
				break
			}
		}
		for i := range m.selected {
			m.selected[i] = !all
		}
	case "enter":
		m.confirmed = true
		return m, tea.Quit
	}
	return m, nil
}

func (m pickerModel) View() string {
	if m.quitting || m.confirmed {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Select references to remove") + "\n\n")

	for i, e := range m.errors {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		check := "[ ]"
		line := fmt.Sprintf("%s %s/%s: %s", check, e.Plugin, e.Field, e.Path)
		if m.selected[i] {
			line = selectedStyle.Render(fmt.Sprintf("[x] %s/%s: %s", e.Plugin, e.Field, e.Path))
		}
		b.WriteString(cursor + line + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("space: toggle  a: all/none  enter: confirm  q: cancel") + "\n")
	return b.String()
}

// PickReferences runs the picker over the dangling references and returns
// the subset the user chose to remove. Returns nil, false when the user
// cancelled.
func PickReferences(errors []validate.ValidationError) ([]validate.ValidationError, bool, error) {
	if len(errors) == 0 {
		return nil, true, nil
	}

	program := tea.NewProgram(newPickerModel(errors))
	final, err := program.Run()
	if err != nil {
		return nil, false, fmt.Errorf("picker failed: %w", err)
	}

	m, ok := final.(pickerModel)
	if !ok || !m.confirmed {
		return nil, false, nil
	}

	var chosen []validate.ValidationError
	for i, e := range m.errors {
		if m.selected[i] {
			chosen = append(chosen, e)
		}
	}
	return chosen, true, nil
}
