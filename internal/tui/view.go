package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case stateAddHabit:
		content = m.form.View()
	case stateConfirmDelete:
		content = m.viewConfirmDelete()
	default:
		content = docStyle.Render(m.habitsModel.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("habyt"),
		content,
		m.viewStatus(),
		m.help.View(m.keys),
	)
}

func (m Model) viewStatus() string {
	if m.formError != "" {
		return warningStyle.Render("⚠ " + m.formError)
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return ""
}

func (m Model) viewConfirmDelete() string {
	name := fmt.Sprintf("habit %d", m.deleteID)
	if h, ok := m.habitStore.Get(m.deleteID); ok {
		name = h.Name.String()
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Are you sure you want to delete %s?", name)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
