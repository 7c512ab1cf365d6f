package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habyt/internal/tui/components/habits"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.help.Width = size.Width
		// Leave room for the title, status and help lines
		h, v := docStyle.GetFrameSize()
		m.habitsModel.SetSize(size.Width-h, size.Height-v-4)
		return m, nil
	}

	switch m.state {
	case stateAddHabit:
		return m.updateAddHabit(msg)
	case stateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.habitsModel.Filtering() {
			switch {
			case key.Matches(msg, m.keys.Quit):
				m.quitting = true
				return m, tea.Quit
			case key.Matches(msg, m.keys.Help):
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			}
		}

	case habits.AddHabitMsg:
		m.habitForm = &HabitFormModel{}
		m.form = newHabitForm(m.habitForm)
		m.formError = ""
		m.state = stateAddHabit
		return m, m.form.Init()

	case habits.ToggleHabitMsg:
		if err := m.toggleHabit(msg.ID); err != nil {
			m.setError(err)
		}
		return m, nil

	case habits.DeleteHabitMsg:
		m.deleteID = msg.ID
		m.state = stateConfirmDelete
		return m, nil

	case habits.LogHabitMsg:
		if err := m.logGoal(msg.ID); err != nil {
			m.setError(err)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.habitsModel, cmd = m.habitsModel.Update(msg)
	return m, cmd
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = stateHabits
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.createHabit(); err != nil {
			// Stay in form state on error to allow retry
			m.setError(err)
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.state = stateHabits
	case huh.StateAborted:
		m.state = stateHabits
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			if err := m.deleteHabit(m.deleteID); err != nil {
				m.setError(err)
			}
			m.state = stateHabits
			m.deleteID = 0
		case "n", "N", "esc", "q":
			m.state = stateHabits
			m.deleteID = 0
		}
	}
	return m, nil
}
