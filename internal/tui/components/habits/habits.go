package habits

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habyt/internal/models"
)

type AddHabitMsg struct{}

type ToggleHabitMsg struct {
	ID int
}

type DeleteHabitMsg struct {
	ID int
}

type LogHabitMsg struct {
	ID int
}

type Item struct {
	Habit       models.Habit
	LoggedToday float64
}

func (i Item) Title() string {
	if !i.Habit.Active {
		return "[PAUSED] " + i.Habit.Name.String()
	}
	if i.LoggedToday > 0 && i.LoggedToday >= i.Habit.Quantum {
		return "✓ " + i.Habit.Name.String()
	}
	return "○ " + i.Habit.Name.String()
}

func (i Item) Description() string {
	goal := fmt.Sprintf("%s %s every %s", models.FormatQuantum(i.Habit.Quantum), i.Habit.Unit, i.Habit.Streak.Period())
	if !i.Habit.Active {
		return goal
	}
	return fmt.Sprintf("%s · %s logged today", goal, models.FormatQuantum(i.LoggedToday))
}

func (i Item) FilterValue() string { return i.Habit.Name.String() }

type KeyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Delete key.Binding
	Log    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "pause/resume"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Log: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "log goal"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

// New builds the list. logged maps habit ids to today's logged total.
func New(habits []models.Habit, logged map[int]float64, width, height int) Model {
	l := list.New(items(habits, logged), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Log, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Log, keys.Delete}
	}

	return Model{
		list: l,
		keys: keys,
	}
}

func items(habits []models.Habit, logged map[int]float64) []list.Item {
	out := make([]list.Item, len(habits))
	for i, h := range habits {
		out[i] = Item{Habit: h, LoggedToday: logged[h.ID]}
	}
	return out
}

func (m *Model) SetHabits(habits []models.Habit, logged map[int]float64) {
	m.list.SetItems(items(habits, logged))
}

// Selected returns the highlighted habit.
func (m Model) Selected() (models.Habit, bool) {
	i, ok := m.list.SelectedItem().(Item)
	if !ok {
		return models.Habit{}, false
	}
	return i.Habit, true
}

// Filtering reports whether the list is capturing keys for its filter.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if h, ok := m.Selected(); ok {
				return m, func() tea.Msg { return ToggleHabitMsg{ID: h.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if h, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteHabitMsg{ID: h.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Log):
			if h, ok := m.Selected(); ok && h.Active {
				return m, func() tea.Msg { return LogHabitMsg{ID: h.ID} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
