// Package tui is an interactive habit browser. Every mutation is saved
// through the storage provider before the list is refreshed.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habyt/internal/backup"
	"github.com/julianstephens/habyt/internal/logger"
	"github.com/julianstephens/habyt/internal/models"
	"github.com/julianstephens/habyt/internal/storage"
	"github.com/julianstephens/habyt/internal/store"
	"github.com/julianstephens/habyt/internal/tui/components/habits"
)

type sessionState int

const (
	stateHabits sessionState = iota
	stateAddHabit
	stateConfirmDelete
)

type Model struct {
	provider    storage.Provider
	habitStore  *store.HabitStore
	logStore    *store.HabitLogStore
	state       sessionState
	keys        KeyMap
	help        help.Model
	habitsModel habits.Model
	form        *huh.Form
	habitForm   *HabitFormModel
	deleteID    int
	status      string
	formError   string
	quitting    bool
	width       int
	height      int
}

// NewModel loads both stores from provider.
func NewModel(provider storage.Provider) (Model, error) {
	hs, err := provider.Load()
	if err != nil {
		return Model{}, err
	}
	ls, err := provider.LoadLog()
	if err != nil {
		return Model{}, err
	}

	m := Model{
		provider:   provider,
		habitStore: hs,
		logStore:   ls,
		state:      stateHabits,
		keys:       DefaultKeyMap(),
		help:       help.New(),
	}
	m.habitsModel = habits.New(hs.List(), m.loggedToday(), 0, 0)
	return m, nil
}

// loggedToday sums today's logged quantities per habit.
func (m Model) loggedToday() map[int]float64 {
	today := models.Today()
	totals := make(map[int]float64)
	for _, e := range m.logStore.List() {
		if e.Date.Equal(today) {
			totals[e.HabitID] += e.Quantum
		}
	}
	return totals
}

func (m *Model) refresh() {
	m.habitsModel.SetHabits(m.habitStore.List(), m.loggedToday())
}

func (m *Model) setError(err error) {
	logger.Error("TUI operation failed", "error", err)
	m.status = ""
	m.formError = err.Error()
}

func (m *Model) setStatus(format string, args ...interface{}) {
	m.formError = ""
	m.status = fmt.Sprintf(format, args...)
}

func (m Model) Init() tea.Cmd {
	return m.habitsModel.Init()
}

// createHabit stores the habit described by the submitted form.
func (m *Model) createHabit() error {
	draft, err := m.habitForm.draft()
	if err != nil {
		return err
	}
	id, err := m.habitStore.Create(draft)
	if err != nil {
		return err
	}
	if err := m.provider.Save(m.habitStore); err != nil {
		m.habitStore.Delete(id)
		return err
	}
	m.refresh()
	h, _ := m.habitStore.Get(id)
	m.setStatus("Added %s (%d)", h.Name, id)
	return nil
}

func (m *Model) toggleHabit(id int) error {
	if !m.habitStore.Modify(id, (*models.Habit).Toggle) {
		return nil
	}
	if err := m.provider.Save(m.habitStore); err != nil {
		m.habitStore.Modify(id, (*models.Habit).Toggle)
		return err
	}
	m.refresh()
	h, _ := m.habitStore.Get(id)
	if h.Active {
		m.setStatus("Resumed %s", h.Name)
	} else {
		m.setStatus("Paused %s", h.Name)
	}
	return nil
}

func (m *Model) deleteHabit(id int) error {
	if _, ok := m.habitStore.Get(id); !ok {
		return nil
	}
	backup.NewManager(m.provider.GetConfigPath(), m.provider.Files()).AutoBackup()

	deleted, _ := m.habitStore.Delete(id)
	if err := m.provider.Save(m.habitStore); err != nil {
		m.habitStore.Data[id] = deleted.Habit
		return err
	}
	m.refresh()
	m.setStatus("Habyt is not tracking %s anymore", deleted.Name)
	return nil
}

// logGoal records the habit's goal quantity for today.
func (m *Model) logGoal(id int) error {
	h, ok := m.habitStore.Get(id)
	if !ok {
		return nil
	}
	entry, err := models.NewHabitLog(id, h.Quantum, "")
	if err != nil {
		return err
	}
	entryID := m.logStore.Add(entry)
	if err := m.provider.SaveLog(m.logStore); err != nil {
		delete(m.logStore.Data, entryID)
		return err
	}
	m.refresh()
	m.setStatus("Logged %s %s of %s", models.FormatQuantum(h.Quantum), h.Unit, h.Name)
	return nil
}
