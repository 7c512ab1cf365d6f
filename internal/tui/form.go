package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habyt/internal/models"
)

// HabitFormModel holds the raw values of the add-habit form
type HabitFormModel struct {
	Name    string
	Quantum string
	Unit    string
	Streak  models.Streak
}

func newHabitForm(fm *HabitFormModel) *huh.Form {
	streaks := make([]huh.Option[models.Streak], len(models.Streaks))
	for i, s := range models.Streaks {
		streaks[i] = huh.NewOption(s.Label(), s)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					_, err := models.NewHabitName(strings.TrimSpace(s))
					return err
				}),
			huh.NewInput().
				Title("Goal").
				Placeholder("750").
				Value(&fm.Quantum).
				Validate(func(s string) error {
					_, err := parseQuantum(s)
					return err
				}),
			huh.NewInput().
				Title("Unit").
				Placeholder("words").
				Value(&fm.Unit).
				Validate(func(s string) error {
					_, err := models.NewHabitUnit(strings.TrimSpace(s))
					return err
				}),
			huh.NewSelect[models.Streak]().
				Title("Streak").
				Options(streaks...).
				Value(&fm.Streak),
		),
	).WithTheme(huh.ThemeDracula())
}

func parseQuantum(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("goal cannot be empty")
	}
	q, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("goal must be a number")
	}
	return q, nil
}

// draft converts the submitted form into a habit draft.
func (fm *HabitFormModel) draft() (models.HabitDraft, error) {
	q, err := parseQuantum(fm.Quantum)
	if err != nil {
		return models.HabitDraft{}, err
	}
	d, err := models.NewHabitDraft(strings.TrimSpace(fm.Name), q, strings.TrimSpace(fm.Unit))
	if err != nil {
		return models.HabitDraft{}, err
	}
	if fm.Streak != "" {
		streak := fm.Streak
		d.Streak = &streak
	}
	return d, nil
}
