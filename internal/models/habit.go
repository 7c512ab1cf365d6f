package models

import (
	"fmt"
	"math"
	"strconv"

	"github.com/julianstephens/habyt/internal/constants"
)

// Habit represents a tracked recurring goal
type Habit struct {
	ID         int        `yaml:"id"`
	Name       HabitName  `yaml:"name"`
	Quantum    float64    `yaml:"quantum"` // daily goal, never negative
	Unit       HabitUnit  `yaml:"unit"`
	Notes      string     `yaml:"notes"`
	Streak     Streak     `yaml:"streak"`
	Difficulty Difficulty `yaml:"difficulty"`
	Kind       Kind       `yaml:"kind"`
	Active     bool       `yaml:"active"`
}

// DeletedHabit is a habit that has been removed from its store and handed
// back to the caller.
type DeletedHabit struct {
	Habit
}

// NewHabit builds an active habit, applying the defaults for every optional
// field. A negative or NaN quantum is stored as 0 and an empty unit becomes
// the default unit.
func NewHabit(id int, name HabitName, quantum float64, unit HabitUnit, streak *Streak, difficulty *Difficulty, kind *Kind, notes *string) (Habit, error) {
	h := Habit{
		ID:         id,
		Name:       name,
		Quantum:    sanitizeQuantum(quantum),
		Unit:       unit,
		Streak:     StreakDaily,
		Difficulty: DifficultyEasy,
		Kind:       KindPositive,
		Active:     true,
	}
	if unit.IsEmpty() {
		h.Unit = HabitUnit{value: constants.DefaultUnit}
	}
	if streak != nil {
		h.Streak = *streak
	}
	if difficulty != nil {
		h.Difficulty = *difficulty
	}
	if kind != nil {
		h.Kind = *kind
	}
	if notes != nil {
		if err := ValidateNotes(*notes); err != nil {
			return Habit{}, err
		}
		h.Notes = *notes
	}
	return h, nil
}

// ValidateNotes enforces the note length limit shared by habits and log entries.
func ValidateNotes(notes string) error {
	if len(notes) > constants.MaxNoteLength {
		return newValidationError("notes", "notes cannot be longer than %d characters", constants.MaxNoteLength)
	}
	return nil
}

func sanitizeQuantum(q float64) float64 {
	if math.IsNaN(q) || math.Signbit(q) {
		return 0
	}
	return q
}

func (h Habit) IsEasy() bool {
	return h.Difficulty == DifficultyEasy
}

func (h Habit) IsPositive() bool {
	return h.Kind == KindPositive
}

func (h Habit) IsNegative() bool {
	return !h.IsPositive()
}

func (h *Habit) Activate() {
	h.Active = true
}

func (h *Habit) Deactivate() {
	h.Active = false
}

func (h *Habit) Toggle() {
	h.Active = !h.Active
}

func (h Habit) String() string {
	return fmt.Sprintf("Habit:\n\tId:%d\n\tName:%q\n\tQuantum:%g\n\tUnit:%q\n\tActive:%t",
		h.ID, h.Name, h.Quantum, h.Unit, h.Active)
}

// FormatQuantum renders a quantity without trailing zeros: 750, 2.5.
func FormatQuantum(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
