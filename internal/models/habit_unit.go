package models

import (
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/habyt/internal/constants"
)

// HabitUnit is the measurable unit of a habit's daily goal, e.g. "words".
// An empty unit is valid here; NewHabit replaces it with the default unit.
type HabitUnit struct {
	value string
}

func NewHabitUnit(unit string) (HabitUnit, error) {
	if len(unit) > constants.MaxUnitLength {
		return HabitUnit{}, newValidationError("unit", "habit unit cannot be longer than %d characters", constants.MaxUnitLength)
	}
	return HabitUnit{value: unit}, nil
}

func (u HabitUnit) String() string { return u.value }

func (u HabitUnit) IsEmpty() bool { return u.value == "" }

func (u HabitUnit) MarshalYAML() (interface{}, error) {
	return u.value, nil
}

func (u *HabitUnit) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := NewHabitUnit(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Equal reports value equality.
func (u HabitUnit) Equal(other HabitUnit) bool { return u.value == other.value }
