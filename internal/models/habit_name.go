package models

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/habyt/internal/constants"
)

// HabitName is a validated habit name: non-empty, at most three words and
// fifty characters.
type HabitName struct {
	value string
}

// NewHabitName validates name and wraps it unchanged.
func NewHabitName(name string) (HabitName, error) {
	if name == "" {
		return HabitName{}, newValidationError("name", "habit name cannot be empty")
	}
	if len(strings.Fields(name)) > constants.MaxNameWords {
		return HabitName{}, newValidationError("name", "habit name cannot have more than %d words", constants.MaxNameWords)
	}
	if len(name) > constants.MaxNameLength {
		return HabitName{}, newValidationError("name", "habit name cannot be longer than %d characters", constants.MaxNameLength)
	}
	return HabitName{value: name}, nil
}

func (n HabitName) String() string { return n.value }

// IsZero reports whether n was never constructed.
func (n HabitName) IsZero() bool { return n.value == "" }

func (n HabitName) MarshalYAML() (interface{}, error) {
	return n.value, nil
}

func (n *HabitName) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := NewHabitName(s)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// Equal reports value equality.
func (n HabitName) Equal(other HabitName) bool { return n.value == other.value }
