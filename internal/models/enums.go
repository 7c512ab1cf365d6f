package models

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Streak is how often a habit's goal resets
type Streak string

// Difficulty is the self-assessed effort of a habit
type Difficulty string

// Kind separates habits to build from habits to break
type Kind string

// Persisted variant names. These are the on-disk tags and must not change;
// use Label for display.
const (
	StreakDaily   Streak = "Daily"
	StreakWeekly  Streak = "Weekly"
	StreakMonthly Streak = "Monthly"

	DifficultyTrivial Difficulty = "Trivial"
	DifficultyEasy    Difficulty = "Easy"
	DifficultyMedium  Difficulty = "Medium"
	DifficultyHard    Difficulty = "Hard"

	KindPositive Kind = "Positive"
	KindNegative Kind = "Negative"
)

var (
	Streaks      = []Streak{StreakDaily, StreakWeekly, StreakMonthly}
	Difficulties = []Difficulty{DifficultyTrivial, DifficultyEasy, DifficultyMedium, DifficultyHard}
	Kinds        = []Kind{KindPositive, KindNegative}
)

func (s Streak) Valid() bool {
	for _, v := range Streaks {
		if s == v {
			return true
		}
	}
	return false
}

func (d Difficulty) Valid() bool {
	for _, v := range Difficulties {
		if d == v {
			return true
		}
	}
	return false
}

func (k Kind) Valid() bool {
	for _, v := range Kinds {
		if k == v {
			return true
		}
	}
	return false
}

// Label returns the display form of the variant
func (s Streak) Label() string { return strings.ToLower(string(s)) }
func (d Difficulty) Label() string { return strings.ToLower(string(d)) }
func (k Kind) Label() string { return strings.ToLower(string(k)) }

// ParseStreak matches a variant name case-insensitively.
func ParseStreak(s string) (Streak, error) {
	for _, v := range Streaks {
		if strings.EqualFold(s, string(v)) {
			return v, nil
		}
	}
	return "", newValidationError("streak", "unknown streak %q (expected daily, weekly or monthly)", s)
}

// ParseDifficulty matches a variant name case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, v := range Difficulties {
		if strings.EqualFold(s, string(v)) {
			return v, nil
		}
	}
	return "", newValidationError("difficulty", "unknown difficulty %q (expected trivial, easy, medium or hard)", s)
}

// ParseKind matches a variant name case-insensitively.
func ParseKind(s string) (Kind, error) {
	for _, v := range Kinds {
		if strings.EqualFold(s, string(v)) {
			return v, nil
		}
	}
	return "", newValidationError("kind", "unknown kind %q (expected positive or negative)", s)
}

// Decoding is strict: the persisted tag must be an exact variant name.

func (s *Streak) UnmarshalYAML(value *yaml.Node) error {
	return decodeVariant(value, "streak", func(raw string) bool {
		*s = Streak(raw)
		return s.Valid()
	})
}

func (d *Difficulty) UnmarshalYAML(value *yaml.Node) error {
	return decodeVariant(value, "difficulty", func(raw string) bool {
		*d = Difficulty(raw)
		return d.Valid()
	})
}

func (k *Kind) UnmarshalYAML(value *yaml.Node) error {
	return decodeVariant(value, "kind", func(raw string) bool {
		*k = Kind(raw)
		return k.Valid()
	})
}

func decodeVariant(value *yaml.Node, field string, set func(string) bool) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if !set(raw) {
		return fmt.Errorf("line %d: unknown %s variant %q", value.Line, field, raw)
	}
	return nil
}

// Period names the interval a streak repeats over.
func (s Streak) Period() string {
	switch s {
	case StreakWeekly:
		return "week"
	case StreakMonthly:
		return "month"
	default:
		return "day"
	}
}
