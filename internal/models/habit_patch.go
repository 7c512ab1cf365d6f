package models

// HabitPatch is a partial update. Only non-nil fields overwrite the habit.
type HabitPatch struct {
	Name       *HabitName
	Quantum    *float64
	Unit       *HabitUnit
	Streak     *Streak
	Difficulty *Difficulty
	Kind       *Kind
	Notes      *string
}

// NewHabitPatch builds a patch from raw command input. An empty name or unit
// and a non-positive quantum mean "leave unchanged".
func NewHabitPatch(name string, quantum float64, unit string) (HabitPatch, error) {
	var p HabitPatch
	if name != "" {
		n, err := NewHabitName(name)
		if err != nil {
			return HabitPatch{}, err
		}
		p.Name = &n
	}
	if quantum > 0 {
		p.Quantum = &quantum
	}
	if unit != "" {
		u, err := NewHabitUnit(unit)
		if err != nil {
			return HabitPatch{}, err
		}
		p.Unit = &u
	}
	return p, nil
}

// IsEmpty reports whether applying p would change nothing.
func (p HabitPatch) IsEmpty() bool {
	return p.Name == nil && p.Quantum == nil && p.Unit == nil &&
		p.Streak == nil && p.Difficulty == nil && p.Kind == nil && p.Notes == nil
}

// Apply overwrites every present field of p on h. A zero or negative quantum
// and an empty name or unit are ignored. Notes are validated first so a
// failed apply leaves h untouched.
func (p HabitPatch) Apply(h *Habit) error {
	if p.Notes != nil {
		if err := ValidateNotes(*p.Notes); err != nil {
			return err
		}
	}
	if p.Name != nil && !p.Name.IsZero() {
		h.Name = *p.Name
	}
	if p.Quantum != nil && *p.Quantum > 0 {
		h.Quantum = *p.Quantum
	}
	if p.Unit != nil && !p.Unit.IsEmpty() {
		h.Unit = *p.Unit
	}
	if p.Streak != nil {
		h.Streak = *p.Streak
	}
	if p.Difficulty != nil {
		h.Difficulty = *p.Difficulty
	}
	if p.Kind != nil {
		h.Kind = *p.Kind
	}
	if p.Notes != nil {
		h.Notes = *p.Notes
	}
	return nil
}
