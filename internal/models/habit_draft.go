package models

// HabitDraft is the unsaved content of a new habit. Optional classification
// fields left nil take their defaults when the store creates the habit.
type HabitDraft struct {
	Name       HabitName
	Quantum    float64
	Unit       HabitUnit
	Streak     *Streak
	Difficulty *Difficulty
	Kind       *Kind
	Notes      *string
}

// NewHabitDraft validates the raw name and unit of a new habit.
func NewHabitDraft(name string, quantum float64, unit string) (HabitDraft, error) {
	n, err := NewHabitName(name)
	if err != nil {
		return HabitDraft{}, err
	}
	u, err := NewHabitUnit(unit)
	if err != nil {
		return HabitDraft{}, err
	}
	return HabitDraft{Name: n, Quantum: quantum, Unit: u}, nil
}

// WithNotes sets the draft's notes after checking their length.
func (d HabitDraft) WithNotes(notes string) (HabitDraft, error) {
	if err := ValidateNotes(notes); err != nil {
		return d, err
	}
	d.Notes = &notes
	return d, nil
}
