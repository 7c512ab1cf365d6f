package models

// HabitLog is a dated record of progress against a habit. HabitID is not
// checked against the habit store.
type HabitLog struct {
	HabitID int     `yaml:"id"`
	Quantum float64 `yaml:"quantum"`
	Notes   string  `yaml:"notes"`
	Date    Date    `yaml:"date"`
}

// LogPoint is one (date, quantum) pair of a habit's history.
type LogPoint struct {
	Date    Date
	Quantum float64
}

// NewHabitLog records quantum against habitID for today.
func NewHabitLog(habitID int, quantum float64, notes string) (HabitLog, error) {
	return NewHabitLogOn(habitID, quantum, notes, Today())
}

func NewHabitLogOn(habitID int, quantum float64, notes string, date Date) (HabitLog, error) {
	if err := ValidateNotes(notes); err != nil {
		return HabitLog{}, err
	}
	return HabitLog{
		HabitID: habitID,
		Quantum: quantum,
		Notes:   notes,
		Date:    date,
	}, nil
}
