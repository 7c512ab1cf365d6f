// Package store holds the in-memory habit and habit-log collections. Stores
// assign monotonically increasing ids that are never reused, even after a
// delete. They are not safe for concurrent use.
package store

import (
	"fmt"
	"sort"

	"github.com/julianstephens/habyt/internal/logger"
	"github.com/julianstephens/habyt/internal/models"
)

// HabitStore is a keyed collection of habits. Its exported fields exist for
// the persistence adapter; callers should use the methods.
type HabitStore struct {
	CurrentID int                  `yaml:"current_id"`
	Data      map[int]models.Habit `yaml:"data"`
}

func NewHabitStore() *HabitStore {
	return &HabitStore{
		Data: make(map[int]models.Habit),
	}
}

func (s *HabitStore) generateID() int {
	s.CurrentID++
	return s.CurrentID
}

// Create stores a habit built from draft and returns its new id. It only
// fails when the draft carries notes that are too long.
func (s *HabitStore) Create(draft models.HabitDraft) (int, error) {
	if draft.Notes != nil {
		if err := models.ValidateNotes(*draft.Notes); err != nil {
			return 0, err
		}
	}

	id := s.generateID()
	habit, err := models.NewHabit(id, draft.Name, draft.Quantum, draft.Unit, draft.Streak, draft.Difficulty, draft.Kind, draft.Notes)
	if err != nil {
		return 0, err
	}
	s.Data[id] = habit
	logger.Debug("Created habit", "id", id, "name", habit.Name.String())
	return id, nil
}

// Get returns a copy of the habit with the given id.
func (s *HabitStore) Get(id int) (models.Habit, bool) {
	h, ok := s.Data[id]
	return h, ok
}

// List returns every habit ordered by id.
func (s *HabitStore) List() []models.Habit {
	habits := make([]models.Habit, 0, len(s.Data))
	for _, h := range s.Data {
		habits = append(habits, h)
	}
	sort.Slice(habits, func(i, j int) bool {
		return habits[i].ID < habits[j].ID
	})
	return habits
}

// Update applies patch to the habit with the given id. It reports false
// when the id is unknown.
func (s *HabitStore) Update(id int, patch models.HabitPatch) (bool, error) {
	h, ok := s.Data[id]
	if !ok {
		return false, nil
	}
	if err := patch.Apply(&h); err != nil {
		return false, err
	}
	s.Data[id] = h
	logger.Debug("Updated habit", "id", id)
	return true, nil
}

// Modify runs fn against the stored habit, e.g. to toggle it.
func (s *HabitStore) Modify(id int, fn func(*models.Habit)) bool {
	h, ok := s.Data[id]
	if !ok {
		return false
	}
	fn(&h)
	s.Data[id] = h
	return true
}

// Delete removes the habit and hands it back. The id is not reused.
func (s *HabitStore) Delete(id int) (models.DeletedHabit, bool) {
	h, ok := s.Data[id]
	if !ok {
		return models.DeletedHabit{}, false
	}
	delete(s.Data, id)
	logger.Debug("Deleted habit", "id", id)
	return models.DeletedHabit{Habit: h}, true
}

func (s *HabitStore) Len() int {
	return len(s.Data)
}

// Repair makes the store usable after decoding: it allocates a nil map and
// raises the counter to the highest stored id so ids are never reissued.
// It reports whether the counter had to be raised.
func (s *HabitStore) Repair() bool {
	if s.Data == nil {
		s.Data = make(map[int]models.Habit)
	}
	raised := false
	for id, h := range s.Data {
		if id > s.CurrentID {
			s.CurrentID = id
			raised = true
		}
		if h.ID != id {
			h.ID = id
			s.Data[id] = h
		}
	}
	return raised
}

// Validate reports the first habit, in id order, that could not have been
// produced by Create. Decoders leave absent fields at their zero values, so a
// record missing a key is caught here.
func (s *HabitStore) Validate() error {
	for _, h := range s.List() {
		switch {
		case h.Name.IsZero():
			return fmt.Errorf("habit %d: missing name", h.ID)
		case !h.Streak.Valid():
			return fmt.Errorf("habit %d: invalid streak %q", h.ID, h.Streak)
		case !h.Difficulty.Valid():
			return fmt.Errorf("habit %d: invalid difficulty %q", h.ID, h.Difficulty)
		case !h.Kind.Valid():
			return fmt.Errorf("habit %d: invalid kind %q", h.ID, h.Kind)
		}
	}
	return nil
}
