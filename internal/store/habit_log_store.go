package store

import (
	"fmt"
	"sort"

	"github.com/julianstephens/habyt/internal/logger"
	"github.com/julianstephens/habyt/internal/models"
)

// HabitLogStore is a keyed collection of log entries with its own id counter.
type HabitLogStore struct {
	CurrentID int                     `yaml:"current_id"`
	Data      map[int]models.HabitLog `yaml:"data"`
}

func NewHabitLogStore() *HabitLogStore {
	return &HabitLogStore{
		Data: make(map[int]models.HabitLog),
	}
}

func (s *HabitLogStore) generateID() int {
	s.CurrentID++
	return s.CurrentID
}

// Add stores entry and returns its entry id.
func (s *HabitLogStore) Add(entry models.HabitLog) int {
	id := s.generateID()
	s.Data[id] = entry
	logger.Debug("Logged habit", "entry", id, "habit", entry.HabitID, "quantum", entry.Quantum)
	return id
}

func (s *HabitLogStore) Get(entryID int) (models.HabitLog, bool) {
	entry, ok := s.Data[entryID]
	return entry, ok
}

func (s *HabitLogStore) entryIDs() []int {
	ids := make([]int, 0, len(s.Data))
	for id := range s.Data {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// List returns every entry in insertion order.
func (s *HabitLogStore) List() []models.HabitLog {
	entries := make([]models.HabitLog, 0, len(s.Data))
	for _, id := range s.entryIDs() {
		entries = append(entries, s.Data[id])
	}
	return entries
}

// ForHabit returns the entries logged against habitID in insertion order.
func (s *HabitLogStore) ForHabit(habitID int) []models.HabitLog {
	var entries []models.HabitLog
	for _, id := range s.entryIDs() {
		if e := s.Data[id]; e.HabitID == habitID {
			entries = append(entries, e)
		}
	}
	return entries
}

// GroupByHabit maps each referenced habit id to its (date, quantum) history,
// sorted by date. Entries on the same date keep insertion order.
func (s *HabitLogStore) GroupByHabit() map[int][]models.LogPoint {
	groups := make(map[int][]models.LogPoint)
	for _, id := range s.entryIDs() {
		e := s.Data[id]
		groups[e.HabitID] = append(groups[e.HabitID], models.LogPoint{Date: e.Date, Quantum: e.Quantum})
	}
	for _, points := range groups {
		sort.SliceStable(points, func(i, j int) bool {
			return points[i].Date.Before(points[j].Date)
		})
	}
	return groups
}

func (s *HabitLogStore) Len() int {
	return len(s.Data)
}

// Repair allocates a nil map and raises the counter past every stored id.
func (s *HabitLogStore) Repair() bool {
	if s.Data == nil {
		s.Data = make(map[int]models.HabitLog)
	}
	raised := false
	for id := range s.Data {
		if id > s.CurrentID {
			s.CurrentID = id
			raised = true
		}
	}
	return raised
}

// Validate rejects entries without a date.
func (s *HabitLogStore) Validate() error {
	for _, id := range s.entryIDs() {
		if s.Data[id].Date.IsZero() {
			return fmt.Errorf("log entry %d: missing date", id)
		}
	}
	return nil
}
