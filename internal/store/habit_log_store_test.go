package store

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/habyt/internal/models"
)

func logOn(t *testing.T, habitID int, quantum float64, date models.Date) models.HabitLog {
	t.Helper()
	e, err := models.NewHabitLogOn(habitID, quantum, "", date)
	if err != nil {
		t.Fatalf("NewHabitLogOn: %v", err)
	}
	return e
}

func TestHabitLogStoreAddAndGet(t *testing.T) {
	s := NewHabitLogStore()
	d := models.NewDate(2024, time.March, 1)

	first := s.Add(logOn(t, 3, 10, d))
	second := s.Add(logOn(t, 3, 20, d))
	if first != 1 || second != 2 {
		t.Errorf("expected entry ids 1 and 2, got %d and %d", first, second)
	}

	e, ok := s.Get(second)
	if !ok {
		t.Fatal("entry not found")
	}
	if e.HabitID != 3 || e.Quantum != 20 {
		t.Errorf("unexpected entry %+v", e)
	}
	if _, ok := s.Get(99); ok {
		t.Error("unknown entry id should be absent")
	}
}

func TestHabitLogStoreAcceptsUnknownHabit(t *testing.T) {
	s := NewHabitLogStore()
	s.Add(logOn(t, 404, 1, models.Today()))
	if s.Len() != 1 {
		t.Error("log entries for unknown habits should be accepted")
	}
}

func TestHabitLogStoreList(t *testing.T) {
	s := NewHabitLogStore()
	if len(s.List()) != 0 {
		t.Error("expected empty list")
	}
	d := models.NewDate(2024, time.March, 1)
	s.Add(logOn(t, 1, 1, d))
	s.Add(logOn(t, 2, 2, d))
	s.Add(logOn(t, 1, 3, d))

	list := s.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(list))
	}
	if got := s.ForHabit(1); len(got) != 2 || got[0].Quantum != 1 || got[1].Quantum != 3 {
		t.Errorf("unexpected ForHabit result %+v", got)
	}
}

func TestHabitLogStoreGroupByHabit(t *testing.T) {
	d1 := models.NewDate(2024, time.January, 1)
	d2 := models.NewDate(2024, time.January, 2)
	d3 := models.NewDate(2024, time.January, 3)

	s := NewHabitLogStore()
	s.Add(logOn(t, 1, 10, d1))
	s.Add(logOn(t, 1, 20, d2))
	s.Add(logOn(t, 2, 5, d3))

	want := map[int][]models.LogPoint{
		1: {{Date: d1, Quantum: 10}, {Date: d2, Quantum: 20}},
		2: {{Date: d3, Quantum: 5}},
	}
	if diff := cmp.Diff(want, s.GroupByHabit()); diff != "" {
		t.Errorf("GroupByHabit mismatch (-want +got):\n%s", diff)
	}
}

func TestHabitLogStoreGroupByHabitSortsByDate(t *testing.T) {
	d1 := models.NewDate(2024, time.May, 1)
	d2 := models.NewDate(2024, time.May, 2)

	s := NewHabitLogStore()
	s.Add(logOn(t, 1, 20, d2))
	s.Add(logOn(t, 1, 10, d1))
	s.Add(logOn(t, 1, 30, d2))

	want := []models.LogPoint{{Date: d1, Quantum: 10}, {Date: d2, Quantum: 20}, {Date: d2, Quantum: 30}}
	if diff := cmp.Diff(want, s.GroupByHabit()[1]); diff != "" {
		t.Errorf("expected ascending dates with stable ties (-want +got):\n%s", diff)
	}
}

func TestHabitLogStoreValidate(t *testing.T) {
	s := NewHabitLogStore()
	s.Add(logOn(t, 1, 20, models.NewDate(2024, time.May, 1)))
	if err := s.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	s.Add(models.HabitLog{HabitID: 1, Quantum: 5})
	if err := s.Validate(); err == nil {
		t.Error("expected error for an entry without a date")
	}
}
