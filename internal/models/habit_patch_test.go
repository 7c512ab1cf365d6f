package models

import (
	"strings"
	"testing"
)

func TestNewHabitPatchTreatsEmptyAsAbsent(t *testing.T) {
	p, err := NewHabitPatch("", 0, "")
	if err != nil {
		t.Fatalf("NewHabitPatch: %v", err)
	}
	if !p.IsEmpty() {
		t.Errorf("expected empty patch, got %+v", p)
	}

	p, err = NewHabitPatch("", -3, "")
	if err != nil {
		t.Fatalf("NewHabitPatch: %v", err)
	}
	if p.Quantum != nil {
		t.Error("negative quantum should be treated as absent")
	}
}

func TestNewHabitPatchValidates(t *testing.T) {
	if _, err := NewHabitPatch("one two three four", 0, ""); err == nil {
		t.Error("expected error for four-word name")
	}
	if _, err := NewHabitPatch("", 0, strings.Repeat("x", 16)); err == nil {
		t.Error("expected error for long unit")
	}
}

func TestHabitPatchApply(t *testing.T) {
	h, _ := NewHabit(1, mustName(t, "writing"), 750, mustUnit(t, "words"), nil, nil, nil, nil)

	q := 650.0
	p := HabitPatch{Quantum: &q}
	if err := p.Apply(&h); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if h.Quantum != 650 {
		t.Errorf("expected quantum 650, got %v", h.Quantum)
	}
	if h.Name.String() != "writing" || h.Unit.String() != "words" || h.Notes != "" {
		t.Errorf("fields outside the patch changed: %+v", h)
	}

	zero := 0.0
	if err := (HabitPatch{Quantum: &zero}).Apply(&h); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if h.Quantum != 650 {
		t.Errorf("zero quantum should not overwrite, got %v", h.Quantum)
	}

	kind := KindNegative
	notes := "evenings only"
	if err := (HabitPatch{Kind: &kind, Notes: &notes}).Apply(&h); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if h.Kind != KindNegative || h.Notes != notes {
		t.Errorf("expected kind and notes to be patched, got %+v", h)
	}
}

func TestHabitPatchApplyRejectsLongNotes(t *testing.T) {
	h, _ := NewHabit(1, mustName(t, "writing"), 750, mustUnit(t, "words"), nil, nil, nil, nil)
	before := h

	q := 10.0
	notes := strings.Repeat("n", 281)
	if err := (HabitPatch{Quantum: &q, Notes: &notes}).Apply(&h); err == nil {
		t.Fatal("expected validation error")
	}
	if h != before {
		t.Error("failed apply must leave the habit untouched")
	}
}
