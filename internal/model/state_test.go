package model

import (
	"errors"
	"math"
	"testing"
)

func TestLevelAndProgress(t *testing.T) {
	cases := []struct {
		xp       int
		level    int
		progress float64
	}{
		{0, 1, 0},
		{95, 1, 0.95},
		{100, 2, 0},
		{105, 2, 0.05},
		{250, 3, 0.5},
		{-20, 1, 0},
	}
	for _, tc := range cases {
		if got := Level(tc.xp); got != tc.level {
			t.Fatalf("Level(%d) = %d, want %d", tc.xp, got, tc.level)
		}
		if got := LevelProgress(tc.xp); math.Abs(got-tc.progress) > 1e-9 {
			t.Fatalf("LevelProgress(%d) = %v, want %v", tc.xp, got, tc.progress)
		}
	}
}

func TestCloneSharesNoSlices(t *testing.T) {
	s := EmptyState()
	s.Tasks = append(s.Tasks, Task{ID: "a", Attachments: []Attachment{{Name: "x"}}})
	c := s.Clone()
	c.Tasks[0].Attachments[0].Name = "changed"
	c.Tasks[0].Subject = "changed"
	if s.Tasks[0].Attachments[0].Name != "x" || s.Tasks[0].Subject != "" {
		t.Fatalf("clone aliases original: %#v", s.Tasks[0])
	}
}

func TestStatePatchMergeKeepsAbsentKeys(t *testing.T) {
	s := EmptyState()
	s.XP = 40
	s.Theme = ThemeDark
	tasks := []Task{{ID: "t1"}}
	merged := StatePatch{Tasks: &tasks}.MergeInto(s)
	if merged.XP != 40 || merged.Theme != ThemeDark {
		t.Fatalf("absent keys changed: %#v", merged)
	}
	if len(merged.Tasks) != 1 || merged.Tasks[0].ID != "t1" {
		t.Fatalf("tasks not replaced: %#v", merged.Tasks)
	}
}

func TestStatePatchValidate(t *testing.T) {
	dup := []Exam{
		{ID: "e1", Date: "2026-03-01"},
		{ID: "e1", Date: "2026-03-02"},
	}
	if err := (StatePatch{Exams: &dup}).Validate(); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}

	neg := -1
	if err := (StatePatch{XP: &neg}).Validate(); !errors.Is(err, ErrNegativeXP) {
		t.Fatalf("expected ErrNegativeXP, got %v", err)
	}

	theme := Theme("neon")
	if err := (StatePatch{Theme: &theme}).Validate(); !errors.Is(err, ErrInvalidTheme) {
		t.Fatalf("expected ErrInvalidTheme, got %v", err)
	}

	sessions := []StudySession{{ID: "s1", Minutes: 0, Date: "2026-03-01"}}
	if err := (StatePatch{StudySessions: &sessions}).Validate(); err == nil {
		t.Fatal("expected error for zero-minute session")
	}

	if err := EmptyState().Validate(); err != nil {
		t.Fatalf("empty state should validate: %v", err)
	}
}
