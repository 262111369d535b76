package model

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidTheme = errors.New("model: invalid theme")
	ErrDuplicateID  = errors.New("model: duplicate id")
	ErrNegativeXP   = errors.New("model: xp must not be negative")
)

var structValidator = validator.New()

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func (t Theme) IsValid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	default:
		return false
	}
}

const XPPerLevel = 100

// Level is floor(xp/100)+1; negative xp counts as zero.
func Level(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// LevelProgress is the fraction of the current level already earned, in [0,1).
func LevelProgress(xp int) float64 {
	if xp < 0 {
		xp = 0
	}
	return float64(xp%XPPerLevel) / XPPerLevel
}

type AppState struct {
	Tasks         []Task         `json:"tasks"`
	Exams         []Exam         `json:"exams"`
	StudySessions []StudySession `json:"studySessions"`
	XP            int            `json:"xp"`
	Theme         Theme          `json:"theme"`
}

func EmptyState() AppState {
	return AppState{
		Tasks:         []Task{},
		Exams:         []Exam{},
		StudySessions: []StudySession{},
		XP:            0,
		Theme:         ThemeSystem,
	}
}

// Clone returns a copy that shares no slices with s.
func (s AppState) Clone() AppState {
	out := s
	out.Tasks = make([]Task, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		out.Tasks = append(out.Tasks, t.Clone())
	}
	out.Exams = append(make([]Exam, 0, len(s.Exams)), s.Exams...)
	out.StudySessions = append(make([]StudySession, 0, len(s.StudySessions)), s.StudySessions...)
	return out
}

func (s AppState) Validate() error {
	return StatePatch{
		Tasks:         &s.Tasks,
		Exams:         &s.Exams,
		StudySessions: &s.StudySessions,
		XP:            &s.XP,
		Theme:         &s.Theme,
	}.Validate()
}

func (s AppState) TaskByID(id string) (Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// StatePatch holds the top-level keys of a restored or imported document.
// A nil field was absent and keeps its current value when merged.
type StatePatch struct {
	Tasks         *[]Task         `json:"tasks,omitempty"`
	Exams         *[]Exam         `json:"exams,omitempty"`
	StudySessions *[]StudySession `json:"studySessions,omitempty"`
	XP            *int            `json:"xp,omitempty"`
	Theme         *Theme          `json:"theme,omitempty"`
}

func PatchFromState(s AppState) StatePatch {
	c := s.Clone()
	return StatePatch{
		Tasks:         &c.Tasks,
		Exams:         &c.Exams,
		StudySessions: &c.StudySessions,
		XP:            &c.XP,
		Theme:         &c.Theme,
	}
}

func (p StatePatch) IsEmpty() bool {
	return p.Tasks == nil && p.Exams == nil && p.StudySessions == nil && p.XP == nil && p.Theme == nil
}

// MergeInto shallow-merges the present keys over s.
func (p StatePatch) MergeInto(s AppState) AppState {
	out := s.Clone()
	if p.Tasks != nil {
		out.Tasks = AppState{Tasks: *p.Tasks}.Clone().Tasks
	}
	if p.Exams != nil {
		out.Exams = append(make([]Exam, 0, len(*p.Exams)), (*p.Exams)...)
	}
	if p.StudySessions != nil {
		out.StudySessions = append(make([]StudySession, 0, len(*p.StudySessions)), (*p.StudySessions)...)
	}
	if p.XP != nil {
		out.XP = *p.XP
	}
	if p.Theme != nil {
		out.Theme = *p.Theme
	}
	return out
}

// Validate checks every present key: entries must be well formed and ids unique per collection.
func (p StatePatch) Validate() error {
	if p.Tasks != nil {
		seen := make(map[string]bool, len(*p.Tasks))
		for _, t := range *p.Tasks {
			if err := t.Validate(); err != nil {
				return err
			}
			if seen[t.ID] {
				return fmt.Errorf("%w: task %s", ErrDuplicateID, t.ID)
			}
			seen[t.ID] = true
		}
	}
	if p.Exams != nil {
		seen := make(map[string]bool, len(*p.Exams))
		for _, e := range *p.Exams {
			if err := e.Validate(); err != nil {
				return err
			}
			if seen[e.ID] {
				return fmt.Errorf("%w: exam %s", ErrDuplicateID, e.ID)
			}
			seen[e.ID] = true
		}
	}
	if p.StudySessions != nil {
		seen := make(map[string]bool, len(*p.StudySessions))
		for _, s := range *p.StudySessions {
			if err := s.Validate(); err != nil {
				return err
			}
			if seen[s.ID] {
				return fmt.Errorf("%w: session %s", ErrDuplicateID, s.ID)
			}
			seen[s.ID] = true
		}
	}
	if p.XP != nil && *p.XP < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeXP, *p.XP)
	}
	if p.Theme != nil && !p.Theme.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, *p.Theme)
	}
	return nil
}
