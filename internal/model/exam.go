package model

import (
	"errors"
	"fmt"
	"strings"
)

type Exam struct {
	ID          string `json:"id" validate:"required"`
	Subject     string `json:"subject"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Topic       string `json:"topic,omitempty"`
	Description string `json:"description,omitempty"`
}

func (e Exam) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("model: exam id is required")
	}
	if err := structValidator.Struct(e); err != nil {
		return fmt.Errorf("model: exam %s: %w", e.ID, err)
	}
	return nil
}

// Title falls back to a generic label when no topic was given.
func (e Exam) Title() string {
	if strings.TrimSpace(e.Topic) == "" {
		return "Prüfung"
	}
	return e.Topic
}

type ExamPatch struct {
	ID          string  `json:"id"`
	Subject     *string `json:"subject,omitempty"`
	Date        *string `json:"date,omitempty"`
	Topic       *string `json:"topic,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (p ExamPatch) Apply(e Exam) Exam {
	out := e
	if p.Subject != nil {
		out.Subject = *p.Subject
	}
	if p.Date != nil {
		out.Date = *p.Date
	}
	if p.Topic != nil {
		out.Topic = *p.Topic
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	return out
}

type StudySession struct {
	ID      string `json:"id" validate:"required"`
	Subject string `json:"subject"`
	Minutes int    `json:"minutes" validate:"min=1"`
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
}

func (s StudySession) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("model: session id is required")
	}
	if s.Minutes <= 0 {
		return fmt.Errorf("model: session %s: minutes must be positive, got %d", s.ID, s.Minutes)
	}
	if err := structValidator.Struct(s); err != nil {
		return fmt.Errorf("model: session %s: %w", s.ID, err)
	}
	return nil
}
