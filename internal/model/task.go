package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidStatus   = errors.New("model: invalid task status")
	ErrInvalidPriority = errors.New("model: invalid task priority")
)

type Status string

const (
	StatusOpen Status = "offen"
	StatusDone Status = "erledigt"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusDone:
		return true
	default:
		return false
	}
}

// Toggled flips between open and done.
func (s Status) Toggled() Status {
	if s == StatusDone {
		return StatusOpen
	}
	return StatusDone
}

type Priority string

const (
	PriorityHigh   Priority = "hoch"
	PriorityMedium Priority = "mittel"
	PriorityLow    Priority = "niedrig"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Weight orders priorities high > medium > low. Unknown values rank with low.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}

// Attachment content is kept as a data URL, the way the backup layout stores it.
type Attachment struct {
	Name    string `json:"name" validate:"required"`
	Content string `json:"dataUrl"`
}

type Task struct {
	ID          string       `json:"id" validate:"required"`
	Subject     string       `json:"subject"`
	Description string       `json:"description"`
	Due         string       `json:"due" validate:"required,datetime=2006-01-02"`
	Priority    Priority     `json:"priority"`
	Status      Status       `json:"status"`
	Notes       string       `json:"notes"`
	Attachments []Attachment `json:"attachments" validate:"dive"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if err := structValidator.Struct(t); err != nil {
		return fmt.Errorf("model: task %s: %w", t.ID, err)
	}
	return nil
}

func (t Task) IsDone() bool { return t.Status == StatusDone }

// Clone copies the task including its attachment slice.
func (t Task) Clone() Task {
	out := t
	out.Attachments = copyAttachments(t.Attachments)
	return out
}

// copyAttachments keeps an empty list empty; it is stored as [] not null.
func copyAttachments(in []Attachment) []Attachment {
	if in == nil {
		return nil
	}
	out := make([]Attachment, len(in))
	copy(out, in)
	return out
}

// TaskPatch carries the fields of an update. Nil fields are left untouched.
type TaskPatch struct {
	ID          string        `json:"id"`
	Subject     *string       `json:"subject,omitempty"`
	Description *string       `json:"description,omitempty"`
	Due         *string       `json:"due,omitempty"`
	Priority    *Priority     `json:"priority,omitempty"`
	Status      *Status       `json:"status,omitempty"`
	Notes       *string       `json:"notes,omitempty"`
	Attachments *[]Attachment `json:"attachments,omitempty"`
}

func (p TaskPatch) Apply(t Task) Task {
	out := t.Clone()
	if p.Subject != nil {
		out.Subject = *p.Subject
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Due != nil {
		out.Due = *p.Due
	}
	if p.Priority != nil {
		out.Priority = *p.Priority
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.Notes != nil {
		out.Notes = *p.Notes
	}
	if p.Attachments != nil {
		out.Attachments = copyAttachments(*p.Attachments)
	}
	return out
}
