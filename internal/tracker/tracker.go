// Package tracker is the use-case layer over the store: it fills in ids and
// defaults, awards XP for study activity and moves backups in and out.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/studyboard/internal/calendar"
	"github.com/sandeepkv93/studyboard/internal/ident"
	"github.com/sandeepkv93/studyboard/internal/logger"
	"github.com/sandeepkv93/studyboard/internal/model"
	"github.com/sandeepkv93/studyboard/internal/progress"
	"github.com/sandeepkv93/studyboard/internal/store"
)

const (
	XPTaskCompletedOnAdd = 5
	XPManualSession      = 5
	XPFocusSession       = 10
)

// DefaultSessionMinutes prefills the manual session form.
const DefaultSessionMinutes = 30

var ErrUnknownTask = errors.New("tracker: unknown task")

type Service struct {
	store *store.Store
	log   *logger.Logger
	now   func() time.Time
}

type Option func(*Service)

func WithLogger(l *logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func New(st *store.Store, opts ...Option) *Service {
	s := &Service{store: st, log: logger.Nop(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithComponent("tracker")
	return s
}

func (s *Service) Store() *store.Store { return s.store }

func (s *Service) Now() time.Time { return s.now() }

func (s *Service) State() model.AppState { return s.store.State() }

type TaskInput struct {
	Subject     string
	Description string
	Due         string
	Priority    model.Priority
	Status      model.Status
	Notes       string
	Attachments []model.Attachment
}

// AddTask stores a new task. Empty fields take the form defaults: due today,
// priority mittel, status offen. A task added as already done earns
// XPTaskCompletedOnAdd.
func (s *Service) AddTask(ctx context.Context, in TaskInput) (model.Task, error) {
	t := model.Task{
		ID:          ident.New(),
		Subject:     strings.TrimSpace(in.Subject),
		Description: strings.TrimSpace(in.Description),
		Due:         in.Due,
		Priority:    in.Priority,
		Status:      in.Status,
		Notes:       in.Notes,
		Attachments: in.Attachments,
	}
	if t.Due == "" {
		t.Due = calendar.TodayAt(s.now())
	}
	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}
	if t.Status == "" {
		t.Status = model.StatusOpen
	}
	if err := t.Validate(); err != nil {
		return model.Task{}, err
	}
	if err := s.store.Dispatch(ctx, store.AddTask{Task: t}); err != nil {
		return model.Task{}, err
	}
	if t.IsDone() {
		if err := s.award(ctx, XPTaskCompletedOnAdd, "task added done"); err != nil {
			return t, err
		}
	}
	return t, nil
}

func (s *Service) UpdateTask(ctx context.Context, patch model.TaskPatch) (model.Task, error) {
	if err := s.store.Dispatch(ctx, store.UpdateTask{Patch: patch}); err != nil {
		return model.Task{}, err
	}
	t, ok := s.store.State().TaskByID(patch.ID)
	if !ok {
		return model.Task{}, fmt.Errorf("%w: %s", ErrUnknownTask, patch.ID)
	}
	return t, nil
}

// ToggleTask flips a task between offen and erledigt. XP is not touched in
// either direction.
func (s *Service) ToggleTask(ctx context.Context, id string) (model.Task, error) {
	t, ok := s.store.State().TaskByID(id)
	if !ok {
		return model.Task{}, fmt.Errorf("%w: %s", ErrUnknownTask, id)
	}
	next := t.Status.Toggled()
	return s.UpdateTask(ctx, model.TaskPatch{ID: id, Status: &next})
}

func (s *Service) DeleteTask(ctx context.Context, id string) error {
	return s.store.Dispatch(ctx, store.DeleteTask{ID: id})
}

// MoveTask drags a planner row. visible is the filtered list the indexes
// refer to; the full order is what gets stored.
func (s *Service) MoveTask(ctx context.Context, visible []model.Task, from, to int) error {
	ordered, err := progress.Move(s.store.State().Tasks, visible, from, to)
	if err != nil {
		return err
	}
	return s.store.Dispatch(ctx, store.ReorderTasks{Tasks: ordered})
}

type ExamInput struct {
	Subject     string
	Date        string
	Topic       string
	Description string
}

func (s *Service) AddExam(ctx context.Context, in ExamInput) (model.Exam, error) {
	e := model.Exam{
		ID:          ident.New(),
		Subject:     strings.TrimSpace(in.Subject),
		Date:        in.Date,
		Topic:       strings.TrimSpace(in.Topic),
		Description: strings.TrimSpace(in.Description),
	}
	if e.Date == "" {
		e.Date = calendar.TodayAt(s.now())
	}
	if err := e.Validate(); err != nil {
		return model.Exam{}, err
	}
	if err := s.store.Dispatch(ctx, store.AddExam{Exam: e}); err != nil {
		return model.Exam{}, err
	}
	return e, nil
}

func (s *Service) UpdateExam(ctx context.Context, patch model.ExamPatch) error {
	return s.store.Dispatch(ctx, store.UpdateExam{Patch: patch})
}

func (s *Service) DeleteExam(ctx context.Context, id string) error {
	return s.store.Dispatch(ctx, store.DeleteExam{ID: id})
}

type SessionInput struct {
	Subject string
	Minutes int
	Date    string
}

// LogSession records a manually entered session and earns XPManualSession.
func (s *Service) LogSession(ctx context.Context, in SessionInput) (model.StudySession, error) {
	sess := model.StudySession{
		ID:      ident.New(),
		Subject: strings.TrimSpace(in.Subject),
		Minutes: in.Minutes,
		Date:    in.Date,
	}
	if sess.Minutes == 0 {
		sess.Minutes = DefaultSessionMinutes
	}
	if sess.Date == "" {
		sess.Date = calendar.TodayAt(s.now())
	}
	if err := s.addSession(ctx, sess, XPManualSession, "session logged"); err != nil {
		return model.StudySession{}, err
	}
	return sess, nil
}

// CommitFocus stores a session produced by the focus timer and earns
// XPFocusSession.
func (s *Service) CommitFocus(ctx context.Context, sess model.StudySession) error {
	if sess.ID == "" {
		sess.ID = ident.New()
	}
	return s.addSession(ctx, sess, XPFocusSession, "focus session")
}

func (s *Service) addSession(ctx context.Context, sess model.StudySession, points int, reason string) error {
	if err := sess.Validate(); err != nil {
		return err
	}
	if err := s.store.Dispatch(ctx, store.AddSession{Session: sess}); err != nil {
		return err
	}
	return s.award(ctx, points, reason)
}

func (s *Service) DeleteSession(ctx context.Context, id string) error {
	return s.store.Dispatch(ctx, store.DeleteSession{ID: id})
}

func (s *Service) SetTheme(ctx context.Context, t model.Theme) error {
	return s.store.Dispatch(ctx, store.SetTheme{Theme: t})
}

func (s *Service) award(ctx context.Context, points int, reason string) error {
	if err := s.store.Dispatch(ctx, store.AddXP{Points: points}); err != nil {
		return err
	}
	s.log.Debugw("xp awarded", "points", points, "reason", reason, "level", s.store.Level())
	return nil
}
