package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/studyboard/internal/model"
)

var ErrActionRejected = errors.New("store: action rejected")

func rejected(kind, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrActionRejected, strings.ToLower(kind), fmt.Sprintf(format, args...))
}

// Reduce computes the state that follows action. It never mutates or aliases
// state; a rejected action returns state as given together with an error
// wrapping ErrActionRejected.
func Reduce(state model.AppState, action Action) (model.AppState, error) {
	if action == nil {
		return state, rejected("nil", "no action")
	}
	next := state.Clone()
	switch a := action.(type) {
	case AddTask:
		if strings.TrimSpace(a.Task.ID) == "" {
			return state, rejected(a.Kind(), "task id is required")
		}
		if indexOfTask(next.Tasks, a.Task.ID) >= 0 {
			return state, rejected(a.Kind(), "task %q already exists", a.Task.ID)
		}
		next.Tasks = append(next.Tasks, a.Task.Clone())
	case UpdateTask:
		i := indexOfTask(next.Tasks, a.Patch.ID)
		if i < 0 {
			return state, rejected(a.Kind(), "no task %q", a.Patch.ID)
		}
		next.Tasks[i] = a.Patch.Apply(next.Tasks[i])
	case DeleteTask:
		i := indexOfTask(next.Tasks, a.ID)
		if i < 0 {
			return state, rejected(a.Kind(), "no task %q", a.ID)
		}
		next.Tasks = append(next.Tasks[:i], next.Tasks[i+1:]...)
	case ReorderTasks:
		if err := sameTaskSet(next.Tasks, a.Tasks); err != nil {
			return state, rejected(a.Kind(), "%v", err)
		}
		next.Tasks = model.AppState{Tasks: a.Tasks}.Clone().Tasks
	case AddExam:
		if strings.TrimSpace(a.Exam.ID) == "" {
			return state, rejected(a.Kind(), "exam id is required")
		}
		if indexOfExam(next.Exams, a.Exam.ID) >= 0 {
			return state, rejected(a.Kind(), "exam %q already exists", a.Exam.ID)
		}
		next.Exams = append(next.Exams, a.Exam)
	case UpdateExam:
		i := indexOfExam(next.Exams, a.Patch.ID)
		if i < 0 {
			return state, rejected(a.Kind(), "no exam %q", a.Patch.ID)
		}
		next.Exams[i] = a.Patch.Apply(next.Exams[i])
	case DeleteExam:
		i := indexOfExam(next.Exams, a.ID)
		if i < 0 {
			return state, rejected(a.Kind(), "no exam %q", a.ID)
		}
		next.Exams = append(next.Exams[:i], next.Exams[i+1:]...)
	case AddSession:
		if strings.TrimSpace(a.Session.ID) == "" {
			return state, rejected(a.Kind(), "session id is required")
		}
		if indexOfSession(next.StudySessions, a.Session.ID) >= 0 {
			return state, rejected(a.Kind(), "session %q already exists", a.Session.ID)
		}
		next.StudySessions = append(next.StudySessions, a.Session)
	case DeleteSession:
		i := indexOfSession(next.StudySessions, a.ID)
		if i < 0 {
			return state, rejected(a.Kind(), "no session %q", a.ID)
		}
		next.StudySessions = append(next.StudySessions[:i], next.StudySessions[i+1:]...)
	case AddXP:
		next.XP += a.Points
		if next.XP < 0 {
			next.XP = 0
		}
	case SetTheme:
		if !a.Theme.IsValid() {
			return state, rejected(a.Kind(), "unknown theme %q", a.Theme)
		}
		next.Theme = a.Theme
	case ImportData:
		next = a.Payload.MergeInto(next)
	case Init:
		next = a.Payload.MergeInto(next)
	default:
		return state, rejected(action.Kind(), "unsupported action %T", action)
	}
	return next, nil
}

func indexOfTask(items []model.Task, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func indexOfExam(items []model.Exam, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func indexOfSession(items []model.StudySession, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func sameTaskSet(current, reordered []model.Task) error {
	if len(current) != len(reordered) {
		return fmt.Errorf("expected %d tasks, got %d", len(current), len(reordered))
	}
	want := make(map[string]bool, len(current))
	for _, t := range current {
		want[t.ID] = true
	}
	for _, t := range reordered {
		if !want[t.ID] {
			return fmt.Errorf("task %q is unknown or repeated", t.ID)
		}
		delete(want, t.ID)
	}
	return nil
}
