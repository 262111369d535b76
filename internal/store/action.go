package store

import "github.com/sandeepkv93/studyboard/internal/model"

// Action is one of the mutation requests below. The set is closed: only this
// package can add variants.
type Action interface {
	Kind() string
	isAction()
}

// AddTask appends a task. The id must be new and non-empty.
type AddTask struct{ Task model.Task }

// UpdateTask merges Patch into the task with Patch.ID; a missing id is rejected.
type UpdateTask struct{ Patch model.TaskPatch }

// DeleteTask removes the task with ID; an unknown id is rejected.
type DeleteTask struct{ ID string }

// ReorderTasks replaces the task sequence. Tasks must hold the same ids as
// the current sequence, in the new order.
type ReorderTasks struct{ Tasks []model.Task }

// AddExam appends an exam. The id must be new and non-empty.
type AddExam struct{ Exam model.Exam }

// UpdateExam merges Patch into the exam with Patch.ID; a missing id is rejected.
type UpdateExam struct{ Patch model.ExamPatch }

// DeleteExam removes the exam with ID; an unknown id is rejected.
type DeleteExam struct{ ID string }

// AddSession appends a study session.
type AddSession struct{ Session model.StudySession }

// DeleteSession removes the session with ID; an unknown id is rejected.
type DeleteSession struct{ ID string }

// AddXP adds Points, which may be negative. XP never drops below zero.
type AddXP struct{ Points int }

// SetTheme stores the theme preference.
type SetTheme struct{ Theme model.Theme }

// ImportData overwrites the keys present in Payload and keeps the rest.
type ImportData struct{ Payload model.StatePatch }

// Init applies state restored from storage at startup.
type Init struct{ Payload model.StatePatch }

func (AddTask) Kind() string       { return "ADD_TASK" }
func (UpdateTask) Kind() string    { return "UPDATE_TASK" }
func (DeleteTask) Kind() string    { return "DELETE_TASK" }
func (ReorderTasks) Kind() string  { return "REORDER_TASKS" }
func (AddExam) Kind() string       { return "ADD_EXAM" }
func (UpdateExam) Kind() string    { return "UPDATE_EXAM" }
func (DeleteExam) Kind() string    { return "DELETE_EXAM" }
func (AddSession) Kind() string    { return "ADD_SESSION" }
func (DeleteSession) Kind() string { return "DELETE_SESSION" }
func (AddXP) Kind() string         { return "ADD_XP" }
func (SetTheme) Kind() string      { return "SET_THEME" }
func (ImportData) Kind() string    { return "IMPORT_DATA" }
func (Init) Kind() string          { return "INIT" }

func (AddTask) isAction()       {}
func (UpdateTask) isAction()    {}
func (DeleteTask) isAction()    {}
func (ReorderTasks) isAction()  {}
func (AddExam) isAction()       {}
func (UpdateExam) isAction()    {}
func (DeleteExam) isAction()    {}
func (AddSession) isAction()    {}
func (DeleteSession) isAction() {}
func (AddXP) isAction()         {}
func (SetTheme) isAction()      {}
func (ImportData) isAction()    {}
func (Init) isAction()          {}
