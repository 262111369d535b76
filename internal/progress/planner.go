package progress

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sandeepkv93/studyboard/internal/model"
)

// All matches every subject or status in a Filter.
const All = "alle"

type SortOrder string

const (
	SortByDate     SortOrder = "date"
	SortByPriority SortOrder = "prio"
	SortNone       SortOrder = ""
)

var ErrMoveOutOfRange = errors.New("progress: move index out of range")

type Filter struct {
	Subject string
	Status  string
	Sort    SortOrder
}

func DefaultFilter() Filter {
	return Filter{Subject: All, Status: All, Sort: SortByDate}
}

func (f Filter) matches(t model.Task) bool {
	if f.Subject != "" && f.Subject != All && t.Subject != f.Subject {
		return false
	}
	if f.Status != "" && f.Status != All && string(t.Status) != f.Status {
		return false
	}
	return true
}

// Apply returns the visible planner rows. Sorting is stable, so equal keys
// keep their stored order.
func (f Filter) Apply(tasks []model.Task) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.matches(t) {
			out = append(out, t)
		}
	}
	switch f.Sort {
	case SortByDate:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Due < out[j].Due })
	case SortByPriority:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Priority.Weight() > out[j].Priority.Weight() })
	}
	return out
}

// Subjects lists the distinct non-empty task subjects in first-seen order.
func Subjects(tasks []model.Task) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, t := range tasks {
		if t.Subject == "" || seen[t.Subject] {
			continue
		}
		seen[t.Subject] = true
		out = append(out, t.Subject)
	}
	return out
}

// Move drags visible[from] onto the slot of visible[to] and returns the full
// task sequence in its new order. Tasks hidden by the current filter keep
// their positions, so the result always holds every task exactly once.
func Move(all, visible []model.Task, from, to int) ([]model.Task, error) {
	if from < 0 || from >= len(visible) || to < 0 || to >= len(visible) {
		return nil, fmt.Errorf("%w: from=%d to=%d visible=%d", ErrMoveOutOfRange, from, to, len(visible))
	}
	out := append([]model.Task(nil), all...)
	if from == to {
		return out, nil
	}
	src := indexByID(out, visible[from].ID)
	dst := indexByID(out, visible[to].ID)
	if src < 0 || dst < 0 {
		return nil, fmt.Errorf("%w: task not in sequence", ErrMoveOutOfRange)
	}
	moved := out[src]
	out = append(out[:src], out[src+1:]...)
	out = append(out[:dst], append([]model.Task{moved}, out[dst:]...)...)
	return out, nil
}

func indexByID(tasks []model.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
