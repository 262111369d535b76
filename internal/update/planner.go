package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studyboard/internal/model"
	studyprogress "github.com/sandeepkv93/studyboard/internal/progress"
)

func (m Model) plannerRows() []model.Task {
	return m.PlannerFilter.Apply(m.state.Tasks)
}

func (m Model) selectedPlannerTask() (model.Task, bool) {
	rows := m.plannerRows()
	if len(rows) == 0 || m.PlannerCursor < 0 || m.PlannerCursor >= len(rows) {
		return model.Task{}, false
	}
	return rows[m.PlannerCursor], true
}

func (m Model) handlePlannerKey(msg tea.KeyMsg) Model {
	rows := m.plannerRows()
	switch msg.String() {
	case "j", "down":
		if m.PlannerCursor < len(rows)-1 {
			m.PlannerCursor++
		}
	case "k", "up":
		if m.PlannerCursor > 0 {
			m.PlannerCursor--
		}
	case " ", "enter":
		if task, ok := m.selectedPlannerTask(); ok {
			m.toggleTask(task.ID)
		}
	case "x", "delete":
		if task, ok := m.selectedPlannerTask(); ok {
			m.deleteTask(task)
		}
	case "J", "shift+down":
		m.movePlannerRow(rows, m.PlannerCursor, m.PlannerCursor+1)
	case "K", "shift+up":
		m.movePlannerRow(rows, m.PlannerCursor, m.PlannerCursor-1)
	case "f":
		m.PlannerFilter.Subject = nextOption(m.PlannerFilter.Subject, append([]string{studyprogress.All}, studyprogress.Subjects(m.state.Tasks)...))
		m.PlannerCursor = 0
		m.Status = StatusBar{Text: "Fach: " + m.PlannerFilter.Subject}
	case "s":
		m.PlannerFilter.Status = nextOption(m.PlannerFilter.Status, []string{studyprogress.All, string(model.StatusOpen), string(model.StatusDone)})
		m.PlannerCursor = 0
		m.Status = StatusBar{Text: "Status: " + m.PlannerFilter.Status}
	case "o":
		if m.PlannerFilter.Sort == studyprogress.SortByDate {
			m.PlannerFilter.Sort = studyprogress.SortByPriority
		} else {
			m.PlannerFilter.Sort = studyprogress.SortByDate
		}
		m.Status = StatusBar{Text: "Sortierung: " + string(m.PlannerFilter.Sort)}
	}
	m.clampCursors()
	m.syncBubbleData()
	return m
}

// movePlannerRow drags a visible row. Sorted views are re-sorted on every
// render, so the stored order only shows up with sorting off.
func (m *Model) movePlannerRow(rows []model.Task, from, to int) {
	if to < 0 || to >= len(rows) || from == to {
		return
	}
	if m.PlannerFilter.Sort != studyprogress.SortNone {
		m.PlannerFilter.Sort = studyprogress.SortNone
	}
	if err := m.svc.MoveTask(m.ctx(), rows, from, to); err != nil {
		m.fail(err)
		return
	}
	m.PlannerCursor = to
	m.refresh()
	m.Status = StatusBar{Text: "Reihenfolge gespeichert"}
}

func (m *Model) toggleTask(id string) {
	task, err := m.svc.ToggleTask(m.ctx(), id)
	if err != nil {
		m.fail(err)
		return
	}
	m.refresh()
	m.Status = StatusBar{Text: fmt.Sprintf("%s: %s", task.Subject, task.Status)}
}

func (m *Model) deleteTask(task model.Task) {
	if err := m.svc.DeleteTask(m.ctx(), task.ID); err != nil {
		m.fail(err)
		return
	}
	m.refresh()
	m.Status = StatusBar{Text: "Aufgabe gelöscht: " + task.Subject}
}

func nextOption(current string, options []string) string {
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}
