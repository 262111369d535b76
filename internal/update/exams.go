package update

import (
	"sort"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studyboard/internal/calendar"
	"github.com/sandeepkv93/studyboard/internal/model"
)

func (m Model) sortedExams() []model.Exam {
	out := append([]model.Exam(nil), m.state.Exams...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func (m Model) selectedExam() (model.Exam, bool) {
	exams := m.sortedExams()
	if len(exams) == 0 || m.ExamCursor >= len(exams) {
		return model.Exam{}, false
	}
	return exams[m.ExamCursor], true
}

// daysUntil is floored at zero; unparsable dates count as zero.
func (m Model) daysUntil(date string) int {
	d, err := calendar.DaysUntilFrom(m.Now, date)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

func (m Model) handleExamsKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "j", "down":
		if m.ExamCursor < len(m.state.Exams)-1 {
			m.ExamCursor++
		}
	case "k", "up":
		if m.ExamCursor > 0 {
			m.ExamCursor--
		}
	case "x", "delete":
		if exam, ok := m.selectedExam(); ok {
			if err := m.svc.DeleteExam(m.ctx(), exam.ID); err != nil {
				m.fail(err)
				return m
			}
			if m.Scheduler != nil {
				m.Scheduler.Cancel(exam.ID)
			}
			m.refresh()
			m.Status = StatusBar{Text: "Prüfung gelöscht: " + exam.Subject}
		}
	}
	m.clampCursors()
	m.syncBubbleData()
	return m
}
