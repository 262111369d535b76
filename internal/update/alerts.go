package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studyboard/internal/scheduler"
)

const alertLogLimit = 20

// rearmAlerts replans every exam alert from the current snapshot.
func (m *Model) rearmAlerts() {
	if m.Scheduler == nil {
		return
	}
	if err := m.Scheduler.Replace(scheduler.PlanExamAlerts(m.state.Exams, m.svc.Now(), m.alertTimes)); err != nil {
		m.log.Warnw("exam alerts not armed", "error", err)
	}
}

func (m *Model) applyAlert(a scheduler.Alert) {
	m.AlertLog = append(m.AlertLog, a)
	if len(m.AlertLog) > alertLogLimit {
		m.AlertLog = m.AlertLog[len(m.AlertLog)-alertLogLimit:]
	}
	for _, e := range m.state.Exams {
		if e.ID == a.ExamID {
			m.Status = StatusBar{Text: a.Message(), IsError: a.Kind == scheduler.AlertDay}
			m.notify("Prüfung", a.Message(), "warn")
			return
		}
	}
	m.log.Debugw("alert for removed exam ignored", "exam_id", a.ExamID)
}

func waitForAlertCmd(ch <-chan scheduler.Alert) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		a, ok := <-ch
		if !ok {
			return nil
		}
		return AlertDueMsg{Alert: a}
	}
}
