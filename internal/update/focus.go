package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleStudyKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case " ", "enter":
		if m.Focus.Running() {
			m.stopFocus()
			return m, nil
		}
		m.startFocus()
		return m, m.focusSpinner.Tick
	case "c":
		if m.Focus.Running() {
			m.Focus.Discard()
			m.Status = StatusBar{Text: "Fokus verworfen"}
		}
	}
	return m, nil
}

func (m *Model) startFocus() {
	m.Focus.Start(m.svc.Now())
	m.Status = StatusBar{Text: "Fokus läuft"}
}

// stopFocus commits the run as a session; the store is untouched until here.
func (m *Model) stopFocus() {
	session, err := m.Focus.Stop(m.svc.Now())
	if err != nil {
		m.fail(err)
		return
	}
	if err := m.svc.CommitFocus(m.ctx(), session); err != nil {
		m.fail(err)
		return
	}
	m.refresh()
	m.Status = StatusBar{Text: fmt.Sprintf("Fokus gespeichert: %d min", session.Minutes)}
}

func (m Model) focusElapsed() time.Duration {
	return m.Focus.Elapsed(m.Now)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return TickMsg{At: t} })
}
