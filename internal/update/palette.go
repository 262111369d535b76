package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studyboard/internal/commands"
	"github.com/sandeepkv93/studyboard/internal/model"
	studyprogress "github.com/sandeepkv93/studyboard/internal/progress"
	"github.com/sandeepkv93/studyboard/internal/tracker"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	case "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	defer m.log.Debugw("palette command", "input", raw)

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.closePalette()
		return m, nil
	}

	var follow tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			due, err := m.resolveDate(a.Due)
			if err != nil {
				return commands.Result{}, err
			}
			in := tracker.TaskInput{Subject: a.Subject, Description: a.Description, Due: due, Priority: a.Priority}
			if a.Done {
				in.Status = model.StatusDone
			}
			task, err := m.svc.AddTask(m.ctx(), in)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("Aufgabe angelegt: %s (%s)", task.Subject, task.Due)}, nil
		},
		Exam: func(a commands.ExamArgs) (commands.Result, error) {
			date, err := m.resolveDate(a.Date)
			if err != nil {
				return commands.Result{}, err
			}
			exam, err := m.svc.AddExam(m.ctx(), tracker.ExamInput{Subject: a.Subject, Date: date, Topic: a.Topic})
			if err != nil {
				return commands.Result{}, err
			}
			m.CurrentView = ViewExams
			return commands.Result{Message: fmt.Sprintf("Prüfung eingetragen: %s am %s", exam.Subject, exam.Date)}, nil
		},
		Log: func(a commands.LogArgs) (commands.Result, error) {
			date, err := m.resolveDate(a.Date)
			if err != nil {
				return commands.Result{}, err
			}
			sess, err := m.svc.LogSession(m.ctx(), tracker.SessionInput{Subject: a.Subject, Minutes: a.Minutes, Date: date})
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("Lernsitzung: %d min %s (+%d XP)", sess.Minutes, sess.Subject, tracker.XPManualSession)}, nil
		},
		Done: func(a commands.DoneArgs) (commands.Result, error) {
			id, err := m.resolveTask(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			task, err := m.svc.ToggleTask(m.ctx(), id)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("%s: %s", task.Subject, task.Status)}, nil
		},
		Remove: func(a commands.RemoveArgs) (commands.Result, error) {
			return m.remove(a)
		},
		Theme: func(a commands.ThemeArgs) (commands.Result, error) {
			next := a.Theme
			if next == "" {
				next = nextTheme(m.state.Theme)
			}
			if err := m.svc.SetTheme(m.ctx(), next); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "Theme: " + string(next)}, nil
		},
		Export: func(a commands.ExportArgs) (commands.Result, error) {
			dir := a.Dir
			if dir == "" {
				dir = m.backupDir
			}
			path, err := m.svc.ExportFile(dir)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "Backup exportiert: " + path}, nil
		},
		Import: func(a commands.ImportArgs) (commands.Result, error) {
			if _, err := m.svc.ImportFile(m.ctx(), a.Path); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "Backup importiert!"}, nil
		},
		Focus: func(a commands.FocusArgs) (commands.Result, error) {
			m.CurrentView = ViewStudy
			running := m.Focus.Running()
			switch {
			case a.Action == commands.FocusCancel && running:
				m.Focus.Discard()
				return commands.Result{Message: "Fokus verworfen"}, nil
			case (a.Action == commands.FocusStop || a.Action == commands.FocusToggle) && running:
				session, err := m.Focus.Stop(m.svc.Now())
				if err != nil {
					return commands.Result{}, err
				}
				if err := m.svc.CommitFocus(m.ctx(), session); err != nil {
					return commands.Result{}, err
				}
				return commands.Result{Message: fmt.Sprintf("Fokus gespeichert: %d min (+%d XP)", session.Minutes, tracker.XPFocusSession)}, nil
			case (a.Action == commands.FocusStart || a.Action == commands.FocusToggle) && !running:
				m.Focus.Start(m.svc.Now())
				follow = m.focusSpinner.Tick
				return commands.Result{Message: "Fokus läuft"}, nil
			}
			return commands.Result{Message: "Fokus unverändert"}, nil
		},
	})
	if err != nil {
		m.fail(err)
		m.notify("Befehl fehlgeschlagen", err.Error(), "error")
	} else {
		m.refresh()
		if cmd.Type == commands.TypeExam || cmd.Type == commands.TypeImport || cmd.Type == commands.TypeRemove {
			m.rearmAlerts()
		}
		m.Status = StatusBar{Text: res.Message}
		m.notify("Befehl", res.Message, "info")
	}

	m.closePalette()
	return m, follow
}

func (m Model) resolveDate(token string) (string, error) {
	if token == "" {
		return "", nil
	}
	return commands.ResolveDate(token, m.svc.Now())
}

// resolveTask maps a row number onto the list shown in the current view.
func (m Model) resolveTask(t commands.Target) (string, error) {
	if t.ID != "" {
		return t.ID, nil
	}
	rows := m.plannerRows()
	if m.CurrentView == ViewDashboard {
		rows = m.dueToday()
	}
	if t.Index < 1 || t.Index > len(rows) {
		return "", &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task row %d", t.Index)}
	}
	return rows[t.Index-1].ID, nil
}

func (m Model) remove(a commands.RemoveArgs) (commands.Result, error) {
	outOfRange := &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no %s row %d", a.Kind, a.Target.Index)}
	switch a.Kind {
	case commands.RemoveExam:
		id := a.Target.ID
		if id == "" {
			exams := m.sortedExams()
			if a.Target.Index < 1 || a.Target.Index > len(exams) {
				return commands.Result{}, outOfRange
			}
			id = exams[a.Target.Index-1].ID
		}
		if err := m.svc.DeleteExam(m.ctx(), id); err != nil {
			return commands.Result{}, err
		}
		return commands.Result{Message: "Prüfung gelöscht"}, nil
	case commands.RemoveSession:
		id := a.Target.ID
		if id == "" {
			recent := studyprogress.RecentSessions(m.state.StudySessions)
			if a.Target.Index < 1 || a.Target.Index > len(recent) {
				return commands.Result{}, outOfRange
			}
			id = recent[a.Target.Index-1].ID
		}
		if err := m.svc.DeleteSession(m.ctx(), id); err != nil {
			return commands.Result{}, err
		}
		return commands.Result{Message: "Lernsitzung gelöscht"}, nil
	default:
		id, err := m.resolveTask(a.Target)
		if err != nil {
			return commands.Result{}, err
		}
		if err := m.svc.DeleteTask(m.ctx(), id); err != nil {
			return commands.Result{}, err
		}
		return commands.Result{Message: "Aufgabe gelöscht"}, nil
	}
}
