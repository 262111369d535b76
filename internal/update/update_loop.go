package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studyboard/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	if m.Scheduler != nil {
		cmds = append(cmds, waitForAlertCmd(m.Scheduler.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}

		switch typed.String() {
		case "/", ":":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Dashboard:
			m.CurrentView = ViewDashboard
			return m, nil
		case m.Keys.Planner:
			m.CurrentView = ViewPlanner
			m.syncBubbleData()
			return m, nil
		case m.Keys.Exams:
			m.CurrentView = ViewExams
			return m, nil
		case m.Keys.Study:
			m.CurrentView = ViewStudy
			return m, nil
		case "tab":
			m.CurrentView = viewOrder[(m.viewIndex()+1)%len(viewOrder)]
			m.syncBubbleData()
			return m, nil
		case m.Keys.Theme:
			m.cycleTheme()
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewDashboard:
			return m.handleDashboardKey(typed), nil
		case ViewPlanner:
			return m.handlePlannerKey(typed), nil
		case ViewExams:
			return m.handleExamsKey(typed), nil
		case ViewStudy:
			return m.handleStudyKey(typed)
		}
	case TickMsg:
		m.Now = typed.At
		return m, tickCmd()
	case spinner.TickMsg:
		if m.Focus.Running() {
			var cmd tea.Cmd
			m.focusSpinner, cmd = m.focusSpinner.Update(typed)
			return m, cmd
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
			m.syncBubbleData()
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Fehler", typed.Err.Error(), "error")
		}
		return m, nil
	case AlertDueMsg:
		m.applyAlert(typed.Alert)
		if m.Scheduler != nil {
			return m, waitForAlertCmd(m.Scheduler.C())
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) Model {
	due := m.dueToday()
	switch msg.String() {
	case "j", "down":
		if m.DashCursor < len(due)-1 {
			m.DashCursor++
		}
	case "k", "up":
		if m.DashCursor > 0 {
			m.DashCursor--
		}
	case " ", "enter":
		if m.DashCursor < len(due) {
			m.toggleTask(due[m.DashCursor].ID)
		}
	}
	m.clampCursors()
	return m
}

func (m *Model) cycleTheme() {
	if err := m.svc.SetTheme(m.ctx(), nextTheme(m.state.Theme)); err != nil {
		m.fail(err)
		return
	}
	m.refresh()
	m.Status = StatusBar{Text: "Theme: " + string(m.state.Theme)}
}

func (m *Model) fail(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.log.Warnw("action failed", "view", string(m.CurrentView), "error", err)
}

func (m Model) viewIndex() int {
	for i, v := range viewOrder {
		if v == m.CurrentView {
			return i
		}
	}
	return 0
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewDashboard:
		leftPane = m.renderDashboard()
	case ViewPlanner:
		leftPane = m.renderPlanner()
		rightPane = m.renderTaskDetail()
	case ViewExams:
		leftPane = m.renderExams()
	case ViewStudy:
		leftPane = m.renderStudy()
	}
	rightPane = strings.TrimSpace(strings.Join([]string{rightPane, m.renderCommandPalette(), m.renderHelpIfVisible()}, "\n\n"))

	tabs := make([]string, 0, len(viewOrder))
	for i, v := range viewOrder {
		tabs = append(tabs, fmt.Sprintf("%d %s", i+1, v))
	}

	return views.RenderApp(m.styles, views.AppData{
		Header:       fmt.Sprintf("studyboard | Level %d | %d XP | theme: %s", m.svc.Store().Level(), m.state.XP, m.state.Theme),
		Tabs:         tabs,
		ActiveTab:    m.viewIndex(),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: m.renderNotificationsView(),
		Footer: fmt.Sprintf("keys: %s-%s views | tab next | / cmd | %s theme | %s help | %s quit",
			m.Keys.Dashboard, m.Keys.Study, m.Keys.Theme, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewDashboard, ViewPlanner, ViewExams, ViewStudy:
		return true
	default:
		return false
	}
}
