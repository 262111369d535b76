package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/studyboard/internal/model"
	studyprogress "github.com/sandeepkv93/studyboard/internal/progress"
	"github.com/sandeepkv93/studyboard/internal/timer"
	"github.com/sandeepkv93/studyboard/internal/views"
)

const dashboardExamCount = 3

func (m Model) dueToday() []model.Task {
	return studyprogress.DueToday(m.state.Tasks, m.Now)
}

func taskRow(i int, t model.Task, selected bool) views.TaskRow {
	names := make([]string, 0, len(t.Attachments))
	for _, a := range t.Attachments {
		names = append(names, a.Name)
	}
	return views.TaskRow{
		Index:       i + 1,
		ID:          t.ID,
		Subject:     t.Subject,
		Description: t.Description,
		Due:         t.Due,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		Done:        t.IsDone(),
		Selected:    selected,
		Attachments: names,
	}
}

func (m Model) examCard(e model.Exam, dashboard bool) views.ExamCard {
	card := views.ExamCard{Subject: e.Subject, Title: e.Title(), Date: e.Date}
	if r, err := timer.Countdown(e.Date, m.Now); err == nil {
		card.Days, card.Hours = r.Days, r.Hours
		card.Countdown = fmt.Sprintf("%dd %02dh %02dm %02ds", r.Days, r.Hours, r.Minutes, r.Seconds)
	}
	days := m.daysUntil(e.Date)
	if !dashboard {
		card.Days = days
	}
	readiness := studyprogress.Readiness(days)
	if dashboard {
		readiness = studyprogress.CardReadiness(card.Days)
	}
	card.BarView = views.Bar(readiness, 20)
	return card
}

func (m Model) renderDashboard() string {
	due := m.dueToday()
	rows := make([]views.TaskRow, 0, len(due))
	for i, t := range due {
		rows = append(rows, taskRow(i, t, i == m.DashCursor))
	}
	done, total := studyprogress.WeekCompletion(m.state.Tasks, m.Now)
	nextIn := "-"
	if days, ok := studyprogress.DaysToNextExam(m.state.Exams, m.Now); ok {
		nextIn = fmt.Sprintf("%d Tagen", days)
	}
	cards := make([]views.ExamCard, 0, dashboardExamCount)
	for _, e := range studyprogress.NextExams(m.state.Exams, dashboardExamCount) {
		cards = append(cards, m.examCard(e, true))
	}
	return views.RenderDashboard(m.styles, views.DashboardData{
		Level:        m.svc.Store().Level(),
		XP:           m.state.XP,
		LevelBarView: m.levelBar.ViewAs(m.svc.Store().LevelProgress()),
		DueToday:     rows,
		WeekDone:     done,
		WeekTotal:    total,
		NextExamIn:   nextIn,
		NextExams:    cards,
	})
}

func (m Model) renderPlanner() string {
	tasks := m.plannerRows()
	rows := make([]views.TaskRow, 0, len(tasks))
	for i, t := range tasks {
		rows = append(rows, taskRow(i, t, i == m.PlannerCursor))
	}
	history := studyprogress.WeekHistory(m.state.StudySessions, m.Now)
	bars := make([]views.DayBar, 0, len(history))
	for _, d := range history {
		bars = append(bars, views.DayBar{Label: d.Label, Minutes: d.Minutes, Fill: d.Fill()})
	}
	week := studyprogress.WeekMinutes(m.state.StudySessions, m.Now)
	sortLabel := string(m.PlannerFilter.Sort)
	if sortLabel == "" {
		sortLabel = "manuell"
	}
	return views.RenderPlanner(m.styles, views.PlannerData{
		FilterLabel: fmt.Sprintf("Fach: %s | Status: %s | Sortierung: %s", m.PlannerFilter.Subject, m.PlannerFilter.Status, sortLabel),
		Rows:        rows,
		WeekMinutes: week,
		GoalBarView: m.goalBar.ViewAs(studyprogress.GoalRatio(week)),
		History:     bars,
	})
}

func (m Model) renderTaskDetail() string {
	task, ok := m.selectedPlannerTask()
	if !ok {
		return views.RenderTaskDetail(m.styles, views.TaskDetailData{})
	}
	return views.RenderTaskDetail(m.styles, views.TaskDetailData{
		Row:          taskRow(m.PlannerCursor, task, true),
		NotesView:    m.notesViewport.View(),
		HasSelection: true,
	})
}

func (m Model) renderExams() string {
	exams := m.sortedExams()
	cards := make([]views.ExamCard, 0, len(exams))
	for i, e := range exams {
		card := m.examCard(e, false)
		card.Selected = i == m.ExamCursor
		cards = append(cards, card)
	}
	return views.RenderExams(m.styles, views.ExamsData{TableView: m.examTable.View(), Cards: cards})
}

func (m Model) renderStudy() string {
	recent := studyprogress.RecentSessions(m.state.StudySessions)
	rows := make([]views.SessionRow, 0, len(recent))
	for _, s := range recent {
		rows = append(rows, views.SessionRow{Date: s.Date, Subject: s.Subject, Minutes: s.Minutes})
	}
	last7 := studyprogress.LastSevenDaysMinutes(m.state.StudySessions, m.Now)
	return views.RenderStudy(m.styles, views.StudyData{
		Running:      m.Focus.Running(),
		SpinnerView:  m.focusSpinner.View(),
		Clock:        timer.Clock(m.focusElapsed()),
		LastSevenMin: last7,
		GoalBarView:  m.goalBar.ViewAs(studyprogress.GoalRatio(last7)),
		Recent:       rows,
	})
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		if err := m.notifier.Send(n); err != nil {
			m.log.Debugw("desktop notification failed", "error", err)
		}
	}
}
