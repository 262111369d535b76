package views

import (
	"fmt"
	"strings"
)

type TaskRow struct {
	Index       int
	ID          string
	Subject     string
	Description string
	Due         string
	Priority    string
	Status      string
	Done        bool
	Selected    bool
	Attachments []string
}

type ExamCard struct {
	Subject   string
	Title     string
	Date      string
	Days      int
	Hours     int
	Countdown string
	BarView   string
	Selected  bool
}

type DashboardData struct {
	Level        int
	XP           int
	LevelBarView string
	DueToday     []TaskRow
	WeekDone     int
	WeekTotal    int
	NextExamIn   string
	NextExams    []ExamCard
}

type DayBar struct {
	Label   string
	Minutes int
	Fill    float64
}

type PlannerData struct {
	FilterLabel string
	Rows        []TaskRow
	WeekMinutes int
	GoalBarView string
	History     []DayBar
}

type TaskDetailData struct {
	Row          TaskRow
	NotesView    string
	HasSelection bool
}

type ExamsData struct {
	TableView string
	Cards     []ExamCard
}

type SessionRow struct {
	Date    string
	Subject string
	Minutes int
}

type StudyData struct {
	Running      bool
	SpinnerView  string
	Clock        string
	LastSevenMin int
	GoalBarView  string
	Recent       []SessionRow
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderDashboard(s Styles, data DashboardData) string {
	var b strings.Builder
	b.WriteString(s.Title.Render(fmt.Sprintf("Level %d", data.Level)) + s.Muted.Render(fmt.Sprintf("  %d XP", data.XP)) + "\n")
	b.WriteString(data.LevelBarView + "\n\n")
	b.WriteString(fmt.Sprintf("Heute fällig: %d | Woche erledigt: %d/%d | Nächste Prüfung in: %s\n\n",
		len(data.DueToday), data.WeekDone, data.WeekTotal, data.NextExamIn))

	b.WriteString(s.Title.Render("Heute anstehend") + "\n")
	if len(data.DueToday) == 0 {
		b.WriteString(s.Muted.Render("Keine Aufgaben heute.") + "\n")
	}
	for _, row := range data.DueToday {
		b.WriteString(renderTaskLine(s, row) + "\n")
	}

	b.WriteString("\n" + s.Title.Render("Nächste Prüfungen") + "\n")
	if len(data.NextExams) == 0 {
		b.WriteString(s.Muted.Render("Keine Einträge") + "\n")
	}
	for _, card := range data.NextExams {
		b.WriteString(renderExamCard(s, card) + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderPlanner(s Styles, data PlannerData) string {
	var b strings.Builder
	b.WriteString(s.Title.Render("Aufgaben") + s.Muted.Render("  "+data.FilterLabel) + "\n")
	if len(data.Rows) == 0 {
		b.WriteString(s.Muted.Render("(keine Aufgaben)") + "\n")
	}
	for _, row := range data.Rows {
		b.WriteString(renderTaskLine(s, row) + "\n")
	}

	b.WriteString("\n" + s.Title.Render("Lernzeiten diese Woche") + "\n")
	b.WriteString(fmt.Sprintf("%d min\n", data.WeekMinutes))
	b.WriteString(data.GoalBarView + "\n")
	for _, day := range data.History {
		b.WriteString(fmt.Sprintf("%s %s %dm\n", day.Label, Bar(day.Fill, 12), day.Minutes))
	}
	return strings.TrimSpace(b.String())
}

func RenderTaskDetail(s Styles, data TaskDetailData) string {
	if !data.HasSelection {
		return "details:\n(no selection)"
	}
	r := data.Row
	var b strings.Builder
	b.WriteString(s.Title.Render(r.Subject) + "\n")
	if r.Description != "" {
		b.WriteString(r.Description + "\n")
	}
	b.WriteString(s.Muted.Render(fmt.Sprintf("Fällig: %s • Prio: %s • Status: %s", r.Due, r.Priority, r.Status)) + "\n")
	b.WriteString(s.Muted.Render("id: "+r.ID) + "\n")
	if len(r.Attachments) > 0 {
		b.WriteString("Anhänge: " + strings.Join(r.Attachments, ", ") + "\n")
	}
	if strings.TrimSpace(data.NotesView) != "" {
		b.WriteString("\nNotizen:\n" + data.NotesView)
	}
	return strings.TrimSpace(b.String())
}

func RenderExams(s Styles, data ExamsData) string {
	var b strings.Builder
	b.WriteString(s.Title.Render("Prüfungen") + "\n")
	if len(data.Cards) == 0 {
		b.WriteString(s.Muted.Render("Keine Einträge"))
		return b.String()
	}
	b.WriteString(data.TableView + "\n\n")
	for _, card := range data.Cards {
		if card.Selected {
			b.WriteString(renderExamCard(s, card) + "\n")
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderStudy(s Styles, data StudyData) string {
	var b strings.Builder
	b.WriteString(s.Title.Render("Fokus") + "\n")
	state := "bereit"
	if data.Running {
		state = data.SpinnerView + " läuft"
	}
	b.WriteString(fmt.Sprintf("Aktuelle Session: %s (%s)\n", data.Clock, state))
	if data.Running {
		b.WriteString(s.Muted.Render("[space] Beenden  [c] Verwerfen") + "\n")
	} else {
		b.WriteString(s.Muted.Render("[space] Ich lerne jetzt") + "\n")
	}

	b.WriteString("\n" + s.Title.Render("Verlauf (letzte 7 Tage)") + "\n")
	b.WriteString(fmt.Sprintf("Gesamt: %d min\n", data.LastSevenMin))
	b.WriteString(data.GoalBarView + "\n")
	for _, row := range data.Recent {
		b.WriteString(fmt.Sprintf("%s — %s  %s\n", row.Date, row.Subject, s.Muted.Render(fmt.Sprintf("%d Minuten", row.Minutes))))
	}
	if len(data.Recent) == 0 {
		b.WriteString(s.Muted.Render("Noch keine Sitzungen. /log <minuten> <fach>") + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "command:\n" + inputView
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func renderTaskLine(s Styles, row TaskRow) string {
	cursor := " "
	if row.Selected {
		cursor = ">"
	}
	check := "[ ]"
	if row.Done {
		check = "[x]"
	}
	title := row.Subject
	if row.Description != "" {
		title += " — " + row.Description
	}
	switch {
	case row.Done:
		title = s.Done.Render(title)
	case row.Selected:
		title = s.Selected.Render(title)
	}
	prio := row.Priority
	switch row.Priority {
	case "hoch":
		prio = s.PrioHigh.Render(prio)
	case "mittel":
		prio = s.PrioMedium.Render(prio)
	default:
		prio = s.PrioLow.Render(prio)
	}
	return fmt.Sprintf("%s %2d %s %s %s %s", cursor, row.Index, check, title, s.Muted.Render(row.Due), prio)
}

func renderExamCard(s Styles, card ExamCard) string {
	when := fmt.Sprintf("in %d Tagen", card.Days)
	if card.Days == 0 {
		when = fmt.Sprintf("in %d Tagen (%dh)", card.Days, card.Hours)
	}
	lines := []string{
		s.Muted.Render(card.Subject) + " " + s.Title.Render(card.Title) + " " + s.Muted.Render(card.Date),
		card.BarView + " " + when,
	}
	if card.Countdown != "" {
		lines = append(lines, s.Muted.Render(card.Countdown))
	}
	return strings.Join(lines, "\n")
}
