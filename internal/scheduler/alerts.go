package scheduler

import (
	"time"

	"github.com/sandeepkv93/studyboard/internal/calendar"
	"github.com/sandeepkv93/studyboard/internal/model"
)

type AlertKind string

const (
	// AlertEve fires the evening before the exam.
	AlertEve AlertKind = "eve"
	// AlertDay fires on the morning of the exam.
	AlertDay AlertKind = "day"
)

type Alert struct {
	ID        string
	ExamID    string
	Kind      AlertKind
	Subject   string
	Title     string
	Date      string
	TriggerAt time.Time
}

// AlertTimes holds the local clock times alerts are planned for.
type AlertTimes struct {
	Eve time.Duration
	Day time.Duration
}

var DefaultAlertTimes = AlertTimes{Eve: 18 * time.Hour, Day: 7 * time.Hour}

// PlanExamAlerts returns the alerts still ahead of now for exams, in now's
// location. Exams with an unparsable date are skipped.
func PlanExamAlerts(exams []model.Exam, now time.Time, at AlertTimes) []Alert {
	out := make([]Alert, 0, len(exams)*2)
	for _, ex := range exams {
		day, err := calendar.ParseDate(ex.Date, now.Location())
		if err != nil {
			continue
		}
		y, m, d := day.Date()
		eve := time.Date(y, m, d-1, 0, 0, 0, 0, day.Location()).Add(at.Eve)
		morning := time.Date(y, m, d, 0, 0, 0, 0, day.Location()).Add(at.Day)
		for _, a := range []Alert{
			{Kind: AlertEve, TriggerAt: eve},
			{Kind: AlertDay, TriggerAt: morning},
		} {
			if !a.TriggerAt.After(now) {
				continue
			}
			a.ID = ex.ID + ":" + string(a.Kind)
			a.ExamID = ex.ID
			a.Subject = ex.Subject
			a.Title = ex.Title()
			a.Date = ex.Date
			out = append(out, a)
		}
	}
	return out
}

// Message is the notification line shown for a.
func (a Alert) Message() string {
	label := a.Title
	if a.Subject != "" {
		label = a.Subject + ": " + a.Title
	}
	if a.Kind == AlertEve {
		return "Morgen Prüfung: " + label
	}
	return "Heute Prüfung: " + label
}
