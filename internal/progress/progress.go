// Package progress derives the dashboard, planner and study figures from a
// state snapshot. Every query takes the reference time explicitly.
package progress

import (
	"math"
	"sort"
	"time"

	"github.com/sandeepkv93/studyboard/internal/calendar"
	"github.com/sandeepkv93/studyboard/internal/model"
)

const (
	// WeekGoalMinutes is the weekly study target behind GoalRatio.
	WeekGoalMinutes = 300
	// DayBarMinutes fills one weekday bar in the study history.
	DayBarMinutes = 120
	// ReadinessHorizonDays shapes the exam readiness curve.
	ReadinessHorizonDays = 14
)

var WeekdayLabels = [7]string{"Mo", "Di", "Mi", "Do", "Fr", "Sa", "So"}

// DueToday returns the open tasks due on now's date, in stored order.
func DueToday(tasks []model.Task, now time.Time) []model.Task {
	today := calendar.TodayAt(now)
	out := make([]model.Task, 0)
	for _, t := range tasks {
		if t.Due == today && !t.IsDone() {
			out = append(out, t)
		}
	}
	return out
}

// WeekTasks returns the tasks whose due date falls in now's week.
// Tasks with an unparsable due date are skipped.
func WeekTasks(tasks []model.Task, now time.Time) []model.Task {
	out := make([]model.Task, 0)
	for _, t := range tasks {
		ok, err := calendar.InSameWeek(t.Due, now)
		if err == nil && ok {
			out = append(out, t)
		}
	}
	return out
}

// WeekCompletion reports done and total for the week's tasks. total is at
// least 1 so the pair can be rendered as a ratio.
func WeekCompletion(tasks []model.Task, now time.Time) (done, total int) {
	week := WeekTasks(tasks, now)
	for _, t := range week {
		if t.IsDone() {
			done++
		}
	}
	total = len(week)
	if total == 0 {
		total = 1
	}
	return done, total
}

// NextExams returns up to n exams ordered by date. Past exams are kept,
// matching the dashboard list.
func NextExams(exams []model.Exam, n int) []model.Exam {
	sorted := append([]model.Exam(nil), exams...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// DaysToNextExam returns the days until the earliest exam, floored at zero.
// ok is false when there are no exams.
func DaysToNextExam(exams []model.Exam, now time.Time) (days int, ok bool) {
	next := NextExams(exams, 1)
	if len(next) == 0 {
		return 0, false
	}
	d, err := calendar.DaysUntilFrom(now, next[0].Date)
	if err != nil {
		return 0, false
	}
	return max(0, d), true
}

// Readiness is the exam list bar: it falls linearly to zero over the last
// ReadinessHorizonDays.
func Readiness(days int) float64 {
	return math.Max(0, 1-float64(max(0, days))/ReadinessHorizonDays)
}

// CardReadiness is the dashboard card bar. It approaches zero for distant
// exams but never reaches it.
func CardReadiness(days int) float64 {
	days = max(0, days)
	return math.Max(0, 1-float64(days)/float64(max(1, days+ReadinessHorizonDays)))
}

// WeekMinutes sums the sessions logged in now's week.
func WeekMinutes(sessions []model.StudySession, now time.Time) int {
	total := 0
	for _, s := range sessions {
		ok, err := calendar.InSameWeek(s.Date, now)
		if err == nil && ok {
			total += s.Minutes
		}
	}
	return total
}

// LastSevenDaysMinutes sums the sessions dated today or in the six days before.
func LastSevenDaysMinutes(sessions []model.StudySession, now time.Time) int {
	total := 0
	for _, s := range sessions {
		d, err := calendar.DaysUntilFrom(now, s.Date)
		if err != nil {
			continue
		}
		if d <= 0 && d > -7 {
			total += s.Minutes
		}
	}
	return total
}

// DayMinutes is one bar of the weekly history.
type DayMinutes struct {
	Label   string
	Date    string
	Minutes int
}

// Fill is the bar height in [0,1].
func (d DayMinutes) Fill() float64 {
	return math.Min(1, float64(d.Minutes)/DayBarMinutes)
}

// WeekHistory returns the minutes per day of now's week, Monday first.
func WeekHistory(sessions []model.StudySession, now time.Time) []DayMinutes {
	byDate := make(map[string]int, len(sessions))
	for _, s := range sessions {
		byDate[s.Date] += s.Minutes
	}
	days := calendar.WeekDays(now)
	out := make([]DayMinutes, 0, len(days))
	for i, date := range days {
		out = append(out, DayMinutes{Label: WeekdayLabels[i], Date: date, Minutes: byDate[date]})
	}
	return out
}

// GoalRatio is the share of WeekGoalMinutes reached, capped at 1.
func GoalRatio(minutes int) float64 {
	if minutes <= 0 {
		return 0
	}
	return math.Min(1, float64(minutes)/WeekGoalMinutes)
}

// RecentSessions returns the sessions newest first by insertion order.
func RecentSessions(sessions []model.StudySession) []model.StudySession {
	out := make([]model.StudySession, len(sessions))
	for i, s := range sessions {
		out[len(sessions)-1-i] = s
	}
	return out
}
