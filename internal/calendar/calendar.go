// Package calendar holds the calendar-day arithmetic used across studyboard.
// Dates are ISO strings (YYYY-MM-DD) interpreted in the location of the
// reference time, and weeks start on Monday.
package calendar

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

const lastMillisecond = 999 * time.Millisecond

// Today returns the current local calendar date.
func Today() string {
	return TodayAt(time.Now())
}

// TodayAt returns now's calendar date in now's own location.
func TodayAt(now time.Time) string {
	return now.Format(DateLayout)
}

func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("calendar: invalid date %q: %w", s, err)
	}
	return t, nil
}

func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays shifts an ISO date by n calendar days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date, time.UTC)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(DateLayout), nil
}

// DaysUntil counts whole calendar days from today to date.
func DaysUntil(date string) (int, error) {
	return DaysUntilFrom(time.Now(), date)
}

// DaysUntilFrom counts whole calendar days between now's date and date:
// zero for the same day, negative for past dates. The count is taken on
// calendar days, so a DST shift between the two midnights does not move it.
func DaysUntilFrom(now time.Time, date string) (int, error) {
	target, err := ParseDate(date, now.Location())
	if err != nil {
		return 0, err
	}
	return daysBetween(now, target), nil
}

func daysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}

// StartOfWeek returns Monday 00:00 of ref's week. Sunday belongs to the
// week that started six days earlier.
func StartOfWeek(ref time.Time) time.Time {
	day := int(ref.Weekday())
	if day == 0 {
		day = 7
	}
	y, m, d := ref.Date()
	return time.Date(y, m, d-day+1, 0, 0, 0, 0, ref.Location())
}

// EndOfWeek returns Sunday 23:59:59.999 of ref's week.
func EndOfWeek(ref time.Time) time.Time {
	s := StartOfWeek(ref)
	y, m, d := s.Date()
	return time.Date(y, m, d+6, 23, 59, 59, int(lastMillisecond), s.Location())
}

// InSameWeek reports whether date lies within ref's week, bounds included.
func InSameWeek(date string, ref time.Time) (bool, error) {
	t, err := ParseDate(date, ref.Location())
	if err != nil {
		return false, err
	}
	return InWeekOf(t, ref), nil
}

func InWeekOf(t, ref time.Time) bool {
	return !t.Before(StartOfWeek(ref)) && !t.After(EndOfWeek(ref))
}

// WeekDays lists the dates of ref's week, Monday first.
func WeekDays(ref time.Time) []string {
	start := StartOfWeek(ref)
	out := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		out = append(out, start.AddDate(0, 0, i).Format(DateLayout))
	}
	return out
}
