package calendar

import (
	"testing"
	"time"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	out, err := ParseDate(s, time.UTC)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return out
}

func TestTodayAtHasNoClock(t *testing.T) {
	now := time.Date(2026, 2, 9, 23, 59, 0, 0, time.UTC)
	if got := TodayAt(now); got != "2026-02-09" {
		t.Fatalf("unexpected today: %q", got)
	}
}

func TestDaysUntilToday(t *testing.T) {
	got, err := DaysUntil(Today())
	if err != nil {
		t.Fatalf("days until: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected 0 days until today, got %d", got)
	}
}

func TestDaysUntilFrom(t *testing.T) {
	now := time.Date(2026, 2, 9, 18, 30, 0, 0, time.UTC)
	cases := []struct {
		date string
		want int
	}{
		{"2026-02-09", 0},
		{"2026-02-10", 1},
		{"2026-03-01", 20},
		{"2026-02-01", -8},
	}
	for _, tc := range cases {
		got, err := DaysUntilFrom(now, tc.date)
		if err != nil {
			t.Fatalf("days until %s: %v", tc.date, err)
		}
		if got != tc.want {
			t.Fatalf("days until %s = %d, want %d", tc.date, got, tc.want)
		}
	}
}

func TestDaysUntilAcrossDSTShift(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tz data unavailable: %v", err)
	}
	now := time.Date(2026, 3, 28, 12, 0, 0, 0, berlin)
	got, err := DaysUntilFrom(now, "2026-03-30")
	if err != nil {
		t.Fatalf("days until: %v", err)
	}
	if got != 2 {
		t.Fatalf("expected 2 days across DST change, got %d", got)
	}
}

func TestDaysUntilRejectsMalformedDate(t *testing.T) {
	if _, err := DaysUntilFrom(time.Now(), "tomorrow"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestStartOfWeekIsMonday(t *testing.T) {
	// 2026-02-09 is a Monday.
	for offset := 0; offset < 14; offset++ {
		ref := time.Date(2026, 2, 9+offset, 15, 4, 5, 0, time.UTC)
		start := StartOfWeek(ref)
		if start.Weekday() != time.Monday {
			t.Fatalf("start of week for %s is %s", ref.Format(DateLayout), start.Weekday())
		}
		if start.Hour() != 0 || start.Minute() != 0 || start.Nanosecond() != 0 {
			t.Fatalf("start of week has clock: %s", start)
		}
		if start.After(ref) || ref.Sub(start) >= 7*24*time.Hour {
			t.Fatalf("start %s not within a week before %s", start, ref)
		}
	}
}

func TestStartOfWeekTreatsSundayAsLastDay(t *testing.T) {
	sunday := time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC)
	if got := StartOfWeek(sunday).Format(DateLayout); got != "2026-02-09" {
		t.Fatalf("expected Monday 2026-02-09 for Sunday, got %s", got)
	}
}

func TestEndOfWeekSpan(t *testing.T) {
	ref := time.Date(2026, 2, 11, 9, 0, 0, 0, time.UTC)
	span := EndOfWeek(ref).Sub(StartOfWeek(ref))
	want := 6*24*time.Hour + 23*time.Hour + 59*time.Minute + 59*time.Second + 999*time.Millisecond
	if span != want {
		t.Fatalf("unexpected week span: %s", span)
	}
}

func TestInSameWeek(t *testing.T) {
	ref := time.Date(2026, 2, 11, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		date string
		want bool
	}{
		{"2026-02-11", true},
		{"2026-02-09", true},
		{"2026-02-15", true},
		{"2026-02-08", false},
		{"2026-02-16", false},
		{"2026-02-19", false},
	}
	for _, tc := range cases {
		got, err := InSameWeek(tc.date, ref)
		if err != nil {
			t.Fatalf("in same week %s: %v", tc.date, err)
		}
		if got != tc.want {
			t.Fatalf("InSameWeek(%s) = %v, want %v", tc.date, got, tc.want)
		}
	}
	if !InWeekOf(mustDate(t, "2026-02-11"), ref) {
		t.Fatal("expected ref day in its own week")
	}
}

func TestWeekDays(t *testing.T) {
	days := WeekDays(time.Date(2026, 2, 12, 0, 0, 0, 0, time.UTC))
	if len(days) != 7 || days[0] != "2026-02-09" || days[6] != "2026-02-15" {
		t.Fatalf("unexpected week days: %v", days)
	}
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2026-02-27", 2)
	if err != nil {
		t.Fatalf("add days: %v", err)
	}
	if got != "2026-03-01" {
		t.Fatalf("unexpected date: %s", got)
	}
}
