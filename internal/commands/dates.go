package commands

import (
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/studyboard/internal/calendar"
)

// IsDateToken accepts an ISO date, today/heute, tomorrow/morgen or +N days.
func IsDateToken(s string) bool {
	_, err := ResolveDate(s, time.Now())
	return err == nil
}

// ResolveDate turns a date token into an ISO date relative to now.
func ResolveDate(s string, now time.Time) (string, error) {
	token := strings.ToLower(strings.TrimSpace(s))
	switch token {
	case "", "today", "heute":
		return calendar.TodayAt(now), nil
	case "tomorrow", "morgen":
		return calendar.TodayAt(now.AddDate(0, 0, 1)), nil
	}
	if strings.HasPrefix(token, "+") {
		n, err := strconv.Atoi(strings.TrimSuffix(token[1:], "d"))
		if err != nil || n < 0 {
			return "", invalid("unknown relative date %q", s)
		}
		return calendar.AddDays(calendar.TodayAt(now), n)
	}
	if _, err := calendar.ParseDate(token, now.Location()); err != nil {
		return "", invalid("unknown date %q", s)
	}
	return token, nil
}
