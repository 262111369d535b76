// Package timer holds the exam countdown and the focus stopwatch.
package timer

import (
	"time"

	"github.com/sandeepkv93/studyboard/internal/calendar"
)

type Remaining struct {
	Total   time.Duration
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

func (r Remaining) Elapsed() bool { return r.Total <= 0 }

// Countdown splits the time left until midnight at the start of date, in
// now's location. Past targets yield the zero Remaining.
func Countdown(date string, now time.Time) (Remaining, error) {
	target, err := calendar.ParseDate(date, now.Location())
	if err != nil {
		return Remaining{}, err
	}
	return Split(target.Sub(now)), nil
}

func Split(left time.Duration) Remaining {
	if left <= 0 {
		return Remaining{}
	}
	sec := int64(left / time.Second)
	return Remaining{
		Total:   left,
		Days:    int(sec / 86400),
		Hours:   int(sec % 86400 / 3600),
		Minutes: int(sec % 3600 / 60),
		Seconds: int(sec % 60),
	}
}
