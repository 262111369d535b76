package timer

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sandeepkv93/studyboard/internal/calendar"
	"github.com/sandeepkv93/studyboard/internal/ident"
	"github.com/sandeepkv93/studyboard/internal/model"
)

// FocusSubject is the subject recorded for sessions from the stopwatch.
const FocusSubject = "Fokus"

var ErrNotRunning = errors.New("timer: focus timer is not running")

// Focus is a start/stop stopwatch. It touches no stored state; the session
// returned by Stop has to be committed by the caller.
type Focus struct {
	startedAt time.Time
	running   bool
}

func (f *Focus) Running() bool { return f.running }

// Start begins a run. Starting a running timer keeps the original start.
func (f *Focus) Start(now time.Time) {
	if f.running {
		return
	}
	f.startedAt = now
	f.running = true
}

func (f *Focus) Elapsed(now time.Time) time.Duration {
	if !f.running || now.Before(f.startedAt) {
		return 0
	}
	return now.Sub(f.startedAt)
}

// Stop ends the run and builds the session for it: whole minutes rounded
// half up, at least one, dated on now's calendar day.
func (f *Focus) Stop(now time.Time) (model.StudySession, error) {
	if !f.running {
		return model.StudySession{}, ErrNotRunning
	}
	elapsed := f.Elapsed(now)
	f.running = false
	f.startedAt = time.Time{}
	return model.StudySession{
		ID:      ident.New(),
		Subject: FocusSubject,
		Minutes: SessionMinutes(elapsed),
		Date:    calendar.TodayAt(now),
	}, nil
}

// Discard abandons a run without producing a session.
func (f *Focus) Discard() {
	f.running = false
	f.startedAt = time.Time{}
}

func SessionMinutes(elapsed time.Duration) int {
	secs := math.Floor(elapsed.Seconds())
	return max(1, int(math.Round(secs/60)))
}

// Clock renders an elapsed duration as m:ss.
func Clock(elapsed time.Duration) string {
	secs := int(elapsed / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
