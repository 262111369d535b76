package scheduler

import (
	"testing"
	"time"

	"github.com/sandeepkv93/studyboard/internal/model"
)

func TestEngineEmitsInTriggerOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Schedule(Alert{ID: "later", TriggerAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(Alert{ID: "sooner", TriggerAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitAlert(t, engine.C(), time.Second)
	second := waitAlert(t, engine.C(), time.Second)
	if first.ID != "sooner" || second.ID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.ID, second.ID)
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(Alert{ID: "evt", TriggerAt: now}); err != nil {
			t.Fatalf("schedule alert: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped alerts > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidatesTriggerTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(Alert{ID: "bad"}); err != ErrInvalidTriggerTime {
		t.Fatalf("expected ErrInvalidTriggerTime, got %v", err)
	}
}

func TestReplaceAndCancel(t *testing.T) {
	engine := NewEngine(4)
	far := time.Now().Add(time.Hour)
	if err := engine.Schedule(Alert{ID: "old", ExamID: "x", TriggerAt: far}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	err := engine.Replace([]Alert{
		{ID: "a:eve", ExamID: "a", TriggerAt: far},
		{ID: "a:day", ExamID: "a", TriggerAt: far.Add(time.Minute)},
		{ID: "b:day", ExamID: "b", TriggerAt: far},
		{ID: "zero", ExamID: "c"},
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got := engine.Pending(); got != 3 {
		t.Fatalf("pending after replace = %d, want 3", got)
	}
	if got := engine.Cancel("a"); got != 2 {
		t.Fatalf("cancel removed %d, want 2", got)
	}
	if got := engine.Pending(); got != 1 {
		t.Fatalf("pending after cancel = %d, want 1", got)
	}
}

func TestStopClosesChannelAndRejectsSchedule(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	if err := engine.Schedule(Alert{ID: "never", TriggerAt: time.Now().Add(time.Hour)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	engine.Stop()
	engine.Stop()

	select {
	case _, ok := <-engine.C():
		if ok {
			t.Fatal("received an alert after Stop")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after Stop")
	}
	if err := engine.Schedule(Alert{ID: "late", TriggerAt: time.Now()}); err != ErrStopped {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func TestStopWithoutStart(t *testing.T) {
	engine := NewEngine(1)
	engine.Stop()
	if _, ok := <-engine.C(); ok {
		t.Fatal("expected closed channel")
	}
}

func TestPlanExamAlerts(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	exams := []model.Exam{
		{ID: "tomorrow", Subject: "Mathe", Date: "2026-02-10", Topic: "Analysis"},
		{ID: "today", Subject: "Bio", Date: "2026-02-09"},
		{ID: "past", Date: "2026-01-01"},
		{ID: "broken", Date: "bald"},
	}
	alerts := PlanExamAlerts(exams, now, DefaultAlertTimes)
	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d: %+v", len(alerts), alerts)
	}
	eve, day := alerts[0], alerts[1]
	if eve.Kind != AlertEve || !eve.TriggerAt.Equal(time.Date(2026, 2, 9, 18, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected eve alert: %+v", eve)
	}
	if day.Kind != AlertDay || !day.TriggerAt.Equal(time.Date(2026, 2, 10, 7, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected day alert: %+v", day)
	}
	if eve.ID != "tomorrow:eve" || eve.Message() != "Morgen Prüfung: Mathe: Analysis" {
		t.Fatalf("unexpected eve identity: %s %q", eve.ID, eve.Message())
	}
	if day.Message() != "Heute Prüfung: Mathe: Analysis" {
		t.Fatalf("unexpected day message %q", day.Message())
	}
}

func waitAlert(t *testing.T, ch <-chan Alert, timeout time.Duration) Alert {
	t.Helper()
	select {
	case a := <-ch:
		return a
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for alert")
		return Alert{}
	}
}
