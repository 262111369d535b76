package update

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studyboard/internal/model"
	"github.com/sandeepkv93/studyboard/internal/scheduler"
	"github.com/sandeepkv93/studyboard/internal/storage"
	"github.com/sandeepkv93/studyboard/internal/store"
	"github.com/sandeepkv93/studyboard/internal/tracker"
)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func newTestModel(t *testing.T, opts ...Option) (Model, *tracker.Service, *testClock) {
	t.Helper()
	st, err := store.Open(context.Background(), storage.NewMemoryStore())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	clock := &testClock{now: time.Date(2026, 2, 9, 18, 0, 0, 0, time.UTC)}
	svc := tracker.New(st, tracker.WithClock(clock.Now))
	opts = append([]Option{WithPrefersDark(false)}, opts...)
	return NewModel(svc, opts...), svc, clock
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func runPalette(t *testing.T, m Model, input string) Model {
	t.Helper()
	m = press(t, m, "/")
	if !m.Palette.Active {
		t.Fatal("expected palette to open")
	}
	m.commandInput.SetValue(input)
	return press(t, m, "enter")
}

func TestNewModelDefaults(t *testing.T) {
	m, _, _ := newTestModel(t)
	if m.CurrentView != ViewDashboard {
		t.Fatalf("expected default view %q, got %q", ViewDashboard, m.CurrentView)
	}
	if m.PlannerFilter.Subject != "alle" || m.PlannerFilter.Status != "alle" {
		t.Fatalf("unexpected default filter: %#v", m.PlannerFilter)
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
}

func TestUpdateKeySwitchesView(t *testing.T) {
	m, _, _ := newTestModel(t)
	next := press(t, m, "2")
	if next.CurrentView != ViewPlanner {
		t.Fatalf("expected planner view, got %q", next.CurrentView)
	}
	next = press(t, next, "4")
	if next.CurrentView != ViewStudy {
		t.Fatalf("expected study view, got %q", next.CurrentView)
	}
	next = press(t, next, "tab")
	if next.CurrentView != ViewDashboard {
		t.Fatalf("expected tab to wrap to dashboard, got %q", next.CurrentView)
	}
}

func TestUpdateSwitchViewMsg(t *testing.T) {
	m, _, _ := newTestModel(t)
	updated, _ := m.Update(SwitchViewMsg{View: ViewExams})
	next := updated.(Model)
	if next.CurrentView != ViewExams {
		t.Fatalf("expected exams view, got %q", next.CurrentView)
	}

	updated, _ = next.Update(SwitchViewMsg{View: View("Unknown")})
	next = updated.(Model)
	if next.CurrentView != ViewExams {
		t.Fatalf("expected view unchanged for unknown view, got %q", next.CurrentView)
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m, _, _ := newTestModel(t)
	updated, _ := m.Update(SetStatusMsg{Text: "ready"})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %#v", next.Status)
	}

	updated, _ = next.Update(AppErrorMsg{Err: errors.New("boom")})
	next = updated.(Model)
	if !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %#v", next.Status)
	}
	if next.LastError == nil {
		t.Fatal("expected LastError to be recorded")
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" {
		t.Fatalf("expected cleared status, got %q", next.Status.Text)
	}
}

func TestUpdateQuitKey(t *testing.T) {
	m, _, _ := newTestModel(t)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	next := updated.(Model)
	if !next.Quitting {
		t.Fatal("expected quitting to be true")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestViewContainsCoreState(t *testing.T) {
	m, _, _ := newTestModel(t)
	out := m.View()
	for _, want := range []string{"studyboard", "Level 1", "0 XP", "Heute anstehend", "Keine Aufgaben heute."} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected view to contain %q, got:\n%s", want, out)
		}
	}
}

func TestPaletteAddCreatesTask(t *testing.T) {
	m, svc, _ := newTestModel(t)
	m = runPalette(t, m, "add Mathe: Blatt 3 due:morgen prio:hoch")
	if m.Palette.Active {
		t.Fatal("expected palette to close after enter")
	}
	if m.Status.IsError {
		t.Fatalf("unexpected error status: %q", m.Status.Text)
	}
	tasks := svc.State().Tasks
	if len(tasks) != 1 {
		t.Fatalf("expected one task, got %d", len(tasks))
	}
	got := tasks[0]
	if got.Subject != "Mathe" || got.Description != "Blatt 3" || got.Due != "2026-02-10" || got.Priority != model.PriorityHigh {
		t.Fatalf("unexpected task: %#v", got)
	}
}

func TestPaletteUnknownCommandSetsError(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = runPalette(t, m, "fly away")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "unsupported command") {
		t.Fatalf("expected unsupported command error, got %#v", m.Status)
	}
}

func TestPaletteEscCloses(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, "/", "esc")
	if m.Palette.Active {
		t.Fatal("expected palette to close on esc")
	}
}

func TestDashboardToggleDueToday(t *testing.T) {
	m, svc, _ := newTestModel(t)
	m = runPalette(t, m, "add Physik: Versuch")
	m = press(t, m, "1", " ")
	if !svc.State().Tasks[0].IsDone() {
		t.Fatal("expected dashboard space to mark task done")
	}
	if svc.State().XP != 0 {
		t.Fatalf("toggling must not change XP, got %d", svc.State().XP)
	}
}

func TestPlannerToggleAndDelete(t *testing.T) {
	m, svc, _ := newTestModel(t)
	m = runPalette(t, m, "add Mathe: eins")
	m = runPalette(t, m, "add Chemie: zwei")
	m = press(t, m, "2", "j", " ")

	tasks := svc.State().Tasks
	if len(tasks) != 2 {
		t.Fatalf("expected two tasks, got %d", len(tasks))
	}
	var done int
	for _, task := range tasks {
		if task.IsDone() {
			done++
		}
	}
	if done != 1 {
		t.Fatalf("expected one task done, got %d", done)
	}

	m = press(t, m, "x")
	if got := len(svc.State().Tasks); got != 1 {
		t.Fatalf("expected one task after delete, got %d", got)
	}
	if m.PlannerCursor != 0 {
		t.Fatalf("expected cursor clamped to 0, got %d", m.PlannerCursor)
	}
}

func TestPlannerMoveSwitchesToManualOrder(t *testing.T) {
	m, svc, _ := newTestModel(t)
	m = runPalette(t, m, "add A: eins")
	m = runPalette(t, m, "add B: zwei")
	m = press(t, m, "2", "J")

	if m.PlannerFilter.Sort != "" {
		t.Fatalf("expected manual sort after move, got %q", m.PlannerFilter.Sort)
	}
	tasks := svc.State().Tasks
	if tasks[0].Subject != "B" || tasks[1].Subject != "A" {
		t.Fatalf("unexpected order: %s, %s", tasks[0].Subject, tasks[1].Subject)
	}
}

func TestFocusStartStopCommitsSession(t *testing.T) {
	m, svc, clock := newTestModel(t)
	m = press(t, m, "4", " ")
	if !m.Focus.Running() {
		t.Fatal("expected focus timer to run")
	}
	if len(svc.State().StudySessions) != 0 {
		t.Fatal("running timer must not write a session")
	}

	clock.now = clock.now.Add(25*time.Minute + 20*time.Second)
	m = press(t, m, " ")
	if m.Focus.Running() {
		t.Fatal("expected focus timer to stop")
	}
	state := svc.State()
	if len(state.StudySessions) != 1 {
		t.Fatalf("expected one session, got %d", len(state.StudySessions))
	}
	if got := state.StudySessions[0]; got.Minutes != 25 || got.Subject != "Fokus" {
		t.Fatalf("unexpected session: %#v", got)
	}
	if state.XP != tracker.XPFocusSession {
		t.Fatalf("expected %d XP, got %d", tracker.XPFocusSession, state.XP)
	}
}

func TestFocusDiscardLeavesStateAlone(t *testing.T) {
	m, svc, _ := newTestModel(t)
	m = press(t, m, "4", " ", "c")
	if m.Focus.Running() {
		t.Fatal("expected discarded timer to stop")
	}
	if len(svc.State().StudySessions) != 0 || svc.State().XP != 0 {
		t.Fatal("discard must not touch state")
	}
}

func TestThemeKeyCycles(t *testing.T) {
	m, svc, _ := newTestModel(t)
	m = press(t, m, "T")
	if svc.State().Theme != model.ThemeLight {
		t.Fatalf("expected light theme, got %q", svc.State().Theme)
	}
	m = press(t, m, "T", "T")
	if svc.State().Theme != model.ThemeSystem {
		t.Fatalf("expected system theme after full cycle, got %q", svc.State().Theme)
	}
	if m.styles.Palette.Mode != "light" {
		t.Fatalf("expected system theme to resolve light, got %q", m.styles.Palette.Mode)
	}
}

func TestHelpToggle(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, "2", "?")
	if !m.HelpVisible {
		t.Fatal("expected help visible")
	}
	if out := m.View(); !strings.Contains(out, "move task down/up") {
		t.Fatalf("expected planner bindings in help, got:\n%s", out)
	}
}

func TestInitWithSchedulerReturnsAlertCmd(t *testing.T) {
	engine := scheduler.NewEngine(1)
	m, _, _ := newTestModel(t, WithScheduler(engine))
	if cmd := m.Init(); cmd == nil {
		t.Fatal("expected alert wait cmd when scheduler is attached")
	}
}

func TestPaletteExamArmsAlerts(t *testing.T) {
	engine := scheduler.NewEngine(4)
	m, svc, _ := newTestModel(t, WithScheduler(engine))
	m = runPalette(t, m, "exam 2026-02-20 Mathe Analysis")
	if m.CurrentView != ViewExams {
		t.Fatalf("expected exams view, got %q", m.CurrentView)
	}
	if got := len(svc.State().Exams); got != 1 {
		t.Fatalf("expected one exam, got %d", got)
	}
	if got := engine.Pending(); got != 2 {
		t.Fatalf("expected eve and day alerts pending, got %d", got)
	}
}

func TestAlertDueMsgLogsAndRearms(t *testing.T) {
	engine := scheduler.NewEngine(1)
	m, svc, _ := newTestModel(t, WithScheduler(engine))
	m = runPalette(t, m, "exam 2026-02-10 Chemie")
	exam := svc.State().Exams[0]

	alert := scheduler.Alert{
		ID:        exam.ID + ":eve",
		ExamID:    exam.ID,
		Kind:      scheduler.AlertEve,
		Subject:   exam.Subject,
		Title:     exam.Title(),
		Date:      exam.Date,
		TriggerAt: time.Date(2026, 2, 9, 18, 0, 0, 0, time.UTC),
	}
	updated, cmd := m.Update(AlertDueMsg{Alert: alert})
	next := updated.(Model)
	if len(next.AlertLog) != 1 || next.AlertLog[0].ID != alert.ID {
		t.Fatalf("unexpected alert log: %#v", next.AlertLog)
	}
	if cmd == nil {
		t.Fatal("expected alert listener rearm cmd")
	}
	if !strings.Contains(next.Status.Text, "Morgen Prüfung") {
		t.Fatalf("expected alert status text, got %q", next.Status.Text)
	}
}
