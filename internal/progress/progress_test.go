package progress

import (
	"testing"
	"time"

	"github.com/sandeepkv93/studyboard/internal/model"
	"github.com/stretchr/testify/require"
)

// Wednesday; the week runs 2026-02-09 .. 2026-02-15.
var wednesday = time.Date(2026, 2, 11, 10, 0, 0, 0, time.UTC)

func mkTask(id, subject, due string, prio model.Priority, status model.Status) model.Task {
	return model.Task{ID: id, Subject: subject, Description: id, Due: due, Priority: prio, Status: status}
}

func ids(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestDueTodaySkipsDone(t *testing.T) {
	tasks := []model.Task{
		mkTask("a", "Mathe", "2026-02-11", model.PriorityHigh, model.StatusOpen),
		mkTask("b", "Mathe", "2026-02-11", model.PriorityHigh, model.StatusDone),
		mkTask("c", "Mathe", "2026-02-12", model.PriorityHigh, model.StatusOpen),
	}
	require.Equal(t, []string{"a"}, ids(DueToday(tasks, wednesday)))
}

func TestWeekCompletion(t *testing.T) {
	tasks := []model.Task{
		mkTask("mon", "Mathe", "2026-02-09", model.PriorityLow, model.StatusDone),
		mkTask("sun", "Mathe", "2026-02-15", model.PriorityLow, model.StatusOpen),
		mkTask("next", "Mathe", "2026-02-16", model.PriorityLow, model.StatusDone),
		mkTask("bad", "Mathe", "someday", model.PriorityLow, model.StatusDone),
	}
	done, total := WeekCompletion(tasks, wednesday)
	require.Equal(t, 1, done)
	require.Equal(t, 2, total)

	done, total = WeekCompletion(nil, wednesday)
	require.Equal(t, 0, done)
	require.Equal(t, 1, total)
}

func TestNextExamsAndDays(t *testing.T) {
	exams := []model.Exam{
		{ID: "late", Date: "2026-03-20"},
		{ID: "soon", Date: "2026-02-13"},
		{ID: "mid", Date: "2026-02-28"},
		{ID: "later", Date: "2026-04-01"},
	}
	next := NextExams(exams, 3)
	require.Len(t, next, 3)
	require.Equal(t, "soon", next[0].ID)
	require.Equal(t, "mid", next[1].ID)
	require.Equal(t, "late", next[2].ID)
	require.Equal(t, "late", exams[0].ID)

	days, ok := DaysToNextExam(exams, wednesday)
	require.True(t, ok)
	require.Equal(t, 2, days)

	days, ok = DaysToNextExam([]model.Exam{{ID: "past", Date: "2026-01-01"}}, wednesday)
	require.True(t, ok)
	require.Equal(t, 0, days)

	_, ok = DaysToNextExam(nil, wednesday)
	require.False(t, ok)
}

func TestReadiness(t *testing.T) {
	require.InDelta(t, 1.0, Readiness(0), 1e-9)
	require.InDelta(t, 0.5, Readiness(7), 1e-9)
	require.Equal(t, 0.0, Readiness(14))
	require.Equal(t, 0.0, Readiness(40))
	require.InDelta(t, 1.0, Readiness(-4), 1e-9)

	require.InDelta(t, 1.0, CardReadiness(0), 1e-9)
	require.InDelta(t, 0.5, CardReadiness(14), 1e-9)
	require.Greater(t, CardReadiness(3), CardReadiness(10))
	require.Greater(t, CardReadiness(400), 0.0)
}

func TestStudyMinutes(t *testing.T) {
	sessions := []model.StudySession{
		{ID: "1", Minutes: 30, Date: "2026-02-09"},
		{ID: "2", Minutes: 45, Date: "2026-02-11"},
		{ID: "3", Minutes: 20, Date: "2026-02-05"},
		{ID: "4", Minutes: 60, Date: "2026-02-04"},
		{ID: "5", Minutes: 15, Date: "2026-02-11"},
	}
	require.Equal(t, 90, WeekMinutes(sessions, wednesday))
	require.Equal(t, 110, LastSevenDaysMinutes(sessions, wednesday))

	history := WeekHistory(sessions, wednesday)
	require.Len(t, history, 7)
	require.Equal(t, "Mo", history[0].Label)
	require.Equal(t, "2026-02-09", history[0].Date)
	require.Equal(t, 30, history[0].Minutes)
	require.Equal(t, 60, history[2].Minutes)
	require.InDelta(t, 0.5, history[2].Fill(), 1e-9)
	require.Equal(t, "So", history[6].Label)
	require.Equal(t, 0, history[6].Minutes)
}

func TestGoalRatio(t *testing.T) {
	require.Equal(t, 0.0, GoalRatio(0))
	require.InDelta(t, 0.5, GoalRatio(150), 1e-9)
	require.Equal(t, 1.0, GoalRatio(900))
}

func TestRecentSessionsNewestFirst(t *testing.T) {
	sessions := []model.StudySession{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	got := RecentSessions(sessions)
	require.Equal(t, "3", got[0].ID)
	require.Equal(t, "1", got[2].ID)
	require.Equal(t, "1", sessions[0].ID)
}

func TestFilterApply(t *testing.T) {
	tasks := []model.Task{
		mkTask("a", "Mathe", "2026-02-20", model.PriorityLow, model.StatusOpen),
		mkTask("b", "Bio", "2026-02-10", model.PriorityHigh, model.StatusDone),
		mkTask("c", "Mathe", "2026-02-12", model.PriorityMedium, model.StatusOpen),
		mkTask("d", "Mathe", "2026-02-01", model.PriorityHigh, model.StatusOpen),
	}

	cases := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"default sorts by date", DefaultFilter(), []string{"d", "b", "c", "a"}},
		{"by priority is stable", Filter{Subject: All, Status: All, Sort: SortByPriority}, []string{"b", "d", "c", "a"}},
		{"subject", Filter{Subject: "Mathe", Status: All, Sort: SortNone}, []string{"a", "c", "d"}},
		{"status", Filter{Subject: All, Status: "erledigt", Sort: SortByDate}, []string{"b"}},
		{"zero value keeps everything", Filter{}, []string{"a", "b", "c", "d"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ids(tc.filter.Apply(tasks)))
		})
	}
}

func TestSubjects(t *testing.T) {
	tasks := []model.Task{{Subject: "Mathe"}, {Subject: ""}, {Subject: "Bio"}, {Subject: "Mathe"}}
	require.Equal(t, []string{"Mathe", "Bio"}, Subjects(tasks))
}

func TestMoveKeepsHiddenTasks(t *testing.T) {
	all := []model.Task{
		mkTask("a", "Mathe", "2026-02-10", model.PriorityLow, model.StatusOpen),
		mkTask("x", "Bio", "2026-02-10", model.PriorityLow, model.StatusOpen),
		mkTask("b", "Mathe", "2026-02-11", model.PriorityLow, model.StatusOpen),
		mkTask("c", "Mathe", "2026-02-12", model.PriorityLow, model.StatusOpen),
	}
	visible := Filter{Subject: "Mathe", Status: All, Sort: SortNone}.Apply(all)

	got, err := Move(all, visible, 2, 0)
	require.NoError(t, err)
	require.Equal(t, []string{"c", "a", "x", "b"}, ids(got))

	got, err = Move(all, visible, 0, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"x", "b", "c", "a"}, ids(got))
	require.Equal(t, []string{"a", "x", "b", "c"}, ids(all))

	got, err = Move(all, all, 1, 1)
	require.NoError(t, err)
	require.Equal(t, ids(all), ids(got))

	_, err = Move(all, visible, 0, 3)
	require.ErrorIs(t, err, ErrMoveOutOfRange)
}
