package tui

import (
	"testing"
	"time"

	"github.com/kavinms/studyplan/internal/adjust"
	"github.com/kavinms/studyplan/internal/config"
	"github.com/kavinms/studyplan/internal/planner"
	"github.com/kavinms/studyplan/internal/task"
)

// 2025-03-03 is a Monday.
var monday = time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T, opts ...AppOption) *App {
	t.Helper()
	baseDir := t.TempDir()
	if err := config.InitDataDir(baseDir); err != nil {
		t.Fatalf("init data dir: %v", err)
	}
	cfg, err := config.NewConfig(baseDir)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	store := task.NewStore(cfg.TasksPath())
	if err := store.Load(); err != nil {
		t.Fatalf("load store: %v", err)
	}
	opts = append([]AppOption{WithClock(func() time.Time { return monday })}, opts...)
	return NewApp(cfg, store, nil, opts...)
}

func addTask(t *testing.T, a *App, title, deadline string, hours float64) task.Task {
	t.Helper()
	added, err := a.store.Add(task.Task{
		Title:    title,
		Subject:  "AI",
		Deadline: deadline,
		Hours:    hours,
		Priority: task.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	return added
}

func TestGeneratePlanSwitchesToPlanScreen(t *testing.T) {
	a := newTestApp(t)
	addTask(t, a, "Revision", "2025-03-05", 3)

	a.generatePlan()

	if a.state != statePlan || !a.hasPlan {
		t.Fatalf("expected plan screen, state=%d hasPlan=%v", a.state, a.hasPlan)
	}
	if len(a.plan.Days) != 7 {
		t.Fatalf("expected 7 days in plan, got %d", len(a.plan.Days))
	}
	// Default budget gives weekdays 2h: 2h Monday, 1h Tuesday.
	if got := a.plan.Days["Monday"]; len(got) != 1 || got[0].Hours != 2 {
		t.Fatalf("Monday = %+v", got)
	}
	if got := a.plan.Days["Tuesday"]; len(got) != 1 || got[0].Hours != 1 {
		t.Fatalf("Tuesday = %+v", got)
	}
	if len(a.shortfall) != 0 {
		t.Fatalf("unexpected shortfall: %+v", a.shortfall)
	}
}

func TestCloseOutDayDoneLogsProgress(t *testing.T) {
	a := newTestApp(t)
	added := addTask(t, a, "Revision", "2025-03-09", 3)

	a.generatePlan()
	a.daySel = 0 // Monday
	a.closeOutDay(true)

	got := a.store.Tasks()
	if len(got) != 1 || got[0].ID != added.ID {
		t.Fatalf("unexpected store contents: %+v", got)
	}
	if got[0].Hours != 1 {
		t.Fatalf("remaining hours = %v, want 1", got[0].Hours)
	}
	if !a.doneDays["Monday"] {
		t.Fatalf("Monday not marked done")
	}
}

func TestMissedDayReschedulesFromNextDay(t *testing.T) {
	a := newTestApp(t)
	addTask(t, a, "Revision", "2025-03-05", 3)

	a.generatePlan()
	a.daySel = 0 // Monday
	a.closeOutDay(false)

	wantStart := time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)
	if !a.plan.Start.Equal(wantStart) {
		t.Fatalf("plan start = %v, want %v", a.plan.Start, wantStart)
	}
	// All 3 hours fit before the Wednesday deadline: 2h Tuesday, 1h Wednesday.
	if got := a.plan.Days["Tuesday"]; len(got) != 1 || got[0].Hours != 2 {
		t.Fatalf("Tuesday = %+v", got)
	}
	if got := a.plan.Days["Wednesday"]; len(got) != 1 || got[0].Hours != 1 {
		t.Fatalf("Wednesday = %+v", got)
	}

	missed, err := planner.NewMissedLog(a.config.MissedPath()).All()
	if err != nil {
		t.Fatalf("read missed log: %v", err)
	}
	if len(missed) != 1 || missed[0].Day != "Monday" || missed[0].Hours != 2 {
		t.Fatalf("missed log = %+v", missed)
	}
}

func TestMissedDayAfterDoneRestoresHours(t *testing.T) {
	a := newTestApp(t)
	added := addTask(t, a, "Revision", "2025-03-09", 3)

	a.generatePlan()
	a.daySel = 0
	a.closeOutDay(true)  // Monday done: 2h logged
	a.closeOutDay(false) // actually missed: hours come back

	got := a.store.Tasks()
	if len(got) != 1 || got[0].ID != added.ID {
		t.Fatalf("unexpected store contents: %+v", got)
	}
	if got[0].Hours != 3 {
		t.Fatalf("remaining hours = %v, want 3 after restore", got[0].Hours)
	}
	if a.doneDays["Monday"] {
		t.Fatalf("Monday should no longer be marked done")
	}
}

func TestRescheduleClearsDoneDayMarkers(t *testing.T) {
	a := newTestApp(t)
	added := addTask(t, a, "Thesis draft", "2025-03-20", 20)

	a.generatePlan()
	a.daySel = 0 // Monday 2025-03-03
	a.closeOutDay(true)
	if got := a.store.Tasks()[0].Hours; got != 18 {
		t.Fatalf("remaining hours after Monday = %v, want 18", got)
	}

	a.daySel = 1 // Tuesday missed: window moves to Wednesday 2025-03-05
	a.closeOutDay(false)
	wantStart := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)
	if !a.plan.Start.Equal(wantStart) {
		t.Fatalf("plan start = %v, want %v", a.plan.Start, wantStart)
	}
	if len(a.doneDays) != 0 {
		t.Fatalf("done markers survived the reschedule: %v", a.doneDays)
	}

	// Monday in the new window is 2025-03-10, a day never closed out as
	// done; missing it must not restore the hours logged on 2025-03-03.
	a.daySel = 5
	a.closeOutDay(false)

	got := a.store.Tasks()
	if len(got) != 1 || got[0].ID != added.ID {
		t.Fatalf("unexpected store contents: %+v", got)
	}
	if got[0].Hours != 18 {
		t.Fatalf("remaining hours = %v, want 18 (no restore for an unworked day)", got[0].Hours)
	}
}

func TestEditFormUpdatesTask(t *testing.T) {
	a := newTestApp(t)
	added := addTask(t, a, "Revision", "2025-03-05", 3)

	a.enterTasks()
	a.enterEditForm(a.tasks[0])
	if a.state != stateAddTask || a.editID != added.ID {
		t.Fatalf("expected edit form for %s, state=%d editID=%q", added.ID, a.state, a.editID)
	}
	if a.form[fieldTitle].Value() != "Revision" || a.form[fieldHours].Value() != "3" {
		t.Fatalf("form not pre-filled: title=%q hours=%q", a.form[fieldTitle].Value(), a.form[fieldHours].Value())
	}

	a.form[fieldTitle].SetValue("Final revision")
	a.form[fieldHours].SetValue("5")
	a.form[fieldPriority].SetValue("low")
	if cmd := a.submitAddForm(); cmd != nil {
		t.Fatalf("submit returned a command, errMsg=%q", a.errMsg)
	}

	got := a.store.Tasks()
	if len(got) != 1 || got[0].ID != added.ID {
		t.Fatalf("unexpected store contents: %+v", got)
	}
	if got[0].Title != "Final revision" || got[0].Hours != 5 || got[0].Priority != task.PriorityLow {
		t.Fatalf("task not updated: %+v", got[0])
	}
	if a.state != stateTasks {
		t.Fatalf("expected task list after submit, state=%d", a.state)
	}
}

func TestSubjectFilterCyclesThroughSubjects(t *testing.T) {
	a := newTestApp(t)
	addTask(t, a, "Revision", "2025-03-05", 3)
	if _, err := a.store.Add(task.Task{
		Title: "Streams exercise", Subject: "Java", Deadline: "2025-03-07", Hours: 2, Priority: task.PriorityMedium,
	}); err != nil {
		t.Fatalf("add task: %v", err)
	}

	a.enterTasks()
	if len(a.tasks) != 2 {
		t.Fatalf("unfiltered tasks = %d, want 2", len(a.tasks))
	}

	a.cycleSubjectFilter()
	if a.subjectFilter != "AI" || len(a.tasks) != 1 || a.tasks[0].Subject != "AI" {
		t.Fatalf("first filter = %q, tasks = %+v", a.subjectFilter, a.tasks)
	}
	a.cycleSubjectFilter()
	if a.subjectFilter != "Java" || len(a.tasks) != 1 || a.tasks[0].Subject != "Java" {
		t.Fatalf("second filter = %q, tasks = %+v", a.subjectFilter, a.tasks)
	}
	a.cycleSubjectFilter()
	if a.subjectFilter != "" || len(a.tasks) != 2 {
		t.Fatalf("expected filter cleared, got %q with %d tasks", a.subjectFilter, len(a.tasks))
	}
}

func TestGeneratePlanUsesInjectedAdjuster(t *testing.T) {
	adjuster := func(tasks []task.Task, budget planner.WeekBudget, _ string) ([]task.Task, planner.WeekBudget, error) {
		t2, b2 := adjust.Apply(tasks, budget, adjust.Adjustment{
			DayWeights: map[string]float64{"Monday": 0.5},
		})
		return t2, b2, nil
	}
	a := newTestApp(t, WithAdjuster(adjuster))
	addTask(t, a, "Revision", "2025-03-03", 3)

	a.generatePlan()

	if got := a.plan.Days["Monday"]; len(got) != 1 || got[0].Hours != 1 {
		t.Fatalf("Monday = %+v, want one 1h session after halved budget", got)
	}
	if len(a.shortfall) != 1 || a.shortfall[0].Remaining != 2 {
		t.Fatalf("shortfall = %+v, want 2h remaining", a.shortfall)
	}
}
