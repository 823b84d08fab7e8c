package adjust

import (
	"testing"

	"github.com/kavinms/studyplan/internal/planner"
	"github.com/kavinms/studyplan/internal/task"
)

func sampleTasks() []task.Task {
	return []task.Task{
		{ID: "a", Title: "Project", Subject: "AI", Deadline: "2025-03-10", Hours: 4, Priority: task.PriorityMedium},
		{ID: "b", Title: "Lab", Subject: "Java", Deadline: "2025-03-12", Hours: 2, Priority: task.PriorityHigh},
	}
}

func sampleBudget() planner.WeekBudget {
	return planner.WeekBudget{"Monday": 2, "Tuesday": 4}
}

func TestIdentity(t *testing.T) {
	tasks, budget := sampleTasks(), sampleBudget()
	gotTasks, gotBudget, err := Identity(tasks, budget, "focus on AI")
	if err != nil {
		t.Fatalf("identity: %v", err)
	}
	if len(gotTasks) != 2 || gotTasks[0].Priority != task.PriorityMedium {
		t.Fatalf("identity changed tasks: %+v", gotTasks)
	}
	if gotBudget["Monday"] != 2 {
		t.Fatalf("identity changed budget: %+v", gotBudget)
	}
}

func TestApplyDayWeights(t *testing.T) {
	tasks, budget := sampleTasks(), sampleBudget()
	adj := Adjustment{DayWeights: map[string]float64{
		"Monday":  0.5,
		"Tuesday": -3,      // negatives floor at zero
		"Friday":  2,       // unknown to this budget, ignored
		"Moonday": 1000000, // not a weekday at all
	}}
	_, got := Apply(tasks, budget, adj)
	if got["Monday"] != 1 {
		t.Fatalf("Monday = %v, want 1", got["Monday"])
	}
	if got["Tuesday"] != 0 {
		t.Fatalf("Tuesday = %v, want 0", got["Tuesday"])
	}
	if _, ok := got["Friday"]; ok {
		t.Fatalf("Friday should not have been introduced")
	}
	if budget["Monday"] != 2 {
		t.Fatalf("input budget mutated")
	}
}

func TestApplyPriorityChanges(t *testing.T) {
	tasks, budget := sampleTasks(), sampleBudget()
	adj := Adjustment{PriorityChanges: map[string]string{
		"AI":   "High",
		"Java": "whenever", // invalid values are ignored
	}}
	got, _ := Apply(tasks, budget, adj)
	if got[0].Priority != task.PriorityHigh {
		t.Fatalf("AI priority = %q, want High", got[0].Priority)
	}
	if got[1].Priority != task.PriorityHigh {
		t.Fatalf("Java priority changed by invalid value: %q", got[1].Priority)
	}
	if tasks[0].Priority != task.PriorityMedium {
		t.Fatalf("input tasks mutated")
	}
}

func TestApplyBoostAndReduce(t *testing.T) {
	tasks, budget := sampleTasks(), sampleBudget()
	adj := Adjustment{
		BoostSubjects:  []string{"AI"},
		ReduceSubjects: []string{"Java"},
	}
	got, _ := Apply(tasks, budget, adj)
	if got[0].Priority != task.PriorityHigh {
		t.Fatalf("boosted subject priority = %q, want High", got[0].Priority)
	}
	if got[1].Priority != task.PriorityLow {
		t.Fatalf("reduced subject priority = %q, want Low", got[1].Priority)
	}
}

func TestApplyExplicitChangeWinsOverBoost(t *testing.T) {
	tasks, budget := sampleTasks(), sampleBudget()
	adj := Adjustment{
		BoostSubjects:   []string{"AI"},
		PriorityChanges: map[string]string{"AI": "Low"},
	}
	got, _ := Apply(tasks, budget, adj)
	if got[0].Priority != task.PriorityLow {
		t.Fatalf("explicit change should win, got %q", got[0].Priority)
	}
}
