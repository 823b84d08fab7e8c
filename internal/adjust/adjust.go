// internal/adjust/adjust.go
//
// Structured plan adjustment. An upstream layer (a form, a CLI flag, a
// hosted model turning free text into JSON) produces an Adjustment; Apply
// folds it into the task list and week budget before allocation. The
// free-text interpretation itself lives outside this repo; the Adjuster
// contract is the seam it plugs into.

package adjust

import (
	"github.com/kavinms/studyplan/internal/planner"
	"github.com/kavinms/studyplan/internal/task"
)

// Adjustment is the structured rewrite an upstream layer may request. Field
// names match the JSON payload the original instruction agent emitted.
type Adjustment struct {
	BoostSubjects   []string           `json:"boost_subjects,omitempty"`
	ReduceSubjects  []string           `json:"reduce_subjects,omitempty"`
	DayWeights      map[string]float64 `json:"day_weights,omitempty"`
	PriorityChanges map[string]string  `json:"priority_changes,omitempty"`
}

// Adjuster transforms tasks and budget according to a free-form instruction.
// Implementations may call out to anything; the planner only sees the
// result. Identity is the default.
type Adjuster func(tasks []task.Task, budget planner.WeekBudget, instruction string) ([]task.Task, planner.WeekBudget, error)

// Identity returns its inputs unchanged.
func Identity(tasks []task.Task, budget planner.WeekBudget, _ string) ([]task.Task, planner.WeekBudget, error) {
	return tasks, budget, nil
}

// Apply folds an adjustment into copies of the tasks and budget. Inputs are
// never mutated. Day weights scale only weekdays the budget already knows,
// flooring at zero. Subject priority rewrites accept only the three known
// priorities; boost and reduce lists are shorthand for High and Low, with an
// explicit priority_changes entry winning over either.
func Apply(tasks []task.Task, budget planner.WeekBudget, adj Adjustment) ([]task.Task, planner.WeekBudget) {
	newBudget := make(planner.WeekBudget, len(budget))
	for day, hours := range budget {
		newBudget[day] = hours
	}
	for day, w := range adj.DayWeights {
		if _, ok := newBudget[day]; !ok {
			continue
		}
		scaled := newBudget[day] * w
		if scaled < 0 {
			scaled = 0
		}
		newBudget[day] = scaled
	}

	boost := toSet(adj.BoostSubjects)
	reduce := toSet(adj.ReduceSubjects)

	newTasks := make([]task.Task, len(tasks))
	copy(newTasks, tasks)
	for i := range newTasks {
		subject := newTasks[i].Subject
		if _, ok := boost[subject]; ok {
			newTasks[i].Priority = task.PriorityHigh
		}
		if _, ok := reduce[subject]; ok {
			newTasks[i].Priority = task.PriorityLow
		}
		if raw, ok := adj.PriorityChanges[subject]; ok {
			if p := task.Priority(raw); p.Valid() {
				newTasks[i].Priority = p
			}
		}
	}
	return newTasks, newBudget
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
