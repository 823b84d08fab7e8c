// internal/planner/planner.go
//
// The weekly allocator. Allocate is a pure function over value snapshots:
// it distributes per-weekday hour budgets across active tasks for the seven
// calendar days starting at a reference date, honoring deadlines first and
// priority only as a tie-break. Identical inputs always produce identical
// output.

package planner

import (
	"math"
	"sort"
	"time"

	"github.com/kavinms/studyplan/internal/task"
)

// Week is the fixed weekday-name ordering. Budget lookup and plan output
// both index into this single table.
var Week = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// shortfallEpsilon absorbs float noise from repeated subtraction; tasks with
// less than this much left owed are considered fully placed. The exact value
// matters for output stability and must not change.
const shortfallEpsilon = 0.01

// WeekBudget maps weekday names to available hours. Missing days count as
// zero capacity; negative values are treated the same way.
type WeekBudget map[string]float64

// Session is one planned block of work on a specific day.
type Session struct {
	TaskID   string        `json:"task_id"`
	Title    string        `json:"title"`
	Subject  string        `json:"subject"`
	Hours    float64       `json:"hours"`
	Deadline string        `json:"deadline"`
	Priority task.Priority `json:"priority"`
}

// Shortfall reports a task whose hours could not all be placed inside the
// window given its deadline and the budgets.
type Shortfall struct {
	TaskID    string  `json:"task_id"`
	Title     string  `json:"title"`
	Subject   string  `json:"subject"`
	Remaining float64 `json:"remaining"`
	Deadline  string  `json:"deadline"`
}

// Plan holds the seven-day allocation. Days always carries all seven weekday
// keys; sessions within a day keep allocation order.
type Plan struct {
	Start time.Time            `json:"start"`
	Days  map[string][]Session `json:"days"`
}

// WeekdayName returns the name for a date using the shared Week table.
func WeekdayName(d time.Time) string {
	return Week[(int(d.Weekday())+6)%7]
}

// round2 rounds to two decimal places, the precision sessions and shortfall
// entries are reported in.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// dateOnly strips clock and zone so day comparisons never flip across
// timezones.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// emptyPlan builds a plan with all seven weekday keys and no sessions.
func emptyPlan(ref time.Time) Plan {
	days := make(map[string][]Session, len(Week))
	for _, name := range Week {
		days[name] = []Session{}
	}
	return Plan{Start: ref, Days: days}
}

// Allocate distributes budgeted hours across active tasks over the seven
// days starting at ref (inclusive).
//
// Tasks are walked in a fixed order: deadline ascending, then priority rank,
// computed once up front with a stable sort so equal keys keep input order.
// A task with an unparseable deadline is treated as due on ref (most
// urgent); an unrecognized priority ranks as Medium. A task is never given
// hours on a day after its deadline, even when budget is left over.
//
// The inputs are not mutated; per-task remaining hours live in a side table
// keyed by position in the sorted working copy, so field-wise identical
// tasks are still tracked independently.
func Allocate(tasks []task.Task, budget WeekBudget, ref time.Time) (Plan, []Shortfall) {
	refDay := dateOnly(ref)
	plan := emptyPlan(refDay)

	var active []task.Task
	for _, t := range tasks {
		if !t.Completed {
			active = append(active, t)
		}
	}
	if len(active) == 0 {
		return plan, nil
	}

	// Resolve each task's effective deadline once; the same fallback is
	// reused by the per-day skip check below.
	due := make([]time.Time, len(active))
	for i, t := range active {
		if d, ok := task.ParseDeadline(t.Deadline); ok {
			due[i] = dateOnly(d)
		} else {
			due[i] = refDay
		}
	}

	order := make([]int, len(active))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		da, db := due[order[a]], due[order[b]]
		if !da.Equal(db) {
			return da.Before(db)
		}
		return active[order[a]].Priority.Rank() < active[order[b]].Priority.Rank()
	})

	remaining := make([]float64, len(active))
	for i, t := range active {
		remaining[i] = t.Hours
	}

	for i := 0; i < 7; i++ {
		current := refDay.AddDate(0, 0, i)
		name := WeekdayName(current)
		dayRemaining := budget[name]
		if dayRemaining <= 0 {
			continue
		}
		for _, idx := range order {
			if dayRemaining <= 0 {
				break
			}
			if current.After(due[idx]) {
				continue
			}
			if remaining[idx] <= 0 {
				continue
			}
			alloc := math.Min(remaining[idx], dayRemaining)
			if alloc <= 0 {
				continue
			}
			t := active[idx]
			plan.Days[name] = append(plan.Days[name], Session{
				TaskID:   t.ID,
				Title:    t.Title,
				Subject:  t.Subject,
				Hours:    round2(alloc),
				Deadline: t.Deadline,
				Priority: t.Priority,
			})
			remaining[idx] -= alloc
			dayRemaining -= alloc
		}
	}

	var short []Shortfall
	for _, idx := range order {
		if remaining[idx] <= shortfallEpsilon {
			continue
		}
		t := active[idx]
		short = append(short, Shortfall{
			TaskID:    t.ID,
			Title:     t.Title,
			Subject:   t.Subject,
			Remaining: round2(remaining[idx]),
			Deadline:  t.Deadline,
		})
	}
	return plan, short
}

// SubjectHours sums planned hours per subject across the whole plan. This is
// a display reduction; it adds nothing the sessions don't already carry.
func SubjectHours(p Plan) map[string]float64 {
	totals := map[string]float64{}
	for _, name := range Week {
		for _, s := range p.Days[name] {
			totals[s.Subject] = round2(totals[s.Subject] + s.Hours)
		}
	}
	return totals
}
