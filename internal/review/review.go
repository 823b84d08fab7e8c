// internal/review/review.go
//
// Deadline review for display: which active tasks are already overdue, and
// which come due within the configured horizon. Pure; the caller supplies
// the clock.

package review

import (
	"time"

	"github.com/kavinms/studyplan/internal/task"
)

// Report buckets active tasks by deadline pressure.
type Report struct {
	Overdue []task.Task
	DueSoon []task.Task
}

// Categorize scans tasks against now. Completed tasks and tasks without a
// parseable deadline are left out; the planner has its own fallback for
// those. dueSoonDays is the inclusive horizon for the DueSoon bucket.
func Categorize(tasks []task.Task, now time.Time, dueSoonDays int) Report {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	var report Report
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		d, ok := task.ParseDeadline(t.Deadline)
		if !ok {
			continue
		}
		deadline := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		switch days := int(deadline.Sub(today).Hours() / 24); {
		case days < 0:
			report.Overdue = append(report.Overdue, t)
		case days <= dueSoonDays:
			report.DueSoon = append(report.DueSoon, t)
		}
	}
	return report
}
