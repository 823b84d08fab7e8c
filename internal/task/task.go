// internal/task/task.go
//
// Task is the unit of work the planner schedules. Tasks are persisted to
// tasks.json by Store and handed to the planner as value snapshots.

package task

import (
	"fmt"
	"strings"
	"time"
)

// DeadlineLayout is the on-disk and on-screen date format for deadlines.
const DeadlineLayout = "2006-01-02"

// Priority orders tasks that share a deadline. It is only ever a tie-break;
// deadline ordering always wins.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Rank returns the sort weight for a priority. Unrecognized values rank as
// Medium so malformed records degrade instead of failing.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityLow:
		return 3
	default:
		return 2
	}
}

// Valid reports whether p is one of the three known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// NormalizePriority maps free-form user input onto a known priority.
// Anything unrecognized becomes Medium.
func NormalizePriority(raw string) Priority {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "high":
		return PriorityHigh
	case "low":
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// Task models one schedulable unit of work. Deadline stays a string in the
// stored format; the planner parses it defensively on each run.
type Task struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Subject   string   `json:"subject"`
	Deadline  string   `json:"deadline"`
	Hours     float64  `json:"hours"`
	Priority  Priority `json:"priority"`
	Completed bool     `json:"completed"`
}

// ParseDeadline parses a deadline string. The boolean is false when the
// value is missing or malformed; callers decide the fallback.
func ParseDeadline(s string) (time.Time, bool) {
	d, err := time.Parse(DeadlineLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Validate rejects tasks that should never reach the store. The planner
// itself does no validation; this is the construction-time gate.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("task: title is required")
	}
	if strings.TrimSpace(t.Subject) == "" {
		return fmt.Errorf("task: subject is required")
	}
	if _, ok := ParseDeadline(t.Deadline); !ok {
		return fmt.Errorf("task: deadline must be a date in %s form", DeadlineLayout)
	}
	if t.Hours <= 0 {
		return fmt.Errorf("task: estimated hours must be positive")
	}
	return nil
}
