// internal/planner/missed.go
//
// Missed-session tracking. When the user reports that a planned day did not
// happen, the day's sessions become Missed records: their hours are handed
// back to the owing tasks and the week is re-allocated from a fresh
// reference date. The records themselves persist in a small JSON log so the
// history survives restarts.

package planner

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/kavinms/studyplan/internal/task"
)

// Missed records one planned session the user reported as not done.
type Missed struct {
	TaskID  string    `json:"task_id"`
	Title   string    `json:"title"`
	Subject string    `json:"subject"`
	Hours   float64   `json:"hours"`
	Day     string    `json:"day"`
	Date    time.Time `json:"date"`
}

// MissedFromPlan converts one day's sessions into missed records. The day's
// calendar date is derived from the plan's start date.
func MissedFromPlan(p Plan, day string) []Missed {
	sessions := p.Days[day]
	if len(sessions) == 0 {
		return nil
	}
	date := p.Start
	for i := 0; i < 7; i++ {
		candidate := p.Start.AddDate(0, 0, i)
		if WeekdayName(candidate) == day {
			date = candidate
			break
		}
	}
	missed := make([]Missed, 0, len(sessions))
	for _, s := range sessions {
		missed = append(missed, Missed{
			TaskID:  s.TaskID,
			Title:   s.Title,
			Subject: s.Subject,
			Hours:   s.Hours,
			Day:     day,
			Date:    date,
		})
	}
	return missed
}

// Reschedule re-runs the allocation after missed sessions. Each missed
// session's hours go back onto its owning task (matched by ID) before
// allocating from ref, which is normally the day after the miss. A task that
// had been closed out regains active status when hours return to it. Missed
// records whose task no longer exists are ignored.
func Reschedule(tasks []task.Task, missed []Missed, budget WeekBudget, ref time.Time) (Plan, []Shortfall) {
	working := make([]task.Task, len(tasks))
	copy(working, tasks)

	byID := make(map[string]int, len(working))
	for i, t := range working {
		if t.ID != "" {
			byID[t.ID] = i
		}
	}
	for _, m := range missed {
		idx, ok := byID[m.TaskID]
		if !ok || m.Hours <= 0 {
			continue
		}
		working[idx].Hours += m.Hours
		working[idx].Completed = false
	}
	return Allocate(working, budget, ref)
}

// MissedLog is a mutex-guarded JSON file holding every reported miss.
type MissedLog struct {
	path string
	mu   sync.Mutex
}

// NewMissedLog creates a log backed by the given path.
func NewMissedLog(path string) *MissedLog {
	return &MissedLog{path: path}
}

// Append adds records to the log file, creating it if needed.
func (l *MissedLog) Append(records []Missed) error {
	if len(records) == 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	existing, err := l.read()
	if err != nil {
		return err
	}
	existing = append(existing, records...)
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("planner: ensure state dir: %w", err)
	}
	data, err := json.MarshalIndent(existing, "", "  ")
	if err != nil {
		return fmt.Errorf("planner: encode missed log: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		return fmt.Errorf("planner: write %s: %w", l.path, err)
	}
	return nil
}

// All returns every recorded miss, oldest first.
func (l *MissedLog) All() ([]Missed, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.read()
}

func (l *MissedLog) read() ([]Missed, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("planner: read %s: %w", l.path, err)
	}
	var records []Missed
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("planner: parse %s: %w", l.path, err)
	}
	return records, nil
}
