// internal/task/store.go
//
// Store persists the task list as a JSON file. All mutating operations save
// immediately, so a crash never loses more than the in-flight edit. The
// planner never touches the store; it receives value snapshots via Tasks.

package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// completionEpsilon is how little remaining effort still counts as done when
// progress is logged against a task.
const completionEpsilon = 0.01

// Store is a mutex-guarded JSON-backed task collection.
type Store struct {
	path  string
	mu    sync.Mutex
	tasks []Task
}

// NewStore creates a store backed by the given file path. Call Load before
// reading.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the backing file. A missing or unreadable file yields an empty
// list rather than an error: a fresh install has no tasks yet, and a corrupt
// file should not brick the planner.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.tasks = nil
			return nil
		}
		return fmt.Errorf("task: read %s: %w", s.path, err)
	}
	var parsed []Task
	if err := json.Unmarshal(data, &parsed); err != nil {
		s.tasks = nil
		return nil
	}
	s.tasks = parsed
	return nil
}

// Tasks returns a snapshot copy of the current task list.
func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Subjects returns the distinct subjects across all tasks, sorted.
func (s *Store) Subjects() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[string]struct{}{}
	var subjects []string
	for _, t := range s.tasks {
		if _, ok := seen[t.Subject]; ok {
			continue
		}
		seen[t.Subject] = struct{}{}
		subjects = append(subjects, t.Subject)
	}
	sort.Strings(subjects)
	return subjects
}

// Add validates the task, assigns it an ID, and persists it.
func (s *Store) Add(t Task) (Task, error) {
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	if !t.Priority.Valid() {
		t.Priority = PriorityMedium
	}
	t.ID = uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, t)
	return t, s.save()
}

// Update replaces the stored task with the same ID.
func (s *Store) Update(t Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == t.ID {
			s.tasks[i] = t
			return s.save()
		}
	}
	return fmt.Errorf("task: no task with id %s", t.ID)
}

// Delete removes the task with the given ID.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return s.save()
		}
	}
	return fmt.Errorf("task: no task with id %s", id)
}

// Complete marks the task done. Completed tasks are excluded from planning.
func (s *Store) Complete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = true
			return s.save()
		}
	}
	return fmt.Errorf("task: no task with id %s", id)
}

// LogProgress subtracts worked hours from a task's remaining estimate and
// marks it completed once almost nothing is left.
func (s *Store) LogProgress(id string, hours float64) error {
	if hours <= 0 {
		return fmt.Errorf("task: logged hours must be positive")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		s.tasks[i].Hours -= hours
		if s.tasks[i].Hours <= completionEpsilon {
			s.tasks[i].Hours = 0
			s.tasks[i].Completed = true
		}
		return s.save()
	}
	return fmt.Errorf("task: no task with id %s", id)
}

// RestoreHours adds hours back onto a task, reactivating it if the added
// effort makes it owe time again. Used when planned sessions are missed.
func (s *Store) RestoreHours(id string, hours float64) error {
	if hours <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		s.tasks[i].Hours += hours
		if s.tasks[i].Hours > completionEpsilon {
			s.tasks[i].Completed = false
		}
		return s.save()
	}
	return fmt.Errorf("task: no task with id %s", id)
}

// save writes the list back to disk. Caller must hold the mutex.
func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("task: ensure data dir: %w", err)
	}
	data, err := json.MarshalIndent(s.tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("task: encode tasks: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("task: write %s: %w", s.path, err)
	}
	return nil
}
