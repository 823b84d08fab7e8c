// internal/config/config.go
//
// This package handles configuration and the .studyplan directory layout.
// Every base directory the planner runs against gets a .studyplan/ folder
// holding the task file, logs, and state.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kavinms/studyplan/internal/planner"
)

// DataDir is the name of the directory created under the base directory.
const DataDir = ".studyplan"

const defaultDueSoonDays = 3

const defaultSettingsYAML = `# studyplan configuration
version: 1

# Hours available for planned work on each weekday. The plan view lets you
# override these per run; edits there are saved back here.
week_hours:
  Monday: 2
  Tuesday: 2
  Wednesday: 2
  Thursday: 2
  Friday: 2
  Saturday: 4
  Sunday: 4

# Tasks due within this many days are flagged as "due soon".
due_soon_days: 3
`

// Settings models .studyplan/config.yaml.
type Settings struct {
	Version     int                `yaml:"version"`
	WeekHours   map[string]float64 `yaml:"week_hours"`
	DueSoonDays int                `yaml:"due_soon_days"`
}

// Config holds the runtime configuration.
type Config struct {
	// BaseDir is where the user pointed the planner (usually their home dir).
	BaseDir string

	// DataDirPath is BaseDir/.studyplan.
	DataDirPath string

	Settings Settings
}

// InitDataDir creates the .studyplan directory structure under baseDir.
//
// Structure created:
// .studyplan/
// ├── logs/    <- timestamped activity log
// └── state/   <- missed-session records
func InitDataDir(baseDir string) error {
	dataDir := filepath.Join(baseDir, DataDir)
	dirs := []string{
		filepath.Join(dataDir, "logs"),
		filepath.Join(dataDir, "state"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return ensureSettingsFile(filepath.Join(dataDir, "config.yaml"))
}

// NewConfig loads (or defaults) the settings for a base directory.
func NewConfig(baseDir string) (*Config, error) {
	cfg := &Config{
		BaseDir:     baseDir,
		DataDirPath: filepath.Join(baseDir, DataDir),
		Settings:    defaultSettings(),
	}
	if err := cfg.loadSettings(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// TasksPath returns the path of the JSON task file.
func (c *Config) TasksPath() string {
	return filepath.Join(c.DataDirPath, "tasks.json")
}

// LogsDir returns the path of the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDirPath, "logs")
}

// StateDir returns the path of the state directory.
func (c *Config) StateDir() string {
	return filepath.Join(c.DataDirPath, "state")
}

// MissedPath returns the path of the missed-session log.
func (c *Config) MissedPath() string {
	return filepath.Join(c.StateDir(), "missed.json")
}

// SettingsPath returns the on-disk location of the settings file.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.DataDirPath, "config.yaml")
}

// WeekBudget returns the configured per-weekday hours as a planner budget.
func (c *Config) WeekBudget() planner.WeekBudget {
	budget := make(planner.WeekBudget, len(planner.Week))
	for _, day := range planner.Week {
		budget[day] = c.Settings.WeekHours[day]
	}
	return budget
}

// DueSoonDays returns the configured due-soon horizon.
func (c *Config) DueSoonDays() int {
	return c.Settings.DueSoonDays
}

// SetWeekHours replaces the configured weekday hours and persists the
// settings file so the next launch starts from the same budget.
func (c *Config) SetWeekHours(budget planner.WeekBudget) error {
	hours := make(map[string]float64, len(planner.Week))
	for _, day := range planner.Week {
		hours[day] = budget[day]
	}
	c.Settings.WeekHours = hours
	return c.saveSettings()
}

func (c *Config) loadSettings() error {
	path := c.SettingsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	var parsed Settings
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.Settings = parsed
	return nil
}

func defaultSettings() Settings {
	hours := map[string]float64{
		"Monday": 2, "Tuesday": 2, "Wednesday": 2, "Thursday": 2, "Friday": 2,
		"Saturday": 4, "Sunday": 4,
	}
	return Settings{
		Version:     1,
		WeekHours:   hours,
		DueSoonDays: defaultDueSoonDays,
	}
}

func (s *Settings) applyDefaults() {
	if s.Version == 0 {
		s.Version = 1
	}
	if s.WeekHours == nil {
		s.WeekHours = map[string]float64{}
	}
	if s.DueSoonDays == 0 {
		s.DueSoonDays = defaultDueSoonDays
	}
}

// normalize fills missing weekdays with zero, drops unknown day names, and
// clamps negative hours; a negative budget means no capacity, never an
// error.
func (s *Settings) normalize() {
	hours := make(map[string]float64, len(planner.Week))
	for _, day := range planner.Week {
		v := s.WeekHours[day]
		if v < 0 {
			v = 0
		}
		hours[day] = v
	}
	s.WeekHours = hours
}

func (s *Settings) validate() error {
	if s.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if s.DueSoonDays < 0 {
		return fmt.Errorf("due_soon_days must be >= 0")
	}
	return nil
}

func ensureSettingsFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultSettingsYAML), 0o644)
}

func (c *Config) saveSettings() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.Settings.applyDefaults()
	c.Settings.normalize()
	if err := c.Settings.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(c.DataDirPath, 0o755); err != nil {
		return fmt.Errorf("config: ensure data dir: %w", err)
	}
	data, err := yaml.Marshal(c.Settings)
	if err != nil {
		return fmt.Errorf("config: encode settings: %w", err)
	}
	if err := os.WriteFile(c.SettingsPath(), data, 0o644); err != nil {
		return fmt.Errorf("config: write settings: %w", err)
	}
	return nil
}
