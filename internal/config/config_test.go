package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kavinms/studyplan/internal/planner"
)

func TestInitDataDirCreatesLayout(t *testing.T) {
	baseDir := t.TempDir()
	if err := InitDataDir(baseDir); err != nil {
		t.Fatalf("InitDataDir: %v", err)
	}
	for _, dir := range []string{"logs", "state"} {
		if _, err := os.Stat(filepath.Join(baseDir, DataDir, dir)); err != nil {
			t.Fatalf("expected %s directory: %v", dir, err)
		}
	}
	if _, err := os.Stat(filepath.Join(baseDir, DataDir, "config.yaml")); err != nil {
		t.Fatalf("expected default config.yaml: %v", err)
	}
}

func TestNewConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := NewConfig(t.TempDir())
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	budget := cfg.WeekBudget()
	if budget["Monday"] != 2 || budget["Saturday"] != 4 {
		t.Fatalf("unexpected default budget: %+v", budget)
	}
	if cfg.DueSoonDays() != 3 {
		t.Fatalf("DueSoonDays = %d, want 3", cfg.DueSoonDays())
	}
}

func TestNewConfigParsesYaml(t *testing.T) {
	baseDir := t.TempDir()
	dataDir := filepath.Join(baseDir, DataDir)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	settingsYAML := strings.TrimSpace(`
version: 1
week_hours:
  Monday: 1.5
  Tuesday: -4
  Funday: 12
due_soon_days: 5
`)
	if err := os.WriteFile(filepath.Join(dataDir, "config.yaml"), []byte(settingsYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := NewConfig(baseDir)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	budget := cfg.WeekBudget()
	if budget["Monday"] != 1.5 {
		t.Fatalf("Monday = %v, want 1.5", budget["Monday"])
	}
	if budget["Tuesday"] != 0 {
		t.Fatalf("negative hours should clamp to 0, got %v", budget["Tuesday"])
	}
	if budget["Wednesday"] != 0 {
		t.Fatalf("missing weekday should default to 0, got %v", budget["Wednesday"])
	}
	if _, ok := budget["Funday"]; ok {
		t.Fatalf("unknown day names should be dropped")
	}
	if cfg.DueSoonDays() != 5 {
		t.Fatalf("DueSoonDays = %d, want 5", cfg.DueSoonDays())
	}
}

func TestSetWeekHoursRoundTrip(t *testing.T) {
	baseDir := t.TempDir()
	if err := InitDataDir(baseDir); err != nil {
		t.Fatalf("InitDataDir: %v", err)
	}
	cfg, err := NewConfig(baseDir)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	budget := planner.WeekBudget{"Monday": 3, "Sunday": 6}
	if err := cfg.SetWeekHours(budget); err != nil {
		t.Fatalf("SetWeekHours: %v", err)
	}

	reloaded, err := NewConfig(baseDir)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	got := reloaded.WeekBudget()
	if got["Monday"] != 3 || got["Sunday"] != 6 || got["Tuesday"] != 0 {
		t.Fatalf("unexpected reloaded budget: %+v", got)
	}
}

func TestNewConfigRejectsInvalidSettings(t *testing.T) {
	baseDir := t.TempDir()
	dataDir := filepath.Join(baseDir, DataDir)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, "config.yaml"), []byte("due_soon_days: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewConfig(baseDir); err == nil {
		t.Fatalf("expected validation error for negative due_soon_days")
	}
}
