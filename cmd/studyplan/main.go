// cmd/studyplan/main.go
//
// Entry point for the studyplan TUI.
//
// Flow:
// 1. Resolve the base directory (flag, default: home)
// 2. Ensure the .studyplan data directory exists
// 3. Load settings and tasks, then run the TUI

package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kavinms/studyplan/internal/config"
	"github.com/kavinms/studyplan/internal/logging"
	"github.com/kavinms/studyplan/internal/task"
	"github.com/kavinms/studyplan/internal/tui"
)

func main() {
	dir := flag.String("dir", "", "base directory for the .studyplan data folder (default: home directory)")
	flag.Parse()

	baseDir := *dir
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resolving home directory: %v\n", err)
			os.Exit(1)
		}
		baseDir = home
	}

	if err := config.InitDataDir(baseDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing %s directory: %v\n", config.DataDir, err)
		os.Exit(1)
	}

	cfg, err := config.NewConfig(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogsDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}

	store := task.NewStore(cfg.TasksPath())
	if err := store.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading tasks: %v\n", err)
		os.Exit(1)
	}

	logger.Printf("session opened, %d tasks loaded", len(store.Tasks()))

	p := tea.NewProgram(
		tui.NewApp(cfg, store, logger),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
