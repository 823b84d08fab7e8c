// internal/tui/app.go
//
// The terminal UI for studyplan. It uses bubbletea's Elm architecture:
// the App model holds all state, Update reacts to messages, View renders.
//
// Screens: main menu -> task list / add form / weekly hours / plan view.

package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kavinms/studyplan/internal/adjust"
	"github.com/kavinms/studyplan/internal/config"
	"github.com/kavinms/studyplan/internal/logging"
	"github.com/kavinms/studyplan/internal/planner"
	"github.com/kavinms/studyplan/internal/review"
	"github.com/kavinms/studyplan/internal/task"
)

// appState represents which screen we're on.
type appState int

const (
	stateMenu appState = iota
	stateTasks
	stateAddTask
	stateHours
	statePlan
)

// menuItem implements list.Item for the main menu.
type menuItem struct {
	title string
	desc  string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

const (
	menuViewTasks = "View tasks"
	menuAddTask   = "Add task"
	menuSetHours  = "Set weekly hours"
	menuPlan      = "Generate weekly plan"
	menuExit      = "Exit"
)

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithAdjuster plugs in an upstream instruction layer. The default is the
// identity transform.
func WithAdjuster(adj adjust.Adjuster) AppOption {
	return func(a *App) {
		if adj != nil {
			a.adjuster = adj
		}
	}
}

// WithClock overrides the reference-date source.
func WithClock(now func() time.Time) AppOption {
	return func(a *App) {
		if now != nil {
			a.now = now
		}
	}
}

// App is the top-level bubbletea model.
type App struct {
	state     appState
	config    *config.Config
	store     *task.Store
	logger    *logging.Logger
	missedLog *planner.MissedLog
	adjuster  adjust.Adjuster
	now       func() time.Time

	menu   list.Model
	width  int
	height int

	statusMsg string
	errMsg    string

	// Task list screen. subjectFilter narrows the visible tasks to one
	// subject; empty means all.
	tasks         []task.Task
	cursor        int
	subjectFilter string

	// Add/edit form. editID is set while editing an existing task.
	form      []textinput.Model
	formFocus int
	editID    string

	// Weekly-hours form, one field per weekday in Week order.
	hoursForm  []textinput.Model
	hoursFocus int

	// Plan screen.
	plan      planner.Plan
	shortfall []planner.Shortfall
	report    review.Report
	hasPlan   bool
	daySel    int
	doneDays  map[string]bool
}

// NewApp builds the TUI model around an already-loaded store.
func NewApp(cfg *config.Config, store *task.Store, logger *logging.Logger, opts ...AppOption) *App {
	menu := list.New(mainMenuItems(), list.NewDefaultDelegate(), 0, 0)
	menu.Title = "studyplan"
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)

	app := &App{
		state:     stateMenu,
		config:    cfg,
		store:     store,
		logger:    logger,
		missedLog: planner.NewMissedLog(cfg.MissedPath()),
		adjuster:  adjust.Identity,
		now:       time.Now,
		menu:      menu,
		doneDays:  map[string]bool{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	return app
}

func mainMenuItems() []list.Item {
	return []list.Item{
		menuItem{title: menuViewTasks, desc: "Browse, complete, and delete tasks"},
		menuItem{title: menuAddTask, desc: "Record a new task"},
		menuItem{title: menuSetHours, desc: "Hours available per weekday"},
		menuItem{title: menuPlan, desc: "Allocate this week's hours across tasks"},
		menuItem{title: menuExit, desc: "Quit studyplan"},
	}
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update reacts to one message.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.menu.SetSize(max(0, msg.Width-4), max(0, msg.Height-6))
		return a, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.state {
		case stateMenu:
			return a.updateMenu(msg)
		case stateTasks:
			return a.updateTasks(msg)
		case stateAddTask:
			return a.updateAddForm(msg)
		case stateHours:
			return a.updateHoursForm(msg)
		case statePlan:
			return a.updatePlan(msg)
		}
	}
	return a, nil
}

func (a *App) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "enter":
		item, ok := a.menu.SelectedItem().(menuItem)
		if !ok {
			return a, nil
		}
		a.statusMsg, a.errMsg = "", ""
		switch item.title {
		case menuViewTasks:
			a.enterTasks()
		case menuAddTask:
			a.enterAddForm()
			return a, textinput.Blink
		case menuSetHours:
			a.enterHoursForm()
			return a, textinput.Blink
		case menuPlan:
			a.generatePlan()
		case menuExit:
			return a, tea.Quit
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.menu, cmd = a.menu.Update(msg)
	return a, cmd
}

func (a *App) enterTasks() {
	a.refreshTasks()
	a.state = stateTasks
}

// refreshTasks re-snapshots the store and applies the subject filter.
func (a *App) refreshTasks() {
	all := a.store.Tasks()
	if a.subjectFilter == "" {
		a.tasks = all
	} else {
		var filtered []task.Task
		for _, t := range all {
			if t.Subject == a.subjectFilter {
				filtered = append(filtered, t)
			}
		}
		a.tasks = filtered
	}
	if a.cursor >= len(a.tasks) {
		a.cursor = 0
	}
}

// cycleSubjectFilter steps the task-list filter through every known subject
// and back to "all".
func (a *App) cycleSubjectFilter() {
	subjects := a.store.Subjects()
	next := ""
	if a.subjectFilter == "" {
		if len(subjects) > 0 {
			next = subjects[0]
		}
	} else {
		for i, subject := range subjects {
			if subject == a.subjectFilter && i+1 < len(subjects) {
				next = subjects[i+1]
				break
			}
		}
	}
	a.subjectFilter = next
	a.cursor = 0
	a.refreshTasks()
}

func (a *App) updateTasks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		a.state = stateMenu
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.tasks)-1 {
			a.cursor++
		}
	case "a":
		a.enterAddForm()
		return a, textinput.Blink
	case "e":
		if a.cursor < len(a.tasks) {
			a.enterEditForm(a.tasks[a.cursor])
			return a, textinput.Blink
		}
	case "s":
		a.cycleSubjectFilter()
	case "c":
		if a.cursor < len(a.tasks) {
			t := a.tasks[a.cursor]
			if err := a.store.Complete(t.ID); err != nil {
				a.fail("complete task", err)
			} else {
				a.logf("completed task %q", t.Title)
				a.statusMsg = fmt.Sprintf("Completed %q.", t.Title)
			}
			a.refreshTasks()
		}
	case "d":
		if a.cursor < len(a.tasks) {
			t := a.tasks[a.cursor]
			if err := a.store.Delete(t.ID); err != nil {
				a.fail("delete task", err)
			} else {
				a.logf("deleted task %q", t.Title)
				a.statusMsg = fmt.Sprintf("Deleted %q.", t.Title)
			}
			a.refreshTasks()
		}
	}
	return a, nil
}

// generatePlan snapshots the store, runs the (possibly adjusted) allocation,
// and switches to the plan screen.
func (a *App) generatePlan() {
	tasks := a.store.Tasks()
	budget := a.config.WeekBudget()

	tasks, budget, err := a.adjuster(tasks, budget, "")
	if err != nil {
		// An adjuster failure falls back to the unadjusted inputs.
		a.logf("adjuster failed, planning unadjusted: %v", err)
		tasks = a.store.Tasks()
		budget = a.config.WeekBudget()
	}

	ref := a.now()
	a.plan, a.shortfall = planner.Allocate(tasks, budget, ref)
	a.report = review.Categorize(tasks, ref, a.config.DueSoonDays())
	a.hasPlan = true
	a.daySel = 0
	a.doneDays = map[string]bool{}
	a.state = statePlan
	a.logf("generated plan starting %s (%d shortfall)", ref.Format(task.DeadlineLayout), len(a.shortfall))
}

func (a *App) updatePlan(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		a.state = stateMenu
	case "left", "h":
		if a.daySel > 0 {
			a.daySel--
		}
	case "right", "l":
		if a.daySel < 6 {
			a.daySel++
		}
	case "g":
		a.generatePlan()
	case "x":
		a.closeOutDay(true)
	case "m":
		a.closeOutDay(false)
	}
	return a, nil
}

// closeOutDay records the selected day's outcome. A done day logs progress
// against each session's task. A missed day records the sessions in the
// missed log and reschedules the rest of the week from the following day;
// if the day had already been closed out as done, the logged hours are
// restored first.
func (a *App) closeOutDay(done bool) {
	if !a.hasPlan {
		return
	}
	date := a.plan.Start.AddDate(0, 0, a.daySel)
	day := planner.WeekdayName(date)
	sessions := a.plan.Days[day]
	if len(sessions) == 0 {
		a.statusMsg = fmt.Sprintf("Nothing planned for %s.", day)
		return
	}

	if done {
		for _, s := range sessions {
			if err := a.store.LogProgress(s.TaskID, s.Hours); err != nil {
				a.fail("log progress", err)
			}
		}
		a.doneDays[day] = true
		a.statusMsg = fmt.Sprintf("Logged %s as done.", day)
		a.logf("closed out %s as done (%d sessions)", day, len(sessions))
		return
	}

	missed := planner.MissedFromPlan(a.plan, day)
	if err := a.missedLog.Append(missed); err != nil {
		a.fail("record missed sessions", err)
	}

	// Hours only need restoring when the day was first closed out as done;
	// otherwise the tasks still owe them.
	var restore []planner.Missed
	if a.doneDays[day] {
		restore = missed
	}
	budget := a.config.WeekBudget()
	nextRef := date.AddDate(0, 0, 1)
	a.plan, a.shortfall = planner.Reschedule(a.store.Tasks(), restore, budget, nextRef)
	// The reschedule shifts the window, so weekday names now refer to new
	// calendar days; stale done flags must not survive into the new plan.
	a.doneDays = map[string]bool{}
	for _, m := range restore {
		if err := a.store.RestoreHours(m.TaskID, m.Hours); err != nil {
			a.fail("restore hours", err)
		}
	}
	a.report = review.Categorize(a.store.Tasks(), nextRef, a.config.DueSoonDays())
	a.daySel = 0
	a.statusMsg = fmt.Sprintf("Rescheduled from %s after missing %s.", nextRef.Format(task.DeadlineLayout), day)
	a.logf("missed %s (%d sessions), rescheduled from %s", day, len(missed), nextRef.Format(task.DeadlineLayout))
}

func (a *App) fail(action string, err error) {
	a.errMsg = fmt.Sprintf("%s: %v", action, err)
	a.logf("%s failed: %v", action, err)
}

func (a *App) logf(format string, args ...any) {
	if a.logger == nil {
		return
	}
	a.logger.Printf(format, args...)
}
