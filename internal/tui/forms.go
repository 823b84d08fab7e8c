// internal/tui/forms.go
//
// Text-input forms: adding a task and editing the weekly hour budget.

package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kavinms/studyplan/internal/planner"
	"github.com/kavinms/studyplan/internal/task"
)

// Add-task form field order.
const (
	fieldTitle = iota
	fieldSubject
	fieldDeadline
	fieldHours
	fieldPriority
	fieldCount
)

func (a *App) enterAddForm() {
	a.editID = ""
	a.setupTaskForm(task.Task{})
}

// enterEditForm opens the task form pre-filled with an existing task.
func (a *App) enterEditForm(t task.Task) {
	a.editID = t.ID
	a.setupTaskForm(t)
}

func (a *App) setupTaskForm(t task.Task) {
	placeholders := [fieldCount]string{
		"e.g. TestNG assignment",
		"e.g. Java, AI",
		"YYYY-MM-DD",
		"e.g. 4 or 1.5",
		"High / Medium / Low",
	}
	hours := ""
	if t.Hours > 0 {
		hours = strconv.FormatFloat(t.Hours, 'f', -1, 64)
	}
	values := [fieldCount]string{t.Title, t.Subject, t.Deadline, hours, string(t.Priority)}
	a.form = make([]textinput.Model, fieldCount)
	for i := range a.form {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 80
		ti.Width = 40
		ti.SetValue(values[i])
		a.form[i] = ti
	}
	a.form[fieldTitle].Focus()
	a.formFocus = fieldTitle
	a.errMsg = ""
	a.state = stateAddTask
}

func (a *App) updateAddForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.state = stateMenu
		return a, nil
	case "enter":
		if a.formFocus < fieldCount-1 {
			return a, a.focusFormField(a.formFocus + 1)
		}
		return a, a.submitAddForm()
	case "tab", "down":
		return a, a.focusFormField((a.formFocus + 1) % fieldCount)
	case "shift+tab", "up":
		return a, a.focusFormField((a.formFocus + fieldCount - 1) % fieldCount)
	}
	var cmd tea.Cmd
	a.form[a.formFocus], cmd = a.form[a.formFocus].Update(msg)
	return a, cmd
}

func (a *App) focusFormField(idx int) tea.Cmd {
	a.form[a.formFocus].Blur()
	a.formFocus = idx
	return a.form[idx].Focus()
}

func (a *App) submitAddForm() tea.Cmd {
	hours, err := strconv.ParseFloat(strings.TrimSpace(a.form[fieldHours].Value()), 64)
	if err != nil {
		a.errMsg = "Estimated hours must be a number."
		return a.focusFormField(fieldHours)
	}
	t := task.Task{
		Title:    strings.TrimSpace(a.form[fieldTitle].Value()),
		Subject:  strings.TrimSpace(a.form[fieldSubject].Value()),
		Deadline: strings.TrimSpace(a.form[fieldDeadline].Value()),
		Hours:    hours,
		Priority: task.NormalizePriority(a.form[fieldPriority].Value()),
	}
	if a.editID != "" {
		t.ID = a.editID
		for _, existing := range a.store.Tasks() {
			if existing.ID == a.editID {
				t.Completed = existing.Completed
				break
			}
		}
		if err := a.store.Update(t); err != nil {
			a.errMsg = err.Error()
			return a.focusFormField(fieldTitle)
		}
		a.logf("updated task %q (%s, due %s, %.2gh)", t.Title, t.Subject, t.Deadline, t.Hours)
		a.statusMsg = fmt.Sprintf("Updated %q.", t.Title)
		a.errMsg = ""
		a.enterTasks()
		return nil
	}
	added, err := a.store.Add(t)
	if err != nil {
		a.errMsg = err.Error()
		return a.focusFormField(fieldTitle)
	}
	a.logf("added task %q (%s, due %s, %.2gh)", added.Title, added.Subject, added.Deadline, added.Hours)
	a.statusMsg = fmt.Sprintf("Added %q.", added.Title)
	a.errMsg = ""
	a.enterTasks()
	return nil
}

func (a *App) enterHoursForm() {
	budget := a.config.WeekBudget()
	a.hoursForm = make([]textinput.Model, len(planner.Week))
	for i, day := range planner.Week {
		ti := textinput.New()
		ti.Placeholder = "0"
		ti.CharLimit = 6
		ti.Width = 8
		ti.SetValue(strconv.FormatFloat(budget[day], 'f', -1, 64))
		a.hoursForm[i] = ti
	}
	a.hoursForm[0].Focus()
	a.hoursFocus = 0
	a.errMsg = ""
	a.state = stateHours
}

func (a *App) updateHoursForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.state = stateMenu
		return a, nil
	case "enter":
		if a.hoursFocus < len(a.hoursForm)-1 {
			return a, a.focusHoursField(a.hoursFocus + 1)
		}
		a.submitHoursForm()
		return a, nil
	case "tab", "down":
		return a, a.focusHoursField((a.hoursFocus + 1) % len(a.hoursForm))
	case "shift+tab", "up":
		return a, a.focusHoursField((a.hoursFocus + len(a.hoursForm) - 1) % len(a.hoursForm))
	}
	var cmd tea.Cmd
	a.hoursForm[a.hoursFocus], cmd = a.hoursForm[a.hoursFocus].Update(msg)
	return a, cmd
}

func (a *App) focusHoursField(idx int) tea.Cmd {
	a.hoursForm[a.hoursFocus].Blur()
	a.hoursFocus = idx
	return a.hoursForm[idx].Focus()
}

func (a *App) submitHoursForm() {
	budget := planner.WeekBudget{}
	for i, day := range planner.Week {
		raw := strings.TrimSpace(a.hoursForm[i].Value())
		if raw == "" {
			budget[day] = 0
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			a.errMsg = fmt.Sprintf("%s needs a non-negative number.", day)
			a.focusHoursField(i)
			return
		}
		budget[day] = v
	}
	if err := a.config.SetWeekHours(budget); err != nil {
		a.fail("save weekly hours", err)
		return
	}
	a.logf("updated weekly hours")
	a.statusMsg = "Weekly hours saved."
	a.errMsg = ""
	a.state = stateMenu
}
