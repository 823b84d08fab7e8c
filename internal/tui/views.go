// internal/tui/views.go
//
// Rendering for every screen. All views are plain strings assembled with
// lipgloss styles; nothing here mutates state.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kavinms/studyplan/internal/planner"
	"github.com/kavinms/studyplan/internal/task"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF")).
			Padding(0, 1)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#98C379"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B"))
	dayStyle    = lipgloss.NewStyle().Bold(true)
	daySelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF")).
			Underline(true)
)

func priorityLabel(p task.Priority) string {
	switch p {
	case task.PriorityHigh:
		return errorStyle.Render("High")
	case task.PriorityLow:
		return statusStyle.Render("Low")
	default:
		return warnStyle.Render("Medium")
	}
}

// View renders the current screen.
func (a *App) View() string {
	var content string
	switch a.state {
	case stateMenu:
		content = a.menu.View()
	case stateTasks:
		content = a.viewTasks()
	case stateAddTask:
		content = a.viewAddForm()
	case stateHours:
		content = a.viewHoursForm()
	case statePlan:
		content = a.viewPlan()
	}
	var footer []string
	if a.errMsg != "" {
		footer = append(footer, errorStyle.Render(a.errMsg))
	}
	if a.statusMsg != "" {
		footer = append(footer, statusStyle.Render(a.statusMsg))
	}
	if len(footer) == 0 {
		return content
	}
	return content + "\n" + strings.Join(footer, "\n")
}

func (a *App) viewTasks() string {
	var b strings.Builder
	title := "Tasks"
	if a.subjectFilter != "" {
		title = fmt.Sprintf("Tasks · %s", a.subjectFilter)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	all := a.store.Tasks()
	done := 0
	for _, t := range all {
		if t.Completed {
			done++
		}
	}
	if len(all) > 0 {
		fmt.Fprintf(&b, "%s\n\n", hintStyle.Render(fmt.Sprintf("%d tasks · %d done (%.0f%%)",
			len(all), done, float64(done)/float64(len(all))*100)))
	}
	if len(a.tasks) == 0 {
		if a.subjectFilter != "" {
			b.WriteString(hintStyle.Render(fmt.Sprintf("No tasks for %s.", a.subjectFilter)))
		} else {
			b.WriteString(hintStyle.Render("No tasks yet. Press a to add one."))
		}
		b.WriteString("\n")
	}
	for i, t := range a.tasks {
		cursor := "  "
		if i == a.cursor {
			cursor = "> "
		}
		status := "pending"
		if t.Completed {
			status = "done"
		}
		fmt.Fprintf(&b, "%s%s [%s]  due %s  %.4gh  %s  (%s)\n",
			cursor, t.Title, t.Subject, t.Deadline, t.Hours, priorityLabel(t.Priority), status)
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("a add · e edit · c complete · d delete · s subject filter · esc back"))
	return b.String()
}

func (a *App) viewAddForm() string {
	labels := [fieldCount]string{"Title", "Subject", "Deadline", "Estimated hours", "Priority"}
	var b strings.Builder
	title := "Add task"
	if a.editID != "" {
		title = "Edit task"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	for i, label := range labels {
		fmt.Fprintf(&b, "%-16s %s\n", label, a.form[i].View())
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("enter next/submit · tab cycle · esc cancel"))
	return b.String()
}

func (a *App) viewHoursForm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Weekly hours"))
	b.WriteString("\n\n")
	for i, day := range planner.Week {
		fmt.Fprintf(&b, "%-10s %s\n", day, a.hoursForm[i].View())
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("enter next/save · tab cycle · esc cancel"))
	return b.String()
}

func (a *App) viewPlan() string {
	if !a.hasPlan {
		return hintStyle.Render("No plan yet. Press g to generate one.")
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Weekly plan · starting %s", a.plan.Start.Format(task.DeadlineLayout))))
	b.WriteString("\n\n")

	for _, t := range a.report.Overdue {
		fmt.Fprintf(&b, "%s\n", errorStyle.Render(fmt.Sprintf("Overdue: %s (%s), deadline %s", t.Title, t.Subject, t.Deadline)))
	}
	for _, t := range a.report.DueSoon {
		fmt.Fprintf(&b, "%s\n", warnStyle.Render(fmt.Sprintf("Due soon: %s (%s), deadline %s", t.Title, t.Subject, t.Deadline)))
	}
	if len(a.report.Overdue)+len(a.report.DueSoon) > 0 {
		b.WriteString("\n")
	}

	for i := 0; i < 7; i++ {
		date := a.plan.Start.AddDate(0, 0, i)
		day := planner.WeekdayName(date)
		header := fmt.Sprintf("%s  %s", day, date.Format(task.DeadlineLayout))
		if a.doneDays[day] {
			header += "  (done)"
		}
		if i == a.daySel {
			b.WriteString(daySelStyle.Render(header))
		} else {
			b.WriteString(dayStyle.Render(header))
		}
		b.WriteString("\n")
		sessions := a.plan.Days[day]
		if len(sessions) == 0 {
			b.WriteString(hintStyle.Render("  no planned sessions"))
			b.WriteString("\n")
		}
		for _, s := range sessions {
			fmt.Fprintf(&b, "  - %s (%s)  %.4gh  due %s  %s\n",
				s.Title, s.Subject, s.Hours, s.Deadline, priorityLabel(s.Priority))
		}
	}

	if len(a.shortfall) > 0 {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render("Not enough hours to fully cover:"))
		b.WriteString("\n")
		for _, sf := range a.shortfall {
			fmt.Fprintf(&b, "  - %s (%s) still needs %.4gh before %s\n",
				sf.Title, sf.Subject, sf.Remaining, sf.Deadline)
		}
	} else {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render("All tasks fully scheduled within the available hours."))
		b.WriteString("\n")
	}

	totals := planner.SubjectHours(a.plan)
	if len(totals) > 0 {
		b.WriteString("\nPlanned hours by subject:\n")
		for _, subject := range subjectOrder(a.plan) {
			fmt.Fprintf(&b, "  %-16s %.4gh\n", subject, totals[subject])
		}
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("←/→ select day · x day done · m day missed · g regenerate · esc back"))
	return b.String()
}

// subjectOrder lists plan subjects in first-appearance order so the summary
// is stable run to run.
func subjectOrder(p planner.Plan) []string {
	seen := map[string]struct{}{}
	var subjects []string
	for _, day := range planner.Week {
		for _, s := range p.Days[day] {
			if _, ok := seen[s.Subject]; ok {
				continue
			}
			seen[s.Subject] = struct{}{}
			subjects = append(subjects, s.Subject)
		}
	}
	return subjects
}
