// Package render formats tasks and time reports for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"vibetask/internal/model"
)

const (
	separatorWidth = 50
	timeLayout     = "2006-01-02 15:04"
	sessionLayout  = "2006-01-02 15:04:05"
)

// styleSet holds the styles applied to task output. A zero style renders
// text unchanged, which is what the plain variants rely on.
type styleSet struct {
	separator lipgloss.Style
	title     lipgloss.Style
	due       lipgloss.Style

	statusTodo       lipgloss.Style
	statusInProgress lipgloss.Style
	statusDone       lipgloss.Style

	priorityLow    lipgloss.Style
	priorityMedium lipgloss.Style
	priorityHigh   lipgloss.Style
	priorityUrgent lipgloss.Style
}

func defaultStyles() styleSet {
	return styleSet{
		separator: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		title:     lipgloss.NewStyle().Bold(true),
		due:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),

		statusTodo:       lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		statusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		statusDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),

		priorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		priorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		priorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		priorityUrgent: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

func plainStyles() styleSet {
	return styleSet{}
}

func (s styleSet) status(st model.Status) string {
	switch st {
	case model.StatusInProgress:
		return s.statusInProgress.Render("IN PROGRESS")
	case model.StatusDone:
		return s.statusDone.Render("DONE")
	default:
		return s.statusTodo.Render("TODO")
	}
}

func (s styleSet) priority(p model.Priority) string {
	switch p {
	case model.PriorityLow:
		return s.priorityLow.Render("LOW")
	case model.PriorityHigh:
		return s.priorityHigh.Render("HIGH")
	case model.PriorityUrgent:
		return s.priorityUrgent.Render("URGENT")
	default:
		return s.priorityMedium.Render("MEDIUM")
	}
}

// Tasks renders the full collection in insertion order.
func Tasks(w io.Writer, tasks []model.Task) {
	renderTasks(w, tasks, defaultStyles())
}

func renderTasks(w io.Writer, tasks []model.Task, s styleSet) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found. Add some tasks to get started! ✨")
		return
	}

	sep := s.separator.Render(strings.Repeat("=", separatorWidth))
	for _, task := range tasks {
		fmt.Fprintf(w, "\n%s\n", sep)
		fmt.Fprintf(w, "Task #%d: %s\n", task.ID, s.title.Render(task.Title))
		if task.Description != "" {
			fmt.Fprintf(w, "Description: %s\n", task.Description)
		}
		fmt.Fprintf(w, "Priority: %s\n", s.priority(task.Priority))
		fmt.Fprintf(w, "Status: %s\n", s.status(task.Status))

		if len(task.Categories) > 0 {
			labels := make([]string, len(task.Categories))
			for i, c := range task.Categories {
				labels[i] = fmt.Sprintf("%s %s", c.Emoji, c.Name)
			}
			fmt.Fprintf(w, "Categories: %s\n", strings.Join(labels, ", "))
		}

		if task.CurrentTimeEntry != nil {
			fmt.Fprintf(w, "🔄 Currently tracking time (started: %s)\n",
				task.CurrentTimeEntry.StartTime.Format("15:04:05"))
		}
		if len(task.TimeEntries) > 0 {
			fmt.Fprintf(w, "⏱️ Total time: %s\n", formatHours(task.TrackedDuration()))
		}

		if task.DueDate != nil {
			fmt.Fprintf(w, "Due: %s\n", s.due.Render(task.DueDate.Format(timeLayout)))
		}
		fmt.Fprintf(w, "Created: %s\n", task.CreatedAt.Format(timeLayout))
	}
	fmt.Fprintln(w, sep)
}

// TimeReport renders the time-tracking summary for a single task: every
// closed session, the running session if any, and the combined total.
func TimeReport(w io.Writer, task model.Task, now time.Time) {
	renderTimeReport(w, task, now, defaultStyles())
}

// TimeReportPlain renders the same report without any terminal styling,
// suitable for copying to the clipboard.
func TimeReportPlain(w io.Writer, task model.Task, now time.Time) {
	renderTimeReport(w, task, now, plainStyles())
}

func renderTimeReport(w io.Writer, task model.Task, now time.Time, s styleSet) {
	sep := s.separator.Render(strings.Repeat("=", separatorWidth))
	fmt.Fprintf(w, "\n%s\n", sep)
	fmt.Fprintf(w, "Time Report for Task #%d: %s\n", task.ID, s.title.Render(task.Title))

	if len(task.TimeEntries) == 0 && task.CurrentTimeEntry == nil {
		fmt.Fprintln(w, "No time entries recorded for this task.")
		fmt.Fprintln(w, sep)
		return
	}

	for i, entry := range task.TimeEntries {
		fmt.Fprintf(w, "\nSession %d:\n", i+1)
		fmt.Fprintf(w, "Start: %s\n", entry.StartTime.Format(sessionLayout))
		if entry.EndTime != nil {
			fmt.Fprintf(w, "End: %s\n", entry.EndTime.Format(sessionLayout))
		}
		fmt.Fprintf(w, "Duration: %s\n", formatHours(entry.Duration))
	}

	total := task.TrackedDuration()
	if task.CurrentTimeEntry != nil {
		elapsed := task.Elapsed(now)
		total += elapsed
		fmt.Fprintln(w, "\nCurrent session:")
		fmt.Fprintf(w, "Started: %s\n", task.CurrentTimeEntry.StartTime.Format(sessionLayout))
		fmt.Fprintf(w, "Running for: %s\n", formatHours(elapsed))
	}

	fmt.Fprintf(w, "\nTotal time spent: %s\n", formatHours(total))
	fmt.Fprintln(w, sep)
}

// formatHours renders a duration as fractional hours, e.g. "1.50 hours".
func formatHours(d time.Duration) string {
	return fmt.Sprintf("%.2f hours", d.Minutes()/60)
}
