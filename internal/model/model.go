// Package model defines the core data structures for vibetask.
package model

import "time"

// Priority is a task priority level. Serialized as its textual name.
type Priority string

// Priority levels, lowest to highest.
const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

// Priorities lists all priority levels in selection order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// PriorityFromIndex maps a selection index to a Priority.
// An out-of-range index falls back to Medium.
func PriorityFromIndex(i int) Priority {
	if i < 0 || i >= len(Priorities) {
		return PriorityMedium
	}
	return Priorities[i]
}

// PriorityNames returns the display names of all priority levels.
func PriorityNames() []string {
	names := make([]string, len(Priorities))
	for i, p := range Priorities {
		names[i] = string(p)
	}
	return names
}

// Status is a task lifecycle state. Serialized as its textual name.
type Status string

// Task statuses.
const (
	StatusTodo       Status = "Todo"
	StatusInProgress Status = "InProgress"
	StatusDone       Status = "Done"
)

// Statuses lists all statuses in selection order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// StatusFromIndex maps a selection index to a Status.
// An out-of-range index falls back to Todo.
func StatusFromIndex(i int) Status {
	if i < 0 || i >= len(Statuses) {
		return StatusTodo
	}
	return Statuses[i]
}

// StatusNames returns the display names of all statuses.
func StatusNames() []string {
	names := make([]string, len(Statuses))
	for i, s := range Statuses {
		names[i] = string(s)
	}
	return names
}

// Category is a label attached to a task for organization and display.
// Tasks hold snapshot copies, so later catalog changes never affect
// already-tagged tasks.
type Category struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
	Emoji string `json:"emoji" yaml:"emoji"`
}

// TimeEntry is a single tracked interval of work on a task.
// An open entry has no end time; a closed entry has both an end time
// and a duration equal to end minus start.
type TimeEntry struct {
	StartTime time.Time     `json:"start_time"`
	EndTime   *time.Time    `json:"end_time,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
}

// Open reports whether the entry is still running.
func (e TimeEntry) Open() bool {
	return e.EndTime == nil
}

// Task is a single unit of work tracked by the system.
type Task struct {
	ID               int         `json:"id"`
	Title            string      `json:"title"`
	Description      string      `json:"description,omitempty"`
	Priority         Priority    `json:"priority"`
	Status           Status      `json:"status"`
	DueDate          *time.Time  `json:"due_date,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	Categories       []Category  `json:"categories,omitempty"`
	TimeEntries      []TimeEntry `json:"time_entries,omitempty"`
	CurrentTimeEntry *TimeEntry  `json:"current_time_entry,omitempty"`
	LastNotification *time.Time  `json:"last_notification,omitempty"`
}

// TrackedDuration returns the sum of all closed time entries.
func (t *Task) TrackedDuration() time.Duration {
	var total time.Duration
	for _, e := range t.TimeEntries {
		total += e.Duration
	}
	return total
}

// Elapsed returns how long the current entry has been running as of now,
// or zero if no timer is running.
func (t *Task) Elapsed(now time.Time) time.Duration {
	if t.CurrentTimeEntry == nil {
		return 0
	}
	return now.Sub(t.CurrentTimeEntry.StartTime)
}
