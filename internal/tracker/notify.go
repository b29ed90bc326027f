package tracker

import (
	"fmt"
	"time"

	"vibetask/internal/model"
	"vibetask/internal/notify"
)

// Notification windows: a task qualifies when it is due within dueWindow,
// and reminders for the same task are spaced at least cooldown apart.
const (
	dueWindow = 24 * time.Hour
	cooldown  = 6 * time.Hour
)

// Reminder describes one due-date notification that was delivered.
type Reminder struct {
	TaskID int
	Title  string
	Body   string
}

// CheckNotifications scans every task with a due date and delivers a
// reminder for each one due within 24 hours whose last reminder is at
// least 6 hours old (or that has never been reminded).
//
// Candidates are collected in a read-only pass first; each then gets one
// delivery attempt. Only a successful delivery updates the task's
// last-notification time. Delivery failures are returned but do not stop
// the scan. The collection is persisted once at the end.
func (t *Tracker) CheckNotifications(n notify.Notifier) ([]Reminder, []error, error) {
	now := t.Now()

	var candidates []int
	for i := range t.tasks {
		if t.eligible(&t.tasks[i], now) {
			candidates = append(candidates, i)
		}
	}

	var sent []Reminder
	var failures []error
	for _, i := range candidates {
		task := &t.tasks[i]
		body := dueMessage(task.Title, task.DueDate.Sub(now))
		if err := n.Send("Task Due Soon!", body); err != nil {
			failures = append(failures, fmt.Errorf("task %d: %w", task.ID, err))
			continue
		}
		stamp := now
		task.LastNotification = &stamp
		sent = append(sent, Reminder{TaskID: task.ID, Title: task.Title, Body: body})
	}

	if err := t.save(); err != nil {
		return sent, failures, err
	}
	return sent, failures, nil
}

func (t *Tracker) eligible(task *model.Task, now time.Time) bool {
	if task.DueDate == nil {
		return false
	}
	// Whole-hour granularity: a task 30 minutes overdue still counts as
	// "due now", and one due in 24h59m is still inside the window.
	hours := int(task.DueDate.Sub(now).Hours())
	if hours < 0 || hours > int(dueWindow.Hours()) {
		return false
	}
	if task.LastNotification != nil && now.Sub(*task.LastNotification) < cooldown {
		return false
	}
	return true
}

func dueMessage(title string, until time.Duration) string {
	hours := int(until.Hours())
	if hours == 0 {
		return fmt.Sprintf("Task '%s' is due now!", title)
	}
	return fmt.Sprintf("Task '%s' is due in %d hours!", title, hours)
}
