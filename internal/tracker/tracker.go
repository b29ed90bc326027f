// Package tracker implements the task operations over the stored collection.
//
// A Tracker loads the full collection once, mutates it in memory, and
// rewrites the backing file after every mutating operation.
package tracker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"vibetask/internal/model"
	"vibetask/internal/store"
)

// Recoverable operation outcomes. Callers report these and exit cleanly.
var (
	ErrNotFound        = errors.New("task not found")
	ErrTimerRunning    = errors.New("time tracking already running")
	ErrTimerNotRunning = errors.New("no active time tracking")
	ErrEmptyTitle      = errors.New("title required")
)

// Tracker holds the in-memory task collection for one invocation.
type Tracker struct {
	store  *store.Store
	tasks  []model.Task
	nextID int

	// Now supplies the current time; overridable in tests.
	Now func() time.Time
}

// Open loads the collection from s.
func Open(s *store.Store) (*Tracker, error) {
	tasks, nextID, err := s.Load()
	if err != nil {
		return nil, err
	}
	return &Tracker{
		store:  s,
		tasks:  tasks,
		nextID: nextID,
		Now:    time.Now,
	}, nil
}

// Tasks returns the collection in insertion order.
func (t *Tracker) Tasks() []model.Task {
	return t.tasks
}

// Get returns the task with the given id.
func (t *Tracker) Get(id int) (model.Task, error) {
	task := t.find(id)
	if task == nil {
		return model.Task{}, ErrNotFound
	}
	return *task, nil
}

// AddParams are the inputs for creating a task.
type AddParams struct {
	Title       string
	Description string
	Priority    model.Priority
	DueDate     *time.Time
}

// Add creates a task with the next counter id, status Todo and an empty
// category and time-tracking history, appends it and persists.
func (t *Tracker) Add(p AddParams) (model.Task, error) {
	if strings.TrimSpace(p.Title) == "" {
		return model.Task{}, ErrEmptyTitle
	}

	task := model.Task{
		ID:          t.nextID,
		Title:       p.Title,
		Description: p.Description,
		Priority:    p.Priority,
		Status:      model.StatusTodo,
		DueDate:     p.DueDate,
		CreatedAt:   t.Now(),
	}

	t.tasks = append(t.tasks, task)
	t.nextID++

	if err := t.save(); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// Complete marks the task as done and persists.
func (t *Tracker) Complete(id int) error {
	task := t.find(id)
	if task == nil {
		return ErrNotFound
	}
	task.Status = model.StatusDone
	return t.save()
}

// SetStatus overwrites the task's status and persists.
func (t *Tracker) SetStatus(id int, status model.Status) error {
	task := t.find(id)
	if task == nil {
		return ErrNotFound
	}
	task.Status = status
	return t.save()
}

// Delete removes the task from the collection and persists. Its id is
// never reassigned; the counter only moves forward.
func (t *Tracker) Delete(id int) error {
	for i := range t.tasks {
		if t.tasks[i].ID == id {
			t.tasks = append(t.tasks[:i], t.tasks[i+1:]...)
			return t.save()
		}
	}
	return ErrNotFound
}

// SetCategories replaces the task's categories wholesale with the given
// snapshot copies and persists. Previous categories are discarded.
func (t *Tracker) SetCategories(id int, categories []model.Category) error {
	task := t.find(id)
	if task == nil {
		return ErrNotFound
	}
	task.Categories = categories
	return t.save()
}

// StartTimer opens a time entry for the task at the current instant.
// A task can have at most one open entry.
func (t *Tracker) StartTimer(id int) error {
	task := t.find(id)
	if task == nil {
		return ErrNotFound
	}
	if task.CurrentTimeEntry != nil {
		return ErrTimerRunning
	}
	task.CurrentTimeEntry = &model.TimeEntry{StartTime: t.Now()}
	return t.save()
}

// StopTimer closes the task's open entry, appends it to the history,
// clears the current entry and persists. Returns the closed entry.
func (t *Tracker) StopTimer(id int) (model.TimeEntry, error) {
	task := t.find(id)
	if task == nil {
		return model.TimeEntry{}, ErrNotFound
	}
	if task.CurrentTimeEntry == nil {
		return model.TimeEntry{}, ErrTimerNotRunning
	}

	entry := *task.CurrentTimeEntry
	end := t.Now()
	entry.EndTime = &end
	entry.Duration = end.Sub(entry.StartTime)

	task.TimeEntries = append(task.TimeEntries, entry)
	task.CurrentTimeEntry = nil

	if err := t.save(); err != nil {
		return model.TimeEntry{}, err
	}
	return entry, nil
}

func (t *Tracker) find(id int) *model.Task {
	for i := range t.tasks {
		if t.tasks[i].ID == id {
			return &t.tasks[i]
		}
	}
	return nil
}

func (t *Tracker) save() error {
	if err := t.store.Save(t.tasks, t.nextID); err != nil {
		return fmt.Errorf("could not persist tasks: %w", err)
	}
	return nil
}
