package render

import (
	"bytes"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibetask/internal/model"
)

var ansiRe = regexp.MustCompile("\x1b\\[[0-9;]*m")

// stripANSI removes color escape codes so assertions hold regardless of
// the detected terminal profile.
func stripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

func TestTasksEmptyCollection(t *testing.T) {
	var buf bytes.Buffer
	Tasks(&buf, nil)
	assert.Equal(t, "No tasks found. Add some tasks to get started! ✨\n", stripANSI(buf.String()))
}

func TestTasksRendering(t *testing.T) {
	due := time.Date(2026, 8, 27, 9, 0, 0, 0, time.Local)
	created := time.Date(2026, 8, 26, 10, 0, 0, 0, time.Local)
	end := created.Add(90 * time.Minute)

	tasks := []model.Task{
		{
			ID:          1,
			Title:       "Write report",
			Description: "Quarterly numbers",
			Priority:    model.PriorityHigh,
			Status:      model.StatusTodo,
			DueDate:     &due,
			CreatedAt:   created,
			Categories: []model.Category{
				{Name: "Work", Color: "blue", Emoji: "💼"},
				{Name: "Study", Color: "yellow", Emoji: "📚"},
			},
			TimeEntries: []model.TimeEntry{
				{StartTime: created, EndTime: &end, Duration: 90 * time.Minute},
			},
		},
		{
			ID:               2,
			Title:            "Standup",
			Priority:         model.PriorityUrgent,
			Status:           model.StatusInProgress,
			CreatedAt:        created,
			CurrentTimeEntry: &model.TimeEntry{StartTime: created},
		},
	}

	var buf bytes.Buffer
	Tasks(&buf, tasks)
	out := stripANSI(buf.String())

	assert.Contains(t, out, "Task #1: Write report")
	assert.Contains(t, out, "Description: Quarterly numbers")
	assert.Contains(t, out, "Priority: HIGH")
	assert.Contains(t, out, "Status: TODO")
	assert.Contains(t, out, "Categories: 💼 Work, 📚 Study")
	assert.Contains(t, out, "⏱️ Total time: 1.50 hours")
	assert.Contains(t, out, "Due: 2026-08-27 09:00")
	assert.Contains(t, out, "Created: 2026-08-26 10:00")

	assert.Contains(t, out, "Task #2: Standup")
	assert.Contains(t, out, "Priority: URGENT")
	assert.Contains(t, out, "Status: IN PROGRESS")
	assert.Contains(t, out, "🔄 Currently tracking time (started: 10:00:00)")
	// No closed entries, so no total line for task 2.
	assert.NotContains(t, out, "Total time: 0.00 hours")
}

func TestTimeReport(t *testing.T) {
	start := time.Date(2026, 8, 26, 9, 0, 0, 0, time.Local)
	end := start.Add(time.Hour)
	now := start.Add(2 * time.Hour)

	task := model.Task{
		ID:    3,
		Title: "Write report",
		TimeEntries: []model.TimeEntry{
			{StartTime: start, EndTime: &end, Duration: time.Hour},
		},
		CurrentTimeEntry: &model.TimeEntry{StartTime: end.Add(30 * time.Minute)},
	}

	var buf bytes.Buffer
	TimeReport(&buf, task, now)
	out := stripANSI(buf.String())

	assert.Contains(t, out, "Time Report for Task #3: Write report")
	assert.Contains(t, out, "Session 1:")
	assert.Contains(t, out, "Start: 2026-08-26 09:00:00")
	assert.Contains(t, out, "End: 2026-08-26 10:00:00")
	assert.Contains(t, out, "Duration: 1.00 hours")
	assert.Contains(t, out, "Current session:")
	assert.Contains(t, out, "Started: 2026-08-26 10:30:00")
	assert.Contains(t, out, "Running for: 0.50 hours")
	// Total is the closed hour plus the running half hour.
	assert.Contains(t, out, "Total time spent: 1.50 hours")
}

func TestTimeReportNoEntries(t *testing.T) {
	var buf bytes.Buffer
	TimeReport(&buf, model.Task{ID: 1, Title: "idle"}, time.Now())
	assert.Contains(t, stripANSI(buf.String()), "No time entries recorded for this task.")
}

func TestTimeReportPlainHasNoEscapeCodes(t *testing.T) {
	start := time.Date(2026, 8, 26, 9, 0, 0, 0, time.Local)
	end := start.Add(time.Hour)
	task := model.Task{
		ID:          1,
		Title:       "Write report",
		TimeEntries: []model.TimeEntry{{StartTime: start, EndTime: &end, Duration: time.Hour}},
	}

	var buf bytes.Buffer
	TimeReportPlain(&buf, task, end)
	require.NotContains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "Total time spent: 1.00 hours")
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{name: "zero", d: 0, want: "0.00 hours"},
		{name: "half hour", d: 30 * time.Minute, want: "0.50 hours"},
		{name: "ninety minutes", d: 90 * time.Minute, want: "1.50 hours"},
		{name: "quarter", d: 15 * time.Minute, want: "0.25 hours"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatHours(tt.d))
		})
	}
}
