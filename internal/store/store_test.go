package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibetask/internal/model"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "tasks.json"))
}

func TestLoadMissingFile(t *testing.T) {
	s := tempStore(t)

	tasks, nextID, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.Equal(t, 1, nextID)
}

func TestRoundTrip(t *testing.T) {
	s := tempStore(t)

	due := time.Date(2026, 8, 27, 9, 0, 0, 0, time.Local)
	start := time.Date(2026, 8, 26, 14, 0, 0, 0, time.Local)
	end := start.Add(45 * time.Minute)
	last := start.Add(-3 * time.Hour)

	tasks := []model.Task{
		{
			ID:        1,
			Title:     "Write report",
			Priority:  model.PriorityHigh,
			Status:    model.StatusTodo,
			DueDate:   &due,
			CreatedAt: start,
			Categories: []model.Category{
				{Name: "Work", Color: "blue", Emoji: "💼"},
				{Name: "Study", Color: "yellow", Emoji: "📚"},
			},
			TimeEntries: []model.TimeEntry{
				{StartTime: start, EndTime: &end, Duration: 45 * time.Minute},
			},
			LastNotification: &last,
		},
		{
			ID:               2,
			Title:            "Buy groceries",
			Priority:         model.PriorityLow,
			Status:           model.StatusDone,
			CreatedAt:        start,
			CurrentTimeEntry: &model.TimeEntry{StartTime: end},
		},
	}

	require.NoError(t, s.Save(tasks, 3))

	got, nextID, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, nextID)
	require.Len(t, got, 2)

	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, "Write report", got[0].Title)
	assert.Equal(t, model.PriorityHigh, got[0].Priority)
	assert.Equal(t, tasks[0].Categories, got[0].Categories)
	assert.True(t, got[0].DueDate.Equal(due))
	assert.True(t, got[0].LastNotification.Equal(last))
	require.Len(t, got[0].TimeEntries, 1)
	assert.Equal(t, 45*time.Minute, got[0].TimeEntries[0].Duration)
	assert.True(t, got[0].TimeEntries[0].EndTime.Equal(end))

	assert.Equal(t, model.StatusDone, got[1].Status)
	require.NotNil(t, got[1].CurrentTimeEntry)
	assert.True(t, got[1].CurrentTimeEntry.StartTime.Equal(end))
}

func TestLoadCorruptFileSurfacesError(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, os.WriteFile(s.Path, []byte("{not json"), 0600))

	_, _, err := s.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not parse task file")
}

func TestLoadDerivesCounterFromLegacyFile(t *testing.T) {
	s := tempStore(t)
	// A file without next_id resumes above the highest id present.
	content := `{"tasks":[{"id":4,"title":"a","priority":"Low","status":"Todo","created_at":"2026-08-26T10:00:00+02:00"},{"id":2,"title":"b","priority":"Low","status":"Todo","created_at":"2026-08-26T10:00:00+02:00"}]}`
	require.NoError(t, os.WriteFile(s.Path, []byte(content), 0600))

	tasks, nextID, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
	assert.Equal(t, 5, nextID)
}

func TestSaveCreatesParentDirectory(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nested", "dir", "tasks.json"))
	require.NoError(t, s.Save(nil, 1))

	_, err := os.Stat(s.Path)
	require.NoError(t, err)
}

func TestSavedFileIsPrettyPrinted(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, s.Save([]model.Task{{ID: 1, Title: "x", Priority: model.PriorityLow, Status: model.StatusTodo, CreatedAt: time.Now()}}, 2))

	data, err := os.ReadFile(s.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"next_id\": 2")
	assert.Contains(t, string(data), "\"title\": \"x\"")
	assert.Contains(t, string(data), "\"status\": \"Todo\"")
}
