// Package store persists the full task collection to a single JSON file.
//
// The whole collection is loaded at startup and rewritten after every
// mutation. There is no file locking and no atomic rename, so two
// concurrent invocations are last-writer-wins. That is a known limitation
// of a single-user local tool, not something this package tries to fix.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"vibetask/internal/model"
)

const (
	appDir    = "vibetask"
	tasksFile = "tasks.json"
)

// fileData is the on-disk layout: the id counter is persisted alongside
// the collection so that deleted ids are never handed out again.
type fileData struct {
	NextID int          `json:"next_id"`
	Tasks  []model.Task `json:"tasks"`
}

// Store reads and overwrites the task collection at Path.
type Store struct {
	Path string
}

// New creates a Store backed by the given file path.
func New(path string) *Store {
	return &Store{Path: path}
}

// DefaultPath returns the per-user location of the task file,
// $HOME/.config/vibetask/tasks.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appDir, tasksFile), nil
}

// Load reads the full collection and the id counter from the backing file.
// A missing file yields an empty collection and a counter of 1. A file that
// exists but cannot be read or parsed is an error; corruption is surfaced,
// never replaced with an empty collection.
func (s *Store) Load() ([]model.Task, int, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 1, nil
		}
		return nil, 0, fmt.Errorf("could not read task file '%s': %w", s.Path, err)
	}

	var fd fileData
	if err := json.Unmarshal(data, &fd); err != nil {
		return nil, 0, fmt.Errorf("could not parse task file '%s': %w", s.Path, err)
	}

	nextID := fd.NextID
	if nextID < 1 {
		// Hand-edited or pre-counter file: resume above the highest id.
		nextID = 1
		for _, t := range fd.Tasks {
			if t.ID >= nextID {
				nextID = t.ID + 1
			}
		}
	}

	return fd.Tasks, nextID, nil
}

// Save serializes the entire collection and the id counter and overwrites
// the backing file, creating the parent directory if needed.
func (s *Store) Save(tasks []model.Task, nextID int) error {
	data, err := json.MarshalIndent(fileData{NextID: nextID, Tasks: tasks}, "", "  ")
	if err != nil {
		return fmt.Errorf("could not serialize tasks: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0700); err != nil {
		return fmt.Errorf("could not create data directory: %w", err)
	}

	if err := os.WriteFile(s.Path, data, 0600); err != nil {
		return fmt.Errorf("could not write task file '%s': %w", s.Path, err)
	}
	return nil
}
