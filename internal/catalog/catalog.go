// Package catalog loads the category catalog tasks can be tagged with.
//
// The catalog lives in a per-user YAML file so new categories can be added
// without rebuilding. When the file is absent the built-in defaults apply.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"vibetask/internal/model"
)

const catalogFile = "categories.yml"

// fileData matches the YAML layout of the catalog file.
type fileData struct {
	Categories []model.Category `yaml:"categories"`
}

// Default returns the built-in category catalog.
func Default() []model.Category {
	return []model.Category{
		{Name: "Work", Color: "blue", Emoji: "💼"},
		{Name: "Personal", Color: "green", Emoji: "🏠"},
		{Name: "Study", Color: "yellow", Emoji: "📚"},
		{Name: "Health", Color: "red", Emoji: "💪"},
		{Name: "Shopping", Color: "cyan", Emoji: "🛒"},
	}
}

// DefaultPath returns the per-user location of the catalog file,
// $HOME/.config/vibetask/categories.yml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "vibetask", catalogFile), nil
}

// Load reads the catalog from the given path. A missing file yields the
// built-in defaults; an unreadable or malformed file is an error.
func Load(path string) ([]model.Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("could not read catalog file '%s': %w", path, err)
	}

	var fd fileData
	if err := yaml.Unmarshal(data, &fd); err != nil {
		return nil, fmt.Errorf("could not parse catalog file '%s': %w", path, err)
	}
	if len(fd.Categories) == 0 {
		return Default(), nil
	}
	return fd.Categories, nil
}
