package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"teleripper/pkg/media"
)

const partialSuffix = ".part"

// Manager owns the directory tree of a single channel:
// <base>/<sanitized title>/<category>/<file>.
type Manager struct {
	dir string
}

// NewManager creates the channel directory and one subdirectory per category.
func NewManager(baseDir, channelTitle string, categories []media.Category) (*Manager, error) {
	dir := filepath.Join(baseDir, SanitizeName(channelTitle))

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create channel directory: %w", err)
	}
	for _, c := range categories {
		if err := os.MkdirAll(filepath.Join(dir, string(c)), 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s directory: %w", c, err)
		}
	}

	return &Manager{dir: dir}, nil
}

// Dir returns the channel directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Path returns the final location of a file.
func (m *Manager) Path(category media.Category, name string) string {
	return filepath.Join(m.dir, string(category), name)
}

// Exists reports whether the file was already downloaded.
func (m *Manager) Exists(category media.Category, name string) bool {
	_, err := os.Stat(m.Path(category, name))
	return err == nil
}

// Commit runs write against a temporary path next to the final one and
// renames it into place on success. On failure the partial file is removed.
func (m *Manager) Commit(category media.Category, name string, write func(tmpPath string) error) error {
	final := m.Path(category, name)
	tmp := final + partialSuffix

	if err := write(tmp); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// SanitizeName replaces every rune that is not a letter, number, space,
// underscore or hyphen with an underscore.
func SanitizeName(name string) string {
	sanitized := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == ' ' || r == '_' || r == '-' {
			return r
		}
		return '_'
	}, name)
	if strings.TrimSpace(sanitized) == "" {
		return "untitled"
	}
	return sanitized
}
