// Package prefs keeps small integer preferences, such as the best score, in a
// yaml file in the user's config directory.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

const fileName = "prefs.yaml"

// DefaultPath returns <user config dir>/mococo/prefs.yaml, falling back to the
// working directory when no config dir is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return fileName
	}
	return filepath.Join(dir, "mococo", fileName)
}

// File is a yaml backed store. Every SetInt rewrites the whole file.
type File struct {
	mu     sync.Mutex
	path   string
	values map[string]int
}

// Open loads path. A missing file is an empty store.
func Open(path string) (*File, error) {
	f := &File{path: path, values: map[string]int{}}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return f, fmt.Errorf("prefs: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &f.values); err != nil {
		f.values = map[string]int{}
		return f, fmt.Errorf("prefs: parse %s: %w", path, err)
	}
	if f.values == nil {
		f.values = map[string]int{}
	}
	return f, nil
}

func (f *File) Path() string {
	return f.path
}

func (f *File) GetInt(key string, def int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.values[key]; ok {
		return v
	}
	return def
}

// SetInt stores value and writes the file. The in-memory value is kept even
// when the write fails.
func (f *File) SetInt(key string, value int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return f.save()
}

// save writes to a temp file and renames it over the old one so a crash never
// leaves a half written file behind.
func (f *File) save() error {
	data, err := yaml.Marshal(f.values)
	if err != nil {
		return fmt.Errorf("prefs: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("prefs: mkdir: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("prefs: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("prefs: replace %s: %w", f.path, err)
	}
	return nil
}

// Memory is a store that forgets everything on exit.
type Memory struct {
	mu     sync.Mutex
	values map[string]int
}

func NewMemory() *Memory {
	return &Memory{values: map[string]int{}}
}

func (m *Memory) GetInt(key string, def int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.values[key]; ok {
		return v
	}
	return def
}

func (m *Memory) SetInt(key string, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
