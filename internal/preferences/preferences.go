// Package preferences persists small user choices (theme, last dashboard tab)
// behind a key/value Repository. Reads never fail: a missing or corrupt file reads
// as "no value". Writes fail with *errors.PersistenceWriteFailure.
package preferences

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/alexisbeaulieu97/stockroom/internal/logger"
	apperrors "github.com/alexisbeaulieu97/stockroom/pkg/errors"
)

// Well-known keys.
const (
	KeyTheme = "theme"
	KeyTab   = "tab"
)

// Repository loads and saves string values by key.
type Repository interface {
	Load(key string) (string, bool)
	Save(key, value string) error
}

// JSONFile stores a flat JSON object such as {"theme": "dark"}.
type JSONFile struct {
	path   string
	log    *logger.Logger
	mu     sync.RWMutex
	values map[string]string
}

// OpenJSONFile reads path if it exists. A missing or unparsable file starts empty.
func OpenJSONFile(path string, log *logger.Logger) *JSONFile {
	f := &JSONFile{path: path, log: log, values: map[string]string{}}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		log.Warn("preference file unreadable, using defaults", "path", path, "error", err.Error())
	default:
		if err := json.Unmarshal(data, &f.values); err != nil || f.values == nil {
			log.Warn("preference file corrupt, using defaults", "path", path)
			f.values = map[string]string{}
		}
	}
	return f
}

func (f *JSONFile) Load(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	v, ok := f.values[key]
	return v, ok
}

// Save records value in memory and writes the whole object atomically. The
// in-memory value is kept even when the write fails.
func (f *JSONFile) Save(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values[key] = value
	data, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return apperrors.NewPersistenceWriteFailure(f.path, key, err)
	}
	if err := writeAtomic(f.path, data); err != nil {
		return apperrors.NewPersistenceWriteFailure(f.path, key, err)
	}
	return nil
}

// TextFile stores a single plain-text value, such as the last active tab name.
// Every key maps to the same file.
type TextFile struct {
	path string
	mu   sync.Mutex
}

func OpenTextFile(path string) *TextFile {
	return &TextFile{path: path}
}

func (t *TextFile) Load(string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	data, err := os.ReadFile(t.path)
	if err != nil {
		return "", false
	}
	v := strings.TrimSpace(string(data))
	return v, v != ""
}

func (t *TextFile) Save(key, value string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := writeAtomic(t.path, []byte(value)); err != nil {
		return apperrors.NewPersistenceWriteFailure(t.path, key, err)
	}
	return nil
}

// Memory is an in-process Repository.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
	// Err, when set, is returned by Save after the value is recorded.
	Err error
}

func NewMemory() *Memory {
	return &Memory{values: map[string]string{}}
}

func (m *Memory) Load(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.values[key]
	return v, ok
}

func (m *Memory) Save(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	if m.Err != nil {
		return apperrors.NewPersistenceWriteFailure("memory", key, m.Err)
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temporary file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename temporary file: %w", err)
	}
	return nil
}
