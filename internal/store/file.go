package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// ErrCorruptFile is returned when editing a flag file that could not be parsed.
// The file is left untouched; fix or delete it to edit again.
var ErrCorruptFile = errors.New("store: flag file is not valid JSON")

// File is a JSON file store of the form {"<namespace>": {"<key>": bool}}.
// Values are cached in memory; Reload re-reads the file.
type File struct {
	path   string
	logger *slog.Logger

	mu     sync.RWMutex
	values map[string]map[string]bool
	// corrupt is the parse error from the last Reload, if any.
	corrupt error
}

// OpenFile opens the JSON store at path. A missing file is an empty store.
func OpenFile(path string, logger *slog.Logger) (*File, error) {
	if logger == nil {
		logger = slog.Default()
	}
	f := &File{
		path:   path,
		logger: logger,
		values: make(map[string]map[string]bool),
	}
	if err := f.Reload(); err != nil {
		return nil, err
	}
	return f, nil
}

// Path returns the backing file path.
func (f *File) Path() string { return f.path }

// Reload re-reads the backing file. An unparseable file is logged and
// treated as empty so every flag falls back to its default.
func (f *File) Reload() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			f.replace(make(map[string]map[string]bool), nil)
			return nil
		}
		return err
	}

	values := make(map[string]map[string]bool)
	var corrupt error
	if len(data) > 0 {
		if err := json.Unmarshal(data, &values); err != nil {
			f.logger.Warn("store: unreadable flag file, using defaults", "path", f.path, "err", err)
			values = make(map[string]map[string]bool)
			corrupt = err
		}
	}
	f.replace(values, corrupt)
	return nil
}

func (f *File) replace(values map[string]map[string]bool, corrupt error) {
	f.mu.Lock()
	f.values = values
	f.corrupt = corrupt
	f.mu.Unlock()
}

// GetBoolean implements Store.
func (f *File) GetBoolean(namespace, key string, def bool) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if v, ok := f.values[namespace][key]; ok {
		return v
	}
	return def
}

// SetBoolean implements Editor. The file is re-read first so concurrent
// edits from other processes are not lost.
func (f *File) SetBoolean(namespace, key string, value bool) error {
	return f.update(func(values map[string]map[string]bool) {
		ns, ok := values[namespace]
		if !ok {
			ns = make(map[string]bool)
			values[namespace] = ns
		}
		ns[key] = value
	})
}

// Remove implements Editor.
func (f *File) Remove(namespace, key string) error {
	return f.update(func(values map[string]map[string]bool) {
		delete(values[namespace], key)
		if len(values[namespace]) == 0 {
			delete(values, namespace)
		}
	})
}

func (f *File) update(mutate func(map[string]map[string]bool)) error {
	if err := f.Reload(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// Writing now would replace the user's overrides with only this edit.
	if f.corrupt != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptFile, f.path, f.corrupt)
	}

	mutate(f.values)

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return err
	}

	// Write-then-rename so watchers never observe a half-written file.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// Close is a no-op; the file is not held open.
func (f *File) Close() error { return nil }
