// Package store provides the persisted boolean stores that feature flag
// overrides are read from.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/wilbur182/flagreg/internal/config"
)

// Namespace is the store namespace holding feature flag overrides.
const Namespace = "featureFlags"

// ErrUnsupportedBackend is returned by Open for an unknown backend name.
var ErrUnsupportedBackend = errors.New("store: unsupported backend")

// Store reads namespaced boolean values. A missing key, or any failure to
// read it, yields def.
type Store interface {
	GetBoolean(namespace, key string, def bool) bool
}

// Editor persists boolean values.
type Editor interface {
	SetBoolean(namespace, key string, value bool) error
	Remove(namespace, key string) error
}

// Backend is a store that can be edited, refreshed from its medium and closed.
type Backend interface {
	Store
	Editor
	Reload() error
	Close() error
}

// Open returns the backend selected by cfg.
func Open(cfg *config.Config, logger *slog.Logger) (Backend, error) {
	path := cfg.StorePath()
	switch cfg.Store.Backend {
	case config.BackendJSON, "":
		return OpenFile(path, logger)
	case config.BackendSQLite:
		return OpenSQLite(path, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, cfg.Store.Backend)
	}
}

// Memory is an in-process store.
type Memory struct {
	mu     sync.RWMutex
	values map[string]map[string]bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]map[string]bool)}
}

// GetBoolean implements Store.
func (m *Memory) GetBoolean(namespace, key string, def bool) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.values[namespace][key]; ok {
		return v
	}
	return def
}

// SetBoolean implements Editor.
func (m *Memory) SetBoolean(namespace, key string, value bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ns, ok := m.values[namespace]
	if !ok {
		ns = make(map[string]bool)
		m.values[namespace] = ns
	}
	ns[key] = value
	return nil
}

// Remove implements Editor.
func (m *Memory) Remove(namespace, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values[namespace], key)
	return nil
}

// Reload is a no-op; memory is always current.
func (m *Memory) Reload() error { return nil }

// Close is a no-op.
func (m *Memory) Close() error { return nil }
