package config

import (
	"path/filepath"
	"time"
)

// Store backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

const (
	defaultDebounce    = 100 * time.Millisecond
	defaultStoreFile   = "flags.json"
	defaultSQLiteFile  = "flags.db"
	defaultMetricsAddr = ""
)

// Config is the root configuration structure.
type Config struct {
	Store   StoreConfig   `json:"store"`
	Runtime RuntimeConfig `json:"runtime"`
	Watch   WatchConfig   `json:"watch"`
	Metrics MetricsConfig `json:"metrics"`
	UI      UIConfig      `json:"ui"`

	// path is the file this config was loaded from, if any.
	path string
}

// StoreConfig selects where flag overrides are persisted.
type StoreConfig struct {
	Backend string `json:"backend"` // "json" or "sqlite"
	Path    string `json:"path"`    // empty means a file next to the config
}

// RuntimeConfig holds the capability inputs read at flag construction time.
type RuntimeConfig struct {
	// Debug forces the debug runtime even for release builds.
	Debug bool `json:"debug"`
	// DeveloperOptions mirrors the user-level "developer options" setting.
	DeveloperOptions bool `json:"developerOptions"`
}

// WatchConfig configures the store file watcher.
type WatchConfig struct {
	Enabled  bool          `json:"enabled"`
	Debounce time.Duration `json:"debounce"`
}

// MetricsConfig configures the prometheus endpoint served by "flagctl watch".
type MetricsConfig struct {
	Addr string `json:"addr"` // e.g. ":9102"; empty disables
}

// UIConfig configures list output.
type UIConfig struct {
	Color bool `json:"color"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendJSON,
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: defaultDebounce,
		},
		Metrics: MetricsConfig{
			Addr: defaultMetricsAddr,
		},
		UI: UIConfig{
			Color: true,
		},
	}
}

// Validate checks the configuration for errors, repairing values that have a
// sensible fallback.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendJSON, BackendSQLite:
	case "":
		c.Store.Backend = BackendJSON
	default:
		return &ValidationError{Field: "store.backend", Value: c.Store.Backend}
	}
	if c.Watch.Debounce <= 0 {
		c.Watch.Debounce = defaultDebounce
	}
	return nil
}

// StorePath returns the configured store path, or the backend's default file
// next to the config file.
func (c *Config) StorePath() string {
	if c.Store.Path != "" {
		return ExpandPath(c.Store.Path)
	}
	name := defaultStoreFile
	if c.Store.Backend == BackendSQLite {
		name = defaultSQLiteFile
	}
	if c.path != "" {
		return filepath.Join(filepath.Dir(c.path), name)
	}
	return configDirFile(name)
}

// ValidationError reports a config value that cannot be repaired.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return "config: invalid " + e.Field + " " + `"` + e.Value + `"`
}
