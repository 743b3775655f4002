package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	appDir     = "flagreg"
	configFile = "config.json"
)

var (
	testConfigPath   string
	testConfigPathMu sync.RWMutex
)

// SetTestConfigPath redirects ConfigPath for tests.
func SetTestConfigPath(path string) {
	testConfigPathMu.Lock()
	defer testConfigPathMu.Unlock()
	testConfigPath = path
}

// ResetTestConfigPath restores the default ConfigPath.
func ResetTestConfigPath() {
	SetTestConfigPath("")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	testConfigPathMu.RLock()
	p := testConfigPath
	testConfigPathMu.RUnlock()
	if p != "" {
		return p
	}
	return filepath.Join(configDir(), configFile)
}

func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return appDir
	}
	return filepath.Join(home, ".config", appDir)
}

// configDirFile returns name inside the directory holding the config file.
func configDirFile(name string) string {
	return filepath.Join(filepath.Dir(ConfigPath()), name)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// rawConfig mirrors saveConfig for decoding; durations arrive as strings and
// pointer fields tell an omitted value from a zero one.
type rawConfig struct {
	Store   *StoreConfig   `json:"store"`
	Runtime *RuntimeConfig `json:"runtime"`
	Watch   *struct {
		Enabled  *bool  `json:"enabled"`
		Debounce string `json:"debounce"`
	} `json:"watch"`
	Metrics *struct {
		Addr *string `json:"addr"`
	} `json:"metrics"`
	UI *struct {
		Color *bool `json:"color"`
	} `json:"ui"`
}

// Load reads the config from the default location.
// A missing file yields the default configuration.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the config from path, layering file values over defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := mergeConfig(cfg, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func mergeConfig(cfg *Config, raw *rawConfig) error {
	if raw.Store != nil {
		if raw.Store.Backend != "" {
			cfg.Store.Backend = raw.Store.Backend
		}
		cfg.Store.Path = raw.Store.Path
	}
	if raw.Runtime != nil {
		cfg.Runtime = *raw.Runtime
	}
	if raw.Watch != nil {
		if raw.Watch.Enabled != nil {
			cfg.Watch.Enabled = *raw.Watch.Enabled
		}
		if raw.Watch.Debounce != "" {
			d, err := time.ParseDuration(raw.Watch.Debounce)
			if err != nil {
				return fmt.Errorf("watch.debounce: %w", err)
			}
			cfg.Watch.Debounce = d
		}
	}
	if raw.Metrics != nil && raw.Metrics.Addr != nil {
		cfg.Metrics.Addr = *raw.Metrics.Addr
	}
	if raw.UI != nil && raw.UI.Color != nil {
		cfg.UI.Color = *raw.UI.Color
	}
	return nil
}
