package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// saveConfig is the JSON-marshaling intermediary that uses string durations.
type saveConfig struct {
	Store   StoreConfig     `json:"store"`
	Runtime RuntimeConfig   `json:"runtime"`
	Watch   saveWatchConfig `json:"watch"`
	Metrics MetricsConfig   `json:"metrics,omitempty"`
	UI      UIConfig        `json:"ui"`
}

type saveWatchConfig struct {
	Enabled  *bool  `json:"enabled,omitempty"`
	Debounce string `json:"debounce,omitempty"`
}

// toSaveConfig converts Config to the JSON-serializable format.
func toSaveConfig(cfg *Config) saveConfig {
	return saveConfig{
		Store:   cfg.Store,
		Runtime: cfg.Runtime,
		Watch: saveWatchConfig{
			Enabled:  &cfg.Watch.Enabled,
			Debounce: cfg.Watch.Debounce.String(),
		},
		Metrics: cfg.Metrics,
		UI:      cfg.UI,
	}
}

// SaveTo writes the config to path, creating parent directories.
func SaveTo(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	sc := toSaveConfig(cfg)
	data, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
