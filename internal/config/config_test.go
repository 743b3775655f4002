package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Store.Backend != BackendJSON {
		t.Errorf("backend = %q, want %q", cfg.Store.Backend, BackendJSON)
	}
	if cfg.Watch.Debounce != defaultDebounce {
		t.Errorf("debounce = %v, want %v", cfg.Watch.Debounce, defaultDebounce)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := Default()
	cfg.Store.Backend = BackendSQLite
	cfg.Store.Path = "/tmp/flags.db"
	cfg.Runtime.Debug = true
	cfg.Watch.Debounce = 250 * time.Millisecond
	cfg.Metrics.Addr = ":9102"

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if got.Store != cfg.Store {
		t.Errorf("store = %+v, want %+v", got.Store, cfg.Store)
	}
	if !got.Runtime.Debug {
		t.Error("runtime.debug should survive a round trip")
	}
	if got.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("debounce = %v, want 250ms", got.Watch.Debounce)
	}
	if got.Metrics.Addr != ":9102" {
		t.Errorf("metrics addr = %q", got.Metrics.Addr)
	}
}

func TestLoadFrom_InvalidDebounce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"watch":{"debounce":"soon"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected error for unparseable debounce")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Store.Backend = ""
	cfg.Watch.Debounce = -1
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Store.Backend != BackendJSON {
		t.Errorf("empty backend should repair to json, got %q", cfg.Store.Backend)
	}
	if cfg.Watch.Debounce != defaultDebounce {
		t.Errorf("negative debounce should repair to default, got %v", cfg.Watch.Debounce)
	}

	cfg.Store.Backend = "redis"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown backend should fail validation")
	}
}

func TestStorePath(t *testing.T) {
	dir := t.TempDir()
	SetTestConfigPath(filepath.Join(dir, "config.json"))
	t.Cleanup(ResetTestConfigPath)

	cfg := Default()
	if got, want := cfg.StorePath(), filepath.Join(dir, "flags.json"); got != want {
		t.Errorf("json StorePath() = %q, want %q", got, want)
	}

	cfg.Store.Backend = BackendSQLite
	if got, want := cfg.StorePath(), filepath.Join(dir, "flags.db"); got != want {
		t.Errorf("sqlite StorePath() = %q, want %q", got, want)
	}

	cfg.Store.Path = "/var/lib/flags.db"
	if got := cfg.StorePath(); got != "/var/lib/flags.db" {
		t.Errorf("explicit StorePath() = %q", got)
	}
}

func TestStorePath_FollowsLoadedConfig(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadFrom(filepath.Join(dir, "custom.json"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := cfg.StorePath(), filepath.Join(dir, "flags.json"); got != want {
		t.Errorf("StorePath() = %q, want %q", got, want)
	}
}

func TestLoadFrom_PartialSectionsKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"ui":{},"metrics":{},"watch":{}}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if !cfg.UI.Color {
		t.Error("empty ui section should keep color enabled")
	}
	if !cfg.Watch.Enabled || cfg.Watch.Debounce != defaultDebounce {
		t.Errorf("empty watch section changed defaults: %+v", cfg.Watch)
	}

	if err := os.WriteFile(path, []byte(`{"ui":{"color":false},"metrics":{"addr":":9102"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.UI.Color {
		t.Error("explicit color=false should be honored")
	}
	if cfg.Metrics.Addr != ":9102" {
		t.Errorf("metrics addr = %q, want :9102", cfg.Metrics.Addr)
	}
}
