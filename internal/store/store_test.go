package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/wilbur182/flagreg/internal/config"
)

// backends returns a fresh instance of every backend for shared behaviour tests.
func backends(t *testing.T) map[string]Backend {
	t.Helper()
	dir := t.TempDir()

	file, err := OpenFile(filepath.Join(dir, "flags.json"), nil)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	db, err := OpenSQLite(filepath.Join(dir, "flags.db"), nil)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return map[string]Backend{
		"memory": NewMemory(),
		"file":   file,
		"sqlite": db,
	}
}

func TestBackends_MissingKeyReturnsDefault(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if !s.GetBoolean(Namespace, "ABSENT", true) {
				t.Error("missing key should return default true")
			}
			if s.GetBoolean(Namespace, "ABSENT", false) {
				t.Error("missing key should return default false")
			}
		})
	}
}

func TestBackends_SetGetRemove(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.SetBoolean(Namespace, "QUICKSTEP_SPRINGS", false); err != nil {
				t.Fatalf("SetBoolean() error = %v", err)
			}
			if s.GetBoolean(Namespace, "QUICKSTEP_SPRINGS", true) {
				t.Error("stored false should override default true")
			}

			if err := s.SetBoolean(Namespace, "QUICKSTEP_SPRINGS", true); err != nil {
				t.Fatalf("SetBoolean() overwrite error = %v", err)
			}
			if !s.GetBoolean(Namespace, "QUICKSTEP_SPRINGS", false) {
				t.Error("overwritten value should be true")
			}

			if err := s.Remove(Namespace, "QUICKSTEP_SPRINGS"); err != nil {
				t.Fatalf("Remove() error = %v", err)
			}
			if s.GetBoolean(Namespace, "QUICKSTEP_SPRINGS", false) {
				t.Error("removed key should fall back to default")
			}
		})
	}
}

func TestBackends_NamespacesAreIsolated(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.SetBoolean("other", "KEY", true); err != nil {
				t.Fatal(err)
			}
			if s.GetBoolean(Namespace, "KEY", false) {
				t.Error("value in another namespace leaked into featureFlags")
			}
		})
	}
}

func TestFile_ReloadSeesExternalWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.json")
	f, err := OpenFile(path, nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte(`{"featureFlags":{"UNSTABLE_SPRINGS":true}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if f.GetBoolean(Namespace, "UNSTABLE_SPRINGS", false) {
		t.Error("value should stay cached until Reload")
	}
	if err := f.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if !f.GetBoolean(Namespace, "UNSTABLE_SPRINGS", false) {
		t.Error("Reload should pick up external write")
	}
}

func TestFile_CorruptFileDegradesToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := OpenFile(path, nil)
	if err != nil {
		t.Fatalf("corrupt file should not fail OpenFile, got %v", err)
	}
	if !f.GetBoolean(Namespace, "ANY", true) {
		t.Error("corrupt file should yield defaults")
	}
}

func TestFile_EditRefusedOnCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.json")
	corrupt := []byte(`{"featureFlags": {"A": true,`)
	if err := os.WriteFile(path, corrupt, 0644); err != nil {
		t.Fatal(err)
	}

	f, err := OpenFile(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.SetBoolean(Namespace, "B", true); !errors.Is(err, ErrCorruptFile) {
		t.Fatalf("SetBoolean() on corrupt file error = %v, want ErrCorruptFile", err)
	}
	if err := f.Remove(Namespace, "A"); !errors.Is(err, ErrCorruptFile) {
		t.Fatalf("Remove() on corrupt file error = %v, want ErrCorruptFile", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(corrupt) {
		t.Errorf("corrupt file was rewritten: %q", data)
	}

	// Once repaired, edits go through again.
	if err := os.WriteFile(path, []byte(`{"featureFlags": {"A": true}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := f.SetBoolean(Namespace, "B", true); err != nil {
		t.Fatalf("SetBoolean() after repair error = %v", err)
	}
	if !f.GetBoolean(Namespace, "A", false) || !f.GetBoolean(Namespace, "B", false) {
		t.Error("repaired file should keep A and gain B")
	}
}

func TestFile_SetPreservesOtherProcessEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.json")
	a, _ := OpenFile(path, nil)
	b, _ := OpenFile(path, nil)

	if err := a.SetBoolean(Namespace, "A", true); err != nil {
		t.Fatal(err)
	}
	if err := b.SetBoolean(Namespace, "B", true); err != nil {
		t.Fatal(err)
	}

	c, _ := OpenFile(path, nil)
	if !c.GetBoolean(Namespace, "A", false) || !c.GetBoolean(Namespace, "B", false) {
		t.Error("second writer should not clobber the first writer's key")
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Store.Path = filepath.Join(dir, "flags.json")
	s, err := Open(cfg, nil)
	if err != nil {
		t.Fatalf("Open(json) error = %v", err)
	}
	if _, ok := s.(*File); !ok {
		t.Errorf("Open(json) = %T, want *File", s)
	}

	cfg.Store.Backend = config.BackendSQLite
	cfg.Store.Path = filepath.Join(dir, "flags.db")
	s, err = Open(cfg, nil)
	if err != nil {
		t.Fatalf("Open(sqlite) error = %v", err)
	}
	defer s.Close()
	if _, ok := s.(*SQLite); !ok {
		t.Errorf("Open(sqlite) = %T, want *SQLite", s)
	}

	cfg.Store.Backend = "etcd"
	if _, err := Open(cfg, nil); !errors.Is(err, ErrUnsupportedBackend) {
		t.Errorf("Open(etcd) error = %v, want ErrUnsupportedBackend", err)
	}
}
