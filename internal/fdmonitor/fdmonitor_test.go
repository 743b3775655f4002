package fdmonitor

import (
	"testing"
	"time"
)

func TestCount(t *testing.T) {
	count := Count()
	// Sandboxed or unsupported platforms report -1; that is acceptable.
	t.Logf("Current FD count: %d", count)
}

func TestCheck_RateLimited(t *testing.T) {
	m := New(nil)
	count, _ := m.Check("test")
	if count < 0 {
		t.Skip("FD count unavailable")
	}

	m.lastCount = count + 1000
	if got, warned := m.Check("test"); got != count+1000 || warned {
		t.Errorf("second check inside interval = (%d, %v), want cached (%d, false)", got, warned, count+1000)
	}
}

func TestCheck_Thresholds(t *testing.T) {
	m := New(nil)
	m.interval = 0
	if Count() < 0 {
		t.Skip("FD count unavailable")
	}

	m.SetThresholds(1, 1_000_000)
	if _, warned := m.Check("warning"); !warned {
		t.Error("count above warning threshold should warn")
	}

	m.lastCheck = time.Time{}
	m.SetThresholds(1_000_000, 2_000_000)
	if _, warned := m.Check("quiet"); warned {
		t.Error("count below thresholds should not warn")
	}
}

func TestCategory(t *testing.T) {
	tests := map[string]string{
		"pipe:[1234]":           "pipe",
		"socket:[99]":           "socket",
		"anon_inode:inotify":    "anon_inode",
		"/home/u/flags.json":    "json",
		"/var/lib/flags.db":     "database",
		"/var/lib/flags.db-wal": "database",
		"/usr/lib/libc.so":      "file",
	}
	for target, want := range tests {
		if got := category(target); got != want {
			t.Errorf("category(%q) = %q, want %q", target, got, want)
		}
	}
}
