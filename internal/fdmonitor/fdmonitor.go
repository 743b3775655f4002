// Package fdmonitor watches the process's open file descriptor count so a
// long-running flag watcher notices leaked store handles early.
package fdmonitor

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

const (
	// DefaultWarningThreshold is the FD count that triggers a warning.
	DefaultWarningThreshold = 200
	// DefaultCriticalThreshold is the FD count that triggers a critical warning.
	DefaultCriticalThreshold = 500
	// MinCheckInterval prevents checking too frequently.
	MinCheckInterval = 10 * time.Second
)

// Monitor rate-limits FD checks and logs when thresholds are crossed.
type Monitor struct {
	logger   *slog.Logger
	warning  int
	critical int
	interval time.Duration

	mu        sync.Mutex
	lastCheck time.Time
	lastCount int
}

// New returns a Monitor with the default thresholds.
func New(logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		logger:   logger,
		warning:  DefaultWarningThreshold,
		critical: DefaultCriticalThreshold,
		interval: MinCheckInterval,
	}
}

// SetThresholds configures the warning and critical thresholds.
func (m *Monitor) SetThresholds(warning, critical int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warning = warning
	m.critical = critical
}

// Check counts open FDs and logs a warning above the thresholds. Calls within
// the check interval return the previous count without logging.
func (m *Monitor) Check(trigger string) (count int, warned bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.lastCheck.IsZero() && time.Since(m.lastCheck) < m.interval {
		return m.lastCount, false
	}

	count = Count()
	if count < 0 {
		return count, false
	}
	m.lastCheck = time.Now()
	m.lastCount = count

	switch {
	case count >= m.critical:
		m.logger.Warn("critical FD count", "count", count, "threshold", m.critical, "trigger", trigger, "breakdown", Breakdown())
		return count, true
	case count >= m.warning:
		m.logger.Warn("high FD count", "count", count, "threshold", m.warning, "trigger", trigger)
		return count, true
	}
	return count, false
}

func fdDir() string {
	switch runtime.GOOS {
	case "darwin":
		return "/dev/fd"
	case "linux":
		return fmt.Sprintf("/proc/%d/fd", os.Getpid())
	}
	return ""
}

// Count returns the number of open file descriptors for this process, or -1
// where that cannot be determined.
func Count() int {
	dir := fdDir()
	if dir == "" {
		return -1
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return -1
	}
	return len(entries)
}

// Breakdown categorizes open FDs by what they point at.
func Breakdown() map[string]int {
	info := make(map[string]int)
	dir := fdDir()
	if dir == "" {
		return info
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return info
	}

	for _, e := range entries {
		target, err := os.Readlink(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		info[category(target)]++
	}
	return info
}

func category(target string) string {
	switch {
	case target == "pipe" || len(target) > 5 && target[:5] == "pipe:":
		return "pipe"
	case len(target) > 0 && target[0] == '[', len(target) > 7 && target[:7] == "socket:":
		return "socket"
	case len(target) > 10 && target[:10] == "anon_inode":
		return "anon_inode"
	}
	switch filepath.Ext(target) {
	case ".json":
		return "json"
	case ".db", ".sqlite", ".db-journal", ".db-wal":
		return "database"
	}
	return "file"
}
