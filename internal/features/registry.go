package features

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/wilbur182/flagreg/internal/metrics"
	"github.com/wilbur182/flagreg/internal/store"
)

// ErrDuplicateKey is returned when a flag key is registered twice. Keys are
// compared case-insensitively, matching the registry's sort order.
var ErrDuplicateKey = errors.New("duplicate feature flag key")

// Dump group headers.
const (
	deviceGroup = "DeviceFlags"
	debugGroup  = "DebugFlags"
)

// Registry is the ordered collection of debug-capable flags.
// Registration order is kept until Initialize, which sorts by key.
type Registry struct {
	mu    sync.Mutex
	flags []*DebugFlag

	logger  *slog.Logger
	metrics *metrics.Recorder
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// WithMetrics records initialization activity to m.
func WithMetrics(m *metrics.Recorder) Option {
	return func(r *Registry) { r.metrics = m }
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Register appends f. Flags are never removed.
func (r *Registry) Register(f *DebugFlag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.flags {
		if strings.EqualFold(existing.key, f.key) {
			return fmt.Errorf("%w: %q", ErrDuplicateKey, f.key)
		}
	}
	r.flags = append(r.flags, f)
	r.metrics.SetRegistered(len(r.flags))
	return nil
}

// Initialize loads every registered flag's value from s, falling back to the
// flag default, then sorts the registry by key. It may be called any number of
// times; membership never changes. Change listeners for flags whose value
// changed run after the lock is released. The changed flags are returned.
func (r *Registry) Initialize(s store.Store) []*DebugFlag {
	start := time.Now()

	r.mu.Lock()
	var changed []*DebugFlag
	for _, f := range r.flags {
		if f.set(s.GetBoolean(store.Namespace, f.key, f.def)) {
			changed = append(changed, f)
		}
	}
	sort.SliceStable(r.flags, func(i, j int) bool {
		return compareFold(r.flags[i].key, r.flags[j].key) < 0
	})
	loaded := make([]*DebugFlag, len(r.flags))
	copy(loaded, r.flags)
	r.mu.Unlock()

	r.metrics.RecordInitialize(time.Since(start))
	for _, f := range loaded {
		r.metrics.SetFlag(f.key, groupLabel(f), f.Get())
	}

	r.logger.Debug("feature flags initialized", "count", len(loaded), "changed", len(changed))
	for _, f := range changed {
		r.logger.Info("feature flag changed", "key", f.key, "value", f.Get())
		f.notify()
	}
	return changed
}

// Snapshot returns a copy of the registry in its current order.
func (r *Registry) Snapshot() []*DebugFlag {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*DebugFlag, len(r.flags))
	copy(out, r.flags)
	return out
}

// Len returns the number of registered flags.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.flags)
}

// Lookup finds a registered flag by exact key.
func (r *Registry) Lookup(key string) (*DebugFlag, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.flags {
		if f.key == key {
			return f, true
		}
	}
	return nil, false
}

// Groups partitions a snapshot into device (remote-manageable) and debug
// (developer-only) flags, each in registry order.
func (r *Registry) Groups() (device, debug []*DebugFlag) {
	for _, f := range r.Snapshot() {
		if f.remote {
			device = append(device, f)
		} else {
			debug = append(debug, f)
		}
	}
	return device, debug
}

// Dump writes the registry report to w: device flags first, then debug flags.
func (r *Registry) Dump(w io.Writer) error {
	device, debug := r.Groups()

	ew := &errWriter{w: w}
	ew.line(deviceGroup + ":")
	for _, f := range device {
		ew.line("  " + f.String())
	}
	ew.line(debugGroup + ":")
	for _, f := range debug {
		ew.line("  " + f.String())
	}
	return ew.err
}

// errWriter keeps the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) line(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s+"\n")
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func groupLabel(f *DebugFlag) string {
	if f.remote {
		return "device"
	}
	return "debug"
}
