package features

import (
	"strconv"
	"sync"
	"sync/atomic"
)

// Flag is a named boolean setting with a default and a current value.
type Flag interface {
	Key() string
	Default() bool
	// Get returns the current value. It never blocks.
	Get() bool
	// AddChangeListener registers fn to run after the value changes.
	AddChangeListener(fn func())
	String() string
}

// StaticFlag is fixed at its default forever. It is never registered or persisted.
type StaticFlag struct {
	key string
	def bool
}

var _ Flag = StaticFlag{}

// Key returns the flag key.
func (f StaticFlag) Key() string { return f.key }

// Default returns the compiled-in default.
func (f StaticFlag) Default() bool { return f.def }

// Get returns the default.
func (f StaticFlag) Get() bool { return f.def }

// AddChangeListener is a no-op; the value never changes.
func (f StaticFlag) AddChangeListener(func()) {}

func (f StaticFlag) String() string {
	return f.key + ", defaultValue=" + strconv.FormatBool(f.def)
}

// DebugFlag is a registered flag whose value is loaded from the persisted
// store by Registry.Initialize. RemoteManaged flags are the device variant
// that a remote channel may disable.
type DebugFlag struct {
	key         string
	def         bool
	description string
	remote      bool

	// current is read without the registry lock.
	current atomic.Bool

	listenersMu sync.Mutex
	listeners   []func()
}

var _ Flag = (*DebugFlag)(nil)

func newDebugFlag(d Descriptor) *DebugFlag {
	f := &DebugFlag{
		key:         d.Key,
		def:         d.Default,
		description: d.Description,
		remote:      d.RemoteManaged,
	}
	f.current.Store(d.Default)
	return f
}

// Key returns the flag key.
func (f *DebugFlag) Key() string { return f.key }

// Default returns the compiled-in default.
func (f *DebugFlag) Default() bool { return f.def }

// Description returns the human-readable rationale.
func (f *DebugFlag) Description() string { return f.description }

// RemoteManaged reports whether the flag is a device flag.
func (f *DebugFlag) RemoteManaged() bool { return f.remote }

// Get returns the cached current value.
func (f *DebugFlag) Get() bool { return f.current.Load() }

// AddChangeListener registers fn to run after Initialize changes the value.
// Listeners run on the initializing goroutine, outside the registry lock.
func (f *DebugFlag) AddChangeListener(fn func()) {
	if fn == nil {
		return
	}
	f.listenersMu.Lock()
	f.listeners = append(f.listeners, fn)
	f.listenersMu.Unlock()
}

// set stores v and reports whether it differs from the previous value.
func (f *DebugFlag) set(v bool) bool {
	return f.current.Swap(v) != v
}

func (f *DebugFlag) notify() {
	f.listenersMu.Lock()
	listeners := make([]func(), len(f.listeners))
	copy(listeners, f.listeners)
	f.listenersMu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

func (f *DebugFlag) String() string {
	return f.key +
		", defaultValue=" + strconv.FormatBool(f.def) +
		", mCurrentValue=" + strconv.FormatBool(f.Get())
}
