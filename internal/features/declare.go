package features

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoRegistry is returned when a registered flag is declared without a registry.
var ErrNoRegistry = errors.New("debug runtime requires a registry")

// Descriptor declares a flag.
type Descriptor struct {
	Key         string
	Default     bool
	Description string
	// RemoteManaged marks a device flag that a remote channel may disable.
	RemoteManaged bool
}

// New builds the flag variant for the runtime. Device flags, and every flag
// when debugRuntime is set, are a *DebugFlag registered in reg; the rest are
// StaticFlag.
func New(reg *Registry, d Descriptor, debugRuntime bool) (Flag, error) {
	if !debugRuntime && !d.RemoteManaged {
		return StaticFlag{key: d.Key, def: d.Default}, nil
	}
	if reg == nil {
		return nil, ErrNoRegistry
	}
	f := newDebugFlag(d)
	if err := reg.Register(f); err != nil {
		return nil, err
	}
	return f, nil
}

// Set is the result of declaring a descriptor table.
type Set struct {
	flags map[string]Flag
	keys  []string // declaration order
}

// Declare builds every descriptor in table, in order. Duplicate keys are
// rejected in both runtimes so a table that works in release builds also
// works in debug builds.
func Declare(reg *Registry, debugRuntime bool, table []Descriptor) (*Set, error) {
	s := &Set{flags: make(map[string]Flag, len(table))}
	seen := make(map[string]bool, len(table))

	for _, d := range table {
		folded := strings.ToLower(d.Key)
		if seen[folded] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, d.Key)
		}
		seen[folded] = true

		f, err := New(reg, d, debugRuntime)
		if err != nil {
			return nil, err
		}
		s.flags[d.Key] = f
		s.keys = append(s.keys, d.Key)
	}
	return s, nil
}

// MustDeclare is Declare for process setup; it panics on error.
func MustDeclare(reg *Registry, debugRuntime bool, table []Descriptor) *Set {
	s, err := Declare(reg, debugRuntime, table)
	if err != nil {
		panic(err)
	}
	return s
}

// Lookup returns the flag declared under key.
func (s *Set) Lookup(key string) (Flag, bool) {
	f, ok := s.flags[key]
	return f, ok
}

// IsEnabled returns the current value of key. Unknown keys are disabled.
func (s *Set) IsEnabled(key string) bool {
	if f, ok := s.flags[key]; ok {
		return f.Get()
	}
	return false
}

// Keys returns the declared keys in declaration order.
func (s *Set) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len returns the number of declared flags.
func (s *Set) Len() int { return len(s.keys) }
