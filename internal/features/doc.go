// Package features implements the runtime feature flag registry: flags with
// compiled-in defaults, debug-capable flags whose values are overridden from a
// persisted store, and a sorted, introspectable registry safe for concurrent
// readers.
package features
