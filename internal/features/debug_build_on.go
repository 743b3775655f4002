//go:build debug

package features

// debugBuild is true for binaries built with -tags debug.
const debugBuild = true
