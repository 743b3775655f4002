//go:build !debug

package features

const debugBuild = false
