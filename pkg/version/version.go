// Package version holds the atui version string.
package version

// Version is the current atui version. Overridden at build time via
// -ldflags "-X github.com/ocasazza/atui/pkg/version.Version=v1.2.3".
var Version = "dev"
