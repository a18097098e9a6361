// Package sekretar holds application-wide metadata.
package sekretar

var (
	// Version is set by build flags.
	Version = "v0.1.0"

	// Build is the build timestamp, set by build flags.
	Build = "n/a"
)
