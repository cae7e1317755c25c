// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Jellysan is the canonical application identifier used for filesystem paths and CLI branding.
	Jellysan = "jellysan"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// ClientName is the client identifier advertised to the media server in playback reports.
	ClientName = "Jellysan Media Client"
)

// Build metadata, overridden at release time via ldflags.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
