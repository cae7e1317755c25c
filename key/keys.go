// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 9

// Media Playback - these keys govern the playback session controller and the external video sink.
const (
	PlayerNativeTypes = "player.native_types"
	PlayerSinkBinary  = "player.sink_binary"
)

// Preference Persistence - these keys configure the durable storage of track and quality choices.
const (
	PrefsSaveTracks = "prefs.save_tracks"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-interactive application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
