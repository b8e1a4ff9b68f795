// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Playback engine - these keys configure backends and the progress cadence.
const (
	PlayerBackend          = "player.backend"
	PlayerMPV              = "player.mpv"
	PlayerProgressInterval = "player.progress_interval"
	PlayerDefaultMedia     = "player.default_media"
	PlayerQueue            = "player.queue"
	PlayerVirtualDuration  = "player.virtual_duration"
)

// Embedded video - these keys configure how embed identifiers are resolved.
const (
	EmbedResolver = "embed.resolver"
)

// Message channel - these keys size the queues between controller and engine.
const (
	ChannelBuffer = "channel.buffer"
)

// Deep linking - these keys control how the active selection is reflected into a shareable URL.
const (
	LinkBase = "link.base"
)

// Recent media - these keys manage the suggestion registry of previously loaded media.
const (
	RecentRemember = "recent.remember"
	RecentLimit    = "recent.limit"
)

// Terminal User Interface (TUI) - these keys define the controller's interactive environment.
const (
	TUISeekStep = "tui.seek_step"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored = "cli.colored"
)
