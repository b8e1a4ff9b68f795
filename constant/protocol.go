package constant

// Playback rate bounds accepted by the engine, in multiples of normal speed.
const (
	MinPlaybackRate  = 0.25
	MaxPlaybackRate  = 3.0
	PlaybackRateStep = 0.1
)

// Deep-link query parameters read and written by the controller.
const (
	LinkMediaParam = "mediasrc"
	LinkEmbedParam = "ytid"
)

// EmbedRates lists the rates an embedded video player accepts. Requests are
// coerced to the nearest entry.
var EmbedRates = []float64{0.25, 0.5, 0.75, 1, 1.25, 1.5, 1.75, 2}
