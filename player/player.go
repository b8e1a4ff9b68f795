// Package player defines the playback backends driven by the engine.
// A backend is either local media played through a media element
// or an embedded video that has to be cued before it can play.
package player

// Kind names a backend variant.
type Kind string

const (
	KindLocal    Kind = "local"
	KindEmbedded Kind = "embedded"
)

// Backend is the capability set shared by every backend variant.
// Its methods are only called from the engine loop.
type Backend interface {
	Kind() Kind

	// Source returns the source or video id last passed to Load.
	Source() string

	// Title returns the display title of the loaded media.
	Title() string

	// Check reports whether ref could be loaded without touching
	// the media currently playing.
	Check(ref string) error

	// Load selects media. It does not start playback.
	Load(ref string) error

	Play() error
	Pause() error

	// Seek moves playback to an absolute position in seconds.
	Seek(seconds float64) error

	// SetRate applies a playback rate and returns the rate actually in effect.
	SetRate(rate float64) (float64, error)

	// Duration returns the media duration in seconds, or 0 while unknown.
	Duration() float64

	// CurrentTime returns the playback position in seconds.
	CurrentTime() float64

	// AtEnd reports whether playback sits at the end of the media.
	AtEnd() bool

	// Close releases the backend. It is not usable afterwards.
	Close() error
}

// EventKind tags an Event.
type EventKind int

const (
	EventDuration EventKind = iota
	EventPlaying
	EventPaused
	EventEnded
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventDuration:
		return "duration"
	case EventPlaying:
		return "playing"
	case EventPaused:
		return "paused"
	case EventEnded:
		return "ended"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is a notification raised by a backend on its own,
// in the order the underlying media produced it.
type Event struct {
	Kind     EventKind
	Duration float64
	Err      error
}

// Sink receives backend events. Implementations must not call back into the backend.
type Sink func(Event)

func (s Sink) emit(ev Event) {
	if s != nil {
		s(ev)
	}
}

// Element is a media element able to play one target at a time.
type Element interface {
	// Open loads target paused at position zero. Events that follow go to sink.
	Open(target string, sink Sink) error
	Play() error
	Pause() error
	Seek(seconds float64) error
	SetRate(rate float64) error
	Rate() float64
	Position() float64
	Duration() float64
	AtEnd() bool

	// Close unloads the current target.
	Close() error
}
