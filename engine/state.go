package engine

// State is the playback state of an engine.
type State int

const (
	Uninitialized State = iota
	Ready
	Loaded
	Playing
	Paused
	Ended
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Loaded:
		return "loaded"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}
