package protocol

import "fmt"

// StatusKind tags a Status variant on the wire.
type StatusKind string

const (
	StatusEngineReady StatusKind = "iframeReady"
	StatusLoaded      StatusKind = "loaded"
	StatusPlaying     StatusKind = "playing"
	StatusPaused      StatusKind = "paused"
	StatusEnded       StatusKind = "ended"
	StatusProgress    StatusKind = "progress"
	StatusDuration    StatusKind = "duration"
	StatusSeeked      StatusKind = "seeked"
	StatusRateChanged StatusKind = "rateChanged"
)

// StatusKinds lists every known status in wire order.
var StatusKinds = []StatusKind{
	StatusEngineReady,
	StatusLoaded,
	StatusPlaying,
	StatusPaused,
	StatusEnded,
	StatusProgress,
	StatusDuration,
	StatusSeeked,
	StatusRateChanged,
}

// Status is an engine to controller notification.
type Status struct {
	Kind StatusKind

	// Media is the title carried by loaded and playing.
	Media string
	// CurrentTime is carried by progress and seeked.
	CurrentTime float64
	// Duration is carried by progress, seeked and duration.
	Duration float64
	// Rate is carried by rateChanged.
	Rate float64
}

func EngineReady() Status                   { return Status{Kind: StatusEngineReady} }
func Loaded(title string) Status            { return Status{Kind: StatusLoaded, Media: title} }
func Playing(title string) Status           { return Status{Kind: StatusPlaying, Media: title} }
func Paused() Status                        { return Status{Kind: StatusPaused} }
func Ended() Status                         { return Status{Kind: StatusEnded} }
func DurationKnown(duration float64) Status { return Status{Kind: StatusDuration, Duration: duration} }
func RateChanged(rate float64) Status       { return Status{Kind: StatusRateChanged, Rate: rate} }

func Progress(currentTime, duration float64) Status {
	return Status{Kind: StatusProgress, CurrentTime: currentTime, Duration: duration}
}

func Seeked(currentTime, duration float64) Status {
	return Status{Kind: StatusSeeked, CurrentTime: currentTime, Duration: duration}
}

func (s Status) String() string {
	switch s.Kind {
	case StatusLoaded, StatusPlaying:
		return fmt.Sprintf("%s(%q)", s.Kind, s.Media)
	case StatusProgress, StatusSeeked:
		return fmt.Sprintf("%s(%.3f/%.3f)", s.Kind, s.CurrentTime, s.Duration)
	case StatusDuration:
		return fmt.Sprintf("%s(%.3f)", s.Kind, s.Duration)
	case StatusRateChanged:
		return fmt.Sprintf("%s(%.2f)", s.Kind, s.Rate)
	default:
		return string(s.Kind)
	}
}
