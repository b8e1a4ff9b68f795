package controller

import (
	"fmt"

	"github.com/playshell/playshell/util"
)

// MediaType is the kind of media the controller believes is active.
type MediaType int

const (
	MediaNone MediaType = iota
	MediaLocal
	MediaEmbedded
)

func (m MediaType) String() string {
	switch m {
	case MediaLocal:
		return "local"
	case MediaEmbedded:
		return "embedded"
	default:
		return "none"
	}
}

// ViewState is what the controller displays. Apart from the slider while it
// is dragged and the rate right after a rate gesture, it only changes when
// a status arrives.
type ViewState struct {
	IsPlaying        bool
	PlaybackRate     float64
	MediaDuration    float64
	IsUserSeeking    bool
	CurrentMediaType MediaType
	CurrentMediaRef  string

	Title         string
	CurrentTime   float64
	SliderPercent float64
	EngineReady   bool
}

// PlayLabel is the caption of the play/pause control.
func (v ViewState) PlayLabel() string {
	if v.IsPlaying {
		return "Pause"
	}
	return "Play"
}

// RateLabel renders the playback rate with one decimal.
func (v ViewState) RateLabel() string {
	return fmt.Sprintf("%.1fx", v.PlaybackRate)
}

// TimeLabel renders the position. While the slider is dragged it follows the slider.
func (v ViewState) TimeLabel() string {
	if v.IsUserSeeking {
		return util.FormatClock(v.SliderTime())
	}
	return util.FormatClock(v.CurrentTime)
}

// DurationLabel renders the media duration.
func (v ViewState) DurationLabel() string {
	return util.FormatClock(v.MediaDuration)
}

// SliderTime is the position the slider points at.
func (v ViewState) SliderTime() float64 {
	return v.SliderPercent / 100 * v.MediaDuration
}
