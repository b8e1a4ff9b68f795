package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/playshell/playshell/util"
	"github.com/samber/lo"
)

type commandWire struct {
	Action  Action   `json:"action" jsonschema:"required,enum=loadMedia,enum=loadYouTube,enum=play,enum=pause,enum=seek,enum=setPlaybackRate,description=Command variant."`
	Src     *string  `json:"src,omitempty" jsonschema:"description=Local media source. Required by loadMedia."`
	VideoID *string  `json:"videoId,omitempty" jsonschema:"description=Embedded video identifier. Required by loadYouTube."`
	Time    *float64 `json:"time,omitempty" jsonschema:"minimum=0,description=Absolute seek target in seconds. Required by seek."`
	Rate    *float64 `json:"rate,omitempty" jsonschema:"minimum=0.25,maximum=3,description=Requested playback rate. Required by setPlaybackRate."`
}

type statusWire struct {
	Status      StatusKind `json:"status" jsonschema:"required,enum=iframeReady,enum=loaded,enum=playing,enum=paused,enum=ended,enum=progress,enum=duration,enum=seeked,enum=rateChanged,description=Status variant."`
	Media       *string    `json:"media,omitempty" jsonschema:"description=Media title. Sent with loaded and playing."`
	CurrentTime *float64   `json:"currentTime,omitempty" jsonschema:"minimum=0,description=Playback position in seconds. Sent with progress and seeked."`
	Duration    *float64   `json:"duration,omitempty" jsonschema:"minimum=0,description=Media duration in seconds. Sent with progress and seeked and the duration status."`
	Rate        *float64   `json:"rate,omitempty" jsonschema:"description=Playback rate actually applied. Sent with rateChanged."`
}

// finite replaces values JSON cannot carry with zero.
func finite(v float64) *float64 {
	if !util.Finite(v) {
		v = 0
	}
	return &v
}

func (c Command) MarshalJSON() ([]byte, error) {
	w := commandWire{Action: c.Action}

	switch c.Action {
	case ActionLoadMedia:
		w.Src = lo.ToPtr(c.Src)
	case ActionLoadEmbed:
		w.VideoID = lo.ToPtr(c.VideoID)
	case ActionSeek:
		w.Time = finite(c.Time)
	case ActionSetRate:
		w.Rate = finite(c.Rate)
	case ActionPlay, ActionPause:
	default:
		return nil, fmt.Errorf("%w: action %q", ErrUnknownMessage, c.Action)
	}

	return json.Marshal(w)
}

func (c *Command) UnmarshalJSON(data []byte) error {
	var w commandWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	cmd := Command{Action: w.Action}

	switch w.Action {
	case ActionLoadMedia:
		if w.Src == nil || *w.Src == "" {
			return fmt.Errorf("%w: %s requires src", ErrMalformed, w.Action)
		}
		cmd.Src = *w.Src
	case ActionLoadEmbed:
		if w.VideoID == nil || *w.VideoID == "" {
			return fmt.Errorf("%w: %s requires videoId", ErrMalformed, w.Action)
		}
		cmd.VideoID = *w.VideoID
	case ActionSeek:
		if w.Time == nil {
			return fmt.Errorf("%w: %s requires time", ErrMalformed, w.Action)
		}
		cmd.Time = *w.Time
	case ActionSetRate:
		if w.Rate == nil {
			return fmt.Errorf("%w: %s requires rate", ErrMalformed, w.Action)
		}
		cmd.Rate = *w.Rate
	case ActionPlay, ActionPause:
	default:
		return fmt.Errorf("%w: action %q", ErrUnknownMessage, w.Action)
	}

	*c = cmd
	return nil
}

func (s Status) MarshalJSON() ([]byte, error) {
	w := statusWire{Status: s.Kind}

	switch s.Kind {
	case StatusLoaded, StatusPlaying:
		if s.Media != "" {
			w.Media = lo.ToPtr(s.Media)
		}
	case StatusProgress, StatusSeeked:
		w.CurrentTime = finite(s.CurrentTime)
		w.Duration = finite(s.Duration)
	case StatusDuration:
		w.Duration = finite(s.Duration)
	case StatusRateChanged:
		w.Rate = finite(s.Rate)
	case StatusEngineReady, StatusPaused, StatusEnded:
	default:
		return nil, fmt.Errorf("%w: status %q", ErrUnknownMessage, s.Kind)
	}

	return json.Marshal(w)
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var w statusWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	st := Status{Kind: w.Status}

	switch w.Status {
	case StatusLoaded, StatusPlaying:
		st.Media = lo.FromPtr(w.Media)
	case StatusProgress, StatusSeeked:
		if w.CurrentTime == nil || w.Duration == nil {
			return fmt.Errorf("%w: %s requires currentTime and duration", ErrMalformed, w.Status)
		}
		st.CurrentTime, st.Duration = *w.CurrentTime, *w.Duration
	case StatusDuration:
		if w.Duration == nil {
			return fmt.Errorf("%w: %s requires duration", ErrMalformed, w.Status)
		}
		st.Duration = *w.Duration
	case StatusRateChanged:
		if w.Rate == nil {
			return fmt.Errorf("%w: %s requires rate", ErrMalformed, w.Status)
		}
		st.Rate = *w.Rate
	case StatusEngineReady, StatusPaused, StatusEnded:
	default:
		return fmt.Errorf("%w: status %q", ErrUnknownMessage, w.Status)
	}

	*s = st
	return nil
}
