package protocol

import "fmt"

// Action tags a Command variant on the wire.
type Action string

const (
	ActionLoadMedia Action = "loadMedia"
	ActionLoadEmbed Action = "loadYouTube"
	ActionPlay      Action = "play"
	ActionPause     Action = "pause"
	ActionSeek      Action = "seek"
	ActionSetRate   Action = "setPlaybackRate"
)

// Actions lists every known action in wire order.
var Actions = []Action{ActionLoadMedia, ActionLoadEmbed, ActionPlay, ActionPause, ActionSeek, ActionSetRate}

// Command is a controller to engine message. Only the payload field that
// belongs to Action is meaningful.
type Command struct {
	Action Action

	// Src is the local media source for ActionLoadMedia.
	Src string
	// VideoID is the embed identifier for ActionLoadEmbed.
	VideoID string
	// Time is the absolute seek target in seconds for ActionSeek.
	Time float64
	// Rate is the requested playback rate for ActionSetRate.
	Rate float64
}

func LoadMedia(src string) Command     { return Command{Action: ActionLoadMedia, Src: src} }
func LoadEmbed(videoID string) Command { return Command{Action: ActionLoadEmbed, VideoID: videoID} }
func Play() Command                    { return Command{Action: ActionPlay} }
func Pause() Command                   { return Command{Action: ActionPause} }
func Seek(seconds float64) Command     { return Command{Action: ActionSeek, Time: seconds} }
func SetRate(rate float64) Command     { return Command{Action: ActionSetRate, Rate: rate} }

// IsLoad reports whether the command selects new media.
func (c Command) IsLoad() bool {
	return c.Action == ActionLoadMedia || c.Action == ActionLoadEmbed
}

func (c Command) String() string {
	switch c.Action {
	case ActionLoadMedia:
		return fmt.Sprintf("%s(%q)", c.Action, c.Src)
	case ActionLoadEmbed:
		return fmt.Sprintf("%s(%q)", c.Action, c.VideoID)
	case ActionSeek:
		return fmt.Sprintf("%s(%.3f)", c.Action, c.Time)
	case ActionSetRate:
		return fmt.Sprintf("%s(%.2f)", c.Action, c.Rate)
	default:
		return string(c.Action)
	}
}
