package protocol

import (
	"github.com/playshell/playshell/constant"
	"github.com/playshell/playshell/util"
)

// ClampRate rounds rate to the nearest 0.1 and bounds it to [0.25, 3.0].
func ClampRate(rate float64) float64 {
	if !util.Finite(rate) {
		return 1
	}
	return util.Clamp(
		util.RoundTo(rate, constant.PlaybackRateStep),
		constant.MinPlaybackRate,
		constant.MaxPlaybackRate,
	)
}

// ClampSeek bounds t to [0, duration]. While the duration is still unknown
// (zero or not finite) only the lower bound applies.
func ClampSeek(t, duration float64) float64 {
	if !util.Finite(t) || t < 0 {
		return 0
	}
	if util.Finite(duration) && duration > 0 && t > duration {
		return duration
	}
	return t
}
