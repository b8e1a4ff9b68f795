// Package controller keeps the believed playback state of a remote player
// engine and turns user gestures into commands for it.
package controller

import (
	"fmt"
	"math"

	"github.com/playshell/playshell/constant"
	"github.com/playshell/playshell/log"
	"github.com/playshell/playshell/player"
	"github.com/playshell/playshell/protocol"
	"github.com/playshell/playshell/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// rateEpsilon absorbs float error when comparing rates a step apart.
const rateEpsilon = 1e-9

// Sender delivers commands to the engine.
type Sender interface {
	Send(protocol.Command) error
}

// Options configure a Controller.
type Options struct {
	// LinkBase is the URL the active selection is reflected into.
	LinkBase string

	// Initial is loaded as soon as the engine is ready.
	Initial Selection

	// OnSelect is called for every selection the user makes.
	OnSelect func(Selection)

	// Queue is the local queue the engine advances through on its own.
	// It maps an advanced-to title back to its source.
	Queue []string
}

// Controller reconciles a ViewState with engine statuses.
// It is not safe for concurrent use.
type Controller struct {
	sender   Sender
	onSelect func(Selection)

	view      ViewState
	ready     bool
	requested Selection
	pending   mo.Option[protocol.Command]
	proposed  float64
	queue     []string
	link      string
	linkBase  string
}

// New returns a controller that sends through sender.
func New(sender Sender, options Options) *Controller {
	c := &Controller{
		sender:   sender,
		onSelect: options.OnSelect,
		linkBase: options.LinkBase,
		queue:    options.Queue,
		proposed: 1,
		view:     ViewState{PlaybackRate: 1},
	}

	if cmd, ok := options.Initial.Command(); ok {
		c.requested = options.Initial
		c.pending = mo.Some(cmd)
	}

	c.reflectLink()
	return c
}

// View returns the current view state.
func (c *Controller) View() ViewState {
	return c.view
}

// Link returns the deep link of the requested selection.
func (c *Controller) Link() string {
	return c.link
}

// Selected returns the last selection requested by the user.
func (c *Controller) Selected() Selection {
	return c.requested
}

// LoadMedia selects a local source.
func (c *Controller) LoadMedia(src string) error {
	return c.load(Selection{Type: MediaLocal, Ref: src})
}

// LoadEmbed selects an embedded video.
func (c *Controller) LoadEmbed(videoID string) error {
	return c.load(Selection{Type: MediaEmbedded, Ref: videoID})
}

func (c *Controller) load(sel Selection) error {
	cmd, ok := sel.Command()
	if !ok || sel.Ref == "" {
		return fmt.Errorf("nothing to load for %s selection %q", sel.Type, sel.Ref)
	}

	c.requested = sel
	c.reflectLink()

	if c.onSelect != nil {
		c.onSelect(sel)
	}

	if !c.ready {
		c.pending = mo.Some(cmd)
		return nil
	}

	return c.sender.Send(cmd)
}

func (c *Controller) reflectLink() {
	if c.linkBase == "" {
		return
	}

	link, err := BuildLink(c.linkBase, c.requested)
	if err != nil {
		log.Warn(err)
		return
	}

	c.link = link
}

func (c *Controller) send(cmd protocol.Command) error {
	if !c.ready {
		log.Warnf("controller: %s: %v", cmd, protocol.ErrNotReady)
		return protocol.ErrNotReady
	}

	return c.sender.Send(cmd)
}

// TogglePlay asks for play when the view is paused and for pause otherwise.
func (c *Controller) TogglePlay() error {
	if c.view.IsPlaying {
		return c.send(protocol.Pause())
	}
	return c.send(protocol.Play())
}

// RateUp proposes a rate one step faster than the last proposal.
func (c *Controller) RateUp() error {
	return c.proposeRate(c.proposed + constant.PlaybackRateStep)
}

// RateDown proposes a rate one step slower than the last proposal.
func (c *Controller) RateDown() error {
	return c.proposeRate(c.proposed - constant.PlaybackRateStep)
}

// proposeRate shows the rate at once and sends it. The display is
// corrected when the engine reports the rate it applied.
func (c *Controller) proposeRate(rate float64) error {
	if !c.ready {
		return protocol.ErrNotReady
	}

	rate = protocol.ClampRate(rate)
	c.proposed = rate
	c.view.PlaybackRate = rate
	return c.send(protocol.SetRate(rate))
}

// settleRate shows the rate the engine applied. A proposal more than one
// step away from it is replaced by it.
func (c *Controller) settleRate(rate float64) {
	c.view.PlaybackRate = rate
	if math.Abs(rate-c.proposed) > constant.PlaybackRateStep+rateEpsilon {
		c.proposed = rate
	}
}

// BeginSeek starts a slider drag. Progress stops moving the slider until EndSeek.
func (c *Controller) BeginSeek() {
	c.view.IsUserSeeking = true
}

// DragSeek moves the slider to percent of the media.
func (c *Controller) DragSeek(percent float64) {
	c.view.SliderPercent = util.Clamp(percent, 0, 100)
}

// EndSeek ends a slider drag and seeks to where the slider points.
func (c *Controller) EndSeek() error {
	c.view.IsUserSeeking = false
	return c.send(protocol.Seek(c.view.SliderTime()))
}

// HandleStatus updates the view from an engine status.
func (c *Controller) HandleStatus(status protocol.Status) {
	switch status.Kind {
	case protocol.StatusEngineReady:
		c.ready = true
		c.view.EngineReady = true

		if cmd, ok := c.pending.Get(); ok {
			c.pending = mo.None[protocol.Command]()
			if err := c.sender.Send(cmd); err != nil {
				log.Warnf("controller: initial %s: %v", cmd, err)
			}
		}
	case protocol.StatusPlaying:
		c.view.IsPlaying = true
		if status.Media != "" {
			c.view.Title = status.Media
		}
	case protocol.StatusPaused, protocol.StatusEnded:
		c.view.IsPlaying = false
	case protocol.StatusLoaded:
		c.view.IsPlaying = false
		c.view.Title = status.Media
		c.confirmLoaded(status.Media)
	case protocol.StatusDuration:
		c.updateSeekBar(0, status.Duration)
		c.view.SliderPercent = 0
	case protocol.StatusProgress, protocol.StatusSeeked:
		c.updateSeekBar(status.CurrentTime, status.Duration)
	case protocol.StatusRateChanged:
		if status.Rate > 0 {
			c.settleRate(status.Rate)
		}
	default:
		log.Warnf("controller: unknown status %q", status.Kind)
	}
}

// confirmLoaded makes the loaded media the current one. A title that does not
// belong to the requested selection was loaded by the engine itself, as when
// its queue advances, and becomes the selection.
func (c *Controller) confirmLoaded(title string) {
	if title != "" && title != c.requested.Title() {
		ref, ok := lo.Find(c.queue, func(src string) bool { return player.MediaTitle(src) == title })
		if !ok {
			ref = title
		}

		log.Infof("controller: engine moved on to %q", ref)
		c.requested = Selection{Type: MediaLocal, Ref: ref}
		c.reflectLink()
	}

	c.view.CurrentMediaType = c.requested.Type
	c.view.CurrentMediaRef = c.requested.Ref
}

func (c *Controller) updateSeekBar(currentTime, duration float64) {
	if !c.view.IsUserSeeking && duration > 0 && util.Finite(duration) {
		c.view.SliderPercent = util.Clamp(currentTime/duration*100, 0, 100)
	}

	c.view.CurrentTime = currentTime

	if duration > 0 && util.Finite(duration) {
		c.view.MediaDuration = duration
	}
}
