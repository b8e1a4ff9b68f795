// Package engine runs the player side of the playback protocol.
// It executes commands against the active backend and reports every
// transition, plus a periodic progress status while playing.
package engine

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/playshell/playshell/log"
	"github.com/playshell/playshell/player"
	"github.com/playshell/playshell/protocol"
	"github.com/samber/lo"
)

// eventBuffer bounds backend events not yet handled by the loop.
const eventBuffer = 128

// Port is the engine end of a message channel.
type Port interface {
	Listen() <-chan protocol.Command
	Emit(protocol.Status) error
}

// Factory builds a backend of the given kind that reports to sink.
// Check validates a ref before anything is built for it.
type Factory interface {
	Check(kind player.Kind, ref string) error
	New(kind player.Kind, sink player.Sink) (player.Backend, error)
}

// Options tune an Engine. Zero values select the defaults.
type Options struct {
	// Clock drives the progress ticker. Defaults to the real clock.
	Clock clockwork.Clock

	// ProgressInterval is the progress cadence while playing. Defaults to one second.
	ProgressInterval time.Duration

	// Queue lists local sources played in order when one ends.
	Queue []string

	// OnError is called from the engine loop with every backend failure.
	// Failures are logged either way.
	OnError func(*protocol.BackendError)
}

type backendEvent struct {
	generation int
	player.Event
}

// Engine owns one backend at a time and is driven by Run.
// Its fields are only touched by the Run goroutine.
type Engine struct {
	port    Port
	factory Factory
	queue   []string
	onError func(*protocol.BackendError)

	state      State
	backend    player.Backend
	generation int
	title      string
	duration   float64
	rate       float64
	reported   float64
	timer      progressTimer

	events chan backendEvent
	done   chan struct{}
}

// New returns an engine that talks through port and builds backends with factory.
func New(port Port, factory Factory, options Options) *Engine {
	if options.Clock == nil {
		options.Clock = clockwork.NewRealClock()
	}

	if options.ProgressInterval <= 0 {
		options.ProgressInterval = time.Second
	}

	return &Engine{
		port:     port,
		factory:  factory,
		queue:    options.Queue,
		onError:  options.OnError,
		state:    Uninitialized,
		rate:     1,
		reported: 1,
		timer:    progressTimer{clock: options.Clock, interval: options.ProgressInterval},
		events:   make(chan backendEvent, eventBuffer),
		done:     make(chan struct{}),
	}
}

// Run announces readiness and serves commands and backend events until ctx is done.
// The active backend is closed on return.
func (e *Engine) Run(ctx context.Context) error {
	if e.state != Uninitialized {
		return errors.New("engine already started")
	}

	commands := e.port.Listen()
	e.state = Ready
	e.emit(protocol.EngineReady())

	defer e.shutdown()

	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd := <-commands:
			e.handleCommand(cmd)
		case ev := <-e.events:
			e.handleEvent(ev)
		case <-e.timer.C():
			e.progress()
		}
	}
}

func (e *Engine) shutdown() {
	close(e.done)
	e.stopTicker()

	if e.backend != nil {
		if err := e.backend.Close(); err != nil {
			log.Warnf("closing %s backend: %v", e.backend.Kind(), err)
		}
		e.backend = nil
	}
}

func (e *Engine) emit(status protocol.Status) {
	log.Debugf("engine: %s", status)
	// a full queue is logged by the port
	_ = e.port.Emit(status)
}

// sink tags events with the backend generation they belong to.
func (e *Engine) sink(generation int) player.Sink {
	return func(ev player.Event) {
		select {
		case e.events <- backendEvent{generation: generation, Event: ev}:
		case <-e.done:
		}
	}
}

func (e *Engine) fail(op string, err error) {
	variant := "none"
	if e.backend != nil {
		variant = string(e.backend.Kind())
	}

	e.report(&protocol.BackendError{Op: op, Variant: variant, Err: err})
}

func (e *Engine) report(err *protocol.BackendError) {
	log.With(log.Fields{"op": err.Op, "variant": err.Variant}).Error(err.Err)

	if e.onError != nil {
		e.onError(err)
	}
}

func (e *Engine) handleCommand(cmd protocol.Command) {
	log.Debugf("engine: %s in state %s", cmd, e.state)

	switch cmd.Action {
	case protocol.ActionLoadMedia:
		e.load(player.KindLocal, cmd.Src)
	case protocol.ActionLoadEmbed:
		e.load(player.KindEmbedded, cmd.VideoID)
	case protocol.ActionPlay:
		e.play()
	case protocol.ActionPause:
		e.pause()
	case protocol.ActionSeek:
		e.seek(cmd.Time)
	case protocol.ActionSetRate:
		e.setRate(cmd.Rate)
	default:
		log.Warnf("unknown action %q", cmd.Action)
	}
}

// load activates ref on a backend of the given kind. The current backend is
// reused when it already holds ref, and replaced otherwise.
func (e *Engine) load(kind player.Kind, ref string) {
	if e.backend != nil && e.backend.Kind() == kind && e.backend.Source() == ref {
		e.stopTicker()
		if err := e.backend.Load(ref); err != nil {
			e.fail("load", err)
			return
		}

		e.loaded()
		return
	}

	if err := e.factory.Check(kind, ref); err != nil {
		e.report(&protocol.BackendError{Op: "load", Variant: string(kind), Err: err})
		return
	}

	// the previous backend is gone before the next one exists
	e.teardown()
	e.generation++

	next, err := e.factory.New(kind, e.sink(e.generation))
	if err != nil {
		e.report(&protocol.BackendError{Op: "create", Variant: string(kind), Err: err})
		e.state = Ready
		return
	}

	e.backend = next
	if err := next.Load(ref); err != nil {
		e.fail("load", err)
		if err := next.Close(); err != nil {
			log.Warnf("closing %s backend: %v", kind, err)
		}
		e.backend = nil
		e.state = Ready
		return
	}

	e.loaded()
	e.applyRate()
}

// teardown stops and releases the active backend.
func (e *Engine) teardown() {
	e.stopTicker()

	if e.backend == nil {
		return
	}

	log.Infof("tearing down %s backend for %q", e.backend.Kind(), e.backend.Source())
	if err := e.backend.Close(); err != nil {
		e.fail("close", err)
	}
	e.backend = nil
}

// applyRate carries the last requested rate over to a new backend. The
// controller hears about it whenever the applied rate differs from the one
// it was last told.
func (e *Engine) applyRate() {
	if e.rate == 1 && e.reported == 1 {
		return
	}

	actual, err := e.backend.SetRate(e.rate)
	if err != nil {
		e.fail("rate", err)
		return
	}

	if actual != e.reported {
		e.reportRate(actual)
	}
}

func (e *Engine) reportRate(rate float64) {
	e.reported = rate
	e.emit(protocol.RateChanged(rate))
}

func (e *Engine) loaded() {
	e.state = Loaded
	e.duration = 0
	e.title = e.backend.Title()
	e.emit(protocol.Loaded(e.title))
}

func (e *Engine) play() {
	if e.backend == nil {
		log.Warnf("play: %v", errNothingLoaded)
		return
	}

	if err := e.backend.Play(); err != nil {
		e.fail("play", err)
		return
	}

	// the backend reports nothing when it is already playing
	if e.state == Playing {
		e.startTicker()
	}
}

func (e *Engine) pause() {
	if e.backend == nil {
		log.Warnf("pause: %v", errNothingLoaded)
		return
	}

	if err := e.backend.Pause(); err != nil {
		e.fail("pause", err)
		return
	}

	e.stopTicker()
}

func (e *Engine) seek(t float64) {
	if e.backend == nil {
		log.Warnf("seek: %v", errNothingLoaded)
		return
	}

	duration := e.currentDuration()
	target := protocol.ClampSeek(t, duration)
	if err := e.backend.Seek(target); err != nil {
		e.fail("seek", err)
		return
	}

	e.emit(protocol.Seeked(e.backend.CurrentTime(), duration))
}

func (e *Engine) setRate(requested float64) {
	rate := protocol.ClampRate(requested)
	e.rate = rate

	if e.backend == nil {
		e.reportRate(rate)
		return
	}

	actual, err := e.backend.SetRate(rate)
	if err != nil {
		e.fail("rate", err)
		return
	}

	e.reportRate(actual)
}

func (e *Engine) handleEvent(ev backendEvent) {
	if ev.generation != e.generation || e.backend == nil {
		log.Debugf("engine: dropping %s event from a replaced backend", ev.Kind)
		return
	}

	switch ev.Kind {
	case player.EventDuration:
		e.duration = ev.Duration
		e.emit(protocol.DurationKnown(ev.Duration))
	case player.EventPlaying:
		e.startTicker()
		e.state = Playing
		e.emit(protocol.Playing(e.title))
	case player.EventPaused:
		e.paused()
	case player.EventEnded:
		e.ended()
	case player.EventError:
		e.fail("playback", ev.Err)
	}
}

// paused handles a pause reported by the backend. A pause at the end of the
// media is left to the ended event that follows it.
func (e *Engine) paused() {
	if e.state != Playing {
		return
	}

	e.stopTicker()

	if e.backend.AtEnd() {
		return
	}

	e.state = Paused
	e.emit(protocol.Paused())
}

func (e *Engine) ended() {
	e.stopTicker()
	e.state = Ended
	e.emit(protocol.Ended())

	if e.backend.Kind() != player.KindLocal || len(e.queue) == 0 {
		return
	}

	// a source missing from the queue starts it from the top
	current := lo.IndexOf(e.queue, e.backend.Source())
	if current+1 >= len(e.queue) {
		return
	}

	next := e.queue[current+1]
	log.Infof("advancing to %q", next)

	e.load(player.KindLocal, next)
	if e.state == Loaded {
		e.play()
	}
}

func (e *Engine) currentDuration() float64 {
	if e.backend != nil {
		if d := e.backend.Duration(); d > 0 {
			return d
		}
	}
	return e.duration
}

func (e *Engine) progress() {
	if e.state != Playing || e.backend == nil {
		e.stopTicker()
		return
	}

	e.timer.rearm()
	e.emit(protocol.Progress(e.backend.CurrentTime(), e.currentDuration()))
}

// startTicker restarts the progress cadence from now.
func (e *Engine) startTicker() {
	e.timer.start()
}

func (e *Engine) stopTicker() {
	e.timer.stop()
}

var errNothingLoaded = errors.New("nothing loaded")
