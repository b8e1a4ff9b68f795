package player

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/playshell/playshell/util"
)

// ErrNothingOpen is returned by element operations that need a target.
var ErrNothingOpen = errors.New("no media open")

// Virtual is a media element that plays silence against a clock.
// Every target it opens reports the same fixed duration.
type Virtual struct {
	clock    clockwork.Clock
	duration float64

	mu      sync.Mutex
	sink    Sink
	target  string
	playing bool
	pos     float64
	anchor  time.Time
	rate    float64
	stopEnd chan struct{}
}

// NewVirtual returns a virtual element driven by clock.
func NewVirtual(clock clockwork.Clock, duration time.Duration) *Virtual {
	return &Virtual{
		clock:    clock,
		duration: duration.Seconds(),
		rate:     1,
	}
}

func (v *Virtual) Open(target string, sink Sink) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.cancelEnd()
	v.sink = sink
	v.target = target
	v.playing = false
	v.pos = 0

	v.sink.emit(Event{Kind: EventDuration, Duration: v.duration})
	return nil
}

func (v *Virtual) Play() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.target == "" {
		return ErrNothingOpen
	}

	if v.playing {
		return nil
	}

	if v.pos >= v.duration {
		v.pos = 0
	}

	v.playing = true
	v.anchor = v.clock.Now()
	v.scheduleEnd()

	v.sink.emit(Event{Kind: EventPlaying})
	return nil
}

func (v *Virtual) Pause() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.playing {
		return nil
	}

	v.pos = v.position()
	v.playing = false
	v.cancelEnd()

	v.sink.emit(Event{Kind: EventPaused})
	return nil
}

func (v *Virtual) Seek(seconds float64) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.target == "" {
		return ErrNothingOpen
	}

	v.pos = util.Clamp(seconds, 0, v.duration)
	if v.playing {
		v.anchor = v.clock.Now()
		v.scheduleEnd()
	}

	return nil
}

func (v *Virtual) SetRate(rate float64) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.playing {
		v.pos = v.position()
		v.anchor = v.clock.Now()
	}

	v.rate = rate
	if v.playing {
		v.scheduleEnd()
	}

	return nil
}

func (v *Virtual) Rate() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rate
}

func (v *Virtual) Position() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.position()
}

func (v *Virtual) Duration() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.target == "" {
		return 0
	}
	return v.duration
}

func (v *Virtual) AtEnd() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.target != "" && v.position() >= v.duration
}

func (v *Virtual) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.cancelEnd()
	v.target = ""
	v.playing = false
	v.pos = 0
	v.sink = nil
	return nil
}

func (v *Virtual) position() float64 {
	if !v.playing {
		return v.pos
	}

	elapsed := v.clock.Since(v.anchor).Seconds() * v.rate
	return util.Clamp(v.pos+elapsed, 0, v.duration)
}

// scheduleEnd replaces the pending end-of-media timer.
// The timer is registered with the clock before it returns.
func (v *Virtual) scheduleEnd() {
	v.cancelEnd()

	remaining := time.Duration((v.duration - v.pos) / v.rate * float64(time.Second))
	fire := v.clock.After(remaining)
	stop := make(chan struct{})
	v.stopEnd = stop

	go func() {
		select {
		case <-stop:
		case <-fire:
			v.reachEnd(stop)
		}
	}()
}

func (v *Virtual) reachEnd(stop chan struct{}) {
	v.mu.Lock()
	if v.stopEnd != stop || !v.playing {
		v.mu.Unlock()
		return
	}

	v.stopEnd = nil
	v.pos = v.duration
	v.playing = false
	sink := v.sink
	v.mu.Unlock()

	// a media element pauses before it reports the end
	sink.emit(Event{Kind: EventPaused})
	sink.emit(Event{Kind: EventEnded})
}

func (v *Virtual) cancelEnd() {
	if v.stopEnd != nil {
		close(v.stopEnd)
		v.stopEnd = nil
	}
}
