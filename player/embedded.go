package player

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/playshell/playshell/log"
	"github.com/samber/mo"
)

// Embedded plays videos addressed by id. Loading is asynchronous: the id is
// resolved in the background and the video becomes ready some time later.
// Play and Seek issued before that are applied once it is ready.
type Embedded struct {
	resolver Resolver
	elem     Element
	sink     Sink
	rates    []float64

	mu          sync.Mutex
	videoID     string
	ready       bool
	pendingPlay bool
	pendingSeek mo.Option[float64]
	rate        float64
	cancel      context.CancelFunc
	resolved    chan struct{}
}

// NewEmbedded returns an embedded video backend that only supports the given rates.
func NewEmbedded(resolver Resolver, elem Element, rates []float64, sink Sink) *Embedded {
	return &Embedded{
		resolver: resolver,
		elem:     elem,
		rates:    rates,
		sink:     sink,
		rate:     1,
	}
}

func (e *Embedded) Kind() Kind {
	return KindEmbedded
}

func (e *Embedded) Source() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.videoID
}

func (e *Embedded) Title() string {
	return e.Source()
}

// ErrEmptyVideoID is returned for an empty video id.
var ErrEmptyVideoID = errors.New("empty video id")

// CheckVideoID rejects ids no resolver could look up.
func CheckVideoID(videoID string) error {
	if strings.TrimSpace(videoID) == "" {
		return ErrEmptyVideoID
	}
	return nil
}

func (e *Embedded) Check(videoID string) error {
	return CheckVideoID(videoID)
}

// Load cues videoID. It returns before the video is ready.
func (e *Embedded) Load(videoID string) error {
	if err := e.Check(videoID); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cancel != nil {
		e.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.videoID = videoID
	e.ready = false
	e.pendingPlay = false
	e.pendingSeek = mo.None[float64]()
	e.resolved = make(chan struct{})

	go e.cue(ctx, videoID, e.resolved)
	return nil
}

func (e *Embedded) cue(ctx context.Context, videoID string, resolved chan struct{}) {
	defer close(resolved)

	media, err := e.resolver.Resolve(ctx, videoID)

	e.mu.Lock()
	defer e.mu.Unlock()

	if ctx.Err() != nil {
		return
	}

	if err != nil {
		e.sink.emit(Event{Kind: EventError, Err: err})
		return
	}

	if err := e.elem.Open(media.URL, e.sink); err != nil {
		e.sink.emit(Event{Kind: EventError, Err: err})
		return
	}

	if e.rate != 1 {
		if err := e.elem.SetRate(e.rate); err != nil {
			log.Warnf("embedded %s: apply rate: %v", videoID, err)
		}
	}

	if t, ok := e.pendingSeek.Get(); ok {
		if err := e.elem.Seek(t); err != nil {
			log.Warnf("embedded %s: apply seek: %v", videoID, err)
		}
	}

	e.ready = true
	log.Infof("embedded %s ready (%s)", videoID, media.Title)

	if e.pendingPlay {
		e.pendingPlay = false
		if err := e.elem.Play(); err != nil {
			e.sink.emit(Event{Kind: EventError, Err: err})
		}
	}
}

// Ready returns a channel closed once the current cue attempt has finished.
func (e *Embedded) Ready() <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resolved
}

func (e *Embedded) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.ready {
		e.pendingPlay = true
		return nil
	}

	return e.elem.Play()
}

func (e *Embedded) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.ready {
		e.pendingPlay = false
		return nil
	}

	return e.elem.Pause()
}

func (e *Embedded) Seek(seconds float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.ready {
		e.pendingSeek = mo.Some(seconds)
		return nil
	}

	return e.elem.Seek(seconds)
}

// SetRate coerces rate to the nearest supported one.
func (e *Embedded) SetRate(rate float64) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.rate = NearestRate(rate, e.rates)
	if !e.ready {
		return e.rate, nil
	}

	if err := e.elem.SetRate(e.rate); err != nil {
		return e.elem.Rate(), err
	}

	return e.elem.Rate(), nil
}

func (e *Embedded) Duration() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.ready {
		return 0
	}
	return e.elem.Duration()
}

func (e *Embedded) CurrentTime() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.ready {
		return e.pendingSeek.OrElse(0)
	}
	return e.elem.Position()
}

func (e *Embedded) AtEnd() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ready && e.elem.AtEnd()
}

// Close destroys the player. A pending cue is abandoned.
func (e *Embedded) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}

	if e.videoID == "" {
		return nil
	}

	e.videoID = ""
	e.ready = false
	e.pendingPlay = false
	return e.elem.Close()
}
