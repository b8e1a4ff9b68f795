package engine

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// progressTimer fires every interval from its last start. Each wait is
// registered with the clock before start or rearm returns.
type progressTimer struct {
	clock    clockwork.Clock
	interval time.Duration
	next     time.Time
	c        <-chan time.Time
}

func (t *progressTimer) start() {
	t.next = t.clock.Now().Add(t.interval)
	t.c = t.clock.After(t.interval)
}

func (t *progressTimer) stop() {
	t.c = nil
}

// rearm schedules the tick after the one that just fired, skipping
// ticks that were missed.
func (t *progressTimer) rearm() {
	now := t.clock.Now()
	t.next = t.next.Add(t.interval)
	for !t.next.After(now) {
		t.next = t.next.Add(t.interval)
	}

	t.c = t.clock.After(t.next.Sub(now))
}

// C is nil while the timer is stopped.
func (t *progressTimer) C() <-chan time.Time {
	return t.c
}
