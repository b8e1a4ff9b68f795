package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/playshell/playshell/log"
)

var errMPVExited = errors.New("mpv exited")

// observed lists the properties mpv reports on the observer connection.
var observed = []string{"duration", "pause", "eof-reached"}

// observer keeps one connection open to mpv and turns property changes
// into element events. Observations are bound to the connection that
// requested them, so they are registered on the same one that is read.
type observer struct {
	conn net.Conn
	emit func(Event)

	mu      sync.Mutex
	stopped bool
	done    chan struct{}
}

func observe(socketPath string, emit func(Event)) (*observer, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("observer connect: %w", err)
	}

	encoder := json.NewEncoder(conn)
	for i, name := range observed {
		if err := encoder.Encode(ipcCommand{Command: []any{"observe_property", i + 1, name}}); err != nil {
			conn.Close()
			return nil, fmt.Errorf("observe %s: %w", name, err)
		}
	}

	o := &observer{
		conn: conn,
		emit: emit,
		done: make(chan struct{}),
	}

	go o.readLoop()

	log.Infof("observing %v on %s", observed, socketPath)
	return o, nil
}

func (o *observer) stop() {
	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		return
	}
	o.stopped = true
	o.mu.Unlock()

	_ = o.conn.Close()
	<-o.done
}

func (o *observer) readLoop() {
	defer close(o.done)

	scanner := bufio.NewScanner(o.conn)
	for scanner.Scan() {
		var msg ipcMessage
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			continue
		}

		if ev, ok := translate(msg); ok {
			o.emit(ev)
		}
	}

	o.mu.Lock()
	stopped := o.stopped
	o.mu.Unlock()

	if !stopped {
		log.Warnf("observer closed: %v", scanner.Err())
		o.emit(Event{Kind: EventError, Err: errMPVExited})
	}
}

// translate maps one mpv message to an element event.
func translate(msg ipcMessage) (Event, bool) {
	if msg.Event != "property-change" {
		return Event{}, false
	}

	switch msg.Name {
	case "duration":
		if d, ok := msg.Data.(float64); ok && d > 0 {
			return Event{Kind: EventDuration, Duration: d}, true
		}
	case "pause":
		if paused, ok := msg.Data.(bool); ok {
			if paused {
				return Event{Kind: EventPaused}, true
			}
			return Event{Kind: EventPlaying}, true
		}
	case "eof-reached":
		if eof, ok := msg.Data.(bool); ok && eof {
			return Event{Kind: EventEnded}, true
		}
	}

	return Event{}, false
}
