// Package channel joins a controller and a player engine with two one-way
// message queues. Sends never block: a full queue drops the message.
package channel

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/playshell/playshell/log"
	"github.com/playshell/playshell/protocol"
)

// ErrFull is returned when a message is dropped because its queue is full.
var ErrFull = errors.New("queue full")

// Pipe holds the command queue and the status queue shared by both ends.
type Pipe struct {
	commands  chan protocol.Command
	statuses  chan protocol.Status
	listening atomic.Bool
}

// New returns a pipe whose queues hold up to buffer messages each.
func New(buffer int) *Pipe {
	if buffer < 1 {
		buffer = 1
	}

	return &Pipe{
		commands: make(chan protocol.Command, buffer),
		statuses: make(chan protocol.Status, buffer),
	}
}

// Engine returns the end used by the player engine.
func (p *Pipe) Engine() *EngineEnd {
	return &EngineEnd{pipe: p}
}

// Controller returns the end used by the controller.
func (p *Pipe) Controller() *ControllerEnd {
	return &ControllerEnd{pipe: p}
}

// EngineEnd receives commands and emits statuses.
type EngineEnd struct {
	pipe *Pipe
}

// Listen marks the engine as listening and returns the command queue.
// Commands sent before the first call are dropped.
func (e *EngineEnd) Listen() <-chan protocol.Command {
	e.pipe.listening.Store(true)
	return e.pipe.commands
}

// Emit queues a status for the controller.
func (e *EngineEnd) Emit(status protocol.Status) error {
	select {
	case e.pipe.statuses <- status:
		return nil
	default:
		log.Warnf("dropping status %s: %v", status, ErrFull)
		return fmt.Errorf("status %s: %w", status.Kind, ErrFull)
	}
}

// ControllerEnd sends commands and receives statuses.
type ControllerEnd struct {
	pipe *Pipe
}

// Send queues a command for the engine.
func (c *ControllerEnd) Send(cmd protocol.Command) error {
	if !c.pipe.listening.Load() {
		log.Warnf("dropping command %s: %v", cmd, protocol.ErrNotReady)
		return fmt.Errorf("command %s: %w", cmd.Action, protocol.ErrNotReady)
	}

	select {
	case c.pipe.commands <- cmd:
		return nil
	default:
		log.Warnf("dropping command %s: %v", cmd, ErrFull)
		return fmt.Errorf("command %s: %w", cmd.Action, ErrFull)
	}
}

// Statuses returns the status queue.
func (c *ControllerEnd) Statuses() <-chan protocol.Status {
	return c.pipe.statuses
}
