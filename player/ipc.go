package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"
)

// ipcCommand is a single request written to the mpv socket.
type ipcCommand struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id,omitempty"`
}

// ipcMessage is any line mpv writes back: a reply carries request_id,
// an event carries event and, for property changes, name and data.
type ipcMessage struct {
	Data      any    `json:"data"`
	Error     string `json:"error"`
	RequestID int64  `json:"request_id"`
	Event     string `json:"event"`
	Name      string `json:"name"`
}

const (
	maxRetries   = 3
	retryDelay   = 100 * time.Millisecond
	readDeadline = 1 * time.Second
)

// errPropertyUnavailable is what mpv answers for properties of a missing file.
var errPropertyUnavailable = errors.New("property unavailable")

// sendCommand runs one IPC command on a fresh connection, retrying transient failures.
func (m *MPV) sendCommand(command ...any) (any, error) {
	m.mu.Lock()
	socket := m.socketPath
	m.mu.Unlock()

	if socket == "" {
		return nil, ErrNothingOpen
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay)
		}

		result, err := doSendCommand(socket, m.requestID.Add(1), command)
		if err == nil || errors.Is(err, errPropertyUnavailable) {
			return result, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("ipc command %v failed after %d attempts: %w", command[0], maxRetries, lastErr)
}

// doSendCommand performs a single IPC round trip and waits for the reply
// carrying id. Events broadcast on the same connection are skipped.
func doSendCommand(socketPath string, id int64, command []any) (any, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	if err := json.NewEncoder(conn).Encode(ipcCommand{Command: command, RequestID: id}); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(readDeadline)); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var msg ipcMessage
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			continue
		}

		if msg.Event != "" || msg.RequestID != id {
			continue
		}

		return replyData(msg)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	return nil, errors.New("read: connection closed before reply")
}

func replyData(msg ipcMessage) (any, error) {
	switch msg.Error {
	case "", "success":
		return msg.Data, nil
	case errPropertyUnavailable.Error():
		return nil, errPropertyUnavailable
	default:
		return nil, fmt.Errorf("mpv error: %s", msg.Error)
	}
}
