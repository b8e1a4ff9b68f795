package channel

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/playshell/playshell/log"
	"github.com/playshell/playshell/protocol"
)

// ServeLines bridges a controller end to newline-delimited JSON.
// Commands are decoded from r and statuses are encoded to w.
// Lines that fail to decode are logged and skipped.
// It returns when r is exhausted or ctx is done.
func ServeLines(ctx context.Context, end *ControllerEnd, r io.Reader, w io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	readErr := make(chan error, 1)
	go func() {
		readErr <- readCommands(ctx, end, r)
	}()

	encoder := json.NewEncoder(w)
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			drainStatuses(end, encoder)
			return err
		case status := <-end.Statuses():
			if err := encoder.Encode(status); err != nil {
				return err
			}
		}
	}
}

func readCommands(ctx context.Context, end *ControllerEnd, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var cmd protocol.Command
		if err := json.Unmarshal([]byte(line), &cmd); err != nil {
			log.Warnf("skipping line %q: %v", line, err)
			continue
		}

		// dropped commands are already logged by Send
		_ = end.Send(cmd)
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

func drainStatuses(end *ControllerEnd, encoder *json.Encoder) {
	for {
		select {
		case status := <-end.Statuses():
			if err := encoder.Encode(status); err != nil {
				return
			}
		default:
			return
		}
	}
}

// ReadStatuses decodes newline-delimited statuses from r until it is
// exhausted, calling fn for each one. Unknown lines are skipped.
func ReadStatuses(r io.Reader, fn func(protocol.Status)) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var status protocol.Status
		if err := json.Unmarshal([]byte(line), &status); err != nil {
			log.Warnf("skipping line %q: %v", line, err)
			continue
		}

		fn(status)
	}

	return scanner.Err()
}
