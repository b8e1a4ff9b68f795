// Package headless runs the player engine without a user interface. Commands
// are read as JSON lines and statuses are written the same way, so any
// process can act as the controller.
package headless

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/playshell/playshell/channel"
	"github.com/playshell/playshell/session"
)

// Options configure Run.
type Options struct {
	// In carries commands. Defaults to stdin.
	In io.Reader

	// Out receives statuses. Defaults to stdout.
	Out io.Writer

	// Clock drives the engine. Defaults to the real clock.
	Clock clockwork.Clock
}

// Run serves the engine until In is exhausted or ctx is done.
func Run(ctx context.Context, options *Options) error {
	if options.In == nil {
		options.In = os.Stdin
	}

	if options.Out == nil {
		options.Out = os.Stdout
	}

	s, err := session.Start(ctx, session.Options{Clock: options.Clock})
	if err != nil {
		return err
	}

	serveErr := channel.ServeLines(ctx, s.Controller(), options.In, options.Out)
	return errors.Join(serveErr, s.Close())
}
