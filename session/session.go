// Package session runs a player engine in process and hands out the
// controller end of its message channel.
package session

import (
	"context"
	"errors"

	"github.com/jonboulle/clockwork"
	"github.com/playshell/playshell/channel"
	"github.com/playshell/playshell/config"
	"github.com/playshell/playshell/engine"
	"github.com/playshell/playshell/key"
	"github.com/playshell/playshell/player"
	"github.com/playshell/playshell/protocol"
	"github.com/spf13/viper"
)

// Options configure a Session.
type Options struct {
	// Clock drives the engine and the virtual backend. Defaults to the real clock.
	Clock clockwork.Clock

	// OnError receives backend failures from the engine loop. It must not block.
	OnError func(*protocol.BackendError)
}

// Session owns an engine, its backends and the channel to it.
type Session struct {
	pipe    *channel.Pipe
	factory *player.Factory
	cancel  context.CancelFunc
	done    chan error
}

// Start builds the engine from the configuration and runs it until ctx is
// done or Close is called.
func Start(ctx context.Context, options Options) (*Session, error) {
	if options.Clock == nil {
		options.Clock = clockwork.NewRealClock()
	}

	factory, err := player.NewFactory(options.Clock)
	if err != nil {
		return nil, err
	}

	pipe := channel.New(viper.GetInt(key.ChannelBuffer))
	e := engine.New(pipe.Engine(), factory, engine.Options{
		Clock:            options.Clock,
		ProgressInterval: config.ProgressInterval(),
		Queue:            viper.GetStringSlice(key.PlayerQueue),
		OnError:          options.OnError,
	})

	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		pipe:    pipe,
		factory: factory,
		cancel:  cancel,
		done:    make(chan error, 1),
	}

	go func() {
		s.done <- e.Run(ctx)
	}()

	return s, nil
}

// Controller returns the controller end of the channel.
func (s *Session) Controller() *channel.ControllerEnd {
	return s.pipe.Controller()
}

// Close stops the engine and releases the backends.
func (s *Session) Close() error {
	s.cancel()
	runErr := <-s.done
	return errors.Join(runErr, s.factory.Close())
}
