// Package tui is the terminal controller: it shows what the engine reports
// and turns key presses into playback commands.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/playshell/playshell/controller"
	"github.com/playshell/playshell/key"
	"github.com/playshell/playshell/log"
	"github.com/playshell/playshell/protocol"
	"github.com/playshell/playshell/recent"
	"github.com/playshell/playshell/session"
	"github.com/spf13/viper"
)

// Options configure Run.
type Options struct {
	// Initial is loaded once the engine is ready.
	Initial controller.Selection
}

// Run starts an in-process engine and the controller UI on top of it.
func Run(options *Options) error {
	failures := make(chan error, 8)

	s, err := session.Start(context.Background(), session.Options{
		OnError: func(err *protocol.BackendError) {
			select {
			case failures <- err:
			default:
			}
		},
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.Warn(err)
		}
	}()

	registry := recent.Open()
	ctrl := controller.New(s.Controller(), controller.Options{
		LinkBase: viper.GetString(key.LinkBase),
		Initial:  options.Initial,
		OnSelect: func(sel controller.Selection) {
			if err := registry.Remember(sel.Type.String(), sel.Ref); err != nil {
				log.Warn(err)
			}
		},
		Queue: viper.GetStringSlice(key.PlayerQueue),
	})

	if sel := options.Initial; sel.Ref != "" {
		if err := registry.Remember(sel.Type.String(), sel.Ref); err != nil {
			log.Warn(err)
		}
	}

	bubble := newBubble(ctrl, s.Controller().Statuses(), failures, registry)
	_, err = tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}
