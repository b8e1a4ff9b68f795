package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/playshell/playshell/controller"
	"github.com/playshell/playshell/protocol"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	notifierCmd := b.notifier.Update(msg)

	switch msg := msg.(type) {
	case statusMsg:
		status := protocol.Status(msg)
		b.controller.HandleStatus(status)
		if status.Kind == protocol.StatusEngineReady && b.state == waitingState {
			b.setState(playerState)
		}
		return b, b.waitForStatus()
	case failureMsg:
		return b, tea.Batch(b.notifyErr(msg.err), b.waitForFailure())
	case error:
		b.raiseError(msg)
		return b, nil
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	case progress.FrameMsg:
		model, cmd := b.progressC.Update(msg)
		b.progressC = model.(progress.Model)
		return b, cmd
	case tea.KeyMsg:
		if key.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch b.state {
	case playerState:
		cmd = b.updatePlayer(msg)
	case openState:
		cmd = b.updateOpen(msg)
	case errorState:
		cmd = b.updateError(msg)
	}

	return b, tea.Batch(cmd, notifierCmd)
}

func (b *statefulBubble) updatePlayer(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case key.Matches(keyMsg, b.keymap.quit):
		return tea.Quit
	case key.Matches(keyMsg, b.keymap.playPause):
		return b.notifyErr(b.controller.TogglePlay())
	case key.Matches(keyMsg, b.keymap.slower):
		return b.notifyErr(b.controller.RateDown())
	case key.Matches(keyMsg, b.keymap.faster):
		return b.notifyErr(b.controller.RateUp())
	case key.Matches(keyMsg, b.keymap.seekBack):
		return b.seekBy(-b.seekStep())
	case key.Matches(keyMsg, b.keymap.seekForward):
		return b.seekBy(b.seekStep())
	case key.Matches(keyMsg, b.keymap.openMedia):
		return b.openPrompt(controller.MediaLocal)
	case key.Matches(keyMsg, b.keymap.openEmbed):
		return b.openPrompt(controller.MediaEmbedded)
	case key.Matches(keyMsg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
	}

	return nil
}

func (b *statefulBubble) updateOpen(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, b.keymap.back):
			b.inputC.Blur()
			b.back()
			return nil
		case key.Matches(keyMsg, b.keymap.confirm):
			return b.load()
		case key.Matches(keyMsg, b.keymap.acceptSuggestion):
			if suggestion, ok := b.suggestion.Get(); ok {
				b.inputC.SetValue(suggestion.Ref)
				b.inputC.CursorEnd()
				b.updateSuggestion()
			}
			return nil
		}
	}

	var cmd tea.Cmd
	b.inputC, cmd = b.inputC.Update(msg)
	b.updateSuggestion()
	return cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case key.Matches(keyMsg, b.keymap.quit):
		return tea.Quit
	case key.Matches(keyMsg, b.keymap.back):
		b.lastError = nil
		b.back()
	}

	return nil
}
