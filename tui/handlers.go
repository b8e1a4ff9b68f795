package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/playshell/playshell/channel"
	"github.com/playshell/playshell/controller"
	"github.com/playshell/playshell/internal/ui"
	"github.com/playshell/playshell/key"
	"github.com/playshell/playshell/protocol"
	"github.com/playshell/playshell/recent"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

type statusMsg protocol.Status

type failureMsg struct {
	err error
}

func (b *statefulBubble) waitForStatus() tea.Cmd {
	return func() tea.Msg {
		return statusMsg(<-b.statuses)
	}
}

func (b *statefulBubble) waitForFailure() tea.Cmd {
	return func() tea.Msg {
		return failureMsg{err: <-b.failures}
	}
}

// notifyErr shows a gesture that the engine never received.
func (b *statefulBubble) notifyErr(err error) tea.Cmd {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, protocol.ErrNotReady):
		return ui.Notify("player is not ready yet")
	case errors.Is(err, channel.ErrFull):
		return ui.Notify("player is busy, try again")
	default:
		return ui.Notify(err.Error())
	}
}

// seekBy moves the slider by step percent and seeks there.
func (b *statefulBubble) seekBy(step float64) tea.Cmd {
	view := b.controller.View()
	if view.MediaDuration <= 0 {
		return nil
	}

	b.controller.BeginSeek()
	b.controller.DragSeek(view.SliderPercent + step)
	return b.notifyErr(b.controller.EndSeek())
}

func (b *statefulBubble) seekStep() float64 {
	return float64(viper.GetInt(key.TUISeekStep))
}

func (b *statefulBubble) openPrompt(mediaType controller.MediaType) tea.Cmd {
	b.opening = mediaType
	b.inputC.SetValue("")

	switch mediaType {
	case controller.MediaEmbedded:
		b.inputC.Placeholder = "Video ID"
		b.inputC.Prompt = "ytid: "
	default:
		b.inputC.Placeholder = "File path or URL"
		b.inputC.Prompt = "media: "
	}

	b.updateSuggestion()
	b.newState(openState)
	return b.inputC.Focus()
}

func (b *statefulBubble) updateSuggestion() {
	if b.recent == nil {
		b.suggestion = mo.None[recent.Entry]()
		return
	}

	kind := b.opening.String()
	matches := lo.Filter(b.recent.SuggestMany(b.inputC.Value()), func(e recent.Entry, _ int) bool {
		return e.Kind == kind && e.Ref != b.inputC.Value()
	})

	if len(matches) == 0 {
		b.suggestion = mo.None[recent.Entry]()
		return
	}

	b.suggestion = mo.Some(matches[0])
}

// load sends the prompt value, or the suggestion when the prompt is empty.
func (b *statefulBubble) load() tea.Cmd {
	ref := b.inputC.Value()
	if ref == "" {
		if suggestion, ok := b.suggestion.Get(); ok {
			ref = suggestion.Ref
		}
	}

	if ref == "" {
		return ui.Notify(fmt.Sprintf("nothing to load: enter a %s", b.inputC.Placeholder))
	}

	var err error
	switch b.opening {
	case controller.MediaEmbedded:
		err = b.controller.LoadEmbed(ref)
	default:
		err = b.controller.LoadMedia(ref)
	}

	b.inputC.Blur()
	b.back()
	return b.notifyErr(err)
}
