package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/playshell/playshell/color"
	"github.com/playshell/playshell/controller"
	"github.com/playshell/playshell/icon"
	"github.com/playshell/playshell/style"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

func (b *statefulBubble) View() string {
	switch b.state {
	case waitingState:
		return b.viewWaiting()
	case playerState:
		return b.viewPlayer()
	case openState:
		return b.viewOpen()
	case errorState:
		return b.viewError()
	default:
		return "Unknown state"
	}
}

func (b *statefulBubble) viewWaiting() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Playshell"),
			"",
			b.spinnerC.View() + " Waiting for the player",
		},
	)
}

func mediaIcon(t controller.MediaType) string {
	switch t {
	case controller.MediaEmbedded:
		return icon.Get(icon.Embedded)
	default:
		return icon.Get(icon.Local)
	}
}

func (b *statefulBubble) viewPlayer() string {
	view := b.controller.View()

	title := style.Faint("Nothing loaded")
	if view.Title != "" {
		title = mediaIcon(view.CurrentMediaType) + " " + style.Fg(color.Purple)(view.Title)
	}

	state := icon.Get(icon.Pause)
	if view.IsPlaying {
		state = icon.Get(icon.Play)
	}

	lines := []string{
		style.Title("Now Playing"),
		"",
		style.Truncate(b.width)(title),
		"",
		b.progressC.ViewAs(view.SliderPercent / 100),
		fmt.Sprintf(
			"%s %s / %s   %s %s   %s",
			state,
			view.TimeLabel(),
			view.DurationLabel(),
			icon.Get(icon.Rate),
			style.Fg(color.Yellow)(view.RateLabel()),
			style.Bold(view.PlayLabel()),
		),
	}

	if link := b.controller.Link(); link != "" {
		lines = append(lines, "", style.Truncate(b.width)(style.Faint(link)))
	}

	lines = append(lines, "", b.notifier.View(b.width))
	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewOpen() string {
	title := "Open Media"
	if b.opening == controller.MediaEmbedded {
		title = "Open Video"
	}

	lines := []string{
		style.Title(title),
		"",
		b.inputC.View(),
	}

	if suggestion, ok := b.suggestion.Get(); ok {
		lines = append(lines, "", style.Faint("recent: ")+style.Fg(color.Cyan)(suggestion.Ref))
	}

	lines = append(lines, "", b.notifier.View(b.width))
	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(style.ErrorColor).Bold(true)

	var message string
	if b.lastError != nil {
		message = b.lastError.Error()
	}

	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
			wrap.String(errorStyle.Render(message), b.width),
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
