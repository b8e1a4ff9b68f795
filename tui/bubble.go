package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/playshell/playshell/controller"
	"github.com/playshell/playshell/internal/ui"
	"github.com/playshell/playshell/protocol"
	"github.com/playshell/playshell/recent"
	"github.com/playshell/playshell/style"
	"github.com/playshell/playshell/util"
	"github.com/samber/mo"
)

type statefulBubble struct {
	state         state
	previousState state

	keymap *statefulKeymap

	// components
	spinnerC  spinner.Model
	inputC    textinput.Model
	progressC progress.Model
	helpC     help.Model

	controller *controller.Controller
	statuses   <-chan protocol.Status
	failures   <-chan error
	recent     *recent.Registry

	// media type the open prompt loads
	opening    controller.MediaType
	suggestion mo.Option[recent.Entry]

	lastError     error
	width, height int
	notifier      *ui.Model
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState moves to s and remembers where it came from, except for the
// error screen which is never returned to.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if b.state != errorState {
		b.previousState = b.state
	}

	b.setState(s)
}

func (b *statefulBubble) back() {
	b.setState(b.previousState)
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y

	b.progressC.Width = b.width
	b.inputC.Width = b.width
	b.helpC.Width = b.width
}

func newBubble(ctrl *controller.Controller, statuses <-chan protocol.Status, failures <-chan error, registry *recent.Registry) *statefulBubble {
	bubble := statefulBubble{
		keymap:     newStatefulKeymap(),
		controller: ctrl,
		statuses:   statuses,
		failures:   failures,
		recent:     registry,
		notifier:   &ui.Model{},
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	bubble.inputC = textinput.New()
	bubble.inputC.CharLimit = 512

	bubble.progressC = progress.New(
		progress.WithGradient(style.SeekStart, style.SeekEnd),
		progress.WithoutPercentage(),
	)

	bubble.setState(waitingState)

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return &bubble
}
