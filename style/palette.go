package style

import "github.com/charmbracelet/lipgloss"

// Palette of the controller UI.
var (
	Base    = lipgloss.Color("#1e1e2e")
	Text    = lipgloss.Color("#cdd6f4")
	Overlay = lipgloss.Color("#6c7086")
	Surface = lipgloss.Color("#313244")

	Mauve    = lipgloss.Color("#cba6f7")
	Red      = lipgloss.Color("#f38ba8")
	Peach    = lipgloss.Color("#fab387")
	Yellow   = lipgloss.Color("#f9e2af")
	Green    = lipgloss.Color("#a6e3a1")
	Sapphire = lipgloss.Color("#74c7ec")
	Lavender = lipgloss.Color("#b4befe")

	AccentColor = Mauve
	ErrorColor  = Red
	FaintColor  = Overlay
)

// Gradient endpoints of the seek bar.
var (
	SeekStart = string(Sapphire)
	SeekEnd   = string(Mauve)
)
