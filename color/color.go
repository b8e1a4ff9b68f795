// Package color names the terminal colors used by the CLI and the controller UI.
package color

import "github.com/charmbracelet/lipgloss"

// New wraps an ANSI index or hex value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// ANSI colors.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")
	White  = New("7")
	Gray   = New("8")
)

// High intensity variants.
var (
	HiRed    = New("9")
	HiGreen  = New("10")
	HiPurple = New("13")
)

// Accents.
var (
	Orange = New("#ffb703")
	Cream  = New("230")
	Indigo = New("62")
)
