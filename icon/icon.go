// Package icon renders UI symbols in the variant chosen by icons.variant.
//
// A variant is one of emoji, nerd (nerd-font glyphs), plain, kaomoji or squares.
package icon

import (
	"github.com/playshell/playshell/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants lists the accepted values of icons.variant.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Icon identifies a symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Play
	Pause
	Ended
	Local
	Embedded
	Rate
)

var icons = map[Icon]*iconDef{
	Success:  {emoji: "🎉", nerd: "", plain: "✓", kaomoji: "(ᵔ◡ᵔ)", squares: "🟩"},
	Fail:     {emoji: "💀", nerd: "", plain: "✖", kaomoji: "(╥﹏╥)", squares: "🟥"},
	Progress: {emoji: "⏳", nerd: "", plain: "…", kaomoji: "(・_・)", squares: "🟨"},
	Play:     {emoji: "▶️", nerd: "", plain: "▶", kaomoji: "ヽ(・∀・)ﾉ", squares: "🟦"},
	Pause:    {emoji: "⏸️", nerd: "", plain: "‖", kaomoji: "(－_－)", squares: "🟪"},
	Ended:    {emoji: "⏹️", nerd: "", plain: "■", kaomoji: "(￣▽￣)", squares: "⬛"},
	Local:    {emoji: "🎵", nerd: "", plain: "♪", kaomoji: "♪(´ε` )", squares: "🟧"},
	Embedded: {emoji: "📺", nerd: "", plain: "▣", kaomoji: "[◕‿◕]", squares: "🟫"},
	Rate:     {emoji: "⏩", nerd: "", plain: "»", kaomoji: "ε=ε=(ノ≧∇≦)ノ", squares: "⬜"},
}

// Get renders i in the configured variant, or "" for an unknown variant.
func Get(i Icon) string {
	return icons[i].Get()
}
