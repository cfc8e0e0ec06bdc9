package tui

import "github.com/vovakirdan/neuroflap/internal/core"

// Theme holds the glyphs and colors used to draw an episode.
// Views receive it explicitly; there is no package-level asset state.
type Theme struct {
	Barrier      rune
	BarrierColor core.Color
	BarrierEdge  rune
	Floor        [2]rune // Alternating floor tiles
	FloorColor   core.Color
	AgentUp      rune
	AgentDown    rune
	AgentColor   core.Color
	LeaderColor  core.Color // First live agent
	HUDColor     core.Color
	BannerColor  core.Color
}

// DefaultTheme returns the standard terminal theme.
func DefaultTheme() Theme {
	return Theme{
		Barrier:      '█',
		BarrierColor: core.ColorGreen,
		BarrierEdge:  '▀',
		Floor:        [2]rune{'▓', '▒'},
		FloorColor:   core.ColorOrange,
		AgentUp:      '^',
		AgentDown:    'v',
		AgentColor:   core.ColorYellow,
		LeaderColor:  core.ColorBrightYellow,
		HUDColor:     core.ColorBrightWhite,
		BannerColor:  core.ColorCyan,
	}
}

// PlainTheme returns an ASCII-only theme for terminals without block glyphs.
func PlainTheme() Theme {
	t := DefaultTheme()
	t.Barrier = '#'
	t.BarrierEdge = '='
	t.Floor = [2]rune{'-', '_'}
	return t
}
