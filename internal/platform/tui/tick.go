// Package tui provides the Bubble Tea views of the simulation: paced episodes
// for play and spectating, run history tables, and SSH spectating via Wish.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// defaultTickRate paces views whose config leaves the rate unset.
const defaultTickRate = 30

// TickMsg asks the view to advance its episode by one tick.
type TickMsg time.Time

// tickInterval is the wall-clock time between episode ticks at rate ticks per second.
func tickInterval(rate int) time.Duration {
	if rate <= 0 {
		rate = defaultTickRate
	}
	return time.Second / time.Duration(rate)
}

// tickCmd schedules the next TickMsg.
func tickCmd(rate int) tea.Cmd {
	return tea.Tick(tickInterval(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
