// Package tui is the terminal frontend of memocart: a Bubble Tea loop that
// feeds key presses into the game engine, draws the track and overlay, and
// serves the same program over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/memocart/internal/game"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameClock turns wall-clock tick messages into the engine's clock,
// seconds since the first tick.
type frameClock struct {
	start time.Time
	tick  int
}

func (c *frameClock) next(t time.Time) game.Clock {
	if c.start.IsZero() {
		c.start = t
	}
	c.tick++
	return game.Clock{
		Time: t.Sub(c.start).Seconds(),
		Tick: c.tick,
	}
}
