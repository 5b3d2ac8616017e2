// Package tui provides the Bubble Tea driver for Stacks Roll.
// It owns the game on the Update goroutine, arms the frame and countdown
// timers, and runs advisor calls as commands whose results come back as
// messages.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/stacks-roll/internal/game"
)

// TickMsg triggers one simulation tick for the session it was armed in.
type TickMsg struct {
	Gen uint64
}

// CountdownMsg advances the pre-game countdown by one second.
type CountdownMsg struct {
	Gen uint64
}

// AdviceMsg carries a resolved advisor call back to the owner.
type AdviceMsg game.AdviceResult

// tickCmd returns a Bubble Tea command that sends one tick message after a frame interval.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return TickMsg{Gen: gen}
	})
}

// countdownCmd fires once a second later.
func countdownCmd(gen uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return CountdownMsg{Gen: gen}
	})
}

// adviceCmd runs the blocking advisor call off the Update goroutine.
func adviceCmd(call func() game.AdviceResult) tea.Cmd {
	return func() tea.Msg {
		return AdviceMsg(call())
	}
}
