package game

import (
	"math"

	"github.com/vovakirdan/stacks-roll/internal/core"
)

// Snapshot captures everything a renderer needs for one frame.
type Snapshot struct {
	Phase          Phase
	Generation     uint64
	Countdown      int
	Score          int
	Distance       float64
	CoinsCollected int
	ElapsedTime    float64
	PlayerX        float64
	Entities       []Entity
	Difficulty     core.Difficulty
}

// Snapshot returns the current frame state. The entity slice is a copy.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Phase:          g.phase,
		Generation:     g.generation,
		Countdown:      g.countdown,
		Score:          g.session.Score,
		Distance:       g.session.Distance,
		CoinsCollected: g.session.CoinsCollected,
		ElapsedTime:    g.session.ElapsedTime,
		PlayerX:        g.session.PlayerX,
		Entities:       append([]Entity(nil), g.session.Entities...),
		Difficulty:     g.session.Difficulty,
	}
}

// Meters returns the distance as displayed: whole metres.
func (s Snapshot) Meters() int {
	return int(math.Floor(s.Distance))
}

// STX returns the simulated conversion of the score to STX.
func (s Snapshot) STX() float64 {
	return float64(s.Score) / 1000
}

// TrackCycle returns the seconds per cycle of the scrolling track lines.
func (s Snapshot) TrackCycle() float64 {
	if s.Difficulty.GameSpeedMultiplier <= 0 {
		return 2
	}
	return math.Max(0.2, 2/s.Difficulty.GameSpeedMultiplier)
}
