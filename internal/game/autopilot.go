package game

import "math"

// Autopilot steers the ball for headless runs. It looks at entities within
// Lookahead percent above the ball and picks the lane that avoids hazards
// and reaches the most valuable collectible.
type Autopilot struct {
	Geometry  Geometry
	Lookahead float64
	Lanes     int
}

// NewAutopilot creates an autopilot with a 40% lookahead over 19 lanes.
func NewAutopilot(geo Geometry) Autopilot {
	return Autopilot{Geometry: geo, Lookahead: 40, Lanes: 19}
}

// Steer returns the pointer position for the next tick.
func (a Autopilot) Steer(s Snapshot) float64 {
	lanes := max(a.Lanes, 2)
	best, bestScore := s.PlayerX, math.Inf(-1)

	for i := 0; i < lanes; i++ {
		x := 5 + 90*float64(i)/float64(lanes-1)
		score := a.laneScore(s, x) - math.Abs(x-s.PlayerX)/100
		if score > bestScore {
			best, bestScore = x, score
		}
	}
	return best
}

// laneScore rates parking the ball at x against entities in the lookahead
// window, sized as they will be when they reach the ball.
func (a Autopilot) laneScore(s Snapshot, x float64) float64 {
	cy := a.Geometry.PlayerCenterY()
	player := a.Geometry.PlayerBox(x)

	var score float64
	for _, e := range s.Entities {
		if e.Y < cy-a.Lookahead || e.Y > cy+a.Geometry.playerH {
			continue
		}
		box := a.Geometry.EntityBox(Entity{X: e.X, Y: cy, Kind: e.Kind})
		if box.X >= player.Right() || player.X >= box.Right() {
			continue
		}
		// Closer entities matter more
		weight := 1 + (e.Y-(cy-a.Lookahead))/a.Lookahead
		switch {
		case e.Kind.Lethal():
			score -= 1000 * weight
		case e.Kind == KindGem:
			score += 5 * weight
		case e.Kind.Collectible():
			score += weight
		}
	}
	return score
}
