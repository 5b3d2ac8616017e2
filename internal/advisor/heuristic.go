package advisor

import (
	"context"

	"github.com/vovakirdan/stacks-roll/internal/core"
)

// Heuristic scores a run locally and nudges the multipliers the way the
// hosted prompt asks for: up for a strong run, down for a weak one, always
// in small steps.
type Heuristic struct {
	Step         float64 // Fractional change per strong or weak signal
	Min, Max     float64 // Bounds on every multiplier it returns
	BaseDistRate float64 // Metres per second at speed 1.0
	CoinRate     float64 // Coins per second a typical player collects
	ScoreRate    float64 // Points per second a typical player earns
	LongRun      float64 // Seconds after which survival counts as strong
}

// NewHeuristic returns a heuristic tuned for the default game config.
func NewHeuristic() Heuristic {
	return Heuristic{
		Step:         0.1,
		Min:          0.5,
		Max:          3.0,
		BaseDistRate: 6, // 0.1 m per tick at 60 ticks per second
		CoinRate:     0.08,
		ScoreRate:    2,
		LongRun:      30,
	}
}

// Advise never fails; a cancelled context is still reported.
func (h Heuristic) Advise(ctx context.Context, p core.Performance) (core.Difficulty, error) {
	if err := ctx.Err(); err != nil {
		return core.Difficulty{}, err
	}
	if p.TimeElapsed <= 0 {
		return core.DefaultDifficulty(), nil
	}

	t := p.TimeElapsed
	signal := 0
	signal += h.grade(float64(p.Score)/t, h.ScoreRate)
	signal += h.grade(float64(p.CoinsCollected)/t, h.CoinRate)
	if t >= h.LongRun {
		signal++
	}

	// Average speed over the run stands in for the current multiplier.
	current := 1.0
	if h.BaseDistRate > 0 && p.DistanceTraveled > 0 {
		current = p.DistanceTraveled / t / h.BaseDistRate
	}

	factor := 1 + h.Step*float64(signal)
	return core.Difficulty{
		GameSpeedMultiplier:        h.bound(current * factor),
		ObstacleFrequency:          h.bound(factor),
		ObstacleVelocityMultiplier: h.bound(factor),
	}, nil
}

// grade returns +1 well above the typical rate, -1 well below it.
func (h Heuristic) grade(rate, typical float64) int {
	switch {
	case rate >= typical*1.5:
		return 1
	case rate <= typical*0.5:
		return -1
	default:
		return 0
	}
}

func (h Heuristic) bound(v float64) float64 {
	return core.ClampF(v, h.Min, h.Max)
}
