package core

import (
	"fmt"
	"math"
)

// Difficulty is the triple of pacing multipliers produced by the advisor.
// It is always replaced as a whole, never field by field.
type Difficulty struct {
	GameSpeedMultiplier        float64 `json:"gameSpeedMultiplier"`
	ObstacleFrequency          float64 `json:"obstacleFrequency"`
	ObstacleVelocityMultiplier float64 `json:"obstacleVelocityMultiplier"`
}

// DefaultDifficulty returns the neutral multipliers every session starts with.
func DefaultDifficulty() Difficulty {
	return Difficulty{
		GameSpeedMultiplier:        1.0,
		ObstacleFrequency:          1.0,
		ObstacleVelocityMultiplier: 1.0,
	}
}

// Validate reports an error if any multiplier is NaN or infinite.
func (d Difficulty) Validate() error {
	for name, v := range map[string]float64{
		"gameSpeedMultiplier":        d.GameSpeedMultiplier,
		"obstacleFrequency":          d.ObstacleFrequency,
		"obstacleVelocityMultiplier": d.ObstacleVelocityMultiplier,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s is not finite: %v", name, v)
		}
	}
	return nil
}

// Clamp restricts every multiplier to [lo, hi].
func (d Difficulty) Clamp(lo, hi float64) Difficulty {
	return Difficulty{
		GameSpeedMultiplier:        ClampF(d.GameSpeedMultiplier, lo, hi),
		ObstacleFrequency:          ClampF(d.ObstacleFrequency, lo, hi),
		ObstacleVelocityMultiplier: ClampF(d.ObstacleVelocityMultiplier, lo, hi),
	}
}

// Positive reports whether every multiplier is finite and strictly positive.
func (d Difficulty) Positive() bool {
	for _, v := range []float64{d.GameSpeedMultiplier, d.ObstacleFrequency, d.ObstacleVelocityMultiplier} {
		if !(v > 0) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Scale multiplies every field by f.
func (d Difficulty) Scale(f float64) Difficulty {
	return Difficulty{
		GameSpeedMultiplier:        d.GameSpeedMultiplier * f,
		ObstacleFrequency:          d.ObstacleFrequency * f,
		ObstacleVelocityMultiplier: d.ObstacleVelocityMultiplier * f,
	}
}

// Performance is the snapshot of a running session sent to the advisor.
type Performance struct {
	Score            int     `json:"score"`
	DistanceTraveled float64 `json:"distanceTraveled"`
	CoinsCollected   int     `json:"coinsCollected"`
	TimeElapsed      float64 `json:"timeElapsed"`
}
