package advisor

import (
	"fmt"

	"github.com/vovakirdan/stacks-roll/internal/core"
)

// difficultyWire mirrors core.Difficulty with pointers so missing fields
// can be told apart from zeros.
type difficultyWire struct {
	GameSpeedMultiplier        *float64 `json:"gameSpeedMultiplier"`
	ObstacleFrequency          *float64 `json:"obstacleFrequency"`
	ObstacleVelocityMultiplier *float64 `json:"obstacleVelocityMultiplier"`
}

func (w difficultyWire) difficulty() (core.Difficulty, error) {
	if w.GameSpeedMultiplier == nil || w.ObstacleFrequency == nil || w.ObstacleVelocityMultiplier == nil {
		return core.Difficulty{}, fmt.Errorf("%w: missing multiplier", ErrMalformed)
	}

	d := core.Difficulty{
		GameSpeedMultiplier:        *w.GameSpeedMultiplier,
		ObstacleFrequency:          *w.ObstacleFrequency,
		ObstacleVelocityMultiplier: *w.ObstacleVelocityMultiplier,
	}
	if err := d.Validate(); err != nil {
		return core.Difficulty{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return d, nil
}

// performanceWire is the request body with the same presence checks.
type performanceWire struct {
	Score            *int     `json:"score"`
	DistanceTraveled *float64 `json:"distanceTraveled"`
	CoinsCollected   *int     `json:"coinsCollected"`
	TimeElapsed      *float64 `json:"timeElapsed"`
}

func (w performanceWire) performance() (core.Performance, error) {
	if w.Score == nil || w.DistanceTraveled == nil || w.CoinsCollected == nil || w.TimeElapsed == nil {
		return core.Performance{}, fmt.Errorf("%w: missing performance field", ErrMalformed)
	}
	if *w.Score < 0 || *w.DistanceTraveled < 0 || *w.CoinsCollected < 0 || *w.TimeElapsed < 0 {
		return core.Performance{}, fmt.Errorf("%w: negative performance field", ErrMalformed)
	}
	return core.Performance{
		Score:            *w.Score,
		DistanceTraveled: *w.DistanceTraveled,
		CoinsCollected:   *w.CoinsCollected,
		TimeElapsed:      *w.TimeElapsed,
	}, nil
}

// Genkit flow endpoints take {"data": input} and answer {"result": output}.
type genkitRequest struct {
	Data core.Performance `json:"data"`
}

type genkitResponse struct {
	Result *difficultyWire `json:"result"`
}

type genkitServerRequest struct {
	Data *performanceWire `json:"data"`
}

type genkitServerResponse struct {
	Result core.Difficulty `json:"result"`
}
