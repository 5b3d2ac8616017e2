package config

import (
	_ "embed"
)

//go:embed defaults/stacksroll.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the hardcoded default tuning.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Timing: TimingConfig{
			NominalStep:     1.0 / 60.0,
			DistanceRate:    0.1,
			AdvisorInterval: 10,
			CountdownFrom:   3,
		},
		Spawn: SpawnConfig{
			BaseFallRate:    0.5,
			BaseSpawnChance: 0.02,
			SpawnY:          -10,
			ExitY:           110,
			Kinds: []SpawnRule{
				{Kind: "gem", Weight: 5, XMin: 10, XMax: 90},
				{Kind: "coin", Weight: 20, XMin: 10, XMax: 90},
				{Kind: "pillar", Weight: 35, XMin: 10, XMax: 90},
				{Kind: "bar", Weight: 20, XMin: 50, XMax: 50, MaxRotation: 180},
				{Kind: "spike", Weight: 20, XMin: 15, XMax: 85},
			},
		},
		Geometry: GeometryConfig{
			BoardWidth:   400,
			BoardHeight:  600,
			PlayerSize:   32,
			PlayerBottom: 10,
			Perspective:  true,
			Sizes: map[string]Size{
				"pillar": {W: 40, H: 128},
				"bar":    {W: 192, H: 16},
				"spike":  {W: 32, H: 32},
				"coin":   {W: 32, H: 32},
				"gem":    {W: 32, H: 32},
			},
		},
		Scoring: ScoringConfig{
			Coin: 10,
			Gem:  100,
		},
		Difficulty: DifficultyConfig{
			Adaptive:      true,
			InitialScale:  1.0,
			MinMultiplier: 0.1,
			MaxMultiplier: 5.0,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultGameYAML
}
