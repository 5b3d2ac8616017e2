// Package config provides YAML-based game tuning and advisor settings
// for Stacks Roll.
package config

// GameConfig contains all tuning for the game loop.
type GameConfig struct {
	Timing     TimingConfig     `yaml:"timing"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Geometry   GeometryConfig   `yaml:"geometry"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TimingConfig defines the fixed per-tick step and the clock cadences.
type TimingConfig struct {
	NominalStep     float64 `yaml:"nominal_step"`     // Elapsed seconds added per tick
	DistanceRate    float64 `yaml:"distance_rate"`    // Distance per tick at speed 1.0
	AdvisorInterval float64 `yaml:"advisor_interval"` // Elapsed seconds between advisor requests
	CountdownFrom   int     `yaml:"countdown_from"`   // Countdown start value
}

// SpawnConfig defines entity movement and the weighted spawn table.
type SpawnConfig struct {
	BaseFallRate    float64     `yaml:"base_fall_rate"`    // Y advance per tick at 1.0 multipliers
	BaseSpawnChance float64     `yaml:"base_spawn_chance"` // Spawn probability per tick at frequency 1.0
	SpawnY          float64     `yaml:"spawn_y"`
	ExitY           float64     `yaml:"exit_y"`
	Kinds           []SpawnRule `yaml:"kinds"` // Order is significant: cumulative thresholds follow it
}

// SpawnRule describes one entity kind in the spawn table.
type SpawnRule struct {
	Kind        string  `yaml:"kind"`
	Weight      float64 `yaml:"weight"`
	XMin        float64 `yaml:"x_min"`
	XMax        float64 `yaml:"x_max"`
	MaxRotation float64 `yaml:"max_rotation"` // Rotation drawn from [0, max); 0 disables
}

// GeometryConfig defines logical sizes used by collision detection.
// Sizes are in board pixels and converted to percentages of the board.
type GeometryConfig struct {
	BoardWidth   float64         `yaml:"board_width"`
	BoardHeight  float64         `yaml:"board_height"`
	PlayerSize   float64         `yaml:"player_size"`
	PlayerBottom float64         `yaml:"player_bottom"` // Percent from the bottom edge
	Perspective  bool            `yaml:"perspective"`   // Scale entity boxes by y/100
	Sizes        map[string]Size `yaml:"sizes"`
}

// Size is a width/height pair in board pixels.
type Size struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// ScoringConfig defines collectible values.
type ScoringConfig struct {
	Coin int `yaml:"coin"`
	Gem  int `yaml:"gem"`
}

// DifficultyConfig bounds advisor output and sets the starting multipliers.
type DifficultyConfig struct {
	Adaptive      bool    `yaml:"adaptive"`       // false keeps the multipliers flat
	InitialScale  float64 `yaml:"initial_scale"`  // Applied to 1.0 at session start
	MinMultiplier float64 `yaml:"min_multiplier"` // Floor for advisor output, must be > 0
	MaxMultiplier float64 `yaml:"max_multiplier"`
}
