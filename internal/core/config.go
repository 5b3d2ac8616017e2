package core

// RuntimeConfig holds the terminal and clock settings a front end runs with.
// Game tuning lives in config.GameConfig; this is only what the host decides.
type RuntimeConfig struct {
	ScreenW  int   // Terminal columns
	ScreenH  int   // Terminal rows
	TickRate int   // Wall-clock ticks per second; game time per tick is fixed
	Seed     int64 // Spawn RNG seed; 0 asks the caller to pick one
}

// DefaultConfig returns an 80x24 terminal at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}
