package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const gameConfigFile = "stacksroll.yaml"

// Load loads the game tuning.
// Search order: customPath -> ~/.stacksroll/configs/stacksroll.yaml -> ./configs/stacksroll.yaml -> embedded default
func Load(customPath string) (GameConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return GameConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return GameConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(gameConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", gameConfigFile)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultGameYAML)
	if err != nil {
		return DefaultGameConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML over the hardcoded defaults, so partial files only
// override what they mention, and validates the result.
func parse(data []byte) (GameConfig, error) {
	cfg := DefaultGameConfig()
	// Sizes and kinds are replaced wholesale when present
	cfg.Geometry.Sizes = nil
	cfg.Spawn.Kinds = nil

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return GameConfig{}, err
	}

	defaults := DefaultGameConfig()
	if cfg.Geometry.Sizes == nil {
		cfg.Geometry.Sizes = defaults.Geometry.Sizes
	}
	if cfg.Spawn.Kinds == nil {
		cfg.Spawn.Kinds = defaults.Spawn.Kinds
	}

	if err := cfg.Validate(); err != nil {
		return GameConfig{}, err
	}
	return cfg, nil
}

// Validate checks invariants the game loop relies on.
func (c GameConfig) Validate() error {
	var errs []error

	// NaN slips through every ordered comparison below
	for name, v := range c.floatFields() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("%s must be finite", name))
		}
	}

	if c.Timing.NominalStep <= 0 {
		errs = append(errs, errors.New("timing.nominal_step must be positive"))
	}
	if c.Timing.AdvisorInterval <= 0 {
		errs = append(errs, errors.New("timing.advisor_interval must be positive"))
	}
	if c.Timing.DistanceRate < 0 {
		errs = append(errs, errors.New("timing.distance_rate must not be negative"))
	}
	if c.Timing.CountdownFrom < 0 {
		errs = append(errs, errors.New("timing.countdown_from must not be negative"))
	}
	if c.Spawn.BaseFallRate < 0 {
		errs = append(errs, errors.New("spawn.base_fall_rate must not be negative"))
	}
	if c.Spawn.BaseSpawnChance < 0 || c.Spawn.BaseSpawnChance > 1 {
		errs = append(errs, errors.New("spawn.base_spawn_chance must be within [0, 1]"))
	}
	if c.Spawn.ExitY <= c.Spawn.SpawnY {
		errs = append(errs, errors.New("spawn.exit_y must be below spawn.spawn_y"))
	}

	var total float64
	for i, k := range c.Spawn.Kinds {
		if k.Weight < 0 {
			errs = append(errs, fmt.Errorf("spawn.kinds[%d]: weight must not be negative", i))
		}
		if k.XMax < k.XMin {
			errs = append(errs, fmt.Errorf("spawn.kinds[%d]: x_max below x_min", i))
		}
		if _, ok := c.Geometry.Sizes[k.Kind]; !ok {
			errs = append(errs, fmt.Errorf("spawn.kinds[%d]: no geometry size for %q", i, k.Kind))
		}
		total += k.Weight
	}
	if total <= 0 {
		errs = append(errs, errors.New("spawn.kinds: total weight must be positive"))
	}

	if c.Geometry.BoardWidth <= 0 || c.Geometry.BoardHeight <= 0 {
		errs = append(errs, errors.New("geometry: board dimensions must be positive"))
	}
	if c.Difficulty.MinMultiplier <= 0 {
		errs = append(errs, errors.New("difficulty.min_multiplier must be positive"))
	}
	if c.Difficulty.MaxMultiplier < c.Difficulty.MinMultiplier {
		errs = append(errs, errors.New("difficulty.max_multiplier below min_multiplier"))
	}
	if c.Difficulty.InitialScale <= 0 {
		errs = append(errs, errors.New("difficulty.initial_scale must be positive"))
	}

	return errors.Join(errs...)
}

// floatFields names every float setting for the finiteness check.
func (c GameConfig) floatFields() map[string]float64 {
	fields := map[string]float64{
		"timing.nominal_step":       c.Timing.NominalStep,
		"timing.distance_rate":      c.Timing.DistanceRate,
		"timing.advisor_interval":   c.Timing.AdvisorInterval,
		"spawn.base_fall_rate":      c.Spawn.BaseFallRate,
		"spawn.base_spawn_chance":   c.Spawn.BaseSpawnChance,
		"spawn.spawn_y":             c.Spawn.SpawnY,
		"spawn.exit_y":              c.Spawn.ExitY,
		"geometry.board_width":      c.Geometry.BoardWidth,
		"geometry.board_height":     c.Geometry.BoardHeight,
		"geometry.player_size":      c.Geometry.PlayerSize,
		"geometry.player_bottom":    c.Geometry.PlayerBottom,
		"difficulty.initial_scale":  c.Difficulty.InitialScale,
		"difficulty.min_multiplier": c.Difficulty.MinMultiplier,
		"difficulty.max_multiplier": c.Difficulty.MaxMultiplier,
	}
	for i, k := range c.Spawn.Kinds {
		fields[fmt.Sprintf("spawn.kinds[%d].weight", i)] = k.Weight
		fields[fmt.Sprintf("spawn.kinds[%d].x_min", i)] = k.XMin
		fields[fmt.Sprintf("spawn.kinds[%d].x_max", i)] = k.XMax
		fields[fmt.Sprintf("spawn.kinds[%d].max_rotation", i)] = k.MaxRotation
	}
	for kind, sz := range c.Geometry.Sizes {
		fields["geometry.sizes."+kind+".w"] = sz.W
		fields["geometry.sizes."+kind+".h"] = sz.H
	}
	return fields
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".stacksroll", "configs", filename)
}
