package core

import (
	"math"
	"testing"
)

func TestDifficultyValidate(t *testing.T) {
	tests := []struct {
		name    string
		d       Difficulty
		wantErr bool
	}{
		{"defaults", DefaultDifficulty(), false},
		{"negative is finite", Difficulty{-1, 1, 1}, false},
		{"NaN speed", Difficulty{math.NaN(), 1, 1}, true},
		{"infinite frequency", Difficulty{1, math.Inf(1), 1}, true},
		{"negative infinite velocity", Difficulty{1, 1, math.Inf(-1)}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.d.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestDifficultyClamp(t *testing.T) {
	d := Difficulty{GameSpeedMultiplier: 0, ObstacleFrequency: 9, ObstacleVelocityMultiplier: 1.3}.Clamp(0.1, 5)

	expected := Difficulty{GameSpeedMultiplier: 0.1, ObstacleFrequency: 5, ObstacleVelocityMultiplier: 1.3}
	if d != expected {
		t.Errorf("Clamp() = %+v, expected %+v", d, expected)
	}
}

func TestDifficultyPositive(t *testing.T) {
	tests := []struct {
		name string
		d    Difficulty
		want bool
	}{
		{"defaults", DefaultDifficulty(), true},
		{"zero frequency", Difficulty{1, 0, 1}, false},
		{"negative speed", Difficulty{-2, 1, 1}, false},
		{"NaN velocity", Difficulty{1, 1, math.NaN()}, false},
		{"infinite speed", Difficulty{math.Inf(1), 1, 1}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.d.Positive(); got != tc.want {
				t.Errorf("Positive() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDifficultyScale(t *testing.T) {
	d := DefaultDifficulty().Scale(1.5)
	if d.GameSpeedMultiplier != 1.5 || d.ObstacleFrequency != 1.5 || d.ObstacleVelocityMultiplier != 1.5 {
		t.Errorf("Scale(1.5) = %+v", d)
	}
}
