package game

import (
	"testing"

	"github.com/vovakirdan/stacks-roll/internal/config"
	"github.com/vovakirdan/stacks-roll/internal/core"
)

func newTestManager(t *testing.T, draws ...float64) *EntityManager {
	t.Helper()

	em, err := NewEntityManager(1, config.DefaultGameConfig().Spawn)
	if err != nil {
		t.Fatalf("NewEntityManager() failed: %v", err)
	}
	em.rng = &scriptedRand{values: draws}
	return em
}

func TestAdvanceMovesAndPrunes(t *testing.T) {
	em := newTestManager(t)

	in := []Entity{
		{ID: 1, X: 30, Y: 0, Kind: KindPillar},
		{ID: 2, X: 40, Y: 109.25, Kind: KindCoin},
		{ID: 3, X: 60, Y: 109.5, Kind: KindSpike},
		{ID: 4, X: 70, Y: 120, Kind: KindGem},
	}
	out := em.Advance(in, core.DefaultDifficulty())

	if len(out) != 2 {
		t.Fatalf("expected 2 survivors, got %d: %+v", len(out), out)
	}
	if out[0].ID != 1 || out[0].Y != 0.5 {
		t.Errorf("entity 1 should fall 0.5, got %+v", out[0])
	}
	if out[1].ID != 2 || out[1].Y != 109.75 {
		t.Errorf("entity 2 should survive at 109.75, got %+v", out[1])
	}

	// The caller's slice is untouched
	if in[0].Y != 0 {
		t.Errorf("Advance mutated its input: %+v", in[0])
	}
}

func TestAdvanceFallScalesWithMultipliers(t *testing.T) {
	em := newTestManager(t)

	d := core.Difficulty{GameSpeedMultiplier: 2, ObstacleFrequency: 1, ObstacleVelocityMultiplier: 1.5}
	out := em.Advance([]Entity{{ID: 1, Y: 10, Kind: KindBar}}, d)

	if out[0].Y != 11.5 {
		t.Errorf("fall step should be 0.5*2*1.5 = 1.5, entity at %v", out[0].Y)
	}
}

func TestAdvanceSpawnChance(t *testing.T) {
	tests := []struct {
		name      string
		draw      float64
		frequency float64
		spawned   bool
	}{
		{"below base chance", 0.019, 1, true},
		{"at base chance", 0.02, 1, false},
		{"frequency doubles chance", 0.03, 2, true},
		{"frequency halves chance", 0.015, 0.5, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			em := newTestManager(t, tc.draw, 0.5, 0.5, 0.5)
			d := core.DefaultDifficulty()
			d.ObstacleFrequency = tc.frequency

			out := em.Advance(nil, d)
			if (len(out) == 1) != tc.spawned {
				t.Errorf("spawned = %v, expected %v", len(out) == 1, tc.spawned)
			}
		})
	}
}

func TestSpawnPlacement(t *testing.T) {
	tests := []struct {
		name     string
		draws    []float64 // trial, kind, then placement draws
		kind     Kind
		x        float64
		rotation float64
	}{
		{"gem", []float64{0, 0.01, 0.5}, KindGem, 50, 0},
		{"coin left edge", []float64{0, 0.1, 0}, KindCoin, 10, 0},
		{"pillar", []float64{0, 0.3, 0.25}, KindPillar, 30, 0},
		{"bar is centred and rotated", []float64{0, 0.7, 0.5}, KindBar, 50, 90},
		{"spike range", []float64{0, 0.9, 0.5}, KindSpike, 50, 0},
		{"spike low end", []float64{0, 0.9, 0}, KindSpike, 15, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			em := newTestManager(t, tc.draws...)
			out := em.Advance(nil, core.DefaultDifficulty())

			if len(out) != 1 {
				t.Fatalf("expected one spawn, got %d", len(out))
			}
			e := out[0]
			if e.Kind != tc.kind {
				t.Errorf("kind = %s, expected %s", e.Kind, tc.kind)
			}
			if e.X != tc.x {
				t.Errorf("x = %v, expected %v", e.X, tc.x)
			}
			if e.Y != -10 {
				t.Errorf("y = %v, expected the spawn line -10", e.Y)
			}
			if e.Rotation != tc.rotation {
				t.Errorf("rotation = %v, expected %v", e.Rotation, tc.rotation)
			}
		})
	}
}

func TestSpawnIDsAreUnique(t *testing.T) {
	em, err := NewEntityManager(7, config.DefaultGameConfig().Spawn)
	if err != nil {
		t.Fatal(err)
	}

	d := core.DefaultDifficulty()
	d.ObstacleFrequency = 40

	seen := make(map[int]bool)
	var live []Entity
	for i := 0; i < 500; i++ {
		before := len(live)
		live = em.Advance(live, d)
		if len(live) > before+1 {
			t.Fatalf("tick %d spawned more than one entity", i)
		}
		for _, e := range live {
			if e.Y == -10 {
				if seen[e.ID] {
					t.Fatalf("id %d reused", e.ID)
				}
				seen[e.ID] = true
			}
		}
	}

	em.Reset(7)
	if em.nextID != 1 {
		t.Errorf("Reset should restart ids, next is %d", em.nextID)
	}
}
