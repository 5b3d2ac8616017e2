package game

import (
	"math"
	"testing"

	"github.com/vovakirdan/stacks-roll/internal/config"
)

func newTestEngine() CollisionEngine {
	cfg := config.DefaultGameConfig()
	return NewCollisionEngine(NewGeometry(cfg.Geometry), cfg.Scoring)
}

func TestGeometryPlayer(t *testing.T) {
	geo := NewGeometry(config.DefaultGameConfig().Geometry)

	box := geo.PlayerBox(50)
	if math.Abs(box.W-8) > 1e-9 {
		t.Errorf("player width = %v%%, expected 8%%", box.W)
	}
	if math.Abs(box.Bottom()-90) > 1e-9 {
		t.Errorf("player bottom = %v, expected 90 (10%% from the bottom)", box.Bottom())
	}
	if math.Abs(box.X+box.W/2-50) > 1e-9 {
		t.Errorf("player should be centred on x, box %+v", box)
	}
}

func TestGeometryPerspective(t *testing.T) {
	geo := NewGeometry(config.DefaultGameConfig().Geometry)

	tests := []struct {
		y     float64
		scale float64
	}{
		{-10, 0},
		{0, 0},
		{50, 0.5},
		{100, 1},
	}
	for _, tc := range tests {
		if got := geo.Scale(tc.y); got != tc.scale {
			t.Errorf("Scale(%v) = %v, expected %v", tc.y, got, tc.scale)
		}
	}

	if box := geo.EntityBox(Entity{X: 50, Y: -10, Kind: KindPillar}); !box.Empty() {
		t.Errorf("entities above the board should have no box, got %+v", box)
	}
}

func TestResolve(t *testing.T) {
	ce := newTestEngine()
	y := ce.Geometry().PlayerCenterY()

	tests := []struct {
		name     string
		entities []Entity
		expected Outcome
	}{
		{
			name:     "nothing nearby",
			entities: []Entity{{ID: 1, X: 10, Y: y, Kind: KindSpike}},
		},
		{
			name:     "coin",
			entities: []Entity{{ID: 1, X: 50, Y: y, Kind: KindCoin}},
			expected: Outcome{ScoreDelta: 10, CoinDelta: 1, Consumed: []int{1}},
		},
		{
			name:     "gem does not count as a coin",
			entities: []Entity{{ID: 2, X: 52, Y: y, Kind: KindGem}},
			expected: Outcome{ScoreDelta: 100, Consumed: []int{2}},
		},
		{
			name:     "pillar",
			entities: []Entity{{ID: 3, X: 50, Y: y, Kind: KindPillar}},
			expected: Outcome{Terminal: true},
		},
		{
			name:     "bar ignores rotation",
			entities: []Entity{{ID: 4, X: 50, Y: y, Kind: KindBar, Rotation: 90}},
			expected: Outcome{Terminal: true},
		},
		{
			name:     "duplicate ids score once",
			entities: []Entity{{ID: 5, X: 50, Y: y, Kind: KindCoin}, {ID: 5, X: 50, Y: y, Kind: KindCoin}},
			expected: Outcome{ScoreDelta: 10, CoinDelta: 1, Consumed: []int{5}},
		},
		{
			name:     "lethal wins over collectibles",
			entities: []Entity{{ID: 6, X: 50, Y: y, Kind: KindCoin}, {ID: 7, X: 50, Y: y, Kind: KindSpike}},
			expected: Outcome{Terminal: true},
		},
		{
			name:     "collectibles before the lethal entity are dropped",
			entities: []Entity{{ID: 9, X: 50, Y: y, Kind: KindGem}, {ID: 10, X: 50, Y: y, Kind: KindCoin}, {ID: 11, X: 50, Y: y, Kind: KindPillar}},
			expected: Outcome{Terminal: true},
		},
		{
			name:     "entity at the top edge has no size",
			entities: []Entity{{ID: 8, X: 50, Y: 0, Kind: KindPillar}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ce.Resolve(50, tc.entities)
			if got.Terminal != tc.expected.Terminal {
				t.Fatalf("Terminal = %v, expected %v", got.Terminal, tc.expected.Terminal)
			}
			if got.ScoreDelta != tc.expected.ScoreDelta || got.CoinDelta != tc.expected.CoinDelta {
				t.Errorf("deltas = (%d, %d), expected (%d, %d)",
					got.ScoreDelta, got.CoinDelta, tc.expected.ScoreDelta, tc.expected.CoinDelta)
			}
			if len(got.Consumed) != len(tc.expected.Consumed) {
				t.Fatalf("Consumed = %v, expected %v", got.Consumed, tc.expected.Consumed)
			}
			for i := range got.Consumed {
				if got.Consumed[i] != tc.expected.Consumed[i] {
					t.Errorf("Consumed = %v, expected %v", got.Consumed, tc.expected.Consumed)
				}
			}
		})
	}
}

func TestConsumeIsIdempotent(t *testing.T) {
	ce := newTestEngine()
	entities := []Entity{
		{ID: 1, Kind: KindCoin},
		{ID: 2, Kind: KindGem},
		{ID: 3, Kind: KindPillar},
	}

	kept, score, coins := ce.Consume(entities, []int{1, 2})
	if score != 110 || coins != 1 {
		t.Errorf("first consume = (%d, %d), expected (110, 1)", score, coins)
	}
	if len(kept) != 1 || kept[0].ID != 3 {
		t.Fatalf("only the pillar should remain, got %+v", kept)
	}

	kept, score, coins = ce.Consume(kept, []int{1, 2})
	if score != 0 || coins != 0 {
		t.Errorf("second consume = (%d, %d), expected nothing", score, coins)
	}
	if len(kept) != 1 {
		t.Errorf("second consume changed the set: %+v", kept)
	}
}

func TestConsumeIgnoresAbsentAndLethal(t *testing.T) {
	ce := newTestEngine()
	entities := []Entity{{ID: 1, Kind: KindSpike}, {ID: 2, Kind: KindCoin}}

	kept, score, coins := ce.Consume(entities, []int{1, 99})
	if score != 0 || coins != 0 || len(kept) != 2 {
		t.Errorf("absent or lethal ids must be no-ops: kept=%+v score=%d coins=%d", kept, score, coins)
	}
}
