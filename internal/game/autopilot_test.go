package game

import "testing"

func TestAutopilotSteer(t *testing.T) {
	g := newTestGame(t, nil, nil)
	geo := g.Geometry()
	pilot := NewAutopilot(geo)
	cy := geo.PlayerCenterY()

	tests := []struct {
		name     string
		playerX  float64
		entities []Entity
		want     float64
	}{
		{"empty track holds position", 50, nil, 50},
		{"off-grid position snaps to nearest lane", 51, nil, 50},
		// Nearest lane whose box still reaches the coin
		{"coin pulls the ball", 50, []Entity{{ID: 1, X: 30, Y: cy - 10, Kind: KindCoin}}, 35},
		{"gem beats coin", 50, []Entity{
			{ID: 1, X: 30, Y: cy - 10, Kind: KindCoin},
			{ID: 2, X: 70, Y: cy - 10, Kind: KindGem},
		}, 65},
		{"entities beyond lookahead are ignored", 50, []Entity{{ID: 1, X: 30, Y: cy - 60, Kind: KindCoin}}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pilot.Steer(Snapshot{PlayerX: tt.playerX, Entities: tt.entities})
			if got != tt.want {
				t.Errorf("Steer() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAutopilotDodgesSpike(t *testing.T) {
	g := newTestGame(t, nil, nil)
	geo := g.Geometry()
	pilot := NewAutopilot(geo)
	cy := geo.PlayerCenterY()

	spike := Entity{ID: 1, X: 50, Y: cy - 5, Kind: KindSpike}
	x := pilot.Steer(Snapshot{PlayerX: 50, Entities: []Entity{spike}})

	box := geo.EntityBox(Entity{X: spike.X, Y: cy, Kind: KindSpike})
	if geo.PlayerBox(x).Intersects(box) {
		t.Errorf("Steer() = %v still meets the spike", x)
	}
}
