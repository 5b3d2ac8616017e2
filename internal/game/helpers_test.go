package game

import (
	"context"
	"testing"

	"github.com/vovakirdan/stacks-roll/internal/config"
	"github.com/vovakirdan/stacks-roll/internal/core"
)

// scriptedRand replays fixed draws, then returns 0.99 (no spawn) forever.
type scriptedRand struct {
	values []float64
	next   int
}

func (r *scriptedRand) Float64() float64 {
	if r.next >= len(r.values) {
		return 0.99
	}
	v := r.values[r.next]
	r.next++
	return v
}

// fakeAdvisor returns a fixed result, honouring cancellation.
type fakeAdvisor struct {
	d     core.Difficulty
	err   error
	calls int
}

func (f *fakeAdvisor) Advise(ctx context.Context, _ core.Performance) (core.Difficulty, error) {
	f.calls++
	if err := ctx.Err(); err != nil {
		return core.Difficulty{}, err
	}
	return f.d, f.err
}

func newTestGame(t *testing.T, mutate func(*config.GameConfig), adv Advisor) *Game {
	t.Helper()

	cfg := config.DefaultGameConfig()
	if mutate != nil {
		mutate(&cfg)
	}

	g, err := New(cfg, adv, 42)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return g
}

// startPlaying drives a game from Idle/GameOver through the countdown.
func startPlaying(t *testing.T, g *Game) {
	t.Helper()

	if !g.Start() {
		t.Fatalf("Start() refused in phase %s", g.Phase())
	}
	for g.Phase() == PhaseCountdown {
		if !g.CountdownTick(g.Generation()) {
			t.Fatal("CountdownTick() refused a current tick")
		}
	}
	if g.Phase() != PhasePlaying {
		t.Fatalf("expected Playing after countdown, got %s", g.Phase())
	}
}

// quiet replaces the game's RNG so no entity spawns unless scripted.
func quiet(g *Game, draws ...float64) *scriptedRand {
	r := &scriptedRand{values: draws}
	g.entities.rng = r
	return r
}

var center = core.InputFrame{PointerX: 50}
