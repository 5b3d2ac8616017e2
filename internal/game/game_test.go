package game

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/vovakirdan/stacks-roll/internal/config"
	"github.com/vovakirdan/stacks-roll/internal/core"
)

func TestNewStartsIdle(t *testing.T) {
	g := newTestGame(t, nil, nil)

	if g.Phase() != PhaseIdle {
		t.Errorf("expected Idle, got %s", g.Phase())
	}
	if g.Difficulty() != core.DefaultDifficulty() {
		t.Errorf("expected neutral multipliers, got %+v", g.Difficulty())
	}
	if s := g.Session(); s.PlayerX != 50 || s.Score != 0 || len(s.Entities) != 0 {
		t.Errorf("unexpected initial session: %+v", s)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.Timing.NominalStep = 0

	if _, err := New(cfg, nil, 1); err == nil {
		t.Error("New() should reject an invalid config")
	}
}

func TestCountdown(t *testing.T) {
	g := newTestGame(t, nil, nil)

	if !g.Start() {
		t.Fatal("Start() from Idle should succeed")
	}
	if g.Phase() != PhaseCountdown || g.Countdown() != 3 {
		t.Fatalf("expected Countdown(3), got %s(%d)", g.Phase(), g.Countdown())
	}

	gen := g.Generation()
	for _, expected := range []int{2, 1} {
		g.CountdownTick(gen)
		if g.Phase() != PhaseCountdown || g.Countdown() != expected {
			t.Fatalf("expected Countdown(%d), got %s(%d)", expected, g.Phase(), g.Countdown())
		}
	}

	g.CountdownTick(gen)
	if g.Phase() != PhasePlaying {
		t.Fatalf("expected Playing, got %s", g.Phase())
	}
	if g.Countdown() != 3 {
		t.Errorf("countdown should reset to 3, got %d", g.Countdown())
	}
	if g.Start() {
		t.Error("Start() while Playing should be refused")
	}
}

func TestCountdownIgnoresStaleTicks(t *testing.T) {
	g := newTestGame(t, nil, nil)
	g.Start()
	old := g.Generation()

	g.Close()
	g.Start()

	if g.CountdownTick(old) {
		t.Error("a tick armed for an earlier session should be ignored")
	}
	if g.Countdown() != 3 {
		t.Errorf("stale tick changed the countdown to %d", g.Countdown())
	}
}

func TestZeroCountdownStartsImmediately(t *testing.T) {
	g := newTestGame(t, func(c *config.GameConfig) { c.Timing.CountdownFrom = 0 }, nil)
	g.Start()

	if g.Phase() != PhasePlaying {
		t.Errorf("expected Playing with no countdown, got %s", g.Phase())
	}
}

func TestTickOutsidePlayingIsNoop(t *testing.T) {
	g := newTestGame(t, nil, nil)

	before := g.Snapshot()
	res := g.Tick(core.InputFrame{PointerX: 10})
	if res.Phase != PhaseIdle || res.Terminal || res.Advice != nil {
		t.Errorf("unexpected result %+v", res)
	}
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Error("Tick changed state while Idle")
	}

	g.Start()
	before = g.Snapshot()
	g.Tick(core.InputFrame{PointerX: 10})
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Error("Tick changed state during Countdown")
	}
}

func TestTickAdvancesClock(t *testing.T) {
	g := newTestGame(t, nil, nil)
	startPlaying(t, g)
	quiet(g)

	prev := 0.0
	for i := 0; i < 120; i++ {
		g.Tick(center)
		d := g.Session().Distance
		if d <= prev {
			t.Fatalf("distance must grow while Playing: %v then %v", prev, d)
		}
		prev = d
	}

	s := g.Session()
	if math.Abs(s.ElapsedTime-2) > 1e-9 {
		t.Errorf("120 ticks should be 2s, got %v", s.ElapsedTime)
	}
	if math.Abs(s.Distance-12) > 1e-9 {
		t.Errorf("120 ticks at speed 1 should be 12m, got %v", s.Distance)
	}
}

func TestTickClampsPointer(t *testing.T) {
	g := newTestGame(t, nil, nil)
	startPlaying(t, g)
	quiet(g)

	g.Tick(core.InputFrame{PointerX: 140})
	if x := g.Session().PlayerX; x != 100 {
		t.Errorf("PlayerX = %v, expected 100", x)
	}
	g.Tick(core.InputFrame{PointerX: -3})
	if x := g.Session().PlayerX; x != 0 {
		t.Errorf("PlayerX = %v, expected 0", x)
	}
}

func TestPassingEntitiesAreRemoved(t *testing.T) {
	g := newTestGame(t, nil, nil)
	startPlaying(t, g)
	quiet(g)

	g.session.Entities = []Entity{{ID: 1, X: 10, Y: 109.75, Kind: KindPillar}}
	g.Tick(center)

	s := g.Session()
	if len(s.Entities) != 0 {
		t.Errorf("entity past the exit line should be gone, got %+v", s.Entities)
	}
	if s.Score != 0 || g.Phase() != PhasePlaying {
		t.Errorf("passing an obstacle should cost nothing: score=%d phase=%s", s.Score, g.Phase())
	}
}

// spawnOnPlayer moves the spawn line onto the ball so a scripted spawn
// resolves in the tick it appears.
func spawnOnPlayer(c *config.GameConfig) {
	c.Spawn.SpawnY = NewGeometry(c.Geometry).PlayerCenterY()
}

func TestCollectCoin(t *testing.T) {
	g := newTestGame(t, spawnOnPlayer, nil)
	startPlaying(t, g)
	quiet(g, 0, 0.1, 0.5) // spawn, coin, x=50

	g.Tick(center)

	s := g.Session()
	if s.Score != 10 || s.CoinsCollected != 1 {
		t.Errorf("expected score 10 and 1 coin, got %d and %d", s.Score, s.CoinsCollected)
	}
	if len(s.Entities) != 0 {
		t.Errorf("the coin should be removed, got %+v", s.Entities)
	}
	if g.Phase() != PhasePlaying {
		t.Errorf("expected Playing, got %s", g.Phase())
	}
}

func TestCollectGem(t *testing.T) {
	g := newTestGame(t, spawnOnPlayer, nil)
	startPlaying(t, g)
	quiet(g, 0, 0.01, 0.5) // spawn, gem, x=50

	g.Tick(center)

	s := g.Session()
	if s.Score != 100 || s.CoinsCollected != 0 {
		t.Errorf("expected score 100 and no coins, got %d and %d", s.Score, s.CoinsCollected)
	}
	if len(s.Entities) != 0 {
		t.Errorf("the gem should be removed, got %+v", s.Entities)
	}
}

func TestHitSpikeEndsRun(t *testing.T) {
	adv := &fakeAdvisor{d: core.DefaultDifficulty()}
	g := newTestGame(t, spawnOnPlayer, adv)
	startPlaying(t, g)

	g.session.Score = 30
	g.session.Distance = 12.5
	g.session.CoinsCollected = 3
	quiet(g, 0, 0.9, 0.5) // spawn, spike, x=50

	res := g.Tick(center)
	if !res.Terminal || res.Phase != PhaseGameOver || g.Phase() != PhaseGameOver {
		t.Fatalf("expected a terminal tick, got %+v in %s", res, g.Phase())
	}
	if res.Advice != nil {
		t.Error("a terminal tick must not request advice")
	}

	s := g.Session()
	if s.Score != 30 || s.Distance != 12.5 || s.CoinsCollected != 3 {
		t.Errorf("counters should keep their pre-collision values, got %d/%v/%d",
			s.Score, s.Distance, s.CoinsCollected)
	}
	if len(s.Entities) != 1 || s.Entities[0].Kind != KindSpike {
		t.Errorf("the spike should stay on screen, got %+v", s.Entities)
	}

	// Distance is frozen after the run ends
	g.Tick(center)
	if g.Session().Distance != 12.5 {
		t.Errorf("distance moved after GameOver: %v", g.Session().Distance)
	}
}

func TestLethalTickScoresNothing(t *testing.T) {
	g := newTestGame(t, nil, nil)
	startPlaying(t, g)
	quiet(g)

	y := g.Geometry().PlayerCenterY() - 0.5
	g.session.Entities = []Entity{
		{ID: 1, X: 50, Y: y, Kind: KindCoin},
		{ID: 2, X: 50, Y: y, Kind: KindPillar},
	}
	g.Tick(center)

	s := g.Session()
	if g.Phase() != PhaseGameOver {
		t.Fatalf("expected GameOver, got %s", g.Phase())
	}
	if s.Score != 0 || s.CoinsCollected != 0 || len(s.Entities) != 2 {
		t.Errorf("a lethal tick must not collect: score=%d coins=%d entities=%d",
			s.Score, s.CoinsCollected, len(s.Entities))
	}
}

func TestRestartResetsSession(t *testing.T) {
	g := newTestGame(t, spawnOnPlayer, nil)
	startPlaying(t, g)
	quiet(g, 0, 0.9, 0.5)
	g.Tick(center)
	if g.Phase() != PhaseGameOver {
		t.Fatalf("expected GameOver, got %s", g.Phase())
	}

	gen := g.Generation()
	if !g.Start() {
		t.Fatal("Start() from GameOver should succeed")
	}
	if g.Generation() == gen {
		t.Error("restart must advance the generation")
	}

	s := g.Session()
	if s.Score != 0 || s.Distance != 0 || s.ElapsedTime != 0 || len(s.Entities) != 0 || s.PlayerX != 50 {
		t.Errorf("session not reset: %+v", s)
	}
}

// playUntilAdvice ticks until an advice request is produced.
func playUntilAdvice(t *testing.T, g *Game) (*AdviceRequest, int) {
	t.Helper()

	for i := 1; i <= 1000; i++ {
		res := g.Tick(center)
		if res.Advice != nil {
			return res.Advice, i
		}
	}
	t.Fatal("no advice requested within 1000 ticks")
	return nil, 0
}

func TestAdviceDispatch(t *testing.T) {
	adv := &fakeAdvisor{d: core.DefaultDifficulty()}
	g := newTestGame(t, nil, adv)
	startPlaying(t, g)
	quiet(g)

	req, ticks := playUntilAdvice(t, g)
	if ticks != 600 {
		t.Errorf("first request at tick %d, expected 600", ticks)
	}
	if math.Abs(req.Performance.TimeElapsed-10) > 1e-9 {
		t.Errorf("TimeElapsed = %v, expected 10", req.Performance.TimeElapsed)
	}
	if req.Generation != g.Generation() {
		t.Errorf("request tagged %d, game at %d", req.Generation, g.Generation())
	}
	if s := g.Session(); s.LastDifficultyAdjustTime != s.ElapsedTime {
		t.Errorf("LastDifficultyAdjustTime = %v, expected %v", s.LastDifficultyAdjustTime, s.ElapsedTime)
	}

	_, ticks = playUntilAdvice(t, g)
	if ticks != 600 {
		t.Errorf("second request after %d ticks, expected 600", ticks)
	}
}

func TestNoAdviceWhenNotAdaptive(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.GameConfig)
		adv    Advisor
	}{
		{"no advisor", nil, nil},
		{"fixed difficulty", func(c *config.GameConfig) { c.Difficulty.Adaptive = false }, &fakeAdvisor{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, tc.mutate, tc.adv)
			startPlaying(t, g)
			quiet(g)

			for i := 0; i < 1300; i++ {
				if res := g.Tick(center); res.Advice != nil {
					t.Fatalf("advice requested at tick %d", i+1)
				}
			}
		})
	}
}

func TestApplyAdvice(t *testing.T) {
	nan := math.NaN()

	tests := []struct {
		name     string
		result   func(gen uint64) AdviceResult
		err      error
		expected core.Difficulty
	}{
		{
			name: "accepted",
			result: func(gen uint64) AdviceResult {
				return AdviceResult{Generation: gen, Difficulty: core.Difficulty{GameSpeedMultiplier: 1.2, ObstacleFrequency: 1.3, ObstacleVelocityMultiplier: 1.1}}
			},
			expected: core.Difficulty{GameSpeedMultiplier: 1.2, ObstacleFrequency: 1.3, ObstacleVelocityMultiplier: 1.1},
		},
		{
			name: "clamped",
			result: func(gen uint64) AdviceResult {
				return AdviceResult{Generation: gen, Difficulty: core.Difficulty{GameSpeedMultiplier: -3, ObstacleFrequency: 0, ObstacleVelocityMultiplier: 50}}
			},
			expected: core.Difficulty{GameSpeedMultiplier: 0.1, ObstacleFrequency: 0.1, ObstacleVelocityMultiplier: 5},
		},
		{
			name: "not finite",
			result: func(gen uint64) AdviceResult {
				return AdviceResult{Generation: gen, Difficulty: core.Difficulty{GameSpeedMultiplier: nan, ObstacleFrequency: 1, ObstacleVelocityMultiplier: 1}}
			},
			err:      ErrInvalidAdvice,
			expected: core.DefaultDifficulty(),
		},
		{
			name: "advisor failed",
			result: func(gen uint64) AdviceResult {
				return AdviceResult{Generation: gen, Err: context.DeadlineExceeded}
			},
			err:      context.DeadlineExceeded,
			expected: core.DefaultDifficulty(),
		},
		{
			name: "wrong generation",
			result: func(gen uint64) AdviceResult {
				return AdviceResult{Generation: gen + 1, Difficulty: core.Difficulty{GameSpeedMultiplier: 2, ObstacleFrequency: 2, ObstacleVelocityMultiplier: 2}}
			},
			err:      ErrStaleAdvice,
			expected: core.DefaultDifficulty(),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, nil, &fakeAdvisor{})
			startPlaying(t, g)

			err := g.ApplyAdvice(tc.result(g.Generation()))
			if !errors.Is(err, tc.err) {
				t.Errorf("ApplyAdvice() error = %v, expected %v", err, tc.err)
			}
			if g.Difficulty() != tc.expected {
				t.Errorf("difficulty = %+v, expected %+v", g.Difficulty(), tc.expected)
			}

			d := g.Difficulty()
			if d.GameSpeedMultiplier <= 0 || d.ObstacleFrequency <= 0 || d.ObstacleVelocityMultiplier <= 0 {
				t.Errorf("multipliers must stay positive: %+v", d)
			}
		})
	}
}

func TestApplyAdviceRefusesNonPositiveBounds(t *testing.T) {
	g := newTestGame(t, nil, &fakeAdvisor{})
	startPlaying(t, g)

	// Bounds Validate would reject; clamping through NaN leaves the input as is
	g.cfg.Difficulty.MinMultiplier = math.NaN()
	g.cfg.Difficulty.MaxMultiplier = math.NaN()

	err := g.ApplyAdvice(AdviceResult{
		Generation: g.Generation(),
		Difficulty: core.Difficulty{GameSpeedMultiplier: -2, ObstacleFrequency: 0, ObstacleVelocityMultiplier: -1},
	})
	if !errors.Is(err, ErrInvalidAdvice) {
		t.Errorf("ApplyAdvice() error = %v, expected ErrInvalidAdvice", err)
	}
	if g.Difficulty() != core.DefaultDifficulty() {
		t.Errorf("difficulty = %+v, expected defaults kept", g.Difficulty())
	}
}

func TestStaleAdviceAfterRestart(t *testing.T) {
	adv := &fakeAdvisor{d: core.Difficulty{GameSpeedMultiplier: 1.2, ObstacleFrequency: 1.3, ObstacleVelocityMultiplier: 1.1}}
	g := newTestGame(t, nil, adv)
	startPlaying(t, g)
	quiet(g)

	req, _ := playUntilAdvice(t, g)
	call := g.AdviceCall(*req)

	// The run ends and a new one starts before the advisor answers
	g.session.Entities = []Entity{{ID: 99, X: 50, Y: g.Geometry().PlayerCenterY(), Kind: KindSpike}}
	g.Tick(center)
	if g.Phase() != PhaseGameOver {
		t.Fatalf("expected GameOver, got %s", g.Phase())
	}
	startPlaying(t, g)

	res := call()
	if !errors.Is(res.Err, context.Canceled) {
		t.Errorf("the in-flight call should be cancelled, got %v", res.Err)
	}

	// Even a successful late answer is discarded
	res.Err = nil
	res.Difficulty = adv.d
	if err := g.ApplyAdvice(res); !errors.Is(err, ErrStaleAdvice) {
		t.Errorf("ApplyAdvice() error = %v, expected ErrStaleAdvice", err)
	}
	if g.Difficulty() != core.DefaultDifficulty() {
		t.Errorf("stale advice leaked into the new session: %+v", g.Difficulty())
	}
	if s := g.Session(); s.ElapsedTime != 0 {
		t.Errorf("new session should start at 0s, got %v", s.ElapsedTime)
	}
}

func TestAdviceCallRoundTrip(t *testing.T) {
	want := core.Difficulty{GameSpeedMultiplier: 1.5, ObstacleFrequency: 0.8, ObstacleVelocityMultiplier: 1.2}
	adv := &fakeAdvisor{d: want}
	g := newTestGame(t, nil, adv)
	startPlaying(t, g)
	quiet(g)

	req, _ := playUntilAdvice(t, g)
	res := g.AdviceCall(*req)()
	if res.Err != nil {
		t.Fatalf("advisor call failed: %v", res.Err)
	}
	if err := g.ApplyAdvice(res); err != nil {
		t.Fatalf("ApplyAdvice() failed: %v", err)
	}
	if g.Difficulty() != want {
		t.Errorf("difficulty = %+v, expected %+v", g.Difficulty(), want)
	}
	if adv.calls != 1 {
		t.Errorf("advisor called %d times, expected 1", adv.calls)
	}

	// Higher speed means faster distance
	before := g.Session().Distance
	g.Tick(center)
	if got := g.Session().Distance - before; math.Abs(got-0.15) > 1e-9 {
		t.Errorf("distance step = %v, expected 0.15", got)
	}
}

func TestAdviceCallWithoutAdvisor(t *testing.T) {
	g := newTestGame(t, nil, nil)
	startPlaying(t, g)

	res := g.AdviceCall(AdviceRequest{Generation: g.Generation()})()
	if res.Err == nil {
		t.Error("expected an error without an advisor")
	}
}

func TestCloseCancelsInFlightAdvice(t *testing.T) {
	adv := &fakeAdvisor{d: core.DefaultDifficulty()}
	g := newTestGame(t, nil, adv)
	startPlaying(t, g)

	call := g.AdviceCall(AdviceRequest{Generation: g.Generation()})
	g.Close()

	if g.Phase() != PhaseIdle {
		t.Errorf("expected Idle after Close, got %s", g.Phase())
	}
	res := call()
	if !errors.Is(res.Err, context.Canceled) {
		t.Errorf("expected a cancelled call, got %v", res.Err)
	}
	if err := g.ApplyAdvice(res); !errors.Is(err, ErrStaleAdvice) {
		t.Errorf("expected ErrStaleAdvice after Close, got %v", err)
	}
}

func TestInitialScale(t *testing.T) {
	g := newTestGame(t, func(c *config.GameConfig) { c.Difficulty.InitialScale = 1.25 }, nil)
	g.Start()

	if d := g.Difficulty(); d.GameSpeedMultiplier != 1.25 {
		t.Errorf("expected starting speed 1.25, got %+v", d)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := newTestGame(t, nil, nil)
		startPlaying(t, g)
		for i := 0; i < 3000 && g.Phase() == PhasePlaying; i++ {
			x := 50 + 40*math.Sin(float64(i)/90)
			g.Tick(core.InputFrame{PointerX: x})
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed and input produced different runs:\n%+v\n%+v", a, b)
	}
}

func TestSpawnMix(t *testing.T) {
	g := newTestGame(t, func(c *config.GameConfig) {
		c.Spawn.Kinds[0].Weight = 0 // No gems
	}, nil)

	expected := map[Kind]float64{
		KindPillar: 35.0 / 95,
		KindBar:    20.0 / 95,
		KindSpike:  20.0 / 95,
		KindCoin:   20.0 / 95,
		KindGem:    0,
	}

	mix := g.SpawnMix()
	if len(mix) != len(expected) {
		t.Fatalf("SpawnMix() has %d rows, expected %d", len(mix), len(expected))
	}
	var total float64
	for _, row := range mix {
		if math.Abs(row.Share-expected[row.Kind]) > 1e-9 {
			t.Errorf("%s share = %v, expected %v", row.Kind, row.Share, expected[row.Kind])
		}
		total += row.Share
	}
	if math.Abs(total-1) > 1e-9 {
		t.Errorf("shares sum to %v, expected 1", total)
	}
}

func TestSnapshotHelpers(t *testing.T) {
	s := Snapshot{Score: 1230, Distance: 41.9, Difficulty: core.Difficulty{GameSpeedMultiplier: 20}}

	if s.Meters() != 41 {
		t.Errorf("Meters() = %d, expected 41", s.Meters())
	}
	if s.STX() != 1.23 {
		t.Errorf("STX() = %v, expected 1.23", s.STX())
	}
	if s.TrackCycle() != 0.2 {
		t.Errorf("TrackCycle() = %v, expected the 0.2 floor", s.TrackCycle())
	}

	s.Difficulty.GameSpeedMultiplier = 1
	if s.TrackCycle() != 2 {
		t.Errorf("TrackCycle() = %v, expected 2", s.TrackCycle())
	}
}
