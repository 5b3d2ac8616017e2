package game

import (
	"context"
	"math"

	"github.com/vovakirdan/stacks-roll/internal/config"
	"github.com/vovakirdan/stacks-roll/internal/core"
)

// Phase is the overall state of the game.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseCountdown
	PhasePlaying
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCountdown:
		return "countdown"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Session is the state of one play-through. Game is its only writer.
type Session struct {
	Score                    int
	Distance                 float64
	CoinsCollected           int
	ElapsedTime              float64 // Seconds of game time
	LastDifficultyAdjustTime float64
	Ticks                    uint64
	PlayerX                  float64
	Entities                 []Entity
	Difficulty               core.Difficulty

	lastAdjustTick uint64
}

// Performance returns the advisor input for the session.
func (s Session) Performance() core.Performance {
	return core.Performance{
		Score:            s.Score,
		DistanceTraveled: s.Distance,
		CoinsCollected:   s.CoinsCollected,
		TimeElapsed:      s.ElapsedTime,
	}
}

// TickResult is returned by Tick.
type TickResult struct {
	Phase    Phase
	Terminal bool           // This tick ended the run
	Advice   *AdviceRequest // Set when an advisor request is due
}

// Game owns the session state and drives the phase machine.
// It is not safe for concurrent use: one goroutine calls every method.
type Game struct {
	cfg        config.GameConfig
	advisor    Advisor
	entities   *EntityManager
	collisions CollisionEngine

	phase       Phase
	countdown   int
	session     Session
	generation  uint64
	seed        int64
	adviceEvery uint64
	baseCtx     context.Context
	playCtx     context.Context
	cancelPlay  context.CancelFunc
}

// New creates a game in the Idle phase. adv may be nil, in which case the
// multipliers never change.
func New(cfg config.GameConfig, adv Advisor, seed int64) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	em, err := NewEntityManager(seed, cfg.Spawn)
	if err != nil {
		return nil, err
	}

	every := uint64(math.Round(cfg.Timing.AdvisorInterval / cfg.Timing.NominalStep))
	if every < 1 {
		every = 1
	}

	g := &Game{
		cfg:         cfg,
		advisor:     adv,
		entities:    em,
		collisions:  NewCollisionEngine(NewGeometry(cfg.Geometry), cfg.Scoring),
		phase:       PhaseIdle,
		countdown:   cfg.Timing.CountdownFrom,
		seed:        seed,
		adviceEvery: every,
		baseCtx:     context.Background(),
	}
	g.session = g.freshSession()
	return g, nil
}

// freshSession returns zeroed session state with the starting multipliers.
func (g *Game) freshSession() Session {
	d := core.DefaultDifficulty().
		Scale(g.cfg.Difficulty.InitialScale).
		Clamp(g.cfg.Difficulty.MinMultiplier, g.cfg.Difficulty.MaxMultiplier)
	return Session{
		PlayerX:    50,
		Difficulty: d,
	}
}

// Start begins a new session from Idle or GameOver and enters Countdown.
// Session state and difficulty are reset and the generation advances, so
// anything still in flight from an earlier session is ignored.
// Returns false if a session is already running.
func (g *Game) Start() bool {
	if g.phase != PhaseIdle && g.phase != PhaseGameOver {
		return false
	}

	g.stopPlay()
	g.generation++
	g.session = g.freshSession()
	g.entities.Reset(g.seed + int64(g.generation))
	g.countdown = g.cfg.Timing.CountdownFrom
	g.phase = PhaseCountdown

	if g.countdown <= 0 {
		g.beginPlay()
	}
	return true
}

// CountdownTick is called once per second during Countdown. The tick must
// carry the generation it was armed for; stale ticks are ignored.
// Returns true if the tick was applied.
func (g *Game) CountdownTick(gen uint64) bool {
	if g.phase != PhaseCountdown || gen != g.generation {
		return false
	}

	g.countdown--
	if g.countdown <= 0 {
		g.countdown = g.cfg.Timing.CountdownFrom
		g.beginPlay()
	}
	return true
}

// Tick advances the simulation by one fixed step. It is a no-op outside Playing.
func (g *Game) Tick(in core.InputFrame) TickResult {
	if g.phase != PhasePlaying {
		return TickResult{Phase: g.phase}
	}

	s := g.session
	s.PlayerX = core.ClampF(in.PointerX, 0, 100)
	s.Ticks++
	s.ElapsedTime = float64(s.Ticks) * g.cfg.Timing.NominalStep
	s.Distance += s.Difficulty.GameSpeedMultiplier * g.cfg.Timing.DistanceRate
	s.Entities = g.entities.Advance(s.Entities, s.Difficulty)

	out := g.collisions.Resolve(s.PlayerX, s.Entities)
	if out.Terminal {
		// Counters freeze at their pre-collision values; only the picture moves
		g.session.Entities = s.Entities
		g.session.PlayerX = s.PlayerX
		g.stopPlay()
		g.phase = PhaseGameOver
		return TickResult{Phase: g.phase, Terminal: true}
	}

	kept, scoreDelta, coinDelta := g.collisions.Consume(s.Entities, out.Consumed)
	s.Entities = kept
	s.Score += scoreDelta
	s.CoinsCollected += coinDelta

	result := TickResult{Phase: g.phase}
	if g.adaptive() && s.Ticks-s.lastAdjustTick >= g.adviceEvery {
		s.lastAdjustTick = s.Ticks
		s.LastDifficultyAdjustTime = s.ElapsedTime
		result.Advice = &AdviceRequest{
			Generation:  g.generation,
			Performance: s.Performance(),
		}
	}

	g.session = s
	return result
}

// Close tears the game down: outstanding requests are cancelled, pending
// timers become stale, and the phase returns to Idle.
func (g *Game) Close() {
	g.stopPlay()
	g.generation++
	g.phase = PhaseIdle
	g.countdown = g.cfg.Timing.CountdownFrom
}

func (g *Game) adaptive() bool {
	return g.advisor != nil && g.cfg.Difficulty.Adaptive
}

func (g *Game) beginPlay() {
	g.playCtx, g.cancelPlay = context.WithCancel(g.baseCtx)
	g.phase = PhasePlaying
}

func (g *Game) stopPlay() {
	if g.cancelPlay != nil {
		g.cancelPlay()
		g.cancelPlay = nil
	}
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Generation identifies the current session for timers and advice.
func (g *Game) Generation() uint64 {
	return g.generation
}

// Countdown returns the current countdown value.
func (g *Game) Countdown() int {
	return g.countdown
}

// Session returns a copy of the session state.
func (g *Game) Session() Session {
	s := g.session
	s.Entities = append([]Entity(nil), g.session.Entities...)
	return s
}

// Difficulty returns the active multipliers.
func (g *Game) Difficulty() core.Difficulty {
	return g.session.Difficulty
}

// Geometry returns the collision geometry, for renderers.
func (g *Game) Geometry() Geometry {
	return g.collisions.Geometry()
}

// Config returns the tuning the game was built with.
func (g *Game) Config() config.GameConfig {
	return g.cfg
}

// SpawnMix returns the share of spawns each kind receives, in Kind order.
func (g *Game) SpawnMix() []KindShare {
	table := g.entities.Table()
	mix := make([]KindShare, 0, len(kindNames))
	for k := KindPillar; k <= KindGem; k++ {
		mix = append(mix, KindShare{Kind: k, Share: table.Probability(k)})
	}
	return mix
}

// KindShare is one row of SpawnMix.
type KindShare struct {
	Kind  Kind
	Share float64
}
