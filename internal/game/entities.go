package game

import (
	"math/rand"

	"github.com/vovakirdan/stacks-roll/internal/config"
	"github.com/vovakirdan/stacks-roll/internal/core"
)

// floatSource is the slice of *rand.Rand the manager draws from.
type floatSource interface {
	Float64() float64
}

// EntityManager handles spawning, movement, and removal of falling entities.
type EntityManager struct {
	rng    floatSource
	table  *SpawnTable
	cfg    config.SpawnConfig
	nextID int
}

// NewEntityManager creates a new entity manager with the given RNG seed.
func NewEntityManager(seed int64, cfg config.SpawnConfig) (*EntityManager, error) {
	table, err := NewSpawnTable(cfg.Kinds)
	if err != nil {
		return nil, err
	}

	em := &EntityManager{
		table: table,
		cfg:   cfg,
	}
	em.Reset(seed)
	return em, nil
}

// Reset reseeds the RNG and restarts entity ids for a new session.
func (em *EntityManager) Reset(seed int64) {
	em.rng = rand.New(rand.NewSource(seed))
	em.nextID = 1
}

// Table returns the spawn table.
func (em *EntityManager) Table() *SpawnTable {
	return em.table
}

// FallStep returns how far entities move per tick under d.
func (em *EntityManager) FallStep(d core.Difficulty) float64 {
	return em.cfg.BaseFallRate * d.GameSpeedMultiplier * d.ObstacleVelocityMultiplier
}

// Advance moves every entity down, drops the ones past the exit line and
// spawns at most one new entity. The input slice is left untouched.
func (em *EntityManager) Advance(entities []Entity, d core.Difficulty) []Entity {
	step := em.FallStep(d)

	next := make([]Entity, 0, len(entities)+1)
	for _, e := range entities {
		e.Y += step
		// Passing obstacles cost nothing
		if e.Y < em.cfg.ExitY {
			next = append(next, e)
		}
	}

	if em.rng.Float64() < em.cfg.BaseSpawnChance*d.ObstacleFrequency {
		next = append(next, em.spawn())
	}

	return next
}

// spawn creates one entity at the spawn line using the weighted table.
func (em *EntityManager) spawn() Entity {
	kind, rule := em.table.Pick(em.rng.Float64())

	x := rule.XMin
	if rule.XMax > rule.XMin {
		x = rule.XMin + em.rng.Float64()*(rule.XMax-rule.XMin)
	}

	e := Entity{
		ID:   em.nextID,
		X:    x,
		Y:    em.cfg.SpawnY,
		Kind: kind,
	}
	em.nextID++

	if rule.MaxRotation > 0 {
		e.Rotation = em.rng.Float64() * rule.MaxRotation
	}

	return e
}
