package game

import (
	"github.com/vovakirdan/stacks-roll/internal/config"
	"github.com/vovakirdan/stacks-roll/internal/core"
)

// Geometry converts logical positions into collision boxes.
// All sizes are stored as percentages of the board.
type Geometry struct {
	playerW, playerH float64
	playerCenterY    float64
	sizes            map[Kind][2]float64
	perspective      bool
}

// NewGeometry builds the collision geometry from config.
// Kinds without a configured size get an empty box and never collide.
func NewGeometry(cfg config.GeometryConfig) Geometry {
	g := Geometry{
		playerW:     cfg.PlayerSize / cfg.BoardWidth * 100,
		playerH:     cfg.PlayerSize / cfg.BoardHeight * 100,
		sizes:       make(map[Kind][2]float64, len(cfg.Sizes)),
		perspective: cfg.Perspective,
	}
	g.playerCenterY = 100 - cfg.PlayerBottom - g.playerH/2

	for name, s := range cfg.Sizes {
		kind, err := ParseKind(name)
		if err != nil {
			continue
		}
		g.sizes[kind] = [2]float64{s.W / cfg.BoardWidth * 100, s.H / cfg.BoardHeight * 100}
	}
	return g
}

// PlayerCenterY returns the fixed vertical centre of the ball.
func (g Geometry) PlayerCenterY() float64 {
	return g.playerCenterY
}

// PlayerBox returns the ball's box for horizontal position x.
func (g Geometry) PlayerBox(x float64) core.RectF {
	return core.CenteredRectF(x, g.playerCenterY, g.playerW, g.playerH)
}

// Scale returns the perspective factor applied at height y.
func (g Geometry) Scale(y float64) float64 {
	if !g.perspective {
		return 1
	}
	if y <= 0 {
		return 0
	}
	return y / 100
}

// EntityBox returns the entity's box, centred on its position.
// Bars are treated as unrotated.
func (g Geometry) EntityBox(e Entity) core.RectF {
	size := g.sizes[e.Kind]
	scale := g.Scale(e.Y)
	return core.CenteredRectF(e.X, e.Y, size[0]*scale, size[1]*scale)
}

// Outcome is the result of resolving one tick's overlaps.
type Outcome struct {
	Terminal   bool  // A lethal entity was touched
	ScoreDelta int   // Points from collectibles touched this tick
	CoinDelta  int   // Coins touched this tick (gems excluded)
	Consumed   []int // Ids of collectibles to remove
}

// CollisionEngine resolves player/entity overlaps. It holds only immutable
// rules, so its methods are pure.
type CollisionEngine struct {
	geo     Geometry
	scoring config.ScoringConfig
}

// NewCollisionEngine creates a collision engine.
func NewCollisionEngine(geo Geometry, scoring config.ScoringConfig) CollisionEngine {
	return CollisionEngine{geo: geo, scoring: scoring}
}

// Geometry returns the engine's geometry.
func (c CollisionEngine) Geometry() Geometry {
	return c.geo
}

// value returns score and coin deltas for collecting kind k.
func (c CollisionEngine) value(k Kind) (score, coins int) {
	switch k {
	case KindCoin:
		return c.scoring.Coin, 1
	case KindGem:
		return c.scoring.Gem, 0
	default:
		return 0, 0
	}
}

// Resolve checks the player at playerX against every entity.
// The first lethal overlap ends resolution with only Terminal set: a tick
// that ends the run scores nothing and consumes nothing.
func (c CollisionEngine) Resolve(playerX float64, entities []Entity) Outcome {
	player := c.geo.PlayerBox(playerX)

	var out Outcome
	seen := make(map[int]bool)
	for _, e := range entities {
		if !player.Intersects(c.geo.EntityBox(e)) {
			continue
		}
		switch {
		case e.Kind.Lethal():
			return Outcome{Terminal: true}
		case e.Kind.Collectible():
			if seen[e.ID] {
				continue
			}
			seen[e.ID] = true
			score, coins := c.value(e.Kind)
			out.ScoreDelta += score
			out.CoinDelta += coins
			out.Consumed = append(out.Consumed, e.ID)
		}
	}
	return out
}

// Consume removes the given collectible ids from entities and returns the
// points for the ones actually present. Ids that are absent, repeated, or
// not collectible are ignored, so consuming twice scores once.
func (c CollisionEngine) Consume(entities []Entity, ids []int) (kept []Entity, scoreDelta, coinDelta int) {
	if len(ids) == 0 {
		return entities, 0, 0
	}

	pending := make(map[int]bool, len(ids))
	for _, id := range ids {
		pending[id] = true
	}

	kept = make([]Entity, 0, len(entities))
	for _, e := range entities {
		if pending[e.ID] && e.Kind.Collectible() {
			delete(pending, e.ID)
			score, coins := c.value(e.Kind)
			scoreDelta += score
			coinDelta += coins
			continue
		}
		kept = append(kept, e)
	}
	return kept, scoreDelta, coinDelta
}
