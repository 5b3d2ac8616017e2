// Package game implements the Stacks Roll simulation: falling entities,
// collision and scoring, the session clock and phase machine, and the
// generation-guarded difficulty advice protocol.
//
// Nothing here touches the terminal or the network. The platform drives
// Tick and CountdownTick from its own timers and runs advisor calls off the
// owner goroutine, feeding results back through ApplyAdvice.
package game

import "fmt"

// Kind identifies what an entity is.
type Kind int

const (
	KindPillar Kind = iota
	KindBar
	KindSpike
	KindCoin
	KindGem
)

var kindNames = map[Kind]string{
	KindPillar: "pillar",
	KindBar:    "bar",
	KindSpike:  "spike",
	KindCoin:   "coin",
	KindGem:    "gem",
}

// String returns the config name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind converts a config name to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("game: unknown entity kind %q", s)
}

// Lethal reports whether touching the entity ends the run.
func (k Kind) Lethal() bool {
	return k == KindPillar || k == KindBar || k == KindSpike
}

// Collectible reports whether the entity is picked up on contact.
func (k Kind) Collectible() bool {
	return k == KindCoin || k == KindGem
}

// Entity is a falling object in board percentage coordinates.
// X is in [0, 100]; Y < 0 is above the board, Y > 100 below it.
type Entity struct {
	ID       int
	X, Y     float64
	Kind     Kind
	Rotation float64 // Degrees, bars only; drawn but ignored by collision
}
