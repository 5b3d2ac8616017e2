package advisor

import (
	"context"
	"fmt"

	"github.com/vovakirdan/stacks-roll/internal/core"
)

// Off is an advisor that never answers, so difficulty stays where it started.
type Off struct{}

// Advise always fails with ErrUnavailable.
func (Off) Advise(context.Context, core.Performance) (core.Difficulty, error) {
	return core.Difficulty{}, fmt.Errorf("%w: advisor is off", ErrUnavailable)
}
