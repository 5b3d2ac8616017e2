package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/vovakirdan/stacks-roll/internal/core"
)

// Advisor computes new multipliers from a performance snapshot.
// Implementations may block and may fail.
type Advisor interface {
	Advise(ctx context.Context, p core.Performance) (core.Difficulty, error)
}

var (
	// ErrStaleAdvice means the result belongs to a session that has ended.
	ErrStaleAdvice = errors.New("game: stale advice")
	// ErrInvalidAdvice means the advisor returned non-finite multipliers.
	ErrInvalidAdvice = errors.New("game: invalid advice")
)

// AdviceRequest is an advisor call due for dispatch, tagged with the
// session generation it was issued in.
type AdviceRequest struct {
	Generation  uint64
	Performance core.Performance
}

// AdviceResult is the resolved advisor call delivered back to the owner.
type AdviceResult struct {
	Generation uint64
	Difficulty core.Difficulty
	Err        error
}

// AdviceCall returns the blocking advisor call for req. The returned function
// touches no game state and is meant to run on another goroutine; it is
// cancelled as soon as the session leaves Playing.
func (g *Game) AdviceCall(req AdviceRequest) func() AdviceResult {
	adv := g.advisor
	ctx := g.playCtx
	if ctx == nil || req.Generation != g.generation {
		ctx = canceledContext()
	}

	return func() AdviceResult {
		if adv == nil {
			return AdviceResult{Generation: req.Generation, Err: fmt.Errorf("game: no advisor configured")}
		}
		d, err := adv.Advise(ctx, req.Performance)
		return AdviceResult{Generation: req.Generation, Difficulty: d, Err: err}
	}
}

// ApplyAdvice installs a resolved result if it still belongs to the running
// session. On any error the previous multipliers stay in force; the error is
// returned for logging only. Results are applied in the order they arrive.
func (g *Game) ApplyAdvice(res AdviceResult) error {
	if res.Generation != g.generation || g.phase != PhasePlaying {
		return ErrStaleAdvice
	}
	if res.Err != nil {
		return res.Err
	}
	if err := res.Difficulty.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAdvice, err)
	}

	d := res.Difficulty.Clamp(g.cfg.Difficulty.MinMultiplier, g.cfg.Difficulty.MaxMultiplier)
	if !d.Positive() {
		return fmt.Errorf("%w: multipliers not positive after clamping: %+v", ErrInvalidAdvice, d)
	}
	g.session.Difficulty = d
	return nil
}

func canceledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}
