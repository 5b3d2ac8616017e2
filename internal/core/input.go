package core

// Action represents a semantic player action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionStart          // Enter, Space - start a run from the title screen
	ActionLeft           // Left arrow, A - nudge the ball left
	ActionRight          // Right arrow, D - nudge the ball right
	ActionRestart        // R - play again after game over
	ActionConvert        // X - convert score to STX on the game over screen
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionStart:
		return "Start"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionRestart:
		return "Restart"
	case ActionConvert:
		return "Convert"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the input sampled for one simulation tick.
type InputFrame struct {
	// PointerX is the latest horizontal pointer position in [0, 100].
	PointerX float64
}

// Pointer holds the continuous horizontal position signal.
// Mouse motion sets it absolutely, keys nudge it; the tick samples the latest value.
type Pointer struct {
	x float64
}

// NewPointer creates a pointer centred on the board.
func NewPointer() *Pointer {
	return &Pointer{x: 50}
}

// Set moves the pointer to x, clamped to [0, 100].
func (p *Pointer) Set(x float64) {
	p.x = ClampF(x, 0, 100)
}

// Nudge moves the pointer by dx percent, clamped to [0, 100].
func (p *Pointer) Nudge(dx float64) {
	p.Set(p.x + dx)
}

// SetFromColumn maps a terminal column within a board of the given width to a percentage.
func (p *Pointer) SetFromColumn(col, boardLeft, boardWidth int) {
	if boardWidth <= 1 {
		return
	}
	p.Set(float64(col-boardLeft) / float64(boardWidth-1) * 100)
}

// X returns the current pointer position.
func (p *Pointer) X() float64 {
	return p.x
}

// Reset re-centres the pointer.
func (p *Pointer) Reset() {
	p.x = 50
}

// Sample returns an InputFrame carrying the latest pointer value.
func (p *Pointer) Sample() InputFrame {
	return InputFrame{PointerX: p.x}
}
