package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stacks-roll/internal/core"
	"github.com/vovakirdan/stacks-roll/internal/game"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Layout places the board on the terminal. The inner area excludes the frame.
type Layout struct {
	Board core.Rect // Frame, including the border
	Inner core.Rect // Playfield cells
}

// hudRows is the space reserved above the board for the status line.
const hudRows = 1

// NewLayout fits a 2:3 board into a w x h terminal. Terminal cells are
// about twice as tall as wide, so the board is 4/3 as many columns as rows.
func NewLayout(w, h int) Layout {
	innerH := core.Max(h-hudRows-2, 3)
	innerW := core.Min(w-2, innerH*4/3)
	innerW = core.Max(innerW, 3)

	left := core.Max((w-innerW-2)/2, 0)
	board := core.NewRect(left, hudRows, innerW+2, innerH+2)
	return Layout{
		Board: board,
		Inner: core.NewRect(left+1, hudRows+1, innerW, innerH),
	}
}

// Column maps a board x percentage to a terminal column.
func (l Layout) Column(x float64) int {
	return l.Inner.X + int(math.Round(x/100*float64(l.Inner.W-1)))
}

// Row maps a board y percentage to a terminal row.
func (l Layout) Row(y float64) int {
	return l.Inner.Y + int(math.Round(y/100*float64(l.Inner.H-1)))
}

// span converts a box in percent to a cell rectangle, at least one cell big.
func (l Layout) span(b core.RectF) core.Rect {
	x0 := l.Column(b.X)
	y0 := l.Row(b.Y)
	x1 := l.Column(b.Right())
	y1 := l.Row(b.Bottom())
	return core.NewRect(x0, y0, core.Max(x1-x0, 1), core.Max(y1-y0, 1))
}

// contains reports whether the cell is inside the playfield.
func (l Layout) contains(x, y int) bool {
	return x >= l.Inner.X && x < l.Inner.Right() && y >= l.Inner.Y && y < l.Inner.Bottom()
}

type glyph struct {
	r rune
	c core.Color
}

var entityGlyphs = map[game.Kind]glyph{
	game.KindPillar: {'█', core.ColorGray},
	game.KindBar:    {'═', core.ColorOrange},
	game.KindSpike:  {'▲', core.ColorBrightRed},
	game.KindCoin:   {'●', core.ColorBrightYellow},
	game.KindGem:    {'◆', core.ColorBrightCyan},
}

// barGlyph picks a line character for a bar's rotation.
func barGlyph(rotation float64) rune {
	r := math.Mod(rotation, 180)
	switch {
	case r < 22.5 || r >= 157.5:
		return '═'
	case r < 67.5:
		return '╲'
	case r < 112.5:
		return '║'
	default:
		return '╱'
	}
}

// DrawBoard draws the frame, track, entities and ball for a snapshot.
func DrawBoard(s *core.Screen, l Layout, snap game.Snapshot, geo game.Geometry) {
	s.DrawBox(l.Board, core.ColorFrame)
	drawTrack(s, l, snap)

	for _, e := range snap.Entities {
		g, ok := entityGlyphs[e.Kind]
		if !ok {
			continue
		}
		box := geo.EntityBox(e)
		if box.Empty() {
			continue
		}
		r := g.r
		if e.Kind == game.KindBar {
			r = barGlyph(e.Rotation)
		}
		fillClipped(s, l, l.span(box), r, g.c)
	}

	ball := l.span(geo.PlayerBox(snap.PlayerX))
	fillClipped(s, l, ball, '●', core.ColorPlayer)
}

// drawTrack draws the two lane lines scrolling down with the run.
func drawTrack(s *core.Screen, l Layout, snap game.Snapshot) {
	offset := 0
	if snap.Phase == game.PhasePlaying {
		cycle := snap.TrackCycle()
		offset = int(math.Mod(snap.ElapsedTime, cycle) / cycle * 4)
	}

	for _, x := range []float64{100.0 / 3, 200.0 / 3} {
		col := l.Column(x)
		for y := l.Inner.Y; y < l.Inner.Bottom(); y++ {
			if (y-l.Inner.Y+4-offset)%4 < 2 {
				s.SetColor(col, y, '┆', core.ColorTrack)
			}
		}
	}
}

func fillClipped(s *core.Screen, l Layout, r core.Rect, ch rune, c core.Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			if l.contains(x, y) {
				s.SetColor(x, y, ch, c)
			}
		}
	}
}

// DrawHUD draws the status line above the board.
func DrawHUD(s *core.Screen, l Layout, snap game.Snapshot) {
	left := fmt.Sprintf("SCORE %d  COINS %d", snap.Score, snap.CoinsCollected)
	right := fmt.Sprintf("%dm  x%.2f", snap.Meters(), snap.Difficulty.GameSpeedMultiplier)

	s.DrawTextColor(l.Board.X, 0, left, core.ColorHUD)
	s.DrawTextColor(l.Board.Right()-len([]rune(right)), 0, right, core.ColorScore)
}
