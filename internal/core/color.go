package core

// Color is the foreground color of a screen cell. The renderer maps each
// value to an ANSI 256-color code.
type Color uint8

// Palette.
const (
	ColorDefault Color = iota
	ColorBlue
	ColorGray
	ColorOrange
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorBrightMagenta
	ColorBrightWhite
)

// Roles on the board.
const (
	ColorFrame  = ColorBlue
	ColorTrack  = ColorGray
	ColorPlayer = ColorBrightMagenta
	ColorHUD    = ColorBrightWhite
	ColorScore  = ColorBrightGreen
	ColorBanner = ColorBrightYellow
)
