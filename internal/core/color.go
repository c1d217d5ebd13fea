package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorBlue
	ColorGreen
	ColorYellow
	ColorPurple
	ColorOrange
	ColorWhite
	ColorGray
	ColorDim
	ColorHighlight // cursor and preview marks
	ColorAlert     // halted board, game over banners
)

// IsDot returns true for colors used to draw dots.
func (c Color) IsDot() bool {
	return c >= ColorRed && c <= ColorOrange
}
