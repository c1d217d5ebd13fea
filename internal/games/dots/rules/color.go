package rules

import (
	"fmt"
	"strings"
)

// Color identifies a dot color from the palette.
type Color uint8

const (
	ColorRed Color = iota
	ColorBlue
	ColorGreen
	ColorYellow
	ColorPurple
	ColorOrange
	ColorCount // Sentinel value for iteration
)

// String returns the lowercase name of the color.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorBlue:
		return "blue"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorPurple:
		return "purple"
	case ColorOrange:
		return "orange"
	default:
		return "unknown"
	}
}

// Char returns the single character used in layouts and ASCII dumps.
func (c Color) Char() rune {
	switch c {
	case ColorRed:
		return 'R'
	case ColorBlue:
		return 'B'
	case ColorGreen:
		return 'G'
	case ColorYellow:
		return 'Y'
	case ColorPurple:
		return 'P'
	case ColorOrange:
		return 'O'
	default:
		return '?'
	}
}

// ParseColor converts a name or layout character to a Color.
// Returns ColorRed and false if the string is not recognized.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red", "r":
		return ColorRed, true
	case "blue", "b":
		return ColorBlue, true
	case "green", "g":
		return ColorGreen, true
	case "yellow", "y":
		return ColorYellow, true
	case "purple", "p":
		return ColorPurple, true
	case "orange", "o":
		return ColorOrange, true
	default:
		return ColorRed, false
	}
}

// AllColors returns every color in palette order.
func AllColors() []Color {
	colors := make([]Color, 0, ColorCount)
	for c := Color(0); c < ColorCount; c++ {
		colors = append(colors, c)
	}
	return colors
}

// ParsePalette converts color names to a palette, rejecting unknown and
// duplicate entries.
func ParsePalette(names []string) ([]Color, error) {
	palette := make([]Color, 0, len(names))
	seen := make(map[Color]bool, len(names))
	for _, name := range names {
		c, ok := ParseColor(name)
		if !ok {
			return nil, fmt.Errorf("unknown color %q", name)
		}
		if seen[c] {
			return nil, fmt.Errorf("duplicate color %q", name)
		}
		seen[c] = true
		palette = append(palette, c)
	}
	return palette, nil
}
