package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-dots/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorRed:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	core.ColorBlue:      lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	core.ColorGreen:     lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	core.ColorYellow:    lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
	core.ColorPurple:    lipgloss.NewStyle().Foreground(lipgloss.Color("135")),
	core.ColorOrange:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorWhite:     lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorGray:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorDim:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	core.ColorHighlight: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	core.ColorAlert:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
}

// styleFor returns the style for c, falling back to the default style.
func styleFor(c core.Color) lipgloss.Style {
	if style, ok := colorStyles[c]; ok {
		return style
	}
	return colorStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			var run strings.Builder
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}

			if color == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(color).Render(run.String()))
		}
	}
	return sb.String()
}
