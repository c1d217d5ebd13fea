package dots

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/tui-dots/internal/core"
	"github.com/vovakirdan/tui-dots/internal/games/dots/rules"
)

const (
	cellWidth  = 4 // columns between dot centers
	cellHeight = 2 // rows between dot centers
	hudHeight  = 3
)

// Glyphs for board elements
const (
	glyphDot     = '●'
	glyphPath    = '◉'
	glyphPreview = '◎'
	glyphHint    = '○'
	glyphSmall   = '•'
	glyphTiny    = '·'
	glyphLinkH   = '─'
	glyphLinkV   = '│'
)

// dotColor maps a board color to a screen color.
func dotColor(c rules.Color) core.Color {
	switch c {
	case rules.ColorRed:
		return core.ColorRed
	case rules.ColorBlue:
		return core.ColorBlue
	case rules.ColorGreen:
		return core.ColorGreen
	case rules.ColorYellow:
		return core.ColorYellow
	case rules.ColorPurple:
		return core.ColorPurple
	case rules.ColorOrange:
		return core.ColorOrange
	default:
		return core.ColorDefault
	}
}

// boardSize returns the board's footprint in screen characters.
func (g *Game) boardSize() (w, h int) {
	grid := g.engine.Grid()
	return (grid.Width()-1)*cellWidth + 1, (grid.Height()-1)*cellHeight + 1
}

// boardRect returns the board's footprint, centered in the space below the
// HUD and never overlapping it.
func (g *Game) boardRect() core.Rect {
	w, h := g.boardSize()
	area := core.NewRect(0, hudHeight+1, g.rt.ScreenW, g.rt.ScreenH-hudHeight-2)
	r := area.Centered(w, h)
	r.Y = core.Max(r.Y, area.Y)
	return r
}

// origin returns the screen position of the dot at (0, 0).
func (g *Game) origin() (x, y int) {
	r := g.boardRect()
	return r.X, r.Y
}

// screenPos returns where the dot at p is drawn.
func (g *Game) screenPos(p rules.Pos) (x, y int) {
	ox, oy := g.origin()
	return ox + p.Col*cellWidth, oy + p.Row*cellHeight
}

// cellAt maps a screen position to a board slot. The hit area of a dot is
// the dot itself plus one character either side.
func (g *Game) cellAt(x, y int) (rules.Pos, bool) {
	if g.engine == nil {
		return rules.Pos{}, false
	}
	ox, oy := g.origin()
	dx, dy := x-ox+1, y-oy
	if dx < 0 || dy < 0 || dy%cellHeight != 0 || dx%cellWidth > 2 {
		return rules.Pos{}, false
	}
	p := rules.P(dx/cellWidth, dy/cellHeight)
	if !g.engine.Grid().InBounds(p) {
		return rules.Pos{}, false
	}
	return p, true
}

// checkScreenSize checks if the screen can hold the board and HUD.
func (g *Game) checkScreenSize() {
	if g.engine == nil {
		g.tooSmall = false
		return
	}
	w, h := g.boardSize()
	g.tooSmall = g.rt.ScreenW < w+4 || g.rt.ScreenH < h+hudHeight+3
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.engine == nil {
		g.renderHalted(dst)
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	g.renderLinks(dst)
	g.renderDots(dst)
	g.renderCursor(dst)
	g.renderOverlays(dst)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.rt.ScreenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHalted shows why no board could be built.
func (g *Game) renderHalted(dst *core.Screen) {
	y := g.rt.ScreenH / 2
	dst.DrawTextCenteredColored(y-1, "BOARD HALTED", core.ColorAlert)
	if g.err != nil {
		dst.DrawTextCentered(y, truncate(g.err.Error(), g.rt.ScreenW-2))
	}
	dst.DrawTextCentered(y+1, "Press R to restart")
}

// renderHUD draws title, score, goals and the chain indicator.
func (g *Game) renderHUD(dst *core.Screen) {
	w, _ := g.boardSize()
	ox, _ := g.origin()
	left := core.Min(ox, core.Max((g.rt.ScreenW-40)/2, 0))
	right := core.Max(ox+w, left+40)

	var title string
	if g.mode == ModeCampaign {
		title = fmt.Sprintf("DOTS  %d/%d  %s", g.levelIndex+1, len(g.campaign), g.level.Name)
	} else {
		title = "DOTS  Endless"
	}
	dst.DrawTextCenteredColored(0, title, core.ColorWhite)

	dst.DrawText(left, 1, fmt.Sprintf("Score: %d", g.score))

	var info string
	if g.mode == ModeCampaign {
		info = fmt.Sprintf("Moves: %d  Target: %d/%d", g.MovesLeft(), g.levelScore, g.level.Target)
		if g.level.Squares > 0 {
			info += fmt.Sprintf("  Squares: %d/%d", g.levelSquares, g.level.Squares)
		}
	} else {
		info = fmt.Sprintf("Moves: %d  Colors: %d", g.moves, g.colors)
	}
	dst.DrawText(core.Max(right-utf8.RuneCountInString(info), left), 1, info)

	switch {
	case g.engine.Dragging():
		path := g.engine.Path()
		chain := fmt.Sprintf("Chain: %d", len(path))
		color := dotColor(path[0].Color)
		if g.engine.Loop() {
			chain += "  SQUARE!"
			color = core.ColorHighlight
		}
		dst.DrawTextColored(left, 2, chain, color)
	case g.engine.Phase() == rules.PhaseShuffling:
		dst.DrawTextColored(left, 2, "No moves left, shuffling...", core.ColorDim)
	case g.lastClear > 0:
		last := fmt.Sprintf("Cleared %d", g.lastClear)
		if g.lastWasSquare {
			last += " with a square"
		}
		dst.DrawTextColored(left, 2, last, core.ColorDim)
	}
}

// renderLinks draws the connecting line along the drag path.
func (g *Game) renderLinks(dst *core.Screen) {
	path := g.engine.Path()
	if len(path) < 2 {
		return
	}
	color := dotColor(path[0].Color)
	for i := 1; i < len(path); i++ {
		ax, ay := g.screenPos(path[i-1].Pos)
		bx, by := g.screenPos(path[i].Pos)
		if ay == by {
			for x := core.Min(ax, bx) + 1; x < core.Max(ax, bx); x++ {
				dst.SetColored(x, ay, glyphLinkH, color)
			}
			continue
		}
		for y := core.Min(ay, by) + 1; y < core.Max(ay, by); y++ {
			dst.SetColored(ax, y, glyphLinkV, color)
		}
	}
}

// renderDots draws every dot, fading cleared dots and moving dots in
// flight.
func (g *Game) renderDots(dst *core.Screen) {
	ox, oy := g.origin()

	for _, f := range g.anim.fading() {
		x, y := g.screenPos(f.cell.Pos)
		glyph := glyphDot
		switch {
		case f.progress > 0.66:
			glyph = glyphTiny
		case f.progress > 0.33:
			glyph = glyphSmall
		}
		dst.SetColored(x, y, glyph, dotColor(f.cell.Color))
	}

	inPath := make(map[rules.CellID]bool)
	for _, c := range g.engine.Path() {
		inPath[c.ID] = true
	}
	hinted := make(map[rules.Pos]bool, len(g.hint))
	for _, p := range g.hint {
		hinted[p] = true
	}
	blink := g.tick/8%2 == 0

	for _, c := range g.engine.Grid().Cells() {
		x, y := g.screenPos(c.Pos)
		if col, row, moving := g.anim.offset(c.ID); moving {
			x = ox + int(math.Round(float64(col*cellWidth)))
			y = oy + int(math.Round(float64(row*cellHeight)))
			if y < oy {
				continue
			}
		}

		glyph := glyphDot
		switch {
		case inPath[c.ID]:
			glyph = glyphPath
		case g.anim.preview.Has(c.Pos):
			glyph = glyphPreview
		case hinted[c.Pos] && blink:
			glyph = glyphHint
		}
		if p, growing := g.anim.growth(c.ID); growing {
			switch {
			case p < 0.33:
				glyph = glyphTiny
			case p < 0.66:
				glyph = glyphSmall
			}
		}
		dst.SetColored(x, y, glyph, dotColor(c.Color))
	}
}

// renderCursor brackets the keyboard cursor.
func (g *Game) renderCursor(dst *core.Screen) {
	if g.mouseDrag || g.gameOver || g.won {
		return
	}
	x, y := g.screenPos(g.cursor)
	dst.SetColored(x-1, y, '[', core.ColorHighlight)
	dst.SetColored(x+1, y, ']', core.ColorHighlight)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen) {
	board := g.boardRect()

	switch {
	case g.err != nil:
		g.drawOverlay(dst, board, core.ColorAlert, "BOARD HALTED",
			truncate(g.err.Error(), g.rt.ScreenW-6), "Press R to restart")
	case g.paused:
		g.drawOverlay(dst, board, core.ColorWhite, "PAUSED", "Press P to resume")
	case g.levelCleared:
		next := "Final level complete!"
		if g.levelIndex < len(g.campaign)-1 {
			next = fmt.Sprintf("Next: %s", g.campaign[g.levelIndex+1].Name)
		}
		g.drawOverlay(dst, board, core.ColorHighlight, "LEVEL CLEARED", next)
	case g.won:
		g.drawOverlay(dst, board, core.ColorHighlight, "CAMPAIGN COMPLETE!",
			fmt.Sprintf("Score: %d", g.score), "Press R to restart")
	case g.gameOver:
		g.drawOverlay(dst, board, core.ColorAlert, "OUT OF MOVES",
			fmt.Sprintf("Target %d, scored %d", g.level.Target, g.levelScore), "Press R to restart")
	}
}

// drawOverlay draws a text box centered over area.
func (g *Game) drawOverlay(dst *core.Screen, area core.Rect, color core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, utf8.RuneCountInString(line))
	}

	box := area.Centered(maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, color)

	inner := box.Inset(1)
	for i, line := range lines {
		x := inner.X + (inner.W-utf8.RuneCountInString(line))/2
		c := core.ColorDefault
		if i == 0 {
			c = color
		}
		dst.DrawTextColored(x, inner.Y+i, line, c)
	}
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
