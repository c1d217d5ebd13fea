package dots

import (
	"github.com/vovakirdan/tui-dots/internal/core"
	"github.com/vovakirdan/tui-dots/internal/games/dots/rules"
)

// hintSeconds is how long a hint stays on the board.
const hintSeconds = 3

// handleInput applies one frame of pointer and keyboard input.
func (g *Game) handleInput(in core.InputFrame) {
	for _, ev := range in.Pointer {
		g.handlePointer(ev)
	}

	switch {
	case in.Has(core.ActionUp):
		g.moveCursor(0, -1)
	case in.Has(core.ActionDown):
		g.moveCursor(0, 1)
	case in.Has(core.ActionLeft):
		g.moveCursor(-1, 0)
	case in.Has(core.ActionRight):
		g.moveCursor(1, 0)
	}

	if in.Has(core.ActionSelect) {
		g.toggleKeyDrag()
	}
	if in.Has(core.ActionBack) {
		g.cancelDrag()
	}
	if in.Has(core.ActionPop) {
		g.pop(g.cursor)
	}
	if in.Has(core.ActionHint) {
		g.showHint()
	}
}

// handlePointer maps a mouse event onto the board.
func (g *Game) handlePointer(ev core.PointerEvent) {
	pos, onBoard := g.cellAt(ev.X, ev.Y)

	switch ev.Kind {
	case core.PointerPress:
		if ev.Button == core.ButtonSecondary {
			if onBoard {
				g.pop(pos)
			}
			return
		}
		if !onBoard || g.engine.Dragging() {
			return
		}
		if g.engine.OnDragStart(pos) {
			g.mouseDrag, g.keyDrag = true, false
			g.cursor = pos
		}
	case core.PointerMove:
		if g.mouseDrag && onBoard {
			g.enter(pos)
		}
	case core.PointerRelease:
		if g.mouseDrag {
			g.release()
		}
	}
}

// enter moves the drag onto pos unless it is already the path's end.
func (g *Game) enter(pos rules.Pos) bool {
	path := g.engine.Path()
	if len(path) > 0 && path[len(path)-1].Pos == pos {
		return false
	}
	if g.engine.OnDragEnter(pos) {
		g.cursor = pos
		return true
	}
	return false
}

// moveCursor moves the keyboard cursor. During a keyboard drag the cursor
// only moves when the drag can follow it.
func (g *Game) moveCursor(dc, dr int) {
	grid := g.engine.Grid()
	next := rules.P(
		core.Clamp(g.cursor.Col+dc, 0, grid.Width()-1),
		core.Clamp(g.cursor.Row+dr, 0, grid.Height()-1),
	)
	if next == g.cursor {
		return
	}
	if g.keyDrag {
		g.enter(next)
		return
	}
	g.cursor = next
}

// toggleKeyDrag starts a keyboard drag at the cursor or releases it.
func (g *Game) toggleKeyDrag() {
	if g.keyDrag {
		g.release()
		return
	}
	if g.engine.Dragging() {
		return
	}
	if g.engine.OnDragStart(g.cursor) {
		g.keyDrag = true
	}
}

// release ends the current drag and scores whatever it clears.
func (g *Game) release() {
	square := g.engine.Loop()
	g.keyDrag, g.mouseDrag = false, false
	set, err := g.engine.OnDragEnd()
	if !set.Empty() {
		g.record(set, square, 1)
	}
	if err != nil {
		g.halt(err)
	}
}

// cancelDrag abandons the current drag.
func (g *Game) cancelDrag() {
	g.keyDrag, g.mouseDrag = false, false
	g.engine.CancelDrag()
}

// pop clears a single dot when the config allows it.
func (g *Game) pop(pos rules.Pos) {
	if !g.cfg.Gameplay.AllowPop {
		return
	}
	set, err := g.engine.Pop(pos)
	if !set.Empty() {
		cost := 0
		if g.mode == ModeCampaign {
			cost = g.cfg.Gameplay.PopCost
		}
		g.record(set, false, cost)
	}
	if err != nil {
		g.halt(err)
	}
}

// showHint highlights a playable pair for a few seconds.
func (g *Game) showHint() {
	if g.engine.Busy() {
		return
	}
	g.hint = findPair(g.engine.Grid())
	if g.hint == nil {
		return
	}
	rate := g.rt.TickRate
	if rate <= 0 {
		rate = core.DefaultConfig().TickRate
	}
	g.hintTicks = rate * hintSeconds
}

// findPair returns two adjacent same-colored positions, or nil.
func findPair(grid *rules.Grid) []rules.Pos {
	for _, c := range grid.Cells() {
		if n := grid.SameColorNeighbors(c); len(n) > 0 {
			return []rules.Pos{c.Pos, n[0].Pos}
		}
	}
	return nil
}
