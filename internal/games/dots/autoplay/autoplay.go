// Package autoplay drives a rules.Engine without a player. It backs the
// sim command and soak tests of the reflow cycle.
package autoplay

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/tui-dots/internal/games/dots/rules"
)

// ErrDeadlocked is returned when the engine goes idle on a board with no
// valid move.
var ErrDeadlocked = errors.New("autoplay: idle board has no valid move")

// Move is a planned drag.
type Move struct {
	Path   []rules.Pos
	Square bool // the path closes a 2x2 loop
}

// Plan picks a drag for g. It prefers a 2x2 square and otherwise takes the
// longest greedy walk over same-colored neighbors. It reports false when no
// two adjacent dots share a color.
func Plan(g *rules.Grid) (Move, bool) {
	if m, ok := findSquare(g); ok {
		return m, true
	}

	var best []rules.Pos
	for _, c := range g.Cells() {
		if p := walk(g, c); len(p) > len(best) {
			best = p
		}
	}
	if len(best) < 2 {
		return Move{}, false
	}
	return Move{Path: best}, true
}

func findSquare(g *rules.Grid) (Move, bool) {
	for col := 0; col < g.Width()-1; col++ {
		for row := 0; row < g.Height()-1; row++ {
			a := g.Get(col, row)
			b := g.Get(col+1, row)
			c := g.Get(col+1, row+1)
			d := g.Get(col, row+1)
			if a == nil || b == nil || c == nil || d == nil {
				continue
			}
			if a.Color != b.Color || a.Color != c.Color || a.Color != d.Color {
				continue
			}
			return Move{
				Path:   []rules.Pos{a.Pos, b.Pos, c.Pos, d.Pos, a.Pos},
				Square: true,
			}, true
		}
	}
	return Move{}, false
}

// walk extends a path from start, always stepping to the unvisited
// neighbor with the fewest onward options.
func walk(g *rules.Grid, start *rules.Cell) []rules.Pos {
	visited := mapset.New[rules.Pos]()
	visited.Put(start.Pos)
	path := []rules.Pos{start.Pos}

	cur := start
	for {
		var next *rules.Cell
		bestDegree := 5
		for _, n := range g.SameColorNeighbors(cur) {
			if visited.Has(n.Pos) {
				continue
			}
			degree := 0
			for _, nn := range g.SameColorNeighbors(n) {
				if !visited.Has(nn.Pos) {
					degree++
				}
			}
			if degree < bestDegree {
				next, bestDegree = n, degree
			}
		}
		if next == nil {
			return path
		}
		visited.Put(next.Pos)
		path = append(path, next.Pos)
		cur = next
	}
}

// Report summarizes an autoplay run.
type Report struct {
	Seed   int64
	Moves  int
	Score  int
	Stats  rules.Stats
	Halted error // fatal engine error, nil when the run completed
}

// Player plays moves on an engine.
type Player struct {
	engine *rules.Engine
	logger *log.Logger
}

// NewPlayer creates a player for e. A nil logger discards output.
func NewPlayer(e *rules.Engine, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{engine: e, logger: logger}
}

// Step drags one planned move and waits for the engine to settle.
// It returns the removed cell count.
func (p *Player) Step() (int, error) {
	e := p.engine
	if err := p.settle(); err != nil {
		return 0, err
	}
	if !e.HasAnyValidMove() {
		return 0, ErrDeadlocked
	}

	move, ok := Plan(e.Grid())
	if !ok {
		return 0, ErrDeadlocked
	}
	if !e.OnDragStart(move.Path[0]) {
		return 0, fmt.Errorf("autoplay: drag start at %v refused", move.Path[0])
	}
	for _, pos := range move.Path[1:] {
		if !e.OnDragEnter(pos) {
			e.CancelDrag()
			return 0, fmt.Errorf("autoplay: drag enter at %v refused", pos)
		}
	}

	set, err := e.OnDragEnd()
	if err != nil {
		return set.Len(), err
	}
	p.logger.Debug("move", "len", len(move.Path), "square", move.Square, "removed", set.Len())
	return set.Len(), p.settle()
}

// settle runs Update until the engine is idle.
func (p *Player) settle() error {
	for p.engine.Busy() {
		if err := p.engine.Update(); err != nil {
			return err
		}
		if p.engine.Busy() && p.engine.Pending() > 0 {
			return errors.New("autoplay: engine is waiting on presentation tasks")
		}
	}
	return p.engine.Err()
}

// Run plays up to moves moves on a fresh engine built from cfg. It stops
// early when ctx is done. Every idle board must offer a valid move;
// otherwise Run returns ErrDeadlocked.
func Run(ctx context.Context, cfg rules.Config, moves int, logger *log.Logger) (Report, error) {
	r := Report{Seed: cfg.Seed}
	opts := []rules.Option{}
	if logger != nil {
		opts = append(opts, rules.WithLogger(logger))
	}
	e, err := rules.New(cfg, opts...)
	if errors.Is(err, rules.ErrInvalidConfig) {
		return r, err
	}
	if err != nil {
		r.Halted = err
		return r, nil
	}

	player := NewPlayer(e, logger)
	for r.Moves < moves {
		if err := ctx.Err(); err != nil {
			return r, err
		}
		removed, err := player.Step()
		r.Stats = e.Stats()
		if errors.Is(err, ErrDeadlocked) {
			return r, fmt.Errorf("seed %d move %d: %w\n%s", cfg.Seed, r.Moves, err, e.Grid())
		}
		if err != nil {
			r.Halted = err
			return r, nil
		}
		r.Moves++
		r.Score += removed
	}
	r.Stats = e.Stats()
	return r, nil
}
