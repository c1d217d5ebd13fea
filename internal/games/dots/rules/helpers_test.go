package rules

import (
	"testing"
)

// fixture is a 4x4 board used by the drag scenarios. Rows are listed top
// first; characters are columns.
var fixture = []string{
	"RRBR",
	"RRBB",
	"BBBR",
	"RBRB",
}

var checkerboard = []string{
	"RBRB",
	"BRBR",
	"RBRB",
	"BRBR",
}

func mustGrid(t *testing.T, rows ...string) *Grid {
	t.Helper()
	g, err := ParseGrid(rows)
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}
	return g
}

type board struct {
	grid     *Grid
	graph    *Graph
	resolver *Resolver
	tracker  *Tracker
	previews []RemovalSet
}

func newBoard(t *testing.T, rows ...string) *board {
	t.Helper()
	b := &board{grid: mustGrid(t, rows...)}
	b.graph = NewGraph(b.grid)
	b.resolver = NewResolver(b.grid, b.graph)
	b.tracker = NewTracker(b.grid, b.graph, b.resolver)
	b.tracker.OnPreview = func(s RemovalSet) {
		b.previews = append(b.previews, s)
	}
	return b
}

func (b *board) cell(col, row int) *Cell {
	return b.grid.Get(col, row)
}

// drag begins at the first position and enters the rest, failing the test
// on any rejected step.
func (b *board) drag(t *testing.T, ps ...Pos) {
	t.Helper()
	if !b.tracker.Begin(b.grid.At(ps[0])) {
		t.Fatalf("Begin(%v) rejected", ps[0])
	}
	for _, p := range ps[1:] {
		if !b.tracker.Enter(b.grid.At(p)) {
			t.Fatalf("Enter(%v) rejected", p)
		}
	}
}

func positionsOf(cells []*Cell) []Pos {
	out := make([]Pos, len(cells))
	for i, c := range cells {
		out[i] = c.Pos
	}
	return out
}

func setOf(ps ...Pos) map[Pos]bool {
	m := make(map[Pos]bool, len(ps))
	for _, p := range ps {
		m[p] = true
	}
	return m
}

func sameSet(t *testing.T, got RemovalSet, want map[Pos]bool) {
	t.Helper()
	if got.Len() != len(want) {
		t.Errorf("removal set has %d positions %v, want %d", got.Len(), got.Positions(), len(want))
	}
	for p := range want {
		if !got.Has(p) {
			t.Errorf("removal set missing %v", p)
		}
	}
}

// task is a presentation effect finished by the test.
type task struct {
	done bool
}

func (t *task) Done() bool { return t.done }

type event struct {
	kind  string
	id    CellID
	from  Pos
	to    Pos
	color Color
}

// recorder logs every presenter call. With manual set, it returns tasks
// that stay pending until finish is called.
type recorder struct {
	manual   bool
	events   []event
	previews []RemovalSet
	finals   []RemovalSet
	pending  []*task
}

func (r *recorder) newTask() Task {
	if !r.manual {
		return nil
	}
	tk := &task{}
	r.pending = append(r.pending, tk)
	return tk
}

func (r *recorder) PreviewRemovalSet(set RemovalSet) {
	r.previews = append(r.previews, set)
}

func (r *recorder) FinalRemovalSet(set RemovalSet) Task {
	r.finals = append(r.finals, set)
	return r.newTask()
}

func (r *recorder) CellMoved(id CellID, from, to Pos) Task {
	r.events = append(r.events, event{kind: "move", id: id, from: from, to: to})
	return r.newTask()
}

func (r *recorder) CellSpawned(id CellID, color Color, at Pos) Task {
	r.events = append(r.events, event{kind: "spawn", id: id, to: at, color: color})
	return r.newTask()
}

func (r *recorder) finish() {
	for _, tk := range r.pending {
		tk.done = true
	}
	r.pending = nil
}

func (r *recorder) count(kind string) int {
	n := 0
	for _, ev := range r.events {
		if ev.kind == kind {
			n++
		}
	}
	return n
}

// settle finishes presentation tasks until the engine is idle.
func settle(t *testing.T, e *Engine, r *recorder) {
	t.Helper()
	for i := 0; e.Busy(); i++ {
		if i > 100 {
			t.Fatalf("engine still busy in phase %v", e.Phase())
		}
		r.finish()
		if err := e.Update(); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
}

// findMove returns two adjacent same-colored cells, or false.
func findMove(g *Grid) (Pos, Pos, bool) {
	for _, c := range g.Cells() {
		if ns := g.SameColorNeighbors(c); len(ns) > 0 {
			return c.Pos, ns[0].Pos, true
		}
	}
	return Pos{}, Pos{}, false
}
