package rules

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// RemovalSet is the set of positions cleared by one release.
// Use NewRemovalSet to create one; the zero value is read-only.
type RemovalSet struct {
	items mapset.Set[Pos]
}

// NewRemovalSet creates a set holding the given positions.
func NewRemovalSet(ps ...Pos) RemovalSet {
	return RemovalSet{items: mapset.Of(ps...)}
}

// Add inserts p.
func (s RemovalSet) Add(p Pos) { s.items.Put(p) }

// Has reports whether p is in the set.
func (s RemovalSet) Has(p Pos) bool { return s.items.Has(p) }

// Len returns the number of positions.
func (s RemovalSet) Len() int { return s.items.Size() }

// Empty returns true when nothing would be removed.
func (s RemovalSet) Empty() bool { return s.items.Size() == 0 }

// Positions returns the members ordered by column, then row.
func (s RemovalSet) Positions() []Pos {
	out := make([]Pos, 0, s.items.Size())
	s.items.Each(func(p Pos) {
		out = append(out, p)
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Col != out[j].Col {
			return out[i].Col < out[j].Col
		}
		return out[i].Row < out[j].Row
	})
	return out
}

// Resolver turns a finished path into the set of cells to clear.
type Resolver struct {
	grid  *Grid
	graph *Graph
}

// NewResolver creates a resolver reading the given grid and graph.
// The graph must still hold the path's edges when Resolve is called.
func NewResolver(grid *Grid, graph *Graph) *Resolver {
	return &Resolver{grid: grid, graph: graph}
}

// Resolve computes the removal set for a path.
//
// A plain path clears exactly its own cells. A closed loop clears every
// cell of the path's color on the board, plus every cell strictly inside
// the bounding rectangle of the loop's corners. Anything smaller than two
// cells clears nothing.
func (r *Resolver) Resolve(path []*Cell, loop bool) RemovalSet {
	set := NewRemovalSet()
	if len(path) <= 1 {
		return set
	}
	for _, c := range path {
		set.Add(c.Pos)
	}
	if loop {
		for _, c := range r.grid.CellsWithColor(path[0].Color) {
			set.Add(c.Pos)
		}
		for _, p := range r.Enclosed(r.Corners(path)) {
			set.Add(p)
		}
	}
	if set.Len() < 2 {
		return NewRemovalSet()
	}
	return set
}

// Corners returns the distinct path cells where the line turns: cells with
// at least two edges, one of them horizontal and one vertical.
func (r *Resolver) Corners(path []*Cell) []*Cell {
	seen := mapset.New[CellID]()
	var corners []*Cell
	for _, c := range path {
		if seen.Has(c.ID) {
			continue
		}
		seen.Put(c.ID)
		if r.graph.Degree(c) < 2 {
			continue
		}
		horizontal := r.joined(c, -1, 0) || r.joined(c, 1, 0)
		vertical := r.joined(c, 0, -1) || r.joined(c, 0, 1)
		if horizontal && vertical {
			corners = append(corners, c)
		}
	}
	return corners
}

func (r *Resolver) joined(c *Cell, dc, dr int) bool {
	n := r.grid.Get(c.Pos.Col+dc, c.Pos.Row+dr)
	return n != nil && r.graph.ContainsEdge(c, n)
}

// Enclosed returns the positions of present cells strictly inside the
// bounding rectangle of the given corners.
func (r *Resolver) Enclosed(corners []*Cell) []Pos {
	if len(corners) == 0 {
		return nil
	}
	minCol, maxCol := corners[0].Pos.Col, corners[0].Pos.Col
	minRow, maxRow := corners[0].Pos.Row, corners[0].Pos.Row
	for _, c := range corners[1:] {
		minCol = min(minCol, c.Pos.Col)
		maxCol = max(maxCol, c.Pos.Col)
		minRow = min(minRow, c.Pos.Row)
		maxRow = max(maxRow, c.Pos.Row)
	}

	var out []Pos
	for col := minCol + 1; col < maxCol; col++ {
		for row := minRow + 1; row < maxRow; row++ {
			if r.grid.Get(col, row) != nil {
				out = append(out, P(col, row))
			}
		}
	}
	return out
}
