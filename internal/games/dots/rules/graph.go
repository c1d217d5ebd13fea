package rules

import "github.com/zyedidia/generic/mapset"

// Graph records the line segments the player has drawn during the current
// drag. Edges are undirected and keyed by the grid's linear index.
type Graph struct {
	grid *Grid
	adj  map[int]mapset.Set[int]
}

// NewGraph creates an empty graph over the given grid.
func NewGraph(grid *Grid) *Graph {
	return &Graph{
		grid: grid,
		adj:  make(map[int]mapset.Set[int]),
	}
}

// AddEdge joins a and b in both directions. It returns false and does
// nothing unless a and b are orthogonal neighbors of the same color.
// Adding an existing edge is a no-op that returns true.
func (g *Graph) AddEdge(a, b *Cell) bool {
	if a == nil || b == nil || a.Color != b.Color || !a.Pos.Adjacent(b.Pos) {
		return false
	}
	ia, ib := g.grid.Index(a.Pos), g.grid.Index(b.Pos)
	g.link(ia, ib)
	g.link(ib, ia)
	return true
}

func (g *Graph) link(from, to int) {
	set, ok := g.adj[from]
	if !ok {
		set = mapset.New[int]()
		g.adj[from] = set
	}
	set.Put(to)
}

// RemoveEdge deletes the edge between a and b in both directions.
func (g *Graph) RemoveEdge(a, b *Cell) {
	if a == nil || b == nil {
		return
	}
	ia, ib := g.grid.Index(a.Pos), g.grid.Index(b.Pos)
	g.unlink(ia, ib)
	g.unlink(ib, ia)
}

func (g *Graph) unlink(from, to int) {
	set, ok := g.adj[from]
	if !ok {
		return
	}
	set.Remove(to)
	if set.Size() == 0 {
		delete(g.adj, from)
	}
}

// ContainsEdge reports whether a and b are joined in both directions.
func (g *Graph) ContainsEdge(a, b *Cell) bool {
	if a == nil || b == nil {
		return false
	}
	ia, ib := g.grid.Index(a.Pos), g.grid.Index(b.Pos)
	return g.adj[ia].Has(ib) && g.adj[ib].Has(ia)
}

// Degree returns the number of edges joining c to same-colored neighbors.
func (g *Graph) Degree(c *Cell) int {
	n := 0
	for _, nb := range g.grid.SameColorNeighbors(c) {
		if g.ContainsEdge(c, nb) {
			n++
		}
	}
	return n
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, set := range g.adj {
		n += set.Size()
	}
	return n / 2
}

// Clear removes every edge.
func (g *Graph) Clear() {
	clear(g.adj)
}
