package rules

// Tracker follows a single drag gesture. It keeps the ordered path of
// visited cells, mirrors each segment in the Graph, and remembers the cells
// at which loops were closed.
//
// A cell may appear in the path more than once only when it is re-entered
// through a fresh edge, which closes a loop. A loop stays closed until its
// anchor cell is left with at most one edge.
type Tracker struct {
	grid     *Grid
	graph    *Graph
	resolver *Resolver

	dragging bool
	path     []*Cell
	anchors  []*Cell // cells at which a loop was closed, oldest first

	// OnPreview, when set, receives the prospective removal set whenever a
	// loop is closed, extended, retracted or released. A released loop is reported
	// with an empty set.
	OnPreview func(RemovalSet)
}

// NewTracker creates an idle tracker.
func NewTracker(grid *Grid, graph *Graph, resolver *Resolver) *Tracker {
	return &Tracker{
		grid:     grid,
		graph:    graph,
		resolver: resolver,
	}
}

// Dragging returns true between Begin and End.
func (t *Tracker) Dragging() bool { return t.dragging }

// Loop returns true while at least one loop is closed.
func (t *Tracker) Loop() bool { return len(t.anchors) > 0 }

// Anchor returns the cell at which the most recent loop was closed.
func (t *Tracker) Anchor() *Cell {
	if len(t.anchors) == 0 {
		return nil
	}
	return t.anchors[len(t.anchors)-1]
}

// Path returns a copy of the current path.
func (t *Tracker) Path() []*Cell {
	out := make([]*Cell, len(t.path))
	copy(out, t.path)
	return out
}

// Len returns the number of entries in the path, counting loop closures.
func (t *Tracker) Len() int { return len(t.path) }

// Last returns the most recently added cell, or nil when idle.
func (t *Tracker) Last() *Cell {
	if len(t.path) == 0 {
		return nil
	}
	return t.path[len(t.path)-1]
}

// Begin starts a drag at c. It fails if a drag is already in progress or c
// is nil.
func (t *Tracker) Begin(c *Cell) bool {
	if t.dragging || c == nil {
		return false
	}
	t.dragging = true
	t.path = append(t.path[:0], c)
	t.anchors = t.anchors[:0]
	return true
}

// Enter handles the pointer moving onto c: stepping back onto the previous
// cell retracts, anything else attempts to extend.
func (t *Tracker) Enter(c *Cell) bool {
	if !t.dragging || c == nil || c == t.Last() {
		return false
	}
	if len(t.path) >= 2 && c == t.path[len(t.path)-2] {
		return t.Retract(c)
	}
	return t.Extend(c)
}

// Extend appends c to the path. It succeeds only when c is a same-colored
// orthogonal neighbor of the last cell and the two are not yet joined.
func (t *Tracker) Extend(c *Cell) bool {
	last := t.Last()
	if !t.dragging || c == nil || last == nil || c == last {
		return false
	}
	if c.Color != last.Color || !c.Pos.Adjacent(last.Pos) {
		return false
	}
	if t.graph.ContainsEdge(last, c) {
		return false
	}
	if !t.graph.AddEdge(last, c) {
		return false
	}
	t.path = append(t.path, c)

	if t.graph.Degree(c) > 1 {
		t.anchors = append(t.anchors, c)
	}
	if t.Loop() {
		t.preview()
	}
	return true
}

// Retract removes the last cell when c is the one before it and the two are
// joined. The most recent anchor is released once its cell has at most one
// edge left, falling back to any older anchor.
func (t *Tracker) Retract(c *Cell) bool {
	if !t.dragging || c == nil || len(t.path) < 2 {
		return false
	}
	last := t.path[len(t.path)-1]
	if c != t.path[len(t.path)-2] || !t.graph.ContainsEdge(last, c) {
		return false
	}
	wasLoop := t.Loop()

	t.graph.RemoveEdge(last, c)
	t.path = t.path[:len(t.path)-1]

	for n := len(t.anchors); n > 0 && t.graph.Degree(t.anchors[n-1]) <= 1; n-- {
		t.anchors = t.anchors[:n-1]
	}
	if wasLoop {
		t.preview()
	}
	return true
}

// End finishes the drag, resolves the path into a removal set and clears
// the graph. Calling End while idle returns an empty set and changes
// nothing.
func (t *Tracker) End() RemovalSet {
	if !t.dragging {
		return NewRemovalSet()
	}
	set := t.resolver.Resolve(t.path, t.Loop())

	t.graph.Clear()
	t.dragging = false
	t.path = t.path[:0]
	t.anchors = t.anchors[:0]
	return set
}

// Cancel abandons the drag without resolving it.
func (t *Tracker) Cancel() {
	t.graph.Clear()
	t.dragging = false
	t.path = t.path[:0]
	t.anchors = t.anchors[:0]
}

func (t *Tracker) preview() {
	if t.OnPreview == nil {
		return
	}
	if !t.Loop() {
		t.OnPreview(NewRemovalSet())
		return
	}
	t.OnPreview(t.resolver.Resolve(t.path, true))
}
