package rules

// Task is an in-flight presentation effect. A nil Task is already done.
type Task interface {
	Done() bool
}

// Presenter receives board events so they can be shown to the player.
// Returned tasks gate the engine: it stays busy until all of them are done.
type Presenter interface {
	// PreviewRemovalSet shows what a closed loop would clear. An empty set
	// withdraws the preview.
	PreviewRemovalSet(set RemovalSet)
	// FinalRemovalSet is called before the cells in set leave the board.
	FinalRemovalSet(set RemovalSet) Task
	// CellMoved reports a cell falling or being swapped.
	CellMoved(id CellID, from, to Pos) Task
	// CellSpawned reports a new cell entering the board.
	CellSpawned(id CellID, color Color, at Pos) Task
}

// NopPresenter completes every effect immediately.
type NopPresenter struct{}

func (NopPresenter) PreviewRemovalSet(RemovalSet) {}
func (NopPresenter) FinalRemovalSet(RemovalSet) Task { return nil }
func (NopPresenter) CellMoved(CellID, Pos, Pos) Task { return nil }
func (NopPresenter) CellSpawned(CellID, Color, Pos) Task { return nil }

// taskGroup tracks the tasks issued during one phase.
type taskGroup struct {
	tasks []Task
}

func (g *taskGroup) add(t Task) {
	if t != nil {
		g.tasks = append(g.tasks, t)
	}
}

// done drops finished tasks and reports whether none remain.
func (g *taskGroup) done() bool {
	pending := g.tasks[:0]
	for _, t := range g.tasks {
		if !t.Done() {
			pending = append(pending, t)
		}
	}
	clear(g.tasks[len(pending):])
	g.tasks = pending
	return len(g.tasks) == 0
}

func (g *taskGroup) len() int {
	return len(g.tasks)
}
