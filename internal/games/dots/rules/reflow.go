package rules

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// Reflow removes cleared cells, lets the remaining ones fall, refills the
// board and repairs deadlocked boards by shuffling.
type Reflow struct {
	grid      *Grid
	rng       *rand.Rand
	strategy  SpawnStrategy
	palette   []Color
	pool      *pool
	presenter Presenter
	tasks     *taskGroup

	spawned int
}

func newReflow(grid *Grid, rng *rand.Rand, strategy SpawnStrategy, palette []Color, pool *pool, presenter Presenter, tasks *taskGroup) *Reflow {
	return &Reflow{
		grid:      grid,
		rng:       rng,
		strategy:  strategy,
		palette:   palette,
		pool:      pool,
		presenter: presenter,
		tasks:     tasks,
	}
}

// Populate fills every empty slot, bottom row first within each column.
func (r *Reflow) Populate() error {
	r.strategy.Reset()
	for col := 0; col < r.grid.Width(); col++ {
		for row := r.grid.Height() - 1; row >= 0; row-- {
			if r.grid.Get(col, row) != nil {
				continue
			}
			if err := r.spawn(col, row); err != nil {
				return err
			}
		}
	}
	return nil
}

// Remove empties every position in set, returns the cells to the pool and
// reports the affected columns in ascending order.
func (r *Reflow) Remove(set RemovalSet) []int {
	cols := mapset.New[int]()
	for _, p := range set.Positions() {
		c := r.grid.At(p)
		if c == nil {
			continue
		}
		r.grid.Set(p.Col, p.Row, nil)
		r.pool.release(c)
		cols.Put(p.Col)
	}

	out := make([]int, 0, cols.Size())
	cols.Each(func(col int) {
		out = append(out, col)
	})
	sort.Ints(out)
	return out
}

// DropColumn compacts a column toward the bottom and spawns new cells into
// the gap left at the top. Each surviving cell moves once, straight to its
// final slot.
func (r *Reflow) DropColumn(col int) error {
	shift := 0
	for row := r.grid.Height() - 1; row >= 0; row-- {
		c := r.grid.Get(col, row)
		if c == nil {
			shift++
			continue
		}
		if shift == 0 {
			continue
		}
		from := c.Pos
		r.grid.Set(col, row, nil)
		r.grid.Set(col, row+shift, c)
		r.tasks.add(r.presenter.CellMoved(c.ID, from, c.Pos))
	}

	for row := shift - 1; row >= 0; row-- {
		if err := r.spawn(col, row); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reflow) spawn(col, row int) error {
	color := r.strategy.Pick(r.rng, r.palette)
	c, err := r.pool.acquire(color)
	if err != nil {
		return fmt.Errorf("spawn at %v: %w", P(col, row), err)
	}
	r.grid.Set(col, row, c)
	r.spawned++
	r.tasks.add(r.presenter.CellSpawned(c.ID, c.Color, c.Pos))
	return nil
}

// IsBoardFilled returns true when no slot is empty.
func (r *Reflow) IsBoardFilled() bool {
	return r.grid.IsFilled()
}

// HasAnyValidMove reports whether some cell has a same-colored orthogonal
// neighbor. The board is walked breadth-first from every unvisited cell so
// boards with holes are covered too.
func (r *Reflow) HasAnyValidMove() bool {
	visited := mapset.New[Pos]()
	for _, start := range r.grid.Cells() {
		if visited.Has(start.Pos) {
			continue
		}
		visited.Put(start.Pos)
		queue := []*Cell{start}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			if len(r.grid.SameColorNeighbors(cur)) > 0 {
				return true
			}
			for _, n := range r.grid.Neighbors4(cur) {
				if !visited.Has(n.Pos) {
					visited.Put(n.Pos)
					queue = append(queue, n)
				}
			}
		}
	}
	return false
}

// Shuffle performs one pass of local swaps that keep the color multiset
// intact. For each cell C it looks for a differently colored neighbor N and
// a neighbor M of N that matches C's color, then swaps N and M so that C
// gains a matching neighbor. C, N and M are then frozen for the rest of the
// pass so later swaps cannot undo the match. It returns the number of swaps
// made.
func (r *Reflow) Shuffle() int {
	swapped := mapset.New[Pos]()
	swaps := 0
	for col := 0; col < r.grid.Width(); col++ {
		for row := 0; row < r.grid.Height(); row++ {
			c := r.grid.Get(col, row)
			if c == nil || swapped.Has(c.Pos) {
				continue
			}
			n, m := r.swapCandidates(c, swapped)
			if n == nil {
				continue
			}
			swapped.Put(c.Pos)
			swapped.Put(n.Pos)
			swapped.Put(m.Pos)
			r.swap(n, m)
			swaps++
		}
	}
	return swaps
}

func (r *Reflow) swapCandidates(c *Cell, swapped mapset.Set[Pos]) (*Cell, *Cell) {
	var diff []*Cell
	for _, n := range r.grid.Neighbors4(c) {
		if n.Color != c.Color && !swapped.Has(n.Pos) {
			diff = append(diff, n)
		}
	}
	for _, i := range r.rng.Perm(len(diff)) {
		n := diff[i]
		var match []*Cell
		for _, m := range r.grid.Neighbors4(n) {
			if m != c && m.Color == c.Color && !swapped.Has(m.Pos) {
				match = append(match, m)
			}
		}
		if len(match) > 0 {
			return n, match[r.rng.Intn(len(match))]
		}
	}
	return nil, nil
}

func (r *Reflow) swap(a, b *Cell) {
	pa, pb := a.Pos, b.Pos
	r.grid.Set(pb.Col, pb.Row, a)
	r.grid.Set(pa.Col, pa.Row, b)
	r.tasks.add(r.presenter.CellMoved(a.ID, pa, pb))
	r.tasks.add(r.presenter.CellMoved(b.ID, pb, pa))
}

// SetPalette replaces the colors used for future spawns.
func (r *Reflow) SetPalette(palette []Color) {
	r.palette = palette
}

// Spawned returns the number of cells spawned since creation.
func (r *Reflow) Spawned() int {
	return r.spawned
}
