package rules

import (
	"fmt"
	"strings"
)

// Pos is a board position. Row 0 is the top row; gravity pulls toward the
// last row.
type Pos struct {
	Col int
	Row int
}

// P is shorthand for Pos{Col: col, Row: row}.
func P(col, row int) Pos {
	return Pos{Col: col, Row: row}
}

// String returns "(col,row)".
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Col, p.Row)
}

// Adjacent reports whether o is one of the four orthogonal neighbors of p.
func (p Pos) Adjacent(o Pos) bool {
	dc := abs(p.Col - o.Col)
	dr := abs(p.Row - o.Row)
	return dc+dr == 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// CellID identifies one lifecycle of a dot, from spawn to removal.
type CellID uint64

// Cell is a dot on the board.
type Cell struct {
	ID    CellID
	Pos   Pos
	Color Color
}

// Grid is the board: a width x height array of optional cells.
// Slots are stored column-major: index = col*height + row.
type Grid struct {
	width  int
	height int
	cells  []*Cell
}

// NewGrid creates an empty grid.
func NewGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]*Cell, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds returns true if the position lies on the board.
func (g *Grid) InBounds(p Pos) bool {
	return p.Col >= 0 && p.Col < g.width && p.Row >= 0 && p.Row < g.height
}

// Index returns the linear index of a position. The result is unique for
// every in-bounds position, including on non-square boards.
func (g *Grid) Index(p Pos) int {
	return p.Col*g.height + p.Row
}

// Get returns the cell at (col, row), or nil when the slot is empty or out
// of range.
func (g *Grid) Get(col, row int) *Cell {
	return g.At(P(col, row))
}

// At returns the cell at p, or nil when the slot is empty or out of range.
func (g *Grid) At(p Pos) *Cell {
	if !g.InBounds(p) {
		return nil
	}
	return g.cells[g.Index(p)]
}

// Set places c at (col, row) and updates its position. A nil cell empties
// the slot. Out-of-range writes are ignored.
func (g *Grid) Set(col, row int, c *Cell) {
	p := P(col, row)
	if !g.InBounds(p) {
		return
	}
	if c != nil {
		c.Pos = p
	}
	g.cells[g.Index(p)] = c
}

// Neighbors4 returns the present orthogonal neighbors of c in the order
// up, down, left, right.
func (g *Grid) Neighbors4(c *Cell) []*Cell {
	if c == nil {
		return nil
	}
	out := make([]*Cell, 0, 4)
	for _, d := range [4]Pos{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
		if n := g.Get(c.Pos.Col+d.Col, c.Pos.Row+d.Row); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// SameColorNeighbors returns the orthogonal neighbors sharing c's color.
func (g *Grid) SameColorNeighbors(c *Cell) []*Cell {
	var out []*Cell
	for _, n := range g.Neighbors4(c) {
		if n.Color == c.Color {
			out = append(out, n)
		}
	}
	return out
}

// CellsWithColor returns every present cell of the given color, scanned
// column by column.
func (g *Grid) CellsWithColor(color Color) []*Cell {
	var out []*Cell
	for _, c := range g.cells {
		if c != nil && c.Color == color {
			out = append(out, c)
		}
	}
	return out
}

// Cells returns every present cell, scanned column by column.
func (g *Grid) Cells() []*Cell {
	out := make([]*Cell, 0, len(g.cells))
	for _, c := range g.cells {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Count returns the number of present cells.
func (g *Grid) Count() int {
	n := 0
	for _, c := range g.cells {
		if c != nil {
			n++
		}
	}
	return n
}

// IsFilled returns true when every slot holds a cell.
func (g *Grid) IsFilled() bool {
	return g.Count() == len(g.cells)
}

// ColorCounts returns how many cells of each color are on the board.
func (g *Grid) ColorCounts() map[Color]int {
	counts := make(map[Color]int)
	for _, c := range g.cells {
		if c != nil {
			counts[c.Color]++
		}
	}
	return counts
}

// String renders the board as rows of color characters, top row first.
// Empty slots are shown as '.'.
func (g *Grid) String() string {
	var sb strings.Builder
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			if c := g.Get(col, row); c != nil {
				sb.WriteRune(c.Color.Char())
			} else {
				sb.WriteByte('.')
			}
		}
		if row < g.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// ParseGrid builds a grid from layout rows, top row first. Each character is
// a color letter (see Color.Char) or '.' for an empty slot. Cells receive
// sequential IDs starting at 1 in column-major order.
func ParseGrid(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("layout has no rows")
	}
	width := len(rows[0])
	if width == 0 {
		return nil, fmt.Errorf("layout row 0 is empty")
	}
	for i, r := range rows {
		if len(r) != width {
			return nil, fmt.Errorf("layout row %d has width %d, want %d", i, len(r), width)
		}
	}

	g := NewGrid(width, len(rows))
	var id CellID
	for col := 0; col < width; col++ {
		for row, r := range rows {
			ch := r[col]
			if ch == '.' {
				continue
			}
			color, ok := ParseColor(string(ch))
			if !ok {
				return nil, fmt.Errorf("layout row %d col %d: unknown color %q", row, col, ch)
			}
			id++
			g.Set(col, row, &Cell{ID: id, Color: color})
		}
	}
	return g, nil
}

// MaxID returns the largest cell ID on the board.
func (g *Grid) MaxID() CellID {
	var top CellID
	for _, c := range g.cells {
		if c != nil && c.ID > top {
			top = c.ID
		}
	}
	return top
}
