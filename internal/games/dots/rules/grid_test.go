package rules

import "testing"

func TestParseGridRoundTrip(t *testing.T) {
	g := mustGrid(t, fixture...)
	if g.Width() != 4 || g.Height() != 4 {
		t.Fatalf("size = %dx%d, want 4x4", g.Width(), g.Height())
	}
	want := "RRBR\nRRBB\nBBBR\nRBRB"
	if got := g.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := g.Get(2, 3).Color; got != ColorRed {
		t.Errorf("(2,3) color = %v, want red", got)
	}
	if got := g.MaxID(); got != 16 {
		t.Errorf("MaxID() = %d, want 16", got)
	}
}

func TestParseGridErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"no rows", nil},
		{"empty row", []string{""}},
		{"ragged", []string{"RB", "R"}},
		{"unknown color", []string{"RX"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseGrid(tt.rows); err == nil {
				t.Errorf("ParseGrid(%q) succeeded, want error", tt.rows)
			}
		})
	}
}

func TestGridIndexUniqueOnNonSquareBoard(t *testing.T) {
	g := NewGrid(3, 5)
	seen := make(map[int]Pos)
	for col := 0; col < 3; col++ {
		for row := 0; row < 5; row++ {
			p := P(col, row)
			idx := g.Index(p)
			if idx < 0 || idx >= 15 {
				t.Errorf("Index(%v) = %d out of range", p, idx)
			}
			if other, ok := seen[idx]; ok {
				t.Errorf("Index(%v) = %d collides with %v", p, idx, other)
			}
			seen[idx] = p
		}
	}
}

func TestGridGetOutOfRange(t *testing.T) {
	g := mustGrid(t, fixture...)
	for _, p := range []Pos{{-1, 0}, {0, -1}, {4, 0}, {0, 4}} {
		if c := g.At(p); c != nil {
			t.Errorf("At(%v) = %v, want nil", p, c)
		}
	}
	g.Set(9, 9, &Cell{})
	if g.Count() != 16 {
		t.Errorf("out-of-range Set changed the board")
	}
}

func TestGridSetUpdatesPosition(t *testing.T) {
	g := NewGrid(2, 2)
	c := &Cell{ID: 7, Color: ColorGreen}
	g.Set(1, 0, c)
	if c.Pos != P(1, 0) {
		t.Errorf("Pos = %v, want (1,0)", c.Pos)
	}
	g.Set(1, 0, nil)
	if g.Get(1, 0) != nil {
		t.Errorf("slot not emptied")
	}
}

func TestNeighbors4(t *testing.T) {
	g := mustGrid(t, fixture...)
	tests := []struct {
		pos  Pos
		want int
	}{
		{P(0, 0), 2},
		{P(3, 3), 2},
		{P(1, 0), 3},
		{P(1, 1), 4},
	}
	for _, tt := range tests {
		if got := len(g.Neighbors4(g.At(tt.pos))); got != tt.want {
			t.Errorf("Neighbors4(%v) has %d cells, want %d", tt.pos, got, tt.want)
		}
	}
	if got := g.Neighbors4(nil); got != nil {
		t.Errorf("Neighbors4(nil) = %v, want nil", got)
	}
}

func TestSameColorNeighbors(t *testing.T) {
	g := mustGrid(t, fixture...)
	// (2,2) is blue with blue above and to the left, red below and right.
	got := positionsOf(g.SameColorNeighbors(g.Get(2, 2)))
	want := setOf(P(2, 1), P(1, 2))
	if len(got) != len(want) {
		t.Fatalf("SameColorNeighbors = %v, want %v", got, want)
	}
	for _, p := range got {
		if !want[p] {
			t.Errorf("unexpected neighbor %v", p)
		}
	}
}

func TestCellsWithColor(t *testing.T) {
	g := mustGrid(t, fixture...)
	if got := len(g.CellsWithColor(ColorRed)); got != 8 {
		t.Errorf("red cells = %d, want 8", got)
	}
	if got := len(g.CellsWithColor(ColorGreen)); got != 0 {
		t.Errorf("green cells = %d, want 0", got)
	}
	counts := g.ColorCounts()
	if counts[ColorRed]+counts[ColorBlue] != 16 {
		t.Errorf("ColorCounts = %v, want 16 cells", counts)
	}
}

func TestIsFilled(t *testing.T) {
	if g := mustGrid(t, "RB", "BR"); !g.IsFilled() {
		t.Errorf("full board reported as not filled")
	}
	if g := mustGrid(t, "R.", "BR"); g.IsFilled() {
		t.Errorf("board with a hole reported as filled")
	}
}

func TestParsePalette(t *testing.T) {
	palette, err := ParsePalette([]string{"red", "B", "green"})
	if err != nil {
		t.Fatalf("ParsePalette: %v", err)
	}
	want := []Color{ColorRed, ColorBlue, ColorGreen}
	for i := range want {
		if palette[i] != want[i] {
			t.Errorf("palette[%d] = %v, want %v", i, palette[i], want[i])
		}
	}
	if _, err := ParsePalette([]string{"red", "r"}); err == nil {
		t.Errorf("duplicate color accepted")
	}
	if _, err := ParsePalette([]string{"teal"}); err == nil {
		t.Errorf("unknown color accepted")
	}
}
