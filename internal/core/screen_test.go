package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blank {
				t.Fatalf("new screen has %+v at (%d, %d), want a blank cell", c, x, y)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, '●', ColorRed)
	if got := s.GetCell(5, 5); got.Rune != '●' || got.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, want red dot", got)
	}

	s.Set(5, 5, 'X')
	if got := s.GetCell(5, 5); got.Rune != 'X' || got.Color != ColorDefault {
		t.Errorf("Set did not reset color: %+v", got)
	}

	// Out of bounds writes are ignored, reads return a blank.
	s.SetColored(-1, 0, 'A', ColorRed)
	s.SetColored(0, 100, 'A', ColorRed)
	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawRect(NewRect(0, 0, 4, 3), 'X')
	s.Clear()
	if got := s.String(); got != "    \n    \n    " {
		t.Errorf("after Clear String() = %q", got)
	}
}

func TestScreenDrawTextColored(t *testing.T) {
	s := NewScreen(12, 2)
	s.DrawTextColored(1, 0, "score", ColorYellow)

	if got := s.Row(0); got != " score      " {
		t.Errorf("Row(0) = %q", got)
	}
	for x := 1; x <= 5; x++ {
		if c := s.GetCell(x, 0); c.Color != ColorYellow {
			t.Errorf("cell %d color = %v, want yellow", x, c.Color)
		}
	}
}

func TestScreenDrawTextCenteredCountsRunes(t *testing.T) {
	s := NewScreen(9, 1)
	s.DrawTextCentered(0, "●●●")
	if got := s.Row(0); got != "   ●●●   " {
		t.Errorf("Row(0) = %q, want the dots centered", got)
	}
}

func TestScreenDrawTextClips(t *testing.T) {
	s := NewScreen(5, 1)
	s.DrawText(3, 0, "abcdef")
	if got := s.Row(0); got != "   ab" {
		t.Errorf("Row(0) = %q, want clipped text", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(NewRect(0, 0, 6, 4), ColorGray)

	want := []string{
		"┌────┐",
		"│    │",
		"│    │",
		"└────┘",
	}
	if got := s.String(); got != strings.Join(want, "\n") {
		t.Errorf("DrawBox produced:\n%s", got)
	}
	if c := s.GetCell(0, 0); c.Color != ColorGray {
		t.Errorf("corner color = %v, want gray", c.Color)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 4)
	s.Set(0, 0, 'X')
	s.Resize(8, 2)
	if s.Width() != 8 || s.Height() != 2 {
		t.Fatalf("size = %dx%d, want 8x2", s.Width(), s.Height())
	}
	if s.Get(0, 0) != ' ' {
		t.Errorf("Resize kept old content")
	}
}

func TestScreenRowOutOfRange(t *testing.T) {
	s := NewScreen(3, 1)
	if got := s.Row(5); got != "   " {
		t.Errorf("Row(5) = %q, want blanks", got)
	}
}
