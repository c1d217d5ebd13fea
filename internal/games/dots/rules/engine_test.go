package rules

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func newLayoutEngine(t *testing.T, rec *recorder, rows ...string) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Palette = []Color{ColorRed, ColorBlue}
	e, err := New(cfg, WithLayout(mustGrid(t, rows...)), WithPresenter(rec))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	settle(t, e, rec)
	return e
}

func TestNewPopulatesPlayableBoard(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		cfg := DefaultConfig()
		cfg.Seed = seed
		e, err := New(cfg)
		if err != nil {
			t.Fatalf("seed %d: New: %v", seed, err)
		}
		if e.Busy() {
			t.Errorf("seed %d: busy after New with instant presenter", seed)
		}
		if !e.Grid().IsFilled() {
			t.Errorf("seed %d: board not filled", seed)
		}
		if !e.HasAnyValidMove() {
			t.Errorf("seed %d: no valid move after New", seed)
		}
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"single cell", func(c *Config) { c.Width, c.Height = 1, 1 }},
		{"empty palette", func(c *Config) { c.Palette = nil }},
		{"bad color", func(c *Config) { c.Palette = []Color{ColorCount} }},
		{"negative passes", func(c *Config) { c.MaxShufflePasses = -1 }},
		{"negative pool", func(c *Config) { c.PoolSize = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("New() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestNewPoolTooSmall(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PoolSize = 10
	if _, err := New(cfg); !errors.Is(err, ErrPoolExhausted) {
		t.Errorf("New() error = %v, want ErrPoolExhausted", err)
	}
}

func TestNewShufflesDeadlockedLayout(t *testing.T) {
	rec := &recorder{}
	e := newLayoutEngine(t, rec, checkerboard...)
	if e.Stats().ShufflePasses == 0 {
		t.Errorf("deadlocked layout was not shuffled")
	}
	if !e.HasAnyValidMove() {
		t.Errorf("no valid move after initial shuffle:\n%s", e.Grid())
	}
}

func TestShuffleExhausted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxShufflePasses = 3
	_, err := New(cfg, WithLayout(mustGrid(t, "R", "B")))
	if !errors.Is(err, ErrShuffleExhausted) {
		t.Errorf("New() error = %v, want ErrShuffleExhausted", err)
	}
}

func TestHaltIsLogged(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&buf)
	l.SetLevel(log.ErrorLevel)

	cfg := DefaultConfig()
	cfg.MaxShufflePasses = 2
	if _, err := New(cfg, WithLayout(mustGrid(t, "R", "B")), WithLogger(l)); err == nil {
		t.Fatal("New() succeeded on an unrepairable layout")
	}
	out := buf.String()
	if !strings.Contains(out, "board halted") || !strings.Contains(out, "after 2 passes") {
		t.Errorf("log = %q, want a board halted error", out)
	}
}

func TestReleaseClearsAndRefills(t *testing.T) {
	rec := &recorder{}
	e := newLayoutEngine(t, rec, fixture...)
	ids := map[Pos]CellID{
		P(0, 0): e.Grid().Get(0, 0).ID,
		P(0, 1): e.Grid().Get(0, 1).ID,
		P(1, 1): e.Grid().Get(1, 1).ID,
	}

	for _, p := range []Pos{P(0, 0), P(0, 1), P(1, 1)} {
		if p == P(0, 0) {
			if !e.OnDragStart(p) {
				t.Fatalf("OnDragStart rejected")
			}
			continue
		}
		if !e.OnDragEnter(p) {
			t.Fatalf("OnDragEnter(%v) rejected", p)
		}
	}
	set, err := e.OnDragEnd()
	if err != nil {
		t.Fatalf("OnDragEnd: %v", err)
	}
	sameSet(t, set, setOf(P(0, 0), P(0, 1), P(1, 1)))
	settle(t, e, rec)

	if !e.Grid().IsFilled() {
		t.Errorf("board not refilled:\n%s", e.Grid())
	}
	for _, c := range e.Grid().Cells() {
		for p, id := range ids {
			if c.ID == id {
				t.Errorf("removed cell %d from %v is still on the board at %v", id, p, c.Pos)
			}
		}
	}
	stats := e.Stats()
	if stats.Releases != 1 || stats.Removed != 3 || stats.Squares != 0 {
		t.Errorf("Stats() = %+v, want 1 release removing 3 cells", stats)
	}
	if len(rec.finals) != 1 {
		t.Errorf("FinalRemovalSet called %d times, want 1", len(rec.finals))
	}
}

func TestSquareRelease(t *testing.T) {
	rec := &recorder{}
	e := newLayoutEngine(t, rec, fixture...)
	reds := len(e.Grid().CellsWithColor(ColorRed))

	e.OnDragStart(P(0, 0))
	for _, p := range []Pos{P(1, 0), P(1, 1), P(0, 1), P(0, 0)} {
		e.OnDragEnter(p)
	}
	if !e.Loop() {
		t.Fatalf("square not detected")
	}
	set, err := e.OnDragEnd()
	if err != nil {
		t.Fatalf("OnDragEnd: %v", err)
	}
	if set.Len() != reds {
		t.Errorf("square removed %d cells, want %d", set.Len(), reds)
	}
	settle(t, e, rec)
	if got := e.Stats().Squares; got != 1 {
		t.Errorf("Stats().Squares = %d, want 1", got)
	}
	if len(rec.previews) < 2 || !rec.previews[len(rec.previews)-1].Empty() {
		t.Errorf("preview not withdrawn after release")
	}
}

func TestInputIgnoredWhileBusy(t *testing.T) {
	rec := &recorder{manual: true}
	e := newLayoutEngine(t, rec, fixture...)

	e.OnDragStart(P(0, 0))
	e.OnDragEnter(P(0, 1))
	if _, err := e.OnDragEnd(); err != nil {
		t.Fatalf("OnDragEnd: %v", err)
	}
	if !e.Busy() || e.Phase() != PhaseClearing {
		t.Fatalf("Busy() = %v in phase %v, want busy while clearing", e.Busy(), e.Phase())
	}

	if e.OnDragStart(P(3, 3)) {
		t.Errorf("drag started while busy")
	}
	if _, err := e.Pop(P(3, 3)); err != nil || e.Stats().Releases != 1 {
		t.Errorf("pop accepted while busy")
	}

	// Tasks not finished: Update must not advance.
	if err := e.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if e.Phase() != PhaseClearing {
		t.Errorf("phase advanced to %v with pending tasks", e.Phase())
	}

	rec.finish()
	if err := e.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if e.Phase() != PhaseDropping || e.Pending() == 0 {
		t.Errorf("phase = %v with %d pending tasks, want dropping with drop tasks", e.Phase(), e.Pending())
	}

	settle(t, e, rec)
	if e.Busy() {
		t.Errorf("still busy after all tasks finished")
	}
	if !e.OnDragStart(P(3, 3)) {
		t.Errorf("drag rejected after the board settled")
	}
}

func TestOnDragEndIdempotent(t *testing.T) {
	rec := &recorder{}
	e := newLayoutEngine(t, rec, fixture...)
	for i := 0; i < 2; i++ {
		set, err := e.OnDragEnd()
		if err != nil || !set.Empty() {
			t.Errorf("OnDragEnd #%d with no drag = (%v, %v)", i, set.Positions(), err)
		}
	}
	if e.Busy() {
		t.Errorf("idle release made the engine busy")
	}
}

func TestSingleDotReleaseIsNotAMove(t *testing.T) {
	rec := &recorder{}
	e := newLayoutEngine(t, rec, fixture...)
	e.OnDragStart(P(3, 0))
	set, err := e.OnDragEnd()
	if err != nil || !set.Empty() {
		t.Errorf("single-dot release = (%v, %v), want empty", set.Positions(), err)
	}
	if e.Stats().Releases != 0 {
		t.Errorf("single-dot release counted as a move")
	}
}

func TestPop(t *testing.T) {
	rec := &recorder{}
	e := newLayoutEngine(t, rec, fixture...)
	id := e.Grid().Get(3, 0).ID

	set, err := e.Pop(P(3, 0))
	if err != nil {
		t.Fatalf("Pop: %v", err)
	}
	sameSet(t, set, setOf(P(3, 0)))
	settle(t, e, rec)
	if e.Grid().Get(3, 0).ID == id {
		t.Errorf("popped cell still present")
	}
}

func TestCancelDrag(t *testing.T) {
	rec := &recorder{}
	e := newLayoutEngine(t, rec, fixture...)
	e.OnDragStart(P(0, 0))
	e.OnDragEnter(P(0, 1))
	e.CancelDrag()
	if e.Dragging() {
		t.Errorf("still dragging after CancelDrag")
	}
	if set, _ := e.OnDragEnd(); !set.Empty() {
		t.Errorf("release after cancel removed %v", set.Positions())
	}
}

func TestDeadlockInvariantOverManyMoves(t *testing.T) {
	rec := &recorder{}
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 5, 5
	cfg.Palette = []Color{ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorPurple}
	cfg.Strategy = NewFrequencyWeighted()
	cfg.Seed = 42
	e, err := New(cfg, WithPresenter(rec))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for move := 0; move < 200; move++ {
		a, b, ok := findMove(e.Grid())
		if !ok {
			t.Fatalf("move %d: idle board has no valid move:\n%s", move, e.Grid())
		}
		before := e.Grid().Count()
		e.OnDragStart(a)
		e.OnDragEnter(b)
		set, err := e.OnDragEnd()
		if err != nil {
			t.Fatalf("move %d: %v", move, err)
		}
		if set.Len() != 2 {
			t.Fatalf("move %d: removed %d cells, want 2", move, set.Len())
		}
		settle(t, e, rec)
		if got := e.Grid().Count(); got != before || !e.Grid().IsFilled() {
			t.Fatalf("move %d: board has %d cells, want a filled board of %d", move, got, before)
		}
	}
	if got := e.Stats().Releases; got != 200 {
		t.Errorf("Stats().Releases = %d, want 200", got)
	}
}

func TestSetPalette(t *testing.T) {
	e, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.SetPalette(nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("SetPalette(nil) error = %v, want ErrInvalidConfig", err)
	}
	if err := e.SetPalette([]Color{ColorOrange, ColorPurple}); err != nil {
		t.Fatalf("SetPalette: %v", err)
	}
	if got := len(e.Config().Palette); got != 2 {
		t.Errorf("palette length = %d, want 2", got)
	}
}
