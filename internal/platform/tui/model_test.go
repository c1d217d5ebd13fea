package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dots/internal/core"
	"github.com/vovakirdan/tui-dots/internal/storage"
)

// stubGame ends after a fixed number of ticks.
type stubGame struct {
	ticks    int
	endAfter int
	resets   int
	lastIn   core.InputFrame
}

func (g *stubGame) ID() string    { return "dots" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.ticks = 0
	g.resets++
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.ticks++
	// The model clears its frame after each step.
	g.lastIn = core.NewInputFrame()
	for k, v := range in.Actions {
		g.lastIn.Actions[k] = v
	}
	g.lastIn.Pointer = append([]core.PointerEvent(nil), in.Pointer...)
	return core.StepResult{State: g.State()}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) State() core.GameState {
	over := g.ticks >= g.endAfter
	return core.GameState{Score: 42, GameOver: over, Won: over}
}

func (g *stubGame) Summary() core.RunSummary {
	return core.RunSummary{Level: "squares", Moves: 3, Squares: 1, Removed: 12, Won: true, Seed: 9}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func tick(m Model, n int) Model {
	for i := 0; i < n; i++ {
		next, _ := m.Update(TickMsg{})
		m = next.(Model)
	}
	return m
}

func TestModelSavesRunOnce(t *testing.T) {
	store := openStore(t)
	game := &stubGame{endAfter: 2}
	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 30, Seed: 1})
	m.Init()

	m = tick(m, 5)

	runs, err := store.RecentRuns("dots", 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, want 1", len(runs))
	}
	r := runs[0]
	if r.Score != 42 || r.Level != "squares" || r.Squares != 1 || !r.Won || r.Seed != 9 {
		t.Errorf("saved run = %+v", r)
	}
	if high, _ := store.HighScore("dots"); high != 42 {
		t.Errorf("HighScore = %d, want 42", high)
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	game := &stubGame{endAfter: 1}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 30, Seed: 1})
	m.Init()
	m = tick(m, 1)

	next, _ := m.Update(runeKey("r"))
	m = tick(next.(Model), 1)
	if game.resets != 2 {
		t.Errorf("resets = %d, want 2", game.resets)
	}
	if m.scoreSaved {
		t.Error("restart should clear the saved flag")
	}
}

func TestModelBackToMenu(t *testing.T) {
	tests := []struct {
		name     string
		endAfter int
		embedded bool
		back     bool
		quits    bool
	}{
		{"running game keeps playing", 100, false, false, false},
		{"finished game leaves", 1, false, true, true},
		{"embedded game leaves without quitting", 1, true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := &stubGame{endAfter: tt.endAfter}
			m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 30, Seed: 1})
			m.embedded = tt.embedded
			m.Init()
			m = tick(m, 1)

			next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
			m = next.(Model)
			if m.BackToMenu() != tt.back {
				t.Errorf("BackToMenu() = %v, want %v", m.BackToMenu(), tt.back)
			}
			if (cmd != nil) != tt.quits {
				t.Errorf("quit command = %v, want %v", cmd != nil, tt.quits)
			}
			if !tt.back {
				m = tick(m, 1)
				if !game.lastIn.Has(core.ActionBack) {
					t.Error("back should reach the game while playing")
				}
			}
		})
	}
}

func TestModelForwardsMouse(t *testing.T) {
	game := &stubGame{endAfter: 100}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 30, Seed: 1})
	m.Init()

	next, _ := m.Update(tea.MouseMsg{X: 3, Y: 4, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	m = tick(next.(Model), 1)

	want := []core.PointerEvent{{Kind: core.PointerPress, Button: core.ButtonPrimary, X: 3, Y: 4}}
	if len(game.lastIn.Pointer) != 1 || game.lastIn.Pointer[0] != want[0] {
		t.Errorf("pointer events = %+v, want %+v", game.lastIn.Pointer, want)
	}
}

func TestModelReservesHelpRow(t *testing.T) {
	m := NewModel(&stubGame{endAfter: 100}, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10})
	if h := m.screen.Height(); h != 9 {
		t.Errorf("screen height = %d, want 9", h)
	}
	if got := m.gameConfig().ScreenH; got != 9 {
		t.Errorf("game sees height %d, want 9", got)
	}
}
