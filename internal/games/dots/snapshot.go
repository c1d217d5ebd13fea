package dots

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateResolving    GameStateType = "resolving"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StateHalted       GameStateType = "halted"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick       uint64
	Mode       string // "campaign" or "endless"
	Level      string // level ID, empty in endless mode
	LevelIndex int
	Score      int
	LevelScore int
	Moves      int
	MovesLeft  int // -1 in endless mode
	Squares    int
	Colors     int    // active palette size
	Board      string // one line per row, see rules.Grid.String
	Phase      string
	Path       int // length of the drag in progress
	State      GameStateType
	Err        string
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.err != nil:
		state = StateHalted
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.levelCleared:
		state = StateLevelCleared
	case g.engine != nil && g.engine.Busy():
		state = StateResolving
	}

	s := Snapshot{
		Tick:       g.tick,
		Mode:       string(g.mode),
		LevelIndex: g.levelIndex,
		Score:      g.score,
		LevelScore: g.levelScore,
		Moves:      g.moves,
		MovesLeft:  g.MovesLeft(),
		Squares:    g.squares,
		Colors:     g.colors,
		State:      state,
	}
	if g.mode == ModeCampaign {
		s.Level = g.level.ID
		s.Colors = len(g.level.Colors)
	}
	if g.engine != nil {
		s.Board = g.engine.Grid().String()
		s.Phase = g.engine.Phase().String()
		s.Path = len(g.engine.Path())
	}
	if g.err != nil {
		s.Err = g.err.Error()
	}
	return s
}
