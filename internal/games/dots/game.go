// Package dots implements the connect-the-dots puzzle on top of the rules
// engine. Campaign mode plays the level list with a move budget per level;
// endless mode keeps one board going and adds colors as the score rises.
package dots

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dots/internal/config"
	"github.com/vovakirdan/tui-dots/internal/core"
	"github.com/vovakirdan/tui-dots/internal/games/dots/levels"
	"github.com/vovakirdan/tui-dots/internal/games/dots/rules"
	"github.com/vovakirdan/tui-dots/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// Package-level variables for CLI settings
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	strategyName     string
	levelDir         string
	startLevel       string
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetStrategy overrides the spawn strategy for every board.
func SetStrategy(name string) {
	strategyName = name
}

// SetLevelDir loads campaign levels from dir instead of the built-in set.
func SetLevelDir(dir string) {
	levelDir = dir
}

// SetStartLevel selects the campaign level to start from by ID.
// It applies to the next Reset only.
func SetStartLevel(id string) {
	startLevel = id
}

// SetLogger routes engine logs to l.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements the Dots puzzle.
type Game struct {
	mode       Mode
	cfg        config.DotsConfig
	difficulty *config.DifficultyManager
	palette    []rules.Color // endless palette, in unlock order
	colors     int           // active endless colors

	campaign   []levels.Level
	start      string // level ID set by StartAt
	levelIndex int
	level      levels.Level

	engine *rules.Engine
	anim   *animator

	rt   core.RuntimeConfig
	tick uint64

	score         int
	moves         int
	squares       int
	removed       int
	shuffles      int // passes on boards already left behind
	levelScore    int
	levelMoves    int
	levelSquares  int
	lastClear     int
	lastWasSquare bool

	cursor    rules.Pos
	keyDrag   bool
	mouseDrag bool
	hint      []rules.Pos
	hintTicks int

	gameOver     bool
	won          bool
	levelCleared bool
	clearTicks   int
	paused       bool
	tooSmall     bool
	err          error
}

// New creates a campaign mode game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates an endless mode game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

func init() {
	registry.Register("dots", func() registry.Game {
		return New()
	})
	registry.Register("dots_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "dots_endless"
	}
	return "dots"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Dots (Endless)"
	}
	return "Dots"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.rt = rt
	g.tick = 0
	g.score, g.moves, g.squares, g.removed, g.shuffles = 0, 0, 0, 0, 0
	g.gameOver, g.won, g.levelCleared, g.paused = false, false, false, false
	g.clearTicks = 0
	g.err = nil
	g.engine = nil

	cfg, err := config.LoadDots(configPath)
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = config.DefaultDotsConfig()
	}
	if difficultyPreset != "" {
		config.ApplyDotsPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.palette, err = rules.ParsePalette(cfg.Palette.Colors)
	if err != nil {
		g.palette = rules.DefaultConfig().Palette
	}

	g.levelIndex = 0
	if g.mode == ModeCampaign {
		g.loadCampaign()
	}
	g.startBoard()
}

// Campaign returns the campaign levels from the configured level
// directory, falling back to the built-in set when it cannot be read.
func Campaign() ([]levels.Level, error) {
	list, err := levels.Load(levelDir)
	if err != nil {
		logger.Warn("using built-in levels", "dir", levelDir, "err", err)
		return levels.Embedded()
	}
	return list, nil
}

// StartAt makes every later Reset begin the campaign at the level with
// the given ID. Unlike SetStartLevel it only affects this game.
func (g *Game) StartAt(levelID string) {
	g.start = levelID
}

// loadCampaign reads the level list and applies the selected start level.
func (g *Game) loadCampaign() {
	list, err := Campaign()
	if err != nil || len(list) == 0 {
		g.campaign = nil
		return
	}
	g.campaign = list

	id := g.start
	if id == "" {
		id = startLevel
		startLevel = "" // Reset after use
	}
	if id != "" {
		if _, idx, err := levels.Find(list, id); err == nil {
			g.levelIndex = idx
		}
	}
}

// boardConfig builds the rules configuration for the current board.
func (g *Game) boardConfig() (rules.Config, error) {
	rc := rules.Config{
		Width:            g.cfg.Board.Width,
		Height:           g.cfg.Board.Height,
		Seed:             g.rt.Seed + int64(g.levelIndex),
		MaxShufflePasses: g.cfg.Board.MaxShufflePasses,
	}
	strategy := g.cfg.Spawn.Strategy

	if g.mode == ModeCampaign {
		rc.Width, rc.Height = g.level.Width, g.level.Height
		rc.Palette = g.level.Colors
		if g.level.Strategy != "" {
			strategy = g.level.Strategy
		}
	} else {
		g.colors = g.difficulty.Colors(g.cfg.Palette.MinColors, len(g.palette), g.score, int(g.tick))
		rc.Palette = g.palette[:g.colors]
		rc.PoolSize = g.cfg.Board.PoolSize
	}
	if strategyName != "" {
		strategy = strategyName
	}

	s, err := rules.ParseStrategy(strategy)
	if err != nil {
		return rc, err
	}
	rc.Strategy = s
	return rc, nil
}

// startBoard builds a fresh engine for the current level or endless board.
func (g *Game) startBoard() {
	g.levelScore, g.levelMoves, g.levelSquares = 0, 0, 0
	g.lastClear, g.lastWasSquare = 0, false
	g.keyDrag, g.mouseDrag = false, false
	g.hint, g.hintTicks = nil, 0
	if g.engine != nil {
		g.shuffles += g.engine.Stats().ShufflePasses
	}
	g.engine = nil

	if g.mode == ModeCampaign {
		if len(g.campaign) == 0 {
			g.halt(rules.ErrInvalidConfig)
			return
		}
		g.level = g.campaign[g.levelIndex]
	}

	rc, err := g.boardConfig()
	if err != nil {
		g.halt(err)
		return
	}

	g.anim = newAnimator(g.cfg.Animation)
	opts := []rules.Option{
		rules.WithPresenter(g.anim),
		rules.WithLogger(logger.With("game", g.ID(), "level", g.level.ID)),
	}
	if g.mode == ModeCampaign {
		layout, err := g.level.Grid()
		if err != nil {
			g.halt(err)
			return
		}
		if layout != nil {
			opts = append(opts, rules.WithLayout(layout))
		}
	}

	engine, err := rules.New(rc, opts...)
	if err != nil {
		g.halt(err)
		return
	}
	g.engine = engine
	g.anim.attach(engine.Grid())
	g.cursor = rules.P(engine.Grid().Width()/2, engine.Grid().Height()/2)
	g.checkScreenSize()
}

// halt stops the game after a fatal board error.
func (g *Game) halt(err error) {
	g.err = err
	g.gameOver = true
}

// Err returns the error that halted the game, if any.
func (g *Game) Err() error {
	return g.err
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall || g.engine == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.anim.Update()
	if err := g.engine.Update(); err != nil {
		g.halt(err)
	}

	if g.levelCleared {
		g.clearTicks++
		if g.clearTicks >= g.levelClearDelay() {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	if g.gameOver || g.won {
		return core.StepResult{State: g.State()}
	}

	if g.hintTicks > 0 {
		g.hintTicks--
		if g.hintTicks == 0 {
			g.hint = nil
		}
	}

	g.handleInput(in)
	if g.err != nil {
		return core.StepResult{State: g.State()}
	}

	if !g.engine.Busy() {
		g.updateDifficulty()
		g.checkGoals()
	}

	return core.StepResult{State: g.State()}
}

// levelClearDelay is how long the level cleared banner stays up.
func (g *Game) levelClearDelay() int {
	rate := g.rt.TickRate
	if rate <= 0 {
		rate = core.DefaultConfig().TickRate
	}
	return rate * 2
}

// updateDifficulty widens the endless palette as the score climbs.
func (g *Game) updateDifficulty() {
	if g.mode != ModeEndless {
		return
	}
	n := g.difficulty.Colors(g.cfg.Palette.MinColors, len(g.palette), g.score, int(g.tick))
	if n == g.colors {
		return
	}
	if err := g.engine.SetPalette(g.palette[:n]); err == nil {
		logger.Debug("palette changed", "colors", n, "score", g.score)
		g.colors = n
	}
}

// checkGoals ends the level once the target is met or moves run out.
func (g *Game) checkGoals() {
	if g.mode != ModeCampaign {
		return
	}
	if g.levelScore >= g.level.Target && g.levelSquares >= g.level.Squares {
		g.levelCleared = true
		g.clearTicks = 0
		return
	}
	if g.MovesLeft() <= 0 {
		g.gameOver = true
	}
}

// advanceLevel moves to the next level, or wins after the last one.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.clearTicks = 0
	if g.levelIndex >= len(g.campaign)-1 {
		g.won = true
		return
	}
	g.levelIndex++
	g.startBoard()
}

// MovesLeft returns the remaining move budget, or -1 in endless mode.
func (g *Game) MovesLeft() int {
	if g.mode != ModeCampaign {
		return -1
	}
	return max(g.level.Moves-g.levelMoves, 0)
}

// record credits a clear to the score and move counters.
func (g *Game) record(set rules.RemovalSet, square bool, cost int) {
	n := set.Len()
	points := n
	if square {
		points += g.cfg.Gameplay.SquareBonus
		g.squares++
		g.levelSquares++
	}
	g.score += points
	g.levelScore += points
	g.removed += n
	g.moves += cost
	g.levelMoves += cost
	g.lastClear, g.lastWasSquare = n, square
	g.hint, g.hintTicks = nil, 0
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver || g.won,
		Won:      g.won,
		Paused:   g.paused || g.tooSmall || g.levelCleared,
	}
}

// Summary reports the run for the history table.
func (g *Game) Summary() core.RunSummary {
	shuffles := g.shuffles
	if g.engine != nil {
		shuffles += g.engine.Stats().ShufflePasses
	}
	level := ""
	if g.mode == ModeCampaign {
		level = g.level.ID
	}
	return core.RunSummary{
		Level:         level,
		Moves:         g.moves,
		Squares:       g.squares,
		Removed:       g.removed,
		ShufflePasses: shuffles,
		Won:           g.won,
		Seed:          g.rt.Seed,
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	s := "Mouse drag or Arrows+Space: Connect | Esc: Cancel | ?: Hint | P: Pause | R: Restart | Q: Quit"
	if g.cfg.Gameplay.AllowPop {
		s = "X/Right click: Pop | " + s
	}
	return s
}
