package rules

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
)

// Phase is the engine's position in the resolve cycle.
type Phase int

const (
	PhaseIdle      Phase = iota // accepting input
	PhaseClearing               // removal effect playing
	PhaseDropping               // cells falling and spawning
	PhaseShuffling              // swap effects playing after a deadlock
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseClearing:
		return "clearing"
	case PhaseDropping:
		return "dropping"
	case PhaseShuffling:
		return "shuffling"
	default:
		return "unknown"
	}
}

// DefaultMaxShufflePasses bounds deadlock repair when the config leaves it
// unset.
const DefaultMaxShufflePasses = 64

// Config holds the board parameters.
type Config struct {
	Width            int
	Height           int
	Palette          []Color
	Seed             int64
	Strategy         SpawnStrategy // nil means Uniform
	MaxShufflePasses int           // 0 means DefaultMaxShufflePasses
	PoolSize         int           // 0 means Width*Height
}

// DefaultConfig returns a 6x6 board with four colors.
func DefaultConfig() Config {
	return Config{
		Width:            6,
		Height:           6,
		Palette:          []Color{ColorRed, ColorBlue, ColorGreen, ColorYellow},
		Seed:             1,
		MaxShufflePasses: DefaultMaxShufflePasses,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: board size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Width*c.Height < 2 {
		return fmt.Errorf("%w: board needs at least two cells", ErrInvalidConfig)
	}
	if len(c.Palette) == 0 {
		return fmt.Errorf("%w: empty palette", ErrInvalidConfig)
	}
	for _, col := range c.Palette {
		if col >= ColorCount {
			return fmt.Errorf("%w: unknown palette color %d", ErrInvalidConfig, col)
		}
	}
	if c.MaxShufflePasses < 0 {
		return fmt.Errorf("%w: negative max shuffle passes", ErrInvalidConfig)
	}
	if c.PoolSize < 0 {
		return fmt.Errorf("%w: negative pool size", ErrInvalidConfig)
	}
	return nil
}

// Stats counts what happened on a board.
type Stats struct {
	Releases      int // releases that removed cells
	Removed       int // cells removed
	Squares       int // releases that closed a loop
	ShufflePasses int
	Spawned       int
}

// Option customizes an Engine.
type Option func(*Engine)

// WithPresenter routes board events to p.
func WithPresenter(p Presenter) Option {
	return func(e *Engine) {
		if p != nil {
			e.presenter = p
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithLayout starts from a prepared grid instead of a random fill. Empty
// slots are filled from the palette. The grid's size overrides the
// configured width and height.
func WithLayout(g *Grid) Option {
	return func(e *Engine) {
		e.grid = g
	}
}

// Engine wires the board components together and drives the cycle
// release -> clear -> drop and spawn -> deadlock check -> shuffle.
//
// Once a release removes cells the engine is busy: drag input is ignored
// until every presentation task reports done and the board has a valid
// move. The host advances the engine by calling Update, typically once per
// tick.
type Engine struct {
	cfg       Config
	grid      *Grid
	graph     *Graph
	resolver  *Resolver
	tracker   *Tracker
	reflow    *Reflow
	presenter Presenter
	logger    *log.Logger
	tasks     taskGroup

	phase    Phase
	busy     bool
	affected []int
	passes   int
	stats    Stats
	err      error
}

// New creates an engine, fills the board and runs the initial deadlock
// check.
func New(cfg Config, opts ...Option) (*Engine, error) {
	e := &Engine{
		presenter: NopPresenter{},
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.grid != nil {
		cfg.Width, cfg.Height = e.grid.Width(), e.grid.Height()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Strategy == nil {
		cfg.Strategy = Uniform{}
	}
	if cfg.MaxShufflePasses == 0 {
		cfg.MaxShufflePasses = DefaultMaxShufflePasses
	}
	if cfg.PoolSize == 0 {
		cfg.PoolSize = cfg.Width * cfg.Height
	}
	e.cfg = cfg

	if e.grid == nil {
		e.grid = NewGrid(cfg.Width, cfg.Height)
	}
	free := cfg.PoolSize - e.grid.Count()
	if free < 0 {
		return nil, fmt.Errorf("layout holds %d cells: %w", e.grid.Count(), ErrPoolExhausted)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	e.graph = NewGraph(e.grid)
	e.resolver = NewResolver(e.grid, e.graph)
	e.tracker = NewTracker(e.grid, e.graph, e.resolver)
	e.tracker.OnPreview = e.presenter.PreviewRemovalSet
	e.reflow = newReflow(e.grid, rng, cfg.Strategy, cfg.Palette,
		newPool(free, e.grid.MaxID()+1), e.presenter, &e.tasks)

	if err := e.reflow.Populate(); err != nil {
		return nil, fmt.Errorf("populate: %w", err)
	}
	e.busy = true
	e.phase = PhaseDropping
	if err := e.Update(); err != nil {
		return nil, err
	}
	return e, nil
}

// Grid returns the board. Callers must not mutate it.
func (e *Engine) Grid() *Grid { return e.grid }

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// Busy returns true while a release is being resolved.
func (e *Engine) Busy() bool { return e.busy }

// Phase returns the current phase.
func (e *Engine) Phase() Phase { return e.phase }

// Err returns the fatal error that halted the engine, if any.
func (e *Engine) Err() error { return e.err }

// Stats returns the counters collected so far.
func (e *Engine) Stats() Stats {
	s := e.stats
	s.Spawned = e.reflow.Spawned()
	return s
}

// Pending returns the number of unfinished presentation tasks.
func (e *Engine) Pending() int { return e.tasks.len() }

// Dragging returns true while a drag is in progress.
func (e *Engine) Dragging() bool { return e.tracker.Dragging() }

// Path returns a copy of the current drag path.
func (e *Engine) Path() []*Cell { return e.tracker.Path() }

// Loop returns true while the current drag has closed a loop.
func (e *Engine) Loop() bool { return e.tracker.Loop() }

// HasAnyValidMove reports whether the board has a playable pair.
func (e *Engine) HasAnyValidMove() bool { return e.reflow.HasAnyValidMove() }

// SetPalette changes the colors used for future spawns.
func (e *Engine) SetPalette(palette []Color) error {
	if len(palette) == 0 {
		return fmt.Errorf("%w: empty palette", ErrInvalidConfig)
	}
	e.cfg.Palette = palette
	e.reflow.SetPalette(palette)
	return nil
}

func (e *Engine) acceptsInput() bool {
	return !e.busy && e.err == nil
}

// OnDragStart begins a drag on the cell at p. It is ignored while busy.
func (e *Engine) OnDragStart(p Pos) bool {
	if !e.acceptsInput() {
		return false
	}
	return e.tracker.Begin(e.grid.At(p))
}

// OnDragEnter extends or retracts the drag onto the cell at p.
func (e *Engine) OnDragEnter(p Pos) bool {
	if !e.acceptsInput() {
		return false
	}
	return e.tracker.Enter(e.grid.At(p))
}

// OnDragEnd releases the drag. If the path clears anything the engine turns
// busy and starts resolving; the returned set is what will be removed.
// Calling it with no drag in progress returns an empty set.
func (e *Engine) OnDragEnd() (RemovalSet, error) {
	if !e.tracker.Dragging() {
		return NewRemovalSet(), nil
	}
	loop := e.tracker.Loop()
	set := e.tracker.End()
	if loop {
		e.presenter.PreviewRemovalSet(NewRemovalSet())
	}
	if set.Empty() {
		return set, nil
	}
	if loop {
		e.stats.Squares++
	}
	return set, e.resolve(set)
}

// Pop removes a single cell without a drag.
func (e *Engine) Pop(p Pos) (RemovalSet, error) {
	if !e.acceptsInput() || e.tracker.Dragging() || e.grid.At(p) == nil {
		return NewRemovalSet(), nil
	}
	set := NewRemovalSet(p)
	return set, e.resolve(set)
}

// CancelDrag abandons the current drag without removing anything.
func (e *Engine) CancelDrag() {
	if e.tracker.Dragging() {
		e.tracker.Cancel()
		e.presenter.PreviewRemovalSet(NewRemovalSet())
	}
}

func (e *Engine) resolve(set RemovalSet) error {
	e.stats.Releases++
	e.stats.Removed += set.Len()
	e.busy = true
	e.tasks.add(e.presenter.FinalRemovalSet(set))
	e.affected = e.reflow.Remove(set)
	e.phase = PhaseClearing
	return e.Update()
}

// Update advances the resolve cycle as far as finished tasks allow. It
// returns the fatal error once the engine has halted.
func (e *Engine) Update() error {
	if e.err != nil {
		return e.err
	}
	for e.busy {
		if !e.tasks.done() {
			return nil
		}
		switch e.phase {
		case PhaseClearing:
			for _, col := range e.affected {
				if err := e.reflow.DropColumn(col); err != nil {
					return e.fail(fmt.Errorf("drop column %d: %w", col, err))
				}
			}
			e.affected = nil
			e.phase = PhaseDropping
		case PhaseDropping, PhaseShuffling:
			if e.reflow.HasAnyValidMove() {
				if e.passes > 0 {
					e.logger.Debug("board repaired", "passes", e.passes)
				}
				e.passes = 0
				e.phase = PhaseIdle
				e.busy = false
				return nil
			}
			if e.passes >= e.cfg.MaxShufflePasses {
				return e.fail(fmt.Errorf("%w after %d passes", ErrShuffleExhausted, e.passes))
			}
			e.passes++
			e.stats.ShufflePasses++
			swaps := e.reflow.Shuffle()
			e.logger.Debug("shuffle pass", "pass", e.passes, "swaps", swaps)
			e.phase = PhaseShuffling
		default:
			e.busy = false
		}
	}
	return nil
}

func (e *Engine) fail(err error) error {
	e.err = err
	e.logger.Error("board halted", "err", err)
	return err
}
