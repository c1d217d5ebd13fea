package dots

import (
	"strings"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/tui-dots/internal/config"
	"github.com/vovakirdan/tui-dots/internal/games/dots/rules"
)

// effectKind identifies what an effect animates.
type effectKind int

const (
	effectClear effectKind = iota // removed dots shrinking away
	effectMove                    // a dot falling or swapping
	effectSpawn                   // a new dot growing in
)

// effect is one running tween. It doubles as the rules.Task handed back to
// the engine, so the board waits until the effect has played out.
type effect struct {
	kind     effectKind
	id       rules.CellID
	color    rules.Color
	from     rules.Pos
	to       rules.Pos
	cleared  []rules.Cell // clear effects only
	tween    *gween.Tween
	progress float32 // eased, 0 at start and 1 at the end
	done     bool
}

// Done reports whether the tween has finished.
func (e *effect) Done() bool { return e.done }

// animator turns board events into tweens and answers render queries about
// them. Durations are in ticks; a zero duration finishes immediately.
type animator struct {
	cfg     config.AnimationConfig
	easing  ease.TweenFunc
	grid    *rules.Grid
	effects []*effect
	byID    map[rules.CellID]*effect
	preview rules.RemovalSet
}

func newAnimator(cfg config.AnimationConfig) *animator {
	return &animator{
		cfg:     cfg,
		easing:  easingFor(cfg.Easing),
		byID:    make(map[rules.CellID]*effect),
		preview: rules.NewRemovalSet(),
	}
}

// easingFor maps a config name to an easing curve. Unknown names use quad.
func easingFor(name string) ease.TweenFunc {
	switch strings.ToLower(name) {
	case "linear":
		return ease.Linear
	case "cubic":
		return ease.OutCubic
	case "bounce":
		return ease.OutBounce
	default:
		return ease.OutQuad
	}
}

// attach points the animator at the board it animates.
func (a *animator) attach(grid *rules.Grid) {
	a.grid = grid
}

func (a *animator) start(e *effect, ticks int) rules.Task {
	if ticks <= 0 {
		return nil
	}
	e.tween = gween.New(0, 1, float32(ticks), a.easing)
	a.effects = append(a.effects, e)
	if e.kind != effectClear {
		a.byID[e.id] = e
	}
	return e
}

// PreviewRemovalSet stores the set to highlight while a loop is open.
func (a *animator) PreviewRemovalSet(set rules.RemovalSet) {
	a.preview = set
}

// FinalRemovalSet captures the cleared dots before they leave the grid.
func (a *animator) FinalRemovalSet(set rules.RemovalSet) rules.Task {
	a.preview = rules.NewRemovalSet()
	e := &effect{kind: effectClear}
	if a.grid != nil {
		for _, p := range set.Positions() {
			if c := a.grid.At(p); c != nil {
				e.cleared = append(e.cleared, *c)
			}
		}
	}
	return a.start(e, a.cfg.ClearTicks)
}

// CellMoved animates a drop, or a swap when the move is not straight down.
func (a *animator) CellMoved(id rules.CellID, from, to rules.Pos) rules.Task {
	ticks := a.cfg.SwapTicks
	if from.Col == to.Col && to.Row > from.Row {
		ticks = a.cfg.DropTicks * (to.Row - from.Row)
	}
	return a.start(&effect{kind: effectMove, id: id, from: from, to: to}, ticks)
}

// CellSpawned animates a new dot appearing at its slot.
func (a *animator) CellSpawned(id rules.CellID, color rules.Color, at rules.Pos) rules.Task {
	return a.start(&effect{kind: effectSpawn, id: id, color: color, from: at, to: at}, a.cfg.SpawnTicks)
}

// Update advances every tween by one tick and drops finished ones.
func (a *animator) Update() {
	live := a.effects[:0]
	for _, e := range a.effects {
		v, finished := e.tween.Update(1)
		e.progress = v
		if finished {
			a.finish(e)
			continue
		}
		live = append(live, e)
	}
	clear(a.effects[len(live):])
	a.effects = live
}

// Flush completes every running effect.
func (a *animator) Flush() {
	for _, e := range a.effects {
		a.finish(e)
	}
	a.effects = nil
}

func (a *animator) finish(e *effect) {
	e.progress = 1
	e.done = true
	if a.byID[e.id] == e {
		delete(a.byID, e.id)
	}
}

// Active returns the number of running effects.
func (a *animator) Active() int {
	return len(a.effects)
}

// offset returns where a moving dot is drawn, in fractional board units.
func (a *animator) offset(id rules.CellID) (col, row float32, ok bool) {
	e, found := a.byID[id]
	if !found || e.kind != effectMove {
		return 0, 0, false
	}
	col = float32(e.from.Col) + float32(e.to.Col-e.from.Col)*e.progress
	row = float32(e.from.Row) + float32(e.to.Row-e.from.Row)*e.progress
	return col, row, true
}

// growth returns the spawn progress of a dot that is still appearing.
func (a *animator) growth(id rules.CellID) (float32, bool) {
	e, found := a.byID[id]
	if !found || e.kind != effectSpawn {
		return 0, false
	}
	return e.progress, true
}

// fading returns the dots that are being cleared along with their progress.
func (a *animator) fading() []fade {
	var out []fade
	for _, e := range a.effects {
		if e.kind != effectClear {
			continue
		}
		for _, c := range e.cleared {
			out = append(out, fade{cell: c, progress: e.progress})
		}
	}
	return out
}

// fade is a dot in the middle of a clear effect.
type fade struct {
	cell     rules.Cell
	progress float32
}
