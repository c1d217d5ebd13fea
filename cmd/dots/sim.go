package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dots/internal/config"
	"github.com/vovakirdan/tui-dots/internal/games/dots/autoplay"
	"github.com/vovakirdan/tui-dots/internal/games/dots/rules"
)

var (
	flagBoards  int
	flagMoves   int
	flagWidth   int
	flagHeight  int
	flagColors  int
	flagWorkers int
	flagVerbose bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Play boards with the autoplayer",
	Long: `Play many boards without a terminal UI and check that every settled
board still has a valid move. Board size, palette and refill strategy come
from the config file unless overridden.

Exits with status 1 if any board deadlocks, including boards the
shuffle could not repair.

Examples:
  dots sim
  dots sim --boards 100 --moves 1000 --colors 6
  dots sim --strategy weighted --seed 7 --verbose`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagBoards, "boards", 10, "Number of boards to play")
	simCmd.Flags().IntVar(&flagMoves, "moves", 200, "Moves per board")
	simCmd.Flags().IntVar(&flagWidth, "width", 0, "Board width (0 = from config)")
	simCmd.Flags().IntVar(&flagHeight, "height", 0, "Board height (0 = from config)")
	simCmd.Flags().IntVar(&flagColors, "colors", 0, "Palette size (0 = config minimum)")
	simCmd.Flags().IntVar(&flagWorkers, "workers", 4, "Boards played concurrently")
	simCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Log every move and shuffle pass")
}

// simConfig builds the board config shared by every simulated board and
// returns the refill strategy name.
func simConfig() (rules.Config, string, error) {
	dc, err := config.LoadDots(flagConfig)
	if err != nil {
		return rules.Config{}, "", err
	}

	palette, err := rules.ParsePalette(dc.Palette.Colors)
	if err != nil {
		return rules.Config{}, "", err
	}
	colors := dc.Palette.MinColors
	if flagColors > 0 {
		colors = flagColors
	}
	if colors < 1 || colors > len(palette) {
		return rules.Config{}, "", fmt.Errorf("colors must be between 1 and %d", len(palette))
	}

	strategyName := dc.Spawn.Strategy
	if flagStrategy != "" {
		strategyName = flagStrategy
	}
	if _, err := rules.ParseStrategy(strategyName); err != nil {
		return rules.Config{}, "", err
	}

	cfg := rules.Config{
		Width:            dc.Board.Width,
		Height:           dc.Board.Height,
		Palette:          palette[:colors],
		MaxShufflePasses: dc.Board.MaxShufflePasses,
		PoolSize:         dc.Board.PoolSize,
	}
	if flagWidth > 0 {
		cfg.Width = flagWidth
	}
	if flagHeight > 0 {
		cfg.Height = flagHeight
	}
	if cfg.PoolSize > 0 && cfg.PoolSize < cfg.Width*cfg.Height {
		cfg.PoolSize = 0
	}
	return cfg, strategyName, cfg.Validate()
}

func runSim(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "dots-sim",
	})
	if flagVerbose || flagDebug {
		logger.SetLevel(log.DebugLevel)
	}

	if flagBoards < 1 || flagMoves < 1 {
		fail(fmt.Errorf("--boards and --moves must be positive"))
	}
	base, strategyName, err := simConfig()
	if err != nil {
		fail(err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting",
		"boards", flagBoards, "moves", flagMoves,
		"size", fmt.Sprintf("%dx%d", base.Width, base.Height),
		"colors", len(base.Palette), "strategy", strategyName, "seed", seed)

	reports := make([]autoplay.Report, flagBoards)
	errs := make([]error, flagBoards)
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < max(flagWorkers, 1); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				cfg := base
				cfg.Seed = seed + int64(i)
				// Strategies keep state, so every board gets its own
				strategy, err := rules.ParseStrategy(strategyName)
				if err != nil {
					errs[i] = err
					continue
				}
				cfg.Strategy = strategy
				boardLog := logger.With("board", i)
				reports[i], errs[i] = autoplay.Run(ctx, cfg, flagMoves, boardLog)
			}
		}()
	}

	start := time.Now()
	for i := 0; i < flagBoards; i++ {
		if ctx.Err() != nil {
			break
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var total rules.Stats
	var moves, score, halted, failed int
	for i, r := range reports {
		moves += r.Moves
		score += r.Score
		total.Squares += r.Stats.Squares
		total.Removed += r.Stats.Removed
		total.ShufflePasses += r.Stats.ShufflePasses
		total.Spawned += r.Stats.Spawned
		switch classifyBoard(r, errs[i]) {
		case boardFailed:
			failed++
			err := errs[i]
			if err == nil {
				err = r.Halted
			}
			logger.Error("board failed", "board", i, "seed", r.Seed, "err", err)
		case boardHalted:
			halted++
			logger.Warn("board halted", "board", i, "seed", r.Seed, "err", r.Halted)
		}
	}

	logger.Info("finished",
		"elapsed", time.Since(start).Round(time.Millisecond),
		"moves", moves, "removed", total.Removed, "squares", total.Squares,
		"spawned", total.Spawned, "shuffle_passes", total.ShufflePasses,
		"halted", halted, "failed", failed)

	if moves > 0 {
		fmt.Printf("%d boards, %d moves, %.2f dots per move, %.3f shuffle passes per move\n",
			flagBoards, moves, float64(score)/float64(moves), float64(total.ShufflePasses)/float64(moves))
	}

	if failed > 0 {
		fail(fmt.Errorf("%d of %d boards deadlocked or failed", failed, flagBoards))
	}
}

type boardOutcome int

const (
	boardOK boardOutcome = iota
	boardStopped
	boardHalted
	boardFailed
)

// classifyBoard sorts a finished run. A board left without a valid move,
// whether the autoplayer found it or the shuffle gave up, counts as failed.
func classifyBoard(r autoplay.Report, err error) boardOutcome {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return boardStopped
	case err != nil:
		return boardFailed
	case errors.Is(r.Halted, rules.ErrShuffleExhausted):
		return boardFailed
	case r.Halted != nil:
		return boardHalted
	}
	return boardOK
}
