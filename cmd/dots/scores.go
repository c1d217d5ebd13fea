package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dots/internal/registry"
	"github.com/vovakirdan/tui-dots/internal/storage"
)

var (
	flagRecent bool
	flagLimit  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [dots|dots_endless]",
	Short: "Show high scores",
	Long: `Display the best runs for a game, or the most recent ones with --recent.

Examples:
  dots scores
  dots scores dots_endless
  dots scores --recent --limit 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the most recent runs instead of the best")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := "dots"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		ids := make([]string, 0, 2)
		for _, g := range registry.List() {
			ids = append(ids, g.ID)
		}
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintf(os.Stderr, "Available: %s\n", strings.Join(ids, ", "))
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fail(err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail(fmt.Errorf("opening scores database: %w", err))
	}
	defer store.Close()

	var runs []storage.Run
	if flagRecent {
		runs, err = store.RecentRuns(gameID, flagLimit)
	} else {
		runs, err = store.TopRuns(gameID, flagLimit)
	}
	if err != nil {
		store.Close()
		fail(fmt.Errorf("retrieving runs: %w", err))
	}

	heading := "High Scores"
	if flagRecent {
		heading = "Recent Runs"
	}
	fmt.Printf("%s - %s\n\n", heading, game.Title())

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'dots play' to set the first high score!")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Rank\tScore\tLevel\tMoves\tSquares\tShuffles\tTime\tWhen")
	fmt.Fprintln(w, "  ----\t-----\t-----\t-----\t-------\t--------\t----\t----")
	for i, r := range runs {
		level := r.Level
		if level == "" {
			level = "-"
		}
		if r.Won {
			level += " (won)"
		}
		fmt.Fprintf(w, "  %d\t%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			i+1,
			humanize.Comma(int64(r.Score)),
			level,
			r.Moves,
			r.Squares,
			r.ShufflePasses,
			time.Duration(r.Duration)*time.Second,
			humanize.Time(r.CreatedAt),
		)
	}
	w.Flush()

	if stats, err := store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Games: %d  Best: %s  Average: %.0f  Wins: %d  Squares: %d\n",
			stats.GamesCount, humanize.Comma(int64(stats.HighScore)), stats.AvgScore, stats.Wins, stats.TotalSquares)
	}
}
