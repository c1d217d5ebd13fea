package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dots/internal/games/dots"
	"github.com/vovakirdan/tui-dots/internal/games/dots/levels"
	"github.com/vovakirdan/tui-dots/internal/storage"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List campaign levels",
	Long: `Shows the campaign levels in play order, with your best winning score
on each.

Levels come from the built-in set unless --levels points at a directory of
YAML files.

Examples:
  dots levels
  dots levels --levels ./my-levels`,
	Run: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	applySettings()

	var list []levels.Level
	var err error
	if flagLevelDir != "" {
		// Report a broken directory instead of silently falling back
		list, err = levels.Load(flagLevelDir)
	} else {
		list, err = dots.Campaign()
	}
	if err != nil {
		fail(err)
	}
	if len(list) == 0 {
		fmt.Println("No levels available.")
		return
	}

	var bests map[string]int
	if store, err := storage.Open(flagDBPath); err == nil {
		bests, _ = store.LevelBests("dots")
		store.Close()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  #\tID\tName\tSize\tColors\tMoves\tTarget\tSquares\tBest")
	fmt.Fprintln(w, "  -\t--\t----\t----\t------\t-----\t------\t-------\t----")
	for i, l := range list {
		best := "-"
		if b, ok := bests[l.ID]; ok {
			best = fmt.Sprintf("%d", b)
		}
		fmt.Fprintf(w, "  %d\t%s\t%s\t%dx%d\t%d\t%d\t%d\t%d\t%s\n",
			i+1, l.ID, l.Name, l.Width, l.Height, len(l.Colors), l.Moves, l.Target, l.Squares, best)
	}
	w.Flush()

	fmt.Println()
	fmt.Println("Run 'dots play --level <id>' to start at a level.")
}
