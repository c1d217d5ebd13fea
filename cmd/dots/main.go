// dots is a terminal rendition of the connect-the-dots puzzle.
//
// Usage:
//
//	dots                     - Start menu to pick a mode or level
//	dots play [mode]         - Play campaign or endless directly
//	dots levels              - List campaign levels
//	dots scores [game]       - Show high scores and recent runs
//	dots serve               - Start SSH server for remote play
//	dots sim                 - Run the headless autoplayer
//	dots config init         - Write the default config file
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--db <path>           - Set database path (default: ~/.dots/scores.db)
//	--config <path>       - Custom config YAML
//	--difficulty <name>   - easy, normal, hard or fixed
//	--strategy <name>     - Refill strategy: uniform or weighted
//	--levels <dir>        - Load campaign levels from a directory
//	--log-file <path>     - Write game logs to a file
//	--debug               - Include debug lines (shuffle passes) in logs
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dots/internal/config"
	"github.com/vovakirdan/tui-dots/internal/games/dots"
	"github.com/vovakirdan/tui-dots/internal/games/dots/rules"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagStrategy   string
	flagLevelDir   string
	flagLogFile    string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dots",
	Short: "Dots - connect same-colored dots in your terminal",
	Long: `Dots is a terminal puzzle: drag across adjacent dots of one color to
clear them. Close a loop and every dot of that color disappears.

Available commands:
  play     - Play campaign or endless mode directly
  levels   - Show the campaign levels
  scores   - View high scores and recent runs
  serve    - Start SSH server for remote play
  sim      - Headless autoplayer for testing boards
  config   - Manage the config file

Running dots without a command opens the interactive menu.

Examples:
  dots
  dots play endless --difficulty hard
  dots play --level squares
  dots serve --ssh :2222
  dots sim --boards 20 --moves 500`,
	Run: runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dots/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagStrategy, "strategy", "", "Refill strategy: uniform, weighted")
	rootCmd.PersistentFlags().StringVar(&flagLevelDir, "levels", "", "Directory of campaign level YAML files")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append game logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log debug lines such as shuffle passes")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// applySettings validates the global flags and hands them to the game
// package before any game is created.
func applySettings() {
	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			fail(err)
		}
	}
	if flagStrategy != "" {
		if _, err := rules.ParseStrategy(flagStrategy); err != nil {
			fail(err)
		}
	}

	dots.SetConfigPath(flagConfig)
	dots.SetDifficultyPreset(flagDifficulty)
	dots.SetStrategy(flagStrategy)
	dots.SetLevelDir(flagLevelDir)

	if flagLogFile != "" {
		l, err := fileLogger(flagLogFile)
		if err != nil {
			fail(err)
		}
		dots.SetLogger(l)
	}
}

// fileLogger opens path for appending and returns a logger writing to it.
// The file stays open for the life of the process.
func fileLogger(path string) (*log.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "dots",
	})
	setLevel(l)
	return l, nil
}

func setLevel(l *log.Logger) {
	if flagDebug {
		l.SetLevel(log.DebugLevel)
	}
}

// fail prints err and exits with status 1.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
