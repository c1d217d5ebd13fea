package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-dots/internal/core"
	"github.com/vovakirdan/tui-dots/internal/games/dots"
	"github.com/vovakirdan/tui-dots/internal/platform/tui"
	"github.com/vovakirdan/tui-dots/internal/registry"
	"github.com/vovakirdan/tui-dots/internal/storage"
)

var flagLevel string

var playCmd = &cobra.Command{
	Use:   "play [campaign|endless]",
	Short: "Play a game",
	Long: `Start playing directly, skipping the menu.

Modes:
  campaign - Levels with a move budget and a target score (default)
  endless  - No move limit; more colors join as your score grows

Controls:
  Mouse drag          - Connect dots, release to clear
  Arrows/WASD/HJKL    - Move the cursor
  Space/Enter         - Start or finish a keyboard drag
  Esc/B               - Cancel drag (menu when paused or over)
  X / right click     - Pop a single dot (if enabled)
  ?                   - Show a hint
  P                   - Pause
  R                   - Restart (after game over)
  Q/Ctrl+C            - Quit

Difficulty options:
  easy   - Fewer colors, pop enabled
  normal - Standard palette growth
  hard   - More colors from the start
  fixed  - Palette never grows

Examples:
  dots play
  dots play endless --difficulty hard
  dots play --level frame
  dots play --levels ./my-levels --strategy weighted`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"campaign", "endless"},
	Run:       runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Campaign level ID to start from")
}

// terminalConfig builds the runtime config from the terminal size and flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the score database. The game still works without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) {
	applySettings()

	gameID := tui.GameCampaign
	if len(args) == 1 {
		switch args[0] {
		case "campaign":
		case "endless":
			gameID = tui.GameEndless
		default:
			fail(fmt.Errorf("unknown mode %q (want campaign or endless)", args[0]))
		}
	}

	if flagLevel != "" {
		if gameID != tui.GameCampaign {
			fail(fmt.Errorf("--level only applies to campaign mode"))
		}
		if err := checkLevel(flagLevel); err != nil {
			fail(err)
		}
		dots.SetStartLevel(flagLevel)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fail(err)
	}

	store := openStore()
	_, runErr := tui.Run(game, store, terminalConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fail(fmt.Errorf("running game: %w", runErr))
	}
}

// checkLevel reports whether the campaign has a level with the given ID.
func checkLevel(id string) error {
	list, err := dots.Campaign()
	if err != nil {
		return err
	}
	for _, l := range list {
		if l.ID == id {
			return nil
		}
	}
	return fmt.Errorf("unknown level %q, run 'dots levels' to list them", id)
}

func runMenu(_ *cobra.Command, _ []string) {
	applySettings()

	list, err := dots.Campaign()
	if err != nil {
		fail(err)
	}

	store := openStore()
	cfg := terminalConfig()

	for {
		result, err := tui.RunMenu(store, list, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		cfg = result.Config

		if result.Quit {
			break
		}

		if result.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		game, err := registry.Create(result.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}
		if ls, ok := game.(registry.LevelStarter); ok && result.LevelID != "" {
			ls.StartAt(result.LevelID)
		}

		// Fresh board for every game unless a seed was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		backToMenu, err := tui.Run(game, store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if !backToMenu {
			break
		}
	}

	if store != nil {
		store.Close()
	}
}
