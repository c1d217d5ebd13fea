// Package levels provides campaign level definitions for Dots.
// Levels ship embedded in the binary; a directory of YAML files can
// replace them.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-dots/internal/games/dots/rules"
)

//go:embed data/*.yaml
var embedded embed.FS

// Level represents a complete campaign level definition.
type Level struct {
	ID       string
	Name     string
	Order    int
	Width    int
	Height   int
	Colors   []rules.Color
	Moves    int    // move budget
	Target   int    // score needed to win
	Squares  int    // squares needed to win, 0 for none
	Strategy string // spawn strategy, empty for the configured default
	Layout   []string
	Metadata map[string]string
	FilePath string
}

// Validate checks that the level can be played.
func (l Level) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("level has no id")
	}
	if l.Width < 2 || l.Height < 2 {
		return fmt.Errorf("level %q: size %dx%d is smaller than 2x2", l.ID, l.Width, l.Height)
	}
	if len(l.Colors) < 2 {
		return fmt.Errorf("level %q: needs at least two colors", l.ID)
	}
	if l.Moves <= 0 || l.Target <= 0 {
		return fmt.Errorf("level %q: moves and target must be positive", l.ID)
	}
	if l.Strategy != "" {
		if _, err := rules.ParseStrategy(l.Strategy); err != nil {
			return fmt.Errorf("level %q: %w", l.ID, err)
		}
	}
	if len(l.Layout) == 0 {
		return nil
	}
	if len(l.Layout) != l.Height {
		return fmt.Errorf("level %q: layout has %d rows, want %d", l.ID, len(l.Layout), l.Height)
	}
	for i, row := range l.Layout {
		if len(row) != l.Width {
			return fmt.Errorf("level %q: layout row %d has width %d, want %d", l.ID, i, len(row), l.Width)
		}
		for _, ch := range row {
			if ch == '.' {
				continue
			}
			c, ok := rules.ParseColor(string(ch))
			if !ok || !slices.Contains(l.Colors, c) {
				return fmt.Errorf("level %q: layout row %d uses color %q outside the palette", l.ID, i, ch)
			}
		}
	}
	return nil
}

// Grid returns the starting layout, or nil when the board starts random.
func (l Level) Grid() (*rules.Grid, error) {
	if len(l.Layout) == 0 {
		return nil, nil
	}
	return rules.ParseGrid(l.Layout)
}

// Embedded returns the built-in campaign in play order.
func Embedded() ([]Level, error) {
	return loadFS(embedded, "data")
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped. Returns levels in play order.
func (l *Loader) LoadAll() ([]Level, error) {
	return loadFS(os.DirFS(l.Root), ".")
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}
	level, err := ParseYAML(data)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	level.FilePath = path
	return level, nil
}

func loadFS(fsys fs.FS, root string) ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil
		}
		level, err := ParseYAML(data)
		if err != nil {
			// Skip invalid files
			return nil
		}
		level.FilePath = path
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	sortLevels(levels)
	return levels, nil
}

// sortLevels orders by Order, then ID for determinism.
func sortLevels(levels []Level) {
	sort.SliceStable(levels, func(i, j int) bool {
		if levels[i].Order != levels[j].Order {
			return levels[i].Order < levels[j].Order
		}
		return levels[i].ID < levels[j].ID
	})
}

// Load returns the campaign from dir, or the embedded one when dir is empty.
func Load(dir string) ([]Level, error) {
	if dir == "" {
		return Embedded()
	}
	levels, err := NewLoader(dir).LoadAll()
	if err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("no valid levels in %s", dir)
	}
	return levels, nil
}

// Find returns the level with the given ID.
func Find(levels []Level, id string) (Level, int, error) {
	for i, lvl := range levels {
		if lvl.ID == id {
			return lvl, i, nil
		}
	}
	return Level{}, -1, fmt.Errorf("level not found: %s", id)
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	return slices.Contains(FormatExtensions(), ext)
}
