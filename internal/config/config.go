// Package config provides YAML-based game configuration loading and
// difficulty management for the dots platform.
package config

import (
	"errors"
	"fmt"
)

// DotsConfig contains all configuration for the Dots game.
type DotsConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Palette    PaletteConfig    `yaml:"palette"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Animation  AnimationConfig  `yaml:"animation"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the board used in endless mode.
type BoardConfig struct {
	Width            int `yaml:"width"`
	Height           int `yaml:"height"`
	MaxShufflePasses int `yaml:"max_shuffle_passes"`
	PoolSize         int `yaml:"pool_size"` // 0 = width*height
}

// PaletteConfig lists the dot colors. Endless mode starts with the first
// MinColors entries and adds more as difficulty rises.
type PaletteConfig struct {
	Colors    []string `yaml:"colors"`
	MinColors int      `yaml:"min_colors"`
}

// SpawnConfig selects how refill colors are drawn.
type SpawnConfig struct {
	Strategy string `yaml:"strategy"` // "uniform" or "weighted"
}

// GameplayConfig defines scoring and optional rules.
type GameplayConfig struct {
	AllowPop    bool `yaml:"allow_pop"`    // single-dot pop with X or right click
	PopCost     int  `yaml:"pop_cost"`     // moves charged for a pop in campaign mode
	SquareBonus int  `yaml:"square_bonus"` // extra points for closing a loop
}

// AnimationConfig defines effect durations in ticks.
type AnimationConfig struct {
	ClearTicks int    `yaml:"clear_ticks"`
	DropTicks  int    `yaml:"drop_ticks"` // per row fallen
	SpawnTicks int    `yaml:"spawn_ticks"`
	SwapTicks  int    `yaml:"swap_ticks"`
	Easing     string `yaml:"easing"` // "linear", "quad", "cubic", "bounce"
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	ColorsAdded int `yaml:"colors_added"` // Palette colors added at max difficulty
}

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Validate checks ranges that would make the board unplayable.
func (c DotsConfig) Validate() error {
	if c.Board.Width < 2 || c.Board.Height < 2 {
		return fmt.Errorf("%w: board %dx%d is smaller than 2x2", ErrInvalid, c.Board.Width, c.Board.Height)
	}
	if len(c.Palette.Colors) < 2 {
		return fmt.Errorf("%w: palette needs at least two colors", ErrInvalid)
	}
	if c.Palette.MinColors < 2 || c.Palette.MinColors > len(c.Palette.Colors) {
		return fmt.Errorf("%w: min_colors %d outside [2, %d]", ErrInvalid, c.Palette.MinColors, len(c.Palette.Colors))
	}
	if c.Board.MaxShufflePasses < 0 || c.Board.PoolSize < 0 {
		return fmt.Errorf("%w: negative board limits", ErrInvalid)
	}
	if c.Gameplay.PopCost < 0 || c.Gameplay.SquareBonus < 0 {
		return fmt.Errorf("%w: negative gameplay values", ErrInvalid)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
