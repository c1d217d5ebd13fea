package config

import (
	_ "embed"
)

//go:embed defaults/dots.yaml
var defaultDotsYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultDotsYAML))
	copy(out, defaultDotsYAML)
	return out
}

// DefaultDotsConfig returns the default Dots configuration.
// It mirrors defaults/dots.yaml.
func DefaultDotsConfig() DotsConfig {
	return DotsConfig{
		Board: BoardConfig{
			Width:            6,
			Height:           6,
			MaxShufflePasses: 64,
			PoolSize:         0,
		},
		Palette: PaletteConfig{
			Colors:    []string{"red", "blue", "green", "yellow", "purple", "orange"},
			MinColors: 4,
		},
		Spawn: SpawnConfig{
			Strategy: "uniform",
		},
		Gameplay: GameplayConfig{
			AllowPop:    false,
			PopCost:     1,
			SquareBonus: 5,
		},
		Animation: AnimationConfig{
			ClearTicks: 6,
			DropTicks:  3,
			SpawnTicks: 6,
			SwapTicks:  8,
			Easing:     "quad",
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 500,
			},
			Scaling: ScalingConfig{
				ColorsAdded: 2,
			},
		},
	}
}
