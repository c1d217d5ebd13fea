package rules

import (
	"fmt"
	"math/rand"
	"strings"
)

// SpawnStrategy picks the color of each newly spawned dot.
type SpawnStrategy interface {
	// Name returns the identifier used in configuration.
	Name() string
	// Pick returns a palette color. The palette is never empty.
	Pick(rng *rand.Rand, palette []Color) Color
	// Reset forgets any history, called when a board is populated.
	Reset()
}

// Uniform draws every palette color with equal probability.
type Uniform struct{}

// Name implements SpawnStrategy.
func (Uniform) Name() string { return "uniform" }

// Pick implements SpawnStrategy.
func (Uniform) Pick(rng *rand.Rand, palette []Color) Color {
	return palette[rng.Intn(len(palette))]
}

// Reset implements SpawnStrategy.
func (Uniform) Reset() {}

// FrequencyWeighted favors colors that have spawned less often since the
// board was populated. Each color is weighted 1 / (1 + times spawned).
type FrequencyWeighted struct {
	counts map[Color]int
}

// NewFrequencyWeighted creates a strategy with empty history.
func NewFrequencyWeighted() *FrequencyWeighted {
	return &FrequencyWeighted{counts: make(map[Color]int)}
}

// Name implements SpawnStrategy.
func (f *FrequencyWeighted) Name() string { return "weighted" }

// Pick implements SpawnStrategy.
func (f *FrequencyWeighted) Pick(rng *rand.Rand, palette []Color) Color {
	if f.counts == nil {
		f.counts = make(map[Color]int)
	}
	weights := make([]float64, len(palette))
	total := 0.0
	for i, c := range palette {
		weights[i] = 1.0 / float64(1+f.counts[c])
		total += weights[i]
	}

	r := rng.Float64() * total
	picked := palette[len(palette)-1]
	for i, w := range weights {
		if r < w {
			picked = palette[i]
			break
		}
		r -= w
	}
	f.counts[picked]++
	return picked
}

// Reset implements SpawnStrategy.
func (f *FrequencyWeighted) Reset() {
	clear(f.counts)
}

// Count returns how many times c has been spawned since the last Reset.
func (f *FrequencyWeighted) Count(c Color) int {
	return f.counts[c]
}

// ParseStrategy returns the strategy registered under name.
func ParseStrategy(name string) (SpawnStrategy, error) {
	switch strings.ToLower(name) {
	case "", "uniform":
		return Uniform{}, nil
	case "weighted", "frequency":
		return NewFrequencyWeighted(), nil
	default:
		return nil, fmt.Errorf("unknown spawn strategy %q (want uniform or weighted)", name)
	}
}
