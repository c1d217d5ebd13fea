package rules

import (
	"math/rand"
	"testing"
)

func TestUniformStaysInPalette(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	palette := []Color{ColorGreen, ColorPurple, ColorOrange}
	seen := make(map[Color]int)
	for i := 0; i < 600; i++ {
		seen[Uniform{}.Pick(rng, palette)]++
	}
	if len(seen) != len(palette) {
		t.Errorf("picked %d distinct colors, want %d", len(seen), len(palette))
	}
	for c := range seen {
		if c != ColorGreen && c != ColorPurple && c != ColorOrange {
			t.Errorf("picked %v outside the palette", c)
		}
	}
}

func TestFrequencyWeightedFavorsRareColors(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	palette := []Color{ColorRed, ColorBlue}
	f := NewFrequencyWeighted()

	blue := 0
	for i := 0; i < 1000; i++ {
		f.Reset()
		f.counts[ColorRed] = 99
		if f.Pick(rng, palette) == ColorBlue {
			blue++
		}
	}
	// Weights are 1/100 for red and 1 for blue.
	if blue < 950 {
		t.Errorf("blue picked %d/1000 times, want at least 950", blue)
	}
}

func TestFrequencyWeightedCountsAndReset(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	f := NewFrequencyWeighted()
	palette := []Color{ColorYellow}
	for i := 0; i < 4; i++ {
		f.Pick(rng, palette)
	}
	if got := f.Count(ColorYellow); got != 4 {
		t.Errorf("Count(yellow) = %d, want 4", got)
	}
	f.Reset()
	if got := f.Count(ColorYellow); got != 0 {
		t.Errorf("Count(yellow) after Reset = %d, want 0", got)
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"", "uniform", false},
		{"uniform", "uniform", false},
		{"Weighted", "weighted", false},
		{"frequency", "weighted", false},
		{"chaos", "", true},
	}
	for _, tt := range tests {
		s, err := ParseStrategy(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStrategy(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if err == nil && s.Name() != tt.want {
			t.Errorf("ParseStrategy(%q).Name() = %q, want %q", tt.name, s.Name(), tt.want)
		}
	}
}
