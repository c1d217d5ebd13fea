package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg DotsConfig
	if err := yaml.Unmarshal(defaultDotsYAML, &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if want := DefaultDotsConfig(); !reflect.DeepEqual(cfg, want) {
		t.Errorf("embedded defaults = %+v, want %+v", cfg, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded defaults invalid: %v", err)
	}
}

func TestLoadDotsCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dots.yaml")
	data := []byte("board:\n  width: 8\n  height: 7\nspawn:\n  strategy: weighted\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadDots(path)
	if err != nil {
		t.Fatalf("LoadDots: %v", err)
	}
	if cfg.Board.Width != 8 || cfg.Board.Height != 7 {
		t.Errorf("board = %dx%d, want 8x7", cfg.Board.Width, cfg.Board.Height)
	}
	if cfg.Spawn.Strategy != "weighted" {
		t.Errorf("strategy = %q, want weighted", cfg.Spawn.Strategy)
	}
	// Unset sections keep their defaults.
	if cfg.Palette.MinColors != 4 || cfg.Animation.ClearTicks != 6 {
		t.Errorf("defaults lost for unset keys: %+v", cfg)
	}
}

func TestLoadDotsErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("board: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	tiny := filepath.Join(dir, "tiny.yaml")
	if err := os.WriteFile(tiny, []byte("board:\n  width: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadDots(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Errorf("missing file accepted")
	}
	if _, err := LoadDots(bad); err == nil {
		t.Errorf("malformed yaml accepted")
	}
	if _, err := LoadDots(tiny); !errors.Is(err, ErrInvalid) {
		t.Errorf("LoadDots(tiny) error = %v, want ErrInvalid", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DotsConfig)
	}{
		{"narrow board", func(c *DotsConfig) { c.Board.Width = 1 }},
		{"one color", func(c *DotsConfig) { c.Palette.Colors = []string{"red"} }},
		{"min colors too high", func(c *DotsConfig) { c.Palette.MinColors = 9 }},
		{"min colors too low", func(c *DotsConfig) { c.Palette.MinColors = 1 }},
		{"negative passes", func(c *DotsConfig) { c.Board.MaxShufflePasses = -1 }},
		{"negative pop cost", func(c *DotsConfig) { c.Gameplay.PopCost = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultDotsConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dots.yaml")
	if err := WriteDefault(path, false); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}
	if err := WriteDefault(path, false); err == nil {
		t.Errorf("second WriteDefault without force succeeded")
	}
	if err := WriteDefault(path, true); err != nil {
		t.Errorf("forced WriteDefault: %v", err)
	}
	cfg, err := LoadDots(path)
	if err != nil {
		t.Fatalf("LoadDots(written): %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultDotsConfig()) {
		t.Errorf("written config differs from defaults")
	}
}

func TestApplyDotsPreset(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		enabled   bool
		level     float64
		minColors int
		allowPop  bool
	}{
		{DifficultyEasy, true, 0.0, 3, true},
		{DifficultyNormal, true, 0.3, 4, false},
		{DifficultyHard, true, 0.7, 5, false},
		{DifficultyFixed, false, 0.0, 4, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultDotsConfig()
			ApplyDotsPreset(&cfg, tt.preset)
			if cfg.Difficulty.Enabled != tt.enabled {
				t.Errorf("Enabled = %v, want %v", cfg.Difficulty.Enabled, tt.enabled)
			}
			if cfg.Difficulty.InitialLevel != tt.level {
				t.Errorf("InitialLevel = %v, want %v", cfg.Difficulty.InitialLevel, tt.level)
			}
			if cfg.Palette.MinColors != tt.minColors {
				t.Errorf("MinColors = %d, want %d", cfg.Palette.MinColors, tt.minColors)
			}
			if cfg.Gameplay.AllowPop != tt.allowPop {
				t.Errorf("AllowPop = %v, want %v", cfg.Gameplay.AllowPop, tt.allowPop)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Errorf("unknown preset accepted")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultDotsConfig()
	cfg.Board.Width = 9
	cfg.Spawn.Strategy = "weighted"

	out, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "dots.yaml")
	if err := os.WriteFile(path, out, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadDots(path)
	if err != nil {
		t.Fatalf("LoadDots() error = %v", err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("LoadDots(Marshal(cfg)) = %+v, want %+v", got, cfg)
	}
}
