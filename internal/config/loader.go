package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name searched for in the config directories.
const ConfigFile = "dots.yaml"

// LoadDots loads Dots configuration.
// Search order: customPath -> ~/.dots/configs/dots.yaml -> ./configs/dots.yaml -> embedded default
// Values missing from a file keep their defaults.
func LoadDots(customPath string) (DotsConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg := DefaultDotsConfig()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{UserConfigPath(), filepath.Join("configs", ConfigFile)} {
		if path == "" {
			continue
		}
		if cfg, ok := tryLoad(path); ok {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := DefaultDotsConfig()
	if err := yaml.Unmarshal(defaultDotsYAML, &cfg); err != nil {
		return DefaultDotsConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Marshal renders cfg as YAML in the config file layout.
func Marshal(cfg DotsConfig) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return out, nil
}

// tryLoad reads an optional config file. Unreadable or invalid files are
// skipped.
func tryLoad(path string) (DotsConfig, bool) {
	cfg := DefaultDotsConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, false
	}
	return cfg, true
}

// UserConfigPath returns the path to the user config file, or empty if home is unavailable.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dots", "configs", ConfigFile)
}

// WriteDefault writes the embedded default config to path, creating parent
// directories. Existing files are left alone unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config %s already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, defaultDotsYAML, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// ApplyDotsPreset modifies the config based on a difficulty preset.
func ApplyDotsPreset(cfg *DotsConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.AllowPop = true
		cfg.Palette.MinColors = min(3, len(cfg.Palette.Colors))
	case DifficultyHard:
		cfg.Palette.MinColors = min(5, len(cfg.Palette.Colors))
	}
}
