package levels

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-dots/internal/games/dots/rules"
)

// yamlLevel represents the YAML structure for a level file.
type yamlLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Order    int               `yaml:"order"`
	Size     yamlSize          `yaml:"size"`
	Colors   []string          `yaml:"colors"`
	Moves    int               `yaml:"moves"`
	Target   int               `yaml:"target"`
	Squares  int               `yaml:"squares,omitempty"`
	Strategy string            `yaml:"strategy,omitempty"`
	Layout   []string          `yaml:"layout,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// yamlSize represents grid dimensions.
type yamlSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// ParseYAML parses and validates a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl yamlLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	palette, err := rules.ParsePalette(yl.Colors)
	if err != nil {
		return Level{}, fmt.Errorf("level %q colors: %w", yl.ID, err)
	}

	level := Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Order:    yl.Order,
		Width:    yl.Size.W,
		Height:   yl.Size.H,
		Colors:   palette,
		Moves:    yl.Moves,
		Target:   yl.Target,
		Squares:  yl.Squares,
		Strategy: yl.Strategy,
		Layout:   yl.Layout,
		Metadata: yl.Metadata,
	}
	if err := level.Validate(); err != nil {
		return Level{}, err
	}
	return level, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
