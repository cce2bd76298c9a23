package pagecraft

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/pagecraft/classify"
	"github.com/tsawler/pagecraft/layout"
)

// Config holds conversion settings loaded from a YAML file or built in
// code. The zero value is not valid; start from DefaultConfig.
type Config struct {
	// Columns is the number of output columns (1-3).
	Columns int `yaml:"columns" json:"columns"`

	// Strategy is the distribution strategy name: "auto", "sequential"
	// or "balanced".
	Strategy string `yaml:"strategy" json:"strategy"`

	// BaseMediaURL is prefixed to image filenames in image widgets.
	BaseMediaURL string `yaml:"base_media_url" json:"base_media_url"`

	// HeadingCharThreshold is the maximum text length, in runes, for
	// heuristic heading detection.
	HeadingCharThreshold int `yaml:"heading_char_threshold" json:"heading_char_threshold"`

	// Title overrides the generated template title when non-empty.
	Title string `yaml:"title" json:"title"`
}

// DefaultConfig returns the default conversion settings.
func DefaultConfig() Config {
	return Config{
		Columns:              1,
		Strategy:             string(layout.StrategyAuto),
		HeadingCharThreshold: classify.DefaultHeadingCharThreshold,
	}
}

// LoadConfig reads a YAML config file, layered over DefaultConfig so
// omitted fields keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that the settings describe a runnable conversion.
func (c Config) Validate() error {
	strategy, err := layout.ParseStrategy(c.Strategy)
	if err != nil {
		return err
	}
	return layout.Validate(c.Columns, strategy)
}

// Apply configures a Converter from the settings.
func (c Config) Apply(conv *Converter) *Converter {
	conv = conv.Columns(c.Columns).
		Strategy(c.Strategy).
		HeadingThreshold(c.HeadingCharThreshold)
	if c.BaseMediaURL != "" {
		conv = conv.BaseMediaURL(c.BaseMediaURL)
	}
	if c.Title != "" {
		conv = conv.Title(c.Title)
	}
	return conv
}
