// Package config holds application configuration that goes beyond single
// environment variables, such as the feed preset catalog.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset is one entry of the curated feed catalog shown to new users.
type Preset struct {
	Name        string `yaml:"name" json:"name"`
	URL         string `yaml:"url" json:"url"`
	Description string `yaml:"description" json:"description"`
}

// defaultPresets is the built-in catalog used when no preset file is
// configured.
var defaultPresets = []Preset{
	{Name: "Hacker News", URL: "https://hnrss.org/frontpage", Description: "Tech & Startups"},
	{Name: "Ars Technica", URL: "https://feeds.arstechnica.com/arstechnica/technology-lab", Description: "Science & Tech"},
	{Name: "Reddit Tech", URL: "https://www.reddit.com/r/technology/.rss", Description: "Community Picks"},
	{Name: "The Verge", URL: "https://www.theverge.com/rss/index.xml", Description: "Tech Culture"},
}

// DefaultPresets returns a copy of the built-in catalog.
func DefaultPresets() []Preset {
	out := make([]Preset, len(defaultPresets))
	copy(out, defaultPresets)
	return out
}

// LoadPresets returns the feed preset catalog. When FEED_PRESETS_FILE is
// set it is read as a YAML list of presets; a missing or invalid file
// warns and falls back to the built-in defaults.
func LoadPresets() []Preset {
	path := os.Getenv("FEED_PRESETS_FILE")
	if path == "" {
		return DefaultPresets()
	}

	presets, err := loadPresetsFile(path)
	if err != nil {
		slog.Warn("failed to load feed presets, using defaults",
			slog.String("path", path),
			slog.Any("error", err))
		return DefaultPresets()
	}
	return presets
}

func loadPresetsFile(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets file: %w", err)
	}

	var presets []Preset
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("parse presets file: %w", err)
	}

	valid := presets[:0]
	for _, p := range presets {
		if p.URL == "" {
			slog.Warn("skipping preset without url", slog.String("name", p.Name))
			continue
		}
		valid = append(valid, p)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("presets file %s contains no usable entries", path)
	}
	return valid, nil
}
