package feed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads a per-feed YAML configuration file carrying the feed
// URL, the site base for relative image links, and optional keyword
// filters.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse feed config %s: %w", path, err)
	}

	if config.URL == "" {
		return nil, fmt.Errorf("feed config %s is missing a feed URL", path)
	}

	return &config, nil
}
