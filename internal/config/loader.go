package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads and unmarshals a YAML file from disk.
func Load[T any](path string) (T, error) {
	var result T

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return result, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("parse YAML from %s: %w", path, err)
	}

	return result, nil
}

// loadEmbedded reads and unmarshals a YAML file from the embedded filesystem.
func loadEmbedded[T any](filename string) (T, error) {
	var result T

	content, err := defaultsFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("failed to read embedded file %s: %w", filename, err)
	}

	if err := yaml.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse YAML from %s: %w", filename, err)
	}

	return result, nil
}
