// Package config loads CLI defaults from an optional YAML file.
// Command-line flags take precedence over file values.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the batch defaults for the parse command.
type Config struct {
	// OutputDir is where exported documents are written.
	OutputDir string `yaml:"output_dir"`
	// ExportFormat is JSON or XML.
	ExportFormat string `yaml:"export_format"`
	// Parallelism bounds how many files are parsed concurrently. Each
	// file gets its own parser, so no coordination is needed beyond the
	// limit itself.
	Parallelism int `yaml:"parallelism"`
	// Debug enables development logging.
	Debug bool `yaml:"debug"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		OutputDir:    "output",
		ExportFormat: "JSON",
		Parallelism:  1,
	}
}

// Load reads the YAML file at path over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Parallelism < 1 {
		return fmt.Errorf("parallelism must be at least 1, got %d", c.Parallelism)
	}
	return nil
}
