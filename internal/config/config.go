// Package config handles YAML configuration parsing.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"ftracker/internal/data"
	"ftracker/internal/report"
	"ftracker/internal/workout"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Output   string            `yaml:"output"`
	Rate     float64           `yaml:"rate"`  // packages per second, 0 = unpaced
	Burst    int               `yaml:"burst"` // packages released at once when paced
	Packages []workout.Package `yaml:"packages"`
	Data     []DataFile        `yaml:"data,omitempty"`

	dir string
}

// DataFile references a CSV or JSON file with recorded packages.
type DataFile struct {
	Path string `yaml:"path"`
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.dir = filepath.Dir(path)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate checks settings that do not depend on package contents.
// Packages themselves are checked when they are read.
func (c *Config) Validate() error {
	if _, err := report.ParseFormat(c.Output); err != nil {
		return err
	}
	if c.Rate < 0 {
		return fmt.Errorf("rate must be >= 0, got %v", c.Rate)
	}
	if c.Burst < 0 {
		return fmt.Errorf("burst must be >= 0, got %d", c.Burst)
	}
	for i, d := range c.Data {
		if d.Path == "" {
			return fmt.Errorf("data[%d]: path is required", i)
		}
	}
	return nil
}

// Dir returns the directory data paths are resolved against.
func (c *Config) Dir() string {
	return c.dir
}

// AllPackages returns the inline packages followed by those of every data file.
func (c *Config) AllPackages() ([]workout.Package, error) {
	pkgs := make([]workout.Package, 0, len(c.Packages))
	pkgs = append(pkgs, c.Packages...)
	for _, d := range c.Data {
		loaded, err := data.LoadFile(d.Path, c.dir)
		if err != nil {
			return nil, err
		}
		pkgs = append(pkgs, loaded...)
	}
	return pkgs, nil
}
