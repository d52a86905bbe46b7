// Package config provides configuration loading and management for semicalc.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/semiconductor/electrical"
	"github.com/c360studio/semiconductor/property"
)

// Config represents the complete semicalc configuration
type Config struct {
	Catalog     CatalogConfig     `yaml:"catalog"`
	Calculation CalculationConfig `yaml:"calculation"`
	Log         LogConfig         `yaml:"log"`
}

// CatalogConfig configures where model tables come from
type CatalogConfig struct {
	// Path is a directory of <Material>/<family>.yaml tables overlaid on
	// the embedded tables (empty = embedded tables only)
	Path string `yaml:"path"`
}

// CalculationConfig holds the default calculation inputs. Empty author
// names select each material's default model.
type CalculationConfig struct {
	Material         string        `yaml:"material"`
	Temp             float64       `yaml:"temp"`
	MobilityAuthor   string        `yaml:"mob_author"`
	NiAuthor         property.Spec `yaml:"nieff_author"`
	IonisationAuthor string        `yaml:"ionis_author"`
	Dopant           string        `yaml:"dopant"`
	DopantType       string        `yaml:"dopant_type"`
	Nxc              float64       `yaml:"nxc"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is one of debug, info, warn, error (default: warn)
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	calc := electrical.DefaultConfig()
	return &Config{
		Catalog: CatalogConfig{
			Path: "", // Embedded tables
		},
		Calculation: CalculationConfig{
			Material:   calc.Material,
			Temp:       calc.Temp[0],
			Dopant:     calc.Dopant,
			DopantType: string(calc.DopantType),
			Nxc:        calc.Nxc[0],
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Calculation.Material == "" {
		return fmt.Errorf("calculation.material is required")
	}
	if c.Calculation.Temp <= 0 {
		return fmt.Errorf("calculation.temp must be positive")
	}
	if c.Calculation.Nxc < 0 {
		return fmt.Errorf("calculation.nxc must not be negative")
	}
	if _, err := electrical.ParseDopantType(c.Calculation.DopantType); err != nil {
		return fmt.Errorf("calculation.dopant_type: %w", err)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Electrical returns the calculation defaults as a calculator configuration
// with the given doping.
func (c *Config) Electrical(na, nd []float64) electrical.Config {
	dt, err := electrical.ParseDopantType(c.Calculation.DopantType)
	if err != nil {
		dt = electrical.PType
	}
	return electrical.Config{
		Material:         c.Calculation.Material,
		Temp:             []float64{c.Calculation.Temp},
		MobilityAuthor:   c.Calculation.MobilityAuthor,
		NiAuthor:         c.Calculation.NiAuthor,
		IonisationAuthor: c.Calculation.IonisationAuthor,
		Dopant:           c.Calculation.Dopant,
		DopantType:       dt,
		Na:               na,
		Nd:               nd,
		Nxc:              []float64{c.Calculation.Nxc},
	}
}

// ParseLevel maps a log level name to its slog level
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", name)
}

// LoadFromFile loads configuration from a YAML file. A relative
// catalog.path is resolved against the file's directory.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if p := config.Catalog.Path; p != "" && !filepath.IsAbs(p) {
		config.Catalog.Path = filepath.Join(filepath.Dir(path), p)
	}
	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Catalog
	if other.Catalog.Path != "" {
		c.Catalog.Path = other.Catalog.Path
	}

	// Calculation
	oc := other.Calculation
	if oc.Material != "" {
		c.Calculation.Material = oc.Material
	}
	if oc.Temp != 0 {
		c.Calculation.Temp = oc.Temp
	}
	if oc.MobilityAuthor != "" {
		c.Calculation.MobilityAuthor = oc.MobilityAuthor
	}
	if oc.NiAuthor.IsConst() || oc.NiAuthor.AuthorName() != "" {
		c.Calculation.NiAuthor = oc.NiAuthor
	}
	if oc.IonisationAuthor != "" {
		c.Calculation.IonisationAuthor = oc.IonisationAuthor
	}
	if oc.Dopant != "" {
		c.Calculation.Dopant = oc.Dopant
	}
	if oc.DopantType != "" {
		c.Calculation.DopantType = oc.DopantType
	}
	if oc.Nxc != 0 {
		c.Calculation.Nxc = oc.Nxc
	}

	// Log
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}
