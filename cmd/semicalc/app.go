package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/c360studio/semiconductor/catalog"
	"github.com/c360studio/semiconductor/config"
)

// app holds the state shared by every command.
type app struct {
	configPath  string
	catalogPath string
	logLevel    string
	jsonOut     bool

	cfg    *config.Config
	logger *slog.Logger
	// sources are the config files merged into cfg
	sources []string

	// catalog is loaded on first use
	catalog *catalog.Catalog
}

// setup configures logging and loads the layered configuration.
func (a *app) setup(cmd *cobra.Command) error {
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	if a.logLevel != "" {
		l, err := config.ParseLevel(a.logLevel)
		if err != nil {
			return err
		}
		level.Set(l)
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	loader := config.NewLoader(a.logger)
	cfg, err := loader.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.sources = loader.Sources()
	if a.catalogPath != "" {
		cfg.Catalog.Path = a.catalogPath
	}
	if a.logLevel == "" {
		// Already validated by Load
		l, _ := config.ParseLevel(cfg.Log.Level)
		level.Set(l)
	}
	a.cfg = cfg
	return nil
}

// Catalog returns the embedded tables overlaid by the configured catalog
// directory.
func (a *app) Catalog() (*catalog.Catalog, error) {
	if a.catalog != nil {
		return a.catalog, nil
	}
	cat, err := loadCatalog(a.cfg.Catalog.Path, a.logger)
	if err != nil {
		return nil, err
	}
	a.catalog = cat
	return cat, nil
}

// Material returns the tables of name, or of the configured material when
// name is empty.
func (a *app) Material(name string) (*catalog.Material, error) {
	if name == "" {
		name = a.cfg.Calculation.Material
	}
	cat, err := a.Catalog()
	if err != nil {
		return nil, err
	}
	return cat.Material(name)
}

func loadCatalog(dir string, logger *slog.Logger) (*catalog.Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}
	base, err := catalog.Embedded()
	if err != nil {
		return nil, fmt.Errorf("load embedded tables: %w", err)
	}
	if dir == "" {
		return base, nil
	}
	over, err := catalog.LoadDir(dir, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded catalog directory", "dir", dir, "materials", over.Materials())
	return base.Overlay(over), nil
}

// print writes v as indented JSON when --json is set, else calls text.
func (a *app) print(w io.Writer, v any, text func(w io.Writer)) error {
	if a.jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}
