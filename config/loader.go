package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// File locations searched by Loader.
const (
	// ProjectConfigFile is looked up in the working directory and its parents
	ProjectConfigFile = "semicalc.yaml"
	// UserConfigDir is relative to the home directory
	UserConfigDir  = ".config/semicalc"
	UserConfigFile = "config.yaml"
)

// Loader resolves the semicalc configuration from the built-in defaults
// and up to three files.
type Loader struct {
	logger *slog.Logger

	// home and cwd replace the user home and working directory when set
	home string
	cwd  string

	sources []string
}

// NewLoader returns a Loader that reports skipped files to logger.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// layer is one configuration file. Optional layers that fail to read or
// parse are skipped with a warning; a required layer aborts Load.
type layer struct {
	name     string
	path     string
	required bool
}

// layers lists the files in increasing precedence: the user file, the
// nearest semicalc.yaml above the working directory, then explicit.
func (l *Loader) layers(explicit string) []layer {
	var out []layer
	if p := l.userConfigPath(); p != "" {
		out = append(out, layer{name: "user", path: p})
	}
	if p := l.projectConfigPath(); p != "" {
		out = append(out, layer{name: "project", path: p})
	}
	if explicit != "" {
		out = append(out, layer{name: "explicit", path: explicit, required: true})
	}
	return out
}

// Load merges every layer over DefaultConfig and validates the result.
// A missing user file is not an error.
func (l *Loader) Load(explicit string) (*Config, error) {
	cfg := DefaultConfig()
	l.sources = l.sources[:0]

	for _, ly := range l.layers(explicit) {
		file, err := LoadFromFile(ly.path)
		switch {
		case err == nil:
		case ly.required:
			return nil, fmt.Errorf("%s config: %w", ly.name, err)
		case errors.Is(err, os.ErrNotExist):
			continue
		default:
			l.logger.Warn("Skipping config file", "layer", ly.name, "path", ly.path, "error", err)
			continue
		}
		cfg.Merge(file)
		l.sources = append(l.sources, ly.path)
		l.logger.Debug("Merged config file", "layer", ly.name, "path", ly.path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Sources returns the files merged by the last Load, lowest precedence
// first.
func (l *Loader) Sources() []string {
	return append([]string(nil), l.sources...)
}

// EnsureUserConfig writes DefaultConfig to the user file unless one is
// already there, and returns the file's path.
func (l *Loader) EnsureUserConfig() (string, error) {
	path := l.userConfigPath()
	if path == "" {
		return "", fmt.Errorf("user config: no home directory")
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := DefaultConfig().SaveToFile(path); err != nil {
		return "", err
	}
	l.logger.Info("Created default user config", "path", path)
	return path, nil
}

func (l *Loader) userConfigPath() string {
	home := l.home
	if home == "" {
		var err error
		if home, err = os.UserHomeDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// projectConfigPath returns the nearest ProjectConfigFile at or above the
// working directory, or "" when there is none.
func (l *Loader) projectConfigPath() string {
	dir := l.cwd
	if dir == "" {
		var err error
		if dir, err = os.Getwd(); err != nil {
			return ""
		}
	}
	for {
		p := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
