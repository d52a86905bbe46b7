// Package catalog loads the per-material model tables. A catalog is a tree
// of YAML files laid out as <Material>/<family>.yaml; a default catalog for
// silicon ships embedded in the binary.
//
// Catalogs are immutable once loaded and safe to share between goroutines.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/c360studio/semiconductor/semerr"
)

//go:embed tables
var embedded embed.FS

// tablePattern matches <Material>/<family>.yaml and .yml files.
const tablePattern = "*/*.{yaml,yml}"

// Catalog holds the model registries of every loaded material.
type Catalog struct {
	materials map[string]*Material
}

// Embedded loads the tables compiled into the binary.
func Embedded() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "tables")
	if err != nil {
		return nil, semerr.NewConfigError("embedded", err)
	}
	return LoadFS(sub, nil)
}

// LoadDir loads the tables under dir.
func LoadDir(dir string, logger *slog.Logger) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, semerr.NewConfigError(dir, fmt.Errorf("open catalog: %w", err))
	}
	if !info.IsDir() {
		return nil, semerr.Configf(dir, "catalog path is not a directory")
	}
	return LoadFS(os.DirFS(dir), logger)
}

// LoadFS loads the tables found in fsys. Files whose name is not a known
// property family are skipped with a warning.
func LoadFS(fsys fs.FS, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}

	paths, err := doublestar.Glob(fsys, tablePattern)
	if err != nil {
		return nil, semerr.NewConfigError(tablePattern, fmt.Errorf("glob model tables: %w", err))
	}
	sort.Strings(paths)

	c := &Catalog{materials: make(map[string]*Material)}
	for _, p := range paths {
		material := path.Dir(p)
		family := strings.TrimSuffix(path.Base(p), path.Ext(p))

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, semerr.NewConfigError(p, fmt.Errorf("read model table: %w", err))
		}

		m := c.materials[material]
		if m == nil {
			m = &Material{Name: material}
			c.materials[material] = m
		}

		loaded, err := m.load(family, p, data)
		if err != nil {
			return nil, err
		}
		if !loaded {
			logger.Warn("Skipping file that is not a known property family",
				"path", p,
				"family", family)
			continue
		}
		logger.Debug("Loaded model table", "material", material, "family", family, "path", p)
	}

	if len(c.materials) == 0 {
		return nil, semerr.Configf("catalog", "no model tables found")
	}
	return c, nil
}

// Material returns the registries loaded for name.
func (c *Catalog) Material(name string) (*Material, error) {
	m, ok := c.materials[name]
	if !ok {
		return nil, semerr.Configf(name, "no model tables for material %q (available: %s)",
			name, strings.Join(c.Materials(), ", "))
	}
	return m, nil
}

// Materials returns the loaded material names in sorted order.
func (c *Catalog) Materials() []string {
	names := make([]string, 0, len(c.materials))
	for name := range c.materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Overlay returns a new catalog holding c's tables with every table present
// in over replacing c's table for the same material and family.
func (c *Catalog) Overlay(over *Catalog) *Catalog {
	out := &Catalog{materials: make(map[string]*Material, len(c.materials))}
	for name, m := range c.materials {
		cp := *m
		out.materials[name] = &cp
	}
	if over == nil {
		return out
	}
	for name, m := range over.materials {
		base, ok := out.materials[name]
		if !ok {
			cp := *m
			out.materials[name] = &cp
			continue
		}
		base.overlay(m)
	}
	return out
}
