// Package property binds a model registry to the author selected for one
// calculation. A Property resolves its author lazily; evaluation stays with
// the caller, which passes the active record's parameters and runtime
// inputs to the record's implementation.
package property

import (
	"log/slog"

	"github.com/c360studio/semiconductor/model"
)

// Property is the selectable model of one family for one material.
// A Property is not safe for concurrent use.
type Property[F any] struct {
	registry *model.Registry[F]
	selected *model.Record[F]
	logger   *slog.Logger
}

// New creates a property over reg. An empty author defers selection to the
// first Active call, which picks the registry default. A named author is
// resolved immediately.
func New[F any](reg *model.Registry[F], author string) (*Property[F], error) {
	p := &Property[F]{registry: reg, logger: slog.Default()}
	if author == "" {
		return p, nil
	}
	if err := p.SelectModel(author); err != nil {
		return nil, err
	}
	return p, nil
}

// WithLogger sets the logger used for selection events.
func (p *Property[F]) WithLogger(logger *slog.Logger) *Property[F] {
	if logger != nil {
		p.logger = logger
	}
	return p
}

// SelectModel makes author the active model. The previous selection stays
// active when author cannot be resolved.
func (p *Property[F]) SelectModel(author string) error {
	rec, err := p.registry.Resolve(author)
	if err != nil {
		return err
	}
	p.selected = &rec
	p.logger.Debug("Selected model",
		"family", p.registry.Family(),
		"author", rec.Author,
		"kind", rec.Kind)
	return nil
}

// Active returns the active record, selecting the default on first use.
func (p *Property[F]) Active() (model.Record[F], error) {
	if p.selected == nil {
		if err := p.SelectModel(""); err != nil {
			return model.Record[F]{}, err
		}
	}
	return *p.selected, nil
}

// Author returns the canonical name of the active author, or "" when no
// model has been selected yet.
func (p *Property[F]) Author() string {
	if p.selected == nil {
		return ""
	}
	return p.selected.Author
}

// Authors lists the selectable authors of the family.
func (p *Property[F]) Authors(filters ...model.Filter) []string {
	return p.registry.ListAuthors(filters...)
}

// Registry returns the table the property selects from.
func (p *Property[F]) Registry() *model.Registry[F] {
	return p.registry
}

// Family returns the property family name.
func (p *Property[F]) Family() string {
	return p.registry.Family()
}
