// Package electrical computes conductivity and resistivity from the
// mobility, ionisation and intrinsic carrier density models of a material,
// and inverts dark conductivity to a doping density.
//
// Calculators keep their configuration between calls: overrides passed to
// Calculate are merged into it. A calculator is not safe for concurrent
// use; build one per goroutine from a shared catalog.
package electrical

import (
	"log/slog"

	"github.com/c360studio/semiconductor/carrier"
	"github.com/c360studio/semiconductor/catalog"
	"github.com/c360studio/semiconductor/material"
	"github.com/c360studio/semiconductor/numeric"
	"github.com/c360studio/semiconductor/physics"
	"github.com/c360studio/semiconductor/property"
)

// Conductivity computes sigma = q*(mu_e*n + mu_h*p) in S/cm.
type Conductivity struct {
	catalog *catalog.Catalog
	config  Config
	logger  *slog.Logger
	bound   *binding
}

// binding holds the sub-models built for one material and author selection.
type binding struct {
	material         string
	mobilityAuthor   string
	ionisationAuthor string
	niAuthor         property.Spec

	mobility   *Mobility
	ionisation *Ionisation
	density    *material.IntrinsicDensity // nil when ni is a constant
}

func (b *binding) matches(cfg Config) bool {
	return b.material == cfg.Material &&
		b.mobilityAuthor == cfg.MobilityAuthor &&
		b.ionisationAuthor == cfg.IonisationAuthor &&
		b.niAuthor.String() == cfg.NiAuthor.String() &&
		b.niAuthor.IsConst() == cfg.NiAuthor.IsConst()
}

func (b *binding) ni() carrier.NiProvider {
	if b.niAuthor.IsConst() {
		return carrier.ConstNi(b.niAuthor.Value()...)
	}
	return b.density
}

// NewConductivity creates a calculator over cat starting from cfg. Sub-models
// are resolved on the first Calculate.
func NewConductivity(cat *catalog.Catalog, cfg Config, logger *slog.Logger) *Conductivity {
	if logger == nil {
		logger = slog.Default()
	}
	return &Conductivity{
		catalog: cat,
		config:  cfg.Merge(Overrides{}),
		logger:  logger,
	}
}

// Config returns a copy of the current configuration.
func (c *Conductivity) Config() Config {
	return c.config.Merge(Overrides{})
}

// Calculate merges o into the configuration and returns the conductivity.
// On error the configuration and sub-models are left as they were.
func (c *Conductivity) Calculate(o Overrides) ([]float64, error) {
	cfg := c.config.Merge(o)
	b, err := c.bind(cfg)
	if err != nil {
		return nil, err
	}
	sigma, err := conductivity(cfg, b)
	if err != nil {
		return nil, err
	}
	c.config = cfg
	c.bound = b
	return sigma, nil
}

// UsedAuthors reports the canonical authors of the current sub-models.
func (c *Conductivity) UsedAuthors() (UsedAuthors, error) {
	b, err := c.bind(c.config)
	if err != nil {
		return UsedAuthors{}, err
	}
	c.bound = b
	used := UsedAuthors{
		Mobility:   b.mobility.Author(),
		Ionisation: b.ionisation.Author(),
	}
	if b.density != nil {
		used.IntrinsicDensity = b.density.Author()
	} else {
		used.IntrinsicDensity = b.niAuthor.String()
	}
	return used, nil
}

// UsedAuthors names the models behind a calculation.
type UsedAuthors struct {
	Mobility         string `json:"mobility" yaml:"mobility"`
	IntrinsicDensity string `json:"intrinsic_carrier_density" yaml:"intrinsic_carrier_density"`
	Ionisation       string `json:"ionisation" yaml:"ionisation"`
}

// bind returns the sub-models for cfg, reusing the current ones when the
// material and author selections are unchanged. New sub-models are always
// resolved against cfg's material, so no selection carries over from a
// previous material.
func (c *Conductivity) bind(cfg Config) (*binding, error) {
	if c.bound != nil && c.bound.matches(cfg) {
		return c.bound, nil
	}

	m, err := c.catalog.Material(cfg.Material)
	if err != nil {
		return nil, err
	}
	b := &binding{
		material:         cfg.Material,
		mobilityAuthor:   cfg.MobilityAuthor,
		ionisationAuthor: cfg.IonisationAuthor,
		niAuthor:         cfg.NiAuthor,
	}
	if b.mobility, err = NewMobility(m, cfg.MobilityAuthor); err != nil {
		return nil, err
	}
	if _, err := b.mobility.Active(); err != nil {
		return nil, err
	}
	if b.ionisation, err = NewIonisation(m, cfg.IonisationAuthor); err != nil {
		return nil, err
	}
	if _, err := b.ionisation.Active(); err != nil {
		return nil, err
	}
	if !cfg.NiAuthor.IsConst() {
		if b.density, err = material.NewIntrinsicDensity(m, cfg.NiAuthor.AuthorName()); err != nil {
			return nil, err
		}
		if _, err := b.density.Active(); err != nil {
			return nil, err
		}
	}

	c.logger.Debug("Bound conductivity sub-models",
		"material", cfg.Material,
		"mobility", b.mobility.Author(),
		"ionisation", b.ionisation.Author(),
		"ni", cfg.NiAuthor.String())
	return b, nil
}

// conductivity is the calculation shared by every calculator.
func conductivity(cfg Config, b *binding) ([]float64, error) {
	if err := numeric.CheckPositive("temp", cfg.Temp); err != nil {
		return nil, err
	}
	if err := numeric.CheckNonNegative("Na", cfg.Na); err != nil {
		return nil, err
	}
	if err := numeric.CheckNonNegative("Nd", cfg.Nd); err != nil {
		return nil, err
	}
	if err := numeric.CheckNonNegative("nxc", cfg.Nxc); err != nil {
		return nil, err
	}

	na, nd, err := ionise(cfg, b.ionisation)
	if err != nil {
		return nil, err
	}
	n, p, err := carrier.Carriers(cfg.Nxc, na, nd, cfg.Temp, b.ni())
	if err != nil {
		return nil, err
	}
	mue, muh, err := b.mobility.Evaluate(physics.MobilityInputs{
		Temp: cfg.Temp,
		Na:   cfg.Na,
		Nd:   cfg.Nd,
		Nxc:  cfg.Nxc,
	})
	if err != nil {
		return nil, err
	}
	return numeric.WeightedSum(physics.Charge, mue, n, muh, p)
}

// ionise runs the majority dopant of each element through the ionisation
// model. The minority species is counted as fully ionised; equal densities
// are left as given.
func ionise(cfg Config, ion *Ionisation) (na, nd []float64, err error) {
	size, err := numeric.Len(cfg.Temp, cfg.Na, cfg.Nd, cfg.Nxc)
	if err != nil {
		return nil, nil, err
	}
	na = numeric.Expand(cfg.Na, size)
	nd = numeric.Expand(cfg.Nd, size)

	majority := make([]physics.Species, size)
	var acceptors, donors bool
	for i := range na {
		switch {
		case na[i] > nd[i]:
			majority[i] = physics.Acceptor
			acceptors = true
		case nd[i] > na[i]:
			majority[i] = physics.Donor
			donors = true
		}
	}

	if acceptors {
		ionised, err := ion.Evaluate(physics.IonisationInputs{
			Temp:     cfg.Temp,
			Dopants:  na,
			Nxc:      cfg.Nxc,
			Impurity: cfg.Dopant,
			Species:  physics.Acceptor,
		})
		if err != nil {
			return nil, nil, err
		}
		for i := range na {
			if majority[i] == physics.Acceptor {
				na[i] = numeric.At(ionised, i)
			}
		}
	}
	if donors {
		ionised, err := ion.Evaluate(physics.IonisationInputs{
			Temp:     cfg.Temp,
			Dopants:  nd,
			Nxc:      cfg.Nxc,
			Impurity: cfg.Dopant,
			Species:  physics.Donor,
		})
		if err != nil {
			return nil, nil, err
		}
		for i := range nd {
			if majority[i] == physics.Donor {
				nd[i] = numeric.At(ionised, i)
			}
		}
	}
	return na, nd, nil
}

// Resistivity computes 1/sigma in Ohm cm.
type Resistivity struct {
	cond *Conductivity
}

// NewResistivity creates a resistivity calculator over cat starting from cfg.
func NewResistivity(cat *catalog.Catalog, cfg Config, logger *slog.Logger) *Resistivity {
	return &Resistivity{cond: NewConductivity(cat, cfg, logger)}
}

// Calculate merges o into the configuration and returns the resistivity.
func (r *Resistivity) Calculate(o Overrides) ([]float64, error) {
	sigma, err := r.cond.Calculate(o)
	if err != nil {
		return nil, err
	}
	return numeric.Reciprocal(sigma), nil
}

// Config returns a copy of the current configuration.
func (r *Resistivity) Config() Config {
	return r.cond.Config()
}

// UsedAuthors reports the canonical authors of the current sub-models.
func (r *Resistivity) UsedAuthors() (UsedAuthors, error) {
	return r.cond.UsedAuthors()
}
