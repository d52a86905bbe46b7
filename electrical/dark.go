package electrical

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/c360studio/semiconductor/catalog"
	"github.com/c360studio/semiconductor/numeric"
	"github.com/c360studio/semiconductor/physics"
	"github.com/c360studio/semiconductor/semerr"
)

// DarkNxc is the excess carrier density (cm^-3) of a sample in the dark.
const DarkNxc = 1.0

// DarkNewtonConfig is the root finder setup for ConductivityToDoping: a
// 1e-3 cm^-3 absolute plus 1e-10 relative step tolerance.
func DarkNewtonConfig() numeric.NewtonConfig {
	return numeric.NewtonConfig{
		AbsTol:   1e-3,
		RelTol:   1e-10,
		MaxIter:  50,
		DiffStep: 1e-6,
		Positive: true,
	}
}

// DarkConductivity is a conductivity calculator with the excess carrier
// density fixed at DarkNxc. It converts between dark conductivity and
// doping density.
type DarkConductivity struct {
	cond *Conductivity

	// Newton configures the root finder used by ConductivityToDoping.
	Newton numeric.NewtonConfig
}

// NewDarkConductivity creates a dark conductivity calculator over cat
// starting from cfg.
func NewDarkConductivity(cat *catalog.Catalog, cfg Config, logger *slog.Logger) *DarkConductivity {
	cfg.Nxc = []float64{DarkNxc}
	return &DarkConductivity{
		cond:   NewConductivity(cat, cfg, logger),
		Newton: DarkNewtonConfig(),
	}
}

// Calculate merges o into the configuration and returns the dark
// conductivity. Any nxc in o is ignored.
func (d *DarkConductivity) Calculate(o Overrides) ([]float64, error) {
	o.Nxc = []float64{DarkNxc}
	return d.cond.Calculate(o)
}

// Config returns a copy of the current configuration.
func (d *DarkConductivity) Config() Config {
	return d.cond.Config()
}

// UsedAuthors reports the canonical authors of the current sub-models.
func (d *DarkConductivity) UsedAuthors() (UsedAuthors, error) {
	return d.cond.UsedAuthors()
}

// ResistivityToDoping returns the doping density of a sample with dark
// resistivity rho (Ohm cm).
func (d *DarkConductivity) ResistivityToDoping(rho float64, o Overrides) (float64, error) {
	if !(rho > 0) || math.IsInf(rho, 0) {
		return 0, semerr.Invalidf("resistivity", "must be positive and finite, got %g", rho)
	}
	return d.ConductivityToDoping(1/rho, o)
}

// ConductivityToDoping returns the substitutional doping density (cm^-3)
// of the configured dopant type that gives dark conductivity sigma (S/cm).
// The search starts from sigma/(q*mu_e) with mu_e the undoped electron
// mobility and refines with Newton iteration on sigma(N) - sigma.
func (d *DarkConductivity) ConductivityToDoping(sigma float64, o Overrides) (float64, error) {
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return 0, semerr.Invalidf("conductivity", "must be positive and finite, got %g", sigma)
	}
	o.Nxc = []float64{DarkNxc}

	cfg := d.cond.config.Merge(o)
	if len(cfg.Temp) != 1 {
		return 0, semerr.Invalidf("temp", "doping search needs a single temperature, got %d", len(cfg.Temp))
	}
	if cfg.DopantType != PType && cfg.DopantType != NType {
		return 0, semerr.Invalidf("dopant_type", "must be %q or %q, got %q", PType, NType, cfg.DopantType)
	}

	b, err := d.cond.bind(cfg)
	if err != nil {
		return 0, err
	}
	mue, _, err := b.mobility.Evaluate(physics.MobilityInputs{
		Temp: cfg.Temp,
		Na:   []float64{0},
		Nd:   []float64{0},
		Nxc:  cfg.Nxc,
	})
	if err != nil {
		return 0, err
	}
	guess := sigma / (physics.Charge * mue[0])

	// Iterates are evaluated on a copy of the configuration; the calculator
	// only takes the solution.
	at := func(n float64) Config {
		step := cfg
		if cfg.DopantType == PType {
			step.Na, step.Nd = []float64{n}, []float64{0}
		} else {
			step.Na, step.Nd = []float64{0}, []float64{n}
		}
		return step
	}
	residual := func(n float64) (float64, error) {
		got, err := conductivity(at(n), b)
		if err != nil {
			return 0, err
		}
		return got[0] - sigma, nil
	}

	doping, err := numeric.Newton(residual, guess, d.Newton)
	if err != nil {
		return 0, fmt.Errorf("doping for conductivity %g S/cm: %w", sigma, err)
	}
	d.cond.config = at(doping)
	d.cond.bound = b
	d.cond.logger.Debug("Solved dark conductivity for doping",
		"conductivity", sigma,
		"dopant_type", cfg.DopantType,
		"doping", doping)
	return doping, nil
}
