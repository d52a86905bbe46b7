// Package diagnostics evaluates every author of a property family over a
// range of inputs so the models can be compared with each other and with
// digitised reference data. It only reads models; nothing here changes a
// catalog or a calculator.
package diagnostics

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/c360studio/semiconductor/catalog"
	"github.com/c360studio/semiconductor/electrical"
	"github.com/c360studio/semiconductor/material"
	"github.com/c360studio/semiconductor/numeric"
	"github.com/c360studio/semiconductor/physics"
	"github.com/c360studio/semiconductor/semerr"
)

// Series is one curve of a sweep.
type Series struct {
	Name string    `json:"name"`
	X    []float64 `json:"x"`
	Y    []float64 `json:"y"`
}

// Sweep is every author of a family evaluated over the same inputs.
type Sweep struct {
	Material string   `json:"material"`
	Family   string   `json:"family"`
	XLabel   string   `json:"x_label"`
	YLabel   string   `json:"y_label"`
	LogX     bool     `json:"log_x"`
	Series   []Series `json:"series"`
}

// SweepOptions fixes the inputs that are not swept. Zero values take the
// defaults of DefaultSweepOptions.
type SweepOptions struct {
	// X overrides the swept values (temperature or doping, per family).
	X []float64

	Temp   float64
	Doping float64
	Nxc    float64
	Dopant string
}

// DefaultSweepOptions returns 300 K, 1e16 cm^-3 boron and 1e10 cm^-3
// excess carriers.
func DefaultSweepOptions() SweepOptions {
	return SweepOptions{Temp: 300, Doping: 1e16, Nxc: 1e10, Dopant: "boron"}
}

func (o SweepOptions) withDefaults() SweepOptions {
	d := DefaultSweepOptions()
	if o.Temp == 0 {
		o.Temp = d.Temp
	}
	if o.Doping == 0 {
		o.Doping = d.Doping
	}
	if o.Nxc == 0 {
		o.Nxc = d.Nxc
	}
	if o.Dopant == "" {
		o.Dopant = d.Dopant
	}
	return o
}

// Linspace returns n evenly spaced values from lo to hi.
func Linspace(lo, hi float64, n int) []float64 {
	return floats.Span(make([]float64, n), lo, hi)
}

// Logspace returns n logarithmically spaced values from lo to hi.
func Logspace(lo, hi float64, n int) []float64 {
	return floats.LogSpan(make([]float64, n), lo, hi)
}

// TemperatureRange is the default temperature axis (K).
func TemperatureRange() []float64 {
	return Linspace(100, 500, 81)
}

// DopingRange is the default doping axis (cm^-3).
func DopingRange() []float64 {
	return Logspace(1e12, 1e20, 81)
}

// Run sweeps every selectable author of family for m.
func Run(m *catalog.Material, family string, opts SweepOptions) (*Sweep, error) {
	opts = opts.withDefaults()
	s := &Sweep{Material: m.Name, Family: family}

	var err error
	switch family {
	case physics.FamilyIntrinsicBandGap:
		err = sweepIntrinsicBandGap(m, s, opts)
	case physics.FamilyBandGapNarrowing:
		err = sweepBandGapNarrowing(m, s, opts)
	case physics.FamilyIntrinsicDensity:
		err = sweepIntrinsicDensity(m, s, opts)
	case physics.FamilyMobility:
		err = sweepMobility(m, s, opts)
	case physics.FamilyIonisation:
		err = sweepIonisation(m, s, opts)
	case physics.FamilyThermalVelocity:
		err = sweepThermalVelocity(m, s, opts)
	default:
		return nil, semerr.Invalidf("family", "unknown property family %q", family)
	}
	if err != nil {
		return nil, fmt.Errorf("sweep %s %s: %w", m.Name, family, err)
	}
	return s, nil
}

func axis(opts SweepOptions, def func() []float64) []float64 {
	if len(opts.X) > 0 {
		return append([]float64(nil), opts.X...)
	}
	return def()
}

func sweepIntrinsicBandGap(m *catalog.Material, s *Sweep, opts SweepOptions) error {
	s.XLabel, s.YLabel = "Temperature (K)", "Intrinsic band gap (eV)"
	x := axis(opts, TemperatureRange)

	egi, err := material.NewIntrinsicBandGap(m, "")
	if err != nil {
		return err
	}
	for _, author := range egi.Authors() {
		if err := egi.SelectModel(author); err != nil {
			return err
		}
		y, err := egi.Evaluate(x)
		if err != nil {
			return err
		}
		s.Series = append(s.Series, Series{Name: author, X: x, Y: y})
	}
	return nil
}

func sweepBandGapNarrowing(m *catalog.Material, s *Sweep, opts SweepOptions) error {
	s.XLabel, s.YLabel, s.LogX = "Doping (cm^-3)", "Band-gap narrowing (eV)", true
	x := axis(opts, DopingRange)

	bgn, err := material.NewBandGapNarrowing(m, "")
	if err != nil {
		return err
	}
	for _, author := range bgn.Authors() {
		if err := bgn.SelectModel(author); err != nil {
			return err
		}
		y, err := bgn.Evaluate(x, numeric.Scalar(opts.Nxc))
		if err != nil {
			return err
		}
		s.Series = append(s.Series, Series{Name: author, X: x, Y: y})
	}
	return nil
}

func sweepIntrinsicDensity(m *catalog.Material, s *Sweep, opts SweepOptions) error {
	s.XLabel, s.YLabel = "Temperature (K)", "Intrinsic carrier density (cm^-3)"
	x := axis(opts, TemperatureRange)

	ni, err := material.NewIntrinsicDensity(m, "")
	if err != nil {
		return err
	}
	for _, author := range ni.Authors() {
		if err := ni.SelectModel(author); err != nil {
			return err
		}
		y, err := ni.Evaluate(x)
		if err != nil {
			return err
		}
		s.Series = append(s.Series, Series{Name: author, X: x, Y: y})
	}
	return nil
}

func sweepMobility(m *catalog.Material, s *Sweep, opts SweepOptions) error {
	s.XLabel, s.YLabel, s.LogX = "Doping (cm^-3)", "Mobility (cm^2/Vs)", true
	x := axis(opts, DopingRange)

	mob, err := electrical.NewMobility(m, "")
	if err != nil {
		return err
	}
	in := physics.MobilityInputs{
		Temp: numeric.Scalar(opts.Temp),
		Na:   x,
		Nd:   numeric.Scalar(0),
		Nxc:  numeric.Scalar(opts.Nxc),
	}
	for _, author := range mob.Authors() {
		if err := mob.SelectModel(author); err != nil {
			return err
		}
		e, h, err := mob.Evaluate(in)
		if err != nil {
			return err
		}
		s.Series = append(s.Series,
			Series{Name: author + " electron", X: x, Y: e},
			Series{Name: author + " hole", X: x, Y: h})
	}
	return nil
}

func sweepIonisation(m *catalog.Material, s *Sweep, opts SweepOptions) error {
	s.XLabel, s.YLabel, s.LogX = "Doping (cm^-3)", "Ionised fraction", true
	x := axis(opts, DopingRange)

	ion, err := electrical.NewIonisation(m, "")
	if err != nil {
		return err
	}
	species := physics.Acceptor
	if isDonor(opts.Dopant) {
		species = physics.Donor
	}
	for _, author := range ion.Authors() {
		if err := ion.SelectModel(author); err != nil {
			return err
		}
		ionised, err := ion.Evaluate(physics.IonisationInputs{
			Temp:     numeric.Scalar(opts.Temp),
			Dopants:  x,
			Nxc:      numeric.Scalar(opts.Nxc),
			Impurity: opts.Dopant,
			Species:  species,
		})
		if err != nil {
			return err
		}
		y := make([]float64, len(x))
		floats.DivTo(y, ionised, x)
		s.Series = append(s.Series, Series{Name: author, X: x, Y: y})
	}
	return nil
}

func sweepThermalVelocity(m *catalog.Material, s *Sweep, opts SweepOptions) error {
	s.XLabel, s.YLabel = "Temperature (K)", "Thermal velocity (cm/s)"
	x := axis(opts, TemperatureRange)

	vel, err := material.NewThermalVelocity(m, "", nil)
	if err != nil {
		return err
	}
	for _, author := range vel.Authors() {
		if err := vel.SelectModel(author); err != nil {
			return err
		}
		c, v, err := vel.Evaluate(x)
		if err != nil {
			return err
		}
		s.Series = append(s.Series,
			Series{Name: author + " conduction", X: x, Y: c},
			Series{Name: author + " valence", X: x, Y: v})
	}
	return nil
}

var donors = map[string]bool{
	"phosphorus": true,
	"arsenic":    true,
	"antimony":   true,
}

func isDonor(impurity string) bool {
	return donors[impurity]
}
