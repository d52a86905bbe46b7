package electrical

import (
	"fmt"

	"github.com/c360studio/semiconductor/catalog"
	"github.com/c360studio/semiconductor/numeric"
	"github.com/c360studio/semiconductor/physics"
	"github.com/c360studio/semiconductor/property"
)

// Mobility is the electron and hole mobility (cm^2/Vs) model of a material.
type Mobility struct {
	*property.Property[physics.MobilityFunc]
}

// NewMobility selects author ("" = default) from m's table.
func NewMobility(m *catalog.Material, author string) (*Mobility, error) {
	reg, err := m.Mobility()
	if err != nil {
		return nil, err
	}
	p, err := property.New(reg, author)
	if err != nil {
		return nil, err
	}
	return &Mobility{Property: p}, nil
}

// Evaluate returns the electron and hole mobilities.
func (m *Mobility) Evaluate(in physics.MobilityInputs) (electron, hole []float64, err error) {
	if err := numeric.CheckPositive("temp", in.Temp); err != nil {
		return nil, nil, err
	}
	if err := numeric.CheckNonNegative("Na", in.Na); err != nil {
		return nil, nil, err
	}
	if err := numeric.CheckNonNegative("Nd", in.Nd); err != nil {
		return nil, nil, err
	}
	rec, err := m.Active()
	if err != nil {
		return nil, nil, err
	}
	electron, hole, err = rec.Impl(rec.Params, in)
	if err != nil {
		return nil, nil, fmt.Errorf("mobility %s: %w", rec.Author, err)
	}
	return numeric.ClampNonNegative(electron), numeric.ClampNonNegative(hole), nil
}

// Electron returns the electron mobility.
func (m *Mobility) Electron(in physics.MobilityInputs) ([]float64, error) {
	e, _, err := m.Evaluate(in)
	return e, err
}

// Hole returns the hole mobility.
func (m *Mobility) Hole(in physics.MobilityInputs) ([]float64, error) {
	_, h, err := m.Evaluate(in)
	return h, err
}
