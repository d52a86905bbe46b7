package electrical

import (
	"fmt"

	"github.com/c360studio/semiconductor/catalog"
	"github.com/c360studio/semiconductor/numeric"
	"github.com/c360studio/semiconductor/physics"
	"github.com/c360studio/semiconductor/property"
)

// Ionisation is the dopant ionisation model of a material.
type Ionisation struct {
	*property.Property[physics.IonisationFunc]
}

// NewIonisation selects author ("" = default) from m's table.
func NewIonisation(m *catalog.Material, author string) (*Ionisation, error) {
	reg, err := m.Ionisation()
	if err != nil {
		return nil, err
	}
	p, err := property.New(reg, author)
	if err != nil {
		return nil, err
	}
	return &Ionisation{Property: p}, nil
}

// Evaluate returns the ionised density of in.Dopants. The result never
// exceeds the substitutional density.
func (i *Ionisation) Evaluate(in physics.IonisationInputs) ([]float64, error) {
	if err := numeric.CheckPositive("temp", in.Temp); err != nil {
		return nil, err
	}
	if err := numeric.CheckNonNegative("dopants", in.Dopants); err != nil {
		return nil, err
	}
	if err := numeric.CheckNonNegative("nxc", in.Nxc); err != nil {
		return nil, err
	}
	rec, err := i.Active()
	if err != nil {
		return nil, err
	}
	out, err := rec.Impl(rec.Params, in)
	if err != nil {
		return nil, fmt.Errorf("ionisation %s: %w", rec.Author, err)
	}
	out = numeric.ClampNonNegative(out)
	for k := range out {
		if dop := numeric.At(in.Dopants, k); out[k] > dop {
			out[k] = dop
		}
	}
	return out, nil
}
