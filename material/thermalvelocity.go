package material

import (
	"fmt"

	"github.com/c360studio/semiconductor/catalog"
	"github.com/c360studio/semiconductor/numeric"
	"github.com/c360studio/semiconductor/physics"
	"github.com/c360studio/semiconductor/property"
)

// ThermalVelocity is the mean thermal velocity (cm/s) of conduction- and
// valence-band carriers.
type ThermalVelocity struct {
	*property.Property[physics.ThermalVelocityFunc]

	// BandGap supplies the Eg(T)/Eg(300) ratio that scales the transverse
	// electron mass.
	BandGap *IntrinsicBandGap
}

// NewThermalVelocity selects author ("" = default) from m's table. A nil
// bandGap uses m's default intrinsic band gap.
func NewThermalVelocity(m *catalog.Material, author string, bandGap *IntrinsicBandGap) (*ThermalVelocity, error) {
	reg, err := m.ThermalVelocity()
	if err != nil {
		return nil, err
	}
	p, err := property.New(reg, author)
	if err != nil {
		return nil, err
	}
	if bandGap == nil {
		bandGap, err = NewIntrinsicBandGap(m, "")
		if err != nil {
			return nil, err
		}
	}
	return &ThermalVelocity{Property: p, BandGap: bandGap}, nil
}

// Evaluate returns the conduction- and valence-band thermal velocities.
func (v *ThermalVelocity) Evaluate(temp []float64) (conduction, valence []float64, err error) {
	ratio, err := v.BandGap.Ratio(temp)
	if err != nil {
		return nil, nil, err
	}
	rec, err := v.Active()
	if err != nil {
		return nil, nil, err
	}
	conduction, valence, err = rec.Impl(rec.Params, physics.ThermalVelocityInputs{Temp: temp, EgRatio: ratio})
	if err != nil {
		return nil, nil, fmt.Errorf("thermal velocity %s: %w", rec.Author, err)
	}
	if !numeric.Finite(conduction) || !numeric.Finite(valence) {
		return nil, nil, fmt.Errorf("thermal velocity %s: non-finite result", rec.Author)
	}
	return conduction, valence, nil
}
