// Package material evaluates the temperature- and doping-dependent
// properties of a material: intrinsic band gap, band-gap narrowing, the
// combined band gap, intrinsic carrier density and thermal velocity.
//
// Each type embeds a property.Property, so SelectModel, Author and Authors
// are available directly.
package material

import (
	"fmt"

	"github.com/c360studio/semiconductor/catalog"
	"github.com/c360studio/semiconductor/numeric"
	"github.com/c360studio/semiconductor/physics"
	"github.com/c360studio/semiconductor/property"
)

// IntrinsicBandGap is the band gap (eV) of the undoped material.
type IntrinsicBandGap struct {
	*property.Property[physics.IntrinsicBandGapFunc]

	// Multiplier scales every evaluated band gap. Zero means 1.
	Multiplier float64
}

// NewIntrinsicBandGap selects author ("" = default) from m's table.
func NewIntrinsicBandGap(m *catalog.Material, author string) (*IntrinsicBandGap, error) {
	reg, err := m.IntrinsicBandGap()
	if err != nil {
		return nil, err
	}
	p, err := property.New(reg, author)
	if err != nil {
		return nil, err
	}
	return &IntrinsicBandGap{Property: p}, nil
}

// Evaluate returns Eg(temp).
func (b *IntrinsicBandGap) Evaluate(temp []float64) ([]float64, error) {
	if err := numeric.CheckPositive("temp", temp); err != nil {
		return nil, err
	}
	rec, err := b.Active()
	if err != nil {
		return nil, err
	}
	eg, err := rec.Impl(rec.Params, temp)
	if err != nil {
		return nil, fmt.Errorf("intrinsic band gap %s: %w", rec.Author, err)
	}
	if b.Multiplier != 0 && b.Multiplier != 1 {
		for i := range eg {
			eg[i] *= b.Multiplier
		}
	}
	return eg, nil
}

// Ratio returns Eg(temp)/Eg(300 K).
func (b *IntrinsicBandGap) Ratio(temp []float64) ([]float64, error) {
	eg, err := b.Evaluate(temp)
	if err != nil {
		return nil, err
	}
	ref, err := b.Evaluate(numeric.Scalar(physics.RoomTemp))
	if err != nil {
		return nil, err
	}
	return numeric.Map(eg, func(v float64) float64 { return v / ref[0] }), nil
}

// BandGapNarrowing is the doping-induced band-gap reduction (eV). It does
// not depend on temperature.
type BandGapNarrowing struct {
	*property.Property[physics.BandGapNarrowingFunc]
}

// NewBandGapNarrowing selects author ("" = default) from m's table.
func NewBandGapNarrowing(m *catalog.Material, author string) (*BandGapNarrowing, error) {
	reg, err := m.BandGapNarrowing()
	if err != nil {
		return nil, err
	}
	p, err := property.New(reg, author)
	if err != nil {
		return nil, err
	}
	return &BandGapNarrowing{Property: p}, nil
}

// Evaluate returns the narrowing for the net doping and excess carrier
// density. The result is never negative.
func (b *BandGapNarrowing) Evaluate(doping, nxc []float64) ([]float64, error) {
	if err := numeric.CheckNonNegative("doping", doping); err != nil {
		return nil, err
	}
	if err := numeric.CheckNonNegative("nxc", nxc); err != nil {
		return nil, err
	}
	if _, err := numeric.Len(doping, nxc); err != nil {
		return nil, err
	}
	rec, err := b.Active()
	if err != nil {
		return nil, err
	}
	bgn, err := rec.Impl(rec.Params, doping, nxc)
	if err != nil {
		return nil, fmt.Errorf("band-gap narrowing %s: %w", rec.Author, err)
	}
	return numeric.ClampNonNegative(bgn), nil
}

// IntrinsicDensity is the intrinsic carrier density (cm^-3). It satisfies
// carrier.NiProvider.
type IntrinsicDensity struct {
	*property.Property[physics.IntrinsicDensityFunc]
}

// NewIntrinsicDensity selects author ("" = default) from m's table.
func NewIntrinsicDensity(m *catalog.Material, author string) (*IntrinsicDensity, error) {
	reg, err := m.IntrinsicDensity()
	if err != nil {
		return nil, err
	}
	p, err := property.New(reg, author)
	if err != nil {
		return nil, err
	}
	return &IntrinsicDensity{Property: p}, nil
}

// Evaluate returns ni(temp).
func (d *IntrinsicDensity) Evaluate(temp []float64) ([]float64, error) {
	if err := numeric.CheckPositive("temp", temp); err != nil {
		return nil, err
	}
	rec, err := d.Active()
	if err != nil {
		return nil, err
	}
	ni, err := rec.Impl(rec.Params, temp)
	if err != nil {
		return nil, fmt.Errorf("intrinsic carrier density %s: %w", rec.Author, err)
	}
	return numeric.ClampNonNegative(ni), nil
}

// Ni is Evaluate under the carrier.NiProvider name.
func (d *IntrinsicDensity) Ni(temp []float64) ([]float64, error) {
	return d.Evaluate(temp)
}
