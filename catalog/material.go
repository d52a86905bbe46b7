package catalog

import (
	"github.com/c360studio/semiconductor/model"
	"github.com/c360studio/semiconductor/physics"
	"github.com/c360studio/semiconductor/semerr"
)

// Material groups the family registries of one material. A nil registry
// means the family has no table for this material.
type Material struct {
	Name string

	intrinsicBandGap *model.Registry[physics.IntrinsicBandGapFunc]
	bandGapNarrowing *model.Registry[physics.BandGapNarrowingFunc]
	intrinsicDensity *model.Registry[physics.IntrinsicDensityFunc]
	mobility         *model.Registry[physics.MobilityFunc]
	ionisation       *model.Registry[physics.IonisationFunc]
	thermalVelocity  *model.Registry[physics.ThermalVelocityFunc]
}

// load parses data as the table for family. It reports false for files
// that do not name a family.
func (m *Material) load(family, source string, data []byte) (bool, error) {
	var err error
	switch family {
	case physics.FamilyIntrinsicBandGap:
		m.intrinsicBandGap, err = model.Load(source, data, physics.IntrinsicBandGapKinds)
	case physics.FamilyBandGapNarrowing:
		m.bandGapNarrowing, err = model.Load(source, data, physics.BandGapNarrowingKinds)
	case physics.FamilyIntrinsicDensity:
		m.intrinsicDensity, err = model.Load(source, data, physics.IntrinsicDensityKinds)
	case physics.FamilyMobility:
		m.mobility, err = model.Load(source, data, physics.MobilityKinds)
	case physics.FamilyIonisation:
		m.ionisation, err = model.Load(source, data, physics.IonisationKinds)
	case physics.FamilyThermalVelocity:
		m.thermalVelocity, err = model.Load(source, data, physics.ThermalVelocityKinds)
	default:
		return false, nil
	}
	return true, err
}

func (m *Material) overlay(over *Material) {
	if over.intrinsicBandGap != nil {
		m.intrinsicBandGap = over.intrinsicBandGap
	}
	if over.bandGapNarrowing != nil {
		m.bandGapNarrowing = over.bandGapNarrowing
	}
	if over.intrinsicDensity != nil {
		m.intrinsicDensity = over.intrinsicDensity
	}
	if over.mobility != nil {
		m.mobility = over.mobility
	}
	if over.ionisation != nil {
		m.ionisation = over.ionisation
	}
	if over.thermalVelocity != nil {
		m.thermalVelocity = over.thermalVelocity
	}
}

func missing(material, family string) error {
	return semerr.Configf(material, "no %s table for material %q", family, material)
}

// IntrinsicBandGap returns the intrinsic band gap registry.
func (m *Material) IntrinsicBandGap() (*model.Registry[physics.IntrinsicBandGapFunc], error) {
	if m.intrinsicBandGap == nil {
		return nil, missing(m.Name, physics.FamilyIntrinsicBandGap)
	}
	return m.intrinsicBandGap, nil
}

// BandGapNarrowing returns the band-gap narrowing registry.
func (m *Material) BandGapNarrowing() (*model.Registry[physics.BandGapNarrowingFunc], error) {
	if m.bandGapNarrowing == nil {
		return nil, missing(m.Name, physics.FamilyBandGapNarrowing)
	}
	return m.bandGapNarrowing, nil
}

// IntrinsicDensity returns the intrinsic carrier density registry.
func (m *Material) IntrinsicDensity() (*model.Registry[physics.IntrinsicDensityFunc], error) {
	if m.intrinsicDensity == nil {
		return nil, missing(m.Name, physics.FamilyIntrinsicDensity)
	}
	return m.intrinsicDensity, nil
}

// Mobility returns the carrier mobility registry.
func (m *Material) Mobility() (*model.Registry[physics.MobilityFunc], error) {
	if m.mobility == nil {
		return nil, missing(m.Name, physics.FamilyMobility)
	}
	return m.mobility, nil
}

// Ionisation returns the dopant ionisation registry.
func (m *Material) Ionisation() (*model.Registry[physics.IonisationFunc], error) {
	if m.ionisation == nil {
		return nil, missing(m.Name, physics.FamilyIonisation)
	}
	return m.ionisation, nil
}

// ThermalVelocity returns the thermal velocity registry.
func (m *Material) ThermalVelocity() (*model.Registry[physics.ThermalVelocityFunc], error) {
	if m.thermalVelocity == nil {
		return nil, missing(m.Name, physics.FamilyThermalVelocity)
	}
	return m.thermalVelocity, nil
}

// Families returns the family names that have a table for this material.
func (m *Material) Families() []string {
	var out []string
	for _, f := range physics.Families {
		if m.has(f) {
			out = append(out, f)
		}
	}
	return out
}

func (m *Material) has(family string) bool {
	switch family {
	case physics.FamilyIntrinsicBandGap:
		return m.intrinsicBandGap != nil
	case physics.FamilyBandGapNarrowing:
		return m.bandGapNarrowing != nil
	case physics.FamilyIntrinsicDensity:
		return m.intrinsicDensity != nil
	case physics.FamilyMobility:
		return m.mobility != nil
	case physics.FamilyIonisation:
		return m.ionisation != nil
	case physics.FamilyThermalVelocity:
		return m.thermalVelocity != nil
	}
	return false
}

// Table returns the family-independent view of family's registry.
func (m *Material) Table(family string) (model.Table, error) {
	if !m.has(family) {
		if !isFamily(family) {
			return nil, semerr.Configf(m.Name, "unknown property family %q", family)
		}
		return nil, missing(m.Name, family)
	}
	switch family {
	case physics.FamilyIntrinsicBandGap:
		return m.intrinsicBandGap, nil
	case physics.FamilyBandGapNarrowing:
		return m.bandGapNarrowing, nil
	case physics.FamilyIntrinsicDensity:
		return m.intrinsicDensity, nil
	case physics.FamilyMobility:
		return m.mobility, nil
	case physics.FamilyIonisation:
		return m.ionisation, nil
	default:
		return m.thermalVelocity, nil
	}
}

func isFamily(name string) bool {
	for _, f := range physics.Families {
		if f == name {
			return true
		}
	}
	return false
}
