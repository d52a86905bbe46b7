package electrical

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semiconductor/carrier"
	"github.com/c360studio/semiconductor/catalog"
	"github.com/c360studio/semiconductor/material"
	"github.com/c360studio/semiconductor/numeric"
	"github.com/c360studio/semiconductor/physics"
	"github.com/c360studio/semiconductor/property"
	"github.com/c360studio/semiconductor/semerr"
)

func ptr[T any](v T) *T { return &v }

func embedded(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Embedded()
	require.NoError(t, err)
	return c
}

// withGermanium overlays a minimal Ge material onto the embedded catalog.
func withGermanium(t *testing.T) *catalog.Catalog {
	t.Helper()
	dir := t.TempDir()
	tables := map[string]string{
		physics.FamilyMobility: `
default: {model: GeLattice}
GeLattice:
  model: constant
  mu_e: 3900
  mu_h: 1900
`,
		physics.FamilyIonisation: `
default: {model: Full}
Full:
  model: complete
`,
		physics.FamilyIntrinsicDensity: `
default: {model: GeRoom}
GeRoom:
  model: constant
  ni: 2.0e13
`,
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Ge"), 0755))
	for family, body := range tables {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "Ge", family+".yaml"), []byte(body), 0644))
	}
	over, err := catalog.LoadDir(dir, nil)
	require.NoError(t, err)
	return embedded(t).Overlay(over)
}

func TestConductivityMatchesComposition(t *testing.T) {
	cat := embedded(t)
	cond := NewConductivity(cat, DefaultConfig(), nil)

	got, err := cond.Calculate(Overrides{})
	require.NoError(t, err)
	require.Len(t, got, 1)

	si, err := cat.Material("Si")
	require.NoError(t, err)
	mob, err := NewMobility(si, "")
	require.NoError(t, err)
	ion, err := NewIonisation(si, "")
	require.NoError(t, err)
	ni, err := material.NewIntrinsicDensity(si, "")
	require.NoError(t, err)

	temp := []float64{300}
	nxc := []float64{1e10}
	ionised, err := ion.Evaluate(physics.IonisationInputs{
		Temp:     temp,
		Dopants:  []float64{1e16},
		Nxc:      nxc,
		Impurity: "boron",
		Species:  physics.Acceptor,
	})
	require.NoError(t, err)
	assert.Less(t, ionised[0], 1e16)

	n, p, err := carrier.Carriers(nxc, ionised, []float64{0}, temp, ni)
	require.NoError(t, err)
	mue, muh, err := mob.Evaluate(physics.MobilityInputs{Temp: temp, Na: []float64{1e16}, Nd: []float64{0}, Nxc: nxc})
	require.NoError(t, err)

	want := physics.Charge * (mue[0]*n[0] + muh[0]*p[0])
	assert.InEpsilon(t, want, got[0], 1e-12)
	assert.InEpsilon(t, 0.68, got[0], 0.05)

	used, err := cond.UsedAuthors()
	require.NoError(t, err)
	assert.Equal(t, UsedAuthors{
		Mobility:         "Masetti1983",
		IntrinsicDensity: "Misiakos1993",
		Ionisation:       "Boltzmann",
	}, used)
}

func TestResistivityIsReciprocal(t *testing.T) {
	cat := embedded(t)
	configs := []Overrides{
		{},
		{Na: []float64{1e14, 1e16, 1e18}},
		{Na: []float64{0}, Nd: []float64{5e15}, Dopant: ptr("phosphorus")},
		{Temp: []float64{250, 300, 350}, MobilityAuthor: ptr("Arora1982")},
		{IonisationAuthor: ptr("Complete"), NiAuthor: ptr(property.Const(1e10))},
	}
	for i, o := range configs {
		cond := NewConductivity(cat, DefaultConfig(), nil)
		res := NewResistivity(cat, DefaultConfig(), nil)

		sigma, err := cond.Calculate(o)
		require.NoError(t, err, "config %d", i)
		rho, err := res.Calculate(o)
		require.NoError(t, err, "config %d", i)

		require.Len(t, rho, len(sigma))
		for k := range sigma {
			assert.InEpsilon(t, 1/sigma[k], rho[k], 1e-12, "config %d element %d", i, k)
		}
	}
}

func TestMajorityIonisationPerElement(t *testing.T) {
	cat := embedded(t)
	mixed := NewConductivity(cat, DefaultConfig(), nil)
	got, err := mixed.Calculate(Overrides{
		Na: []float64{1e17, 0, 1e15},
		Nd: []float64{0, 1e17, 1e15},
	})
	require.NoError(t, err)
	require.Len(t, got, 3)

	single := NewConductivity(cat, DefaultConfig(), nil)
	pairs := [][2]float64{{1e17, 0}, {0, 1e17}, {1e15, 1e15}}
	for i, pair := range pairs {
		want, err := single.Calculate(Overrides{Na: []float64{pair[0]}, Nd: []float64{pair[1]}})
		require.NoError(t, err)
		assert.InEpsilon(t, want[0], got[i], 1e-12)
	}

	complete := NewConductivity(cat, DefaultConfig(), nil)
	full, err := complete.Calculate(Overrides{
		IonisationAuthor: ptr("Complete"),
		Na:               []float64{1e17, 0, 1e15},
		Nd:               []float64{0, 1e17, 1e15},
	})
	require.NoError(t, err)
	assert.Greater(t, full[0], got[0])
	assert.Greater(t, full[1], got[1])
	assert.InEpsilon(t, full[2], got[2], 1e-12)
}

func TestConstantNi(t *testing.T) {
	cond := NewConductivity(embedded(t), DefaultConfig(), nil)
	_, err := cond.Calculate(Overrides{NiAuthor: ptr(property.Const(1e10))})
	require.NoError(t, err)

	used, err := cond.UsedAuthors()
	require.NoError(t, err)
	assert.Equal(t, "1e+10", used.IntrinsicDensity)
}

func TestUnknownAuthorKeepsConfiguration(t *testing.T) {
	cond := NewConductivity(embedded(t), DefaultConfig(), nil)
	first, err := cond.Calculate(Overrides{MobilityAuthor: ptr("Intrinsic")})
	require.NoError(t, err)

	_, err = cond.Calculate(Overrides{MobilityAuthor: ptr("Nobody2000"), Na: []float64{1e18}})
	require.Error(t, err)
	var uae *semerr.UnknownAuthorError
	require.ErrorAs(t, err, &uae)
	assert.Equal(t, physics.FamilyMobility, uae.Family)

	assert.Equal(t, "Intrinsic", cond.Config().MobilityAuthor)
	assert.Equal(t, []float64{1e16}, cond.Config().Na)

	again, err := cond.Calculate(Overrides{})
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestMaterialChangeRebinds(t *testing.T) {
	cond := NewConductivity(withGermanium(t), DefaultConfig(), nil)
	_, err := cond.Calculate(Overrides{})
	require.NoError(t, err)

	_, err = cond.Calculate(Overrides{Material: ptr("Ge")})
	require.NoError(t, err)
	used, err := cond.UsedAuthors()
	require.NoError(t, err)
	assert.Equal(t, UsedAuthors{Mobility: "GeLattice", IntrinsicDensity: "GeRoom", Ionisation: "Full"}, used)

	t.Run("explicit author from another material", func(t *testing.T) {
		cond := NewConductivity(withGermanium(t), DefaultConfig(), nil)
		_, err := cond.Calculate(Overrides{MobilityAuthor: ptr("Masetti1983")})
		require.NoError(t, err)

		_, err = cond.Calculate(Overrides{Material: ptr("Ge")})
		assert.True(t, semerr.IsUnknownAuthor(err))
		assert.Equal(t, "Si", cond.Config().Material)

		_, err = cond.Calculate(Overrides{Material: ptr("Ge"), MobilityAuthor: ptr("")})
		require.NoError(t, err)
		used, err := cond.UsedAuthors()
		require.NoError(t, err)
		assert.Equal(t, "GeLattice", used.Mobility)
	})

	t.Run("unknown material", func(t *testing.T) {
		_, err := cond.Calculate(Overrides{Material: ptr("GaAs")})
		assert.True(t, semerr.IsConfig(err))
		assert.Equal(t, "Ge", cond.Config().Material)
	})
}

func TestCalculateInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		o     Overrides
		field string
	}{
		{name: "negative acceptors", o: Overrides{Na: []float64{-1}}, field: "Na"},
		{name: "negative donors", o: Overrides{Nd: []float64{-1}}, field: "Nd"},
		{name: "negative excess", o: Overrides{Nxc: []float64{-5}}, field: "nxc"},
		{name: "zero kelvin", o: Overrides{Temp: []float64{0}}, field: "temp"},
		{name: "infinite excess", o: Overrides{Nxc: []float64{math.Inf(1)}}, field: "nxc"},
		{name: "infinite acceptors", o: Overrides{Na: []float64{math.Inf(1)}}, field: "Na"},
		{name: "infinite temperature", o: Overrides{Temp: []float64{math.Inf(1)}}, field: "temp"},
		{name: "zero intrinsic density", o: Overrides{NiAuthor: ptr(property.Const(0)), Na: []float64{1e15}, Nd: []float64{1e15}}, field: "ni"},
		{name: "length mismatch", o: Overrides{Na: []float64{1, 2}, Nd: []float64{1, 2, 3}}, field: "input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond := NewConductivity(embedded(t), DefaultConfig(), nil)
			_, err := cond.Calculate(tt.o)
			var iie *semerr.InvalidInputError
			require.ErrorAs(t, err, &iie)
			assert.Equal(t, tt.field, iie.Field)
			assert.Equal(t, DefaultConfig(), cond.Config())

			sigma, err := cond.Calculate(Overrides{Temp: []float64{250}})
			require.NoError(t, err)
			assert.True(t, numeric.Finite(sigma))
		})
	}
}

func TestUnknownImpurity(t *testing.T) {
	cond := NewConductivity(embedded(t), DefaultConfig(), nil)
	_, err := cond.Calculate(Overrides{Dopant: ptr("unobtainium")})
	assert.True(t, semerr.IsInvalidInput(err))
}
