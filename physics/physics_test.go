package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semiconductor/model"
	"github.com/c360studio/semiconductor/semerr"
)

func TestKindTables(t *testing.T) {
	assert.Equal(t, FamilyMobility, MobilityKinds.Family())
	assert.ElementsMatch(t, []model.Kind{"caughey_thomas", "constant"}, MobilityKinds.Kinds())
	assert.ElementsMatch(t, []model.Kind{"apparent_bgn", "bgn_power"}, BandGapNarrowingKinds.Kinds())
	assert.ElementsMatch(t, []model.Kind{"complete", "boltzmann"}, IonisationKinds.Kinds())
	assert.ElementsMatch(t, []model.Kind{"passler", "varshni", "constant"}, IntrinsicBandGapKinds.Kinds())
	assert.ElementsMatch(t, []model.Kind{"temperature_fit", "constant"}, IntrinsicDensityKinds.Kinds())
	assert.ElementsMatch(t, []model.Kind{"green_1990", "constant"}, ThermalVelocityKinds.Kinds())
	assert.Len(t, Families, 6)
}

func TestIntrinsicBandGap(t *testing.T) {
	p := model.Params{"E0": {1.1701}, "alpha": {3.23e-4}, "theta": {446}, "p": {2.33}}
	eg, err := passler(p, []float64{0, 300, 400})
	require.NoError(t, err)
	assert.InDelta(t, 1.1701, eg[0], 1e-12)
	assert.InDelta(t, 1.125, eg[1], 5e-3)
	assert.Less(t, eg[2], eg[1])

	v := model.Params{"E0": {1.17}, "alpha": {4.73e-4}, "beta": {636}}
	eg, err = varshni(v, []float64{300})
	require.NoError(t, err)
	assert.InDelta(t, 1.17-4.73e-4*300*300/936, eg[0], 1e-12)

	_, err = varshni(model.Params{}, []float64{300})
	assert.Error(t, err)
}

func TestBandGapNarrowing(t *testing.T) {
	p := model.Params{"de_slope": {0.0187}, "n_onset": {7e17}}

	bgn, err := apparentBGN(p, []float64{1e15, 7e17, 7e18}, []float64{0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, bgn[0])
	assert.Equal(t, 0.0, bgn[1])
	assert.InDelta(t, 0.0187*2.302585093, bgn[2], 1e-9)

	neg := model.Params{"de_slope": {1e-3}, "n_onset": {1e14}, "b": {2}, "de_offset": {-0.5}}
	bgn, err = powerBGN(neg, []float64{1e10, 1e15, 1e20}, []float64{0})
	require.NoError(t, err)
	for _, v := range bgn {
		assert.GreaterOrEqual(t, v, 0.0)
	}
	assert.Equal(t, 0.0, bgn[0])
}

func TestIntrinsicDensity(t *testing.T) {
	p := model.Params{"C": {5.29e19}, "power": {2.54}, "E": {6726}}
	ni, err := temperatureFit(p, []float64{300, 350})
	require.NoError(t, err)
	assert.InEpsilon(t, 9.69e9, ni[0], 0.02)
	assert.Greater(t, ni[1], ni[0])

	c, err := constantDensity(model.Params{"ni": {9.65e9}}, []float64{250, 300})
	require.NoError(t, err)
	assert.Equal(t, []float64{9.65e9, 9.65e9}, c)
}

func TestCaugheyThomas(t *testing.T) {
	p := model.Params{
		"mu_min_e": {68.5}, "mu_max_e": {1414}, "Nref_e": {9.2e16}, "alpha_e": {0.711},
		"mu_min_h": {44.9}, "mu_max_h": {470.5}, "Nref_h": {2.23e17}, "alpha_h": {0.719},
	}
	in := MobilityInputs{
		Temp: []float64{300},
		Na:   []float64{0, 1e15, 1e17, 1e20},
		Nd:   []float64{0},
		Nxc:  []float64{0},
	}
	mue, muh, err := caugheyThomas(p, in)
	require.NoError(t, err)
	require.Len(t, mue, 4)
	assert.InDelta(t, 1414, mue[0], 1e-9)
	assert.InDelta(t, 470.5, muh[0], 1e-9)
	for i := 1; i < len(mue); i++ {
		assert.Less(t, mue[i], mue[i-1])
		assert.Less(t, muh[i], muh[i-1])
		assert.Greater(t, muh[i], 44.9)
	}

	_, _, err = caugheyThomas(p, MobilityInputs{Temp: []float64{300}, Na: []float64{1, 2}, Nd: []float64{1, 2, 3}})
	assert.True(t, semerr.IsInvalidInput(err))
}

func TestIonisation(t *testing.T) {
	p := model.Params{
		"g_donor": {2}, "g_acceptor": {4}, "Nc300": {2.86e19}, "Nv300": {3.1e19},
		"E_boron": {0.045}, "E_phosphorus": {0.045},
	}

	in := IonisationInputs{
		Temp:     []float64{300},
		Dopants:  []float64{0, 1e15, 1e16, 1e18},
		Nxc:      []float64{0},
		Impurity: "boron",
		Species:  Acceptor,
	}
	ion, err := boltzmannIonisation(p, in)
	require.NoError(t, err)
	assert.Equal(t, 0.0, ion[0])
	prev := 1.0
	for i := 1; i < len(ion); i++ {
		frac := ion[i] / in.Dopants[i]
		assert.Greater(t, frac, 0.0)
		assert.LessOrEqual(t, frac, 1.0)
		assert.Less(t, frac, prev)
		prev = frac
	}

	in.Impurity = "unobtainium"
	_, err = boltzmannIonisation(p, in)
	assert.True(t, semerr.IsInvalidInput(err))

	in.Impurity = "boron"
	in.Species = ""
	_, err = boltzmannIonisation(p, in)
	assert.True(t, semerr.IsInvalidInput(err))

	full, err := completeIonisation(nil, IonisationInputs{Temp: []float64{300}, Dopants: []float64{1e16}, Nxc: []float64{0}})
	require.NoError(t, err)
	assert.Equal(t, []float64{1e16}, full)
}

func TestThermalVelocity(t *testing.T) {
	p := model.Params{
		"ml":     {0.9163},
		"mt":     {0.1905},
		"meth_v": {0.3426, 3.2e-4, -3.0e-7, 0, 0, 0, 0, 0},
	}
	vc, vv, err := green1990(p, ThermalVelocityInputs{Temp: []float64{300}, EgRatio: []float64{1}})
	require.NoError(t, err)
	assert.InEpsilon(t, 2.08e7, vc[0], 0.02)
	assert.Greater(t, vv[0], 0.0)

	_, _, err = green1990(model.Params{"ml": {1}, "mt": {1}, "meth_v": {1, 2}}, ThermalVelocityInputs{Temp: []float64{300}, EgRatio: []float64{1}})
	assert.Error(t, err)

	c, v, err := constantVelocity(model.Params{"vel_th_c": {2e7}, "vel_th_v": {1.7e7}}, ThermalVelocityInputs{Temp: []float64{300, 310}, EgRatio: []float64{1}})
	require.NoError(t, err)
	assert.Equal(t, []float64{2e7, 2e7}, c)
	assert.Equal(t, []float64{1.7e7, 1.7e7}, v)
}
