package electrical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semiconductor/semerr"
)

var dopings = []float64{1e14, 1e15, 1e16, 1e17, 1e18, 1e19}

func TestDarkConductivityRoundTrip(t *testing.T) {
	cat := embedded(t)

	t.Run("p-type boron", func(t *testing.T) {
		dark := NewDarkConductivity(cat, DefaultConfig(), nil)
		for _, n := range dopings {
			sigma, err := dark.Calculate(Overrides{Na: []float64{n}, Nd: []float64{0}})
			require.NoError(t, err)

			got, err := dark.ConductivityToDoping(sigma[0], Overrides{})
			require.NoError(t, err, "N=%g", n)
			assert.InEpsilon(t, n, got, 1e-6, "N=%g", n)
		}
	})

	t.Run("n-type phosphorus", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Dopant = "phosphorus"
		cfg.DopantType = NType
		dark := NewDarkConductivity(cat, cfg, nil)
		for _, n := range dopings {
			sigma, err := dark.Calculate(Overrides{Na: []float64{0}, Nd: []float64{n}})
			require.NoError(t, err)

			got, err := dark.ConductivityToDoping(sigma[0], Overrides{})
			require.NoError(t, err, "N=%g", n)
			assert.InEpsilon(t, n, got, 1e-6, "N=%g", n)
		}
	})
}

func TestDarkConductivityMatchesConductivity(t *testing.T) {
	cat := embedded(t)
	dark := NewDarkConductivity(cat, DefaultConfig(), nil)
	cond := NewConductivity(cat, DefaultConfig(), nil)

	got, err := dark.Calculate(Overrides{Nxc: []float64{1e15}})
	require.NoError(t, err)
	want, err := cond.Calculate(Overrides{Nxc: []float64{DarkNxc}})
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, []float64{DarkNxc}, dark.Config().Nxc)
}

func TestResistivityToDoping(t *testing.T) {
	cat := embedded(t)
	dark := NewDarkConductivity(cat, DefaultConfig(), nil)
	res := NewResistivity(cat, DefaultConfig(), nil)

	rho, err := res.Calculate(Overrides{Na: []float64{3e15}, Nxc: []float64{DarkNxc}})
	require.NoError(t, err)

	got, err := dark.ResistivityToDoping(rho[0], Overrides{})
	require.NoError(t, err)
	assert.InEpsilon(t, 3e15, got, 1e-6)

	t.Run("overrides apply to the search", func(t *testing.T) {
		rho, err := res.Calculate(Overrides{Temp: []float64{350}, Na: []float64{3e15}, Nxc: []float64{DarkNxc}})
		require.NoError(t, err)
		got, err := dark.ResistivityToDoping(rho[0], Overrides{Temp: []float64{350}})
		require.NoError(t, err)
		assert.InEpsilon(t, 3e15, got, 1e-6)
	})
}

func TestConductivityToDopingErrors(t *testing.T) {
	cat := embedded(t)

	t.Run("non-positive conductivity", func(t *testing.T) {
		dark := NewDarkConductivity(cat, DefaultConfig(), nil)
		for _, sigma := range []float64{0, -1} {
			_, err := dark.ConductivityToDoping(sigma, Overrides{})
			assert.True(t, semerr.IsInvalidInput(err))
		}
		_, err := dark.ResistivityToDoping(0, Overrides{})
		assert.True(t, semerr.IsInvalidInput(err))
	})

	t.Run("temperature array", func(t *testing.T) {
		dark := NewDarkConductivity(cat, DefaultConfig(), nil)
		_, err := dark.ConductivityToDoping(1, Overrides{Temp: []float64{300, 350}})
		assert.True(t, semerr.IsInvalidInput(err))
	})

	t.Run("iteration budget", func(t *testing.T) {
		dark := NewDarkConductivity(cat, DefaultConfig(), nil)
		dark.Newton.MaxIter = 1
		_, err := dark.ConductivityToDoping(10, Overrides{})
		require.Error(t, err)

		var ce *semerr.ConvergenceError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, 1, ce.Iterations)
	})

	t.Run("unknown author", func(t *testing.T) {
		dark := NewDarkConductivity(cat, DefaultConfig(), nil)
		_, err := dark.ConductivityToDoping(1, Overrides{MobilityAuthor: ptr("Nobody2000")})
		assert.True(t, semerr.IsUnknownAuthor(err))
	})
}

func TestFailedDopingSearchKeepsConfiguration(t *testing.T) {
	dark := NewDarkConductivity(embedded(t), DefaultConfig(), nil)
	before, err := dark.Calculate(Overrides{})
	require.NoError(t, err)
	cfg := dark.Config()

	dark.Newton.MaxIter = 1
	_, err = dark.ConductivityToDoping(10, Overrides{Temp: []float64{350}})
	assert.True(t, semerr.IsConvergence(err))

	assert.Equal(t, cfg, dark.Config())
	after, err := dark.Calculate(Overrides{})
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDopingSearchKeepsSolution(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Nd = []float64{5e15}
	dark := NewDarkConductivity(embedded(t), cfg, nil)

	got, err := dark.ConductivityToDoping(1, Overrides{Temp: []float64{320}})
	require.NoError(t, err)

	saved := dark.Config()
	assert.Equal(t, []float64{got}, saved.Na)
	assert.Equal(t, []float64{0}, saved.Nd)
	assert.Equal(t, []float64{320}, saved.Temp)

	sigma, err := dark.Calculate(Overrides{})
	require.NoError(t, err)
	assert.InEpsilon(t, 1.0, sigma[0], 1e-6)
}

func TestDarkUsedAuthors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MobilityAuthor = "Arora1982"
	dark := NewDarkConductivity(embedded(t), cfg, nil)

	used, err := dark.UsedAuthors()
	require.NoError(t, err)
	assert.Equal(t, "Arora1982", used.Mobility)
	assert.Equal(t, "Boltzmann", used.Ionisation)
}
