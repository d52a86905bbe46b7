package material

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semiconductor/catalog"
	"github.com/c360studio/semiconductor/numeric"
	"github.com/c360studio/semiconductor/semerr"
)

var temps = []float64{200, 300, 400}

func silicon(t *testing.T) *catalog.Material {
	t.Helper()
	c, err := catalog.Embedded()
	require.NoError(t, err)
	m, err := c.Material("Si")
	require.NoError(t, err)
	return m
}

func TestIntrinsicBandGapAllAuthors(t *testing.T) {
	egi, err := NewIntrinsicBandGap(silicon(t), "")
	require.NoError(t, err)

	for _, author := range egi.Authors() {
		t.Run(author, func(t *testing.T) {
			require.NoError(t, egi.SelectModel(author))
			eg, err := egi.Evaluate(temps)
			require.NoError(t, err)
			require.Len(t, eg, len(temps))
			assert.True(t, numeric.Finite(eg))
			for _, v := range eg {
				assert.Greater(t, v, 1.0)
				assert.Less(t, v, 1.2)
			}
		})
	}
}

func TestIntrinsicBandGapDecreasesWithTemperature(t *testing.T) {
	egi, err := NewIntrinsicBandGap(silicon(t), "Passler2002")
	require.NoError(t, err)

	eg, err := egi.Evaluate(temps)
	require.NoError(t, err)
	assert.Greater(t, eg[0], eg[1])
	assert.Greater(t, eg[1], eg[2])
}

func TestIntrinsicBandGapMultiplier(t *testing.T) {
	egi, err := NewIntrinsicBandGap(silicon(t), "Green1990")
	require.NoError(t, err)

	egi.Multiplier = 1.01
	eg, err := egi.Evaluate(numeric.Scalar(300))
	require.NoError(t, err)
	assert.InDelta(t, 1.1242*1.01, eg[0], 1e-12)

	ratio, err := egi.Ratio(temps)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1}, ratio)
}

func TestIntrinsicBandGapRejectsTemperature(t *testing.T) {
	egi, err := NewIntrinsicBandGap(silicon(t), "")
	require.NoError(t, err)

	_, err = egi.Evaluate([]float64{300, 0})
	assert.True(t, semerr.IsInvalidInput(err))
}

func TestBandGapNarrowingAllAuthors(t *testing.T) {
	bgn, err := NewBandGapNarrowing(silicon(t), "")
	require.NoError(t, err)
	doping := []float64{1e12, 1e15, 1e17, 1e19, 1e20}

	for _, author := range bgn.Authors() {
		t.Run(author, func(t *testing.T) {
			require.NoError(t, bgn.SelectModel(author))
			out, err := bgn.Evaluate(doping, numeric.Scalar(1e10))
			require.NoError(t, err)
			require.Len(t, out, len(doping))
			assert.True(t, numeric.Finite(out))
			for _, v := range out {
				assert.GreaterOrEqual(t, v, 0.0)
			}
			assert.Greater(t, out[4], 0.0)
		})
	}
}

func TestBandGapNarrowingBelowOnset(t *testing.T) {
	tests := []struct {
		author string
		doping float64
	}{
		{author: "delAlamo1985", doping: 7.0e17},
		{author: "delAlamo1985", doping: 1e15},
		{author: "Wieder1980", doping: 5e16},
		{author: "Yan2014_boron", doping: 1e14},
		{author: "Yan2014_phosphorus", doping: 1e10},
	}
	for _, tt := range tests {
		t.Run(tt.author, func(t *testing.T) {
			bgn, err := NewBandGapNarrowing(silicon(t), tt.author)
			require.NoError(t, err)
			out, err := bgn.Evaluate(numeric.Scalar(tt.doping), numeric.Scalar(0))
			require.NoError(t, err)
			assert.Equal(t, 0.0, out[0])
		})
	}
}

func TestBandGapNarrowingUnknownAuthor(t *testing.T) {
	bgn, err := NewBandGapNarrowing(silicon(t), "Wieder1980")
	require.NoError(t, err)

	err = bgn.SelectModel("Schenk1998")
	assert.True(t, semerr.IsUnknownAuthor(err))
	assert.Equal(t, "Wieder1980", bgn.Author())
}

func TestBandGapComposition(t *testing.T) {
	m := silicon(t)
	bg, err := NewBandGap(m, BandGapConfig{Dopant: "boron"})
	require.NoError(t, err)

	temp := numeric.Scalar(300)
	doping := []float64{1e15, 1e18, 1e19}
	nxc := numeric.Scalar(1e10)

	eg, err := bg.Evaluate(temp, doping, nxc)
	require.NoError(t, err)

	egi, err := bg.Intrinsic.Evaluate(temp)
	require.NoError(t, err)
	bgn, err := bg.Narrowing.Evaluate(doping, nxc)
	require.NoError(t, err)

	require.Len(t, eg, 3)
	for i := range eg {
		assert.InDelta(t, egi[0]-bgn[i], eg[i], 1e-15)
	}
	assert.Greater(t, eg[0], eg[2])
}

func TestBandGapDopantWarning(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	bg, err := NewBandGap(silicon(t), BandGapConfig{
		NarrowingAuthor: "delAlamo1985",
		Dopant:          "boron",
		Logger:          logger,
	})
	require.NoError(t, err)
	assert.False(t, bg.MatchesDopant())

	_, err = bg.Evaluate(numeric.Scalar(300), numeric.Scalar(1e18), numeric.Scalar(0))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "not listed for dopant")

	buf.Reset()
	bg.Dopant = "phosphorus"
	assert.True(t, bg.MatchesDopant())
	_, err = bg.Evaluate(numeric.Scalar(300), numeric.Scalar(1e18), numeric.Scalar(0))
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestIntrinsicDensityAllAuthors(t *testing.T) {
	ni, err := NewIntrinsicDensity(silicon(t), "")
	require.NoError(t, err)

	for _, author := range ni.Authors() {
		t.Run(author, func(t *testing.T) {
			require.NoError(t, ni.SelectModel(author))
			out, err := ni.Ni(numeric.Scalar(300))
			require.NoError(t, err)
			assert.InEpsilon(t, 9.7e9, out[0], 0.1)
		})
	}
}

func TestThermalVelocity(t *testing.T) {
	m := silicon(t)
	vel, err := NewThermalVelocity(m, "", nil)
	require.NoError(t, err)

	for _, author := range vel.Authors() {
		t.Run(author, func(t *testing.T) {
			require.NoError(t, vel.SelectModel(author))
			c, v, err := vel.Evaluate(temps)
			require.NoError(t, err)
			require.Len(t, c, len(temps))
			for i := range temps {
				assert.Greater(t, c[i], 1e6)
				assert.Greater(t, v[i], 1e6)
			}
		})
	}

	require.NoError(t, vel.SelectModel("Green1990"))
	c, _, err := vel.Evaluate(numeric.Scalar(300))
	require.NoError(t, err)
	assert.InEpsilon(t, 2.05e7, c[0], 0.05)
	assert.Equal(t, "Passler2002", vel.BandGap.Author())
}
