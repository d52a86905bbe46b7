package numeric

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semiconductor/semerr"
)

func TestLen(t *testing.T) {
	tests := []struct {
		name    string
		inputs  [][]float64
		want    int
		wantErr bool
	}{
		{"all scalars", [][]float64{{1}, {2}}, 1, false},
		{"scalar and array", [][]float64{{1}, {1, 2, 3}}, 3, false},
		{"array then scalar", [][]float64{{1, 2}, {1}}, 2, false},
		{"matching arrays", [][]float64{{1, 2}, {3, 4}}, 2, false},
		{"mismatched arrays", [][]float64{{1, 2}, {1, 2, 3}}, 0, true},
		{"empty array", [][]float64{{}}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Len(tt.inputs...)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, semerr.IsInvalidInput(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandAndAt(t *testing.T) {
	assert.Equal(t, []float64{5, 5, 5}, Expand(Scalar(5), 3))
	assert.Equal(t, []float64{1, 2}, Expand([]float64{1, 2}, 2))
	assert.Equal(t, 2.0, At([]float64{1, 2}, 1))
	assert.Equal(t, 7.0, At(Scalar(7), 4))
}

func TestClampNonNegative(t *testing.T) {
	got := ClampNonNegative([]float64{-1, 0, 2, math.NaN()})
	assert.Equal(t, []float64{0, 0, 2, 0}, got)
}

func TestChecks(t *testing.T) {
	assert.NoError(t, CheckNonNegative("Na", []float64{0, 1e16}))
	assert.True(t, semerr.IsInvalidInput(CheckNonNegative("Na", []float64{1, -1})))
	assert.True(t, semerr.IsInvalidInput(CheckNonNegative("Na", []float64{math.NaN()})))

	assert.NoError(t, CheckPositive("temp", []float64{300}))
	assert.True(t, semerr.IsInvalidInput(CheckPositive("temp", []float64{0})))
	assert.True(t, semerr.IsInvalidInput(CheckPositive("temp", nil)))

	assert.True(t, semerr.IsInvalidInput(CheckNonNegative("nxc", []float64{1, math.Inf(1)})))
	assert.True(t, semerr.IsInvalidInput(CheckPositive("temp", []float64{math.Inf(1)})))
}

func TestWeightedSum(t *testing.T) {
	got, err := WeightedSum(2, Scalar(1), []float64{1, 2}, Scalar(3), []float64{10, 20})
	require.NoError(t, err)
	assert.Equal(t, []float64{62, 124}, got)

	_, err = WeightedSum(1, []float64{1, 2}, []float64{1, 2, 3}, Scalar(1), Scalar(1))
	assert.Error(t, err)
}

func TestNewton(t *testing.T) {
	t.Run("square root", func(t *testing.T) {
		f := func(x float64) (float64, error) { return x*x - 2, nil }
		root, err := Newton(f, 1, DefaultNewtonConfig())
		require.NoError(t, err)
		assert.InDelta(t, math.Sqrt2, root, 1e-9)
	})

	t.Run("large magnitude with relative tolerance", func(t *testing.T) {
		target := 3.7e17
		f := func(x float64) (float64, error) { return math.Log(x) - math.Log(target), nil }
		cfg := NewtonConfig{AbsTol: 1e-3, RelTol: 1e-12, MaxIter: 50, Positive: true}
		root, err := Newton(f, 1e15, cfg)
		require.NoError(t, err)
		assert.InEpsilon(t, target, root, 1e-9)
	})

	t.Run("exact root at start", func(t *testing.T) {
		f := func(x float64) (float64, error) { return x - 4, nil }
		root, err := Newton(f, 4, DefaultNewtonConfig())
		require.NoError(t, err)
		assert.Equal(t, 4.0, root)
	})

	t.Run("no root exhausts budget", func(t *testing.T) {
		f := func(x float64) (float64, error) { return x*x + 1, nil }
		_, err := Newton(f, 3, NewtonConfig{MaxIter: 5})
		require.Error(t, err)
		assert.True(t, semerr.IsConvergence(err))
	})

	t.Run("flat function", func(t *testing.T) {
		f := func(x float64) (float64, error) { return 1, nil }
		_, err := Newton(f, 1, DefaultNewtonConfig())
		assert.True(t, semerr.IsConvergence(err))
	})

	t.Run("evaluation error propagates", func(t *testing.T) {
		boom := errors.New("boom")
		f := func(x float64) (float64, error) { return 0, boom }
		_, err := Newton(f, 1, DefaultNewtonConfig())
		assert.ErrorIs(t, err, boom)
	})
}
