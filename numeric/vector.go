// Package numeric holds the element-wise array helpers and the 1-D root
// finder used by the property and calculator layers.
package numeric

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/c360studio/semiconductor/semerr"
)

// Scalar wraps v as a length-1 array.
func Scalar(v float64) []float64 {
	return []float64{v}
}

// Len returns the broadcast length of xs. A length-1 array broadcasts
// against any other length; every other pair of lengths must match.
func Len(xs ...[]float64) (int, error) {
	n := 1
	for _, x := range xs {
		switch {
		case len(x) == 0:
			return 0, semerr.Invalidf("input", "empty array")
		case len(x) == 1 || len(x) == n:
		case n == 1:
			n = len(x)
		default:
			return 0, semerr.Invalidf("input", "array lengths %d and %d do not broadcast", n, len(x))
		}
	}
	return n, nil
}

// At returns x[i], treating a length-1 array as a scalar.
func At(x []float64, i int) float64 {
	if len(x) == 1 {
		return x[0]
	}
	return x[i]
}

// Expand returns a fresh array of length n holding x broadcast to n.
func Expand(x []float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = At(x, i)
	}
	return out
}

// Map applies f element-wise over x into a new array.
func Map(x []float64, f func(float64) float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = f(v)
	}
	return out
}

// Reciprocal returns 1/x element-wise.
func Reciprocal(x []float64) []float64 {
	return Map(x, func(v float64) float64 { return 1 / v })
}

// ClampNonNegative sets every negative (or NaN) element of x to zero in place.
func ClampNonNegative(x []float64) []float64 {
	for i, v := range x {
		if v < 0 || math.IsNaN(v) {
			x[i] = 0
		}
	}
	return x
}

// CheckNonNegative fails with an InvalidInputError when x holds a negative
// or non-finite value.
func CheckNonNegative(field string, x []float64) error {
	if err := checkFinite(field, x); err != nil {
		return err
	}
	if m := floats.Min(x); m < 0 {
		return semerr.Invalidf(field, "must be non-negative, got %g", m)
	}
	return nil
}

// CheckPositive fails with an InvalidInputError when x holds a value that
// is not strictly positive and finite.
func CheckPositive(field string, x []float64) error {
	if err := checkFinite(field, x); err != nil {
		return err
	}
	if m := floats.Min(x); m <= 0 {
		return semerr.Invalidf(field, "must be positive, got %g", m)
	}
	return nil
}

func checkFinite(field string, x []float64) error {
	if len(x) == 0 {
		return semerr.Invalidf(field, "empty array")
	}
	if floats.HasNaN(x) {
		return semerr.Invalidf(field, "contains NaN")
	}
	for _, v := range x {
		if math.IsInf(v, 0) {
			return semerr.Invalidf(field, "must be finite, got %g", v)
		}
	}
	return nil
}

// WeightedSum returns scale*(a1*b1 + a2*b2) element-wise with broadcasting.
func WeightedSum(scale float64, a1, b1, a2, b2 []float64) ([]float64, error) {
	n, err := Len(a1, b1, a2, b2)
	if err != nil {
		return nil, err
	}
	first := make([]float64, n)
	floats.MulTo(first, Expand(a1, n), Expand(b1, n))
	second := make([]float64, n)
	floats.MulTo(second, Expand(a2, n), Expand(b2, n))
	floats.Add(first, second)
	floats.Scale(scale, first)
	return first, nil
}

// Finite reports whether every element of x is finite.
func Finite(x []float64) bool {
	for _, v := range x {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}
