package numeric

import (
	"math"

	"github.com/c360studio/semiconductor/semerr"
)

// NewtonConfig controls the Newton root finder.
type NewtonConfig struct {
	// AbsTol is the absolute tolerance on the step between iterates.
	AbsTol float64

	// RelTol is the tolerance on the step relative to the iterate.
	RelTol float64

	// FTol stops the iteration once |f(x)| falls to or below it. Zero
	// disables the residual test.
	FTol float64

	// MaxIter is the iteration budget.
	MaxIter int

	// DiffStep is the relative step of the central-difference derivative.
	DiffStep float64

	// Positive keeps iterates in (0, inf) by halving instead of crossing zero.
	Positive bool
}

// DefaultNewtonConfig mirrors the usual secant/Newton defaults: 1.48e-8
// absolute step tolerance and 50 iterations.
func DefaultNewtonConfig() NewtonConfig {
	return NewtonConfig{
		AbsTol:   1.48e-8,
		MaxIter:  50,
		DiffStep: 1e-6,
	}
}

// Newton finds a root of f starting from x0. The derivative is estimated
// with a central difference. It fails with a ConvergenceError when the
// budget runs out or the derivative vanishes.
func Newton(f func(float64) (float64, error), x0 float64, cfg NewtonConfig) (float64, error) {
	if cfg.MaxIter <= 0 {
		cfg.MaxIter = DefaultNewtonConfig().MaxIter
	}
	if cfg.DiffStep <= 0 {
		cfg.DiffStep = DefaultNewtonConfig().DiffStep
	}

	x := x0
	fx, err := f(x)
	if err != nil {
		return 0, err
	}

	for i := 0; i < cfg.MaxIter; i++ {
		if fx == 0 || (cfg.FTol > 0 && math.Abs(fx) <= cfg.FTol) {
			return x, nil
		}

		h := cfg.DiffStep * math.Abs(x)
		if h == 0 {
			h = cfg.DiffStep
		}
		lo, hi := x-h, x+h
		if cfg.Positive && lo <= 0 {
			lo = x
		}
		flo, err := f(lo)
		if err != nil {
			return 0, err
		}
		fhi, err := f(hi)
		if err != nil {
			return 0, err
		}
		slope := (fhi - flo) / (hi - lo)
		if slope == 0 || math.IsNaN(slope) || math.IsInf(slope, 0) {
			return 0, &semerr.ConvergenceError{Iterations: i + 1, Last: x, Residual: fx}
		}

		next := x - fx/slope
		if cfg.Positive && next <= 0 {
			next = x / 2
		}

		step := math.Abs(next - x)
		x = next
		fx, err = f(x)
		if err != nil {
			return 0, err
		}
		if step <= cfg.AbsTol+cfg.RelTol*math.Abs(x) {
			return x, nil
		}
	}

	return 0, &semerr.ConvergenceError{Iterations: cfg.MaxIter, Last: x, Residual: fx}
}
