package physics

import (
	"math"

	"github.com/c360studio/semiconductor/model"
	"github.com/c360studio/semiconductor/numeric"
)

// IntrinsicBandGapFunc returns the intrinsic band gap (eV) at temp.
type IntrinsicBandGapFunc func(p model.Params, temp []float64) ([]float64, error)

// IntrinsicBandGapKinds is the implementation table for intrinsic band gaps.
var IntrinsicBandGapKinds = newIntrinsicBandGapKinds()

func newIntrinsicBandGapKinds() *model.Implementations[IntrinsicBandGapFunc] {
	k := model.NewImplementations[IntrinsicBandGapFunc](FamilyIntrinsicBandGap)
	k.Register("passler", passler, "E0", "alpha", "theta", "p")
	k.Register("varshni", varshni, "E0", "alpha", "beta")
	k.Register("constant", constantBandGap, "Eg")
	return k
}

// passler is the Pässler fit: Eg(T) = E0 - alpha*theta/2 * ((1+(2T/theta)^p)^(1/p) - 1).
func passler(p model.Params, temp []float64) ([]float64, error) {
	r := p.Reader()
	e0, alpha, theta, pw := r.Float("E0"), r.Float("alpha"), r.Float("theta"), r.Float("p")
	if err := r.Err(); err != nil {
		return nil, err
	}
	return numeric.Map(temp, func(t float64) float64 {
		return e0 - alpha*theta/2*(math.Pow(1+math.Pow(2*t/theta, pw), 1/pw)-1)
	}), nil
}

// varshni is Eg(T) = E0 - alpha*T^2/(T+beta).
func varshni(p model.Params, temp []float64) ([]float64, error) {
	r := p.Reader()
	e0, alpha, beta := r.Float("E0"), r.Float("alpha"), r.Float("beta")
	if err := r.Err(); err != nil {
		return nil, err
	}
	return numeric.Map(temp, func(t float64) float64 {
		return e0 - alpha*t*t/(t+beta)
	}), nil
}

func constantBandGap(p model.Params, temp []float64) ([]float64, error) {
	eg, err := p.Float("Eg")
	if err != nil {
		return nil, err
	}
	return numeric.Map(temp, func(float64) float64 { return eg }), nil
}
