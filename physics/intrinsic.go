package physics

import (
	"math"

	"github.com/c360studio/semiconductor/model"
	"github.com/c360studio/semiconductor/numeric"
)

// IntrinsicDensityFunc returns the intrinsic carrier density (cm^-3) at temp.
type IntrinsicDensityFunc func(p model.Params, temp []float64) ([]float64, error)

// IntrinsicDensityKinds is the implementation table for intrinsic carrier densities.
var IntrinsicDensityKinds = newIntrinsicDensityKinds()

func newIntrinsicDensityKinds() *model.Implementations[IntrinsicDensityFunc] {
	k := model.NewImplementations[IntrinsicDensityFunc](FamilyIntrinsicDensity)
	k.Register("temperature_fit", temperatureFit, "C", "power", "E")
	k.Register("constant", constantDensity, "ni")
	return k
}

// temperatureFit is ni = C*(T/300)^power*exp(-E/T), E in K.
func temperatureFit(p model.Params, temp []float64) ([]float64, error) {
	r := p.Reader()
	c, pw, e := r.Float("C"), r.Float("power"), r.Float("E")
	if err := r.Err(); err != nil {
		return nil, err
	}
	return numeric.Map(temp, func(t float64) float64 {
		return c * math.Pow(t/RoomTemp, pw) * math.Exp(-e/t)
	}), nil
}

func constantDensity(p model.Params, temp []float64) ([]float64, error) {
	ni, err := p.Float("ni")
	if err != nil {
		return nil, err
	}
	return numeric.Map(temp, func(float64) float64 { return ni }), nil
}
