package physics

import (
	"math"

	"github.com/c360studio/semiconductor/model"
	"github.com/c360studio/semiconductor/numeric"
)

// ThermalVelocityInputs are the runtime inputs of a thermal velocity model.
type ThermalVelocityInputs struct {
	Temp []float64

	// EgRatio is Eg(T)/Eg(300 K). It scales the transverse electron mass.
	EgRatio []float64
}

// ThermalVelocityFunc returns conduction- and valence-band thermal
// velocities (cm/s).
type ThermalVelocityFunc func(p model.Params, in ThermalVelocityInputs) (conduction, valence []float64, err error)

// ThermalVelocityKinds is the implementation table for thermal velocities.
var ThermalVelocityKinds = newThermalVelocityKinds()

func newThermalVelocityKinds() *model.Implementations[ThermalVelocityFunc] {
	k := model.NewImplementations[ThermalVelocityFunc](FamilyThermalVelocity)
	k.Register("green_1990", green1990, "ml", "mt", "meth_v")
	k.Register("constant", constantVelocity, "vel_th_c", "vel_th_v")
	return k
}

// green1990 derives the conduction-band thermal mass from the longitudinal
// and transverse masses and takes the valence-band thermal mass from a
// 7th-order polynomial in T.
func green1990(p model.Params, in ThermalVelocityInputs) ([]float64, []float64, error) {
	r := p.Reader()
	ml, mt := r.Float("ml"), r.Float("mt")
	poly := r.Array("meth_v", 8)
	if err := r.Err(); err != nil {
		return nil, nil, err
	}

	n, err := numeric.Len(in.Temp, in.EgRatio)
	if err != nil {
		return nil, nil, err
	}
	cond := make([]float64, n)
	val := make([]float64, n)
	for i := range cond {
		t := numeric.At(in.Temp, i)
		mlKg := ml * ElectronMass
		mtKg := mt * numeric.At(in.EgRatio, i) * ElectronMass

		delta := math.Sqrt((mlKg - mtKg) / mlKg)
		ratio := 1.0
		if delta > 0 {
			ratio = math.Asin(delta) / delta
		}
		mthC := 4 * mlKg / math.Pow(1+math.Sqrt(mlKg/mtKg)*ratio, 2)

		var mthV float64
		for k, c := range poly {
			mthV += c * math.Pow(t, float64(k))
		}
		mthV *= ElectronMass

		cond[i] = thermalVelocity(t, mthC)
		val[i] = thermalVelocity(t, mthV)
	}
	return cond, val, nil
}

// thermalVelocity is sqrt(8kT/(pi*m)), returned in cm/s.
func thermalVelocity(temp, mass float64) float64 {
	return math.Sqrt(8*Boltzmann*temp/math.Pi/mass) * 100
}

func constantVelocity(p model.Params, in ThermalVelocityInputs) ([]float64, []float64, error) {
	r := p.Reader()
	c, v := r.Float("vel_th_c"), r.Float("vel_th_v")
	if err := r.Err(); err != nil {
		return nil, nil, err
	}
	n, err := numeric.Len(in.Temp, in.EgRatio)
	if err != nil {
		return nil, nil, err
	}
	return numeric.Expand(numeric.Scalar(c), n), numeric.Expand(numeric.Scalar(v), n), nil
}
