package physics

import (
	"math"

	"github.com/c360studio/semiconductor/model"
	"github.com/c360studio/semiconductor/numeric"
)

// MobilityInputs are the runtime inputs of a mobility model.
type MobilityInputs struct {
	Temp []float64
	Na   []float64
	Nd   []float64
	Nxc  []float64
}

// MobilityFunc returns electron and hole mobilities (cm^2/Vs).
type MobilityFunc func(p model.Params, in MobilityInputs) (electron, hole []float64, err error)

// MobilityKinds is the implementation table for carrier mobility.
var MobilityKinds = newMobilityKinds()

func newMobilityKinds() *model.Implementations[MobilityFunc] {
	k := model.NewImplementations[MobilityFunc](FamilyMobility)
	k.Register("constant", constantMobility, "mu_e", "mu_h")
	k.Register("caughey_thomas", caugheyThomas,
		"mu_min_e", "mu_max_e", "Nref_e", "alpha_e",
		"mu_min_h", "mu_max_h", "Nref_h", "alpha_h")
	return k
}

func constantMobility(p model.Params, in MobilityInputs) ([]float64, []float64, error) {
	r := p.Reader()
	mue, muh := r.Float("mu_e"), r.Float("mu_h")
	if err := r.Err(); err != nil {
		return nil, nil, err
	}
	n, err := numeric.Len(in.Temp, in.Na, in.Nd)
	if err != nil {
		return nil, nil, err
	}
	return numeric.Expand(numeric.Scalar(mue), n), numeric.Expand(numeric.Scalar(muh), n), nil
}

type caugheyThomasCarrier struct {
	muMin, muMax, nref, alpha float64
	theta, nrefPower          float64
}

func readCaugheyThomas(r *model.ParamReader, suffix string) caugheyThomasCarrier {
	return caugheyThomasCarrier{
		muMin:     r.Float("mu_min_" + suffix),
		muMax:     r.Float("mu_max_" + suffix),
		nref:      r.Float("Nref_" + suffix),
		alpha:     r.Float("alpha_" + suffix),
		theta:     r.FloatOr("theta_"+suffix, 0),
		nrefPower: r.FloatOr("Nref_power_"+suffix, 0),
	}
}

func (c caugheyThomasCarrier) at(temp, dopants float64) float64 {
	tn := temp / RoomTemp
	muMax := c.muMax * math.Pow(tn, -c.theta)
	nref := c.nref * math.Pow(tn, c.nrefPower)
	return c.muMin + (muMax-c.muMin)/(1+math.Pow(dopants/nref, c.alpha))
}

// caugheyThomas is mu = mu_min + (mu_max*(T/300)^-theta - mu_min)/(1 + (N/Nref)^alpha)
// with N the total dopant density Na+Nd.
func caugheyThomas(p model.Params, in MobilityInputs) ([]float64, []float64, error) {
	r := p.Reader()
	e := readCaugheyThomas(r, "e")
	h := readCaugheyThomas(r, "h")
	if err := r.Err(); err != nil {
		return nil, nil, err
	}

	n, err := numeric.Len(in.Temp, in.Na, in.Nd)
	if err != nil {
		return nil, nil, err
	}
	electron := make([]float64, n)
	hole := make([]float64, n)
	for i := range electron {
		t := numeric.At(in.Temp, i)
		dop := numeric.At(in.Na, i) + numeric.At(in.Nd, i)
		electron[i] = e.at(t, dop)
		hole[i] = h.at(t, dop)
	}
	return electron, hole, nil
}
