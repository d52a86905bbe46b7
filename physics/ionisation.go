package physics

import (
	"fmt"
	"math"

	"github.com/c360studio/semiconductor/model"
	"github.com/c360studio/semiconductor/numeric"
	"github.com/c360studio/semiconductor/semerr"
)

// Species is the dopant type being ionised.
type Species string

const (
	Donor    Species = "donor"
	Acceptor Species = "acceptor"
)

// IonisationInputs are the runtime inputs of an ionisation model.
type IonisationInputs struct {
	Temp []float64

	// Dopants is the substitutional density of the species being ionised.
	Dopants []float64

	Nxc      []float64
	Impurity string
	Species  Species
}

// IonisationFunc returns the ionised dopant density (cm^-3).
type IonisationFunc func(p model.Params, in IonisationInputs) ([]float64, error)

// IonisationKinds is the implementation table for dopant ionisation.
var IonisationKinds = newIonisationKinds()

func newIonisationKinds() *model.Implementations[IonisationFunc] {
	k := model.NewImplementations[IonisationFunc](FamilyIonisation)
	k.Register("complete", completeIonisation)
	k.Register("boltzmann", boltzmannIonisation, "g_donor", "g_acceptor", "Nc300", "Nv300")
	return k
}

func completeIonisation(p model.Params, in IonisationInputs) ([]float64, error) {
	n, err := numeric.Len(in.Temp, in.Dopants, in.Nxc)
	if err != nil {
		return nil, err
	}
	return numeric.Expand(in.Dopants, n), nil
}

// boltzmannIonisation solves the single-level occupancy with Boltzmann
// statistics, taking the majority carrier density as ionised dopants plus
// excess carriers. With a = g*exp(E/kT)/Nc(T) and b = 1 + a*nxc the
// ionised fraction is f = 2/(b + sqrt(b^2 + 4aN)).
func boltzmannIonisation(p model.Params, in IonisationInputs) ([]float64, error) {
	r := p.Reader()
	var g, nc300 float64
	switch in.Species {
	case Donor:
		g, nc300 = r.Float("g_donor"), r.Float("Nc300")
	case Acceptor:
		g, nc300 = r.Float("g_acceptor"), r.Float("Nv300")
	default:
		return nil, semerr.Invalidf("species", "unknown dopant species %q", in.Species)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}

	energies, ok := p.Get("E_" + in.Impurity)
	if !ok || len(energies) != 1 {
		return nil, semerr.Invalidf("dopant", "no ionisation energy for impurity %q", in.Impurity)
	}
	energy := energies[0]

	n, err := numeric.Len(in.Temp, in.Dopants, in.Nxc)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		t := numeric.At(in.Temp, i)
		dop := numeric.At(in.Dopants, i)
		nc := nc300 * math.Pow(t/RoomTemp, 1.5)
		a := g * math.Exp(energy/(BoltzmannEV*t)) / nc
		b := 1 + a*numeric.At(in.Nxc, i)
		out[i] = dop * 2 / (b + math.Sqrt(b*b+4*a*dop))
	}
	if !numeric.Finite(out) {
		return nil, fmt.Errorf("ionisation of %s overflowed", in.Impurity)
	}
	return out, nil
}
