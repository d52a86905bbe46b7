// Package carrier solves for free electron and hole densities from the
// dopant densities, the excess carrier density and the intrinsic carrier
// density, using charge neutrality and the mass-action law.
package carrier

import (
	"fmt"
	"math"

	"github.com/c360studio/semiconductor/numeric"
)

// NiProvider supplies the intrinsic carrier density (cm^-3) at temp (K).
type NiProvider interface {
	Ni(temp []float64) ([]float64, error)
}

// NiFunc adapts a function to NiProvider.
type NiFunc func(temp []float64) ([]float64, error)

// Ni calls f.
func (f NiFunc) Ni(temp []float64) ([]float64, error) {
	return f(temp)
}

// ConstNi returns a provider that ignores temperature.
func ConstNi(ni ...float64) NiProvider {
	v := append([]float64(nil), ni...)
	return NiFunc(func(temp []float64) ([]float64, error) {
		n, err := numeric.Len(temp, v)
		if err != nil {
			return nil, err
		}
		return numeric.Expand(v, n), nil
	})
}

// Equilibrium returns the thermal-equilibrium densities for net doping
// net = Nd - Na. It solves n0 - p0 = net with n0*p0 = ni^2, taking the
// root that avoids cancellation for either sign of net. With no net doping
// and ni = 0 both densities are zero.
func Equilibrium(net, ni float64) (n0, p0 float64) {
	half := net / 2
	root := math.Hypot(half, ni)
	if root == 0 {
		return 0, 0
	}
	if net >= 0 {
		n0 = half + root
		p0 = ni * ni / n0
		return n0, p0
	}
	p0 = -half + root
	n0 = ni * ni / p0
	return n0, p0
}

// Carriers returns the electron and hole densities. Excess carriers add
// equally to both populations: n = n0 + nxc, p = p0 + nxc.
// Inputs broadcast element-wise; densities must be non-negative, the
// temperature and the intrinsic carrier density positive.
func Carriers(nxc, na, nd, temp []float64, ni NiProvider) (n, p []float64, err error) {
	if err := numeric.CheckNonNegative("nxc", nxc); err != nil {
		return nil, nil, err
	}
	if err := numeric.CheckNonNegative("Na", na); err != nil {
		return nil, nil, err
	}
	if err := numeric.CheckNonNegative("Nd", nd); err != nil {
		return nil, nil, err
	}
	if err := numeric.CheckPositive("temp", temp); err != nil {
		return nil, nil, err
	}
	size, err := numeric.Len(nxc, na, nd, temp)
	if err != nil {
		return nil, nil, err
	}

	intrinsic, err := ni.Ni(temp)
	if err != nil {
		return nil, nil, fmt.Errorf("intrinsic carrier density: %w", err)
	}
	if _, err := numeric.Len(intrinsic, temp); err != nil {
		return nil, nil, err
	}
	if err := numeric.CheckPositive("ni", intrinsic); err != nil {
		return nil, nil, err
	}

	n = make([]float64, size)
	p = make([]float64, size)
	for i := range n {
		net := numeric.At(nd, i) - numeric.At(na, i)
		n0, p0 := Equilibrium(net, numeric.At(intrinsic, i))
		dn := numeric.At(nxc, i)
		n[i] = n0 + dn
		p[i] = p0 + dn
	}
	return n, p, nil
}
