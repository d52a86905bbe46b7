package physics

import (
	"math"

	"github.com/c360studio/semiconductor/model"
	"github.com/c360studio/semiconductor/numeric"
)

// BandGapNarrowingFunc returns the band-gap narrowing (eV) for the net
// doping and excess carrier density. It does not depend on temperature.
type BandGapNarrowingFunc func(p model.Params, doping, nxc []float64) ([]float64, error)

// BandGapNarrowingKinds is the implementation table for band-gap narrowing.
var BandGapNarrowingKinds = newBandGapNarrowingKinds()

func newBandGapNarrowingKinds() *model.Implementations[BandGapNarrowingFunc] {
	k := model.NewImplementations[BandGapNarrowingFunc](FamilyBandGapNarrowing)
	k.Register("apparent_bgn", apparentBGN, "de_slope", "n_onset")
	k.Register("bgn_power", powerBGN, "de_slope", "n_onset", "b")
	return k
}

// apparentBGN is the Boltzmann-statistics "apparent" narrowing:
// de_slope*ln(N/n_onset) above the onset, zero at or below it.
func apparentBGN(p model.Params, doping, nxc []float64) ([]float64, error) {
	r := p.Reader()
	slope, onset := r.Float("de_slope"), r.Float("n_onset")
	if err := r.Err(); err != nil {
		return nil, err
	}
	out := numeric.Map(doping, func(n float64) float64 {
		if n <= onset {
			return 0
		}
		return slope * math.Log(n/onset)
	})
	return numeric.ClampNonNegative(out), nil
}

// powerBGN is de_slope*ln(N/n_onset)^b + de_offset above the onset, zero at
// or below it, clamped to non-negative.
func powerBGN(p model.Params, doping, nxc []float64) ([]float64, error) {
	r := p.Reader()
	slope, onset, b := r.Float("de_slope"), r.Float("n_onset"), r.Float("b")
	offset := r.FloatOr("de_offset", 0)
	if err := r.Err(); err != nil {
		return nil, err
	}
	out := numeric.Map(doping, func(n float64) float64 {
		if n <= onset {
			return 0
		}
		return slope*math.Pow(math.Log(n/onset), b) + offset
	})
	return numeric.ClampNonNegative(out), nil
}
