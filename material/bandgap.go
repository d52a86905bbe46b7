package material

import (
	"log/slog"

	"github.com/c360studio/semiconductor/catalog"
	"github.com/c360studio/semiconductor/model"
	"github.com/c360studio/semiconductor/numeric"
)

// BandGapConfig selects the models of a BandGap.
type BandGapConfig struct {
	IntrinsicAuthor string
	NarrowingAuthor string

	// Dopant is checked against the narrowing model's dopant tag.
	Dopant string

	Logger *slog.Logger
}

// BandGap combines an intrinsic band gap with band-gap narrowing:
// Eg = Egi(T) - BGN(N, nxc).
type BandGap struct {
	Intrinsic *IntrinsicBandGap
	Narrowing *BandGapNarrowing
	Dopant    string

	logger *slog.Logger
}

// NewBandGap builds the two sub-models from m's tables.
func NewBandGap(m *catalog.Material, cfg BandGapConfig) (*BandGap, error) {
	egi, err := NewIntrinsicBandGap(m, cfg.IntrinsicAuthor)
	if err != nil {
		return nil, err
	}
	bgn, err := NewBandGapNarrowing(m, cfg.NarrowingAuthor)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &BandGap{Intrinsic: egi, Narrowing: bgn, Dopant: cfg.Dopant, logger: logger}, nil
}

// Evaluate returns the band gap. A warning is logged when the narrowing
// model is not listed for the dopant.
func (b *BandGap) Evaluate(temp, doping, nxc []float64) ([]float64, error) {
	if _, err := numeric.Len(temp, doping, nxc); err != nil {
		return nil, err
	}
	egi, err := b.Intrinsic.Evaluate(temp)
	if err != nil {
		return nil, err
	}
	bgn, err := b.Narrowing.Evaluate(doping, nxc)
	if err != nil {
		return nil, err
	}
	b.checkDopant()

	n, err := numeric.Len(egi, bgn)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = numeric.At(egi, i) - numeric.At(bgn, i)
	}
	return out, nil
}

// MatchesDopant reports whether the active narrowing model is listed for
// the configured dopant. An empty dopant matches every model.
func (b *BandGap) MatchesDopant() bool {
	if b.Dopant == "" {
		return true
	}
	author := b.Narrowing.Author()
	for _, a := range b.Narrowing.Authors(model.Filter{Field: "dopant", Values: []string{b.Dopant}}) {
		if a == author {
			return true
		}
	}
	return false
}

func (b *BandGap) checkDopant() {
	if b.MatchesDopant() {
		return
	}
	b.logger.Warn("Band-gap narrowing model is not listed for dopant",
		"author", b.Narrowing.Author(),
		"dopant", b.Dopant)
}
