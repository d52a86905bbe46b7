package model

import (
	"fmt"
	"sort"

	"github.com/c360studio/semiconductor/semerr"
)

// Params holds the numeric parameters of a table entry. Scalars are stored
// as length-1 arrays.
type Params map[string][]float64

// Get returns the raw values for name.
func (p Params) Get(name string) ([]float64, bool) {
	v, ok := p[name]
	return v, ok
}

// Float returns the scalar parameter name.
func (p Params) Float(name string) (float64, error) {
	v, ok := p[name]
	if !ok {
		return 0, semerr.Configf("", "missing parameter %q", name)
	}
	if len(v) != 1 {
		return 0, semerr.Configf("", "parameter %q is an array of %d values, want a scalar", name, len(v))
	}
	return v[0], nil
}

// Names returns the parameter names in sorted order.
func (p Params) Names() []string {
	names := make([]string, 0, len(p))
	for k := range p {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = append([]float64(nil), v...)
	}
	return out
}

// Reader returns a ParamReader over p.
func (p Params) Reader() *ParamReader {
	return &ParamReader{params: p}
}

// ParamReader reads several parameters and keeps the first error, so an
// implementation can read everything it needs and check once.
type ParamReader struct {
	params Params
	err    error
}

// Float reads a scalar parameter. After the first failure it returns 0.
func (r *ParamReader) Float(name string) float64 {
	if r.err != nil {
		return 0
	}
	v, err := r.params.Float(name)
	if err != nil {
		r.err = err
	}
	return v
}

// FloatOr reads a scalar parameter, falling back to def when it is absent.
func (r *ParamReader) FloatOr(name string, def float64) float64 {
	if _, ok := r.params[name]; !ok {
		return def
	}
	return r.Float(name)
}

// Array reads an array parameter of exactly n values, or any length when n
// is zero.
func (r *ParamReader) Array(name string, n int) []float64 {
	if r.err != nil {
		return nil
	}
	v, ok := r.params[name]
	if !ok {
		r.err = semerr.Configf("", "missing parameter %q", name)
		return nil
	}
	if n > 0 && len(v) != n {
		r.err = semerr.Configf("", "parameter %q has %d values, want %d", name, len(v), n)
		return nil
	}
	return v
}

// Err returns the first error encountered.
func (r *ParamReader) Err() error {
	if r.err != nil {
		return fmt.Errorf("read parameters: %w", r.err)
	}
	return nil
}
