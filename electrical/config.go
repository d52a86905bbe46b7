package electrical

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/c360studio/semiconductor/property"
	"github.com/c360studio/semiconductor/semerr"
)

// DopantType is the conduction type of a sample.
type DopantType string

const (
	PType DopantType = "p"
	NType DopantType = "n"
)

// ParseDopantType accepts "p" or "n" in either case.
func ParseDopantType(s string) (DopantType, error) {
	switch DopantType(strings.ToLower(strings.TrimSpace(s))) {
	case PType:
		return PType, nil
	case NType:
		return NType, nil
	}
	return "", semerr.Invalidf("dopant_type", "must be %q or %q, got %q", PType, NType, s)
}

// Config holds every input of a conductivity calculation. Empty author
// names select the material's default model.
type Config struct {
	Material string

	// Temp is the temperature (K).
	Temp []float64

	MobilityAuthor   string
	NiAuthor         property.Spec
	IonisationAuthor string

	// Dopant is the impurity element, e.g. "boron".
	Dopant     string
	DopantType DopantType

	// Na, Nd and Nxc are the acceptor, donor and excess carrier densities (cm^-3).
	Na  []float64
	Nd  []float64
	Nxc []float64
}

// DefaultConfig returns boron-doped silicon at 300 K with 1e16 cm^-3
// acceptors and 1e10 cm^-3 excess carriers.
func DefaultConfig() Config {
	return Config{
		Material:   "Si",
		Temp:       []float64{300},
		Dopant:     "boron",
		DopantType: PType,
		Na:         []float64{1e16},
		Nd:         []float64{0},
		Nxc:        []float64{1e10},
	}
}

// Overrides are partial updates to a Config. Nil fields leave the
// configuration unchanged.
type Overrides struct {
	Material         *string
	Temp             []float64
	MobilityAuthor   *string
	NiAuthor         *property.Spec
	IonisationAuthor *string
	Dopant           *string
	DopantType       *DopantType
	Na               []float64
	Nd               []float64
	Nxc              []float64
}

// Merge returns a copy of c with o applied. c is not modified.
func (c Config) Merge(o Overrides) Config {
	out := c
	if o.Material != nil {
		out.Material = *o.Material
	}
	if o.Temp != nil {
		out.Temp = o.Temp
	}
	if o.MobilityAuthor != nil {
		out.MobilityAuthor = *o.MobilityAuthor
	}
	if o.NiAuthor != nil {
		out.NiAuthor = *o.NiAuthor
	}
	if o.IonisationAuthor != nil {
		out.IonisationAuthor = *o.IonisationAuthor
	}
	if o.Dopant != nil {
		out.Dopant = *o.Dopant
	}
	if o.DopantType != nil {
		out.DopantType = *o.DopantType
	}
	if o.Na != nil {
		out.Na = o.Na
	}
	if o.Nd != nil {
		out.Nd = o.Nd
	}
	if o.Nxc != nil {
		out.Nxc = o.Nxc
	}
	out.Temp = clone(out.Temp)
	out.Na = clone(out.Na)
	out.Nd = clone(out.Nd)
	out.Nxc = clone(out.Nxc)
	return out
}

func clone(x []float64) []float64 {
	if x == nil {
		return nil
	}
	return append([]float64(nil), x...)
}

// Override keys accepted by ParseOverrides.
const (
	KeyMaterial         = "material"
	KeyTemp             = "temp"
	KeyMobilityAuthor   = "mob_author"
	KeyNiAuthor         = "nieff_author"
	KeyIonisationAuthor = "ionis_author"
	KeyDopant           = "dopant"
	KeyDopantType       = "dopant_type"
	KeyNa               = "Na"
	KeyNd               = "Nd"
	KeyNxc              = "nxc"
)

// ParseOverrides reads string-keyed overrides, as found in YAML documents
// or command-line key=value pairs. Keys other than the Key* constants are
// ignored. Numeric fields accept numbers, numeric strings, comma-separated
// lists and number lists.
func ParseOverrides(values map[string]any) (Overrides, error) {
	var o Overrides
	for key, raw := range values {
		var err error
		switch key {
		case KeyMaterial:
			o.Material, err = stringField(key, raw)
		case KeyMobilityAuthor:
			o.MobilityAuthor, err = stringField(key, raw)
		case KeyIonisationAuthor:
			o.IonisationAuthor, err = stringField(key, raw)
		case KeyDopant:
			o.Dopant, err = stringField(key, raw)
		case KeyNiAuthor:
			o.NiAuthor, err = specField(key, raw)
		case KeyDopantType:
			var s *string
			if s, err = stringField(key, raw); err == nil {
				var dt DopantType
				if dt, err = ParseDopantType(*s); err == nil {
					o.DopantType = &dt
				}
			}
		case KeyTemp:
			o.Temp, err = floatsField(key, raw)
		case KeyNa:
			o.Na, err = floatsField(key, raw)
		case KeyNd:
			o.Nd, err = floatsField(key, raw)
		case KeyNxc:
			o.Nxc, err = floatsField(key, raw)
		}
		if err != nil {
			return Overrides{}, err
		}
	}
	return o, nil
}

// ParseOverrideArgs reads key=value pairs.
func ParseOverrideArgs(args []string) (Overrides, error) {
	values := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return Overrides{}, semerr.Invalidf(arg, "expected key=value")
		}
		values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return ParseOverrides(values)
}

func stringField(key string, raw any) (*string, error) {
	switch v := raw.(type) {
	case nil:
		empty := ""
		return &empty, nil
	case string:
		return &v, nil
	case fmt.Stringer:
		s := v.String()
		return &s, nil
	}
	return nil, semerr.Invalidf(key, "expected a string, got %T", raw)
}

func specField(key string, raw any) (*property.Spec, error) {
	var s property.Spec
	switch v := raw.(type) {
	case nil:
		s = property.Author("")
	case property.Spec:
		s = v
	case string:
		s = property.ParseSpec(v)
	default:
		vals, err := floatsField(key, raw)
		if err != nil {
			return nil, err
		}
		s = property.Const(vals...)
	}
	return &s, nil
}

func floatsField(key string, raw any) ([]float64, error) {
	switch v := raw.(type) {
	case float64:
		return []float64{v}, nil
	case float32:
		return []float64{float64(v)}, nil
	case int:
		return []float64{float64(v)}, nil
	case int64:
		return []float64{float64(v)}, nil
	case []float64:
		return clone(v), nil
	case string:
		parts := strings.Split(v, ",")
		out := make([]float64, 0, len(parts))
		for _, part := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return nil, semerr.Invalidf(key, "not a number: %q", part)
			}
			out = append(out, f)
		}
		return out, nil
	case []any:
		out := make([]float64, 0, len(v))
		for _, item := range v {
			f, err := floatsField(key, item)
			if err != nil {
				return nil, err
			}
			if len(f) != 1 {
				return nil, semerr.Invalidf(key, "nested lists are not allowed")
			}
			out = append(out, f[0])
		}
		return out, nil
	}
	return nil, semerr.Invalidf(key, "expected a number or list of numbers, got %T", raw)
}
