package property

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Spec is a dependent value that is either a constant or the output of an
// author's model. The zero Spec selects the family default.
type Spec struct {
	value  []float64
	author string
}

// Const returns a constant spec. A single value broadcasts. Const with no
// values is the zero Spec and so selects the family default.
func Const(v ...float64) Spec {
	if len(v) == 0 {
		return Spec{}
	}
	return Spec{value: append([]float64(nil), v...)}
}

// Author returns a spec naming a model author ("" = default).
func Author(name string) Spec {
	return Spec{author: name}
}

// ParseSpec reads s as a number when it parses as one and as an author
// name otherwise.
func ParseSpec(s string) Spec {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return Const(v)
	}
	return Author(s)
}

// IsConst reports whether the spec holds a constant.
func (s Spec) IsConst() bool {
	return s.value != nil
}

// AuthorName returns the author the spec names ("" for constants and the
// default).
func (s Spec) AuthorName() string {
	return s.author
}

// Value returns a copy of the constant, or nil for author specs.
func (s Spec) Value() []float64 {
	if s.value == nil {
		return nil
	}
	return append([]float64(nil), s.value...)
}

// Resolve returns the constant, or calls evaluate with the author name.
func (s Spec) Resolve(evaluate func(author string) ([]float64, error)) ([]float64, error) {
	if s.IsConst() {
		return s.Value(), nil
	}
	return evaluate(s.author)
}

// String returns the spec as written in configuration.
func (s Spec) String() string {
	if !s.IsConst() {
		return s.author
	}
	parts := make([]string, len(s.value))
	for i, v := range s.value {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// UnmarshalYAML accepts a number, a list of numbers, or an author name.
func (s *Spec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!int" || node.Tag == "!!float" {
			var v float64
			if err := node.Decode(&v); err != nil {
				return err
			}
			*s = Const(v)
			return nil
		}
		*s = Author(node.Value)
		return nil
	case yaml.SequenceNode:
		var vs []float64
		if err := node.Decode(&vs); err != nil {
			return fmt.Errorf("line %d: constant list must be numbers: %w", node.Line, err)
		}
		*s = Const(vs...)
		return nil
	default:
		return fmt.Errorf("line %d: expected a number or an author name", node.Line)
	}
}

// MarshalYAML writes the spec back in the form UnmarshalYAML reads.
func (s Spec) MarshalYAML() (interface{}, error) {
	switch {
	case !s.IsConst():
		return s.author, nil
	case len(s.value) == 1:
		return s.value[0], nil
	default:
		return s.value, nil
	}
}
