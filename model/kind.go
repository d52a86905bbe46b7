// Package model provides name-based model selection for physical property
// families. A family (mobility, band-gap narrowing, ...) is a table of
// authors loaded from YAML; each author names a Kind, and the Kind maps to a
// Go implementation registered in an Implementations table at startup.
package model

import (
	"fmt"
	"sort"
)

// Kind is the discriminator in a model table entry that selects the Go
// implementation, e.g. "caughey_thomas" or "apparent_bgn".
type Kind string

// NotImplemented marks table entries that document a published model
// without an implementation. They load but are never selectable.
const NotImplemented Kind = "not_implemented"

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

type registration[F any] struct {
	fn       F
	required []string
}

// Implementations maps kinds to implementation functions for one family.
// F is the family's function signature.
type Implementations[F any] struct {
	family string
	kinds  map[Kind]registration[F]
}

// NewImplementations creates an empty implementation table for family.
func NewImplementations[F any](family string) *Implementations[F] {
	return &Implementations[F]{
		family: family,
		kinds:  make(map[Kind]registration[F]),
	}
}

// Register binds kind to fn. Required lists the parameter names every table
// entry of this kind must provide; Load rejects entries missing any of them.
// Registering the same kind twice panics.
func (i *Implementations[F]) Register(kind Kind, fn F, required ...string) {
	if _, exists := i.kinds[kind]; exists {
		panic(fmt.Sprintf("%s kind '%s' already registered", i.family, kind))
	}
	if kind == NotImplemented {
		panic(fmt.Sprintf("%s kind '%s' is reserved", i.family, kind))
	}
	i.kinds[kind] = registration[F]{fn: fn, required: required}
}

// Lookup returns the function and required parameters bound to kind.
func (i *Implementations[F]) Lookup(kind Kind) (F, []string, bool) {
	reg, ok := i.kinds[kind]
	return reg.fn, reg.required, ok
}

// Family returns the property family the table implements.
func (i *Implementations[F]) Family() string {
	return i.family
}

// Kinds returns the registered kinds in sorted order.
func (i *Implementations[F]) Kinds() []Kind {
	kinds := make([]Kind, 0, len(i.kinds))
	for k := range i.kinds {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(a, b int) bool { return kinds[a] < kinds[b] })
	return kinds
}
