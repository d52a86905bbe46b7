package model

import (
	"github.com/c360studio/semiconductor/semerr"
)

// DefaultAlias is the table key that names the default author.
const DefaultAlias = "default"

// Record is one author's entry in a family table.
type Record[F any] struct {
	// Author is the unique key of the entry within its family.
	Author string

	// Kind selects the implementation.
	Kind Kind

	// Params are the numeric parameters passed to the implementation.
	Params Params

	// Tags are the non-numeric fields of the entry, used for filtering
	// (e.g. dopant: boron).
	Tags map[string]string

	// Notes is free text about the model.
	Notes string

	// Default is set on the family's default record.
	Default bool

	// Implemented is false for entries documenting a model with no code.
	Implemented bool

	// Impl is the function bound to Kind.
	Impl F
}

// Field returns the value of a filterable field. "model" yields the kind.
func (r Record[F]) Field(name string) (string, bool) {
	if v, ok := r.Tags[name]; ok {
		return v, true
	}
	if name == "model" {
		return string(r.Kind), true
	}
	return "", false
}

// Filter restricts ListAuthors to records whose Field matches one of Values.
type Filter struct {
	Field  string
	Values []string
}

func (f Filter) match(field string, ok bool) bool {
	if !ok {
		return false
	}
	for _, v := range f.Values {
		if v == field {
			return true
		}
	}
	return false
}

// Table is the family-independent, read-only view of a Registry.
type Table interface {
	Family() string
	Source() string
	Default() string
	ListAuthors(filters ...Filter) []string
	Notes(author string) (string, error)
	Has(author string) bool
}

// Registry is the immutable table of models for one family.
type Registry[F any] struct {
	family        string
	source        string
	order         []string
	records       map[string]*Record[F]
	defaultAuthor string
}

// Family returns the property family the registry serves.
func (r *Registry[F]) Family() string {
	return r.family
}

// Source returns the name of the table the registry was loaded from.
func (r *Registry[F]) Source() string {
	return r.source
}

// Default returns the canonical name of the default author.
func (r *Registry[F]) Default() string {
	return r.defaultAuthor
}

// Resolve returns the record for author. An empty author (or the literal
// "default") resolves to the default record. The returned record owns a
// copy of the parameters.
func (r *Registry[F]) Resolve(author string) (Record[F], error) {
	if author == "" || author == DefaultAlias {
		author = r.defaultAuthor
	}

	rec, ok := r.records[author]
	if !ok || !rec.Implemented {
		return Record[F]{}, &semerr.UnknownAuthorError{
			Family:    r.family,
			Author:    author,
			Available: r.ListAuthors(),
		}
	}

	out := *rec
	out.Params = rec.Params.Clone()
	return out, nil
}

// ListAuthors returns the implemented authors in table order, restricted by
// every filter given. Callers must not rely on the order.
func (r *Registry[F]) ListAuthors(filters ...Filter) []string {
	authors := make([]string, 0, len(r.order))
	for _, name := range r.order {
		rec := r.records[name]
		if !rec.Implemented {
			continue
		}
		keep := true
		for _, f := range filters {
			if !f.match(rec.Field(f.Field)) {
				keep = false
				break
			}
		}
		if keep {
			authors = append(authors, name)
		}
	}
	return authors
}

// Notes returns the notes recorded for author.
func (r *Registry[F]) Notes(author string) (string, error) {
	if author == "" || author == DefaultAlias {
		author = r.defaultAuthor
	}
	rec, ok := r.records[author]
	if !ok {
		return "", &semerr.UnknownAuthorError{Family: r.family, Author: author, Available: r.ListAuthors()}
	}
	return rec.Notes, nil
}

// Has reports whether author is a selectable entry.
func (r *Registry[F]) Has(author string) bool {
	rec, ok := r.records[author]
	return ok && rec.Implemented
}

// Len returns the number of entries, including unimplemented ones.
func (r *Registry[F]) Len() int {
	return len(r.order)
}

var _ Table = (*Registry[func()])(nil)
