package diagnostics

import (
	"github.com/c360studio/semiconductor/catalog"
	"github.com/c360studio/semiconductor/model"
)

// Note describes one selectable author.
type Note struct {
	Author  string `json:"author"`
	Default bool   `json:"default"`
	Notes   string `json:"notes,omitempty"`
}

// Notes lists the authors of family for m that pass every filter.
func Notes(m *catalog.Material, family string, filters ...model.Filter) ([]Note, error) {
	table, err := m.Table(family)
	if err != nil {
		return nil, err
	}
	authors := table.ListAuthors(filters...)
	out := make([]Note, 0, len(authors))
	for _, author := range authors {
		text, err := table.Notes(author)
		if err != nil {
			return nil, err
		}
		out = append(out, Note{
			Author:  author,
			Default: author == table.Default(),
			Notes:   text,
		})
	}
	return out, nil
}
