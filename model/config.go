package model

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/semiconductor/semerr"
)

// Reserved entry fields. Every other field is a numeric parameter (number or
// list of numbers) or a string tag.
const (
	fieldModel          = "model"
	fieldNotes          = "notes"
	fieldDefault        = "default"
	fieldNotImplemented = "not_implemented"
)

// LoadFromFile loads a family table from a YAML file.
func LoadFromFile[F any](path string, impls *Implementations[F]) (*Registry[F], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, semerr.NewConfigError(path, fmt.Errorf("read model table: %w", err))
	}
	return Load(path, data, impls)
}

// Load parses a YAML model table. The table maps author names to entries;
// each entry carries a "model" kind. The default is either an entry keyed
// "default" whose model names another author, or one entry with
// "default: true". Multiple YAML documents in one source are concatenated.
//
// Load fails with a ConfigError when the YAML is malformed, a kind has no
// registered implementation, a required parameter is missing, or the
// default is missing, ambiguous or dangling.
func Load[F any](source string, data []byte, impls *Implementations[F]) (*Registry[F], error) {
	reg := &Registry[F]{
		family:  impls.Family(),
		source:  source,
		records: make(map[string]*Record[F]),
	}

	var alias string
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, semerr.NewConfigError(source, fmt.Errorf("parse model table: %w", err))
		}
		if len(doc.Content) == 0 {
			continue
		}

		root := doc.Content[0]
		if root.Kind != yaml.MappingNode {
			return nil, semerr.Configf(source, "model table must be a mapping of authors, got %s", nodeKind(root))
		}

		for i := 0; i+1 < len(root.Content); i += 2 {
			author := root.Content[i].Value
			entry := root.Content[i+1]

			if author == DefaultAlias {
				target, err := parseAlias(entry)
				if err != nil {
					return nil, semerr.NewConfigError(source, err)
				}
				if alias != "" {
					return nil, semerr.Configf(source, "default alias declared twice")
				}
				alias = target
				continue
			}

			if _, dup := reg.records[author]; dup {
				return nil, semerr.Configf(source, "author %q declared twice", author)
			}

			rec, err := parseEntry(author, entry, impls)
			if err != nil {
				return nil, semerr.NewConfigError(source, err)
			}
			reg.records[author] = rec
			reg.order = append(reg.order, author)
		}
	}

	if len(reg.order) == 0 {
		return nil, semerr.Configf(source, "model table for %s is empty", reg.family)
	}
	if err := reg.bindDefault(alias); err != nil {
		return nil, semerr.NewConfigError(source, err)
	}

	return reg, nil
}

func (r *Registry[F]) bindDefault(alias string) error {
	var flagged []string
	for _, name := range r.order {
		if r.records[name].Default {
			flagged = append(flagged, name)
		}
	}

	switch {
	case alias != "" && len(flagged) > 0:
		return fmt.Errorf("default given both as alias %q and as flag on %v", alias, flagged)
	case len(flagged) > 1:
		return fmt.Errorf("more than one default: %v", flagged)
	case len(flagged) == 1:
		alias = flagged[0]
	case alias == "":
		return fmt.Errorf("no default model for %s", r.family)
	}

	rec, ok := r.records[alias]
	if !ok {
		return fmt.Errorf("default points to unknown author %q", alias)
	}
	if !rec.Implemented {
		return fmt.Errorf("default author %q is not implemented", alias)
	}
	rec.Default = true
	r.defaultAuthor = alias
	return nil
}

func parseAlias(entry *yaml.Node) (string, error) {
	if entry.Kind == yaml.ScalarNode {
		return entry.Value, nil
	}
	if entry.Kind != yaml.MappingNode {
		return "", fmt.Errorf("default entry must name an author")
	}
	for i := 0; i+1 < len(entry.Content); i += 2 {
		if entry.Content[i].Value == fieldModel {
			return entry.Content[i+1].Value, nil
		}
	}
	return "", fmt.Errorf("default entry has no %q field", fieldModel)
}

func parseEntry[F any](author string, entry *yaml.Node, impls *Implementations[F]) (*Record[F], error) {
	if entry.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("author %q: entry must be a mapping, got %s", author, nodeKind(entry))
	}

	rec := &Record[F]{
		Author:      author,
		Params:      make(Params),
		Tags:        make(map[string]string),
		Implemented: true,
	}

	for i := 0; i+1 < len(entry.Content); i += 2 {
		key := entry.Content[i].Value
		val := entry.Content[i+1]

		switch key {
		case fieldModel:
			rec.Kind = Kind(val.Value)
		case fieldNotes:
			rec.Notes = val.Value
		case fieldDefault:
			if err := val.Decode(&rec.Default); err != nil {
				return nil, fmt.Errorf("author %q: default must be a boolean", author)
			}
		case fieldNotImplemented:
			var flag bool
			if err := val.Decode(&flag); err != nil {
				return nil, fmt.Errorf("author %q: not_implemented must be a boolean", author)
			}
			if flag {
				rec.Implemented = false
			}
		default:
			if err := rec.addField(key, val); err != nil {
				return nil, fmt.Errorf("author %q: %w", author, err)
			}
		}
	}

	if rec.Kind == "" {
		return nil, fmt.Errorf("author %q: missing %q field", author, fieldModel)
	}
	if rec.Kind == NotImplemented {
		rec.Implemented = false
	}
	if !rec.Implemented {
		return rec, nil
	}

	fn, required, ok := impls.Lookup(rec.Kind)
	if !ok {
		return nil, fmt.Errorf("author %q: no %s implementation for model kind %q", author, impls.Family(), rec.Kind)
	}
	for _, name := range required {
		if _, ok := rec.Params[name]; !ok {
			return nil, fmt.Errorf("author %q: model kind %q requires parameter %q", author, rec.Kind, name)
		}
	}
	rec.Impl = fn
	return rec, nil
}

func (r *Record[F]) addField(key string, val *yaml.Node) error {
	switch val.Kind {
	case yaml.ScalarNode:
		switch val.Tag {
		case "!!int", "!!float":
			var f float64
			if err := val.Decode(&f); err != nil {
				return fmt.Errorf("parameter %q: %w", key, err)
			}
			r.Params[key] = []float64{f}
		case "!!null":
		default:
			r.Tags[key] = val.Value
		}
	case yaml.SequenceNode:
		var values []float64
		if err := val.Decode(&values); err != nil {
			return fmt.Errorf("parameter %q must be a number or a list of numbers", key)
		}
		r.Params[key] = values
	default:
		return fmt.Errorf("field %q has unsupported %s value", key, nodeKind(val))
	}
	return nil
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}
