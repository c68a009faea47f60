package jsonapi

import "maps"

// Assembler merges a Resolution with static metadata into a Document.
type Assembler struct {
	meta         Meta
	excludeRoots bool
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithRootsExcludedFromIncluded drops related objects that are also roots of
// the same document from "included". By default they are kept.
func WithRootsExcludedFromIncluded() AssemblerOption {
	return func(a *Assembler) {
		a.excludeRoots = true
	}
}

// NewAssembler creates an Assembler that stamps meta onto every document.
func NewAssembler(meta Meta, opts ...AssemblerOption) *Assembler {
	a := &Assembler{meta: maps.Clone(meta)}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble builds the final document. Data keeps the cardinality and order of
// the resolved roots; Included holds each distinct (type, id) once, in the
// order it was first encountered during resolution.
func (a *Assembler) Assemble(res *Resolution, selfLink string) *Document {
	return &Document{
		Meta:  maps.Clone(a.meta),
		Links: Links{Self: selfLink},
		Data: PrimaryData{
			resources:  res.Roots,
			collection: res.collection,
		},
		Included: a.flatten(res),
	}
}

func (a *Assembler) flatten(res *Resolution) []ResourceObject {
	seen := make(map[ResourceIdentifier]struct{}, len(res.Candidates))
	if a.excludeRoots {
		for _, root := range res.Roots {
			seen[root.Identifier()] = struct{}{}
		}
	}

	included := make([]ResourceObject, 0, len(res.Candidates))
	for _, obj := range res.Candidates {
		key := obj.Identifier()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		included = append(included, obj)
	}
	return included
}
