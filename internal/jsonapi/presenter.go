package jsonapi

import (
	"fmt"
	"maps"
)

// Presenter runs the Resolver and the Assembler for one base URL per call.
// It holds only read-only configuration.
type Presenter struct {
	schema    Schema
	meta      Meta
	assembler *Assembler
}

// NewPresenter validates schema and returns a Presenter that stamps meta
// onto every document it produces.
func NewPresenter(schema Schema, meta Meta, opts ...AssemblerOption) (*Presenter, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return &Presenter{
		schema:    schema,
		meta:      maps.Clone(meta),
		assembler: NewAssembler(meta, opts...),
	}, nil
}

type presentOptions struct {
	selfLink string
}

// PresentOption configures a single Present call.
type PresentOption func(*presentOptions)

// WithSelfLink overrides the top-level self link, e.g. for related
// collections served under a parent resource.
func WithSelfLink(link string) PresentOption {
	return func(o *presentOptions) {
		o.selfLink = link
	}
}

// Present builds the document for roots. Unless overridden, the top-level
// self link is {base}/{type} for a collection and {base}/{type}/{id} for a
// single record.
func (p *Presenter) Present(baseURL string, roots Roots, opts ...PresentOption) (*Document, error) {
	var o presentOptions
	for _, opt := range opts {
		opt(&o)
	}

	resolver := NewResolver(p.schema, baseURL)
	res, err := resolver.Resolve(roots)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", roots.Type(), err)
	}

	self := o.selfLink
	if self == "" {
		if roots.IsCollection() {
			self = resolver.CollectionURL(roots.Type())
		} else {
			self = resolver.ResourceURL(roots.Type(), roots.records[0].ResourceID())
		}
	}

	return p.assembler.Assemble(res, self), nil
}

// PresentRelationship builds the linkage document served at
// {base}/{type}/{id}/relationships/{name}.
func (p *Presenter) PresentRelationship(baseURL string, root Record, name string) (*RelationshipDocument, error) {
	rel, err := NewResolver(p.schema, baseURL).Linkage(root, name)
	if err != nil {
		return nil, err
	}
	return &RelationshipDocument{
		Meta:  maps.Clone(p.meta),
		Links: rel.Links,
		Data:  rel.Data,
	}, nil
}

// Meta returns a copy of the static metadata.
func (p *Presenter) Meta() Meta {
	return maps.Clone(p.meta)
}

// Schema returns the schema the presenter serializes with.
func (p *Presenter) Schema() Schema {
	return p.schema
}
