package jsonapi

import (
	"fmt"
	"net/url"
	"strings"
)

// Resolution is the output of the Resolver: serialized roots in input order
// and every serialized related object in encounter order. Candidates is not
// de-duplicated; that is the Assembler's job.
type Resolution struct {
	Roots      []ResourceObject
	Candidates []ResourceObject

	rootType   string
	collection bool
}

// RootType returns the resource type of the roots.
func (r *Resolution) RootType() string { return r.rootType }

// IsCollection reports whether the roots were supplied as a collection.
func (r *Resolution) IsCollection() bool { return r.collection }

// Resolver serializes root records and walks their declared relationships.
type Resolver struct {
	schema  Schema
	baseURL string
}

// NewResolver creates a Resolver that builds links under baseURL.
func NewResolver(schema Schema, baseURL string) *Resolver {
	return &Resolver{
		schema:  schema,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Resolve serializes every root, builds one relationship descriptor per
// declared relationship (even when it is empty) and serializes every related
// record one level deep.
func (r *Resolver) Resolve(roots Roots) (*Resolution, error) {
	if !roots.collection && len(roots.records) != 1 {
		return nil, fmt.Errorf("%w: %d records", ErrEmptyRoots, len(roots.records))
	}

	res := &Resolution{
		Roots:      make([]ResourceObject, 0, len(roots.records)),
		rootType:   roots.typ,
		collection: roots.collection,
	}

	for _, root := range roots.records {
		obj, ts, err := r.serialize(root)
		if err != nil {
			return nil, err
		}

		rels := make(Relationships, len(ts.Relationships))
		for _, decl := range ts.Relationships {
			related := root.Related(decl.Name)
			rel := Relationship{
				Data:  make([]ResourceIdentifier, 0, len(related)),
				Links: r.relationshipLinks(obj.Type, obj.ID, decl.Name),
			}

			for _, rec := range related {
				if rec.ResourceType() != decl.Type {
					return nil, fmt.Errorf("%w: %s %s.%s yielded %q, want %q",
						ErrRelationshipType, obj.Type, obj.ID, decl.Name, rec.ResourceType(), decl.Type)
				}

				relObj, _, err := r.serialize(rec)
				if err != nil {
					return nil, err
				}
				rel.Data = append(rel.Data, relObj.Identifier())
				res.Candidates = append(res.Candidates, relObj)
			}

			rels[decl.Name] = rel
		}

		obj.Relationships = &rels
		res.Roots = append(res.Roots, obj)
	}

	return res, nil
}

// Linkage returns the relationship descriptor for one relationship of root
// without serializing the related records.
func (r *Resolver) Linkage(root Record, name string) (Relationship, error) {
	decl, err := r.schema.Relationship(root.ResourceType(), name)
	if err != nil {
		return Relationship{}, err
	}

	related := root.Related(decl.Name)
	rel := Relationship{
		Data:  make([]ResourceIdentifier, 0, len(related)),
		Links: r.relationshipLinks(root.ResourceType(), root.ResourceID(), decl.Name),
	}
	for _, rec := range related {
		rel.Data = append(rel.Data, ResourceIdentifier{Type: rec.ResourceType(), ID: rec.ResourceID()})
	}
	return rel, nil
}

// serialize copies exactly the declared attributes of rec. A declared
// attribute that is absent fails the whole resolution.
func (r *Resolver) serialize(rec Record) (ResourceObject, TypeSchema, error) {
	typ, id := rec.ResourceType(), rec.ResourceID()

	ts, err := r.schema.Lookup(typ)
	if err != nil {
		return ResourceObject{}, TypeSchema{}, err
	}

	src := rec.Attributes()
	attrs := make(map[string]any, len(ts.Attributes))
	for _, name := range ts.Attributes {
		v, ok := src[name]
		if !ok {
			return ResourceObject{}, TypeSchema{}, &AttributeError{Type: typ, ID: id, Attribute: name}
		}
		attrs[name] = v
	}

	return ResourceObject{
		Type:       typ,
		ID:         id,
		Attributes: attrs,
		Links:      Links{Self: r.ResourceURL(typ, id)},
	}, ts, nil
}

// CollectionURL returns {base}/{type}.
func (r *Resolver) CollectionURL(typ string) string {
	return r.baseURL + "/" + typ
}

// ResourceURL returns {base}/{type}/{id}.
func (r *Resolver) ResourceURL(typ, id string) string {
	return r.CollectionURL(typ) + "/" + url.PathEscape(id)
}

func (r *Resolver) relationshipLinks(typ, id, name string) Links {
	resource := r.ResourceURL(typ, id)
	return Links{
		Self:    resource + "/relationships/" + name,
		Related: resource + "/" + name,
	}
}
