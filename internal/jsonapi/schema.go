package jsonapi

import "fmt"

// RelationshipSchema declares a named to-many relationship and the type of
// the records it yields.
type RelationshipSchema struct {
	Name string
	Type string
}

// TypeSchema lists what gets serialized for one resource type. Order is
// significant: relationships are resolved in declaration order.
type TypeSchema struct {
	Attributes    []string
	Relationships []RelationshipSchema
}

// Schema maps a resource type name to its declaration. It is treated as
// read-only once handed to a Resolver or Presenter.
type Schema map[string]TypeSchema

// Lookup returns the declaration for typ.
func (s Schema) Lookup(typ string) (TypeSchema, error) {
	ts, ok := s[typ]
	if !ok {
		return TypeSchema{}, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}
	return ts, nil
}

// Relationship returns the declaration of the named relationship on typ.
func (s Schema) Relationship(typ, name string) (RelationshipSchema, error) {
	ts, err := s.Lookup(typ)
	if err != nil {
		return RelationshipSchema{}, err
	}
	for _, rel := range ts.Relationships {
		if rel.Name == name {
			return rel, nil
		}
	}
	return RelationshipSchema{}, fmt.Errorf("%w: %s.%s", ErrUnknownRelationship, typ, name)
}

// Validate checks that names are unique per type, that "id" and "type" are
// not declared as attributes, and that every relationship points at a
// declared type.
func (s Schema) Validate() error {
	for typ, ts := range s {
		if typ == "" {
			return fmt.Errorf("%w: empty type name", ErrInvalidSchema)
		}

		seen := make(map[string]bool, len(ts.Attributes)+len(ts.Relationships))
		for _, attr := range ts.Attributes {
			if attr == "id" || attr == "type" {
				return fmt.Errorf("%w: %s declares reserved attribute %q", ErrInvalidSchema, typ, attr)
			}
			if seen[attr] {
				return fmt.Errorf("%w: %s declares %q twice", ErrInvalidSchema, typ, attr)
			}
			seen[attr] = true
		}

		for _, rel := range ts.Relationships {
			if seen[rel.Name] {
				return fmt.Errorf("%w: %s declares %q twice", ErrInvalidSchema, typ, rel.Name)
			}
			seen[rel.Name] = true

			if _, ok := s[rel.Type]; !ok {
				return fmt.Errorf("%w: %s.%s points at undeclared type %q",
					ErrInvalidSchema, typ, rel.Name, rel.Type)
			}
		}
	}
	return nil
}
