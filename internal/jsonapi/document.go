package jsonapi

import (
	"bytes"
	"encoding/json"
)

// MediaType is the JSON:API media type used for requests and responses.
const MediaType = "application/vnd.api+json"

// Meta holds non-standard top-level metadata, copied verbatim into documents.
type Meta map[string]any

// Links holds the link members of a document, resource or relationship.
type Links struct {
	Self    string `json:"self,omitempty"`
	Related string `json:"related,omitempty"`
}

// ResourceIdentifier is the (type, id) pair that identifies a resource.
type ResourceIdentifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Relationship describes a to-many relationship without embedding the
// related objects. Data is never nil so an empty relationship encodes as [].
type Relationship struct {
	Data  []ResourceIdentifier `json:"data"`
	Links Links                `json:"links"`
}

// Relationships maps relationship names to their descriptors.
type Relationships map[string]Relationship

// ResourceObject is a serialized record. Root objects always carry a
// (possibly empty) Relationships map; included objects leave it nil.
type ResourceObject struct {
	Type          string         `json:"type"`
	ID            string         `json:"id"`
	Attributes    map[string]any `json:"attributes"`
	Links         Links          `json:"links"`
	Relationships *Relationships `json:"relationships,omitempty"`
}

// Identifier returns the object's (type, id) pair.
func (o ResourceObject) Identifier() ResourceIdentifier {
	return ResourceIdentifier{Type: o.Type, ID: o.ID}
}

// PrimaryData is the "data" member of a document. It encodes as a single
// object or as an array depending on the cardinality it was built with.
type PrimaryData struct {
	resources  []ResourceObject
	collection bool
}

// IsCollection reports whether the data encodes as an array.
func (d PrimaryData) IsCollection() bool { return d.collection }

// Resources returns the resource objects in order.
func (d PrimaryData) Resources() []ResourceObject { return d.resources }

// One returns the single resource object, or nil for collections and empty data.
func (d PrimaryData) One() *ResourceObject {
	if d.collection || len(d.resources) == 0 {
		return nil
	}
	return &d.resources[0]
}

// MarshalJSON implements json.Marshaler.
func (d PrimaryData) MarshalJSON() ([]byte, error) {
	if d.collection {
		if len(d.resources) == 0 {
			return []byte("[]"), nil
		}
		return json.Marshal(d.resources)
	}
	if len(d.resources) == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(d.resources[0])
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *PrimaryData) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*d = PrimaryData{}
		return nil
	case len(trimmed) > 0 && trimmed[0] == '[':
		var many []ResourceObject
		if err := json.Unmarshal(trimmed, &many); err != nil {
			return err
		}
		*d = PrimaryData{resources: many, collection: true}
		return nil
	default:
		var one ResourceObject
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return err
		}
		*d = PrimaryData{resources: []ResourceObject{one}}
		return nil
	}
}

// Document is a top-level JSON:API document.
type Document struct {
	Meta     Meta             `json:"meta,omitempty"`
	Links    Links            `json:"links"`
	Data     PrimaryData      `json:"data"`
	Included []ResourceObject `json:"included"`
}

// RelationshipDocument is served from relationship endpoints and carries
// only resource linkage.
type RelationshipDocument struct {
	Meta  Meta                 `json:"meta,omitempty"`
	Links Links                `json:"links"`
	Data  []ResourceIdentifier `json:"data"`
}
