package jsonapi

// Record is the view of a domain object the Resolver serializes.
//
// Attributes must contain every attribute name the record's type declares;
// extra keys are ignored. Related returns the records of a declared
// relationship in the order the storage layer produced them. The Resolver
// never re-sorts them.
type Record interface {
	ResourceType() string
	ResourceID() string
	Attributes() map[string]any
	Related(relationship string) []Record
}

// Roots is the primary data handed to the Resolver together with its
// cardinality. A single record always produces a single object in the
// document, a collection always produces an array, even of length one.
type Roots struct {
	typ        string
	records    []Record
	collection bool
}

// One wraps a single root record. r must not be nil.
func One(r Record) Roots {
	return Roots{
		typ:     r.ResourceType(),
		records: []Record{r},
	}
}

// Many wraps an ordered collection of root records of type typ. The type is
// passed explicitly so an empty collection still has a self link.
func Many[T Record](typ string, records []T) Roots {
	rs := make([]Record, len(records))
	for i, r := range records {
		rs[i] = r
	}
	return Roots{
		typ:        typ,
		records:    rs,
		collection: true,
	}
}

// Type returns the resource type of the roots.
func (r Roots) Type() string { return r.typ }

// Records returns the root records in order.
func (r Roots) Records() []Record { return r.records }

// IsCollection reports whether the roots were supplied as a collection.
func (r Roots) IsCollection() bool { return r.collection }
