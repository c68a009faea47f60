package jsonapi

// fakeRecord is a Record backed by literal values.
type fakeRecord struct {
	typ     string
	id      string
	attrs   map[string]any
	related map[string][]Record
}

func (r *fakeRecord) ResourceType() string         { return r.typ }
func (r *fakeRecord) ResourceID() string           { return r.id }
func (r *fakeRecord) Attributes() map[string]any   { return r.attrs }
func (r *fakeRecord) Related(name string) []Record { return r.related[name] }

const testBaseURL = "http://example.org:80/api/v1"

func blogSchema() Schema {
	return Schema{
		"posts": {
			Attributes: []string{"slug", "title", "content"},
			Relationships: []RelationshipSchema{
				{Name: "tags", Type: "tags"},
				{Name: "comments", Type: "comments"},
			},
		},
		"comments": {Attributes: []string{"author", "email", "website", "content"}},
		"tags":     {Attributes: []string{"slug", "name"}},
	}
}

func blogMeta() Meta {
	return Meta{
		"name":        "Bloggy",
		"description": "A simple blogging API built with Go.",
	}
}

func newPost(id string, tags []Record, comments []Record) *fakeRecord {
	return &fakeRecord{
		typ: "posts",
		id:  id,
		attrs: map[string]any{
			"slug":    "my-slug",
			"title":   "My Title",
			"content": "Some Random Content.",
		},
		related: map[string][]Record{
			"tags":     tags,
			"comments": comments,
		},
	}
}

func newTag(id string) *fakeRecord {
	return &fakeRecord{
		typ:   "tags",
		id:    id,
		attrs: map[string]any{"slug": "ruby-on-rails", "name": "Ruby on Rails"},
	}
}

func newComment(id string) *fakeRecord {
	return &fakeRecord{
		typ: "comments",
		id:  id,
		attrs: map[string]any{
			"author":  "Thibault Denizet",
			"email":   "thibault@example.com",
			"website": "samurails.com",
			"content": "This post is cool!",
		},
	}
}
