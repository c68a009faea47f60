package jsonapi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverResolve(t *testing.T) {
	t.Run("empty relationships still get descriptors", func(t *testing.T) {
		r := NewResolver(blogSchema(), testBaseURL)

		res, err := r.Resolve(One(newPost("1", nil, nil)))
		require.NoError(t, err)
		require.Len(t, res.Roots, 1)
		assert.Empty(t, res.Candidates)

		rels := *res.Roots[0].Relationships
		require.Contains(t, rels, "tags")
		require.Contains(t, rels, "comments")
		assert.NotNil(t, rels["tags"].Data)
		assert.Empty(t, rels["tags"].Data)
		assert.NotNil(t, rels["comments"].Data)
	})

	t.Run("relationship links", func(t *testing.T) {
		r := NewResolver(blogSchema(), testBaseURL+"/")

		res, err := r.Resolve(One(newPost("7", []Record{newTag("9")}, nil)))
		require.NoError(t, err)

		root := res.Roots[0]
		assert.Equal(t, testBaseURL+"/posts/7", root.Links.Self)

		tags := (*root.Relationships)["tags"]
		assert.Equal(t, testBaseURL+"/posts/7/relationships/tags", tags.Links.Self)
		assert.Equal(t, testBaseURL+"/posts/7/tags", tags.Links.Related)
		assert.Equal(t, []ResourceIdentifier{{Type: "tags", ID: "9"}}, tags.Data)

		comments := (*root.Relationships)["comments"]
		assert.Equal(t, testBaseURL+"/posts/7/relationships/comments", comments.Links.Self)
		assert.Equal(t, testBaseURL+"/posts/7/comments", comments.Links.Related)
	})

	t.Run("candidates keep encounter order and duplicates", func(t *testing.T) {
		r := NewResolver(blogSchema(), testBaseURL)
		shared := newTag("t1")
		posts := []*fakeRecord{
			newPost("p1", []Record{newTag("t2"), shared}, []Record{newComment("c1")}),
			newPost("p2", []Record{shared}, nil),
		}

		res, err := r.Resolve(Many("posts", posts))
		require.NoError(t, err)

		var got []ResourceIdentifier
		for _, c := range res.Candidates {
			got = append(got, c.Identifier())
		}
		assert.Equal(t, []ResourceIdentifier{
			{Type: "tags", ID: "t2"},
			{Type: "tags", ID: "t1"},
			{Type: "comments", ID: "c1"},
			{Type: "tags", ID: "t1"},
		}, got)
	})

	t.Run("attributes limited to declared names", func(t *testing.T) {
		r := NewResolver(blogSchema(), testBaseURL)
		tag := newTag("1")
		tag.attrs["created_at"] = "2024-01-01"

		res, err := r.Resolve(One(tag))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"slug": "ruby-on-rails", "name": "Ruby on Rails"}, res.Roots[0].Attributes)
		require.NotNil(t, res.Roots[0].Relationships)
		assert.Empty(t, *res.Roots[0].Relationships)
	})

	t.Run("nil attribute value is kept", func(t *testing.T) {
		r := NewResolver(blogSchema(), testBaseURL)
		post := newPost("1", nil, nil)
		post.attrs["content"] = nil

		res, err := r.Resolve(One(post))
		require.NoError(t, err)
		assert.Contains(t, res.Roots[0].Attributes, "content")
		assert.Nil(t, res.Roots[0].Attributes["content"])
	})

	t.Run("id is path escaped in links", func(t *testing.T) {
		r := NewResolver(blogSchema(), testBaseURL)

		res, err := r.Resolve(One(newTag("a b")))
		require.NoError(t, err)
		assert.Equal(t, testBaseURL+"/tags/a%20b", res.Roots[0].Links.Self)
		assert.Equal(t, "a b", res.Roots[0].ID)
	})
}

func TestResolverResolveErrors(t *testing.T) {
	tests := []struct {
		name    string
		roots   func() Roots
		wantErr error
	}{
		{
			name: "missing root attribute",
			roots: func() Roots {
				p := newPost("1", nil, nil)
				delete(p.attrs, "title")
				return One(p)
			},
			wantErr: ErrMissingAttribute,
		},
		{
			name: "missing related attribute",
			roots: func() Roots {
				c := newComment("c1")
				delete(c.attrs, "content")
				return One(newPost("1", nil, []Record{c}))
			},
			wantErr: ErrMissingAttribute,
		},
		{
			name: "unknown root type",
			roots: func() Roots {
				return One(&fakeRecord{typ: "people", id: "1"})
			},
			wantErr: ErrUnknownType,
		},
		{
			name: "related record of wrong type",
			roots: func() Roots {
				return One(newPost("1", []Record{newComment("c1")}, nil))
			},
			wantErr: ErrRelationshipType,
		},
		{
			name:    "zero roots",
			roots:   func() Roots { return Roots{} },
			wantErr: ErrEmptyRoots,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewResolver(blogSchema(), testBaseURL)

			res, err := r.Resolve(tc.roots())
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestAttributeError(t *testing.T) {
	r := NewResolver(blogSchema(), testBaseURL)
	p := newPost("42", nil, nil)
	delete(p.attrs, "slug")

	_, err := r.Resolve(One(p))

	var attrErr *AttributeError
	require.True(t, errors.As(err, &attrErr))
	assert.Equal(t, "posts", attrErr.Type)
	assert.Equal(t, "42", attrErr.ID)
	assert.Equal(t, "slug", attrErr.Attribute)
	assert.Contains(t, err.Error(), `"slug"`)
}

func TestResolverLinkage(t *testing.T) {
	r := NewResolver(blogSchema(), testBaseURL)
	post := newPost("1", nil, []Record{newComment("c2"), newComment("c1")})

	rel, err := r.Linkage(post, "comments")
	require.NoError(t, err)
	assert.Equal(t, []ResourceIdentifier{
		{Type: "comments", ID: "c2"},
		{Type: "comments", ID: "c1"},
	}, rel.Data)
	assert.Equal(t, testBaseURL+"/posts/1/relationships/comments", rel.Links.Self)

	empty, err := r.Linkage(post, "tags")
	require.NoError(t, err)
	assert.NotNil(t, empty.Data)
	assert.Empty(t, empty.Data)

	_, err = r.Linkage(post, "authors")
	assert.ErrorIs(t, err, ErrUnknownRelationship)
}
