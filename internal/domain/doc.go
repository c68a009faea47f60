// Package domain contains the blog entities (posts, comments and tags) and
// the rules that make each of them valid on its own. Cross-record rules such
// as slug uniqueness belong to the storage layer.
package domain
