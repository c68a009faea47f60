// Package api handles incoming HTTP requests, request validation and
// response formatting for the blog. It adapts JSON:API request envelopes to
// the service layer and presents service results through the jsonapi
// Presenter.
//
// The same handlers back the public API under /api/v1 and the admin API
// under /api/v1/admin; a BaseURLFunc decides which prefix documents link to.
package api
