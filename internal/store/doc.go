// Package store defines the persistence contracts for posts, comments and
// tags. Implementations live under internal/platform; callers depend only on
// these interfaces and the sentinel errors declared here.
package store
