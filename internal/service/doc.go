// Package service contains the blog use cases. Services coordinate the post,
// comment and tag stores (defined in internal/store), apply domain rules and
// open transactions for read-modify-write operations. They never depend on a
// concrete storage implementation.
//
// Errors from the stores and the domain are wrapped in *ServiceError and
// remain matchable with errors.Is, so the API layer can map
// store.ErrNotFound, store.ErrDuplicate and domain.ErrValidation to status
// codes without knowing which service produced them.
package service
