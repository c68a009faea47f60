// Package jsonapi turns domain records into JSON:API documents.
//
// It is split into two steps. The Resolver walks every root record and the
// relationships its type declares in a static Schema, producing serialized
// root objects plus a flat pool of serialized related objects. The Assembler
// merges that resolution with static metadata and a self link into the final
// Document, de-duplicating the pool into the top-level "included" array.
//
// Related records are serialized exactly one level deep and "included" is a
// flat set, so relationship cycles need no special handling. Neither step
// performs I/O or holds shared mutable state; a Presenter may be used from
// many goroutines at once.
package jsonapi
