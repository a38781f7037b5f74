// Package library holds the book library domain logic.
//
// Reconciler merges external catalog results with the local library so that
// a search shows which books are already owned. Service implements the library
// operations: filtered listing, create, get, update of review and rating,
// delete and cover retrieval.
//
// Both depend only on the interfaces declared in interfaces.go. The gorm
// repositories in internal/database satisfy them in production; tests use an
// on-disk SQLite database or small fakes.
package library
