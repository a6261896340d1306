// Package store defines the backend-agnostic interface for task persistence.
//
// All reads and writes of task records go through the Store interface.
// The board controller and HTTP handlers never import a database SDK
// directly; the Firestore implementation lives in the firestore
// subpackage and tests use the in-memory fake from internal/testutil.
//
// # Error Taxonomy
//
// Implementations translate backend failures into the package sentinels:
//
//   - ErrUnavailable: the backend could not be reached
//   - ErrWriteRejected: the backend refused a write
//   - ErrNotFound: the referenced task does not exist
//
// Callers branch with errors.Is and never inspect backend error types.
package store
