// Package storage defines the persistence contracts for table state.
//
// It abstracts table rows, seats, join-code allocation, and the optimistic
// version counter behind small interfaces so the service layer stays free
// of SQL. The SQLite implementation lives in the sqlite subpackage.
//
// # Error Types
//
// Sentinel errors shared by all implementations:
//   - ErrNotFound: a requested record is missing.
//   - ErrJoinCodeTaken: a table insert collided with the unique join-code index.
//   - ErrSeatExists: a seat insert collided with an existing (table, member) seat.
//   - ErrVersionMismatch: an update was built against a stale table version.
package storage
