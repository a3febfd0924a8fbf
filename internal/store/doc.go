// Package store provides SQLite-backed durable storage for the book catalog.
//
// The store owns a single table, books, with an auto-assigned integer id.
// Ids come from AUTOINCREMENT and are never reused after a delete.
//
// # Ordering
//
// Every list query orders by id ASC, which is insertion order. Filtered
// lists keep the same order, so a filtered result is always a subsequence
// of ListAll.
//
// # Errors
//
//   - Input that fails coercion returns *book.ValidationError and touches nothing
//   - An id that matches no row returns book.ErrNotFound (wrapped) and touches nothing
//   - Engine failures are wrapped in *book.StorageError
//
// # Database Configuration
//
//   - WAL mode
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON
//   - one open connection; the catalog has a single writer
package store
