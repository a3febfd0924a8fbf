// Package book defines the catalog's single entity and the rules for turning
// raw user input into it.
//
// This package imports nothing internal. Store, view and controller all
// build on it:
//   - Book is the persisted record (id, title, author, year)
//   - Draft is unvalidated form input, every field still text
//   - Field names the four table columns; only title, author and year are editable
//   - ValidationError, ErrNotFound and StorageError are the error kinds every
//     layer reports
//
// Title and author are stored exactly as typed. Surrounding whitespace only
// matters when deciding whether a field was left blank.
package book
