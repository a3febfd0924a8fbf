package store

import (
	"context"

	"github.com/roach88/shelf/internal/book"
)

// Create validates a draft and inserts it as a new record.
// Returns the id assigned by the database.
//
// A draft with an empty field or a non-integer year returns a
// *book.ValidationError and nothing is inserted.
func (s *Store) Create(ctx context.Context, d book.Draft) (int64, error) {
	b, err := d.Parse()
	if err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO books (title, author, year)
		VALUES (?, ?, ?)
	`, b.Title, b.Author, b.Year)
	if err != nil {
		return 0, &book.StorageError{Op: "create book", Err: err}
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, &book.StorageError{Op: "create book: last insert id", Err: err}
	}

	return id, nil
}

// UpdateField sets one column of the record with the given id from raw text.
//
// The value is coerced with book.Coerce first: the id column, unknown
// columns, blank text and a non-integer year all return a
// *book.ValidationError with storage unchanged. If no row has the id,
// storage is unchanged and book.ErrNotFound is returned.
func (s *Store) UpdateField(ctx context.Context, id int64, field book.Field, raw string) error {
	value, err := book.Coerce(field, raw)
	if err != nil {
		return err
	}

	// field is one of the editable columns at this point, so it is safe to
	// splice into the statement.
	result, err := s.db.ExecContext(ctx,
		"UPDATE books SET "+string(field)+" = ? WHERE id = ?",
		value, id,
	)
	if err != nil {
		return &book.StorageError{Op: "update book", Err: err}
	}

	return requireAffected(result, id, "update book")
}

// Delete removes the record with the given id.
// If no row has the id, storage is unchanged and book.ErrNotFound is returned.
func (s *Store) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return &book.StorageError{Op: "delete book", Err: err}
	}

	return requireAffected(result, id, "delete book")
}

// requireAffected maps a statement that touched no rows to ErrNotFound.
func requireAffected(result interface{ RowsAffected() (int64, error) }, id int64, op string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return &book.StorageError{Op: op + ": rows affected", Err: err}
	}
	if n == 0 {
		return book.NotFound(id)
	}
	return nil
}
