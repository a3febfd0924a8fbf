package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/roach88/shelf/internal/book"
)

// ListAll returns every record in insertion order.
//
// Returns an empty slice (not nil) when the catalog is empty.
func (s *Store) ListAll(ctx context.Context) ([]book.Book, error) {
	return s.queryBooks(ctx, "list books", `
		SELECT id, title, author, year
		FROM books
		ORDER BY id ASC
	`)
}

// ListFiltered returns the records whose title contains substring, in the
// same order as ListAll. Matching is a case-sensitive byte comparison, and %
// and _ in substring have no special meaning. An empty substring matches
// every record.
func (s *Store) ListFiltered(ctx context.Context, substring string) ([]book.Book, error) {
	if substring == "" {
		return s.ListAll(ctx)
	}

	return s.queryBooks(ctx, "search books", `
		SELECT id, title, author, year
		FROM books
		WHERE instr(title, ?) > 0
		ORDER BY id ASC
	`, substring)
}

// Get retrieves a single record by id.
// Returns book.ErrNotFound (wrapped) if no row has the id.
func (s *Store) Get(ctx context.Context, id int64) (book.Book, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, author, year
		FROM books
		WHERE id = ?
	`, id)

	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return book.Book{}, book.NotFound(id)
	}
	if err != nil {
		return book.Book{}, &book.StorageError{Op: "get book", Err: err}
	}
	return b, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&n); err != nil {
		return 0, &book.StorageError{Op: "count books", Err: err}
	}
	return n, nil
}

func (s *Store) queryBooks(ctx context.Context, op, query string, args ...any) ([]book.Book, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &book.StorageError{Op: op, Err: err}
	}
	defer rows.Close()

	books := []book.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, &book.StorageError{Op: op + ": scan", Err: err}
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, &book.StorageError{Op: op + ": iterate", Err: err}
	}

	return books, nil
}

// scanBook scans one row of (id, title, author, year).
func scanBook(row interface{ Scan(dest ...any) error }) (book.Book, error) {
	var b book.Book
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Year); err != nil {
		return book.Book{}, err
	}
	return b, nil
}
