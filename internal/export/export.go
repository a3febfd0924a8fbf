// Package export writes the catalog to CSV and reads exported files back.
//
// The format is fixed: a header line ID,Title,Author,Year followed by one
// line per record in id order, UTF-8, standard CSV quoting for fields that
// contain commas, quotes or newlines. Records end in CRLF.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/roach88/shelf/internal/book"
)

// Lister is the part of the record store the exporter reads from.
type Lister interface {
	ListAll(ctx context.Context) ([]book.Book, error)
}

// WriteError reports a failure writing the export file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("export to %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Write encodes books as CSV with the fixed header.
//
// Line breaks inside a field are written as CRLF and Read returns them as
// LF, so a title containing CRLF does not survive a round trip byte for byte.
func Write(w io.Writer, books []book.Book) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(book.Headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, b := range books {
		if err := cw.Write(b.Strings()); err != nil {
			return fmt.Errorf("write record %d: %w", b.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile lists every record and writes it to path.
// The file is written to a temporary sibling and renamed into place, so an
// existing file at path is either fully replaced or left alone.
// Returns the number of records written.
func WriteFile(ctx context.Context, l Lister, path string) (int, error) {
	books, err := l.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".shelf-export-*.csv")
	if err != nil {
		return 0, &WriteError{Path: path, Err: err}
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // No-op after a successful rename

	if err := Write(tmp, books); err != nil {
		tmp.Close()
		return 0, &WriteError{Path: path, Err: err}
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return 0, &WriteError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return 0, &WriteError{Path: path, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return 0, &WriteError{Path: path, Err: err}
	}

	return len(books), nil
}

// Read decodes a file produced by Write. The header line is checked and
// excluded from the result.
func Read(r io.Reader) ([]book.Book, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(book.Headers)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("read export: missing header")
	}
	if err != nil {
		return nil, fmt.Errorf("read export header: %w", err)
	}
	if !slices.Equal(header, book.Headers) {
		return nil, fmt.Errorf("read export: unexpected header %q", header)
	}

	books := []book.Book{}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read export: %w", err)
		}

		id, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("read export: id %q: %w", rec[0], err)
		}
		year, err := strconv.Atoi(rec[3])
		if err != nil {
			return nil, fmt.Errorf("read export: year %q: %w", rec[3], err)
		}

		books = append(books, book.Book{ID: id, Title: rec[1], Author: rec[2], Year: year})
	}

	return books, nil
}
