package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/shelf/internal/book"
)

// createTestStore opens a fresh catalog in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// mustCreate inserts a draft and fails the test on error.
func mustCreate(t *testing.T, s *Store, title, author, year string) int64 {
	t.Helper()
	id, err := s.Create(context.Background(), book.Draft{Title: title, Author: author, Year: year})
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", title, err)
	}
	return id
}
