// Package testutil provides shared fixtures for tests that drive the
// catalog end to end: a throwaway store, a recording notifier and a store
// wrapper that injects engine failures.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/shelf/internal/book"
	"github.com/roach88/shelf/internal/store"
)

// OpenStore opens a fresh catalog in a temp directory, closed at cleanup.
func OpenStore(t testing.TB) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "katalog.db"))
	if err != nil {
		t.Fatalf("store.Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// Seed inserts drafts in order and returns their ids.
func Seed(t testing.TB, s *store.Store, drafts ...book.Draft) []int64 {
	t.Helper()
	ids := make([]int64, len(drafts))
	for i, d := range drafts {
		id, err := s.Create(context.Background(), d)
		if err != nil {
			t.Fatalf("Create(%+v) failed: %v", d, err)
		}
		ids[i] = id
	}
	return ids
}

// Classics is a small catalog used across tests.
var Classics = []book.Draft{
	{Title: "Dune", Author: "Herbert", Year: "1965"},
	{Title: "Dune Messiah", Author: "Herbert", Year: "1969"},
	{Title: "Emma", Author: "Austen", Year: "1815"},
}

// FaultyStore wraps a store and fails selected operations with Err,
// wrapped as a *book.StorageError.
type FaultyStore struct {
	*store.Store

	Err    error
	FailOn map[string]bool // "create", "list", "update", "delete"
}

func (f *FaultyStore) fail(op string) error {
	if f.FailOn[op] {
		return &book.StorageError{Op: op + " book", Err: f.Err}
	}
	return nil
}

func (f *FaultyStore) Create(ctx context.Context, d book.Draft) (int64, error) {
	if err := f.fail("create"); err != nil {
		return 0, err
	}
	return f.Store.Create(ctx, d)
}

func (f *FaultyStore) ListAll(ctx context.Context) ([]book.Book, error) {
	if err := f.fail("list"); err != nil {
		return nil, err
	}
	return f.Store.ListAll(ctx)
}

func (f *FaultyStore) ListFiltered(ctx context.Context, substring string) ([]book.Book, error) {
	if err := f.fail("list"); err != nil {
		return nil, err
	}
	return f.Store.ListFiltered(ctx, substring)
}

func (f *FaultyStore) UpdateField(ctx context.Context, id int64, field book.Field, raw string) error {
	if err := f.fail("update"); err != nil {
		return err
	}
	return f.Store.UpdateField(ctx, id, field, raw)
}

func (f *FaultyStore) Delete(ctx context.Context, id int64) error {
	if err := f.fail("delete"); err != nil {
		return err
	}
	return f.Store.Delete(ctx, id)
}
