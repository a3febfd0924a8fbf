package store

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/shelf/internal/book"
)

func seedCatalog(t *testing.T, s *Store) {
	t.Helper()
	mustCreate(t, s, "Dune", "Herbert", "1965")
	mustCreate(t, s, "Dune Messiah", "Herbert", "1969")
	mustCreate(t, s, "Emma", "Austen", "1815")
	mustCreate(t, s, "The Dispossessed", "Le Guin", "1974")
	mustCreate(t, s, "100% Cotton_Fields", "Nobody", "2000")
}

func TestListAll_Empty(t *testing.T) {
	s := createTestStore(t)

	all, err := s.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestListAll_InsertionOrder(t *testing.T) {
	s := createTestStore(t)
	seedCatalog(t, s)

	all, err := s.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 5)

	titles := make([]string, len(all))
	for i, b := range all {
		titles[i] = b.Title
		if i > 0 {
			assert.Greater(t, b.ID, all[i-1].ID)
		}
	}
	assert.Equal(t, []string{"Dune", "Dune Messiah", "Emma", "The Dispossessed", "100% Cotton_Fields"}, titles)
}

func TestListFiltered_MatchesSubsetOfListAll(t *testing.T) {
	s := createTestStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	all, err := s.ListAll(ctx)
	require.NoError(t, err)

	for _, sub := range []string{"", "Dune", "une", "e", "Emma", "dune", "zzz", "%", "_", " ", "Dis"} {
		t.Run(sub, func(t *testing.T) {
			got, err := s.ListFiltered(ctx, sub)
			require.NoError(t, err)

			want := []book.Book{}
			for _, b := range all {
				if strings.Contains(b.Title, sub) {
					want = append(want, b)
				}
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestListFiltered_EmptyEqualsListAll(t *testing.T) {
	s := createTestStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	filtered, err := s.ListFiltered(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, all, filtered)
}

func TestListFiltered_CaseSensitive(t *testing.T) {
	s := createTestStore(t)
	seedCatalog(t, s)

	got, err := s.ListFiltered(context.Background(), "dune")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListFiltered_WildcardsAreLiteral(t *testing.T) {
	s := createTestStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	got, err := s.ListFiltered(ctx, "0% C")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "100% Cotton_Fields", got[0].Title)

	got, err = s.ListFiltered(ctx, "D_ne")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListFiltered_ComparesBytes(t *testing.T) {
	s := createTestStore(t)
	mustCreate(t, s, "Cafe\u0301 Society", "Someone", "1990")

	got, err := s.ListFiltered(context.Background(), "Caf\u00e9")
	require.NoError(t, err)
	assert.Empty(t, got, "precomposed query must not match a decomposed title")

	got, err = s.ListFiltered(context.Background(), "Cafe\u0301")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Cafe\u0301 Society", got[0].Title)
}

func TestGet(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	id := mustCreate(t, s, "Emma", "Austen", "1815")

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, book.Book{ID: id, Title: "Emma", Author: "Austen", Year: 1815}, got)

	_, err = s.Get(ctx, id+1)
	assert.True(t, book.IsNotFound(err))
}

func TestCount(t *testing.T) {
	s := createTestStore(t)
	seedCatalog(t, s)

	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}
