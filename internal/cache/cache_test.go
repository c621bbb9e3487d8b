package cache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lustraclean/vitrine/internal/cache"
	"github.com/lustraclean/vitrine/internal/testutil"
)

// stores returns every Store implementation under test.
func stores(t *testing.T) map[string]cache.Store {
	t.Helper()

	sqlite, err := cache.NewSQLiteStore(context.Background(), testutil.NewStore(t))
	require.NoError(t, err)

	return map[string]cache.Store{
		"memory": cache.NewMemory(),
		"sqlite": sqlite,
	}
}

func TestStore_GetMissing(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(context.Background(), "absent")
			require.ErrorIs(t, err, cache.ErrNotFound)
		})
	}
}

func TestStore_SetGet(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(context.Background(), "k", `{"data":[1],"timestamp":42}`))

			got, err := s.Get(context.Background(), "k")
			require.NoError(t, err)
			require.Equal(t, `{"data":[1],"timestamp":42}`, got)
		})
	}
}

func TestStore_SetReplaces(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(context.Background(), "k", "first"))
			require.NoError(t, s.Set(context.Background(), "k", "second"))

			got, err := s.Get(context.Background(), "k")
			require.NoError(t, err)
			require.Equal(t, "second", got)
		})
	}
}

func TestStore_Delete(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(context.Background(), "k", "v"))
			require.NoError(t, s.Delete(context.Background(), "k"))

			_, err := s.Get(context.Background(), "k")
			require.True(t, errors.Is(err, cache.ErrNotFound))

			// Deleting a missing key is not an error.
			require.NoError(t, s.Delete(context.Background(), "k"))
		})
	}
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	db := testutil.NewStore(t)

	first, err := cache.NewSQLiteStore(context.Background(), db)
	require.NoError(t, err)
	require.NoError(t, first.Set(context.Background(), "k", "persisted"))

	// A second repository over the same store sees the value and the
	// already-applied migration.
	second, err := cache.NewSQLiteStore(context.Background(), db)
	require.NoError(t, err)

	got, err := second.Get(context.Background(), "k")
	require.NoError(t, err)
	require.Equal(t, "persisted", got)
}
