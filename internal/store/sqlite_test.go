package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarish/symbol-mutator/internal/mutate"
)

func TestSQLiteStore_SaveThenLookupRoundTrip(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Save(ctx, 42, mutate.ThemeGibberish, "DataProcessor", "c_a1b2c3", mutate.KindClass))

	newName, kind, ok, err := s.Lookup(ctx, 42, mutate.ThemeGibberish, "DataProcessor")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "c_a1b2c3", newName)
	assert.Equal(t, mutate.KindClass, kind)
}

func TestSQLiteStore_LookupMissReturnsFalse(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, _, ok, err := s.Lookup(context.Background(), 1, mutate.ThemeGibberish, "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStore_ScopedBySeedAndTheme(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Save(ctx, 1, mutate.ThemeGibberish, "helper", "f_aaa111", mutate.KindFunction))
	require.NoError(t, s.Save(ctx, 2, mutate.ThemeGibberish, "helper", "f_bbb222", mutate.KindFunction))

	n1, _, ok, err := s.Lookup(ctx, 1, mutate.ThemeGibberish, "helper")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "f_aaa111", n1)

	n2, _, ok, err := s.Lookup(ctx, 2, mutate.ThemeGibberish, "helper")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "f_bbb222", n2)
}

func TestSQLiteStore_SaveUpdatesExistingEntry(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Save(ctx, 1, mutate.ThemeGibberish, "helper", "f_first", mutate.KindFunction))
	require.NoError(t, s.Save(ctx, 1, mutate.ThemeGibberish, "helper", "f_second", mutate.KindFunction))

	newName, _, ok, err := s.Lookup(ctx, 1, mutate.ThemeGibberish, "helper")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "f_second", newName)
}

func TestSQLiteStore_EntriesSortedByOriginal(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Save(ctx, 1, mutate.ThemeGibberish, "zeta", "f_z", mutate.KindFunction))
	require.NoError(t, s.Save(ctx, 1, mutate.ThemeGibberish, "alpha", "f_a", mutate.KindFunction))

	entries, err := s.Entries(ctx, 1, mutate.ThemeGibberish)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "alpha", entries[0].Original)
	assert.Equal(t, "zeta", entries[1].Original)
}
