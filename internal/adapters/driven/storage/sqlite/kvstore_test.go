package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVStore_GetMissing(t *testing.T) {
	store := setupTestStore(t)

	value, ok, err := store.KeyValueStore().Get(context.Background(), "recentSearches")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestKVStore_SetAndOverwrite(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	kv := store.KeyValueStore()

	require.NoError(t, kv.Set(ctx, "recentSearches", "[]"))
	require.NoError(t, kv.Set(ctx, "recentSearches", `[{"icon":"x"}]`))

	value, ok, err := kv.Get(ctx, "recentSearches")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"icon":"x"}]`, value)
}

func TestKVStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.KeyValueStore().Set(ctx, "k", "v"))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	value, ok, err := second.KeyValueStore().Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", value)
}
