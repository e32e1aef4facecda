package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore()

	store.Set("k1", "ok")
	require.True(t, store.Has("k1"))

	val, ok := store.Get("k1")
	require.True(t, ok)
	assert.Equal(t, "ok", val)

	store.Set("k1", "overwritten")
	val, _ = store.Get("k1")
	assert.Equal(t, "overwritten", val)
}

func TestStoreInvalidateIdempotent(t *testing.T) {
	store := NewStore()
	store.Set("k1", 1)

	store.InvalidateKey("k1")
	assert.False(t, store.Has("k1"))

	// Second invalidation of the same key is a no-op.
	store.InvalidateKey("k1")
	assert.False(t, store.Has("k1"))
	assert.Equal(t, 0, store.Size())
}

func TestStoreInvalidateKeys(t *testing.T) {
	store := NewStore()
	store.Set("a", 1)
	store.Set("b", 2)
	store.Set("c", 3)

	store.InvalidateKeys([]string{"a", "c", "missing"})
	assert.False(t, store.Has("a"))
	assert.True(t, store.Has("b"))
	assert.False(t, store.Has("c"))
}

func TestStoreClearAndInvalidateAll(t *testing.T) {
	store := NewStore()
	store.Set("a", 1)
	store.Set("b", 2)

	store.Clear()
	assert.Equal(t, 0, store.Size())

	store.Set("a", 1)
	store.InvalidateAll()
	assert.Equal(t, 0, store.Size())
}

func TestStoreRange(t *testing.T) {
	store := NewStore()
	store.Set("a", 1)
	store.Set("b", 2)

	seen := map[string]any{}
	store.Range(func(key string, value any) bool {
		seen[key] = value
		return true
	})
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, seen)
}

func TestGetCacheIsLiveHandle(t *testing.T) {
	// GetCache exposes the same live store DefaultStore returns; external
	// mutation through the handle is visible everywhere.
	require.Same(t, DefaultStore(), GetCache())

	GetCache().Set("introspection", true)
	defer InvalidateKey("introspection")
	assert.True(t, DefaultStore().Has("introspection"))
}

func TestValueAs(t *testing.T) {
	v, err := ValueAs[string]("ok")
	require.NoError(t, err)
	assert.Equal(t, "ok", v)

	_, err = ValueAs[int]("not an int")
	require.Error(t, err)

	z, err := ValueAs[int](nil)
	require.NoError(t, err)
	assert.Zero(t, z)
}
