package memory_cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetRoundtrip(t *testing.T) {
	cache := NewMemoryCacheAdapter()
	ctx := context.Background()

	cache.Set(ctx, "detail:1", "value", time.Minute)

	got, ok := cache.Get(ctx, "detail:1")
	require.True(t, ok)
	assert.Equal(t, "value", got)

	_, ok = cache.Get(ctx, "detail:2")
	assert.False(t, ok)
}

func TestExpiredEntryIsGoneOnGet(t *testing.T) {
	cache := NewMemoryCacheAdapter()
	ctx := context.Background()

	current := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	cache.Set(ctx, "search:abc", 42, 5*time.Minute)

	current = current.Add(4 * time.Minute)
	_, ok := cache.Get(ctx, "search:abc")
	assert.True(t, ok, "до истечения TTL запись жива")

	current = current.Add(2 * time.Minute)
	_, ok = cache.Get(ctx, "search:abc")
	assert.False(t, ok)
	// Ленивое вычищение: протухшая запись удалена при чтении
	assert.Zero(t, cache.Len())
}

func TestOverwriteRefreshesTTL(t *testing.T) {
	cache := NewMemoryCacheAdapter()
	ctx := context.Background()

	current := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	cache.Set(ctx, "k", "old", time.Minute)
	current = current.Add(50 * time.Second)
	cache.Set(ctx, "k", "new", time.Minute)

	current = current.Add(30 * time.Second)
	got, ok := cache.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "new", got)
}

func TestRemoveAllMatchingPrefix(t *testing.T) {
	cache := NewMemoryCacheAdapter()
	ctx := context.Background()

	cache.Set(ctx, "search:a", 1, time.Minute)
	cache.Set(ctx, "search:b", 2, time.Minute)
	cache.Set(ctx, "detail:1", 3, time.Minute)

	cache.RemoveAllMatchingPrefix(ctx, "search:")

	_, ok := cache.Get(ctx, "search:a")
	assert.False(t, ok)
	_, ok = cache.Get(ctx, "search:b")
	assert.False(t, ok)
	_, ok = cache.Get(ctx, "detail:1")
	assert.True(t, ok, "чужое семейство не задето")
	assert.Equal(t, 1, cache.Len())
}
