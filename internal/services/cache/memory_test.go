package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Stop()
	ctx := context.Background()

	_, found := mc.Get(ctx, "missing")
	assert.False(t, found)

	require.NoError(t, mc.Set(ctx, "key", []byte("value"), time.Minute))

	value, found := mc.Get(ctx, "key")
	require.True(t, found)
	assert.Equal(t, []byte("value"), value)

	stats := mc.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestMemoryCache_Expiry(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Stop()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "key", []byte("value"), 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	_, found := mc.Get(ctx, "key")
	assert.False(t, found)
}

func TestMemoryCache_Delete(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Stop()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "key", []byte("value"), time.Minute))
	require.NoError(t, mc.Delete(ctx, "key"))

	_, found := mc.Get(ctx, "key")
	assert.False(t, found)
	assert.Equal(t, int64(1), mc.Stats().Evictions)

	// Deleting an absent key is a no-op
	require.NoError(t, mc.Delete(ctx, "key"))
	assert.Equal(t, int64(1), mc.Stats().Evictions)
}
