package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quote struct {
	Buy  float64 `json:"buy"`
	Sell float64 `json:"sell"`
}

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	require.NoError(t, mc.Set(ctx, "q", quote{Buy: 1, Sell: 2}, time.Minute))
	var got quote
	require.NoError(t, mc.Get(ctx, "q", &got))
	assert.Equal(t, quote{Buy: 1, Sell: 2}, got)

	assert.ErrorIs(t, mc.Get(ctx, "missing", &got), ErrCacheMiss)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	require.NoError(t, mc.Set(ctx, "k", "v", 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	var s string
	assert.ErrorIs(t, mc.Get(ctx, "k", &s), ErrCacheMiss)
	ok, err := mc.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCache_IncrementAndMGet(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	for i := 0; i < 3; i++ {
		_, err := mc.Increment(ctx, "count:a")
		require.NoError(t, err)
	}
	require.NoError(t, mc.Set(ctx, "count:b", "41", 0))
	n, err := mc.Increment(ctx, "count:b")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	counts, err := MGetTyped[int64](ctx, mc, "count:a", "count:b", "count:c")
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"count:a": 3, "count:b": 42}, counts)

	require.NoError(t, mc.Set(ctx, "text", "hello", 0))
	_, err = mc.Increment(ctx, "text")
	assert.Error(t, err)
}

func TestMemoryCache_TryLock(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	ok, err := mc.TryLock(ctx, "lock", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = mc.TryLock(ctx, "lock", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, mc.Unlock(ctx, "lock"))
	ok, err = mc.TryLock(ctx, "lock", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryCache_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()

	require.NoError(t, mc.Set(ctx, "a", "1", 0))
	time.Sleep(time.Millisecond)
	require.NoError(t, mc.Set(ctx, "b", "2", 0))
	time.Sleep(time.Millisecond)
	var s string
	require.NoError(t, mc.Get(ctx, "a", &s))
	time.Sleep(time.Millisecond)
	require.NoError(t, mc.Set(ctx, "c", "3", 0))

	assert.ErrorIs(t, mc.Get(ctx, "b", &s), ErrCacheMiss)
	require.NoError(t, mc.Get(ctx, "a", &s))
	assert.Equal(t, "1", s)
}

func TestMemoryCache_CountersAndLocksSurviveEviction(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(WithMemoryMaxSize(4))
	defer mc.Close()

	ok, err := mc.TryLock(ctx, "voter:1", time.Hour)
	require.NoError(t, err)
	require.True(t, ok)
	_, err = mc.Increment(ctx, "count:down")
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err = mc.Increment(ctx, "count:stable")
		require.NoError(t, err)
	}

	for _, k := range []string{"feed:a", "feed:b", "feed:c", "feed:d"} {
		time.Sleep(time.Millisecond)
		require.NoError(t, mc.Set(ctx, k, "x", time.Minute))
	}

	counts, err := MGetTyped[int64](ctx, mc, "count:down", "count:stable")
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"count:down": 1, "count:stable": 2}, counts)

	ok, err = mc.TryLock(ctx, "voter:1", time.Hour)
	require.NoError(t, err)
	assert.False(t, ok, "lock must not be evicted by cache traffic")

	var s string
	assert.ErrorIs(t, mc.Get(ctx, "feed:a", &s), ErrCacheMiss)
	require.NoError(t, mc.Get(ctx, "feed:d", &s))
}

func TestRemember(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	calls := 0
	load := func(ok bool) func(context.Context) (int, bool) {
		return func(context.Context) (int, bool) {
			calls++
			return 7, ok
		}
	}

	_, ok := Remember(ctx, mc, "r", time.Minute, load(false))
	assert.False(t, ok)
	_, ok = Remember(ctx, mc, "r", time.Minute, load(false))
	assert.False(t, ok)
	assert.Equal(t, 2, calls, "failed loads must not be cached")

	v, ok := Remember(ctx, mc, "r", time.Minute, load(true))
	require.True(t, ok)
	assert.Equal(t, 7, v)
	v, _ = Remember(ctx, mc, "r", time.Minute, load(true))
	assert.Equal(t, 7, v)
	assert.Equal(t, 3, calls)

	v, ok = Remember[int](ctx, nil, "r", time.Minute, load(true))
	assert.True(t, ok)
	assert.Equal(t, 7, v)
}
