package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/console/pkg/cache"
)

func TestMemory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string]()
		_, err := c.Get(ctx, "missing")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("stored value", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[int]()
		require.NoError(t, c.Set(ctx, "key", 42, time.Minute))

		v, err := c.Get(ctx, "key")
		require.NoError(t, err)
		assert.Equal(t, 42, v)

		has, err := c.Has(ctx, "key")
		require.NoError(t, err)
		assert.True(t, has)
	})

	t.Run("expired value", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string]()
		require.NoError(t, c.Set(ctx, "key", "v", time.Millisecond))
		time.Sleep(5 * time.Millisecond)

		_, err := c.Get(ctx, "key")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("negative ttl never expires", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string](cache.WithDefaultTTL(time.Millisecond))
		require.NoError(t, c.Set(ctx, "key", "v", -1))
		time.Sleep(5 * time.Millisecond)

		v, err := c.Get(ctx, "key")
		require.NoError(t, err)
		assert.Equal(t, "v", v)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string]()
		require.NoError(t, c.Set(ctx, "key", "v", 0))
		require.NoError(t, c.Delete(ctx, "key"))

		has, err := c.Has(ctx, "key")
		require.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("closed", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string]()
		require.NoError(t, c.Close())
		require.NoError(t, c.Close())
		require.ErrorIs(t, c.Set(ctx, "key", "v", 0), cache.ErrClosed)
	})
}

func TestGetOrSet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("computes once under concurrent misses", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		var calls atomic.Int32
		start := make(chan struct{})

		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				v, err := cache.GetOrSet(ctx, c, "stampede", func(context.Context) (string, time.Duration, error) {
					calls.Add(1)
					time.Sleep(20 * time.Millisecond)
					return "value", time.Minute, nil
				})
				assert.NoError(t, err)
				assert.Equal(t, "value", v)
			}()
		}
		close(start)
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("does not cache errors", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		boom := errors.New("boom")
		_, err := cache.GetOrSet(ctx, c, "failing", func(context.Context) (string, time.Duration, error) {
			return "", 0, boom
		})
		require.ErrorIs(t, err, boom)

		has, _ := c.Has(ctx, "failing")
		assert.False(t, has)
	})
}

func TestGetOrSet_ScopedPerCache(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	names := cache.NewMemory[string]()
	counts := cache.NewMemory[int]()

	s, err := cache.GetOrSet(ctx, names, "shared", func(context.Context) (string, time.Duration, error) {
		return "dashboard", 0, nil
	})
	require.NoError(t, err)
	n, err := cache.GetOrSet(ctx, counts, "shared", func(context.Context) (int, time.Duration, error) {
		return 3, 0, nil
	})
	require.NoError(t, err)

	assert.Equal(t, "dashboard", s)
	assert.Equal(t, 3, n)
}

func TestPool(t *testing.T) {
	t.Parallel()

	p := cache.NewPool()
	require.NoError(t, p.Create("", cache.NewMemory[string]()))
	require.NoError(t, p.Create("settings", cache.NewMemory[string]()))
	require.ErrorIs(t, p.Create("settings", cache.NewMemory[string]()), cache.ErrCacheExists)
	require.ErrorIs(t, p.Create("nil", nil), cache.ErrNilCache)

	def, err := p.Get()
	require.NoError(t, err)
	named, err := p.Get("settings")
	require.NoError(t, err)
	assert.NotSame(t, def, named)

	_, err = p.Get("sessions")
	require.ErrorIs(t, err, cache.ErrUnknownCache)

	require.NoError(t, p.Close())
	require.ErrorIs(t, def.Set(context.Background(), "k", "v", 0), cache.ErrClosed)
}
