package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
}

func TestAside(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches and caches on miss", func(t *testing.T) {
		setupTestRedis(t)

		calls := 0
		var dest map[string]int
		fetch := func() error {
			calls++
			dest = map[string]int{"total": 42}
			return nil
		}

		err := Aside(ctx, "stats:global", &dest, time.Minute, fetch)
		require.NoError(t, err)
		assert.Equal(t, 42, dest["total"])
		assert.Equal(t, 1, calls)

		// Second call is served from cache
		dest = nil
		err = Aside(ctx, "stats:global", &dest, time.Minute, fetch)
		require.NoError(t, err)
		assert.Equal(t, 42, dest["total"])
		assert.Equal(t, 1, calls)
	})

	t.Run("propagates fetch errors without caching", func(t *testing.T) {
		setupTestRedis(t)

		fetchErr := errors.New("db down")
		var dest string
		err := Aside(ctx, "post:broken", &dest, time.Minute, func() error {
			return fetchErr
		})
		assert.ErrorIs(t, err, fetchErr)

		// The failure is not cached
		err = Aside(ctx, "post:broken", &dest, time.Minute, func() error {
			dest = "ok"
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", dest)
	})

	t.Run("degrades to fetch with nil client", func(t *testing.T) {
		SetClient(nil)

		var dest int
		err := Aside(ctx, "post:any", &dest, time.Minute, func() error {
			dest = 7
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 7, dest)
	})
}

func TestInvalidatePostLists(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()

	rdb := GetClient()
	require.NoError(t, rdb.Set(ctx, PostsListKey("page=1"), "[]", time.Minute).Err())
	require.NoError(t, rdb.Set(ctx, PostsListKey("page=2"), "[]", time.Minute).Err())
	require.NoError(t, rdb.Set(ctx, PostKey("hello-world"), "{}", time.Minute).Err())

	InvalidatePostLists(ctx)

	assert.Equal(t, int64(0), rdb.Exists(ctx, PostsListKey("page=1")).Val())
	assert.Equal(t, int64(0), rdb.Exists(ctx, PostsListKey("page=2")).Val())
	assert.Equal(t, int64(1), rdb.Exists(ctx, PostKey("hello-world")).Val())
}
