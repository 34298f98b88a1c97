package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/snowtrip/hokkaido/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hookClock runs onNow once, on the first call to Now.
type hookClock struct {
	utils.MockClock
	onNow func()
}

func (h *hookClock) Now() time.Time {
	if h.onNow != nil {
		hook := h.onNow
		h.onNow = nil
		hook()
	}
	return h.MockClock.Now()
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("should return stored value before expiry", func(t *testing.T) {
		// given
		clock := &utils.MockClock{FixedNow: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)}
		c := NewMemoryCache(clock)
		require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

		// when
		clock.Advance(59 * time.Second)
		value, err := c.Get(ctx, "k")

		// then
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), value)
	})

	t.Run("should miss after expiry", func(t *testing.T) {
		// given
		clock := &utils.MockClock{FixedNow: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)}
		c := NewMemoryCache(clock)
		require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

		// when
		clock.Advance(time.Minute)
		_, err := c.Get(ctx, "k")

		// then
		assert.ErrorIs(t, err, ErrMiss)
	})

	t.Run("should keep value refreshed while an expired read is in flight", func(t *testing.T) {
		// given
		clock := &hookClock{MockClock: utils.MockClock{FixedNow: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)}}
		c := NewMemoryCache(clock)
		require.NoError(t, c.Set(ctx, "k", []byte("old"), time.Minute))
		clock.Advance(2 * time.Minute)
		clock.onNow = func() {
			require.NoError(t, c.Set(ctx, "k", []byte("fresh"), time.Minute))
		}

		// when
		_, staleErr := c.Get(ctx, "k")
		value, err := c.Get(ctx, "k")

		// then
		assert.ErrorIs(t, staleErr, ErrMiss)
		require.NoError(t, err)
		assert.Equal(t, []byte("fresh"), value)
	})

	t.Run("should drop expired entry on read", func(t *testing.T) {
		// given
		clock := &utils.MockClock{FixedNow: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)}
		c := NewMemoryCache(clock)
		require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
		clock.Advance(time.Minute)

		// when
		_, err := c.Get(ctx, "k")

		// then
		assert.ErrorIs(t, err, ErrMiss)
		assert.NotContains(t, c.entries, "k")
	})

	t.Run("should miss unknown key", func(t *testing.T) {
		c := NewMemoryCache(&utils.MockClock{})

		_, err := c.Get(ctx, "unknown")

		assert.ErrorIs(t, err, ErrMiss)
	})
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
		server := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: server.Addr()})
		t.Cleanup(func() { client.Close() })
		return server, NewRedisCache(client)
	}

	t.Run("should store value under prefixed key", func(t *testing.T) {
		// given
		server, c := setup(t)

		// when
		err := c.Set(ctx, "weather:43.06,141.35", []byte(`{"temperature":-2}`), time.Minute)

		// then
		require.NoError(t, err)
		stored, err := server.Get("hokkaido:lookup:weather:43.06,141.35")
		require.NoError(t, err)
		assert.Equal(t, `{"temperature":-2}`, stored)

		value, err := c.Get(ctx, "weather:43.06,141.35")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"temperature":-2}`), value)
	})

	t.Run("should miss after ttl elapses", func(t *testing.T) {
		// given
		server, c := setup(t)
		require.NoError(t, c.Set(ctx, "rate", []byte("0.21"), time.Minute))

		// when
		server.FastForward(2 * time.Minute)
		_, err := c.Get(ctx, "rate")

		// then
		assert.ErrorIs(t, err, ErrMiss)
	})

	t.Run("should report connection errors", func(t *testing.T) {
		// given
		server, c := setup(t)
		server.Close()

		// when
		_, err := c.Get(ctx, "rate")

		// then
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrMiss)
	})
}
