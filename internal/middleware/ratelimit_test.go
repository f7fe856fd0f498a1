package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestLimiter_Allow(t *testing.T) {
	ctx := context.Background()

	t.Run("bypassed in development", func(t *testing.T) {
		l := NewLimiter(nil, "development")
		allowed, err := l.Allow(ctx, "likes", "ip:1", 1, time.Minute)
		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("nil redis in production is an error", func(t *testing.T) {
		l := NewLimiter(nil, "production")
		allowed, err := l.Allow(ctx, "likes", "ip:1", 1, time.Minute)
		assert.ErrorIs(t, err, ErrNoLimiterStore)
		assert.False(t, allowed)
	})

	t.Run("counts within window", func(t *testing.T) {
		mr, rdb := newTestRedis(t)
		l := NewLimiter(rdb, "production")

		for i := 0; i < 2; i++ {
			allowed, err := l.Allow(ctx, "likes", "ip:1", 2, time.Minute)
			require.NoError(t, err)
			assert.True(t, allowed)
		}
		allowed, err := l.Allow(ctx, "likes", "ip:1", 2, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)

		mr.FastForward(2 * time.Minute)
		allowed, err = l.Allow(ctx, "likes", "ip:1", 2, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	})
}

func TestLimiter_Handler(t *testing.T) {
	_, rdb := newTestRedis(t)
	l := NewLimiter(rdb, "production")

	app := fiber.New()
	app.Post("/like", l.Handler("likes", 1, time.Minute, FailOpen), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/like", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/like", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestLimiter_HandlerFailPolicies(t *testing.T) {
	tests := []struct {
		name   string
		policy FailPolicy
		want   int
	}{
		{"fail open lets the request through", FailOpen, http.StatusOK},
		{"fail closed rejects", FailClosed, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLimiter(nil, "production")
			app := fiber.New()
			app.Get("/", l.Handler("reads", 10, time.Minute, tt.policy), func(c *fiber.Ctx) error {
				return c.SendStatus(http.StatusOK)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
