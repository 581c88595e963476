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

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestCheckRateLimit(t *testing.T) {
	t.Run("test environment bypass", func(t *testing.T) {
		t.Setenv("APP_ENV", "test")
		allowed, err := CheckRateLimit(context.Background(), nil, "login", "ip:1.2.3.4", 1, time.Minute)
		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("development environment bypass", func(t *testing.T) {
		t.Setenv("APP_ENV", "development")
		allowed, err := CheckRateLimit(context.Background(), nil, "login", "ip:1.2.3.4", 1, time.Minute)
		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("nil redis errors in production", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		allowed, err := CheckRateLimit(context.Background(), nil, "login", "ip:1.2.3.4", 1, time.Minute)
		assert.Error(t, err)
		assert.False(t, allowed)
	})

	t.Run("limit enforced", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		rdb := testRedis(t)

		for i := 0; i < 3; i++ {
			allowed, err := CheckRateLimit(context.Background(), rdb, "contact", "ip:1.2.3.4", 3, time.Minute)
			require.NoError(t, err)
			assert.True(t, allowed)
		}

		allowed, err := CheckRateLimit(context.Background(), rdb, "contact", "ip:1.2.3.4", 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)

		// A different client is counted separately
		allowed, err = CheckRateLimit(context.Background(), rdb, "contact", "ip:5.6.7.8", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("bypass in test mode", func(t *testing.T) {
		t.Setenv("APP_ENV", "test")
		app := fiber.New()
		app.Get("/test", RateLimit(nil, 1, time.Minute), func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("fail open with nil redis in production", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		app := fiber.New()
		app.Get("/test", RateLimit(nil, 1, time.Minute), func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("fail closed with nil redis in production", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		app := fiber.New()
		app.Get("/sensitive", RateLimitWithPolicy(nil, 1, time.Minute, FailClosed), func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/sensitive", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("429 once the limit is exhausted", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		rdb := testRedis(t)

		app := fiber.New()
		app.Post("/contact", RateLimit(rdb, 2, time.Minute, "contact"), func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})

		for i := 0; i < 2; i++ {
			req := httptest.NewRequest(http.MethodPost, "/contact", nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			_ = resp.Body.Close()
		}

		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
		_ = resp.Body.Close()
	})
}
