package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"studyglobe/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

func TestTracingMiddleware_ContinuesIncomingTrace(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})

	app := fiber.New()
	app.Use(TracingMiddleware())
	app.Get("/api/board", func(c *fiber.Ctx) error {
		return c.SendString(observability.TraceID(c.UserContext()))
	})

	req := httptest.NewRequest("GET", "/api/board", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	resp, err := app.Test(req)
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", string(body))
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", resp.Header.Get("X-Trace-ID"))
}

func TestNewLogger_Level(t *testing.T) {
	ctx := context.Background()

	debug := NewLogger("production", "debug")
	assert.True(t, debug.Enabled(ctx, slog.LevelDebug))

	fallback := NewLogger("development", "loud")
	assert.False(t, fallback.Enabled(ctx, slog.LevelDebug))
	assert.True(t, fallback.Enabled(ctx, slog.LevelInfo))

	warn := NewLogger("", "WARN")
	assert.False(t, warn.Enabled(ctx, slog.LevelInfo))
}
