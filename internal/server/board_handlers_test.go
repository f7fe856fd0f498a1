package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"studyglobe/internal/board"
	"studyglobe/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPostcards(t *testing.T, s *Server, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		p := &models.Postcard{
			UserName: "Student", Location: "Rome", Country: "Italy",
			ImageURL: "/uploads/images/x.jpg", Caption: "Ciao", DateStamp: "JUL 10, 2025",
			Lat: 41.9, Lng: 12.5,
		}
		require.NoError(t, s.db.WithContext(context.Background()).Create(p).Error)
	}
}

func TestGetBoard_MobileLayout(t *testing.T) {
	app, s := setupApp(t, testConfig(t))
	seedPostcards(t, s, 5)

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/api/board?width=375&height=700&seed=3", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	view := decode[BoardResponse](t, body)
	assert.Equal(t, board.StatusReady, view.Status)
	assert.Equal(t, "mobile", view.Breakpoint)
	assert.Equal(t, 2440, view.CanvasHeight)
	require.Len(t, view.Cards, 5)
	assert.Equal(t, "http://api.test/uploads/images/x.jpg", view.Cards[0].ImageURL)
	assert.Equal(t, "ITALY", view.Cards[0].Stamp.Country)
	require.NotNil(t, view.Seed)
	assert.Equal(t, int64(3), *view.Seed)

	_, again := do(t, app, httptest.NewRequest(http.MethodGet, "/api/board?width=375&height=700&seed=3", nil))
	assert.JSONEq(t, string(body), string(again))
}

func TestGetBoard_Empty(t *testing.T) {
	cfg := testConfig(t)
	cfg.FeatureFlags = "board_jitter=off"
	app, _ := setupApp(t, cfg)

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/api/board", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	view := decode[BoardResponse](t, body)
	assert.Equal(t, board.StatusEmpty, view.Status)
	assert.Equal(t, board.EmptyMessage, view.Message)
	assert.Nil(t, view.Seed)
	assert.Empty(t, view.Cards)
}

func TestGetBoard_BadQuery(t *testing.T) {
	app, _ := setupApp(t, testConfig(t))

	resp, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/api/board?width=0", nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/api/board?seed=abc", nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetStampsAndHealth(t *testing.T) {
	app, _ := setupApp(t, testConfig(t))

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/api/stamps", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stamps := decode[map[string]any](t, body)
	assert.Contains(t, stamps, "default")
	assert.NotEmpty(t, stamps["stamps"])

	resp, body = do(t, app, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	health := decode[map[string]any](t, body)
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "disabled", health["checks"].(map[string]any)["redis"])

	resp, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	app, _ := setupApp(t, testConfig(t))

	req := httptest.NewRequest(http.MethodOptions, "/api/postcards", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, _ := do(t, app, req)

	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}
