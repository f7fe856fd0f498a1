package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"studyglobe/internal/cache"
	"studyglobe/internal/config"
	"studyglobe/internal/database"
	"studyglobe/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Port:            "0",
		Env:             "test",
		APIBaseURL:      "http://api.test",
		AllowedOrigins:  "http://localhost:3000",
		UploadDir:       t.TempDir(),
		MaxUploadSizeMB: 5,
		FeatureFlags:    "",
	}
}

// setupApp wires a full app over an in-memory database and a temp upload dir.
func setupApp(t *testing.T, cfg *config.Config) (*fiber.App, *Server) {
	t.Helper()
	cache.SetClient(nil)
	cache.ResetLocal()

	db, err := database.Open(sqlite.Open(":memory:"), true)
	require.NoError(t, err)
	store, err := storage.NewLocalStore(cfg.UploadDir)
	require.NoError(t, err)

	s, err := NewServerWithDeps(cfg, db, nil, store)
	require.NoError(t, err)

	app := s.NewApp()
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app, s
}

func tinyPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type formFile struct {
	field, name string
	content     []byte
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, files ...formFile) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
