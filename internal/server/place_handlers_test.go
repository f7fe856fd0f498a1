package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"studyglobe/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomPointLifecycle(t *testing.T) {
	app, _ := setupApp(t, testConfig(t))

	req := multipartRequest(t, http.MethodPost, "/api/custom-points",
		map[string]string{"name": "Library", "description": "Quiet floor", "lat": "48.85", "lng": "2.35"})
	resp, body := do(t, app, req)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	point := decode[models.CustomPoint](t, body)
	assert.Empty(t, point.ImageURL)

	req = multipartRequest(t, http.MethodPut, "/api/custom-points/"+itoa(point.ID),
		map[string]string{"lat": "50"},
		formFile{field: "image", name: "lib.png", content: tinyPNG(t, 8, 8)})
	resp, body = do(t, app, req)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	updated := decode[models.CustomPoint](t, body)
	assert.Equal(t, "Library", updated.Name)
	assert.Equal(t, "Quiet floor", updated.Description)
	assert.Equal(t, 50.0, updated.Lat)
	assert.Equal(t, 2.35, updated.Lng)
	assert.NotEmpty(t, updated.ImageURL)

	resp, body = do(t, app, httptest.NewRequest(http.MethodGet, "/api/custom-points", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]models.CustomPoint](t, body), 1)

	resp, body = do(t, app, httptest.NewRequest(http.MethodDelete, "/api/custom-points/"+itoa(point.ID), nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Custom point deleted successfully", decode[models.MessageResponse](t, body).Message)

	resp, body = do(t, app, httptest.NewRequest(http.MethodDelete, "/api/custom-points/"+itoa(point.ID), nil))
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Custom point not found", decode[models.ErrorResponse](t, body).Detail)
}

func TestUpdateCustomPoint_RejectsBadNumber(t *testing.T) {
	app, _ := setupApp(t, testConfig(t))

	req := multipartRequest(t, http.MethodPut, "/api/custom-points/1", map[string]string{"lat": "north"})
	resp, body := do(t, app, req)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "lat must be a number", decode[models.ErrorResponse](t, body).Detail)
}

func TestFriends_CreateListSearch(t *testing.T) {
	app, s := setupApp(t, testConfig(t))

	n, err := s.Friends().EnsureSamples(t.Context(), []models.Friend{
		{Name: "Emma Johnson", City: "Paris", Country: "France", Lat: 48.8566, Lng: 2.3522},
	})
	require.NoError(t, err)
	require.Equal(t, 1, n)

	req := multipartRequest(t, http.MethodPost, "/api/friends",
		map[string]string{"name": "Marco Silva", "city": "Tokyo", "country": "Japan", "lat": "35.6762", "lng": "139.6503"},
		formFile{field: "avatar", name: "marco.png", content: tinyPNG(t, 16, 16)})
	resp, body := do(t, app, req)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	friend := decode[models.Friend](t, body)
	assert.Contains(t, friend.AvatarURL, "/uploads/avatars/")

	resp, body = do(t, app, httptest.NewRequest(http.MethodGet, "/api/friends", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]models.Friend](t, body), 2)

	resp, body = do(t, app, httptest.NewRequest(http.MethodGet, "/api/friends/search?q=tokyo", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	found := decode[[]models.Friend](t, body)
	require.NotEmpty(t, found)
	assert.Equal(t, "Marco Silva", found[0].Name)

	resp, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/api/friends/search", nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFriendSearch_FlagOff(t *testing.T) {
	cfg := testConfig(t)
	cfg.FeatureFlags = "friend_search=off"
	app, _ := setupApp(t, cfg)

	resp, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/api/friends/search?q=a", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
