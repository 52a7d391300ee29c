package devserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hairizuan-noorazman/user-admin/logger"
	"github.com/hairizuan-noorazman/user-admin/testutil"
	"github.com/hairizuan-noorazman/user-admin/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, fixtures int) (http.Handler, *Metrics) {
	db, store := setupTestStore(t)
	testutil.CreateUsers(t, db, fixtures)
	metrics := NewMetrics()
	return NewRouter(store, logger.NewTestLogger(), metrics), metrics
}

func doRequest(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestUserHandler_ListPagination(t *testing.T) {
	router, _ := newTestRouter(t, 11)

	tests := []struct {
		name      string
		path      string
		wantPage  int
		wantLimit int
		wantCount int
		wantPages int
	}{
		{"defaults", "/users", 1, 10, 10, 2},
		{"second page", "/users?page=2&limit=10", 2, 10, 1, 2},
		{"page past the end", "/users?page=5&limit=10", 5, 10, 0, 2},
		{"invalid values fall back", "/users?page=-1&limit=abc", 1, 10, 10, 2},
		{"limit capped", "/users?limit=1000", 1, MaxLimit, 11, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodGet, tt.path, nil)
			require.Equal(t, http.StatusOK, rec.Code)

			page := decodeBody[user.PaginatedResponse[user.User]](t, rec)
			assert.Equal(t, tt.wantPage, page.Page)
			assert.Equal(t, tt.wantLimit, page.Limit)
			assert.Len(t, page.Data, tt.wantCount)
			assert.Equal(t, 11, page.Total)
			assert.Equal(t, tt.wantPages, page.TotalPages)
		})
	}
}

func TestUserHandler_ListEmpty(t *testing.T) {
	router, _ := newTestRouter(t, 0)

	rec := doRequest(t, router, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)

	page := decodeBody[user.PaginatedResponse[user.User]](t, rec)
	assert.Equal(t, 1, page.TotalPages)
	assert.Zero(t, page.Total)
}

func TestUserHandler_GetByID(t *testing.T) {
	router, _ := newTestRouter(t, 2)

	rec := doRequest(t, router, http.MethodGet, "/users/"+testutil.NewUser(2).ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "First2", decodeBody[user.User](t, rec).FirstName)

	missing := doRequest(t, router, http.MethodGet, "/users/nope", nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, "user not found", decodeBody[ErrorResponse](t, missing).Error)
}

func TestUserHandler_Create(t *testing.T) {
	router, _ := newTestRouter(t, 0)

	body := SampleUsers()[1]
	body.FirstName = "  Jane "
	rec := doRequest(t, router, http.MethodPost, "/users", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decodeBody[user.User](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Jane", created.FirstName, "names are trimmed")
	assert.False(t, created.CreatedAt.IsZero())
}

func TestUserHandler_CreateValidation(t *testing.T) {
	router, _ := newTestRouter(t, 0)

	tests := []struct {
		name    string
		mutate  func(*user.CreateData)
		wantMsg string
	}{
		{"short first name", func(d *user.CreateData) { d.FirstName = "A" }, "firstName must be at least 2 characters long"},
		{"height too large", func(d *user.CreateData) { d.Height = 301 }, "height must be less than or equal to 300"},
		{"missing weight", func(d *user.CreateData) { d.Weight = 0 }, "weight is required"},
		{"bad gender", func(d *user.CreateData) { d.Gender = "robot" }, "gender must be one of [male female other]"},
		{"bad photo", func(d *user.CreateData) { d.Photo = "not-a-url" }, "photo must be a valid URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := SampleUsers()[0]
			tt.mutate(&d)

			rec := doRequest(t, router, http.MethodPost, "/users", d)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantMsg, decodeBody[ErrorResponse](t, rec).Error)
		})
	}
}

func TestUserHandler_CreateMalformedJSON(t *testing.T) {
	router, _ := newTestRouter(t, 0)

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request body", decodeBody[ErrorResponse](t, rec).Error)
}

func TestUserHandler_Update(t *testing.T) {
	router, _ := newTestRouter(t, 1)
	existing := testutil.NewUser(1)

	data := existing.Data()
	data.Residence = "Madrid, Spain"
	rec := doRequest(t, router, http.MethodPatch, "/users/"+existing.ID, data.WithID(existing.ID))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Madrid, Spain", decodeBody[user.User](t, rec).Residence)

	mismatch := doRequest(t, router, http.MethodPatch, "/users/"+existing.ID, data.WithID("other"))
	assert.Equal(t, http.StatusBadRequest, mismatch.Code)

	missing := doRequest(t, router, http.MethodPatch, "/users/missing", data)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestUserHandler_Delete(t *testing.T) {
	router, _ := newTestRouter(t, 1)
	id := testutil.NewUser(1).ID

	rec := doRequest(t, router, http.MethodDelete, "/users/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	again := doRequest(t, router, http.MethodDelete, "/users/"+id, nil)
	assert.Equal(t, http.StatusNotFound, again.Code)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	router, _ := newTestRouter(t, 0)

	health := doRequest(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, health.Code)
	assert.NotEmpty(t, health.Header().Get("X-Request-ID"))

	doRequest(t, router, http.MethodGet, "/users/abc", nil)

	metrics := doRequest(t, router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, metrics.Code)
	body := metrics.Body.String()
	assert.Contains(t, body, `requests_total{code="404",method="GET",path="/users/{id}"} 1`)
	assert.NotContains(t, body, `path="/health"`)
}

func TestRouter_PreservesRequestID(t *testing.T) {
	router, _ := newTestRouter(t, 0)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestMountPhotos(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "photos", "u1"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "photos", "u1", "1.png"), []byte("png"), 0644))

	_, store := setupTestStore(t)
	router := NewRouter(store, logger.NewTestLogger(), nil)
	MountPhotos(router, dir)

	rec := doRequest(t, router, http.MethodGet, "/photos/photos/u1/1.png", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png", rec.Body.String())

	missing := doRequest(t, router, http.MethodGet, "/photos/nope.png", nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}
