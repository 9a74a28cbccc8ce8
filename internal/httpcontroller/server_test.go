// server_test.go: End-to-end tests through the full router, templates and a
// real SQLite database.
package httpcontroller

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastebase/tastebase/internal/conf"
	"github.com/tastebase/tastebase/internal/datastore"
	"github.com/tastebase/tastebase/internal/securefs"
)

// newTestServer builds a full server over a temp SQLite database and a temp
// upload root.
func newTestServer(t *testing.T) (*Server, *datastore.SQLiteStore) {
	t.Helper()

	settings := &conf.Settings{}
	settings.Main.Name = "Tastebase"
	settings.Database.SQLite.Enabled = true
	settings.Database.SQLite.Path = filepath.Join(t.TempDir(), "test.db")
	settings.HTTP.Address = ":0"
	settings.Uploads.Path = t.TempDir()
	settings.Uploads.MaxSize = 1024 * 1024
	settings.Uploads.AllowedTypes = []string{"jpg", "jpeg", "png", "bmp"}

	store := &datastore.SQLiteStore{Settings: settings}
	require.NoError(t, store.Open())
	t.Cleanup(func() { _ = store.Close() })

	sfs, err := securefs.New(settings.Uploads.Path)
	require.NoError(t, err)

	return New(settings, store, sfs), store
}

func doRequest(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func postForm(s *Server, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return doRequest(s, req)
}

func TestAddRestaurantFlow(t *testing.T) {
	s, store := newTestServer(t)

	rec := postForm(s, "/add", url.Values{
		"restaurant_name": {"Cafe"},
		"street_address":  {"1 Main St"},
		"description":     {"Nice"},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/restaurants/1", rec.Header().Get("Location"))

	var count int64
	require.NoError(t, store.DB.Model(&datastore.Restaurant{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Detail page renders the new restaurant
	rec = doRequest(s, httptest.NewRequest(http.MethodGet, "/restaurants/1", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cafe")
	assert.Contains(t, rec.Body.String(), "No reviews yet")

	// Legacy numeric route reaches the same page
	rec = doRequest(s, httptest.NewRequest(http.MethodGet, "/1", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cafe")
}

func TestAddRestaurant_MissingFields(t *testing.T) {
	s, store := newTestServer(t)

	rec := postForm(s, "/add", url.Values{"restaurant_name": {"Cafe"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "must include a restaurant name")

	var count int64
	require.NoError(t, store.DB.Model(&datastore.Restaurant{}).Count(&count).Error)
	assert.Zero(t, count, "No row may be inserted for an incomplete form")
}

func TestAddReviewFlow(t *testing.T) {
	s, _ := newTestServer(t)

	postForm(s, "/add", url.Values{
		"restaurant_name": {"Diner"},
		"street_address":  {"2 Oak Ave"},
		"description":     {"Cozy"},
	})

	rec := postForm(s, "/review/1", url.Values{
		"user_name":   {"alice"},
		"rating":      {"5"},
		"review_text": {"Great food"},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/restaurants/1", rec.Header().Get("Location"))

	// The only review is five stars, so the aggregate shows 100%
	rec = doRequest(s, httptest.NewRequest(http.MethodGet, "/restaurants/1", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Great food")
	assert.Contains(t, body, "100%")
	assert.Contains(t, body, "5.0 out of 5")
}

func TestAddReview_InvalidRating(t *testing.T) {
	s, store := newTestServer(t)

	postForm(s, "/add", url.Values{
		"restaurant_name": {"Diner"},
		"street_address":  {"2 Oak Ave"},
		"description":     {"Cozy"},
	})

	for _, rating := range []string{"0", "6", "five"} {
		rec := postForm(s, "/review/1", url.Values{
			"user_name":   {"bob"},
			"rating":      {rating},
			"review_text": {"hm"},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "rating %q must be rejected", rating)
	}

	var count int64
	require.NoError(t, store.DB.Model(&datastore.Review{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRestaurantDetails_UnknownID(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(s, httptest.NewRequest(http.MethodGet, "/restaurants/42", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Restaurant not found")
}

func TestRestaurantDetails_NonNumericID(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(s, httptest.NewRequest(http.MethodGet, "/not-a-number", http.NoBody))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

const uploadMetadata = `{"user":"alice","filename":"a.png","upload_date":"2024-01-01T00:00:00",` +
	`"colors":[{"r":1,"g":2,"b":3,"count":10},{"r":4,"g":5,"b":6,"count":5}]}`

func uploadRequest(t *testing.T, filename, meta string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("png bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("json", meta))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadEndToEnd(t *testing.T) {
	s, store := newTestServer(t)

	rec := doRequest(s, uploadRequest(t, "a.png", uploadMetadata))
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	// One parent row with the derived pixel count, two child rows
	upload, err := store.GetUpload("1")
	require.NoError(t, err)
	assert.Equal(t, int64(15), upload.PixelCount)
	assert.Len(t, upload.Colors, 2)

	// The listing page shows the upload and honors the pixel range filter
	rec = doRequest(s, httptest.NewRequest(http.MethodGet,
		"/uploads?min_pixels=10&max_pixels=20&sort_by=pixel_count&order=asc", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "a.png")

	rec = doRequest(s, httptest.NewRequest(http.MethodGet,
		"/uploads?min_pixels=16", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No uploads found")

	// The stored file is served back
	rec = doRequest(s, httptest.NewRequest(http.MethodGet, "/uploads/a.png", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png bytes", rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}

func TestUpload_RejectedExtensionLeavesNoRow(t *testing.T) {
	s, store := newTestServer(t)

	rec := doRequest(s, uploadRequest(t, "script.sh", uploadMetadata))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var count int64
	require.NoError(t, store.DB.Model(&datastore.ImageUpload{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestServeUploadFile_NotFound(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(s, httptest.NewRequest(http.MethodGet, "/uploads/missing.png", http.NoBody))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIndexListsNewestFirst(t *testing.T) {
	s, _ := newTestServer(t)

	older := `{"user":"alice","filename":"old.png","upload_date":"2024-01-01T00:00:00","colors":[]}`
	newer := `{"user":"alice","filename":"new.png","upload_date":"2024-06-01T00:00:00","colors":[]}`
	require.Equal(t, http.StatusOK, doRequest(s, uploadRequest(t, "old.png", older)).Code)
	require.Equal(t, http.StatusOK, doRequest(s, uploadRequest(t, "new.png", newer)).Code)

	rec := doRequest(s, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Less(t, strings.Index(body, "new.png"), strings.Index(body, "old.png"),
		"Newest upload must appear first")
}

func TestFavicon(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(s, httptest.NewRequest(http.MethodGet, "/favicon.ico", http.NoBody))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/vnd.microsoft.icon", rec.Header().Get("Content-Type"))
	assert.NotZero(t, rec.Body.Len())
}
