// uploads.go: handlers for the upload ledger pages and stored files
package handlers

import (
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tastebase/tastebase/internal/datastore"
	"github.com/tastebase/tastebase/internal/errors"
	"github.com/tastebase/tastebase/internal/securefs"
)

// UploadsPageData carries the listing page's render state.
type UploadsPageData struct {
	Uploads  []datastore.ImageUpload
	User     string
	Filename string
	SortBy   string
	Order    string
}

// parseUploadFilter builds an UploadFilter from the request's query
// parameters. Unparsable numeric bounds leave the bound unset so the
// listing never errors on bad input.
func parseUploadFilter(c echo.Context) datastore.UploadFilter {
	filter := datastore.UploadFilter{
		User:     c.QueryParam("user"),
		Filename: c.QueryParam("filename"),
		SortBy:   c.QueryParam("sort_by"),
		Order:    c.QueryParam("order"),
	}
	if v, err := strconv.ParseInt(c.QueryParam("min_pixels"), 10, 64); err == nil {
		filter.MinPixels = &v
	}
	if v, err := strconv.ParseInt(c.QueryParam("max_pixels"), 10, 64); err == nil {
		filter.MaxPixels = &v
	}
	return filter
}

// IndexUploads renders the front page: all uploads, newest first.
func (h *Handlers) IndexUploads(c echo.Context) error {
	uploads, err := h.DS.SearchUploads(datastore.UploadFilter{})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load uploads")
	}
	return c.Render(http.StatusOK, "uploads", UploadsPageData{Uploads: uploads})
}

// ListUploads renders the filtered, sorted upload listing.
func (h *Handlers) ListUploads(c echo.Context) error {
	filter := parseUploadFilter(c)
	uploads, err := h.DS.SearchUploads(filter)
	if err != nil {
		h.logger.Error("Upload search failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load uploads")
	}
	return c.Render(http.StatusOK, "uploads", UploadsPageData{
		Uploads:  uploads,
		User:     filter.User,
		Filename: filter.Filename,
		SortBy:   filter.SortColumn(),
		Order:    filter.Order,
	})
}

// ServeUploadFile streams a stored image file from the upload root.
func (h *Handlers) ServeUploadFile(c echo.Context) error {
	name, err := securefs.SanitizeFilename(c.Param("filename"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "file not found")
	}

	f, err := h.SFS.Open(name)
	if err != nil {
		if errors.HasCategory(err, errors.CategoryNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "file not found")
		}
		h.logger.Error("Failed to open stored file", "filename", name, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to read file")
	}
	defer f.Close()

	mimeType := mime.TypeByExtension(filepath.Ext(name))
	if mimeType == "" {
		mimeType = echo.MIMEOctetStream
	}
	return c.Stream(http.StatusOK, mimeType, f)
}
