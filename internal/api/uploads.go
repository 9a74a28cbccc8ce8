// uploads.go: JSON listing endpoint over the upload ledger
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tastebase/tastebase/internal/datastore"
)

// UploadResponse represents one upload in the API response
type UploadResponse struct {
	ID         uint      `json:"id"`
	Filename   string    `json:"filename"`
	User       string    `json:"user"`
	PixelCount int64     `json:"pixelCount"`
	UploadDate time.Time `json:"uploadDate"`
	ImagePath  string    `json:"imagePath,omitempty"`
}

// FilterFromQuery builds an UploadFilter from the request's query
// parameters. Unparsable numeric bounds leave the bound unset; unknown
// sort keys fall back to the default inside the datastore.
func FilterFromQuery(ctx echo.Context) datastore.UploadFilter {
	filter := datastore.UploadFilter{
		User:     ctx.QueryParam("user"),
		Filename: ctx.QueryParam("filename"),
		SortBy:   ctx.QueryParam("sort_by"),
		Order:    ctx.QueryParam("order"),
	}
	if v, err := strconv.ParseInt(ctx.QueryParam("min_pixels"), 10, 64); err == nil {
		filter.MinPixels = &v
	}
	if v, err := strconv.ParseInt(ctx.QueryParam("max_pixels"), 10, 64); err == nil {
		filter.MaxPixels = &v
	}
	return filter
}

// ListUploads handles GET requests for the filtered, sorted upload listing.
func (c *Controller) ListUploads(ctx echo.Context) error {
	uploads, err := c.DS.SearchUploads(FilterFromQuery(ctx))
	if err != nil {
		return c.serverError(ctx, err, "failed to query uploads")
	}

	response := make([]UploadResponse, 0, len(uploads))
	for i := range uploads {
		response = append(response, UploadResponse{
			ID:         uploads[i].ID,
			Filename:   uploads[i].Filename,
			User:       uploads[i].User,
			PixelCount: uploads[i].PixelCount,
			UploadDate: uploads[i].UploadDate,
			ImagePath:  uploads[i].ImagePath,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}
