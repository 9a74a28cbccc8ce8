// upload.go: multipart ingestion endpoint for the upload ledger
package api

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tastebase/tastebase/internal/datastore"
	"github.com/tastebase/tastebase/internal/securefs"
)

// uploadMetadata is the JSON sidecar submitted alongside the image file.
type uploadMetadata struct {
	Filename   string        `json:"filename"`
	User       string        `json:"user"`
	UploadDate string        `json:"upload_date"`
	Colors     []colorRecord `json:"colors"`
}

// colorRecord is one caller-supplied histogram entry.
type colorRecord struct {
	R     uint8 `json:"r"`
	G     uint8 `json:"g"`
	B     uint8 `json:"b"`
	Count int64 `json:"count"`
}

// allowedFile reports whether the filename carries one of the configured
// image extensions, case-insensitively.
func (c *Controller) allowedFile(filename string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return false
	}
	for _, allowed := range c.Settings.Uploads.AllowedTypes {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

// parseUploadDate accepts RFC 3339 timestamps and the common variant
// without a timezone offset.
func parseUploadDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", value)
}

// HandleUpload ingests an image file and its color metadata.
//
// The request is multipart/form-data with a "file" part and a "json" part
// holding the metadata sidecar. The file is stored first, then the upload
// row and its color rows are written in one transaction. A stored file is
// not removed when the database write fails afterwards.
func (c *Controller) HandleUpload(ctx echo.Context) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return c.badRequest(ctx, "no file part")
	}
	if fileHeader.Filename == "" {
		return c.badRequest(ctx, "no selected file")
	}
	if !c.allowedFile(fileHeader.Filename) {
		return c.badRequest(ctx, "file type not allowed")
	}

	jsonRaw := ctx.FormValue("json")
	if jsonRaw == "" {
		return c.badRequest(ctx, "missing json part")
	}

	var meta uploadMetadata
	if err := json.Unmarshal([]byte(jsonRaw), &meta); err != nil {
		return c.badRequest(ctx, "invalid JSON in 'json' field")
	}
	if meta.Filename == "" || meta.User == "" || meta.UploadDate == "" {
		return c.badRequest(ctx, "missing required fields")
	}

	uploadDate, err := parseUploadDate(meta.UploadDate)
	if err != nil {
		return c.badRequest(ctx, "invalid upload_date, expected ISO-8601")
	}

	safeName, err := securefs.SanitizeFilename(fileHeader.Filename)
	if err != nil {
		return c.badRequest(ctx, "unusable filename")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.serverError(ctx, err, "failed to read uploaded file")
	}
	defer src.Close()

	storedPath, err := c.SFS.Save(safeName, src, c.Settings.Uploads.MaxSize)
	if err != nil {
		return c.serverError(ctx, err, "failed to store uploaded file")
	}

	// Derive the pixel count from the submitted color records
	var pixelCount int64
	colors := make([]datastore.ImageColor, 0, len(meta.Colors))
	for _, rec := range meta.Colors {
		pixelCount += rec.Count
		colors = append(colors, datastore.ImageColor{
			R:     rec.R,
			G:     rec.G,
			B:     rec.B,
			Count: rec.Count,
		})
	}

	upload := &datastore.ImageUpload{
		Filename:   meta.Filename,
		User:       meta.User,
		UploadDate: uploadDate,
		PixelCount: pixelCount,
		ImagePath:  storedPath,
	}

	if err := c.DS.SaveUpload(upload, colors); err != nil {
		return c.serverError(ctx, err, "failed to persist upload")
	}

	c.logger.Info("Upload ingested",
		"upload_id", upload.ID,
		"user", upload.User,
		"filename", upload.Filename,
		"pixel_count", upload.PixelCount,
		"colors", len(colors))

	return ctx.JSON(http.StatusOK, MessageResponse{Message: "upload successful"})
}
