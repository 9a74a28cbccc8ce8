// Package api implements the JSON API for the upload ledger.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tastebase/tastebase/internal/conf"
	"github.com/tastebase/tastebase/internal/datastore"
	"github.com/tastebase/tastebase/internal/logging"
	"github.com/tastebase/tastebase/internal/securefs"
)

// Controller manages the API routes and handlers
type Controller struct {
	Group    *echo.Group
	DS       datastore.Interface
	Settings *conf.Settings
	SFS      *securefs.SecureFS
	logger   *slog.Logger
	start    time.Time
}

// ErrorResponse is the JSON body for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the JSON body for successful requests.
type MessageResponse struct {
	Message string `json:"message"`
}

// New creates a new API controller and registers its routes under /api.
func New(e *echo.Echo, ds datastore.Interface, settings *conf.Settings, sfs *securefs.SecureFS) *Controller {
	c := &Controller{
		Group:    e.Group("/api"),
		DS:       ds,
		Settings: settings,
		SFS:      sfs,
		logger:   logging.ForService("api"),
		start:    time.Now(),
	}
	c.initRoutes()
	return c
}

func (c *Controller) initRoutes() {
	c.Group.POST("/upload", c.HandleUpload)
	c.Group.GET("/uploads", c.ListUploads)
	c.Group.GET("/health", c.HealthCheck)
}

// badRequest logs and returns a structured 400 response.
func (c *Controller) badRequest(ctx echo.Context, message string) error {
	c.logger.Debug("Rejected request",
		"path", ctx.Path(),
		"reason", message)
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// serverError logs the underlying error and returns a generic 500 response.
// The raw error text stays out of the response body.
func (c *Controller) serverError(ctx echo.Context, err error, message string) error {
	c.logger.Error("Request failed",
		"path", ctx.Path(),
		"error", err)
	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: message})
}

// HealthCheck reports service and database status.
func (c *Controller) HealthCheck(ctx echo.Context) error {
	dbStatus := "connected"
	if _, err := c.DS.SearchUploads(datastore.UploadFilter{}); err != nil {
		dbStatus = "error"
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"status":          "healthy",
		"name":            c.Settings.Main.Name,
		"database_status": dbStatus,
		"uptime_seconds":  int64(time.Since(c.start).Seconds()),
	})
}
