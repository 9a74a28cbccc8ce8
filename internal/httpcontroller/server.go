// internal/httpcontroller/server.go
package httpcontroller

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/tastebase/tastebase/internal/api"
	"github.com/tastebase/tastebase/internal/conf"
	"github.com/tastebase/tastebase/internal/datastore"
	"github.com/tastebase/tastebase/internal/httpcontroller/handlers"
	"github.com/tastebase/tastebase/internal/logging"
	"github.com/tastebase/tastebase/internal/securefs"
)

// Server encapsulates the Echo server and related configuration.
type Server struct {
	Echo     *echo.Echo
	DS       datastore.Interface
	Settings *conf.Settings
	SFS      *securefs.SecureFS
	Handlers *handlers.Handlers
	API      *api.Controller

	webLogger *slog.Logger
}

// New initializes a new HTTP server with the given datastore and settings.
func New(settings *conf.Settings, dataStore datastore.Interface, sfs *securefs.SecureFS) *Server {
	s := &Server{
		Echo:      echo.New(),
		DS:        dataStore,
		Settings:  settings,
		SFS:       sfs,
		webLogger: logging.ForService("httpcontroller"),
	}

	s.Echo.HideBanner = true
	s.Echo.IPExtractor = echo.ExtractIPFromXFFHeader()

	// Initialize handlers for the server-rendered pages
	s.Handlers = handlers.New(s.DS, s.Settings, s.SFS)

	s.initMiddleware()
	s.setupTemplateRenderer()
	s.initRoutes()

	// JSON API for the upload ledger
	s.API = api.New(s.Echo, s.DS, s.Settings, s.SFS)

	return s
}

func (s *Server) initMiddleware() {
	s.Echo.Use(middleware.Recover())
	s.Echo.Use(middleware.Gzip())
	// Give multipart uploads some headroom over the stored-file cap
	s.Echo.Use(middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
		Limit: fmt.Sprintf("%dK", (s.Settings.Uploads.MaxSize/1024)+64),
	}))
	s.Echo.Use(s.requestLoggerMiddleware())
}

// requestLoggerMiddleware logs each request with method, path, status and
// duration at debug level.
func (s *Server) requestLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			s.webLogger.Debug("Request handled",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration", time.Since(start),
				"remote_ip", c.RealIP())
			return err
		}
	}
}

// Start begins listening on the configured address. It blocks until the
// server stops.
func (s *Server) Start() error {
	s.webLogger.Info("Starting web server", "address", s.Settings.HTTP.Address)
	return s.Echo.Start(s.Settings.HTTP.Address)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.Echo.Shutdown(ctx)
}
