// routes.go: this file defines the page routes for the web interface
package httpcontroller

import (
	"embed"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed views/*.html
var ViewsFs embed.FS

//go:embed static/favicon.ico
var faviconIco []byte

// initRoutes registers the page routes for the web interface.
func (s *Server) initRoutes() {
	// Upload ledger pages
	s.Echo.GET("/", s.Handlers.IndexUploads)
	s.Echo.GET("/uploads", s.Handlers.ListUploads)
	s.Echo.GET("/uploads/:filename", s.Handlers.ServeUploadFile)

	// Restaurant directory pages
	s.Echo.GET("/create", s.Handlers.CreateRestaurantForm)
	s.Echo.POST("/add", s.Handlers.AddRestaurant)
	s.Echo.GET("/restaurants/:id", s.Handlers.RestaurantDetails)
	s.Echo.POST("/review/:id", s.Handlers.AddReview)

	// Legacy detail route: a bare numeric path segment
	s.Echo.GET("/:id", s.Handlers.RestaurantDetails)

	s.Echo.GET("/favicon.ico", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "image/vnd.microsoft.icon", faviconIco)
	})
}
