// handlers.go: This file contains the request handlers for the web server.
package handlers

import (
	"log/slog"

	"github.com/tastebase/tastebase/internal/conf"
	"github.com/tastebase/tastebase/internal/datastore"
	"github.com/tastebase/tastebase/internal/logging"
	"github.com/tastebase/tastebase/internal/securefs"
)

// Handlers contains the handler functions and their dependencies
type Handlers struct {
	DS       datastore.Interface
	Settings *conf.Settings
	SFS      *securefs.SecureFS
	logger   *slog.Logger
}

// New creates a new Handlers instance with the given dependencies.
func New(ds datastore.Interface, settings *conf.Settings, sfs *securefs.SecureFS) *Handlers {
	return &Handlers{
		DS:       ds,
		Settings: settings,
		SFS:      sfs,
		logger:   logging.ForService("handlers"),
	}
}
