// Package serve implements the serve command which runs the web server.
package serve

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tastebase/tastebase/internal/conf"
	"github.com/tastebase/tastebase/internal/datastore"
	"github.com/tastebase/tastebase/internal/httpcontroller"
	"github.com/tastebase/tastebase/internal/logging"
	"github.com/tastebase/tastebase/internal/securefs"
)

// shutdownTimeout bounds how long in-flight requests may run during shutdown.
const shutdownTimeout = 10 * time.Second

// Command creates the serve command.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Tastebase web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(settings)
		},
	}
}

func runServer(settings *conf.Settings) error {
	logger := logging.ForService("serve")

	dataStore := datastore.New(settings)
	if err := dataStore.Open(); err != nil {
		return fmt.Errorf("opening datastore: %w", err)
	}
	defer func() {
		if err := dataStore.Close(); err != nil {
			logger.Error("Failed to close datastore", "error", err)
		}
	}()

	sfs, err := securefs.New(settings.Uploads.Path)
	if err != nil {
		return fmt.Errorf("preparing upload directory: %w", err)
	}

	server := httpcontroller.New(settings, dataStore, sfs)

	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("web server failed: %w", err)
	case sig := <-quit:
		logger.Info("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down web server: %w", err)
	}
	return nil
}
