package main

import (
	"fmt"
	"os"

	"github.com/tastebase/tastebase/cmd"
	"github.com/tastebase/tastebase/internal/conf"
	"github.com/tastebase/tastebase/internal/logging"
)

func main() {
	// Load the configuration once at startup; it is immutable afterwards
	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Init(settings.Debug, logging.FileConfig{
		Enabled: settings.Log.Enabled,
		Path:    settings.Log.Path,
		MaxSize: settings.Log.MaxSize,
		MaxAge:  settings.Log.MaxAge,
	})
	defer func() {
		_ = logging.Close()
	}()

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
