package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tastebase/tastebase/cmd/config"
	"github.com/tastebase/tastebase/cmd/serve"
	"github.com/tastebase/tastebase/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tastebase",
		Short: "Tastebase restaurant directory and image upload ledger",
	}

	setupFlags(rootCmd, settings)

	rootCmd.AddCommand(
		serve.Command(settings),
		config.Command(),
	)

	return rootCmd
}

// setupFlags binds the persistent command line flags to viper keys so they
// override file and environment configuration.
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) {
	rootCmd.PersistentFlags().BoolVar(&settings.Debug, "debug", settings.Debug, "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&settings.HTTP.Address, "address", settings.HTTP.Address, "HTTP listen address")
	rootCmd.PersistentFlags().StringVar(&settings.Uploads.Path, "upload-path", settings.Uploads.Path, "Directory for stored image files")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("http.address", rootCmd.PersistentFlags().Lookup("address"))
	_ = viper.BindPFlag("uploads.path", rootCmd.PersistentFlags().Lookup("upload-path"))
}
